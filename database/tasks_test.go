package database

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosecret/taskmanager/models"
)

func newTaskFixture(t *testing.T) (*TaskStore, models.User, models.User) {
	t.Helper()

	db := openTestDB(t)
	users := NewUserStore(db)
	alice := createUser(t, users, "alice@example.com")
	bob := createUser(t, users, "bob@example.com")

	tasks := NewTaskStore(db)
	tasks.now = clock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return tasks, alice, bob
}

func TestTaskStoreCreateDefaults(t *testing.T) {
	tasks, alice, _ := newTaskFixture(t)

	task, err := tasks.Create(context.Background(), alice.ID, models.TaskInput{Title: "Test Task"})
	require.NoError(t, err)
	assert.Equal(t, "Test Task", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, alice.ID, task.UserID)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestTaskStoreCreateValidation(t *testing.T) {
	tasks, alice, _ := newTaskFixture(t)

	_, err := tasks.Create(context.Background(), alice.ID, models.TaskInput{Title: "  "})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = tasks.Create(context.Background(), alice.ID, models.TaskInput{Title: "x", Status: strPtr("archived")})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTaskStoreCreateUnknownUser(t *testing.T) {
	tasks, _, _ := newTaskFixture(t)

	_, err := tasks.Create(context.Background(), "no-such-user", models.TaskInput{Title: "orphan"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTaskStoreLongValues(t *testing.T) {
	ctx := context.Background()
	tasks, alice, _ := newTaskFixture(t)

	long := strings.Repeat("x", 1000)
	task, err := tasks.Create(ctx, alice.ID, models.TaskInput{Title: long})
	require.NoError(t, err)

	updated, err := tasks.Update(ctx, alice.ID, task.ID, models.TaskPatch{Title: strPtr(long + "y")})
	require.NoError(t, err)
	assert.Len(t, updated.Title, 1001)
}

func TestTaskStoreListOrderAndOwnership(t *testing.T) {
	ctx := context.Background()
	tasks, alice, bob := newTaskFixture(t)

	first, err := tasks.Create(ctx, alice.ID, models.TaskInput{Title: "first"})
	require.NoError(t, err)
	second, err := tasks.Create(ctx, alice.ID, models.TaskInput{Title: "second"})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, bob.ID, models.TaskInput{Title: "bob's"})
	require.NoError(t, err)

	list, err := tasks.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.True(t, list[0].CreatedAt.Equal(second.CreatedAt))

	empty, err := tasks.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTaskStorePartialUpdate(t *testing.T) {
	ctx := context.Background()
	tasks, alice, _ := newTaskFixture(t)

	task, err := tasks.Create(ctx, alice.ID, models.TaskInput{Title: "write docs", Description: strPtr("api section")})
	require.NoError(t, err)

	updated, err := tasks.Update(ctx, alice.ID, task.ID, models.TaskPatch{Status: strPtr(models.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, updated.Status)
	assert.Equal(t, "write docs", updated.Title)
	assert.Equal(t, "api section", updated.Description)

	updated, err = tasks.Update(ctx, alice.ID, task.ID, models.TaskPatch{Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, models.StatusDone, updated.Status)

	got, err := tasks.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestTaskStoreUpdateValidation(t *testing.T) {
	ctx := context.Background()
	tasks, alice, _ := newTaskFixture(t)

	task, err := tasks.Create(ctx, alice.ID, models.TaskInput{Title: "keep"})
	require.NoError(t, err)

	_, err = tasks.Update(ctx, alice.ID, task.ID, models.TaskPatch{Title: strPtr("")})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = tasks.Update(ctx, alice.ID, task.ID, models.TaskPatch{Status: strPtr("unknown")})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTaskStoreForeignTaskIsNotFound(t *testing.T) {
	ctx := context.Background()
	tasks, alice, bob := newTaskFixture(t)

	task, err := tasks.Create(ctx, alice.ID, models.TaskInput{Title: "private"})
	require.NoError(t, err)

	_, err = tasks.Get(ctx, bob.ID, task.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = tasks.Update(ctx, bob.ID, task.ID, models.TaskPatch{Title: strPtr("hijacked")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = tasks.Delete(ctx, bob.ID, task.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := tasks.Get(ctx, alice.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func TestTaskStoreDelete(t *testing.T) {
	ctx := context.Background()
	tasks, alice, _ := newTaskFixture(t)

	task, err := tasks.Create(ctx, alice.ID, models.TaskInput{Title: "temporary"})
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(ctx, alice.ID, task.ID))

	list, err := tasks.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, tasks.Delete(ctx, alice.ID, task.ID), models.ErrNotFound)
}
