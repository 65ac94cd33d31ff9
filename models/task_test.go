package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestTaskInputNormalize(t *testing.T) {
	title, description, status, err := TaskInput{Title: "  Test Task "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Test Task", title)
	assert.Equal(t, "", description)
	assert.Equal(t, StatusPending, status)

	_, description, status, err = TaskInput{Title: "x", Description: ptr("d"), Status: ptr(StatusInProgress)}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "d", description)
	assert.Equal(t, StatusInProgress, status)

	_, _, _, err = TaskInput{}.Normalize()
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "title is required", err.Error())

	_, _, _, err = TaskInput{Title: "x", Status: ptr("later")}.Normalize()
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskPatchValidate(t *testing.T) {
	assert.NoError(t, TaskPatch{}.Validate())
	assert.NoError(t, TaskPatch{Status: ptr(StatusDone)}.Validate())
	assert.NoError(t, TaskPatch{Description: ptr("")}.Validate())
	assert.ErrorIs(t, TaskPatch{Title: ptr(" ")}.Validate(), ErrValidation)
	assert.ErrorIs(t, TaskPatch{Status: ptr("")}.Validate(), ErrValidation)
}

func TestErrorKinds(t *testing.T) {
	err := Errorf(ErrNotFound, "task %s not found", "abc")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAuth))
	assert.Equal(t, "task abc not found", err.Error())
}
