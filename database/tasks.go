package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/biosecret/taskmanager/models"
	"github.com/biosecret/taskmanager/utils"
)

const taskColumns = "id, title, description, status, user_id, created_at"

// TaskStore lưu trữ task. Mọi truy vấn đều lọc theo cả id và user_id,
// task của user khác luôn trả về ErrNotFound.
type TaskStore struct {
	db  *DB
	now func() time.Time
}

func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// List trả về tất cả task của user, mới nhất trước
func (s *TaskStore) List(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		s.db.rebind("SELECT "+taskColumns+" FROM tasks WHERE user_id = ? ORDER BY created_at DESC"), userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create tạo task mới cho user
func (s *TaskStore) Create(ctx context.Context, userID string, in models.TaskInput) (models.Task, error) {
	title, description, status, err := in.Normalize()
	if err != nil {
		return models.Task{}, err
	}

	id, err := s.newID(ctx)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      userID,
		CreatedAt:   s.now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		s.db.rebind("INSERT INTO tasks ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?)"),
		task.ID, task.Title, task.Description, task.Status, task.UserID, task.CreatedAt,
	)
	if err != nil {
		// Vi phạm khóa ngoại: user không còn tồn tại
		if !s.userExists(ctx, userID) {
			return models.Task{}, models.Errorf(models.ErrNotFound, "user not found")
		}
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

// Get lấy một task thuộc user
func (s *TaskStore) Get(ctx context.Context, userID, taskID string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx,
		s.db.rebind("SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?"), taskID, userID)
	return scanTask(row)
}

// Update chỉ thay đổi các trường có trong patch. Điều kiện sở hữu nằm
// trong chính câu UPDATE.
func (s *TaskStore) Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (models.Task, error) {
	if err := patch.Validate(); err != nil {
		return models.Task{}, err
	}

	var title *string
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		title = &t
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, s.db.rebind(`
		UPDATE tasks SET
			title = COALESCE(CAST(? AS TEXT), title),
			description = COALESCE(CAST(? AS TEXT), description),
			status = COALESCE(CAST(? AS TEXT), status)
		WHERE id = ? AND user_id = ?`),
		title, patch.Description, patch.Status, taskID, userID,
	)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	if count, err := res.RowsAffected(); err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	} else if count == 0 {
		return models.Task{}, models.Errorf(models.ErrNotFound, "task not found")
	}

	task, err := scanTask(tx.QueryRowContext(ctx,
		s.db.rebind("SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?"), taskID, userID))
	if err != nil {
		return models.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete xóa vĩnh viễn một task thuộc user
func (s *TaskStore) Delete(ctx context.Context, userID, taskID string) error {
	res, err := s.db.ExecContext(ctx,
		s.db.rebind("DELETE FROM tasks WHERE id = ? AND user_id = ?"), taskID, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if count == 0 {
		return models.Errorf(models.ErrNotFound, "task not found")
	}
	return nil
}

// newID thử tạo ID tối đa 3 lần nếu ID bị trùng
func (s *TaskStore) newID(ctx context.Context) (string, error) {
	for i := 0; i < 3; i++ {
		id, err := utils.NewID()
		if err != nil {
			return "", fmt.Errorf("generate task id: %w", err)
		}

		var exists bool
		err = s.db.QueryRowContext(ctx,
			s.db.rebind("SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)"), id).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("check task id: %w", err)
		}
		if !exists {
			return id, nil
		}
	}
	return "", errors.New("failed to generate a unique task id")
}

func (s *TaskStore) userExists(ctx context.Context, userID string) bool {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		s.db.rebind("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)"), userID).Scan(&exists)
	return err == nil && exists
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, models.Errorf(models.ErrNotFound, "task not found")
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("scan task: %w", err)
	}
	return t, nil
}
