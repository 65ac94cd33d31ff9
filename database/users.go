package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/biosecret/taskmanager/models"
	"github.com/biosecret/taskmanager/utils"
)

// UserStore lưu trữ user, đảm bảo email là duy nhất
type UserStore struct {
	db  *DB
	now func() time.Time
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db, now: time.Now}
}

// Create tạo user mới, gán ID và created_at
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	taken, err := s.emailExists(ctx, user.Email)
	if err != nil {
		return err
	}
	if taken {
		return models.Errorf(models.ErrConflict, "user already exists")
	}

	id, err := utils.NewID()
	if err != nil {
		return fmt.Errorf("generate user id: %w", err)
	}

	createdAt := s.now().UTC()
	_, err = s.db.ExecContext(ctx,
		s.db.rebind("INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)"),
		id, user.Name, user.Email, user.PasswordHash, createdAt,
	)
	if err != nil {
		// Một request khác có thể vừa chèn cùng email
		if taken, checkErr := s.emailExists(ctx, user.Email); checkErr == nil && taken {
			return models.Errorf(models.ErrConflict, "user already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = id
	user.CreatedAt = createdAt
	return nil
}

// FindByEmail tìm user theo email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		s.db.rebind("SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?"), email)
	return scanUser(row)
}

// FindByID tìm user theo ID
func (s *UserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		s.db.rebind("SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?"), id)
	return scanUser(row)
}

func (s *UserStore) emailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		s.db.rebind("SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)"), email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.Errorf(models.ErrNotFound, "user not found")
	}
	if err != nil {
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
