package models

import (
	"strings"
	"time"
)

// Trạng thái hợp lệ của một task
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Task là cấu trúc dữ liệu của một task
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskInput là body của request tạo task
type TaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// TaskPatch chứa các trường được cập nhật; nil nghĩa là giữ nguyên
type TaskPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ValidStatus kiểm tra status có thuộc tập giá trị cho phép không
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Normalize áp dụng giá trị mặc định và kiểm tra input
func (in TaskInput) Normalize() (title, description, status string, err error) {
	title = strings.TrimSpace(in.Title)
	if title == "" {
		return "", "", "", Errorf(ErrValidation, "title is required")
	}

	status = StatusPending
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	if !ValidStatus(status) {
		return "", "", "", Errorf(ErrValidation, "invalid status %q", status)
	}

	if in.Description != nil {
		description = *in.Description
	}
	return title, description, status, nil
}

// Validate kiểm tra các trường có mặt trong patch
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Errorf(ErrValidation, "title cannot be empty")
	}
	if p.Status != nil && !ValidStatus(*p.Status) {
		return Errorf(ErrValidation, "invalid status %q", *p.Status)
	}
	return nil
}
