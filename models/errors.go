package models

import (
	"errors"
	"fmt"
)

// Các loại lỗi nghiệp vụ, handler ánh xạ sang HTTP status
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("unauthorized")
	ErrNotFound   = errors.New("not found")
)

// Error mang thông điệp cho client; errors.Is so khớp theo Kind
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf tạo lỗi nghiệp vụ thuộc loại kind
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
