package handlers

import (
	"context"
	"errors"

	"github.com/biosecret/taskmanager/models"
	"github.com/biosecret/taskmanager/notify"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Authenticator là các thao tác của auth.Service mà handler dùng
type Authenticator interface {
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (string, models.User, error)
}

// TaskStore là các thao tác của database.TaskStore mà handler dùng
type TaskStore interface {
	List(ctx context.Context, userID string) ([]models.Task, error)
	Create(ctx context.Context, userID string, in models.TaskInput) (models.Task, error)
	Get(ctx context.Context, userID, taskID string) (models.Task, error)
	Update(ctx context.Context, userID, taskID string, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// Handler giữ các phụ thuộc của route, thay cho biến toàn cục
type Handler struct {
	Auth   Authenticator
	Tasks  TaskStore
	Events notify.Publisher
	Log    *zap.Logger
}

func New(auth Authenticator, tasks TaskStore, events notify.Publisher, log *zap.Logger) *Handler {
	if events == nil {
		events = notify.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Auth: auth, Tasks: tasks, Events: events, Log: log}
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleHealthCheck kiểm tra server còn sống
//
//	@Summary	Health check
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// ErrorHandler ánh xạ lỗi nghiệp vụ sang HTTP status và body JSON
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		code, message := fiber.StatusInternalServerError, "internal server error"

		var fe *fiber.Error
		switch {
		case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrConflict):
			code, message = fiber.StatusBadRequest, err.Error()
		case errors.Is(err, models.ErrAuth):
			code, message = fiber.StatusUnauthorized, err.Error()
		case errors.Is(err, models.ErrNotFound):
			code, message = fiber.StatusNotFound, err.Error()
		case errors.As(err, &fe):
			code, message = fe.Code, fe.Message
		default:
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(messageResponse{Message: message})
	}
}

func badBody() error {
	return models.Errorf(models.ErrValidation, "invalid request body")
}
