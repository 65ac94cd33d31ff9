// Package notify phát các sự kiện thay đổi task ra ngoài (MQTT).
package notify

import (
	"context"
	"time"

	"github.com/biosecret/taskmanager/models"
)

// Loại sự kiện
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// Event là payload gửi lên broker
type Event struct {
	Type   string       `json:"event"`
	UserID string       `json:"user_id"`
	TaskID string       `json:"task_id"`
	Task   *models.Task `json:"task,omitempty"`
	At     time.Time    `json:"at"`
}

// Publisher gửi sự kiện; lỗi chỉ được log, không làm hỏng request
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop bỏ qua mọi sự kiện, dùng khi MQTT_URL trống
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

func (Nop) Close() error { return nil }

// NewTaskEvent tạo sự kiện cho task; task nil với sự kiện xóa
func NewTaskEvent(kind, userID, taskID string, task *models.Task) Event {
	return Event{
		Type:   kind,
		UserID: userID,
		TaskID: taskID,
		Task:   task,
		At:     time.Now().UTC(),
	}
}
