package handlers

import (
	"github.com/biosecret/taskmanager/middleware"
	"github.com/biosecret/taskmanager/models"
	"github.com/biosecret/taskmanager/notify"
	"github.com/biosecret/taskmanager/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HandleAllTasks lấy tất cả task của user hiện tại
//
//	@Summary	List the caller's tasks, newest first
//	@Tags		tasks
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		models.Task
//	@Failure	401	{object}	messageResponse
//	@Router		/api/tasks [get]
func (h *Handler) HandleAllTasks(c *fiber.Ctx) error {
	tasks, err := h.Tasks.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

// HandleCreateTask tạo mới một task
//
//	@Summary	Create a task
//	@Tags		tasks
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		models.TaskInput	true	"Task"
//	@Success	201		{object}	models.Task
//	@Failure	400		{object}	messageResponse
//	@Failure	401		{object}	messageResponse
//	@Router		/api/tasks [post]
func (h *Handler) HandleCreateTask(c *fiber.Ctx) error {
	var in models.TaskInput
	if err := c.BodyParser(&in); err != nil {
		return badBody()
	}

	userID := middleware.UserID(c)
	task, err := h.Tasks.Create(c.UserContext(), userID, in)
	if err != nil {
		return err
	}

	h.publish(c, notify.NewTaskEvent(notify.TaskCreated, userID, task.ID, &task))
	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleGetOneTask lấy một task theo ID
//
//	@Summary	Get one task
//	@Tags		tasks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Task ID"
//	@Success	200	{object}	models.Task
//	@Failure	401	{object}	messageResponse
//	@Failure	404	{object}	messageResponse
//	@Router		/api/tasks/{id} [get]
func (h *Handler) HandleGetOneTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if !utils.IsID(id) {
		return taskNotFound()
	}

	task, err := h.Tasks.Get(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleUpdateTask cập nhật một phần task
//
//	@Summary	Partially update a task
//	@Tags		tasks
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"Task ID"
//	@Param		body	body		models.TaskPatch	true	"Fields to change"
//	@Success	200		{object}	models.Task
//	@Failure	400		{object}	messageResponse
//	@Failure	401		{object}	messageResponse
//	@Failure	404		{object}	messageResponse
//	@Router		/api/tasks/{id} [put]
func (h *Handler) HandleUpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if !utils.IsID(id) {
		return taskNotFound()
	}

	var patch models.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody()
	}

	userID := middleware.UserID(c)
	task, err := h.Tasks.Update(c.UserContext(), userID, id, patch)
	if err != nil {
		return err
	}

	h.publish(c, notify.NewTaskEvent(notify.TaskUpdated, userID, task.ID, &task))
	return c.Status(fiber.StatusOK).JSON(task)
}

// HandleDeleteTask xóa một task
//
//	@Summary	Delete a task
//	@Tags		tasks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Task ID"
//	@Success	200	{object}	messageResponse
//	@Failure	401	{object}	messageResponse
//	@Failure	404	{object}	messageResponse
//	@Router		/api/tasks/{id} [delete]
func (h *Handler) HandleDeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if !utils.IsID(id) {
		return taskNotFound()
	}

	userID := middleware.UserID(c)
	if err := h.Tasks.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}

	h.publish(c, notify.NewTaskEvent(notify.TaskDeleted, userID, id, nil))
	return c.Status(fiber.StatusOK).JSON(messageResponse{Message: "task deleted"})
}

func (h *Handler) publish(c *fiber.Ctx, ev notify.Event) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(c.UserContext(), ev); err != nil {
		h.Log.Warn("failed to publish task event",
			zap.String("event", ev.Type),
			zap.String("task_id", ev.TaskID),
			zap.Error(err),
		)
	}
}

func taskNotFound() error {
	return models.Errorf(models.ErrNotFound, "task not found")
}
