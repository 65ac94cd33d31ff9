package router

import (
	"github.com/biosecret/taskmanager/handlers"
	"github.com/biosecret/taskmanager/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler, verifier middleware.TokenVerifier) {
	app.Get("/health", h.HandleHealthCheck)

	auth := app.Group("/api/auth")
	auth.Post("/register", h.RegisterHandler)
	auth.Post("/login", h.LoginHandler)

	tasks := app.Group("/api/tasks", middleware.JWTMiddleware(verifier))

	tasks.Get("/", h.HandleAllTasks)
	tasks.Post("/", h.HandleCreateTask)
	tasks.Get("/:id", h.HandleGetOneTask)
	tasks.Put("/:id", h.HandleUpdateTask)
	tasks.Delete("/:id", h.HandleDeleteTask)
}
