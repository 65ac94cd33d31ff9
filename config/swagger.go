package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "github.com/biosecret/taskmanager/docs"
)

// SwaggerPath là prefix phục vụ UI và doc.json của API task
const SwaggerPath = "/swagger"

// AddSwaggerRoutes phục vụ tài liệu OpenAPI do package docs đăng ký
func AddSwaggerRoutes(router fiber.Router) {
	router.Get(SwaggerPath+"/*", swagger.New(swagger.Config{
		Title:        "Task Manager API",
		DeepLinking:  true,
		DocExpansion: "list",
	}))
}
