package main

import (
	"os"

	"github.com/biosecret/taskmanager/app"
	"github.com/biosecret/taskmanager/config"
	_ "github.com/biosecret/taskmanager/docs"
	"go.uber.org/zap"
)

//	@title						Task Manager API
//	@version					1.0
//	@description				User registration, token login and per-user task CRUD.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// .env có thể đặt APP_ENV nên phải nạp trước khi tạo logger
	if err := config.LoadENV(); err != nil {
		panic(err)
	}

	log, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	// setup and run app
	if err := app.SetupAndRunApp(log); err != nil {
		log.Fatal("app stopped", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
