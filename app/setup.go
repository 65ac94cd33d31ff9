package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biosecret/taskmanager/auth"
	"github.com/biosecret/taskmanager/config"
	"github.com/biosecret/taskmanager/database"
	"github.com/biosecret/taskmanager/handlers"
	"github.com/biosecret/taskmanager/notify"
	"github.com/biosecret/taskmanager/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server gom mọi phụ thuộc của ứng dụng, tạo một lần lúc khởi động
type Server struct {
	Config config.Config
	DB     *database.DB
	Users  *database.UserStore
	Tasks  *database.TaskStore
	Auth   *auth.Service
	Events notify.Publisher
	Log    *zap.Logger
	App    *fiber.App

	accessLog bool
}

// Option thay đổi Server trước khi dựng Fiber app
type Option func(*Server)

// WithPublisher dùng publisher có sẵn thay vì kết nối MQTT_URL
func WithPublisher(p notify.Publisher) Option {
	return func(s *Server) { s.Events = p }
}

// WithoutAccessLog tắt middleware logger của Fiber
func WithoutAccessLog() Option {
	return func(s *Server) { s.accessLog = false }
}

// New mở database, dựng các service và route
func New(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...Option) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{Config: cfg, Log: log}
	s.accessLog = true
	for _, opt := range opts {
		opt(s)
	}

	db, err := database.Open(ctx, cfg.DatabaseURL, log.Named("database"))
	if err != nil {
		return nil, err
	}
	s.DB = db
	s.Users = database.NewUserStore(db)
	s.Tasks = database.NewTaskStore(db)

	s.Auth, err = auth.NewService(s.Users, auth.Options{
		Secret:     []byte(cfg.JWTSecret),
		TTL:        cfg.JWTTTL,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	if s.Events == nil {
		s.Events, err = newPublisher(cfg, log.Named("notify"))
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	s.App = s.newFiber()
	return s, nil
}

func newPublisher(cfg config.Config, log *zap.Logger) (notify.Publisher, error) {
	if cfg.MQTTURL == "" {
		return notify.Nop{}, nil
	}
	return notify.NewMQTTPublisher(cfg.MQTTURL, cfg.MQTTClient, log)
}

// newFiber tạo ứng dụng Fiber với middleware và route
func (s *Server) newFiber() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "taskmanager",
		ErrorHandler:          handlers.ErrorHandler(s.Log),
		DisableStartupMessage: !s.Config.Development(),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: s.Config.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Đính kèm middleware để xử lý lỗi và ghi log
	app.Use(recover.New())
	if s.accessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency}\n",
		}))
	}

	h := handlers.New(s.Auth, s.Tasks, s.Events, s.Log.Named("http"))
	router.SetupRoutes(app, h, s.Auth)

	config.AddSwaggerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})

	return app
}

// Close giải phóng Fiber, publisher và database
func (s *Server) Close() error {
	var err error
	if s.App != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = multierr.Append(err, s.App.ShutdownWithContext(ctx))
	}
	if s.Events != nil {
		err = multierr.Append(err, s.Events.Close())
	}
	err = multierr.Append(err, s.DB.Close())
	return err
}

// SetupAndRunApp khởi động ứng dụng và chờ tín hiệu dừng
func SetupAndRunApp(log *zap.Logger) error {
	// Load biến môi trường từ file .env
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := New(ctx, cfg, log)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		errCh <- s.App.Listen(":" + cfg.Port)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			err = fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	return multierr.Append(err, s.Close())
}
