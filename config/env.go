package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config chứa các thiết lập đọc từ biến môi trường
type Config struct {
	Port        string        `env:"PORT" envDefault:"3000"`
	AppEnv      string        `env:"APP_ENV" envDefault:"production"`
	DatabaseURL string        `env:"DATABASE_URL" envDefault:"taskmanager.db"`
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`
	CORSOrigins string        `env:"CORS_ORIGINS" envDefault:"*"`
	MQTTURL     string        `env:"MQTT_URL"`
	MQTTClient  string        `env:"MQTT_CLIENT_ID" envDefault:"taskmanager"`
}

func (c Config) Development() bool {
	return c.AppEnv == "development"
}

// LoadENV nạp file .env (nếu có) vào môi trường
func LoadENV(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load đọc .env rồi parse biến môi trường vào Config
func Load(files ...string) (Config, error) {
	if err := LoadENV(files...); err != nil {
		return Config{}, err
	}
	return Parse()
}

// Parse chỉ đọc biến môi trường hiện tại
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTTTL < 0 {
		return Config{}, errors.New("JWT_TTL must not be negative")
	}
	return cfg, nil
}
