package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     Log     `yaml:"log"`
	DB      DB      `yaml:"db"`
	OpenAI  OpenAI  `yaml:"openai"`
	Server  Server  `yaml:"server"`
	Session Session `yaml:"session"`
}

type OpenAI struct {
	Chat  ModelConfig `yaml:"chat" validate:"required"`
	Admin ModelConfig `yaml:"admin" validate:"required"`
}

type ModelConfig struct {
	// OpenAI base url
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1" validate:"required"`
	// OpenAI token
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// OpenAI model
	Model string `yaml:"model" example:"deepseek/deepseek-chat-v3-0324:free" validate:"required"`
}

type Server struct {
	// Listen address of the HTTP API
	Addr string `yaml:"addr" example:":8080"`
}

type Session struct {
	// Minutes of inactivity before a conversation context is evicted
	TTLMinutes int `yaml:"ttl_minutes" example:"30"`
	// Seconds between janitor sweeps
	JanitorIntervalSeconds int `yaml:"janitor_interval_seconds" example:"60"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

type DB struct {
	// Postgres username
	User string `yaml:"user" example:"postgres" validate:"required"`
	// Postgres password
	Pass string `yaml:"pass" validate:"required"`
	// Postgres host
	Host string `yaml:"host"  example:"localhost:5432" validate:"required"`
	// Postgres database name
	Database string `yaml:"database" example:"shopassist" validate:"required"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	applyDefaults(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DB.User == "" {
		cfg.DB.User = "postgres"
	}
	if cfg.DB.Pass == "" {
		cfg.DB.Pass = "postgres"
	}
	if cfg.DB.Host == "" {
		cfg.DB.Host = "localhost:5432"
	}
	if cfg.DB.Database == "" {
		cfg.DB.Database = "shopassist"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 30
	}
	if cfg.Session.JanitorIntervalSeconds <= 0 {
		cfg.Session.JanitorIntervalSeconds = 60
	}
}

func (db DB) URL() string {
	return "postgres://" + db.User + ":" + db.Pass + "@" + db.Host + "/" + db.Database
}
