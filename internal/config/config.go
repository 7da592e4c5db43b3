package config

import "github.com/kelseyhightower/envconfig"

// Config carries the process configuration, filled from the environment.
// main loads .env first, so a local .env file can provide any of these.
type Config struct {
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN" default:"host=localhost user=user password=password dbname=chatappdb port=5432 sslmode=disable"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// JWTSecret is the HMAC secret shared with the identity provider.
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// PushBaseURL is the base URL of the push-notification dispatcher.
	PushBaseURL string `envconfig:"PUSH_BASE_URL" default:"http://127.0.0.1:5001/chatapp/us-central1"`

	// TelegramBotToken enables the Telegram bridge when set.
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
