package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime configuration for both binaries. Environment
// variables use the MOTHERCARE_ prefix.
type Config struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Empty DATABASE_URL selects the in-memory store (dev mode).
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	RedisAddress  string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`

	RabbitMQURL   string `envconfig:"RABBITMQ_URL" default:""`
	MailQueueName string `envconfig:"MAIL_QUEUE_NAME" default:"mail-events"`

	// Session tokens are HS256-signed and expire after TokenTTL.
	JWTSecret string        `envconfig:"JWT_SECRET" default:"segredo"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"1h"`

	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`

	// Reset codes expire together with the session window.
	ResetCodeTTL time.Duration `envconfig:"RESET_CODE_TTL" default:"1h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("mothercare", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
