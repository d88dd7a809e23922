package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	GitHub GitHubConfig `env-prefix:"GITHUB_"`
	Server ServerConfig `env-prefix:"SERVER_"`
	Log    LogConfig    `env-prefix:"LOG_"`
	Theme  string       `env:"UI_THEME" env-default:"dark"`
}

type GitHubConfig struct {
	// Token is sent with every request. Without it GitHub rejects the GraphQL query.
	Token            string        `env:"TOKEN"`
	GraphQLURL       string        `env:"GRAPHQL_URL"`
	APIURL           string        `env:"API_URL"`
	Timeout          time.Duration `env:"TIMEOUT" env-default:"30s"`
	RateLimitMaxWait time.Duration `env:"RATE_LIMIT_MAX_WAIT" env-default:"0s"`
}

type ServerConfig struct {
	Addr            string        `env:"ADDR" env-default:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" env-default:"info"`
	Format string `env:"FORMAT" env-default:"text"`
}

// Load reads configuration from the environment, after loading a .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, nil
}
