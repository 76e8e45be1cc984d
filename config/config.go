package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Host                 string        `env:"HOST"`
	Port                 int           `env:"PORT,default=8080" validate:"min=1,max=65535"`
	LogLevel             string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	LogFile              string        `env:"LOG_FILE"`
	GinMode              string        `env:"GIN_MODE,default=release" validate:"oneof=debug release test"`
	SessionCookie        string        `env:"SESSION_COOKIE,default=chat_session" validate:"required"`
	SessionIdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT,default=30m" validate:"gt=0"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL,default=1m" validate:"gt=0"`
	TutorialStep         int           `env:"TUTORIAL_STEP,default=3" validate:"min=1,max=3"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s" validate:"gt=0"`
}

// Address is the listen address of the HTTP server
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads envFile if it exists, then the environment. The result is
// not validated so that command-line overrides can still be applied.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

// Validate checks the value ranges of every field
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
