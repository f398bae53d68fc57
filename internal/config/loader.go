package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional .env file, an optional config
// file and the APP_* environment. A missing config file is fine as long as
// the environment supplies the upstream base URL; a missing base URL is not.
func Load(path string) (*Config, error) {
	// .env is a developer convenience, silently absent in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	// Keys must be declared for AutomaticEnv to pick them up without a file.
	for _, key := range []string{
		"server.addr",
		"upstream.base_url", "upstream.token", "upstream.timeout_seconds",
		"auth.password", "auth.session_secret",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env key %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.setDefaults()

	if err := validator.New().Struct(config.Upstream); err != nil {
		return nil, fmt.Errorf("upstream config validation error: %w", err)
	}
	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = "boardgame-tracker"
	}
}

// isNotExist matches the *PathError viper returns when SetConfigFile points
// at a path that does not exist (it bypasses ConfigFileNotFoundError then).
func isNotExist(err error) bool {
	return strings.Contains(err.Error(), "no such file")
}
