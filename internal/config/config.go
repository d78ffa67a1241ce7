package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service settings, read from configs/app.env or the
// environment.
type Config struct {
	DBSource      string        `mapstructure:"DB_SOURCE"`
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
}

// LoadConfig reads configuration from the app.env file in the given path,
// with environment variables taking precedence.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	// Registering a default makes AutomaticEnv pick the key up even when
	// the config file is absent.
	viper.SetDefault("DB_SOURCE", "")
	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CACHE_TTL", "5m")

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		// Missing file is fine when DB_SOURCE comes from the environment.
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if config.DBSource == "" {
		err = errors.New("config: DB_SOURCE is required")
		return
	}
	if config.CacheTTL <= 0 {
		err = errors.New("config: CACHE_TTL must be positive")
		return
	}

	return
}
