// FilePath: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server  ServerConfig
	MongoDB MongoConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MongoConfig struct {
	URI          string        `mapstructure:"uri"`
	Database     string        `mapstructure:"database"`
	Collection   string        `mapstructure:"collection"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	// .env is optional; real deployments configure the environment directly
	_ = godotenv.Load()

	viper.SetEnvPrefix("EMOGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys to Unmarshal;
	// keys without a default must be bound explicitly.
	_ = viper.BindEnv("mongodb.uri")

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// MongoDB defaults
	viper.SetDefault("mongodb.database", "Emogo")
	viper.SetDefault("mongodb.collection", "records")
	viper.SetDefault("mongodb.query_timeout", "30s")
}

func validateConfig(config *Config) error {
	if config.MongoDB.URI == "" {
		return fmt.Errorf("mongodb URI is required")
	}
	if config.MongoDB.Database == "" {
		return fmt.Errorf("mongodb database name is required")
	}
	if config.MongoDB.Collection == "" {
		return fmt.Errorf("mongodb collection name is required")
	}
	return nil
}
