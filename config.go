package chatprobe

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings read from the environment.
type Config struct {
	LogLevel        string
	Timeout         time.Duration
	ScenarioTimeout time.Duration
	Redis           RedisConfig
}

// RedisConfig locates the Redis instance backing the chat service.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file reports os.ErrNotExist.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("env file %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	return nil
}

// IsMissingEnvFile reports whether err came from an env file that does not exist.
func IsMissingEnvFile(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// LoadConfig reads configuration from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		LogLevel:        getEnv("CHATPROBE_LOG_LEVEL", "warn"),
		Timeout:         getEnvDuration("CHATPROBE_TIMEOUT", 0),
		ScenarioTimeout: getEnvDuration("CHATPROBE_SCENARIO_TIMEOUT", 120*time.Second),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}

	return fallback
}
