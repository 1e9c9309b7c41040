package chatprobe

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"CHATPROBE_LOG_LEVEL", "CHATPROBE_TIMEOUT", "CHATPROBE_SCENARIO_TIMEOUT",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.LogLevel != "warn" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.Timeout != 0 {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
	if cfg.ScenarioTimeout != 120*time.Second {
		t.Errorf("scenario timeout = %s", cfg.ScenarioTimeout)
	}
	if cfg.Redis.Addr() != "localhost:6379" {
		t.Errorf("redis addr = %s", cfg.Redis.Addr())
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CHATPROBE_LOG_LEVEL", "debug")
	t.Setenv("CHATPROBE_TIMEOUT", "5s")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := LoadConfig()
	if cfg.LogLevel != "debug" || cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Redis.Addr() != "redis:6380" {
		t.Errorf("redis addr = %s", cfg.Redis.Addr())
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("invalid REDIS_DB should fall back to 0, got %d", cfg.Redis.DB)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "REDIS_HOST=from-file\nREDIS_PASSWORD=\"secret\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("REDIS_HOST", "from-env")
	t.Setenv("REDIS_PASSWORD", "")
	os.Unsetenv("REDIS_PASSWORD")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("load env file: %v", err)
	}

	if got := os.Getenv("REDIS_HOST"); got != "from-env" {
		t.Errorf("existing variable overridden: %q", got)
	}
	if got := os.Getenv("REDIS_PASSWORD"); got != "secret" {
		t.Errorf("REDIS_PASSWORD = %q", got)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	if !IsMissingEnvFile(err) {
		t.Fatalf("expected missing file error, got %v", err)
	}

	if err := LoadEnvFile(""); err != nil {
		t.Fatalf("empty path should be ignored: %v", err)
	}
}
