package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PONG_API_ADDR", "PONG_DB", "PONG_CORS_ORIGINS", "PONG_API_READ_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig() with a missing file failed: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.ReadTimeout != 15*time.Second || len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("LoadConfig() = %+v, expected defaults", cfg)
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	t.Setenv("PONG_API_ADDR", ":9999")
	// godotenv skips variables that are set, even to ""
	for _, key := range []string{"PONG_DB", "PONG_CORS_ORIGINS", "PONG_API_REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PONG_API_ADDR=:7000\nPONG_DB=/tmp/pong.db\nPONG_CORS_ORIGINS=http://a.test, http://b.test\nPONG_API_REQUEST_TIMEOUT=bogus\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(envFile)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, expected the environment to win over the file", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/pong.db" {
		t.Errorf("DBPath = %q, expected /tmp/pong.db", cfg.DBPath)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v, expected two trimmed origins", cfg.CORSOrigins)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, expected the default for a bad value", cfg.RequestTimeout)
	}
}
