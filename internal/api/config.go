// Package api serves the match persistence store over HTTP and provides a
// client that posts finished matches to it.
package api

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds API configuration loaded from environment variables.
type Config struct {
	Addr           string
	DBPath         string
	CORSOrigins    []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
}

// LoadConfig reads the environment, after loading envFiles into it when
// they exist. Variables already set win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	cfg := Config{
		Addr:           getEnv("PONG_API_ADDR", ":8080"),
		DBPath:         getEnv("PONG_DB", "~/.pong/pong.db"),
		CORSOrigins:    splitList(getEnv("PONG_CORS_ORIGINS", "*")),
		ReadTimeout:    parseDuration(getEnv("PONG_API_READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout:   parseDuration(getEnv("PONG_API_WRITE_TIMEOUT", "15s"), 15*time.Second),
		RequestTimeout: parseDuration(getEnv("PONG_API_REQUEST_TIMEOUT", "10s"), 10*time.Second),
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
