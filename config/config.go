package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type UpstreamConfig struct {
	// URL is the origin of the platform REST API, e.g. https://api.example.com/api/v1
	URL     string
	Timeout time.Duration
	// ImageHosts is the allow-list of remote image domains the dashboard may load from.
	ImageHosts []string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		Upstream: UpstreamConfig{
			URL:        os.Getenv("UPSTREAM_URL"),
			Timeout:    time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
			ImageHosts: splitList(os.Getenv("IMAGE_HOSTS")),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			TTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 168)) * time.Hour,
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
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
