package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	// GatewayBaseURL is the base URL of the booking backend that owns durable
	// state. Every mutation round-trips through it.
	GatewayBaseURL string
	GatewayTimeout time.Duration

	// CORSAllowedOrigins is a comma-separated allowlist of browser origins.
	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	gatewayURL := strings.TrimSpace(os.Getenv("GATEWAY_BASE_URL"))
	if gatewayURL == "" {
		gatewayURL = "http://localhost:8000"
	}
	gatewayURL = strings.TrimSuffix(gatewayURL, "/")

	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GATEWAY_TIMEOUT_SECONDS")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		GatewayBaseURL:     gatewayURL,
		GatewayTimeout:     timeout,
		CORSAllowedOrigins: origins,
	}
}
