package config

import (
	"log/slog"
	"os"
	"time"
)

// Config is the process-level wiring read from the environment. Tunable
// analytics settings live in the YAML settings file instead (see settings.go).
type Config struct {
	Port            string
	SpendURL        string
	AttributionURL  string
	FunnelURL       string
	SettingsPath    string
	RefreshInterval time.Duration
	HTTPTimeout     time.Duration
	LogLevel        slog.Level

	InsightsAPIKey string
	InsightsURL    string
	InsightsModel  string
}

func FromEnv() Config {
	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	refresh := 5 * time.Minute
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			refresh = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		Port:            envOr("PORT", "8080"),
		SpendURL:        os.Getenv("SPEND_EXPORT_URL"),
		AttributionURL:  os.Getenv("ATTRIBUTION_EXPORT_URL"),
		FunnelURL:       os.Getenv("FUNNEL_EXPORT_URL"),
		SettingsPath:    envOr("SETTINGS_PATH", "settings.yaml"),
		RefreshInterval: refresh,
		HTTPTimeout:     to,
		LogLevel:        lvl,
		InsightsAPIKey:  os.Getenv("INSIGHTS_API_KEY"),
		InsightsURL:     envOr("INSIGHTS_API_URL", "https://api.openai.com/v1/chat/completions"),
		InsightsModel:   envOr("INSIGHTS_MODEL", "gpt-4o-mini"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
