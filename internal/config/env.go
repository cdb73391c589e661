package config

import (
	"os"
	"strings"
)

// ApplyEnv overrides cfg from SIMPLERQUESTS_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := getEnv("SIMPLERQUESTS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := getEnv("SIMPLERQUESTS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := getEnv("SIMPLERQUESTS_STORAGE"); v != "" {
		cfg.Storage = strings.ToLower(v)
	}
	if v := getEnv("SIMPLERQUESTS_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := getEnv("SIMPLERQUESTS_VIEW_STYLE"); v != "" {
		cfg.Defaults.ViewStyle = strings.ToLower(v)
	}
	switch strings.ToLower(getEnv("SIMPLERQUESTS_WATCH_SETTINGS")) {
	case "1", "true", "yes":
		cfg.WatchSettings = true
	case "0", "false", "no":
		cfg.WatchSettings = false
	}
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
