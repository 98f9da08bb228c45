package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the planner.
type Config struct {
	DatabaseURL      string
	UpcomingCount    int
	ArchiveAfterDays int
	MaintenanceTime  string
	RetryAttempts    int
	RetryDelay       time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:      strings.TrimSpace(os.Getenv("DAYFLOW_DB")),
		UpcomingCount:    parseInt(os.Getenv("DAYFLOW_UPCOMING")),
		ArchiveAfterDays: parseInt(os.Getenv("DAYFLOW_ARCHIVE_AFTER_DAYS")),
		MaintenanceTime:  strings.TrimSpace(os.Getenv("DAYFLOW_MAINTENANCE_TIME")),
		RetryAttempts:    parseInt(os.Getenv("DAYFLOW_RETRY_ATTEMPTS")),
		RetryDelay:       parseDelay(strings.TrimSpace(os.Getenv("DAYFLOW_RETRY_DELAY"))),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "dayflow.db"
	}
	if cfg.UpcomingCount <= 0 {
		cfg.UpcomingCount = 5
	}
	if cfg.ArchiveAfterDays <= 0 {
		cfg.ArchiveAfterDays = 14
	}
	if cfg.MaintenanceTime == "" {
		cfg.MaintenanceTime = "00:05"
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}

	if len(strings.Split(cfg.MaintenanceTime, ":")) != 2 {
		return cfg, fmt.Errorf("DAYFLOW_MAINTENANCE_TIME must be HH:MM, got %q", cfg.MaintenanceTime)
	}

	return cfg, nil
}

func parseInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseDelay(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
