package config

import (
	"time"

	"github.com/go-pg/pg/v10"
)

type Config struct {
	Database pg.Options
	App      struct {
		Host string
		Port int
	}
	AI AI
}

// AI configures the suggestion provider.
type AI struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
	MaxSuggestions int
}

// Timeout returns the suggestion deadline, defaulting to 30s.
func (a AI) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}
