// internal/workers/query-understanding/normalize-text/config.go
package normalizetext

import "time"

type Config struct {
	Timeout time.Duration
	// MaxRunes truncates pathological input before tokenizing.
	MaxRunes int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  time.Second,
		MaxRunes: 2000,
	}
}
