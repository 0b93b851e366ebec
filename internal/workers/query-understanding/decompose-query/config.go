// internal/workers/query-understanding/decompose-query/config.go
package decomposequery

import "time"

type Config struct {
	Timeout time.Duration
	// InheritTypes are the entity types later sub-queries inherit from
	// earlier ones. Commodities are never inherited.
	InheritTypes []string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      time.Second,
		InheritTypes: []string{"location", "date_range", "season"},
	}
}
