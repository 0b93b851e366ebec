// internal/workers/query-understanding/extract-entities/config.go
package extractentities

import "time"

// Match confidences by kind of lexicon hit.
const (
	ConfidenceCanonical = 1.0
	ConfidenceAlias     = 0.9
	ConfidenceFuzzy1    = 0.75
	ConfidenceFuzzy2    = 0.6
)

type Config struct {
	Timeout time.Duration
	// Location is the zone relative dates are resolved in.
	Location *time.Location
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  time.Second,
		Location: time.FixedZone("IST", 5*3600+1800),
	}
}
