// internal/workers/data-fusion/compose-response/config.go
package composeresponse

import "time"

type Config struct {
	Timeout time.Duration
	// DisplayZone renders cached-data timestamps.
	DisplayZone *time.Location
	// MaxSchemes caps the schemes named in one sentence.
	MaxSchemes int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     time.Second,
		DisplayZone: time.FixedZone("IST", 5*3600+1800),
		MaxSchemes:  3,
	}
}
