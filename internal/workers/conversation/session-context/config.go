// internal/workers/conversation/session-context/config.go
package sessioncontext

import "time"

const DefaultKeyPrefix = "agri:session:"

type Config struct {
	Timeout time.Duration
	// InactivityWindow expires a session that has not been updated for this
	// long. Zero keeps sessions forever.
	InactivityWindow time.Duration
	KeyPrefix        string
	// SessionCommodityConfidence is assigned to a commodity carried over from
	// a previous turn.
	SessionCommodityConfidence float64
	SessionLocationConfidence  float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                    2 * time.Second,
		InactivityWindow:           30 * time.Minute,
		KeyPrefix:                  DefaultKeyPrefix,
		SessionCommodityConfidence: 0.8,
		SessionLocationConfidence:  0.9,
	}
}
