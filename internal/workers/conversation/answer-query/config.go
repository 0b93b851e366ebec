// internal/workers/conversation/answer-query/config.go
package answerquery

import (
	"time"

	"krishi-assistant/internal/common/config"
	sessioncontext "krishi-assistant/internal/workers/conversation/session-context"
	composeresponse "krishi-assistant/internal/workers/data-fusion/compose-response"
	fetchdata "krishi-assistant/internal/workers/data-fusion/fetch-data"
	classifyintent "krishi-assistant/internal/workers/query-understanding/classify-intent"
	decomposequery "krishi-assistant/internal/workers/query-understanding/decompose-query"
	extractentities "krishi-assistant/internal/workers/query-understanding/extract-entities"
	normalizetext "krishi-assistant/internal/workers/query-understanding/normalize-text"
)

type Config struct {
	Enabled bool
	// Timeout bounds one whole turn.
	Timeout time.Duration
	// GeocodeTimeout bounds resolution of a caller-supplied place name.
	GeocodeTimeout time.Duration
	// SnapRadiusKm is how far caller coordinates may be from a gazetteer
	// city and still resolve to it.
	SnapRadiusKm    float64
	MaxRequestBytes int64

	Normalize *normalizetext.Config
	Extract   *extractentities.Config
	Decompose *decomposequery.Config
	Classify  *classifyintent.Config
	Session   *sessioncontext.Config
	Fetch     *fetchdata.Config
	Compose   *composeresponse.Config
}

func LoadConfig() *Config {
	return &Config{
		Enabled:         true,
		Timeout:         20 * time.Second,
		GeocodeTimeout:  3 * time.Second,
		SnapRadiusKm:    75,
		MaxRequestBytes: 64 << 10,
		Normalize:       normalizetext.LoadConfig(),
		Extract:         extractentities.LoadConfig(),
		Decompose:       decomposequery.LoadConfig(),
		Classify:        classifyintent.LoadConfig(),
		Session:         sessioncontext.LoadConfig(),
		Fetch:           fetchdata.LoadConfig(),
		Compose:         composeresponse.LoadConfig(),
	}
}

// FromAppConfig overlays the application config on the defaults.
func FromAppConfig(cfg *config.Config) *Config {
	c := LoadConfig()
	if cfg == nil {
		return c
	}

	if w, ok := cfg.Workers[TaskType]; ok {
		c.Enabled = w.Enabled
		if w.Timeout > 0 {
			c.Timeout = time.Duration(w.Timeout) * time.Millisecond
		}
	}
	if cfg.Pipeline.TurnTimeout > 0 {
		c.Timeout = time.Duration(cfg.Pipeline.TurnTimeout) * time.Millisecond
	}
	if cfg.Lexicon.SnapRadiusKm > 0 {
		c.SnapRadiusKm = cfg.Lexicon.SnapRadiusKm
	}
	if cfg.Providers.Geocoding.Timeout > 0 {
		c.GeocodeTimeout = time.Duration(cfg.Providers.Geocoding.Timeout) * time.Millisecond
	}
	if cfg.Session.InactivityWindow > 0 {
		c.Session.InactivityWindow = time.Duration(cfg.Session.InactivityWindow) * time.Millisecond
	}
	if cfg.Session.KeyPrefix != "" {
		c.Session.KeyPrefix = cfg.Session.KeyPrefix
	}
	c.Fetch = fetchdata.FromAppConfig(cfg)
	return c
}
