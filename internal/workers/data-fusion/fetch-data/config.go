// internal/workers/data-fusion/fetch-data/config.go
package fetchdata

import (
	"time"

	"krishi-assistant/internal/common/config"
	"krishi-assistant/internal/common/providers"
)

type Config struct {
	Timeout time.Duration
	// MaxParallelFetches bounds concurrent sub-query resolution per turn.
	MaxParallelFetches int

	DefaultProviderTimeout time.Duration
	DefaultCacheTTL        time.Duration
	ProviderTimeouts       map[string]time.Duration
	CacheTTLs              map[string]time.Duration
	SourceLabels           map[string]string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                15 * time.Second,
		MaxParallelFetches:     4,
		DefaultProviderTimeout: 5 * time.Second,
		DefaultCacheTTL:        6 * time.Hour,
		ProviderTimeouts:       map[string]time.Duration{},
		CacheTTLs: map[string]time.Duration{
			providers.NameMarketPrice: 6 * time.Hour,
			providers.NameWeather:     time.Hour,
			providers.NameCrops:       24 * time.Hour,
			providers.NameSchemes:     24 * time.Hour,
		},
		SourceLabels: map[string]string{
			providers.NameMarketPrice: "Agmarknet",
			providers.NameWeather:     "Open-Meteo",
			providers.NameCrops:       "crop suitability database",
			providers.NameSchemes:     "scheme directory",
		},
	}
}

// FromAppConfig applies per-provider timeouts and cache windows from the
// application config.
func FromAppConfig(cfg *config.Config) *Config {
	c := LoadConfig()
	if cfg == nil {
		return c
	}
	if cfg.Pipeline.MaxParallelFetches > 0 {
		c.MaxParallelFetches = cfg.Pipeline.MaxParallelFetches
	}
	for name, p := range cfg.Providers.All() {
		if p.Timeout > 0 {
			c.ProviderTimeouts[name] = time.Duration(p.Timeout) * time.Millisecond
		}
		if p.CacheTTL > 0 {
			c.CacheTTLs[name] = time.Duration(p.CacheTTL) * time.Millisecond
		}
	}
	return c
}

func (c *Config) providerTimeout(name string) time.Duration {
	if d, ok := c.ProviderTimeouts[name]; ok && d > 0 {
		return d
	}
	return c.DefaultProviderTimeout
}

func (c *Config) cacheTTL(name string) time.Duration {
	if d, ok := c.CacheTTLs[name]; ok && d > 0 {
		return d
	}
	return c.DefaultCacheTTL
}

func (c *Config) sourceLabel(name string) string {
	if l, ok := c.SourceLabels[name]; ok {
		return l
	}
	return name
}
