// internal/workers/query-understanding/classify-intent/config.go
package classifyintent

import "time"

type Config struct {
	Timeout time.Duration

	GreetingConfidence float64
	EmptyConfidence    float64

	MarketMin         float64
	MarketMax         float64
	MarketNoCommodity float64

	WeatherBase         float64
	WeatherWithLocation float64

	CropBase  float64
	CropBonus float64

	SchemeBase  float64
	SchemeBonus float64

	GeneralBase         float64
	GeneralWithEntities float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout: time.Second,

		GreetingConfidence: 0.95,
		EmptyConfidence:    0.5,

		MarketMin:         0.7,
		MarketMax:         1.0,
		MarketNoCommodity: 0.55,

		WeatherBase:         0.85,
		WeatherWithLocation: 1.0,

		CropBase:  0.8,
		CropBonus: 0.1,

		SchemeBase:  0.85,
		SchemeBonus: 0.1,

		GeneralBase:         0.3,
		GeneralWithEntities: 0.4,
	}
}
