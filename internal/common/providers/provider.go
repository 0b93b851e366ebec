// Package providers defines the contracts the fetch orchestrator and the
// entity resolver consume, plus the error mapping shared by the adapters.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"krishi-assistant/internal/common/cache"
	apperrors "krishi-assistant/internal/common/errors"
	apphttp "krishi-assistant/internal/common/http"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

const (
	NameMarketPrice = "market_price"
	NameWeather     = "weather"
	NameGeocoding   = "geocoding"
	NameSchemes     = "schemes"
	NameCrops       = "crops"
)

// Fetcher retrieves live data for one data domain.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, req models.FetchRequest) (models.Payload, error)
}

// Geocoder resolves a free-form place name. A miss is reported as a
// LOCATION_NOT_FOUND error.
type Geocoder interface {
	Resolve(ctx context.Context, place string) (*models.Location, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc struct {
	ProviderName string
	Fn           func(ctx context.Context, req models.FetchRequest) (models.Payload, error)
}

func (f FetcherFunc) Name() string { return f.ProviderName }

func (f FetcherFunc) Fetch(ctx context.Context, req models.FetchRequest) (models.Payload, error) {
	return f.Fn(ctx, req)
}

// WrapError maps transport failures to the provider error taxonomy. Errors
// already carrying a code pass through.
func WrapError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.CodeOf(err); ok {
		return err
	}
	if errors.Is(err, apphttp.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewProviderTimeoutError(provider, err)
	}
	return apperrors.NewProviderUnavailableError(provider, err)
}

// CachedGeocoder memoizes successful resolutions in a cache store under the
// geocoding provider name. Misses are not cached.
type CachedGeocoder struct {
	next  Geocoder
	store cache.Store
	ttl   time.Duration
	log   logger.Logger
	now   func() time.Time
}

func NewCachedGeocoder(next Geocoder, store cache.Store, ttl time.Duration, log logger.Logger) *CachedGeocoder {
	return &CachedGeocoder{
		next:  next,
		store: store,
		ttl:   ttl,
		log:   log.WithFields(map[string]interface{}{"provider": NameGeocoding}),
		now:   time.Now,
	}
}

func (g *CachedGeocoder) Resolve(ctx context.Context, place string) (*models.Location, error) {
	key := "place=" + place

	if entry, err := g.store.Get(ctx, NameGeocoding, key); err != nil {
		g.log.Warn("geocode cache read failed", map[string]interface{}{"error": err})
	} else if entry != nil {
		var loc models.Location
		if err := json.Unmarshal(entry.Payload, &loc); err == nil {
			return &loc, nil
		}
	}

	loc, err := g.next.Resolve(ctx, place)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(loc)
	if err == nil {
		entry := &cache.Entry{Kind: "location", Payload: raw, FetchedAt: g.now()}
		if err := g.store.Set(ctx, NameGeocoding, key, entry, g.ttl); err != nil {
			g.log.Warn("geocode cache write failed", map[string]interface{}{"error": err})
		}
	}
	return loc, nil
}
