// internal/workers/data-fusion/fetch-data/handler.go
package fetchdata

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"krishi-assistant/internal/common/cache"
	apperrors "krishi-assistant/internal/common/errors"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/metrics"
	"krishi-assistant/internal/common/observability"
	"krishi-assistant/internal/common/providers"
	"krishi-assistant/internal/models"
)

const (
	TaskType = "fetch-data"
)

// freshnessRank orders freshness from strongest to weakest.
var freshnessRank = map[models.Freshness]int{
	models.FreshnessLive:     0,
	models.FreshnessCached:   1,
	models.FreshnessFallback: 2,
}

type Handler struct {
	config   *Config
	fetchers map[models.Intent]providers.Fetcher
	cache    cache.Store
	fallback *Fallback
	seasonOf func(month int) string
	obs      *observability.Observability
	now      func() time.Time
	logger   logger.Logger
}

// NewHandler wires one fetcher per data intent. A missing fetcher or a nil
// cache simply skips that link of the chain.
func NewHandler(
	config *Config,
	fetchers map[models.Intent]providers.Fetcher,
	store cache.Store,
	seasonOf func(month int) string,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if obs == nil {
		obs = observability.NewNoop()
	}
	h := &Handler{
		config:   config,
		fetchers: fetchers,
		cache:    store,
		seasonOf: seasonOf,
		obs:      obs,
		now:      time.Now,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
	h.fallback = NewFallback(seasonOf, func() time.Time { return h.now() })
	return h
}

func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute resolves every sub-query concurrently. Resolution never fails, so
// the group never cancels its siblings.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	answers := make([]models.DataAnswer, len(input.SubQueries))

	var g errgroup.Group
	if h.config.MaxParallelFetches > 0 {
		g.SetLimit(h.config.MaxParallelFetches)
	}
	for i := range input.SubQueries {
		i := i
		g.Go(func() error {
			answers[i] = h.Resolve(ctx, &input.SubQueries[i])
			return nil
		})
	}
	_ = g.Wait()

	return &Output{Answers: answers}, nil
}

// Resolve returns the answer for one sub-query.
func (h *Handler) Resolve(ctx context.Context, sq *models.SubQuery) models.DataAnswer {
	answer := models.DataAnswer{Intent: sq.Intent, Freshness: models.FreshnessNone}

	if !sq.Intent.NeedsData() {
		return answer
	}
	if missing := sq.Missing(); len(missing) > 0 {
		answer.Freshness = models.FreshnessUnresolvable
		answer.Missing = missing
		metrics.Answers.WithLabelValues(string(sq.Intent), string(answer.Freshness)).Inc()

		names := make([]string, len(missing))
		for i, m := range missing {
			names[i] = string(m)
		}
		h.logger.Debug("sub-query unresolvable", map[string]interface{}{
			"index": sq.Index,
			"error": apperrors.NewEntityUnresolvedError(string(sq.Intent), names).Error(),
		})
		return answer
	}

	reqs := h.requests(sq)
	results := make([]result, len(reqs))
	for i, req := range reqs {
		results[i] = h.chain(ctx, req)
	}

	if sq.Intent == models.IntentMarketPrice && len(results) > 1 {
		answer.Payload = priceList(reqs[0], results)
	} else {
		answer.Payload = results[0].payload
	}

	weakest := results[0]
	for _, r := range results[1:] {
		if freshnessRank[r.freshness] > freshnessRank[weakest.freshness] {
			weakest = r
		}
	}
	answer.Freshness = weakest.freshness
	answer.Source = weakest.source
	answer.FetchedAt = weakest.fetchedAt
	answer.IsFallback = weakest.freshness == models.FreshnessFallback

	metrics.Answers.WithLabelValues(string(sq.Intent), string(answer.Freshness)).Inc()
	return answer
}

// requests builds the provider entity sets. A market query naming several
// commodities gets one request per commodity.
func (h *Handler) requests(sq *models.SubQuery) []models.FetchRequest {
	base := models.FetchRequest{
		Intent:   sq.Intent,
		Location: sq.Entities.LocationOf(),
	}
	if e, ok := sq.Entities.First(models.EntityDateRange); ok {
		base.DateRange = e.Value
	}
	if e, ok := sq.Entities.First(models.EntitySeason); ok {
		base.Season = e.Value
	}

	switch sq.Intent {
	case models.IntentMarketPrice:
		commodities := sq.Entities.Values(models.EntityCommodity)
		reqs := make([]models.FetchRequest, len(commodities))
		for i, c := range commodities {
			reqs[i] = base
			reqs[i].Commodity = c
		}
		return reqs
	case models.IntentCropRecommendation:
		if base.Season == "" && h.seasonOf != nil {
			base.Season = h.seasonOf(int(h.now().Month()))
		}
	case models.IntentGovernmentScheme:
		base.Query = sq.Text
	}
	return []models.FetchRequest{base}
}

// chain serves a fresh cache entry, else a live fetch, else the fallback.
func (h *Handler) chain(ctx context.Context, req models.FetchRequest) result {
	fetcher := h.fetchers[req.Intent]
	provider := string(req.Intent)
	if fetcher != nil {
		provider = fetcher.Name()
	}
	key := req.CacheKey()
	ttl := h.config.cacheTTL(provider)

	ctx, span := h.obs.StartSpan(ctx, "fetch."+provider,
		attribute.String("provider", provider),
		attribute.String("cache.key", key),
	)
	defer span.End()

	if r, ok := h.fromCache(ctx, provider, key, ttl); ok {
		span.SetAttributes(attribute.String("freshness", string(r.freshness)))
		return r
	}

	if fetcher != nil {
		payload, err := h.live(ctx, fetcher, req)
		if err == nil {
			now := h.now()
			h.store(ctx, provider, key, payload, now, ttl)
			span.SetAttributes(attribute.String("freshness", string(models.FreshnessLive)))
			return result{
				payload:   payload,
				freshness: models.FreshnessLive,
				source:    h.config.sourceLabel(provider),
				fetchedAt: now,
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		code, _ := apperrors.CodeOf(err)
		h.logger.WithError(err).Warn("live fetch failed, using fallback", map[string]interface{}{
			"provider": provider,
			"code":     code,
			"key":      key,
		})
	}

	span.SetAttributes(attribute.String("freshness", string(models.FreshnessFallback)))
	return result{
		payload:   h.fallback.For(req),
		freshness: models.FreshnessFallback,
		source:    FallbackSource,
		fetchedAt: h.now(),
	}
}

func (h *Handler) live(ctx context.Context, fetcher providers.Fetcher, req models.FetchRequest) (payload models.Payload, err error) {
	provider := fetcher.Name()
	ctx, cancel := context.WithTimeout(ctx, h.config.providerTimeout(provider))
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.ProviderCallDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
		outcome := "ok"
		if err != nil {
			outcome = "error"
			if code, ok := apperrors.CodeOf(err); ok {
				outcome = string(code)
			}
		}
		metrics.ProviderCalls.WithLabelValues(provider, outcome).Inc()
	}()

	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = apperrors.NewProviderUnavailableError(provider, fmt.Errorf("panic: %v", r))
		}
	}()

	payload, err = fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, providers.WrapError(provider, err)
	}
	if payload == nil {
		return nil, apperrors.NewMalformedPayloadError(provider, "empty payload")
	}
	return payload, nil
}

func (h *Handler) fromCache(ctx context.Context, provider, key string, ttl time.Duration) (result, bool) {
	if h.cache == nil {
		return result{}, false
	}

	entry, err := h.cache.Get(ctx, provider, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(provider, "error").Inc()
		h.logger.WithError(err).Warn("cache lookup failed", map[string]interface{}{"provider": provider})
		return result{}, false
	}
	if entry == nil || h.now().Sub(entry.FetchedAt) > ttl {
		metrics.CacheLookups.WithLabelValues(provider, "miss").Inc()
		return result{}, false
	}

	payload, err := models.DecodePayload(entry.Payload)
	if err != nil {
		metrics.CacheLookups.WithLabelValues(provider, "corrupt").Inc()
		return result{}, false
	}

	metrics.CacheLookups.WithLabelValues(provider, "hit").Inc()
	return result{
		payload:   payload,
		freshness: models.FreshnessCached,
		source:    h.config.sourceLabel(provider),
		fetchedAt: entry.FetchedAt,
	}, true
}

func (h *Handler) store(ctx context.Context, provider, key string, payload models.Payload, fetchedAt time.Time, ttl time.Duration) {
	if h.cache == nil {
		return
	}
	raw, err := models.EncodePayload(payload)
	if err != nil {
		return
	}
	entry := &cache.Entry{Kind: string(payload.Kind()), Payload: raw, FetchedAt: fetchedAt}
	if err := h.cache.Set(ctx, provider, key, entry, ttl); err != nil {
		h.logger.WithError(err).Warn("cache write failed", map[string]interface{}{"provider": provider})
	}
}

// priceList folds per-commodity quotes into one payload.
func priceList(req models.FetchRequest, results []result) models.Payload {
	list := &models.PriceList{}
	if req.Location != nil {
		list.Location = req.Location.Name
	}
	for _, r := range results {
		if mp, ok := r.payload.(*models.MarketPrice); ok {
			list.Prices = append(list.Prices, *mp)
		}
	}
	return list
}
