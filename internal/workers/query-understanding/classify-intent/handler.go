// internal/workers/query-understanding/classify-intent/handler.go
package classifyintent

import (
	"context"
	"math"
	"strings"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/metrics"
	"krishi-assistant/internal/models"
)

const (
	TaskType = "classify-intent"
)

// minFuzzyConfidence is the lowest commodity confidence the extractor emits.
const minFuzzyConfidence = 0.6

type Handler struct {
	config  *Config
	lexicon *lexicon.Lexicon
	logger  logger.Logger
}

func NewHandler(config *Config, lex *lexicon.Lexicon, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	return &Handler{
		config:  config,
		lexicon: lex,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	out := make([]models.SubQuery, len(input.SubQueries))
	for i, sq := range input.SubQueries {
		res := h.Classify(&sq)
		sq.Intent = res.Intent
		sq.Confidence = res.Confidence
		out[i] = sq

		metrics.IntentsClassified.WithLabelValues(string(res.Intent)).Inc()
		h.logger.Debug("intent classified", map[string]interface{}{
			"index":      sq.Index,
			"intent":     res.Intent,
			"confidence": res.Confidence,
		})
	}
	return &Output{SubQueries: out}, nil
}

// Classify runs the rule cascade over one sub-query. Keyword tokens inside
// the sub-query's own entity spans are not counted.
func (h *Handler) Classify(sq *models.SubQuery) Result {
	words := strings.Fields(sq.Text)
	if len(words) == 0 {
		return Result{Intent: models.IntentGreeting, Confidence: h.config.EmptyConfidence}
	}

	covered := make([]bool, len(words))
	for _, e := range sq.Entities {
		if e.Inherited {
			continue
		}
		for i := e.Start - sq.Start; i < e.End-sq.Start; i++ {
			if i >= 0 && i < len(covered) {
				covered[i] = true
			}
		}
	}

	hits := make(map[lexicon.Family]int)
	for i, w := range words {
		if covered[i] {
			continue
		}
		if fam, ok := h.lexicon.FamilyOf(w); ok {
			hits[fam]++
		}
	}

	dataHits := 0
	for _, r := range ruleOrder {
		dataHits += hits[r.family]
	}
	if hits[lexicon.FamilyGreeting] > 0 && dataHits == 0 {
		return Result{Intent: models.IntentGreeting, Confidence: h.config.GreetingConfidence}
	}

	var fired []scored
	for order, r := range ruleOrder {
		n := hits[r.family]
		if n == 0 {
			continue
		}
		s := scored{
			intent:  r.intent,
			density: float64(n) / float64(len(words)),
			order:   order,
		}
		s.confidence, s.lowPriority = h.score(r.intent, n, sq.Entities)
		fired = append(fired, s)
	}

	if len(fired) == 0 {
		conf := h.config.GeneralBase
		if len(sq.Entities) > 0 {
			conf = h.config.GeneralWithEntities
		}
		return Result{Intent: models.IntentGeneral, Confidence: conf}
	}

	best := fired[0]
	for _, s := range fired[1:] {
		if better(s, best) {
			best = s
		}
	}
	return Result{Intent: best.intent, Confidence: best.confidence}
}

// Rescore lifts a classified sub-query's confidence once context entities
// have been merged in. The intent is never changed and confidence never drops.
func (h *Handler) Rescore(subs []models.SubQuery) []models.SubQuery {
	for i := range subs {
		if r := h.Classify(&subs[i]); r.Intent == subs[i].Intent && r.Confidence > subs[i].Confidence {
			subs[i].Confidence = r.Confidence
		}
	}
	return subs
}

func (h *Handler) score(intent models.Intent, hits int, es models.Entities) (float64, bool) {
	c := h.config
	switch intent {
	case models.IntentMarketPrice:
		commodities := es.All(models.EntityCommodity)
		if len(commodities) == 0 {
			return c.MarketNoCommodity, true
		}
		lowest := commodities[0].Confidence
		for _, e := range commodities[1:] {
			lowest = math.Min(lowest, e.Confidence)
		}
		scale := (lowest - minFuzzyConfidence) / (1 - minFuzzyConfidence)
		conf := c.MarketMin + (c.MarketMax-c.MarketMin)*scale
		return math.Max(c.MarketMin, math.Min(c.MarketMax, conf)), false

	case models.IntentWeather:
		if es.Has(models.EntityLocation) {
			return c.WeatherWithLocation, false
		}
		return c.WeatherBase, false

	case models.IntentCropRecommendation:
		conf := c.CropBase
		if es.Has(models.EntityLocation) {
			conf += c.CropBonus
		}
		if es.Has(models.EntitySeason) {
			conf += c.CropBonus
		}
		return math.Min(conf, 1.0), false

	case models.IntentGovernmentScheme:
		if hits >= 2 {
			return c.SchemeBase + c.SchemeBonus, false
		}
		return c.SchemeBase, false
	}
	return c.GeneralBase, true
}

// better orders fired rules: regular before low priority, then keyword
// density, then cascade order.
func better(a, b scored) bool {
	if a.lowPriority != b.lowPriority {
		return !a.lowPriority
	}
	if a.density != b.density {
		return a.density > b.density
	}
	return a.order < b.order
}
