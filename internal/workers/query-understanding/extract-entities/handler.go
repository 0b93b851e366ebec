// internal/workers/query-understanding/extract-entities/handler.go
package extractentities

import (
	"context"
	"sort"
	"strings"
	"time"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

const (
	TaskType = "extract-entities"
)

type Handler struct {
	config  *Config
	lexicon *lexicon.Lexicon
	now     func() time.Time
	logger  logger.Logger
}

func NewHandler(config *Config, lex *lexicon.Lexicon, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	return &Handler{
		config:  config,
		lexicon: lex,
		now:     time.Now,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// WithClock replaces the reference clock for relative dates.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	ref := input.ReferenceTime
	if ref.IsZero() {
		ref = h.now()
	}
	ref = ref.In(h.config.Location)

	entities := h.Extract(input.Normalized.Words(), ref)

	h.logger.Debug("entities extracted", map[string]interface{}{
		"count": len(entities),
		"types": typesOf(entities),
	})
	return &Output{Entities: entities}, nil
}

// Extract finds entities in normalized words. Candidates from every position
// and length are resolved longest span first, then left to right, then by
// confidence; the survivors are returned in text order.
func (h *Handler) Extract(words []string, now time.Time) models.Entities {
	if len(words) == 0 {
		return models.Entities{}
	}

	cands := h.explicitDates(words, now)
	cands = append(cands, h.phraseCandidates(words, now)...)
	cands = append(cands, h.fuzzyCandidates(words, cands)...)

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.length != b.length {
			return a.length > b.length
		}
		if a.entity.Start != b.entity.Start {
			return a.entity.Start < b.entity.Start
		}
		return a.entity.Confidence > b.entity.Confidence
	})

	taken := make([]bool, len(words))
	var chosen models.Entities
	for _, c := range cands {
		if overlaps(taken, c.entity.Start, c.entity.End) {
			continue
		}
		for i := c.entity.Start; i < c.entity.End; i++ {
			taken[i] = true
		}
		e := c.entity
		e.Raw = strings.Join(words[e.Start:e.End], " ")
		chosen = append(chosen, e)
	}

	sort.SliceStable(chosen, func(i, j int) bool { return chosen[i].Start < chosen[j].Start })
	if chosen == nil {
		chosen = models.Entities{}
	}
	return chosen
}

// phraseCandidates runs exact lookups for every n-gram up to the longest
// alias length.
func (h *Handler) phraseCandidates(words []string, now time.Time) []candidate {
	var out []candidate
	maxN := h.lexicon.MaxPhraseTokens()

	for i := range words {
		for n := 1; n <= maxN && i+n <= len(words); n++ {
			phrase := strings.Join(words[i:i+n], " ")
			single := n == 1

			if rel, ok := h.lexicon.RelativeDate(phrase); ok {
				out = append(out, h.candidate(models.EntityDateRange, resolveRelative(rel, now), i, n, ConfidenceCanonical))
			}
			if hit, ok := h.lexicon.LookupSeason(phrase); ok {
				out = append(out, h.candidate(models.EntitySeason, h.lexicon.Season(hit.Index).Name, i, n, hitConfidence(hit)))
			}
			if single && h.lexicon.IsReserved(phrase) {
				continue
			}
			if hit, ok := h.lexicon.LookupPlace(phrase); ok {
				out = append(out, h.placeCandidate(hit.Index, i, n, hitConfidence(hit)))
			}
			if hit, ok := h.lexicon.LookupCommodity(phrase); ok {
				out = append(out, h.candidate(models.EntityCommodity, h.lexicon.Commodity(hit.Index).Name, i, n, hitConfidence(hit)))
			}
		}
	}
	return out
}

// fuzzyCandidates tries edit-distance matches for single tokens no exact
// candidate covers. Places win ties over commodities.
func (h *Handler) fuzzyCandidates(words []string, exact []candidate) []candidate {
	covered := make([]bool, len(words))
	for _, c := range exact {
		for i := c.entity.Start; i < c.entity.End; i++ {
			covered[i] = true
		}
	}

	var out []candidate
	for i, w := range words {
		if covered[i] || h.lexicon.IsReserved(w) {
			continue
		}
		place, okPlace := h.lexicon.FuzzyPlace(w)
		crop, okCrop := h.lexicon.FuzzyCommodity(w)

		switch {
		case okPlace && (!okCrop || place.Distance <= crop.Distance):
			out = append(out, h.placeCandidate(place.Index, i, 1, fuzzyConfidence(place.Distance)))
		case okCrop:
			out = append(out, h.candidate(models.EntityCommodity, h.lexicon.Commodity(crop.Index).Name, i, 1, fuzzyConfidence(crop.Distance)))
		}
	}
	return out
}

func (h *Handler) candidate(t models.EntityType, value string, start, n int, conf float64) candidate {
	return candidate{
		entity: models.Entity{
			Type:       t,
			Value:      value,
			Start:      start,
			End:        start + n,
			Confidence: conf,
			Origin:     models.OriginUtterance,
		},
		length: n,
	}
}

func (h *Handler) placeCandidate(idx, start, n int, conf float64) candidate {
	p := h.lexicon.Place(idx)
	c := h.candidate(models.EntityLocation, p.Name, start, n, conf)
	state := p.State
	if p.Kind == lexicon.PlaceState && state == "" {
		state = p.Name
	}
	c.entity.Location = &models.Location{Name: p.Name, State: state, Lat: p.Lat, Lon: p.Lon}
	return c
}

func hitConfidence(hit lexicon.Hit) float64 {
	if hit.Canonical {
		return ConfidenceCanonical
	}
	return ConfidenceAlias
}

func fuzzyConfidence(distance int) float64 {
	if distance <= 1 {
		return ConfidenceFuzzy1
	}
	return ConfidenceFuzzy2
}

func overlaps(taken []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if taken[i] {
			return true
		}
	}
	return false
}

func typesOf(es models.Entities) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = string(e.Type)
	}
	return out
}
