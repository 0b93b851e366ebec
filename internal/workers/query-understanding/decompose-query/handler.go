// internal/workers/query-understanding/decompose-query/handler.go
package decomposequery

import (
	"context"
	"strings"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

const (
	TaskType = "decompose-query"
)

type Handler struct {
	config  *Config
	lexicon *lexicon.Lexicon
	inherit []models.EntityType
	logger  logger.Logger
}

func NewHandler(config *Config, lex *lexicon.Lexicon, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	var inherit []models.EntityType
	for _, t := range config.InheritTypes {
		if et := models.EntityType(t); et != models.EntityCommodity {
			inherit = append(inherit, et)
		}
	}
	return &Handler{
		config:  config,
		lexicon: lex,
		inherit: inherit,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	subs := h.Decompose(input.Normalized.Words(), input.Entities)

	h.logger.Debug("query decomposed", map[string]interface{}{
		"tokens":     len(input.Normalized.Tokens),
		"subQueries": len(subs),
	})
	return &Output{SubQueries: subs}, nil
}

// Decompose splits words at compound markers that separate two different
// intent keyword families. Entities stay with the segment that contains them
// and shared qualifiers are inherited across segments.
func (h *Handler) Decompose(words []string, entities models.Entities) []models.SubQuery {
	if len(words) == 0 {
		return []models.SubQuery{{Index: 0, Entities: models.Entities{}}}
	}

	covered := make([]bool, len(words))
	commodity := make([]bool, len(words))
	for _, e := range entities {
		for i := e.Start; i < e.End && i < len(words); i++ {
			if i >= 0 {
				covered[i] = true
				commodity[i] = commodity[i] || e.Type == models.EntityCommodity
			}
		}
	}

	spans := h.split(words, covered, commodity)

	subs := make([]models.SubQuery, len(spans))
	for i, sp := range spans {
		own := models.Entities{}
		for _, e := range entities {
			if e.Start >= sp.start && e.End <= sp.end {
				own = append(own, e)
			}
		}
		subs[i] = models.SubQuery{
			Index:    i,
			Text:     strings.Join(words[sp.start:sp.end], " "),
			Start:    sp.start,
			End:      sp.end,
			Entities: own,
		}
	}

	if len(subs) > 1 {
		h.propagate(subs)
	}
	return subs
}

// split returns the segment spans. Uncovered markers cut the words into
// pieces; a piece with no keyword family borrows one from its neighbours,
// forward when it names a commodity ("rice and wheat price") and backward
// otherwise. A marker becomes a boundary only between pieces whose families
// differ, and boundary markers are excluded from both spans.
func (h *Handler) split(words []string, covered, commodity []bool) []span {
	bounds := []int{-1}
	for i, w := range words {
		if !covered[i] && h.lexicon.IsMarker(w) {
			bounds = append(bounds, i)
		}
	}
	bounds = append(bounds, len(words))

	n := len(bounds) - 1
	fams := make([]lexicon.Family, n)
	known := make([]bool, n)
	named := make([]bool, n)
	for k := 0; k < n; k++ {
		lo, hi := bounds[k]+1, bounds[k+1]
		fams[k], known[k] = h.dominantFamily(words, covered, lo, hi)
		for i := lo; i < hi; i++ {
			if commodity[i] {
				named[k] = true
				break
			}
		}
	}

	eff := make([]lexicon.Family, n)
	resolved := make([]bool, n)
	for k := 0; k < n; k++ {
		if known[k] {
			eff[k], resolved[k] = fams[k], true
			continue
		}
		if named[k] {
			if f, ok := nextFamily(fams, known, k); ok {
				eff[k], resolved[k] = f, true
				continue
			}
		}
		if k > 0 && resolved[k-1] {
			eff[k], resolved[k] = eff[k-1], true
			continue
		}
		eff[k], resolved[k] = nextFamily(fams, known, k)
	}

	var spans []span
	start := 0
	for k := 1; k < n; k++ {
		if !resolved[k-1] || !resolved[k] || eff[k-1] == eff[k] {
			continue
		}
		m := bounds[k]
		spans = append(spans, span{start: start, end: m})
		start = m + 1
	}
	if start < len(words) {
		spans = append(spans, span{start: start, end: len(words)})
	} else if len(spans) == 0 {
		spans = append(spans, span{start: 0, end: len(words)})
	}
	return spans
}

func nextFamily(fams []lexicon.Family, known []bool, k int) (lexicon.Family, bool) {
	for j := k + 1; j < len(fams); j++ {
		if known[j] {
			return fams[j], true
		}
	}
	return "", false
}

// dominantFamily returns the keyword family with the most hits in
// words[start:end], ignoring tokens inside entity spans. Ties go to the
// family seen first.
func (h *Handler) dominantFamily(words []string, covered []bool, start, end int) (lexicon.Family, bool) {
	counts := make(map[lexicon.Family]int)
	var order []lexicon.Family
	for i := start; i < end; i++ {
		if covered[i] {
			continue
		}
		fam, ok := h.lexicon.FamilyOf(words[i])
		if !ok {
			continue
		}
		if counts[fam] == 0 {
			order = append(order, fam)
		}
		counts[fam]++
	}
	if len(order) == 0 {
		return "", false
	}

	best := order[0]
	for _, f := range order[1:] {
		if counts[f] > counts[best] {
			best = f
		}
	}
	return best, true
}

// propagate carries inheritable entities forward into later sub-queries and
// back-fills a location stated only later into earlier ones.
func (h *Handler) propagate(subs []models.SubQuery) {
	last := make(map[models.EntityType]models.Entity)
	for i := range subs {
		for _, t := range h.inherit {
			if e, ok := subs[i].Entities.First(t); ok {
				last[t] = e
				continue
			}
			if e, ok := last[t]; ok {
				subs[i].Entities = append(subs[i].Entities, e.Inherit(models.OriginSibling))
			}
		}
	}

	var firstLoc *models.Entity
	for i := range subs {
		if e, ok := subs[i].Entities.First(models.EntityLocation); ok {
			firstLoc = &e
			break
		}
	}
	if firstLoc == nil {
		return
	}
	for i := range subs {
		if !subs[i].Entities.Has(models.EntityLocation) {
			subs[i].Entities = append(subs[i].Entities, firstLoc.Inherit(models.OriginSibling))
		}
	}
}
