// internal/workers/data-fusion/compose-response/handler.go
package composeresponse

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

const (
	TaskType = "compose-response"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.DisplayZone == nil {
		config.DisplayZone = LoadConfig().DisplayZone
	}
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	resp := h.Compose(input.SubQueries, input.Answers, input.Language)
	h.logger.Debug("response composed", map[string]interface{}{
		"language":   resp.Language,
		"subQueries": len(resp.SubQueries),
		"confidence": resp.Confidence,
	})
	return &Output{Response: resp}, nil
}

// Compose renders one sentence per sub-query in order. Greetings and
// clarifications are emitted at most once each, at their first occurrence.
func (h *Handler) Compose(subs []models.SubQuery, answers []models.DataAnswer, lang models.Language) models.ComposedResponse {
	if _, ok := phrasebooks[lang]; !ok {
		lang = models.LanguageEnglish
	}
	pb := phrasebooks[lang]

	resp := models.ComposedResponse{
		Language:   lang,
		Confidence: models.OverallConfidence(subs),
		SubQueries: make([]models.SubQueryMeta, 0, len(subs)),
	}

	emitted := make(map[sentenceKind]bool)
	var sentences []string
	add := func(kind sentenceKind, s string) {
		if s == "" {
			return
		}
		if kind != kindData {
			if emitted[kind] {
				return
			}
			emitted[kind] = true
		}
		sentences = append(sentences, s)
	}

	for i := range subs {
		sq := &subs[i]
		answer := models.DataAnswer{Intent: sq.Intent, Freshness: models.FreshnessNone}
		if i < len(answers) {
			answer = answers[i]
		}

		kind, text := h.sentence(sq, &answer, lang, pb)
		add(kind, text)

		resp.SubQueries = append(resp.SubQueries, models.SubQueryMeta{
			Index:      sq.Index,
			Text:       sq.Text,
			Intent:     sq.Intent,
			Confidence: sq.Confidence,
			Entities:   sq.Entities,
			Source:     answer.Source,
			Freshness:  answer.Freshness,
			IsFallback: answer.IsFallback,
		})
	}

	if len(sentences) == 0 {
		sentences = append(sentences, pb.greeting)
	}
	resp.Text = strings.Join(sentences, pb.sentenceSeparator)
	return resp
}

func (h *Handler) sentence(sq *models.SubQuery, a *models.DataAnswer, lang models.Language, pb phrasebook) (sentenceKind, string) {
	switch sq.Intent {
	case models.IntentGreeting:
		return kindGreeting, pb.greeting
	case models.IntentGeneral:
		return kindGeneral, pb.general
	}

	if a.Freshness == models.FreshnessUnresolvable {
		if a.MissingLocation() {
			return kindClarifyLocation, pb.clarifyLocation
		}
		if a.MissingCommodity() {
			return kindClarifyCommodity, pb.clarifyCommodity
		}
		return kindData, pb.noData
	}

	place := placeName(sq)
	label := h.label(a, pb)

	switch p := a.Payload.(type) {
	case *models.MarketPrice:
		where := firstNonEmpty(p.Location, place)
		if where == "" {
			return kindClarifyLocation, pb.clarifyLocation
		}
		return kindData, fmt.Sprintf(pb.price, localize(cropNames, p.Commodity, lang), where, FormatRupees(p.Price), label)

	case *models.PriceList:
		where := firstNonEmpty(p.Location, place)
		if where == "" {
			return kindClarifyLocation, pb.clarifyLocation
		}
		if len(p.Prices) == 0 {
			return kindData, pb.noData
		}
		quotes := make([]string, len(p.Prices))
		for i, q := range p.Prices {
			quotes[i] = fmt.Sprintf(pb.quote, localize(cropNames, q.Commodity, lang), FormatRupees(q.Price))
		}
		return kindData, fmt.Sprintf(pb.priceList, where, strings.Join(quotes, pb.listSeparator), label)

	case *models.WeatherReport:
		where := firstNonEmpty(p.Location, place)
		if where == "" {
			return kindClarifyLocation, pb.clarifyLocation
		}
		cond := localize(conditions, p.Condition, lang)
		text := fmt.Sprintf(pb.weather, where, strings.ReplaceAll(cond, "_", " "), p.TemperatureC, p.HumidityPc, p.RainMM, label)
		if len(p.Daily) > 1 {
			text += pb.sentenceSeparator + outlook(p.Daily, pb)
		}
		return kindData, text

	case *models.CropAdvice:
		where := firstNonEmpty(p.Location, place)
		if where == "" {
			return kindClarifyLocation, pb.clarifyLocation
		}
		season := localize(seasonNames, p.Season, lang)
		if len(p.Crops) == 0 {
			return kindData, fmt.Sprintf(pb.noCrops, season, where, label)
		}
		names := make([]string, len(p.Crops))
		for i, c := range p.Crops {
			names[i] = localize(cropNames, c.Crop, lang)
		}
		return kindData, fmt.Sprintf(pb.crops, season, where, strings.Join(names, pb.listSeparator), label)

	case *models.SchemeList:
		if len(p.Schemes) == 0 {
			return kindData, pb.noData
		}
		n := len(p.Schemes)
		if h.config.MaxSchemes > 0 && n > h.config.MaxSchemes {
			n = h.config.MaxSchemes
		}
		names := make([]string, n)
		for i := 0; i < n; i++ {
			names[i] = p.Schemes[i].Name
		}
		return kindData, fmt.Sprintf(pb.schemes, strings.Join(names, pb.listSeparator), label)

	case nil:
		return kindData, pb.noData
	}

	h.logger.Warn("unhandled payload kind", map[string]interface{}{"kind": a.Payload.Kind()})
	return kindData, pb.noData
}

// label renders the freshness tag every data sentence carries.
func (h *Handler) label(a *models.DataAnswer, pb phrasebook) string {
	switch a.Freshness {
	case models.FreshnessLive:
		return fmt.Sprintf(pb.liveLabel, a.Source)
	case models.FreshnessCached:
		return fmt.Sprintf(pb.cachedLabel, a.FetchedAt.In(h.config.DisplayZone).Format("15:04"))
	default:
		return pb.fallbackLabel
	}
}

// FormatRupees renders an amount with the rupee sign, grouped thousands and
// two decimals.
func FormatRupees(v float64) string {
	return "₹" + humanize.FormatFloat("#,###.##", v)
}

func outlook(days []models.DailyForecast, pb phrasebook) string {
	maxTemp := days[0].MaxTempC
	rain := 0.0
	for _, d := range days {
		if d.MaxTempC > maxTemp {
			maxTemp = d.MaxTempC
		}
		rain += d.RainMM
	}
	return fmt.Sprintf(pb.outlook, len(days), maxTemp, rain)
}

// placeName is the canonical name of the sub-query's resolved location.
func placeName(sq *models.SubQuery) string {
	if loc := sq.Entities.LocationOf(); loc != nil {
		return loc.Name
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
