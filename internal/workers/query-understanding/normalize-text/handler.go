// internal/workers/query-understanding/normalize-text/handler.go
package normalizetext

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

const (
	TaskType = "normalize-text"
)

const (
	danda       = '।'
	doubleDanda = '॥'
)

type Handler struct {
	config  *Config
	lexicon *lexicon.Lexicon
	fold    cases.Caser
	logger  logger.Logger
}

func NewHandler(config *Config, lex *lexicon.Lexicon, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	return &Handler{
		config:  config,
		lexicon: lex,
		fold:    cases.Fold(),
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute never fails; empty input yields Empty=true.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	n := h.Normalize(input.Text, input.LanguageHint)

	h.logger.Debug("text normalized", map[string]interface{}{
		"tokens":     len(n.Tokens),
		"script":     n.Script,
		"language":   n.Language,
		"confidence": n.LanguageConfidence,
	})
	return &Output{Normalized: n}, nil
}

// Normalize canonicalizes raw text and detects its script and language.
func (h *Handler) Normalize(raw, hint string) models.NormalizedText {
	text := raw
	if h.config.MaxRunes > 0 {
		if r := []rune(text); len(r) > h.config.MaxRunes {
			text = string(r[:h.config.MaxRunes])
		}
	}

	text = norm.NFC.String(text)
	text = h.fold.String(text)
	text = collapsePunctuation(text)
	words := strings.Fields(text)

	out := models.NormalizedText{
		Original: raw,
		Text:     strings.Join(words, " "),
		Tokens:   make([]models.Token, 0, len(words)),
		Script:   models.ScriptUnknown,
	}

	var latin, deva, romanized int
	for _, w := range words {
		tok := models.Token{Text: w, Script: scriptOf(w)}
		switch tok.Script {
		case models.ScriptLatin:
			latin++
			if h.lexicon.IsRomanizedHindi(w) {
				tok.Romanized = true
				romanized++
			}
		case models.ScriptDevanagari:
			deva++
		case models.ScriptMixed:
			latin++
			deva++
		}
		out.Tokens = append(out.Tokens, tok)
	}

	out.Empty = len(out.Tokens) == 0
	out.Script = overallScript(latin, deva)
	out.Language, out.LanguageConfidence = detectLanguage(latin, deva, romanized, hint)
	return out
}

// collapsePunctuation maps punctuation and symbols to spaces. '&' survives as
// its own token, and '/', '-', '.' survive between digits so dates and
// decimals stay intact. Zero-width joiners are dropped.
func collapsePunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i, r := range runes {
		switch {
		case r == '\u200c' || r == '\u200d':
			continue
		case r == danda || r == doubleDanda:
			b.WriteRune(' ')
		case r == '&':
			b.WriteString(" & ")
		case (r == '/' || r == '-' || r == '.') && between(runes, i, unicode.IsDigit):
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func between(runes []rune, i int, pred func(rune) bool) bool {
	return i > 0 && i < len(runes)-1 && pred(runes[i-1]) && pred(runes[i+1])
}

func isDevanagari(r rune) bool {
	return (r >= 0x0900 && r <= 0x097F) || (r >= 0xA8E0 && r <= 0xA8FF)
}

func scriptOf(word string) models.Script {
	var latin, deva bool
	for _, r := range word {
		switch {
		case isDevanagari(r):
			deva = true
		case unicode.Is(unicode.Latin, r):
			latin = true
		}
	}
	switch {
	case latin && deva:
		return models.ScriptMixed
	case deva:
		return models.ScriptDevanagari
	case latin:
		return models.ScriptLatin
	default:
		return models.ScriptUnknown
	}
}

func overallScript(latin, deva int) models.Script {
	switch {
	case latin > 0 && deva > 0:
		return models.ScriptMixed
	case deva > 0:
		return models.ScriptDevanagari
	case latin > 0:
		return models.ScriptLatin
	default:
		return models.ScriptUnknown
	}
}

// detectLanguage picks hi for a Devanagari majority, hinglish for Latin text
// with romanized Hindi or any Devanagari, and en otherwise. The confidence is
// the share of script-bearing tokens that support the verdict. With no
// letters at all a valid hint wins.
func detectLanguage(latin, deva, romanized int, hint string) (models.Language, float64) {
	total := latin + deva
	if total == 0 {
		if lang, ok := models.ParseLanguage(hint); ok {
			return lang, 0
		}
		return models.LanguageEnglish, 0
	}

	share := func(n int) float64 { return float64(n) / float64(total) }

	switch {
	case deva > latin:
		return models.LanguageHindi, share(deva)
	case romanized > 0 || deva > 0:
		return models.LanguageHinglish, share(romanized + deva)
	default:
		return models.LanguageEnglish, share(latin)
	}
}
