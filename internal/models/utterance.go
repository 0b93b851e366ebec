// internal/models/utterance.go
package models

import "time"

// Language is the tag attached to input and output text.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageHindi    Language = "hi"
	LanguageHinglish Language = "hinglish"
)

// ParseLanguage maps a caller hint to a supported language. ok is false for
// empty or unknown hints.
func ParseLanguage(hint string) (Language, bool) {
	switch hint {
	case "en", "en-IN", "english":
		return LanguageEnglish, true
	case "hi", "hi-IN", "hindi":
		return LanguageHindi, true
	case "hinglish", "hi-Latn":
		return LanguageHinglish, true
	}
	return "", false
}

// Script is the writing system detected in a piece of text.
type Script string

const (
	ScriptUnknown    Script = "unknown"
	ScriptLatin      Script = "latin"
	ScriptDevanagari Script = "devanagari"
	ScriptMixed      Script = "mixed"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Utterance is one user turn as handed to the core. It is never mutated after
// construction.
type Utterance struct {
	Text         string       `json:"text"`
	LanguageHint string       `json:"languageHint,omitempty"`
	SessionID    string       `json:"sessionId"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	LocationName string       `json:"locationName,omitempty"`
	ReceivedAt   time.Time    `json:"receivedAt"`
}

// Token is a single normalized word.
type Token struct {
	Text   string `json:"text"`
	Script Script `json:"script"`
	// Romanized marks Latin-script Hindi words such as "karo" or "batao".
	Romanized bool `json:"romanized,omitempty"`
}

// NormalizedText is derived from an Utterance and discarded after the turn.
type NormalizedText struct {
	Original           string   `json:"original"`
	Text               string   `json:"text"`
	Tokens             []Token  `json:"tokens"`
	Script             Script   `json:"script"`
	Language           Language `json:"language"`
	LanguageConfidence float64  `json:"languageConfidence"`
	Empty              bool     `json:"empty"`
}

// Words returns the token texts in order.
func (n *NormalizedText) Words() []string {
	out := make([]string, len(n.Tokens))
	for i, t := range n.Tokens {
		out[i] = t.Text
	}
	return out
}
