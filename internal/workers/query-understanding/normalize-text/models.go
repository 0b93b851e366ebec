// internal/workers/query-understanding/normalize-text/models.go
package normalizetext

import "krishi-assistant/internal/models"

type Input struct {
	Text         string `json:"text"`
	LanguageHint string `json:"languageHint,omitempty"`
}

type Output struct {
	Normalized models.NormalizedText `json:"normalized"`
}
