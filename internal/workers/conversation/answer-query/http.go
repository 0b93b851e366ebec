// internal/workers/conversation/answer-query/http.go
package answerquery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "krishi-assistant/internal/common/errors"
)

const Route = "/api/v1/query"

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ServeHTTP answers POST /api/v1/query. The request body is an Input and the
// response an Output; malformed requests get 400 and never reach the
// pipeline.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.writeError(w, http.StatusMethodNotAllowed, apperrors.NewInvalidRequestError("method "+r.Method+" not allowed"))
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxRequestBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, apperrors.NewInvalidRequestError("request body too large"))
			return
		}
		h.writeError(w, http.StatusBadRequest, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	if err := validateRequest(raw); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		h.writeError(w, http.StatusBadRequest, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, &input)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest) {
			status = http.StatusBadRequest
		}
		h.writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	stdErr := apperrors.Normalize(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error("query failed", map[string]interface{}{"code": stdErr.Code})
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	}})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
