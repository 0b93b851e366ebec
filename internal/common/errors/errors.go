// Package errors provides the assistant's error taxonomy and its mapping to
// workflow (BPMN) errors.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Input / understanding
	ErrCodeInputEmpty       ErrorCode = "INPUT_EMPTY"
	ErrCodeEntityUnresolved ErrorCode = "ENTITY_UNRESOLVED"
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"

	// Provider access
	ErrCodeProviderUnavailable   ErrorCode = "PROVIDER_UNAVAILABLE"
	ErrCodeProviderTimeout       ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeMalformedPayload      ErrorCode = "MALFORMED_PAYLOAD"
	ErrCodeRateLimitWaitExceeded ErrorCode = "RATE_LIMIT_WAIT_EXCEEDED"
	ErrCodeLocationNotFound      ErrorCode = "LOCATION_NOT_FOUND"

	// Storage
	ErrCodeCacheUnavailable   ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func detailsOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// NewInputEmptyError marks an utterance with no usable tokens.
func NewInputEmptyError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInputEmpty,
		Message:   "Utterance is empty",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEntityUnresolvedError names the entity types an intent is missing.
func NewEntityUnresolvedError(intent string, missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEntityUnresolved,
		Message:   "Required entities could not be resolved",
		Details:   fmt.Sprintf("intent: %s, missing: %s", intent, strings.Join(missing, ",")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable input validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderUnavailableError wraps a network or status failure from a provider.
func NewProviderUnavailableError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnavailable,
		Message:   fmt.Sprintf("Provider '%s' unavailable", provider),
		Details:   detailsOf(err),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewProviderTimeoutError creates a retryable provider timeout error.
func NewProviderTimeoutError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   fmt.Sprintf("Provider '%s' timeout", provider),
		Details:   detailsOf(err),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewMalformedPayloadError reports a provider response that failed decoding or schema validation.
func NewMalformedPayloadError(provider string, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedPayload,
		Message:   fmt.Sprintf("Provider '%s' returned a malformed payload", provider),
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitWaitExceededError is returned when the enforced delay exceeds the allowed wait.
func NewRateLimitWaitExceededError(provider string, wait, max time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimitWaitExceeded,
		Message:   fmt.Sprintf("Rate limit wait for '%s' exceeds maximum", provider),
		Details:   fmt.Sprintf("wait: %s, max: %s", wait, max),
		Retryable: true,
		Metadata:  map[string]interface{}{"provider": provider},
		Timestamp: time.Now().UTC(),
	}
}

// NewLocationNotFoundError creates a non-retryable geocoding miss.
func NewLocationNotFoundError(place string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationNotFound,
		Message:   "Location not found",
		Details:   fmt.Sprintf("place: %s", place),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache backend error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache backend error",
		Details:   detailsOf(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// NewSessionStoreFailedError creates a retryable session store error.
func NewSessionStoreFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionStoreFailed,
		Message:   fmt.Sprintf("Session store %s failed", op),
		Details:   detailsOf(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   detailsOf(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   detailsOf(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputEmpty:            "INPUT_EMPTY",
	ErrCodeEntityUnresolved:      "ENTITY_UNRESOLVED",
	ErrCodeInvalidRequest:        "INVALID_REQUEST",
	ErrCodeProviderUnavailable:   "PROVIDER_UNAVAILABLE",
	ErrCodeProviderTimeout:       "PROVIDER_TIMEOUT",
	ErrCodeMalformedPayload:      "MALFORMED_PAYLOAD",
	ErrCodeRateLimitWaitExceeded: "PROVIDER_UNAVAILABLE",
	ErrCodeLocationNotFound:      "LOCATION_NOT_FOUND",
	ErrCodeCacheUnavailable:      "CACHE_UNAVAILABLE",
	ErrCodeSessionStoreFailed:    "SESSION_STORE_FAILED",
}

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProviderUnavailable,
		ErrCodeCacheUnavailable,
		ErrCodeSessionStoreFailed:
		return 3

	case ErrCodeProviderTimeout,
		ErrCodeRateLimitWaitExceeded:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// CodeOf extracts the ErrorCode from anywhere in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code, true
	}
	return "", false
}

// HasCode reports whether err carries code.
func HasCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROVIDER") || strings.Contains(codeStr, "PAYLOAD") || strings.Contains(codeStr, "RATE_LIMIT"):
		return "PROVIDER"
	case strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "SESSION"):
		return "STORAGE"
	case strings.Contains(codeStr, "LOCATION") || strings.Contains(codeStr, "ENTITY"):
		return "UNDERSTANDING"
	case strings.Contains(codeStr, "INPUT") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
