// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const maxRetryBackoff = 30 * time.Second

// ErrorHandler settles failed Zeebe jobs. Retryable codes go back to the
// broker with a backoff; everything else is thrown as a BPMN error so the
// process can route it.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)
	vars := errorVariables(bpmnErr)

	remaining, retry := retriesLeft(stdErr, job.GetRetries())
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"jobType":            job.GetType(),
		"processInstanceKey": job.GetProcessInstanceKey(),
		"errorCode":          string(stdErr.Code),
		"errorCategory":      GetErrorCategory(stdErr.Code),
		"details":            stdErr.Details,
		"retry":              retry,
		"retriesLeft":        remaining,
	})

	if retry {
		cmd := client.NewFailJobCommand().
			JobKey(job.GetKey()).
			Retries(remaining).
			RetryBackoff(backoffFor(job.GetRetries() - remaining)).
			ErrorMessage(bpmnErr.Message)
		if withVars, err := cmd.VariablesFromString(vars); err == nil {
			settle(ctx, h.logger, job, withVars.Send)
			return
		}
		settle(ctx, h.logger, job, cmd.Send)
		return
	}

	cmd := client.NewThrowErrorCommand().
		JobKey(job.GetKey()).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)
	if withVars, err := cmd.VariablesFromString(vars); err == nil {
		settle(ctx, h.logger, job, withVars.Send)
		return
	}
	settle(ctx, h.logger, job, cmd.Send)
}

// settle dispatches a fail or throw command, reporting only transport
// failures.
func settle[T any](ctx context.Context, log Logger, job entities.Job, send func(context.Context) (T, error)) {
	if _, err := send(ctx); err != nil {
		log.Error("Failed to settle job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
	}
}

// retriesLeft caps the broker's remaining retries by the code's budget.
func retriesLeft(stdErr *StandardError, jobRetries int32) (int32, bool) {
	budget := int32(GetRetryCount(stdErr.Code))
	if !stdErr.Retryable || budget == 0 || jobRetries <= 1 {
		return 0, false
	}
	remaining := jobRetries - 1
	if remaining > budget {
		remaining = budget
	}
	return remaining, true
}

func backoffFor(attempt int32) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 5 {
		return maxRetryBackoff
	}
	return min(time.Second<<uint(attempt-1), maxRetryBackoff)
}

func errorVariables(bpmnErr *BPMNError) string {
	raw, err := json.Marshal(bpmnErr.ToErrorVariables())
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// Normalize returns the StandardError in err's chain, or an INTERNAL_ERROR
// wrapping err.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   detailsOf(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}
