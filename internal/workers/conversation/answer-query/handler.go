// internal/workers/conversation/answer-query/handler.go
package answerquery

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"krishi-assistant/internal/common/cache"
	apperrors "krishi-assistant/internal/common/errors"
	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/metrics"
	"krishi-assistant/internal/common/observability"
	"krishi-assistant/internal/common/providers"
	"krishi-assistant/internal/common/validation"
	"krishi-assistant/internal/models"
	sessioncontext "krishi-assistant/internal/workers/conversation/session-context"
	composeresponse "krishi-assistant/internal/workers/data-fusion/compose-response"
	fetchdata "krishi-assistant/internal/workers/data-fusion/fetch-data"
	classifyintent "krishi-assistant/internal/workers/query-understanding/classify-intent"
	decomposequery "krishi-assistant/internal/workers/query-understanding/decompose-query"
	extractentities "krishi-assistant/internal/workers/query-understanding/extract-entities"
	normalizetext "krishi-assistant/internal/workers/query-understanding/normalize-text"
)

const (
	TaskType = "answer-farmer-query"
)

var inputSchema = validation.MustCompile(TaskType, requestSchema)

// Dependencies are the shared collaborators of one assistant instance.
// Lexicon is required. Everything else may be nil: a nil Sessions uses an
// in-memory store, a nil Cache skips caching and a missing fetcher answers
// from the reference tables.
type Dependencies struct {
	Lexicon       *lexicon.Lexicon
	Geocoder      providers.Geocoder
	Sessions      sessioncontext.Store
	Cache         cache.Store
	Fetchers      map[models.Intent]providers.Fetcher
	Observability *observability.Observability
}

type Handler struct {
	config       *Config
	lexicon      *lexicon.Lexicon
	geocoder     providers.Geocoder
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger

	normalizer *normalizetext.Handler
	extractor  *extractentities.Handler
	decomposer *decomposequery.Handler
	classifier *classifyintent.Handler
	sessions   *sessioncontext.Handler
	fetcher    *fetchdata.Handler
	composer   *composeresponse.Handler
}

func NewHandler(config *Config, deps Dependencies, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	obs := deps.Observability
	if obs == nil {
		obs = observability.NewNoop()
	}
	lex := deps.Lexicon
	return &Handler{
		config:       config,
		lexicon:      lex,
		geocoder:     deps.Geocoder,
		obs:          obs,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log.WithFields(map[string]interface{}{"taskType": TaskType}),

		normalizer: normalizetext.NewHandler(config.Normalize, lex, log),
		extractor:  extractentities.NewHandler(config.Extract, lex, log),
		decomposer: decomposequery.NewHandler(config.Decompose, lex, log),
		classifier: classifyintent.NewHandler(config.Classify, lex, log),
		sessions:   sessioncontext.NewHandler(config.Session, deps.Sessions, log),
		fetcher:    fetchdata.NewHandler(config.Fetch, deps.Fetchers, deps.Cache, lex.SeasonForMonth, obs, log),
		composer:   composeresponse.NewHandler(config.Compose, log),
	}
}

// WithClock pins the time seen by date resolution, session expiry, cache
// freshness and the fallback tables.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.extractor.WithClock(now)
	h.sessions.WithClock(now)
	h.fetcher.WithClock(now)
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing farmer query", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	raw := []byte(job.GetVariables())
	if err := validateRequest(raw); err != nil {
		return nil, err
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, apperrors.NewInvalidRequestError(err.Error())
	}
	return &input, nil
}

func validateRequest(raw []byte) error {
	res, err := inputSchema.ValidateBytes(raw)
	if err != nil {
		return apperrors.NewInvalidRequestError(err.Error())
	}
	if !res.Valid {
		return apperrors.NewInvalidRequestError(res.Summary())
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute runs one conversational turn. Only a malformed request fails;
// provider, geocoder and session store trouble degrade the answer instead.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	started := time.Now()

	sessionID, err := h.validate(input)
	if err != nil {
		return nil, err
	}

	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.String("session.id", sessionID))
	defer span.End()

	caller := h.resolveCaller(ctx, input)

	normalized := h.normalizer.Normalize(input.Text, input.LanguageHint)
	if normalized.Empty {
		h.logger.WithError(apperrors.NewInputEmptyError()).Info("Empty utterance, answering with greeting", map[string]interface{}{
			"sessionId": input.SessionID,
		})
	}
	extracted, err := h.extractor.Execute(ctx, &extractentities.Input{Normalized: normalized})
	if err != nil {
		return nil, err
	}
	subs := h.decomposer.Decompose(normalized.Words(), extracted.Entities)

	classified, err := h.classifier.Execute(ctx, &classifyintent.Input{SubQueries: subs})
	if err != nil {
		return nil, err
	}

	session := h.sessions.Load(ctx, sessionID)
	subs = h.classifier.Rescore(h.sessions.Merge(classified.SubQueries, session, caller))

	fetched, err := h.fetcher.Execute(ctx, &fetchdata.Input{SubQueries: subs})
	if err != nil {
		return nil, err
	}

	lang := responseLanguage(input.LanguageHint, normalized.Language)
	composed := h.composer.Compose(subs, fetched.Answers, lang)

	if err := h.sessions.Save(ctx, session, subs, caller); err != nil {
		h.logger.WithError(err).Warn("session not saved", map[string]interface{}{
			"sessionId": sessionID,
		})
	}

	h.obs.RecordTurn(ctx, time.Since(started), string(composed.Language), len(subs))
	h.logger.Info("turn answered", map[string]interface{}{
		"sessionId":  sessionID,
		"language":   composed.Language,
		"subQueries": len(subs),
		"confidence": composed.Confidence,
	})

	return &Output{
		ResponseText:     composed.Text,
		ResponseLanguage: composed.Language,
		Confidence:       composed.Confidence,
		SubQueries:       composed.SubQueries,
		SessionID:        sessionID,
	}, nil
}

// validate checks the request and returns the session id to use, minting
// one when the caller sent none.
func (h *Handler) validate(input *Input) (string, error) {
	if input == nil {
		return "", apperrors.NewInvalidRequestError("request body is required")
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if !validation.ValidateSessionID(sessionID) {
		return "", apperrors.NewInvalidRequestError("sessionId contains unsupported characters")
	}

	if c := input.Coordinates; c != nil && !validation.ValidateCoordinates(c.Lat, c.Lon) {
		return "", apperrors.NewInvalidRequestError("coordinates out of range")
	}
	return sessionID, nil
}

// responseLanguage honours a valid hint and otherwise answers in the
// detected language.
func responseLanguage(hint string, detected models.Language) models.Language {
	if lang, ok := models.ParseLanguage(hint); ok {
		return lang
	}
	return detected
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	vars, err := toVariables(output)
	if err != nil {
		h.failJob(ctx, client, job, apperrors.NewMalformedPayloadError(TaskType, err.Error()))
		return
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(vars)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.WithError(err).Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
		})
		return
	}

	h.logger.Info("Job completed successfully", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"sessionId":  output.SessionID,
		"confidence": output.Confidence,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	code := string(apperrors.Normalize(err).Code)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func toVariables(output *Output) (map[string]interface{}, error) {
	raw, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}
	var vars map[string]interface{}
	if err := json.Unmarshal(raw, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}
