// internal/workers/conversation/session-context/handler.go
package sessioncontext

import (
	"context"
	"time"

	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/metrics"
	"krishi-assistant/internal/models"
)

const (
	TaskType = "session-context"
)

type Handler struct {
	config *Config
	store  Store
	now    func() time.Time
	logger logger.Logger
}

func NewHandler(config *Config, store Store, log logger.Logger) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	return &Handler{
		config: config,
		store:  store,
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// Execute loads the session and fills gaps in the sub-queries from the
// caller location and the session.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	session := h.Load(ctx, input.SessionID)
	subs := h.Merge(input.SubQueries, session, input.CallerLocation)
	return &Output{SubQueries: subs, Session: session}, nil
}

// Load returns the stored context for sessionID, or a fresh one when the
// session is unknown, expired or the store fails.
func (h *Handler) Load(ctx context.Context, sessionID string) *models.SessionContext {
	now := h.now()

	sc, err := h.store.Get(ctx, sessionID)
	if err != nil {
		metrics.SessionStoreErrors.WithLabelValues("get").Inc()
		h.logger.WithError(err).Warn("session load failed, starting fresh", map[string]interface{}{
			"sessionId": sessionID,
		})
		return models.NewSessionContext(sessionID, now)
	}
	if sc == nil {
		return models.NewSessionContext(sessionID, now)
	}
	if sc.IsExpired(now, h.config.InactivityWindow) {
		h.logger.Debug("session expired", map[string]interface{}{
			"sessionId": sessionID,
			"updatedAt": sc.UpdatedAt,
		})
		return models.NewSessionContext(sessionID, now)
	}
	return sc
}

// Merge returns copies of subs where data intents lacking a location take
// the caller location, then the session location, and market price queries
// lacking a commodity take the session commodity. Entities stated in the
// utterance always win.
func (h *Handler) Merge(subs []models.SubQuery, session *models.SessionContext, caller *models.Location) []models.SubQuery {
	out := make([]models.SubQuery, len(subs))
	for i, sq := range subs {
		sq.Entities = append(models.Entities{}, sq.Entities...)

		if sq.Intent.NeedsData() && !sq.Entities.Has(models.EntityLocation) {
			switch {
			case caller != nil && caller.Name != "":
				sq.Entities = append(sq.Entities, locationEntity(caller, 1.0, models.OriginCaller))
			case session != nil && session.LastLocation != nil:
				sq.Entities = append(sq.Entities, locationEntity(session.LastLocation, h.config.SessionLocationConfidence, models.OriginSession))
			}
		}

		if sq.Intent == models.IntentMarketPrice && !sq.Entities.Has(models.EntityCommodity) &&
			session != nil && session.LastCommodity != "" {
			sq.Entities = append(sq.Entities, models.Entity{
				Type:       models.EntityCommodity,
				Value:      session.LastCommodity,
				Start:      -1,
				End:        -1,
				Confidence: h.config.SessionCommodityConfidence,
				Inherited:  true,
				Origin:     models.OriginSession,
			})
		}
		out[i] = sq
	}
	return out
}

// Save records the turn's location and commodity and persists the session.
func (h *Handler) Save(ctx context.Context, session *models.SessionContext, subs []models.SubQuery, caller *models.Location) error {
	if loc := turnLocation(subs, caller); loc != nil {
		copied := *loc
		session.LastLocation = &copied
	}
	if c := turnCommodity(subs); c != "" {
		session.LastCommodity = c
	}
	session.TurnCount++
	session.UpdatedAt = h.now()

	if err := h.store.Put(ctx, session); err != nil {
		metrics.SessionStoreErrors.WithLabelValues("put").Inc()
		h.logger.WithError(err).Warn("session save failed", map[string]interface{}{
			"sessionId": session.SessionID,
		})
		return err
	}

	h.logger.Debug("session saved", map[string]interface{}{
		"sessionId": session.SessionID,
		"turnCount": session.TurnCount,
	})
	return nil
}

// turnLocation is the last location stated in the utterance, else the
// caller location.
func turnLocation(subs []models.SubQuery, caller *models.Location) *models.Location {
	var found *models.Location
	for _, sq := range subs {
		for _, e := range sq.Entities.All(models.EntityLocation) {
			if e.Origin == models.OriginUtterance {
				found = models.Entities{e}.LocationOf()
			}
		}
	}
	if found == nil && caller != nil && caller.Name != "" {
		found = caller
	}
	return found
}

func turnCommodity(subs []models.SubQuery) string {
	last := ""
	for _, sq := range subs {
		for _, e := range sq.Entities.All(models.EntityCommodity) {
			if e.Origin == models.OriginUtterance {
				last = e.Value
			}
		}
	}
	return last
}

func locationEntity(loc *models.Location, conf float64, origin models.EntityOrigin) models.Entity {
	copied := *loc
	return models.Entity{
		Type:       models.EntityLocation,
		Value:      loc.Name,
		Start:      -1,
		End:        -1,
		Confidence: conf,
		Inherited:  true,
		Origin:     origin,
		Location:   &copied,
	}
}
