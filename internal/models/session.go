package models

import "time"

// SessionContext is what the assistant remembers between turns of one session.
type SessionContext struct {
	SessionID     string    `json:"sessionId"`
	LastLocation  *Location `json:"lastLocation,omitempty"`
	LastCommodity string    `json:"lastCommodity,omitempty"`
	TurnCount     int       `json:"turnCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewSessionContext starts an empty context for sessionID.
func NewSessionContext(sessionID string, now time.Time) *SessionContext {
	return &SessionContext{
		SessionID: sessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpired reports whether the session has been inactive longer than window.
// A zero window never expires.
func (s *SessionContext) IsExpired(now time.Time, window time.Duration) bool {
	if window <= 0 {
		return false
	}
	return now.Sub(s.UpdatedAt) > window
}
