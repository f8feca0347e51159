package session

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session identifies one pipeline run. Extractors receive it as their compute
// session handle and only check that one was supplied.
type Session struct {
	ID        uuid.UUID
	AppName   string
	StartedAt time.Time
}

// New starts a session for the named application
func New(appName string) *Session {
	return &Session{
		ID:        uuid.New(),
		AppName:   appName,
		StartedAt: time.Now().UTC(),
	}
}

// Fields returns the log fields that tag every line written during the session
func (s *Session) Fields() []zap.Field {
	return []zap.Field{
		zap.String("session_id", s.ID.String()),
		zap.String("app", s.AppName),
	}
}
