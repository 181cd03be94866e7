package entity

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one turn of a session. Entries are append-only; ordering by
// CreatedAt ascending is load-bearing for meta derivation and closure
// detection.
type Entry struct {
	Id                uuid.UUID
	SessionId         uuid.UUID
	Role              string
	Content           string
	CreatedAt         time.Time
	ReactionTag       *string
	RecommendationTag *string
}

// SystemEvent is a best-effort audit marker attached to a session.
type SystemEvent struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	EventType string
	Note      string
	CreatedAt time.Time
}

// TokenUsage is one completion-call accounting row.
type TokenUsage struct {
	Id               uuid.UUID
	SessionId        uuid.UUID
	Model            string
	PromptTokens     int
	CompletionTokens int
	CreatedAt        time.Time
}
