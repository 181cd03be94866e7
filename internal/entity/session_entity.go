package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one bounded conversation with a profile. A session is
// closed iff EndedAt is set.
type Session struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	ProfileName     string
	ConversationId  uuid.UUID
	StartedAt       time.Time
	EndedAt         *time.Time
	Label           *string
	LabelConfidence *float64
}

func (s *Session) Closed() bool {
	return s.EndedAt != nil
}

// Conversation groups the sessions of one user/profile pair over time.
type Conversation struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	ProfileName string
	StartedAt   time.Time
}
