package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	UserId  uuid.UUID `json:"userId" validate:"required"`
	Profile string    `json:"profile" validate:"required"`
}

type SessionResponse struct {
	Id              uuid.UUID  `json:"id"`
	UserId          uuid.UUID  `json:"userId"`
	Profile         string     `json:"profile"`
	ConversationId  uuid.UUID  `json:"conversationId"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	Label           *string    `json:"label,omitempty"`
	LabelConfidence *float64   `json:"labelConfidence,omitempty"`
}

type CloseSessionResponse struct {
	Label         string `json:"label"`
	ClosureEntry  string `json:"closureEntry"`
	AlreadyClosed bool   `json:"alreadyClosed"`
}
