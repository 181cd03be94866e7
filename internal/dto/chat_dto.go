package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoadChatRequest struct {
	UserId  uuid.UUID `json:"userId" validate:"required"`
	Profile string    `json:"profile" validate:"required"`
	Limit   int       `json:"limit" validate:"omitempty,min=1,max=200"`
	Offset  int       `json:"offset" validate:"omitempty,min=0"`
}

type EntryResponse struct {
	Id                uuid.UUID `json:"id"`
	SessionId         uuid.UUID `json:"sessionId"`
	Role              string    `json:"role"`
	Content           string    `json:"content"`
	CreatedAt         time.Time `json:"createdAt"`
	ReactionTag       *string   `json:"reactionTag,omitempty"`
	RecommendationTag *string   `json:"recommendationTag,omitempty"`
}

type LoadChatResponse struct {
	ConversationId uuid.UUID       `json:"conversationId"`
	SessionId      uuid.UUID       `json:"sessionId"`
	SessionIds     []uuid.UUID     `json:"sessionIds"`
	Entries        []EntryResponse `json:"entries"`
	ClosingTrigger string          `json:"closingTrigger"`
}

type RespondRequest struct {
	SessionId uuid.UUID `json:"sessionId" validate:"required"`
}

type RespondResponse struct {
	Reply             string `json:"reply"`
	ReactionTag       string `json:"reactionTag,omitempty"`
	RecommendationTag string `json:"recommendationTag,omitempty"`
	Warning           string `json:"warning,omitempty"`
}
