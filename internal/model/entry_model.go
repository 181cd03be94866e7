package model

import (
	"time"

	"github.com/google/uuid"
)

type Entry struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId         uuid.UUID `gorm:"type:uuid;not null;index:idx_entries_session_created,priority:1"`
	Role              string    `gorm:"type:varchar(20);not null"`
	Content           string    `gorm:"type:text;not null"`
	CreatedAt         time.Time `gorm:"default:now();not null;index:idx_entries_session_created,priority:2"`
	ReactionTag       *string   `gorm:"type:text"`
	RecommendationTag *string   `gorm:"type:text"`
}

func (Entry) TableName() string {
	return "entries"
}

type SystemEvent struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType string    `gorm:"type:varchar(50);not null"`
	Note      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"default:now();not null"`
}

func (SystemEvent) TableName() string {
	return "system_events"
}

type TokenUsage struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Model            string    `gorm:"type:varchar(100);not null"`
	PromptTokens     int       `gorm:"not null"`
	CompletionTokens int       `gorm:"not null"`
	CreatedAt        time.Time `gorm:"default:now();not null"`
}

func (TokenUsage) TableName() string {
	return "token_usage_logs"
}
