package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Profile         string     `gorm:"type:text;not null;index"`
	ConversationId  uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartedAt       time.Time  `gorm:"default:now();not null"`
	EndedAt         *time.Time `gorm:"index"`
	Label           *string    `gorm:"type:text"`
	LabelConfidence *float64
}

func (Session) TableName() string {
	return "sessions"
}

type Conversation struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Profile   string    `gorm:"type:text;not null"`
	StartedAt time.Time `gorm:"default:now();not null"`
}

func (Conversation) TableName() string {
	return "conversations"
}
