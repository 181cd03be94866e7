package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByProfile struct {
	Profile string
}

func (s ByProfile) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("profile = ?", s.Profile)
}

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type BySessionIDs struct {
	SessionIDs []uuid.UUID
}

func (s BySessionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id IN ?", s.SessionIDs)
}

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type ByRarity struct {
	Rarity string
}

func (s ByRarity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("rarity = ?", s.Rarity)
}

// LeadingOnly keeps recommendation candidates allowed to lead a turn.
type LeadingOnly struct{}

func (LeadingOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("can_lead = ?", true)
}

// OpenOnly keeps sessions that have not ended yet.
type OpenOnly struct{}

func (OpenOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ended_at IS NULL")
}
