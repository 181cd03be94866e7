package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Profile struct {
	Name         string         `gorm:"type:text;primaryKey"`
	PromptCore   string         `gorm:"type:text;not null"`
	Description  string         `gorm:"type:text"`
	StyleProfile datatypes.JSON `gorm:"type:jsonb"`
}

func (Profile) TableName() string {
	return "profiles"
}

type ProfileMetadata struct {
	Profile             string         `gorm:"type:text;primaryKey"`
	Domain              string         `gorm:"type:text"`
	Worldview           string         `gorm:"type:text"`
	Inspirations        datatypes.JSON `gorm:"type:jsonb"`
	NotSuitableFor      string         `gorm:"type:text"`
	StyleOptions        datatypes.JSON `gorm:"type:jsonb"`
	ClosingTrigger      string         `gorm:"type:text"`
	StartingPrompts     datatypes.JSON `gorm:"type:jsonb"`
	ClosingStyle        string         `gorm:"type:text"`
	HighlightKeywords   datatypes.JSON `gorm:"type:jsonb"`
	PreferredContext    string         `gorm:"type:text"`
	ResponseFocus       string         `gorm:"type:text"`
	PrimaryMetaphors    datatypes.JSON `gorm:"type:jsonb"`
	QuestionArchetypes  datatypes.JSON `gorm:"type:jsonb"`
	InteractionRhythm   string         `gorm:"type:text"`
	AvoidanceLogic      datatypes.JSON `gorm:"type:jsonb"`
	RecommendationLogic *string        `gorm:"type:text"`
}

func (ProfileMetadata) TableName() string {
	return "profile_metadata"
}

type ProfileReaction struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Profile             string         `gorm:"type:text;not null;index"`
	Reaction            string         `gorm:"type:text;not null"`
	TriggerContext      *string        `gorm:"type:text"`
	Rarity              string         `gorm:"type:varchar(20);not null;index"`
	ActivationCondition datatypes.JSON `gorm:"type:jsonb"`
	Position            int            `gorm:"not null;default:0"`
}

func (ProfileReaction) TableName() string {
	return "profile_reactions"
}

type Recommendation struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Profile          string         `gorm:"type:text;not null;index"`
	Name             string         `gorm:"type:text;not null"`
	Trigger          *string        `gorm:"type:text"`
	CanLead          bool           `gorm:"not null;default:false"`
	TriggerCondition datatypes.JSON `gorm:"type:jsonb"`
	Intensity        *string        `gorm:"type:varchar(30)"`
	Position         int            `gorm:"not null;default:0"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

type UserPreferences struct {
	UserId         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AnswerLength   *string   `gorm:"type:varchar(20)"`
	StyleMode      *string   `gorm:"type:varchar(20)"`
	GuidanceMode   *string   `gorm:"type:varchar(20)"`
	TonePreference *string   `gorm:"type:varchar(20)"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}
