package entity

import (
	"github.com/google/uuid"

	"reflecta-be/pkg/journal/trigger"
)

// ProfileMetadata tunes a persona thematically, stylistically and
// rhythmically. It is mandatory: a profile without a metadata row is
// invalid, not partially usable.
type ProfileMetadata struct {
	ProfileName         string
	Domain              string
	Worldview           string
	Inspirations        []string
	NotSuitableFor      string
	StyleOptions        map[string]string
	ClosingTrigger      string
	StartingPrompts     []string
	ClosingStyle        string
	HighlightKeywords   []string
	PreferredContext    string
	ResponseFocus       string
	PrimaryMetaphors    []string
	QuestionArchetypes  []string
	InteractionRhythm   string
	AvoidanceLogic      []string
	RecommendationLogic *string
}

// ReactionSet groups a profile's reaction phrases by rarity tier.
type ReactionSet struct {
	Common  []string
	Typical []string
	Rare    []string
}

// Profile is the fully assembled persona configuration, immutable per
// request.
type Profile struct {
	Name        string
	PromptCore  string
	Description string
	// StyleProfile overrides Metadata.StyleOptions on key collision.
	StyleProfile map[string]string
	Metadata     ProfileMetadata
	Reactions    ReactionSet
}

// Reaction is one stored reaction candidate, optionally rule-gated.
type Reaction struct {
	Id                  uuid.UUID
	ProfileName         string
	Reaction            string
	TriggerContext      *string
	Rarity              string
	ActivationCondition *trigger.Condition
	Position            int
}

// Recommendation is one stored recommendation candidate.
type Recommendation struct {
	Id               uuid.UUID
	ProfileName      string
	Name             string
	Trigger          *string
	CanLead          bool
	TriggerCondition *trigger.Condition
	Intensity        *string
	Position         int
}
