package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"reflecta-be/internal/entity"
	"reflecta-be/internal/model"
	"reflecta-be/pkg/journal/trigger"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ProfileToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Name:         p.Name,
		PromptCore:   p.PromptCore,
		Description:  p.Description,
		StyleProfile: decodeStringMap(p.StyleProfile),
	}
}

func (m *ProfileMapper) MetadataToEntity(md *model.ProfileMetadata) *entity.ProfileMetadata {
	if md == nil {
		return nil
	}
	return &entity.ProfileMetadata{
		ProfileName:         md.Profile,
		Domain:              md.Domain,
		Worldview:           md.Worldview,
		Inspirations:        decodeStringList(md.Inspirations),
		NotSuitableFor:      md.NotSuitableFor,
		StyleOptions:        decodeStringMap(md.StyleOptions),
		ClosingTrigger:      md.ClosingTrigger,
		StartingPrompts:     decodeStringList(md.StartingPrompts),
		ClosingStyle:        md.ClosingStyle,
		HighlightKeywords:   decodeStringList(md.HighlightKeywords),
		PreferredContext:    md.PreferredContext,
		ResponseFocus:       md.ResponseFocus,
		PrimaryMetaphors:    decodeStringList(md.PrimaryMetaphors),
		QuestionArchetypes:  decodeStringList(md.QuestionArchetypes),
		InteractionRhythm:   md.InteractionRhythm,
		AvoidanceLogic:      decodeStringList(md.AvoidanceLogic),
		RecommendationLogic: md.RecommendationLogic,
	}
}

func (m *ProfileMapper) ReactionToEntity(r *model.ProfileReaction) *entity.Reaction {
	if r == nil {
		return nil
	}
	return &entity.Reaction{
		Id:                  r.Id,
		ProfileName:         r.Profile,
		Reaction:            r.Reaction,
		TriggerContext:      r.TriggerContext,
		Rarity:              r.Rarity,
		ActivationCondition: decodeCondition(r.ActivationCondition),
		Position:            r.Position,
	}
}

func (m *ProfileMapper) RecommendationToEntity(r *model.Recommendation) *entity.Recommendation {
	if r == nil {
		return nil
	}
	return &entity.Recommendation{
		Id:               r.Id,
		ProfileName:      r.Profile,
		Name:             r.Name,
		Trigger:          r.Trigger,
		CanLead:          r.CanLead,
		TriggerCondition: decodeCondition(r.TriggerCondition),
		Intensity:        r.Intensity,
		Position:         r.Position,
	}
}

func (m *ProfileMapper) PreferencesToEntity(p *model.UserPreferences) *entity.UserPreferences {
	if p == nil {
		return nil
	}
	return &entity.UserPreferences{
		UserId:         p.UserId,
		AnswerLength:   p.AnswerLength,
		StyleMode:      p.StyleMode,
		GuidanceMode:   p.GuidanceMode,
		TonePreference: p.TonePreference,
	}
}

func (m *ProfileMapper) PreferencesToModel(p *entity.UserPreferences) *model.UserPreferences {
	if p == nil {
		return nil
	}
	return &model.UserPreferences{
		UserId:         p.UserId,
		AnswerLength:   p.AnswerLength,
		StyleMode:      p.StyleMode,
		GuidanceMode:   p.GuidanceMode,
		TonePreference: p.TonePreference,
	}
}

// jsonb helpers. Malformed stored JSON degrades to empty values; the
// loader owns presence checks, not the mapper.

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

func decodeStringMap(raw datatypes.JSON) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func decodeCondition(raw datatypes.JSON) *trigger.Condition {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var cond trigger.Condition
	if err := json.Unmarshal(raw, &cond); err != nil {
		return nil
	}
	return &cond
}
