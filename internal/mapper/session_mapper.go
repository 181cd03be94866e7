package mapper

import (
	"reflecta-be/internal/entity"
	"reflecta-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) SessionToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}
	return &entity.Session{
		Id:              s.Id,
		UserId:          s.UserId,
		ProfileName:     s.Profile,
		ConversationId:  s.ConversationId,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		Label:           s.Label,
		LabelConfidence: s.LabelConfidence,
	}
}

func (m *SessionMapper) SessionToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}
	return &model.Session{
		Id:              s.Id,
		UserId:          s.UserId,
		Profile:         s.ProfileName,
		ConversationId:  s.ConversationId,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		Label:           s.Label,
		LabelConfidence: s.LabelConfidence,
	}
}

func (m *SessionMapper) ConversationToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:          c.Id,
		UserId:      c.UserId,
		ProfileName: c.Profile,
		StartedAt:   c.StartedAt,
	}
}

func (m *SessionMapper) ConversationToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:        c.Id,
		UserId:    c.UserId,
		Profile:   c.ProfileName,
		StartedAt: c.StartedAt,
	}
}

func (m *SessionMapper) EntryToEntity(e *model.Entry) *entity.Entry {
	if e == nil {
		return nil
	}
	return &entity.Entry{
		Id:                e.Id,
		SessionId:         e.SessionId,
		Role:              e.Role,
		Content:           e.Content,
		CreatedAt:         e.CreatedAt,
		ReactionTag:       e.ReactionTag,
		RecommendationTag: e.RecommendationTag,
	}
}

func (m *SessionMapper) EntryToModel(e *entity.Entry) *model.Entry {
	if e == nil {
		return nil
	}
	return &model.Entry{
		Id:                e.Id,
		SessionId:         e.SessionId,
		Role:              e.Role,
		Content:           e.Content,
		CreatedAt:         e.CreatedAt,
		ReactionTag:       e.ReactionTag,
		RecommendationTag: e.RecommendationTag,
	}
}

func (m *SessionMapper) EntriesToEntities(models []*model.Entry) []*entity.Entry {
	entries := make([]*entity.Entry, len(models))
	for i, e := range models {
		entries[i] = m.EntryToEntity(e)
	}
	return entries
}

func (m *SessionMapper) SystemEventToModel(e *entity.SystemEvent) *model.SystemEvent {
	if e == nil {
		return nil
	}
	return &model.SystemEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		EventType: e.EventType,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

func (m *SessionMapper) TokenUsageToModel(u *entity.TokenUsage) *model.TokenUsage {
	if u == nil {
		return nil
	}
	return &model.TokenUsage{
		Id:               u.Id,
		SessionId:        u.SessionId,
		Model:            u.Model,
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		CreatedAt:        u.CreatedAt,
	}
}
