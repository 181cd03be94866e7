package unitofwork

import (
	"context"

	"reflecta-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	ConversationRepository() contract.ConversationRepository
	EntryRepository() contract.EntryRepository
	ProfileRepository() contract.ProfileRepository
	ReactionRepository() contract.ReactionRepository
	RecommendationRepository() contract.RecommendationRepository
	UserPreferencesRepository() contract.UserPreferencesRepository
	SystemEventRepository() contract.SystemEventRepository
	TokenUsageRepository() contract.TokenUsageRepository
}
