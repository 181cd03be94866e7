package contract

import (
	"context"

	"github.com/google/uuid"

	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/specification"
)

// ProfileRepository is read-only: personas are seeded out of band.
type ProfileRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Profile, error)
	FindMetadata(ctx context.Context, profileName string) (*entity.ProfileMetadata, error)
}

type ReactionRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reaction, error)
}

type RecommendationRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recommendation, error)
}

type UserPreferencesRepository interface {
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserPreferences, error)
	Upsert(ctx context.Context, prefs *entity.UserPreferences) error
	// DeleteByUserId removes the row entirely; absence is the canonical
	// "all defaults" state.
	DeleteByUserId(ctx context.Context, userId uuid.UUID) error
}
