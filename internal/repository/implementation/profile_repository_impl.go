package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reflecta-be/internal/entity"
	"reflecta-be/internal/mapper"
	"reflecta-be/internal/model"
	"reflecta-be/internal/repository/contract"
	"reflecta-be/internal/repository/specification"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Profile, error) {
	var m model.Profile
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ProfileToEntity(&m), nil
}

func (r *ProfileRepositoryImpl) FindMetadata(ctx context.Context, profileName string) (*entity.ProfileMetadata, error) {
	var m model.ProfileMetadata
	if err := r.db.WithContext(ctx).Where("profile = ?", profileName).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MetadataToEntity(&m), nil
}

type ReactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewReactionRepository(db *gorm.DB) contract.ReactionRepository {
	return &ReactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ReactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reaction, error) {
	var models []*model.ProfileReaction
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	reactions := make([]*entity.Reaction, len(models))
	for i, m := range models {
		reactions[i] = r.mapper.ReactionToEntity(m)
	}
	return reactions, nil
}

type RecommendationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewRecommendationRepository(db *gorm.DB) contract.RecommendationRepository {
	return &RecommendationRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *RecommendationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recommendation, error) {
	var models []*model.Recommendation
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	recs := make([]*entity.Recommendation, len(models))
	for i, m := range models {
		recs[i] = r.mapper.RecommendationToEntity(m)
	}
	return recs, nil
}

type UserPreferencesRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewUserPreferencesRepository(db *gorm.DB) contract.UserPreferencesRepository {
	return &UserPreferencesRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *UserPreferencesRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserPreferences, error) {
	var m model.UserPreferences
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PreferencesToEntity(&m), nil
}

func (r *UserPreferencesRepositoryImpl) Upsert(ctx context.Context, prefs *entity.UserPreferences) error {
	m := r.mapper.PreferencesToModel(prefs)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
}

func (r *UserPreferencesRepositoryImpl) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.UserPreferences{}).Error
}
