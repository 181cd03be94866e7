package implementation

import (
	"context"

	"gorm.io/gorm"

	"reflecta-be/internal/entity"
	"reflecta-be/internal/mapper"
	"reflecta-be/internal/model"
	"reflecta-be/internal/repository/contract"
	"reflecta-be/internal/repository/specification"
)

type EntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewEntryRepository(db *gorm.DB) contract.EntryRepository {
	return &EntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *EntryRepositoryImpl) Create(ctx context.Context, entry *entity.Entry) error {
	m := r.mapper.EntryToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.EntryToEntity(m)
	return nil
}

func (r *EntryRepositoryImpl) CreateBatch(ctx context.Context, entries []*entity.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	models := make([]*model.Entry, len(entries))
	for i, e := range entries {
		models[i] = r.mapper.EntryToModel(e)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*entries[i] = *r.mapper.EntryToEntity(m)
	}
	return nil
}

func (r *EntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Entry, error) {
	var models []*model.Entry
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.EntriesToEntities(models), nil
}

type SystemEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSystemEventRepository(db *gorm.DB) contract.SystemEventRepository {
	return &SystemEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SystemEventRepositoryImpl) Create(ctx context.Context, event *entity.SystemEvent) error {
	return r.db.WithContext(ctx).Create(r.mapper.SystemEventToModel(event)).Error
}

func (r *SystemEventRepositoryImpl) CreateBatch(ctx context.Context, events []*entity.SystemEvent) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]*model.SystemEvent, len(events))
	for i, e := range events {
		models[i] = r.mapper.SystemEventToModel(e)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

type TokenUsageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewTokenUsageRepository(db *gorm.DB) contract.TokenUsageRepository {
	return &TokenUsageRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *TokenUsageRepositoryImpl) Create(ctx context.Context, usage *entity.TokenUsage) error {
	return r.db.WithContext(ctx).Create(r.mapper.TokenUsageToModel(usage)).Error
}
