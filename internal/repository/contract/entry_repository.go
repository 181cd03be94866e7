package contract

import (
	"context"

	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/specification"
)

type EntryRepository interface {
	Create(ctx context.Context, entry *entity.Entry) error
	// CreateBatch inserts all entries or none; the closing flow relies
	// on the pair of closing entries being atomic.
	CreateBatch(ctx context.Context, entries []*entity.Entry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Entry, error)
}

type SystemEventRepository interface {
	Create(ctx context.Context, event *entity.SystemEvent) error
	CreateBatch(ctx context.Context, events []*entity.SystemEvent) error
}

type TokenUsageRepository interface {
	Create(ctx context.Context, usage *entity.TokenUsage) error
}
