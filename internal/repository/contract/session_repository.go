package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/specification"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)

	// Close finalizes a session with a conditional update guarded by
	// "ended_at IS NULL" and returns the number of rows affected, so
	// concurrent close attempts cannot both take effect.
	Close(ctx context.Context, id uuid.UUID, endedAt time.Time, label string, confidence float64) (int64, error)
}

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
}
