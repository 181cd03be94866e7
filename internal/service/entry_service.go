package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/constant"
	"reflecta-be/internal/dto"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/pkg/logger"
	"reflecta-be/internal/repository/specification"
	"reflecta-be/internal/repository/unitofwork"
	"reflecta-be/pkg/journal/closing"
)

type IEntryService interface {
	List(ctx context.Context, sessionId uuid.UUID) ([]dto.EntryResponse, error)
	Append(ctx context.Context, req *dto.AppendEntryRequest) (*dto.AppendEntryResponse, error)
}

type entryService struct {
	uowFactory unitofwork.RepositoryFactory
	closer     *closing.Orchestrator
	logger     logger.ILogger
}

func NewEntryService(uowFactory unitofwork.RepositoryFactory, closer *closing.Orchestrator, logger logger.ILogger) IEntryService {
	return &entryService{
		uowFactory: uowFactory,
		closer:     closer,
		logger:     logger,
	}
}

func (s *entryService) List(ctx context.Context, sessionId uuid.UUID) ([]dto.EntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	return entriesToResponses(entries), nil
}

// Append stores one entry. When a user entry exactly matches the
// profile's closing trigger, the closing sequence runs as a side
// effect; its failure is logged but does not fail the append.
func (s *entryService) Append(ctx context.Context, req *dto.AppendEntryRequest) (*dto.AppendEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}

	entry := &entity.Entry{
		Id:        uuid.New(),
		SessionId: req.SessionId,
		Role:      req.Entry.Role,
		Content:   req.Entry.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.EntryRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	resp := &dto.AppendEntryResponse{EntryId: entry.Id}

	if entry.Role != constant.EntryRoleUser {
		return resp, nil
	}

	metadata, err := uow.ProfileRepository().FindMetadata(ctx, session.ProfileName)
	if err != nil {
		s.logger.Warn("ENTRY", "Metadata lookup for trigger detection failed", map[string]interface{}{
			"session_id": req.SessionId,
			"profile":    session.ProfileName,
			"error":      err.Error(),
		})
		return resp, nil
	}
	if metadata == nil {
		return resp, nil
	}
	trigger := strings.TrimSpace(metadata.ClosingTrigger)
	if trigger == "" || strings.TrimSpace(entry.Content) != trigger {
		return resp, nil
	}

	result, err := s.closer.Close(ctx, req.SessionId)
	if err != nil {
		s.logger.Warn("ENTRY", "Trigger-detected close failed", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		return resp, nil
	}
	resp.Closed = true
	resp.Label = result.Label
	return resp, nil
}
