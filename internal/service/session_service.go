package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/dto"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/specification"
	"reflecta-be/internal/repository/unitofwork"
	"reflecta-be/pkg/journal/closing"
)

type ISessionService interface {
	Open(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Close(ctx context.Context, sessionId uuid.UUID) (*dto.CloseSessionResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	closer     *closing.Orchestrator
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, closer *closing.Orchestrator) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		closer:     closer,
	}
}

// Open returns the latest open session for (user, profile), creating a
// new one (and its conversation, if this is the first) otherwise.
func (s *sessionService) Open(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prof, err := uow.ProfileRepository().FindByName(ctx, req.Profile)
	if err != nil {
		return nil, err
	}
	if prof == nil {
		return nil, apperror.NotFound("profile")
	}

	latest, err := uow.SessionRepository().FindOne(ctx,
		specification.ByUserID{UserID: req.UserId},
		specification.ByProfile{Profile: req.Profile},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if latest != nil && !latest.Closed() {
		return sessionToResponse(latest), nil
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByUserID{UserID: req.UserId},
		specification.ByProfile{Profile: req.Profile},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		conversation = &entity.Conversation{
			Id:          uuid.New(),
			UserId:      req.UserId,
			ProfileName: req.Profile,
			StartedAt:   time.Now(),
		}
		if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
			return nil, err
		}
	}

	session := &entity.Session{
		Id:             uuid.New(),
		UserId:         req.UserId,
		ProfileName:    req.Profile,
		ConversationId: conversation.Id,
		StartedAt:      time.Now(),
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	return sessionToResponse(session), nil
}

func (s *sessionService) Close(ctx context.Context, sessionId uuid.UUID) (*dto.CloseSessionResponse, error) {
	result, err := s.closer.Close(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.CloseSessionResponse{
		Label:         result.Label,
		ClosureEntry:  result.ClosureEntry,
		AlreadyClosed: result.AlreadyClosed(),
	}, nil
}

func sessionToResponse(session *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:              session.Id,
		UserId:          session.UserId,
		Profile:         session.ProfileName,
		ConversationId:  session.ConversationId,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		Label:           session.Label,
		LabelConfidence: session.LabelConfidence,
	}
}
