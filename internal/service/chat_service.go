package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/constant"
	"reflecta-be/internal/dto"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/specification"
	"reflecta-be/internal/repository/unitofwork"
	"reflecta-be/pkg/journal/response"
)

const defaultChatPageSize = 20

type IChatService interface {
	Load(ctx context.Context, req *dto.LoadChatRequest) (*dto.LoadChatResponse, error)
	Respond(ctx context.Context, sessionId uuid.UUID) (*dto.RespondResponse, error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	generator  *response.Generator
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, generator *response.Generator) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		generator:  generator,
	}
}

// Load returns the latest conversation of (user, profile): its session
// ids, one page of entries across those sessions and the profile's
// closing trigger so the UI can detect closure input locally.
func (s *chatService) Load(ctx context.Context, req *dto.LoadChatRequest) (*dto.LoadChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByUserID{UserID: req.UserId},
		specification.ByProfile{Profile: req.Profile},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperror.NotFound("conversation")
	}

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.OrderBy{Field: "started_at"},
	)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, apperror.NotFound("sessions")
	}

	sessionIds := make([]uuid.UUID, len(sessions))
	for i, sess := range sessions {
		sessionIds[i] = sess.Id
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultChatPageSize
	}

	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.BySessionIDs{SessionIDs: sessionIds},
		specification.OrderBy{Field: "created_at"},
		specification.Offset{Count: req.Offset},
		specification.Limit{Count: limit},
	)
	if err != nil {
		return nil, err
	}

	metadata, err := uow.ProfileRepository().FindMetadata(ctx, req.Profile)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		return nil, apperror.NotFound("profile metadata")
	}

	return &dto.LoadChatResponse{
		ConversationId: conversation.Id,
		SessionId:      sessionIds[len(sessionIds)-1],
		SessionIds:     sessionIds,
		Entries:        entriesToResponses(entries),
		ClosingTrigger: metadata.ClosingTrigger,
	}, nil
}

// Respond generates one assistant turn and persists it, unless the
// generator short-circuited with a warning (closure trigger detected).
func (s *chatService) Respond(ctx context.Context, sessionId uuid.UUID) (*dto.RespondResponse, error) {
	result, err := s.generator.Generate(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	resp := &dto.RespondResponse{
		Reply:             result.Reply,
		ReactionTag:       result.ReactionTag,
		RecommendationTag: result.RecommendationTag,
		Warning:           result.Warning,
	}
	if result.Warning != "" {
		return resp, nil
	}

	entry := &entity.Entry{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      constant.EntryRoleAssistant,
		Content:   result.Reply,
		CreatedAt: time.Now(),
	}
	if result.ReactionTag != "" {
		entry.ReactionTag = &result.ReactionTag
	}
	if result.RecommendationTag != "" {
		entry.RecommendationTag = &result.RecommendationTag
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EntryRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	return resp, nil
}

func entriesToResponses(entries []*entity.Entry) []dto.EntryResponse {
	out := make([]dto.EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.EntryResponse{
			Id:                e.Id,
			SessionId:         e.SessionId,
			Role:              e.Role,
			Content:           e.Content,
			CreatedAt:         e.CreatedAt,
			ReactionTag:       e.ReactionTag,
			RecommendationTag: e.RecommendationTag,
		}
	}
	return out
}
