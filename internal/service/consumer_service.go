package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"reflecta-be/internal/constant"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/pkg/logger"
	"reflecta-be/internal/repository/unitofwork"
	"reflecta-be/pkg/events"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the audit topics and persists their payloads.
// Everything in here is best-effort: a failed write is logged and the
// message acked so it cannot wedge the channel.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	systemEvents, err := cs.pubSub.Subscribe(ctx, constant.SystemEventTopic)
	if err != nil {
		return err
	}
	tokenUsage, err := cs.pubSub.Subscribe(ctx, constant.TokenUsageTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range systemEvents {
			cs.processSystemEvent(ctx, msg)
		}
	}()
	go func() {
		for msg := range tokenUsage {
			cs.processTokenUsage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processSystemEvent(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload events.SystemEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal system event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err := uow.SystemEventRepository().Create(ctx, &entity.SystemEvent{
		Id:        uuid.New(),
		SessionId: payload.SessionId,
		EventType: payload.EventType,
		Note:      payload.Note,
		CreatedAt: time.Now(),
	})
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to persist system event", map[string]interface{}{
			"session_id": payload.SessionId,
			"event_type": payload.EventType,
			"error":      err.Error(),
		})
	}
}

func (cs *consumerService) processTokenUsage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload events.TokenUsageMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal token usage", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	err := uow.TokenUsageRepository().Create(ctx, &entity.TokenUsage{
		Id:               uuid.New(),
		SessionId:        payload.SessionId,
		Model:            payload.Model,
		PromptTokens:     payload.PromptTokens,
		CompletionTokens: payload.CompletionTokens,
		CreatedAt:        time.Now(),
	})
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to persist token usage", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
	}
}
