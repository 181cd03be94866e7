// Package events carries best-effort audit traffic (system events and
// token usage) over an in-process watermill pub/sub so the request path
// never blocks on bookkeeping writes.
package events

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"reflecta-be/internal/constant"
	"reflecta-be/internal/pkg/logger"
)

// SystemEventMessage is the wire payload on the system-event topic.
type SystemEventMessage struct {
	SessionId uuid.UUID `json:"session_id"`
	EventType string    `json:"event_type"`
	Note      string    `json:"note"`
}

// TokenUsageMessage is the wire payload on the token-usage topic.
type TokenUsageMessage struct {
	SessionId        uuid.UUID `json:"session_id"`
	Model            string    `json:"model"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
}

// AuditPublisher is what the orchestrators depend on; Publisher is the
// watermill-backed implementation.
type AuditPublisher interface {
	PublishSystemEvent(sessionId uuid.UUID, eventType, note string)
	PublishTokenUsage(sessionId uuid.UUID, model string, promptTokens, completionTokens int)
}

type Publisher struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

var _ AuditPublisher = &Publisher{}

func NewPublisher(pubSub *gochannel.GoChannel, logger logger.ILogger) *Publisher {
	return &Publisher{
		pubSub: pubSub,
		logger: logger,
	}
}

// PublishSystemEvent emits a session audit marker. Failures are logged
// and swallowed; audit traffic never fails the parent operation.
func (p *Publisher) PublishSystemEvent(sessionId uuid.UUID, eventType, note string) {
	if p == nil || p.pubSub == nil {
		return
	}
	p.publish(constant.SystemEventTopic, SystemEventMessage{
		SessionId: sessionId,
		EventType: eventType,
		Note:      note,
	})
}

// PublishTokenUsage emits one completion-call accounting record.
func (p *Publisher) PublishTokenUsage(sessionId uuid.UUID, model string, promptTokens, completionTokens int) {
	if p == nil || p.pubSub == nil {
		return
	}
	p.publish(constant.TokenUsageTopic, TokenUsageMessage{
		SessionId:        sessionId,
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
	})
}

func (p *Publisher) publish(topic string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("EVENTS", "Failed to marshal event payload", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), raw)
	if err := p.pubSub.Publish(topic, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"topic": topic,
			"error": err.Error(),
		})
	}
}
