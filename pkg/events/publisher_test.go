package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflecta-be/internal/constant"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

func TestPublishSystemEventRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := pubSub.Subscribe(ctx, constant.SystemEventTopic)
	require.NoError(t, err)

	sessionId := uuid.New()
	publisher := NewPublisher(pubSub, noopLogger{})
	publisher.PublishSystemEvent(sessionId, constant.EventReactionTriggered, "jelzés")

	select {
	case msg := <-messages:
		var payload SystemEventMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, sessionId, payload.SessionId)
		assert.Equal(t, constant.EventReactionTriggered, payload.EventType)
		assert.Equal(t, "jelzés", payload.Note)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no message received on the system event topic")
	}
}

func TestPublishTokenUsageRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := pubSub.Subscribe(ctx, constant.TokenUsageTopic)
	require.NoError(t, err)

	sessionId := uuid.New()
	publisher := NewPublisher(pubSub, noopLogger{})
	publisher.PublishTokenUsage(sessionId, "test-model", 120, 48)

	select {
	case msg := <-messages:
		var payload TokenUsageMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, sessionId, payload.SessionId)
		assert.Equal(t, "test-model", payload.Model)
		assert.Equal(t, 120, payload.PromptTokens)
		assert.Equal(t, 48, payload.CompletionTokens)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no message received on the token usage topic")
	}
}

func TestPublisherNilSafe(t *testing.T) {
	var publisher *Publisher

	// Audit traffic is best-effort; a missing publisher is a no-op.
	assert.NotPanics(t, func() {
		publisher.PublishSystemEvent(uuid.New(), constant.EventSessionFirstEntry, "x")
		publisher.PublishTokenUsage(uuid.New(), "m", 1, 2)
	})
}
