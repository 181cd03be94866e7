package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Usage carries the token accounting reported by the provider.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Completion is one provider reply with its usage.
type Completion struct {
	Content string
	Usage   Usage
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// CompletionProvider defines the contract for any completion backend.
type CompletionProvider interface {
	// Chat sends a chat history to the model and returns the reply with
	// usage. Calls are awaited with no client-side retry; errors
	// propagate to the caller as-is.
	Chat(ctx context.Context, history []Message, options ...Option) (*Completion, error)
}
