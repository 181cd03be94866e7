package closing

import (
	"context"
	"fmt"
	"strings"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/constant"
	"reflecta-be/internal/entity"
	"reflecta-be/pkg/llm"
)

// Labeler compresses a session's history into a 1-4 word label via the
// completion service. An empty label is a hard error; a session must
// never be finalized with a blank label.
type Labeler struct {
	provider llm.CompletionProvider
	model    string
}

func NewLabeler(provider llm.CompletionProvider, model string) *Labeler {
	return &Labeler{
		provider: provider,
		model:    model,
	}
}

func (l *Labeler) Label(ctx context.Context, entries []*entity.Entry) (string, error) {
	if len(entries) > constant.LabelHistoryLimit {
		entries = entries[:constant.LabelHistoryLimit]
	}

	messages := make([]llm.Message, 0, len(entries)+1)
	messages = append(messages, llm.Message{
		Role:    constant.EntryRoleSystem,
		Content: constant.LabelerSystemPrompt,
	})
	for _, e := range entries {
		messages = append(messages, llm.Message{Role: e.Role, Content: e.Content})
	}

	completion, err := l.provider.Chat(ctx, messages,
		llm.WithModel(l.model),
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(20),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperror.ErrGenerationFailure, err.Error())
	}

	label := strings.TrimSpace(completion.Content)
	if label == "" {
		return "", fmt.Errorf("%w: no label generated", apperror.ErrGenerationFailure)
	}
	return label, nil
}
