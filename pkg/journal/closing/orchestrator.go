// Package closing drives a session through its closing sequence:
// labeling, boundary events, a closure reflection, the closing entry
// pair and the final state transition.
package closing

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/constant"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/pkg/logger"
	"reflecta-be/internal/repository/specification"
	"reflecta-be/internal/repository/unitofwork"
	"reflecta-be/pkg/events"
	"reflecta-be/pkg/journal/meta"
	"reflecta-be/pkg/journal/profile"
	"reflecta-be/pkg/journal/prompt"
	"reflecta-be/pkg/llm"
)

// CloseResult reports what the close produced. An already-closed
// session yields the sentinel label with an empty closure entry.
type CloseResult struct {
	Label        string `json:"label"`
	ClosureEntry string `json:"closureEntry"`
}

// AlreadyClosed reports whether the result is the idempotent sentinel
// rather than a fresh close.
func (r *CloseResult) AlreadyClosed() bool {
	return r.Label == constant.SessionAlreadyClosedLabel
}

type Orchestrator struct {
	uowFactory unitofwork.RepositoryFactory
	profiles   profile.Source
	prompts    *prompt.Cache
	labeler    *Labeler
	provider   llm.CompletionProvider
	publisher  events.AuditPublisher
	logger     logger.ILogger
	model      string
}

func NewOrchestrator(
	uowFactory unitofwork.RepositoryFactory,
	profiles profile.Source,
	prompts *prompt.Cache,
	labeler *Labeler,
	provider llm.CompletionProvider,
	publisher events.AuditPublisher,
	logger logger.ILogger,
	model string,
) *Orchestrator {
	return &Orchestrator{
		uowFactory: uowFactory,
		profiles:   profiles,
		prompts:    prompts,
		labeler:    labeler,
		provider:   provider,
		publisher:  publisher,
		logger:     logger,
		model:      model,
	}
}

func (o *Orchestrator) Close(ctx context.Context, sessionId uuid.UUID) (*CloseResult, error) {
	uow := o.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}
	if session.Closed() {
		// Idempotent no-op: nothing is re-generated or re-inserted.
		return &CloseResult{Label: constant.SessionAlreadyClosedLabel, ClosureEntry: ""}, nil
	}

	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperror.NotFound("session entries")
	}

	userEntries := filterRole(entries, constant.EntryRoleUser)
	degenerate := len(userEntries) < constant.MinUserEntriesForClosure

	var label, closure string
	if degenerate {
		// Too little history to summarize; skip the completion calls
		// entirely and close with the fixed fallback texts.
		label = constant.FallbackSessionLabel
		closure = constant.ClosureFallbackDegenerate
	} else {
		label, err = o.labeler.Label(ctx, entries)
		if err != nil {
			return nil, err
		}
	}

	o.logBoundaryEvents(sessionId, entries)

	if !degenerate {
		closure, err = o.reflect(ctx, session, entries, userEntries)
		if err != nil {
			return nil, err
		}
	}

	if err := o.finalize(ctx, sessionId, label, closure); err != nil {
		return nil, err
	}

	return &CloseResult{Label: label, ClosureEntry: closure}, nil
}

// logBoundaryEvents records the first and last entry markers. Failures
// surface in the consumer's logs, never here.
func (o *Orchestrator) logBoundaryEvents(sessionId uuid.UUID, entries []*entity.Entry) {
	first := entries[0]
	last := entries[len(entries)-1]
	o.publisher.PublishSystemEvent(sessionId, constant.EventSessionFirstEntry,
		fmt.Sprintf("Első bejegyzés ID: %s", first.Id))
	o.publisher.PublishSystemEvent(sessionId, constant.EventSessionLastEntry,
		fmt.Sprintf("Utolsó bejegyzés ID: %s", last.Id))
}

// reflect generates the closing reflection over the user's own entries.
// A reply below the minimum length degrades to the generic closing line
// instead of failing the close.
func (o *Orchestrator) reflect(ctx context.Context, session *entity.Session, entries, userEntries []*entity.Entry) (string, error) {
	prof, err := o.profiles.Load(ctx, session.ProfileName)
	if err != nil {
		return "", err
	}

	sessionMeta := meta.Derive(entries, prof.Metadata.ClosingTrigger)
	sessionMeta.IsClosing = true

	systemPrompt := constant.LanguageTonePreamble + "\n\n" + o.prompts.Get(prof, nil, sessionMeta)

	messages := make([]llm.Message, 0, len(userEntries)+1)
	messages = append(messages, llm.Message{Role: constant.EntryRoleSystem, Content: systemPrompt})
	for _, e := range userEntries {
		messages = append(messages, llm.Message{Role: e.Role, Content: e.Content})
	}

	completion, err := o.provider.Chat(ctx, messages,
		llm.WithModel(o.model),
		llm.WithTemperature(0.6),
		llm.WithMaxTokens(400),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", apperror.ErrGenerationFailure, err.Error())
	}

	closure := strings.TrimSpace(completion.Content)
	if utf8.RuneCountInString(closure) < constant.MinClosureReplyLength {
		return constant.ClosureFallbackGeneric, nil
	}
	return closure, nil
}

// finalize persists the closing entry pair and flips the session to
// closed in one transaction. The conditional update is the real
// idempotency guard; losing it means another close won the race and
// the whole transaction rolls back.
func (o *Orchestrator) finalize(ctx context.Context, sessionId uuid.UUID, label, closure string) error {
	uow := o.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrPersistenceFailure, err.Error())
	}
	defer uow.Rollback()

	now := time.Now()
	closingEntries := []*entity.Entry{
		{
			Id:        uuid.New(),
			SessionId: sessionId,
			Role:      constant.EntryRoleAssistant,
			Content:   closure,
			CreatedAt: now,
		},
		{
			Id:        uuid.New(),
			SessionId: sessionId,
			Role:      constant.EntryRoleSystem,
			Content:   fmt.Sprintf(constant.SystemClosureEntryFormat, label),
			CreatedAt: now,
		},
	}
	if err := uow.EntryRepository().CreateBatch(ctx, closingEntries); err != nil {
		return fmt.Errorf("%w: closing entries: %s", apperror.ErrPersistenceFailure, err.Error())
	}

	rows, err := uow.SessionRepository().Close(ctx, sessionId, now, label, constant.DefaultLabelConfidence)
	if err != nil {
		return fmt.Errorf("%w: finalize session: %s", apperror.ErrPersistenceFailure, err.Error())
	}
	if rows == 0 {
		return fmt.Errorf("%w: session was closed concurrently", apperror.ErrAlreadyClosed)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrPersistenceFailure, err.Error())
	}
	return nil
}

func filterRole(entries []*entity.Entry, role string) []*entity.Entry {
	var out []*entity.Entry
	for _, e := range entries {
		if e.Role == role {
			out = append(out, e)
		}
	}
	return out
}
