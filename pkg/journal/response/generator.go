// Package response turns one user turn into one assistant turn: it
// loads the session state, guards against closure triggers and avoided
// topics, assembles the system prompt and history, calls the completion
// service and tags the result.
package response

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/constant"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/pkg/logger"
	"reflecta-be/internal/repository/specification"
	"reflecta-be/internal/repository/unitofwork"
	"reflecta-be/pkg/events"
	"reflecta-be/pkg/journal/match"
	"reflecta-be/pkg/journal/meta"
	"reflecta-be/pkg/journal/profile"
	"reflecta-be/pkg/journal/prompt"
	"reflecta-be/pkg/journal/trigger"
	"reflecta-be/pkg/llm"
)

// Result is the outcome of one generation attempt. Warning is set
// instead of Reply when the turn must not be answered normally.
type Result struct {
	Reply             string `json:"reply"`
	ReactionTag       string `json:"reactionTag,omitempty"`
	RecommendationTag string `json:"recommendationTag,omitempty"`
	Warning           string `json:"warning,omitempty"`
}

type Generator struct {
	uowFactory unitofwork.RepositoryFactory
	profiles   profile.Source
	prompts    *prompt.Cache
	matcher    *match.Matcher
	provider   llm.CompletionProvider
	publisher  events.AuditPublisher
	logger     logger.ILogger
	model      string
}

func NewGenerator(
	uowFactory unitofwork.RepositoryFactory,
	profiles profile.Source,
	prompts *prompt.Cache,
	matcher *match.Matcher,
	provider llm.CompletionProvider,
	publisher events.AuditPublisher,
	logger logger.ILogger,
	model string,
) *Generator {
	return &Generator{
		uowFactory: uowFactory,
		profiles:   profiles,
		prompts:    prompts,
		matcher:    matcher,
		provider:   provider,
		publisher:  publisher,
		logger:     logger,
		model:      model,
	}
}

func (g *Generator) Generate(ctx context.Context, sessionId uuid.UUID) (*Result, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NotFound("session")
	}

	prof, err := g.profiles.Load(ctx, session.ProfileName)
	if err != nil {
		return nil, err
	}

	// The history window is the newest entries. Fetch descending, then
	// flip back to chronological order for the prompt.
	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{Count: constant.RespondHistoryLimit},
	)
	if err != nil {
		return nil, err
	}
	reverseEntries(entries)

	closingTrigger := strings.TrimSpace(prof.Metadata.ClosingTrigger)

	// The raw trigger phrase must never reach the completion service
	// as a regular turn.
	if isClosureAttempt(entries, closingTrigger, session) {
		return &Result{Warning: constant.ClosureDetectedWarning}, nil
	}

	lastUserMessage := lastNonTriggerUserContent(entries, closingTrigger)

	if matchesAvoidance(prof.Metadata.AvoidanceLogic, lastUserMessage) {
		return &Result{Reply: constant.AvoidanceRedirectReply}, nil
	}

	prefs, err := uow.UserPreferencesRepository().FindByUserId(ctx, session.UserId)
	if err != nil {
		return nil, err
	}

	sessionMeta := meta.Derive(entries, closingTrigger)
	systemPrompt := constant.LanguageTonePreamble + "\n\n" + g.prompts.Get(prof, prefs, sessionMeta)

	messages := make([]llm.Message, 0, len(entries)+1)
	messages = append(messages, llm.Message{Role: constant.EntryRoleSystem, Content: systemPrompt})
	for _, e := range dedupEntries(entries) {
		messages = append(messages, llm.Message{Role: e.Role, Content: e.Content})
	}

	completion, err := g.provider.Chat(ctx, messages,
		llm.WithModel(g.model),
		llm.WithTemperature(0.7),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGenerationFailure, err.Error())
	}
	reply := strings.TrimSpace(completion.Content)
	if reply == "" {
		return nil, fmt.Errorf("%w: empty completion", apperror.ErrGenerationFailure)
	}

	result := &Result{Reply: reply}
	if lastUserMessage != "" {
		g.tag(ctx, sessionId, prof.Name, lastUserMessage, sessionStats(entries), result)
	}

	g.publisher.PublishTokenUsage(sessionId, g.model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)

	return result, nil
}

// tag runs the reaction and recommendation matchers and records one
// system event per tag found. Everything in here is best-effort.
func (g *Generator) tag(ctx context.Context, sessionId uuid.UUID, profileName, message string, stats trigger.SessionStats, result *Result) {
	reaction, err := g.matcher.MatchReaction(ctx, profileName, message, stats)
	if err != nil {
		g.logger.Warn("RESPONSE", "Reaction matching failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	} else if reaction != "" {
		result.ReactionTag = reaction
		g.publisher.PublishSystemEvent(sessionId, constant.EventReactionTriggered, reaction)
	}

	recommendation, err := g.matcher.MatchRecommendation(ctx, profileName, message, stats)
	if err != nil {
		g.logger.Warn("RESPONSE", "Recommendation matching failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	} else if recommendation != "" {
		result.RecommendationTag = recommendation
		g.publisher.PublishSystemEvent(sessionId, constant.EventRecommendationTriggered, recommendation)
	}
}

func reverseEntries(entries []*entity.Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

func isClosureAttempt(entries []*entity.Entry, closingTrigger string, session *entity.Session) bool {
	if closingTrigger == "" || session.Closed() || len(entries) == 0 {
		return false
	}
	last := entries[len(entries)-1]
	return last.Role == constant.EntryRoleUser && strings.TrimSpace(last.Content) == closingTrigger
}

func lastNonTriggerUserContent(entries []*entity.Entry, closingTrigger string) string {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Role != constant.EntryRoleUser {
			continue
		}
		content := strings.TrimSpace(e.Content)
		if closingTrigger != "" && content == closingTrigger {
			continue
		}
		return content
	}
	return ""
}

// matchesAvoidance treats each configured pattern as a case-insensitive
// regex; a pattern that does not compile falls back to a substring
// check so a bad pattern cannot disable the guardrail.
func matchesAvoidance(patterns []string, message string) bool {
	if message == "" {
		return false
	}
	lowered := strings.ToLower(message)
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			if strings.Contains(lowered, strings.ToLower(pattern)) {
				return true
			}
			continue
		}
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

// dedupEntries collapses duplicates keyed by role+content, keeping the
// first occurrence's position. A reaction-tagged duplicate replaces a
// plain one.
func dedupEntries(entries []*entity.Entry) []*entity.Entry {
	type slot struct{ index int }
	seen := make(map[string]slot, len(entries))
	out := make([]*entity.Entry, 0, len(entries))
	for _, e := range entries {
		key := e.Role + "\x00" + e.Content
		if s, dup := seen[key]; dup {
			if out[s.index].ReactionTag == nil && e.ReactionTag != nil {
				out[s.index] = e
			}
			continue
		}
		seen[key] = slot{index: len(out)}
		out = append(out, e)
	}
	return out
}

// sessionStats derives the silence gap between the last two user
// entries for rule evaluation. Topic-loop detection is not wired yet,
// so that stat stays unknown.
func sessionStats(entries []*entity.Entry) trigger.SessionStats {
	var userTimes []int64
	for _, e := range entries {
		if e.Role == constant.EntryRoleUser {
			userTimes = append(userTimes, e.CreatedAt.Unix())
		}
	}
	if len(userTimes) < 2 {
		return trigger.SessionStats{}
	}
	gap := int(userTimes[len(userTimes)-1] - userTimes[len(userTimes)-2])
	return trigger.SessionStats{SilenceSeconds: &gap}
}
