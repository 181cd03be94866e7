package response

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflecta-be/internal/apperror"
	"reflecta-be/internal/constant"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/contract"
	"reflecta-be/internal/repository/specification"
	"reflecta-be/internal/repository/unitofwork"
	"reflecta-be/pkg/journal/match"
	"reflecta-be/pkg/journal/prompt"
	"reflecta-be/pkg/llm"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeSessionRepo struct {
	session *entity.Session
}

func (f *fakeSessionRepo) Create(context.Context, *entity.Session) error { return nil }
func (f *fakeSessionRepo) FindOne(context.Context, ...specification.Specification) (*entity.Session, error) {
	return f.session, nil
}
func (f *fakeSessionRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Session, error) {
	return nil, nil
}
func (f *fakeSessionRepo) Close(context.Context, uuid.UUID, time.Time, string, float64) (int64, error) {
	return 1, nil
}

// fakeEntryRepo applies ordering and limit specifications the way the
// store does, so window-size behavior is observable in tests.
type fakeEntryRepo struct {
	entries []*entity.Entry
}

func (f *fakeEntryRepo) Create(context.Context, *entity.Entry) error        { return nil }
func (f *fakeEntryRepo) CreateBatch(context.Context, []*entity.Entry) error { return nil }
func (f *fakeEntryRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Entry, error) {
	out := append([]*entity.Entry(nil), f.entries...)
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			sort.SliceStable(out, func(i, j int) bool {
				if s.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		case specification.Limit:
			if len(out) > s.Count {
				out = out[:s.Count]
			}
		}
	}
	return out, nil
}

type fakePrefsRepo struct {
	prefs *entity.UserPreferences
}

func (f *fakePrefsRepo) FindByUserId(context.Context, uuid.UUID) (*entity.UserPreferences, error) {
	return f.prefs, nil
}
func (f *fakePrefsRepo) Upsert(context.Context, *entity.UserPreferences) error { return nil }
func (f *fakePrefsRepo) DeleteByUserId(context.Context, uuid.UUID) error       { return nil }

type fakeReactionRepo struct {
	reactions []*entity.Reaction
}

func (f *fakeReactionRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Reaction, error) {
	return f.reactions, nil
}

type fakeRecommendationRepo struct{}

func (fakeRecommendationRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Recommendation, error) {
	return nil, nil
}

type fakeUow struct {
	sessions *fakeSessionRepo
	entries  *fakeEntryRepo
	prefs    *fakePrefsRepo
}

func (f *fakeUow) Begin(context.Context) error { return nil }
func (f *fakeUow) Commit() error               { return nil }
func (f *fakeUow) Rollback() error             { return nil }

func (f *fakeUow) SessionRepository() contract.SessionRepository           { return f.sessions }
func (f *fakeUow) ConversationRepository() contract.ConversationRepository { return nil }
func (f *fakeUow) EntryRepository() contract.EntryRepository               { return f.entries }
func (f *fakeUow) ProfileRepository() contract.ProfileRepository           { return nil }
func (f *fakeUow) ReactionRepository() contract.ReactionRepository         { return nil }
func (f *fakeUow) RecommendationRepository() contract.RecommendationRepository {
	return nil
}
func (f *fakeUow) UserPreferencesRepository() contract.UserPreferencesRepository { return f.prefs }
func (f *fakeUow) SystemEventRepository() contract.SystemEventRepository         { return nil }
func (f *fakeUow) TokenUsageRepository() contract.TokenUsageRepository           { return nil }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeProfileSource struct {
	profile *entity.Profile
}

func (f *fakeProfileSource) Load(context.Context, string) (*entity.Profile, error) {
	return f.profile, nil
}

type fakeProvider struct {
	reply string
	err   error
	calls int
	last  []llm.Message
}

func (f *fakeProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (*llm.Completion, error) {
	f.calls++
	f.last = history
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{
		Content: f.reply,
		Usage:   llm.Usage{PromptTokens: 100, CompletionTokens: 40},
	}, nil
}

type publishedEvent struct {
	eventType string
	note      string
}

type fakePublisher struct {
	events     []publishedEvent
	usageCalls int
}

func (f *fakePublisher) PublishSystemEvent(_ uuid.UUID, eventType, note string) {
	f.events = append(f.events, publishedEvent{eventType: eventType, note: note})
}

func (f *fakePublisher) PublishTokenUsage(uuid.UUID, string, int, int) {
	f.usageCalls++
}

func strPtr(s string) *string { return &s }

func journalProfile() *entity.Profile {
	return &entity.Profile{
		Name:       "tukor",
		PromptCore: "Te vagy Tükör.",
		Metadata: entity.ProfileMetadata{
			ProfileName:    "tukor",
			ClosingTrigger: "lezárom a napot",
			ClosingStyle:   "lágy búcsú",
			AvoidanceLogic: []string{"öngyilkos", "politika"},
		},
	}
}

type generatorFixture struct {
	generator *Generator
	uow       *fakeUow
	provider  *fakeProvider
	publisher *fakePublisher
}

func newFixture(session *entity.Session, entries []*entity.Entry, reply string, providerErr error) *generatorFixture {
	uow := &fakeUow{
		sessions: &fakeSessionRepo{session: session},
		entries:  &fakeEntryRepo{entries: entries},
		prefs:    &fakePrefsRepo{},
	}
	provider := &fakeProvider{reply: reply, err: providerErr}
	publisher := &fakePublisher{}

	matcher := match.NewMatcher(
		&fakeReactionRepo{reactions: []*entity.Reaction{
			{Reaction: "A köd is elmozdul.", TriggerContext: strPtr("köd"), Rarity: constant.ReactionRarityCommon},
		}},
		fakeRecommendationRepo{},
	)

	gen := NewGenerator(
		&fakeFactory{uow: uow},
		&fakeProfileSource{profile: journalProfile()},
		prompt.NewCache(),
		matcher,
		provider,
		publisher,
		noopLogger{},
		"test-model",
	)

	return &generatorFixture{generator: gen, uow: uow, provider: provider, publisher: publisher}
}

func openSession() *entity.Session {
	return &entity.Session{
		Id:          uuid.New(),
		UserId:      uuid.New(),
		ProfileName: "tukor",
		StartedAt:   time.Now().Add(-time.Hour),
	}
}

func TestGenerateSessionNotFound(t *testing.T) {
	fx := newFixture(nil, nil, "válasz", nil)

	_, err := fx.generator.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, fx.provider.calls)
}

func TestGenerateClosureTriggerShortCircuits(t *testing.T) {
	session := openSession()
	now := time.Now()
	entries := []*entity.Entry{
		{Role: constant.EntryRoleUser, Content: "Hosszú nap volt.", CreatedAt: now.Add(-2 * time.Minute)},
		{Role: constant.EntryRoleAssistant, Content: "Mesélj róla.", CreatedAt: now.Add(-time.Minute)},
		{Role: constant.EntryRoleUser, Content: "  lezárom a napot  ", CreatedAt: now},
	}
	fx := newFixture(session, entries, "válasz", nil)

	result, err := fx.generator.Generate(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Equal(t, constant.ClosureDetectedWarning, result.Warning)
	assert.Empty(t, result.Reply)
	// The completion service must never see the trigger turn.
	assert.Zero(t, fx.provider.calls)
	assert.Zero(t, fx.publisher.usageCalls)
}

func TestGenerateClosureTriggerInLongSession(t *testing.T) {
	// The trigger must still be detected once the session holds more
	// entries than the history window.
	session := openSession()
	base := time.Now().Add(-2 * time.Hour)
	var entries []*entity.Entry
	for i := 0; i < constant.RespondHistoryLimit+5; i++ {
		entries = append(entries, &entity.Entry{
			Role:      constant.EntryRoleUser,
			Content:   fmt.Sprintf("bejegyzés %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	entries = append(entries, &entity.Entry{
		Role:      constant.EntryRoleUser,
		Content:   "  lezárom a napot  ",
		CreatedAt: base.Add(time.Hour),
	})
	fx := newFixture(session, entries, "válasz", nil)

	result, err := fx.generator.Generate(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Equal(t, constant.ClosureDetectedWarning, result.Warning)
	assert.Zero(t, fx.provider.calls)
	assert.Zero(t, fx.publisher.usageCalls)
}

func TestGenerateHistoryWindowKeepsNewest(t *testing.T) {
	session := openSession()
	base := time.Now().Add(-2 * time.Hour)
	var entries []*entity.Entry
	for i := 0; i < constant.RespondHistoryLimit+5; i++ {
		entries = append(entries, &entity.Entry{
			Role:      constant.EntryRoleUser,
			Content:   fmt.Sprintf("bejegyzés %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	fx := newFixture(session, entries, "válasz", nil)

	_, err := fx.generator.Generate(context.Background(), session.Id)
	require.NoError(t, err)

	// One system message plus the newest entries in chronological order.
	require.Len(t, fx.provider.last, constant.RespondHistoryLimit+1)
	history := fx.provider.last[1:]
	assert.Equal(t, "bejegyzés 5", history[0].Content)
	assert.Equal(t, fmt.Sprintf("bejegyzés %d", constant.RespondHistoryLimit+4), history[len(history)-1].Content)
}

func TestGenerateClosedSessionIgnoresTrigger(t *testing.T) {
	session := openSession()
	endedAt := time.Now()
	session.EndedAt = &endedAt
	entries := []*entity.Entry{
		{Role: constant.EntryRoleUser, Content: "lezárom a napot"},
	}
	fx := newFixture(session, entries, "válasz", nil)

	result, err := fx.generator.Generate(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Empty(t, result.Warning)
	assert.Equal(t, "válasz", result.Reply)
}

func TestGenerateAvoidanceRedirect(t *testing.T) {
	session := openSession()
	entries := []*entity.Entry{
		{Role: constant.EntryRoleUser, Content: "A POLITIKA borzasztóan feszít ma"},
	}
	fx := newFixture(session, entries, "válasz", nil)

	result, err := fx.generator.Generate(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Equal(t, constant.AvoidanceRedirectReply, result.Reply)
	assert.Empty(t, result.ReactionTag)
	assert.Empty(t, result.RecommendationTag)
	assert.Zero(t, fx.provider.calls)
}

func TestGenerateHappyPath(t *testing.T) {
	session := openSession()
	entries := []*entity.Entry{
		{Role: constant.EntryRoleUser, Content: "Ma ködben jártam, minden szürke volt", CreatedAt: time.Now()},
	}
	fx := newFixture(session, entries, "  Értem, a köd néha elrejt.  ", nil)

	result, err := fx.generator.Generate(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Equal(t, "Értem, a köd néha elrejt.", result.Reply)
	assert.Equal(t, "A köd is elmozdul.", result.ReactionTag)
	assert.Equal(t, 1, fx.publisher.usageCalls)

	require.NotEmpty(t, fx.provider.last)
	system := fx.provider.last[0]
	assert.Equal(t, constant.EntryRoleSystem, system.Role)
	assert.Contains(t, system.Content, constant.LanguageTonePreamble)
	assert.Contains(t, system.Content, "# CLOSING")

	// One system event per tag found.
	require.Len(t, fx.publisher.events, 1)
	assert.Equal(t, constant.EventReactionTriggered, fx.publisher.events[0].eventType)
	assert.Equal(t, "A köd is elmozdul.", fx.publisher.events[0].note)
}

func TestGenerateProviderError(t *testing.T) {
	session := openSession()
	entries := []*entity.Entry{
		{Role: constant.EntryRoleUser, Content: "Nehéz nap volt"},
	}
	fx := newFixture(session, entries, "", errors.New("upstream timeout"))

	_, err := fx.generator.Generate(context.Background(), session.Id)
	assert.ErrorIs(t, err, apperror.ErrGenerationFailure)
	assert.Zero(t, fx.publisher.usageCalls)
}

func TestGenerateEmptyReply(t *testing.T) {
	session := openSession()
	entries := []*entity.Entry{
		{Role: constant.EntryRoleUser, Content: "Nehéz nap volt"},
	}
	fx := newFixture(session, entries, "   ", nil)

	_, err := fx.generator.Generate(context.Background(), session.Id)
	assert.ErrorIs(t, err, apperror.ErrGenerationFailure)
}

func TestDedupEntriesKeepsReactionTagged(t *testing.T) {
	plain := &entity.Entry{Role: constant.EntryRoleAssistant, Content: "ugyanaz"}
	tagged := &entity.Entry{Role: constant.EntryRoleAssistant, Content: "ugyanaz", ReactionTag: strPtr("jelzés")}
	other := &entity.Entry{Role: constant.EntryRoleUser, Content: "ugyanaz"}

	out := dedupEntries([]*entity.Entry{plain, other, tagged})
	require.Len(t, out, 2)
	// The tagged duplicate replaced the plain one in place.
	assert.Same(t, tagged, out[0])
	assert.Same(t, other, out[1])
}

func TestMatchesAvoidanceBadPatternFallsBack(t *testing.T) {
	// An invalid regex degrades to a substring check.
	assert.True(t, matchesAvoidance([]string{"("}, "zárójel ( a szövegben"))
	assert.False(t, matchesAvoidance([]string{"("}, "nincs itt semmi"))
	assert.False(t, matchesAvoidance(nil, "bármi"))
	assert.False(t, matchesAvoidance([]string{"téma"}, ""))
}

func TestSessionStatsSilenceGap(t *testing.T) {
	now := time.Now()
	stats := sessionStats([]*entity.Entry{
		{Role: constant.EntryRoleUser, CreatedAt: now.Add(-10 * time.Minute)},
		{Role: constant.EntryRoleAssistant, CreatedAt: now.Add(-9 * time.Minute)},
		{Role: constant.EntryRoleUser, CreatedAt: now},
	})
	require.NotNil(t, stats.SilenceSeconds)
	assert.Equal(t, 600, *stats.SilenceSeconds)
	assert.Nil(t, stats.TopicLoop)

	assert.Nil(t, sessionStats([]*entity.Entry{
		{Role: constant.EntryRoleUser, CreatedAt: now},
	}).SilenceSeconds)
}
