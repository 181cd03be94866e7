package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflecta-be/internal/constant"
	"reflecta-be/internal/dto"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/contract"
	"reflecta-be/internal/repository/specification"
	"reflecta-be/internal/repository/unitofwork"
)

type warnRecord struct {
	module  string
	message string
	details map[string]interface{}
}

type captureLogger struct {
	warns []warnRecord
}

func (c *captureLogger) Debug(string, string, map[string]interface{}) {}
func (c *captureLogger) Info(string, string, map[string]interface{})  {}
func (c *captureLogger) Warn(module, message string, details map[string]interface{}) {
	c.warns = append(c.warns, warnRecord{module: module, message: message, details: details})
}
func (c *captureLogger) Error(string, string, map[string]interface{}) {}
func (c *captureLogger) Sync() error                                  { return nil }

type stubSessionRepo struct {
	session *entity.Session
}

func (s *stubSessionRepo) Create(context.Context, *entity.Session) error { return nil }
func (s *stubSessionRepo) FindOne(context.Context, ...specification.Specification) (*entity.Session, error) {
	return s.session, nil
}
func (s *stubSessionRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Session, error) {
	return nil, nil
}
func (s *stubSessionRepo) Close(context.Context, uuid.UUID, time.Time, string, float64) (int64, error) {
	return 1, nil
}

type stubEntryRepo struct {
	created []*entity.Entry
}

func (s *stubEntryRepo) Create(_ context.Context, entry *entity.Entry) error {
	s.created = append(s.created, entry)
	return nil
}
func (s *stubEntryRepo) CreateBatch(context.Context, []*entity.Entry) error { return nil }
func (s *stubEntryRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Entry, error) {
	return nil, nil
}

type stubProfileRepo struct {
	metadata    *entity.ProfileMetadata
	metadataErr error
}

func (s *stubProfileRepo) FindByName(context.Context, string) (*entity.Profile, error) {
	return nil, nil
}
func (s *stubProfileRepo) FindMetadata(context.Context, string) (*entity.ProfileMetadata, error) {
	return s.metadata, s.metadataErr
}

type stubUow struct {
	sessions *stubSessionRepo
	entries  *stubEntryRepo
	profiles *stubProfileRepo
}

func (s *stubUow) Begin(context.Context) error { return nil }
func (s *stubUow) Commit() error               { return nil }
func (s *stubUow) Rollback() error             { return nil }

func (s *stubUow) SessionRepository() contract.SessionRepository           { return s.sessions }
func (s *stubUow) ConversationRepository() contract.ConversationRepository { return nil }
func (s *stubUow) EntryRepository() contract.EntryRepository               { return s.entries }
func (s *stubUow) ProfileRepository() contract.ProfileRepository           { return s.profiles }
func (s *stubUow) ReactionRepository() contract.ReactionRepository         { return nil }
func (s *stubUow) RecommendationRepository() contract.RecommendationRepository {
	return nil
}
func (s *stubUow) UserPreferencesRepository() contract.UserPreferencesRepository { return nil }
func (s *stubUow) SystemEventRepository() contract.SystemEventRepository         { return nil }
func (s *stubUow) TokenUsageRepository() contract.TokenUsageRepository           { return nil }

type stubFactory struct {
	uow *stubUow
}

func (s *stubFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return s.uow }

func TestAppendMetadataErrorLoggedButNonFatal(t *testing.T) {
	session := &entity.Session{
		Id:          uuid.New(),
		UserId:      uuid.New(),
		ProfileName: "tukor",
		StartedAt:   time.Now(),
	}
	uow := &stubUow{
		sessions: &stubSessionRepo{session: session},
		entries:  &stubEntryRepo{},
		profiles: &stubProfileRepo{metadataErr: errors.New("connection reset")},
	}
	log := &captureLogger{}
	svc := NewEntryService(&stubFactory{uow: uow}, nil, log)

	resp, err := svc.Append(context.Background(), &dto.AppendEntryRequest{
		SessionId: session.Id,
		Entry:     dto.EntryPayload{Role: constant.EntryRoleUser, Content: "lezárom a napot"},
	})

	// The entry append succeeds even when trigger detection is degraded.
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.False(t, resp.Closed)
	require.Len(t, uow.entries.created, 1)

	// The lookup failure is recorded, not swallowed.
	require.Len(t, log.warns, 1)
	assert.Equal(t, "ENTRY", log.warns[0].module)
	assert.Contains(t, log.warns[0].details, "error")
	assert.Equal(t, "connection reset", log.warns[0].details["error"])
}

func TestAppendNonUserEntrySkipsTriggerDetection(t *testing.T) {
	session := &entity.Session{
		Id:          uuid.New(),
		UserId:      uuid.New(),
		ProfileName: "tukor",
		StartedAt:   time.Now(),
	}
	uow := &stubUow{
		sessions: &stubSessionRepo{session: session},
		entries:  &stubEntryRepo{},
		profiles: &stubProfileRepo{metadataErr: errors.New("must not be reached")},
	}
	log := &captureLogger{}
	svc := NewEntryService(&stubFactory{uow: uow}, nil, log)

	resp, err := svc.Append(context.Background(), &dto.AppendEntryRequest{
		SessionId: session.Id,
		Entry:     dto.EntryPayload{Role: constant.EntryRoleAssistant, Content: "lezárom a napot"},
	})

	require.NoError(t, err)
	assert.False(t, resp.Closed)
	assert.Empty(t, log.warns)
}
