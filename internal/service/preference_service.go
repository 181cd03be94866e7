package service

import (
	"context"

	"github.com/google/uuid"

	"reflecta-be/internal/dto"
	"reflecta-be/internal/entity"
	"reflecta-be/internal/repository/unitofwork"
)

type IPreferenceService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error)
	Update(ctx context.Context, req *dto.UpdatePreferencesRequest) error
	Reset(ctx context.Context, userId uuid.UUID) error
}

type preferenceService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPreferenceService(uowFactory unitofwork.RepositoryFactory) IPreferenceService {
	return &preferenceService{
		uowFactory: uowFactory,
	}
}

// Get returns the user's stored knobs; a user without a row gets the
// all-defaults response.
func (s *preferenceService) Get(ctx context.Context, userId uuid.UUID) (*dto.PreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prefs, err := uow.UserPreferencesRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return &dto.PreferencesResponse{UserId: userId}, nil
	}
	return &dto.PreferencesResponse{
		UserId:         prefs.UserId,
		AnswerLength:   prefs.AnswerLength,
		StyleMode:      prefs.StyleMode,
		GuidanceMode:   prefs.GuidanceMode,
		TonePreference: prefs.TonePreference,
	}, nil
}

func (s *preferenceService) Update(ctx context.Context, req *dto.UpdatePreferencesRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserPreferencesRepository().Upsert(ctx, &entity.UserPreferences{
		UserId:         req.UserId,
		AnswerLength:   req.Preferences.AnswerLength,
		StyleMode:      req.Preferences.StyleMode,
		GuidanceMode:   req.Preferences.GuidanceMode,
		TonePreference: req.Preferences.TonePreference,
	})
}

// Reset deletes the row entirely; absence is the canonical default
// state, not a row of nulls.
func (s *preferenceService) Reset(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserPreferencesRepository().DeleteByUserId(ctx, userId)
}
