package service

import (
	"context"

	"reflecta-be/internal/dto"
	"reflecta-be/pkg/journal/profile"
)

type IProfileService interface {
	GetConfig(ctx context.Context, name string) (*dto.ProfileConfigResponse, error)
}

type profileService struct {
	profiles profile.Source
}

func NewProfileService(profiles profile.Source) IProfileService {
	return &profileService{
		profiles: profiles,
	}
}

func (s *profileService) GetConfig(ctx context.Context, name string) (*dto.ProfileConfigResponse, error) {
	prof, err := s.profiles.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileConfigResponse{
		Name:            prof.Name,
		Description:     prof.Description,
		Domain:          prof.Metadata.Domain,
		Worldview:       prof.Metadata.Worldview,
		NotSuitableFor:  prof.Metadata.NotSuitableFor,
		StartingPrompts: prof.Metadata.StartingPrompts,
		ClosingTrigger:  prof.Metadata.ClosingTrigger,
		ClosingStyle:    prof.Metadata.ClosingStyle,
	}, nil
}
