package dto

import "github.com/google/uuid"

type PreferencesPayload struct {
	AnswerLength   *string `json:"answer_length,omitempty" validate:"omitempty,oneof='very short' short long 'very long'"`
	StyleMode      *string `json:"style_mode,omitempty" validate:"omitempty,oneof=minimal simple symbolic mythic"`
	GuidanceMode   *string `json:"guidance_mode,omitempty" validate:"omitempty,oneof=open free guided directed"`
	TonePreference *string `json:"tone_preference,omitempty" validate:"omitempty,oneof=supportive confronting soothing"`
}

type UpdatePreferencesRequest struct {
	UserId      uuid.UUID          `json:"userId" validate:"required"`
	Preferences PreferencesPayload `json:"preferences"`
}

type ResetPreferencesRequest struct {
	UserId uuid.UUID `json:"userId" validate:"required"`
}

type PreferencesResponse struct {
	UserId         uuid.UUID `json:"userId"`
	AnswerLength   *string   `json:"answer_length,omitempty"`
	StyleMode      *string   `json:"style_mode,omitempty"`
	GuidanceMode   *string   `json:"guidance_mode,omitempty"`
	TonePreference *string   `json:"tone_preference,omitempty"`
}
