package entity

import "github.com/google/uuid"

// UserPreferences are per-user prompt knobs. Every field is optional;
// a nil field means "no adjustment". Resetting deletes the row so that
// absence stays the canonical default state.
type UserPreferences struct {
	UserId         uuid.UUID
	AnswerLength   *string
	StyleMode      *string
	GuidanceMode   *string
	TonePreference *string
}

// Empty reports whether no preference field is set.
func (p *UserPreferences) Empty() bool {
	if p == nil {
		return true
	}
	return p.AnswerLength == nil && p.StyleMode == nil &&
		p.GuidanceMode == nil && p.TonePreference == nil
}
