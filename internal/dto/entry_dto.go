package dto

import "github.com/google/uuid"

type EntryPayload struct {
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type AppendEntryRequest struct {
	SessionId uuid.UUID    `json:"sessionId" validate:"required"`
	Entry     EntryPayload `json:"entry" validate:"required"`
}

// AppendEntryResponse reports whether appending the entry triggered the
// closing sequence as a side effect.
type AppendEntryResponse struct {
	EntryId uuid.UUID `json:"entryId"`
	Closed  bool      `json:"closed"`
	Label   string    `json:"label,omitempty"`
}
