package service

import (
	"bytes"
	"encoding/json"
)

// CreateItemInput is the body of POST /api/items.
type CreateItemInput struct {
	Title             string  `json:"title" validate:"required"`
	Type              string  `json:"type" validate:"required,oneof=TASK ASSIGNMENT EVENT MEETING DEADLINE"`
	Priority          string  `json:"priority" validate:"required,oneof=ROUTINE IMPORTANT CRITICAL"`
	Date              string  `json:"date" validate:"required,datestring"`
	Time              *string `json:"time" validate:"omitnil,datestring"`
	Recurrence        *string `json:"recurrence" validate:"omitnil,oneof=NONE DAILY WEEKLY MONTHLY"`
	RecurrenceEndDate *string `json:"recurrenceEndDate" validate:"omitnil,datestring"`
	Notes             *string `json:"notes"`
	AttendeeName      *string `json:"attendeeName"`
}

// UpdateItemInput is the body of PATCH /api/items/{id}. Every field is
// optional; CompletedAt additionally distinguishes an explicit null.
type UpdateItemInput struct {
	Title             *string        `json:"title" validate:"omitnil,min=1"`
	Type              *string        `json:"type" validate:"omitnil,oneof=TASK ASSIGNMENT EVENT MEETING DEADLINE"`
	Priority          *string        `json:"priority" validate:"omitnil,oneof=ROUTINE IMPORTANT CRITICAL"`
	Date              *string        `json:"date" validate:"omitnil,min=1,datestring"`
	Time              *string        `json:"time" validate:"omitnil,datestring"`
	Recurrence        *string        `json:"recurrence" validate:"omitnil,oneof=NONE DAILY WEEKLY MONTHLY"`
	RecurrenceEndDate *string        `json:"recurrenceEndDate" validate:"omitnil,datestring"`
	Notes             *string        `json:"notes"`
	AttendeeName      *string        `json:"attendeeName"`
	CompletedAt       NullableString `json:"completedAt" validate:"-"`
}

// NullableString records whether a JSON field was absent, null, or a string.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// IsNull reports an explicit JSON null.
func (n NullableString) IsNull() bool {
	return n.Set && n.Value == nil
}
