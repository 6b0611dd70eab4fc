package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	DueDate     time.Time `json:"dueDate" bson:"due_date"`
	Priority    Priority  `json:"priority" bson:"priority"`
	TenantID    string    `json:"tenantId" bson:"tenant_id"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// TaskInput is the client payload for create and update. Anything else the
// client sends, a tenant id included, is dropped by the decoder.
type TaskInput struct {
	Title       string    `json:"title" validate:"required,min=3"`
	Description string    `json:"description" validate:"required,min=5"`
	DueDate     DateInput `json:"dueDate" validate:"required,date"`
	Priority    string    `json:"priority" validate:"required,oneof=low medium high"`
}

// DateInput is a due date as the client sent it: a date string, or a number of
// milliseconds since the Unix epoch. Numbers are normalized to RFC 3339.
// Any other JSON value is kept verbatim and fails date validation.
type DateInput string

func (d *DateInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*d = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = DateInput(s)
	default:
		ms, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			*d = DateInput(b)
			return nil
		}
		*d = DateInput(time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano))
	}
	return nil
}
