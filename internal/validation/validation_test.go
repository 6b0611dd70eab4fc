package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
)

func TestValidator_ValidateRegistration(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		input     model.RegisterInput
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid",
			input: model.RegisterInput{Username: "alice", Email: "a@x.com", Password: "secret1"},
		},
		{
			name:      "missing username",
			input:     model.RegisterInput{Email: "a@x.com", Password: "secret1"},
			wantField: "username",
			wantMsg:   `"username" is required`,
		},
		{
			name:      "short username",
			input:     model.RegisterInput{Username: "al", Email: "a@x.com", Password: "secret1"},
			wantField: "username",
			wantMsg:   `"username" length must be at least 3 characters long`,
		},
		{
			name:      "long username",
			input:     model.RegisterInput{Username: strings.Repeat("a", 31), Email: "a@x.com", Password: "secret1"},
			wantField: "username",
			wantMsg:   `"username" length must be less than or equal to 30 characters long`,
		},
		{
			name:      "bad email",
			input:     model.RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret1"},
			wantField: "email",
			wantMsg:   `"email" must be a valid email`,
		},
		{
			name:      "short password",
			input:     model.RegisterInput{Username: "alice", Email: "a@x.com", Password: "12345"},
			wantField: "password",
			wantMsg:   `"password" length must be at least 6 characters long`,
		},
		{
			name:      "first violation wins",
			input:     model.RegisterInput{Username: "a", Email: "bad", Password: "1"},
			wantField: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRegistration(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)

			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, verr.Message)
			}
		})
	}
}

func TestValidator_ValidateLogin(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateLogin(model.LoginInput{Email: "a@x.com", Password: "secret1"}))
	assert.ErrorIs(t, v.ValidateLogin(model.LoginInput{Email: "a@x.com"}), ErrInvalid)
	assert.ErrorIs(t, v.ValidateLogin(model.LoginInput{Email: "x", Password: "secret1"}), ErrInvalid)
}

func TestValidator_ValidateTask(t *testing.T) {
	v := New()
	valid := model.TaskInput{Title: "Buy milk", Description: "2 liters", DueDate: "2025-01-01", Priority: "low"}

	tests := []struct {
		name      string
		mutate    func(*model.TaskInput)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*model.TaskInput) {}},
		{name: "rfc3339 due date", mutate: func(in *model.TaskInput) { in.DueDate = "2025-01-01T10:30:00Z" }},
		{
			name:      "short title",
			mutate:    func(in *model.TaskInput) { in.Title = "ab" },
			wantField: "title",
			wantMsg:   `"title" length must be at least 3 characters long`,
		},
		{
			name:      "short description",
			mutate:    func(in *model.TaskInput) { in.Description = "abcd" },
			wantField: "description",
		},
		{
			name:      "missing due date",
			mutate:    func(in *model.TaskInput) { in.DueDate = "" },
			wantField: "dueDate",
			wantMsg:   `"dueDate" is required`,
		},
		{
			name:      "garbage due date",
			mutate:    func(in *model.TaskInput) { in.DueDate = "tomorrow" },
			wantField: "dueDate",
			wantMsg:   `"dueDate" must be a valid date`,
		},
		{
			name:      "unknown priority",
			mutate:    func(in *model.TaskInput) { in.Priority = "urgent" },
			wantField: "priority",
			wantMsg:   `"priority" must be one of [low, medium, high]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := v.ValidateTask(in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, verr.Message)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2025-01-01T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("01/02/2025")
	assert.Error(t, err)
}
