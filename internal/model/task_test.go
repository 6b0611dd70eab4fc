package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want DateInput
	}{
		{name: "date string", body: `{"dueDate":"2025-01-01"}`, want: "2025-01-01"},
		{name: "timestamp string", body: `{"dueDate":"2025-01-01T10:00:00Z"}`, want: "2025-01-01T10:00:00Z"},
		{name: "epoch millis", body: `{"dueDate":1735725600000}`, want: "2025-01-01T10:00:00Z"},
		{name: "epoch millis with fraction", body: `{"dueDate":1735725600123}`, want: "2025-01-01T10:00:00.123Z"},
		{name: "null", body: `{"dueDate":null}`, want: ""},
		{name: "missing", body: `{}`, want: ""},
		{name: "boolean kept as is", body: `{"dueDate":true}`, want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in TaskInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			assert.Equal(t, tt.want, in.DueDate)
		})
	}
}
