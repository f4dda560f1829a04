package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", `"2024-03-01T10:00:00Z"`, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"local date-time", `"2024-03-01T10:00:00"`, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"fractional", `"2024-03-01T10:00:00.123"`, time.Date(2024, 3, 1, 10, 0, 0, 123000000, time.UTC)},
		{"space separated", `"2024-03-01 10:00:00"`, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"empty", `""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestPage_UnmarshalJSON(t *testing.T) {
	t.Run("page field", func(t *testing.T) {
		var p Page[Document]
		require.NoError(t, json.Unmarshal([]byte(`{"content":[{"id":1}],"page":2,"size":10,"totalElements":25,"totalPages":3}`), &p))

		assert.Equal(t, 2, p.Page)
		assert.Len(t, p.Content, 1)
		assert.True(t, p.HasPrev())
		assert.False(t, p.HasNext())
	})

	t.Run("spring number field", func(t *testing.T) {
		var p Page[Document]
		require.NoError(t, json.Unmarshal([]byte(`{"content":[],"number":1,"size":10,"totalElements":25,"totalPages":3}`), &p))

		assert.Equal(t, 1, p.Page)
		assert.True(t, p.HasNext())
	})

	t.Run("null content", func(t *testing.T) {
		var p Page[Document]
		require.NoError(t, json.Unmarshal([]byte(`{"size":10}`), &p))

		assert.NotNil(t, p.Content)
		assert.NoError(t, p.Validate())
	})
}

func TestPage_Validate(t *testing.T) {
	p := Page[Document]{Content: make([]Document, 11), Size: 10}
	assert.Error(t, p.Validate())

	p.Content = p.Content[:10]
	assert.NoError(t, p.Validate())
}

func TestSearchParams_Normalize(t *testing.T) {
	p := SearchParams{Page: -1}.Normalize()
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, DefaultPageSize, p.Size)

	p = SearchParams{Title: "Report", Size: 5}.WithPage(2)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 5, p.Size)
	assert.Equal(t, "Report", p.Title)
}

func TestParseDocumentType(t *testing.T) {
	dt, ok := ParseDocumentType(" pdf ")
	assert.True(t, ok)
	assert.Equal(t, DocumentTypePDF, dt)

	_, ok = ParseDocumentType("")
	assert.False(t, ok)
	_, ok = ParseDocumentType("EXCEL")
	assert.False(t, ok)
}

func TestSession(t *testing.T) {
	s := AuthResponse{Token: "t", Username: "alice", Email: "a@example.com", FullName: "Alice", Role: RoleEditor}.Session()

	assert.True(t, s.Complete())
	assert.False(t, s.Empty())
	assert.Equal(t, "alice", s.User.Username)
	assert.Equal(t, RoleEditor, s.User.Role)

	assert.True(t, Session{}.Empty())
	assert.False(t, Session{Token: "t"}.Complete())
}
