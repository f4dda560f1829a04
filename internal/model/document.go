package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DocumentType classifies an uploaded file. The backend assigns it.
type DocumentType string

const (
	DocumentTypePDF   DocumentType = "PDF"
	DocumentTypeWord  DocumentType = "WORD"
	DocumentTypeText  DocumentType = "TEXT"
	DocumentTypeOther DocumentType = "OTHER"
)

// DocumentTypes lists every value accepted by the search filter.
var DocumentTypes = []DocumentType{DocumentTypePDF, DocumentTypeWord, DocumentTypeText, DocumentTypeOther}

// ParseDocumentType returns the matching type, or false for unknown or empty input.
func ParseDocumentType(s string) (DocumentType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, t := range DocumentTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Document is the backend's view of a stored file.
// The id is always assigned server-side; the frontend never constructs one.
type Document struct {
	ID               int64        `json:"id" validate:"required,gt=0"`
	Title            string       `json:"title"`
	FileName         string       `json:"fileName"`
	ContentType      string       `json:"contentType"`
	FileSize         int64        `json:"fileSize" validate:"gte=0"`
	Author           string       `json:"author"`
	TextContent      string       `json:"textContent"`
	UploadDate       Timestamp    `json:"uploadDate"`
	LastModifiedDate Timestamp    `json:"lastModifiedDate"`
	UploadedBy       string       `json:"uploadedBy"`
	DocumentType     DocumentType `json:"documentType" validate:"omitempty,oneof=PDF WORD TEXT OTHER"`
}

// LocalDateTimeLayout is the zone-less format the backend uses for dates,
// both in responses and in query parameters.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp decodes the several date shapes the backend emits.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts RFC3339 and zone-less local date-times. null and "" leave the zero value.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unsupported format %q", s)
}

// MarshalJSON writes RFC3339, or null for the zero value.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// SearchParams carries the document search filters.
// Empty optional fields are never sent to the backend.
type SearchParams struct {
	Title        string       `json:"title,omitempty" form:"title"`
	Author       string       `json:"author,omitempty" form:"author"`
	Content      string       `json:"content,omitempty" form:"content"`
	DocumentType DocumentType `json:"documentType,omitempty" form:"documentType"`
	StartDate    *time.Time   `json:"startDate,omitempty" form:"-"`
	EndDate      *time.Time   `json:"endDate,omitempty" form:"-"`
	Page         int          `json:"page" form:"page"`
	Size         int          `json:"size" form:"size"`
}

// DefaultPageSize is used whenever a caller leaves size unset.
const DefaultPageSize = 10

// Normalize applies the page and size defaults.
func (p SearchParams) Normalize() SearchParams {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

// WithPage returns a copy of the filters pointing at another page.
func (p SearchParams) WithPage(page int) SearchParams {
	p.Page = page
	return p.Normalize()
}
