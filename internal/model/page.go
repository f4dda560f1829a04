package model

import (
	"encoding/json"
	"fmt"
)

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T   `json:"content" validate:"dive"`
	Page          int   `json:"page" validate:"gte=0"`
	Size          int   `json:"size" validate:"gte=0"`
	TotalElements int64 `json:"totalElements" validate:"gte=0"`
	TotalPages    int   `json:"totalPages" validate:"gte=0"`
}

type pageWire[T any] struct {
	Content       []T   `json:"content"`
	Page          *int  `json:"page"`
	Number        *int  `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// UnmarshalJSON also accepts Spring's "number" field for the page index.
func (p *Page[T]) UnmarshalJSON(b []byte) error {
	var w pageWire[T]
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	p.Content = w.Content
	if p.Content == nil {
		p.Content = []T{}
	}
	switch {
	case w.Page != nil:
		p.Page = *w.Page
	case w.Number != nil:
		p.Page = *w.Number
	default:
		p.Page = 0
	}
	p.Size = w.Size
	p.TotalElements = w.TotalElements
	p.TotalPages = w.TotalPages
	return nil
}

// Validate checks that the page holds no more items than its size.
func (p Page[T]) Validate() error {
	if len(p.Content) > p.Size {
		return fmt.Errorf("page holds %d items but size is %d", len(p.Content), p.Size)
	}
	return nil
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Page > 0 }

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Page+1 < p.TotalPages }
