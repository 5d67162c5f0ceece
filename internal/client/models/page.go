package models

import (
	"bytes"
	"encoding/json"
)

// Page is a paginated list response: {count, next, previous, results}.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// UnmarshalJSON also accepts a bare JSON array, which the backend returns
// when pagination is disabled.
func (p *Page[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Count: len(items), Results: items}
		return nil
	}

	var raw struct {
		Count    int    `json:"count"`
		Next     string `json:"next"`
		Previous string `json:"previous"`
		Results  []T    `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	*p = Page[T]{Count: raw.Count, Next: raw.Next, Previous: raw.Previous, Results: raw.Results}
	return nil
}

func (p Page[T]) HasNext() bool     { return p.Next != "" }
func (p Page[T]) HasPrevious() bool { return p.Previous != "" }
