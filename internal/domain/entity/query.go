package entity

import "strings"

// Query a single shopper message
type Query struct {
	Raw        string
	Normalized string
	Tokens     []string
}

// NewQuery lower-cases and trims the raw text and splits it on whitespace.
func NewQuery(raw string) Query {
	normalized := strings.TrimSpace(strings.ToLower(raw))
	return Query{
		Raw:        raw,
		Normalized: normalized,
		Tokens:     strings.Fields(normalized),
	}
}

// IsEmpty reports whether nothing is left after normalization.
func (q Query) IsEmpty() bool {
	return q.Normalized == ""
}
