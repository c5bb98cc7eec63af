package model

// PageMeta is the pagination envelope reported by a vendor for a paginated
// result set. Total is the vendor's declared total across all pages.
type PageMeta struct {
	Limit  int `json:"limit"`
	Count  int `json:"count"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Page is a translated result set. Meta is nil when the underlying vendor
// response was a single object rather than a paginated envelope; the page is
// tagged explicitly by the transport layer, never inferred from response
// shape.
type Page[T any] struct {
	Meta    *PageMeta `json:"meta,omitempty"`
	Results []T       `json:"results"`
}

// SinglePage wraps one entity in a one-element page with no meta.
func SinglePage[T any](entity T) Page[T] {
	return Page[T]{Results: []T{entity}}
}
