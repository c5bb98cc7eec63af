// Package model defines the vendor-neutral commerce schema shared by all
// codecs: query contexts, catalog entities, result envelopes, money
// formatting, and the error taxonomy.
package model

import "net/url"

// QueryContext carries the locale and arguments of a single commerce query.
// It is immutable per request; codecs derive fresh contexts for sub-calls
// instead of mutating the caller's.
type QueryContext struct {
	Language string `json:"language,omitempty"`
	Country  string `json:"country,omitempty"`
	Currency string `json:"currency,omitempty"`

	// Segment identifies the customer segment used for cart discount
	// post-processing. Empty means no segment.
	Segment string `json:"segment,omitempty"`

	Args Args `json:"args"`
}

// Args are the structured arguments of a query. Exactly which fields a codec
// honors depends on the operation; unknown parameters travel in Extra.
type Args struct {
	ID      string `json:"id,omitempty"`
	Slug    string `json:"slug,omitempty"`
	SKU     string `json:"sku,omitempty"`
	Keyword string `json:"keyword,omitempty"`

	// Filter and Where are vendor query predicates passed through verbatim.
	Filter string `json:"filter,omitempty"`
	Where  string `json:"where,omitempty"`

	// ProductIDs is a comma-separated ID list for multi-product lookups.
	ProductIDs string `json:"productIds,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Full requests that category lookups also load the category's products.
	Full bool `json:"full,omitempty"`

	// All requests a full catalog drain instead of a single page.
	All bool `json:"all,omitempty"`

	// Extra holds open-ended query parameters. When a request is built,
	// Extra entries override the named fields above. This precedence is
	// load-bearing: callers rely on explicit parameters winning.
	Extra url.Values `json:"-"`
}
