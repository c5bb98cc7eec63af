package commercetools

// Wire types for the commercetools HTTP API. Only the fields the codec
// reads are declared; everything else in a response is ignored.

// page is the commercetools paginated response envelope. Endpoints that
// return result sets always wrap them in this shape.
type page[T any] struct {
	Limit   int `json:"limit"`
	Count   int `json:"count"`
	Offset  int `json:"offset"`
	Total   int `json:"total"`
	Results []T `json:"results"`
}

// tokenResponse is the OAuth client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// errorResponse is the body commercetools returns on 4xx/5xx.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// ctReference is a reference to another resource. Obj carries the expanded
// resource when the request asked for expansion.
type ctReference struct {
	ID  string      `json:"id"`
	Obj *ctCategory `json:"obj,omitempty"`
}

type ctCategory struct {
	ID        string            `json:"id"`
	Parent    *ctReference      `json:"parent,omitempty"`
	Ancestors []ctReference     `json:"ancestors,omitempty"`
	Name      map[string]string `json:"name"`
	Slug      map[string]string `json:"slug"`
}

type ctTypeReference struct {
	TypeID string `json:"typeId,omitempty"`
	ID     string `json:"id"`
}

type ctProduct struct {
	ID            string            `json:"id"`
	Key           string            `json:"key,omitempty"`
	Name          map[string]string `json:"name"`
	Slug          map[string]string `json:"slug"`
	ProductType   ctTypeReference   `json:"productType"`
	MasterVariant ctVariant         `json:"masterVariant"`
	Variants      []ctVariant       `json:"variants"`
	Categories    []ctReference     `json:"categories,omitempty"`
}

type ctVariant struct {
	SKU string `json:"sku,omitempty"`

	// Prices is the general price list; ScopedPrice is present when the
	// request carried priceCountry/priceCurrency and is preferred.
	Prices      []ctPrice `json:"prices,omitempty"`
	ScopedPrice *ctPrice  `json:"scopedPrice,omitempty"`

	Images     []ctImage     `json:"images,omitempty"`
	Attributes []ctAttribute `json:"attributes,omitempty"`
}

type ctPrice struct {
	Value ctMoney `json:"value"`
}

type ctMoney struct {
	CurrencyCode string `json:"currencyCode"`
	CentAmount   int64  `json:"centAmount"`
}

type ctImage struct {
	URL string `json:"url"`
}

// ctAttribute is a variant attribute. Value is dynamic: plain string,
// boolean, an enum value carrying a label, or a language-keyed text map.
type ctAttribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type ctCartDiscount struct {
	CartPredicate string `json:"cartPredicate"`
	Target        struct {
		Type      string `json:"type"`
		Predicate string `json:"predicate"`
	} `json:"target"`
	Value struct {
		Type      string `json:"type"`
		Permyriad int64  `json:"permyriad"`
	} `json:"value"`
}

// Draft types for the product import write path.

type ctProductDraft struct {
	Name          map[string]string `json:"name"`
	Slug          map[string]string `json:"slug"`
	ProductType   *ctTypeReference  `json:"productType,omitempty"`
	MasterVariant *ctVariantDraft   `json:"masterVariant,omitempty"`
	Variants      []ctVariantDraft  `json:"variants,omitempty"`
	Publish       bool              `json:"publish,omitempty"`
}

type ctVariantDraft struct {
	SKU        string         `json:"sku,omitempty"`
	Prices     []ctPriceDraft `json:"prices,omitempty"`
	Images     []ctImage      `json:"images,omitempty"`
	Attributes []ctAttribute  `json:"attributes,omitempty"`
}

type ctPriceDraft struct {
	Value ctMoney `json:"value"`
}
