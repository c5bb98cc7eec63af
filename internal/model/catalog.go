package model

// CategoryRef is a weak reference to a category, by id only. Product
// category lists carry the parent and ancestor chain as well.
type CategoryRef struct {
	ID        string        `json:"id,omitempty"`
	Parent    *CategoryRef  `json:"parent,omitempty"`
	Ancestors []CategoryRef `json:"ancestors,omitempty"`
}

// Category is a localized catalog category. Children is computed by the
// codec's hierarchy reconstruction, never persisted by the vendor.
type Category struct {
	ID        string        `json:"id"`
	Parent    *CategoryRef  `json:"parent,omitempty"`
	Ancestors []CategoryRef `json:"ancestors,omitempty"`
	Name      string        `json:"name"`
	Slug      string        `json:"slug"`
	Children  []Category    `json:"children,omitempty"`

	// Products is populated only when a category is fetched with
	// Args.Full set.
	Products []Product `json:"products,omitempty"`
}

// Product is a localized catalog product.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`

	// ImageSetID identifies the product's image set, derived from a named
	// variant attribute by the vendor codec.
	ImageSetID string `json:"imageSetId,omitempty"`

	Variants    []Variant     `json:"variants"`
	Categories  []CategoryRef `json:"categories,omitempty"`
	ProductType string        `json:"productType,omitempty"`
}

// Prices holds formatted list and sale prices. Sale starts equal to List and
// is overwritten by discount post-processing.
type Prices struct {
	List string `json:"list"`
	Sale string `json:"sale"`
}

// Variant is a purchasable variant of a product.
type Variant struct {
	SKU        string      `json:"sku"`
	Prices     Prices      `json:"prices"`
	Images     []Image     `json:"images,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Image is a product image, URL only.
type Image struct {
	URL string `json:"url"`
}

// Attribute is a localized variant attribute.
type Attribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// DiscountTarget describes what a cart discount applies to, e.g. line items
// matching a product-type predicate.
type DiscountTarget struct {
	Type      string `json:"type"`
	Predicate string `json:"predicate,omitempty"`
}

// DiscountValue describes how much a cart discount takes off. Relative
// discounts are expressed in permyriad: parts per 10,000 (2000 = 20%).
type DiscountValue struct {
	Type      string `json:"type"`
	Permyriad int64  `json:"permyriad,omitempty"`
}

// CartDiscount is a vendor cart discount rule. CartPredicate selects the
// customers it applies to (customer-group match).
type CartDiscount struct {
	CartPredicate string         `json:"cartPredicate"`
	Target        DiscountTarget `json:"target"`
	Value         DiscountValue  `json:"value"`
}

// ProductImport is the inbound shape of the product import write path.
type ProductImport struct {
	Language    string          `json:"language,omitempty"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	ProductType string          `json:"productType,omitempty"`
	Variants    []VariantImport `json:"variants"`
}

// VariantImport is one variant of an imported product. Prices are supplied
// as minor units (cents) with an ISO currency code.
type VariantImport struct {
	SKU        string      `json:"sku"`
	PriceCents int64       `json:"priceCents"`
	Currency   string      `json:"currency"`
	Images     []Image     `json:"images,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
}
