// Package codec defines the vendor-neutral commerce codec interface and the
// registry that selects a codec implementation for a given configuration.
// Codecs translate the generic query surface to platform-specific APIs.
package codec

import (
	"context"
	"log/slog"

	"catalog-proxy/internal/model"
)

// Credentials are the vendor API credentials a codec is constructed with.
// Which fields are required depends on the codec type; a type's Validate
// function rejects configurations with missing fields before any codec is
// instantiated.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	OAuthURL     string `json:"oauth_url"`
	APIURL       string `json:"api_url"`
	Project      string `json:"project"`
	Scope        string `json:"scope"`
}

// Config holds everything needed to construct a codec instance.
type Config struct {
	Credentials Credentials
	Logger      *slog.Logger
}

// Codec abstracts commerce catalog operations into a unified interface.
// Each vendor platform provides its own implementation.
//
// All methods return neutral model entities ready for API serialization.
// Platform-specific request construction, localization, and error handling
// are encapsulated within each implementation.
type Codec interface {
	// GetProduct resolves a single product by id, slug, or sku.
	GetProduct(ctx context.Context, qc model.QueryContext) (*model.Product, error)

	// GetProducts returns a page of products selected by the query's
	// keyword/filter/productIds arguments, or the entire catalog when
	// Args.All is set.
	GetProducts(ctx context.Context, qc model.QueryContext) (model.Page[model.Product], error)

	// GetCategory resolves a single category by id or slug, with children
	// attached. When Args.Full is set the category's products are loaded
	// as well.
	GetCategory(ctx context.Context, qc model.QueryContext) (*model.Category, error)

	// GetCategories returns the category hierarchy rooted at the query's
	// id/slug selection, or at the top-level categories when neither is
	// given.
	GetCategories(ctx context.Context, qc model.QueryContext) ([]model.Category, error)

	// GetCategoryHierarchy is the underlying hierarchy reconstruction;
	// GetCategories delegates to it.
	GetCategoryHierarchy(ctx context.Context, qc model.QueryContext) ([]model.Category, error)

	// GetProductsForCategory returns the products anywhere under the given
	// category, including descendants.
	GetProductsForCategory(ctx context.Context, parent model.Category, qc model.QueryContext) ([]model.Product, error)

	// ImportProduct writes a product into the vendor catalog and returns
	// the created product in neutral form.
	ImportProduct(ctx context.Context, imp model.ProductImport) (*model.Product, error)
}
