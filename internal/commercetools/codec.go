// Package commercetools implements the commerce codec for the
// commercetools platform. It translates neutral catalog queries into
// commercetools REST calls, localizes the responses, rebuilds the category
// tree from flat parent references, and replays cart discount rules so
// listings carry sale prices.
package commercetools

import (
	"context"
	"fmt"
	"log/slog"

	"catalog-proxy/internal/codec"
	"catalog-proxy/internal/model"
)

// Vendor is the registry name of this codec.
const Vendor = "commercetools"

func init() {
	codec.Register(codec.Type{
		Vendor:   Vendor,
		Validate: Validate,
		New:      New,
	})
}

// Validate reports whether the credentials carry everything this codec
// needs. commercetools requires the full OAuth client-credentials set plus
// the project key.
func Validate(creds codec.Credentials) bool {
	return creds.ClientID != "" &&
		creds.ClientSecret != "" &&
		creds.OAuthURL != "" &&
		creds.APIURL != "" &&
		creds.Project != "" &&
		creds.Scope != ""
}

// Codec is the commercetools implementation of codec.Codec.
type Codec struct {
	client *Client
	logger *slog.Logger
}

// New creates a commercetools codec from a validated configuration.
func New(cfg codec.Config) (codec.Codec, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{
		client: NewClient(cfg.Credentials),
		logger: logger.With("codec", Vendor),
	}, nil
}

// === Products ===

// GetProduct resolves a single product by id, slug, or sku.
func (c *Codec) GetProduct(ctx context.Context, qc model.QueryContext) (*model.Product, error) {
	if qc.Args.ID == "" && qc.Args.Slug == "" && qc.Args.SKU == "" {
		return nil, model.NewValidationError("args", "product lookup needs an id, slug, or sku")
	}

	p, err := c.fetchProducts(ctx, qc)
	if err != nil {
		return nil, err
	}
	if len(p.Results) == 0 {
		return nil, model.NewNotFoundError("product")
	}
	return &p.Results[0], nil
}

// GetProducts returns the page of products selected by the query, or the
// entire catalog when Args.All is set.
func (c *Codec) GetProducts(ctx context.Context, qc model.QueryContext) (model.Page[model.Product], error) {
	return c.fetchProducts(ctx, qc)
}

// GetProductsForCategory returns the products anywhere under the given
// category, descendants included, via a subtree facet filter.
func (c *Codec) GetProductsForCategory(ctx context.Context, parent model.Category, qc model.QueryContext) ([]model.Product, error) {
	sub := qc
	sub.Args.ID = ""
	sub.Args.Slug = ""
	sub.Args.Filter = fmt.Sprintf("categories.id: subtree(%q)", parent.ID)

	p, err := c.fetchProducts(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("fetching products for category %q: %w", parent.ID, err)
	}
	return p.Results, nil
}

// === Categories ===

// GetCategory resolves a single category with its children attached. With
// Args.Full set the category's products are loaded as well.
func (c *Codec) GetCategory(ctx context.Context, qc model.QueryContext) (*model.Category, error) {
	if qc.Args.ID == "" && qc.Args.Slug == "" {
		return nil, model.NewValidationError("args", "category lookup needs an id or slug")
	}

	roots, err := c.GetCategoryHierarchy(ctx, qc)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, model.NewNotFoundError("category")
	}
	cat := roots[0]

	if qc.Args.Full {
		products, err := c.GetProductsForCategory(ctx, cat, qc)
		if err != nil {
			return nil, err
		}
		cat.Products = products
	}
	return &cat, nil
}

// GetCategories returns the category hierarchy selected by the query.
func (c *Codec) GetCategories(ctx context.Context, qc model.QueryContext) ([]model.Category, error) {
	return c.GetCategoryHierarchy(ctx, qc)
}

// GetCategoryHierarchy fetches the full flat category set and rebuilds the
// tree locally. The roots are the query's id/slug selection when given,
// otherwise every category without a parent.
func (c *Codec) GetCategoryHierarchy(ctx context.Context, qc model.QueryContext) ([]model.Category, error) {
	// The whole set is needed to attach children, so the fetch ignores the
	// query's entity selectors; they pick the roots afterwards.
	flat := qc
	flat.Args.ID = ""
	flat.Args.Slug = ""

	p, err := c.fetchCategories(ctx, flat)
	if err != nil {
		return nil, err
	}

	return c.buildHierarchy(p.Results, qc), nil
}

// buildHierarchy rebuilds the category tree from flat parent references.
// Children are attached depth first. A visited set guards against parent
// cycles in the vendor data: a category already placed in the tree is never
// attached a second time.
func (c *Codec) buildHierarchy(flat []model.Category, qc model.QueryContext) []model.Category {
	byID := make(map[string]model.Category, len(flat))
	childIDs := make(map[string][]string, len(flat))
	for _, cat := range flat {
		byID[cat.ID] = cat
		if cat.Parent != nil && cat.Parent.ID != "" {
			childIDs[cat.Parent.ID] = append(childIDs[cat.Parent.ID], cat.ID)
		}
	}

	visited := make(map[string]bool, len(flat))
	var populate func(id string) model.Category
	populate = func(id string) model.Category {
		visited[id] = true
		cat := byID[id]
		for _, childID := range childIDs[id] {
			if visited[childID] {
				c.logger.Warn("category cycle detected", "id", childID, "parent", id)
				continue
			}
			cat.Children = append(cat.Children, populate(childID))
		}
		return cat
	}

	var roots []model.Category
	for _, cat := range flat {
		switch {
		case qc.Args.ID != "":
			if cat.ID != qc.Args.ID {
				continue
			}
		case qc.Args.Slug != "":
			if cat.Slug != qc.Args.Slug {
				continue
			}
		default:
			if cat.Parent != nil && cat.Parent.ID != "" {
				continue
			}
		}
		if visited[cat.ID] {
			continue
		}
		roots = append(roots, populate(cat.ID))
	}
	return roots
}

// Verify Codec implements the codec interface at compile time.
var _ codec.Codec = (*Codec)(nil)
