// MCP transport handler for the catalog proxy using the official MCP Go SDK.
// Exposes catalog operations as MCP tools.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"catalog-proxy/internal/model"
)

// === MCP Tool Input Types ===
// Every tool accepts an optional context block carrying the locale and
// customer segment, mirroring the Commerce-Context header on the REST
// transport.

// ContextInput is the locale block shared by all tool inputs.
type ContextInput struct {
	Language string `json:"language,omitempty" jsonschema:"content language"`
	Country  string `json:"country,omitempty" jsonschema:"price country"`
	Currency string `json:"currency,omitempty" jsonschema:"price currency"`
	Segment  string `json:"segment,omitempty" jsonschema:"customer segment for discount pricing"`
}

// GetProductInput is the input schema for the get_product tool.
type GetProductInput struct {
	Context ContextInput `json:"context,omitempty" jsonschema:"locale context"`
	ID      string       `json:"id,omitempty" jsonschema:"product id"`
	Slug    string       `json:"slug,omitempty" jsonschema:"product slug"`
	SKU     string       `json:"sku,omitempty" jsonschema:"variant sku"`
}

// SearchProductsInput is the input schema for the search_products tool.
type SearchProductsInput struct {
	Context    ContextInput `json:"context,omitempty" jsonschema:"locale context"`
	Keyword    string       `json:"keyword,omitempty" jsonschema:"full text search keyword"`
	Filter     string       `json:"filter,omitempty" jsonschema:"vendor facet filter expression"`
	ProductIDs string       `json:"productIds,omitempty" jsonschema:"comma separated product ids"`
	Limit      int          `json:"limit,omitempty" jsonschema:"page size"`
	Offset     int          `json:"offset,omitempty" jsonschema:"page offset"`
	All        bool         `json:"all,omitempty" jsonschema:"drain the entire catalog"`
}

// GetCategoryInput is the input schema for the get_category tool.
type GetCategoryInput struct {
	Context ContextInput `json:"context,omitempty" jsonschema:"locale context"`
	ID      string       `json:"id,omitempty" jsonschema:"category id"`
	Slug    string       `json:"slug,omitempty" jsonschema:"category slug"`
	Full    bool         `json:"full,omitempty" jsonschema:"include the category's products"`
}

// GetCategoriesInput is the input schema for the get_categories tool.
type GetCategoriesInput struct {
	Context ContextInput `json:"context,omitempty" jsonschema:"locale context"`
}

// === MCP Tool Output Types ===
// The SDK derives JSON schemas from these types at tool registration, which
// rules out the self-referential model types. Category trees are flattened
// to parent links and dynamic attribute values are rendered as strings.

// AttributeResult is a variant attribute with its value rendered as text.
type AttributeResult struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantResult is a purchasable variant in MCP output.
type VariantResult struct {
	SKU        string            `json:"sku"`
	Prices     model.Prices      `json:"prices"`
	Images     []model.Image     `json:"images,omitempty"`
	Attributes []AttributeResult `json:"attributes,omitempty"`
}

// CategoryRefResult is a product's category membership. The parent chain is
// carried as plain ids.
type CategoryRefResult struct {
	ID          string   `json:"id"`
	ParentID    string   `json:"parentId,omitempty"`
	AncestorIDs []string `json:"ancestorIds,omitempty"`
}

// ProductResult is a product in MCP output.
type ProductResult struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	ImageSetID  string              `json:"imageSetId,omitempty"`
	Variants    []VariantResult     `json:"variants"`
	Categories  []CategoryRefResult `json:"categories,omitempty"`
	ProductType string              `json:"productType,omitempty"`
}

// ProductPageResult is a page of products in MCP output. Meta is nil for
// single-object lookups, mirroring the REST envelope.
type ProductPageResult struct {
	Meta    *model.PageMeta `json:"meta,omitempty"`
	Results []ProductResult `json:"results"`
}

// CategoryResult is one node of a flattened category tree. ParentID links a
// node to its parent within the same result set.
type CategoryResult struct {
	ID       string          `json:"id"`
	ParentID string          `json:"parentId,omitempty"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Products []ProductResult `json:"products,omitempty"`
}

// CategoriesResult carries a flattened category tree, depth first with each
// root preceding its descendants.
type CategoriesResult struct {
	Results []CategoryResult `json:"results"`
}

// exportProductResult flattens a product for MCP structured output.
func exportProductResult(p model.Product) ProductResult {
	variants := make([]VariantResult, len(p.Variants))
	for i, v := range p.Variants {
		attrs := make([]AttributeResult, len(v.Attributes))
		for j, a := range v.Attributes {
			attrs[j] = AttributeResult{Name: a.Name, Value: fmt.Sprint(a.Value)}
		}
		variants[i] = VariantResult{
			SKU:        v.SKU,
			Prices:     v.Prices,
			Images:     v.Images,
			Attributes: attrs,
		}
	}

	var categories []CategoryRefResult
	for _, ref := range p.Categories {
		out := CategoryRefResult{ID: ref.ID}
		if ref.Parent != nil {
			out.ParentID = ref.Parent.ID
		}
		for _, ancestor := range ref.Ancestors {
			out.AncestorIDs = append(out.AncestorIDs, ancestor.ID)
		}
		categories = append(categories, out)
	}

	return ProductResult{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		ImageSetID:  p.ImageSetID,
		Variants:    variants,
		Categories:  categories,
		ProductType: p.ProductType,
	}
}

func exportProductResults(products []model.Product) []ProductResult {
	if len(products) == 0 {
		return nil
	}
	out := make([]ProductResult, len(products))
	for i, p := range products {
		out[i] = exportProductResult(p)
	}
	return out
}

// flattenCategories walks a category forest depth first, emitting one node
// per category with a parent link instead of nesting.
func flattenCategories(categories []model.Category, parentID string, out []CategoryResult) []CategoryResult {
	for _, cat := range categories {
		out = append(out, CategoryResult{
			ID:       cat.ID,
			ParentID: parentID,
			Name:     cat.Name,
			Slug:     cat.Slug,
			Products: exportProductResults(cat.Products),
		})
		out = flattenCategories(cat.Children, cat.ID, out)
	}
	return out
}

// NewMCPServer creates an MCP server with catalog tools registered.
// The server exposes the same operations as the REST API but via MCP protocol.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "catalog-proxy",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Commerce catalog operations. " +
				"Use these tools to look up products, search the catalog, and browse the category tree.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_product",
		Description: "Get a single product by id, slug, or sku.",
	}, h.mcpGetProduct)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search the product catalog by keyword, filter expression, or id list.",
	}, h.mcpSearchProducts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_category",
		Description: "Get a category subtree by id or slug, optionally with its products.",
	}, h.mcpGetCategory)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_categories",
		Description: "Get the full category hierarchy.",
	}, h.mcpGetCategories)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpGetProduct(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetProductInput,
) (*mcp.CallToolResult, *ProductResult, error) {
	if input.ID == "" && input.Slug == "" && input.SKU == "" {
		return nil, nil, fmt.Errorf("one of id, slug, or sku is required")
	}

	qc := mcpQueryContext(input.Context)
	qc.Args.ID = input.ID
	qc.Args.Slug = input.Slug
	qc.Args.SKU = input.SKU

	product, err := h.codec.GetProduct(ctx, qc)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	result := exportProductResult(*product)
	return nil, &result, nil
}

func (h *Handler) mcpSearchProducts(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SearchProductsInput,
) (*mcp.CallToolResult, *ProductPageResult, error) {
	qc := mcpQueryContext(input.Context)
	qc.Args.Keyword = input.Keyword
	qc.Args.Filter = input.Filter
	qc.Args.ProductIDs = input.ProductIDs
	qc.Args.Limit = input.Limit
	qc.Args.Offset = input.Offset
	qc.Args.All = input.All

	page, err := h.codec.GetProducts(ctx, qc)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, &ProductPageResult{
		Meta:    page.Meta,
		Results: exportProductResults(page.Results),
	}, nil
}

func (h *Handler) mcpGetCategory(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetCategoryInput,
) (*mcp.CallToolResult, *CategoriesResult, error) {
	if input.ID == "" && input.Slug == "" {
		return nil, nil, fmt.Errorf("one of id or slug is required")
	}

	qc := mcpQueryContext(input.Context)
	qc.Args.ID = input.ID
	qc.Args.Slug = input.Slug
	qc.Args.Full = input.Full

	category, err := h.codec.GetCategory(ctx, qc)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, &CategoriesResult{
		Results: flattenCategories([]model.Category{*category}, "", nil),
	}, nil
}

func (h *Handler) mcpGetCategories(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetCategoriesInput,
) (*mcp.CallToolResult, *CategoriesResult, error) {
	categories, err := h.codec.GetCategories(ctx, mcpQueryContext(input.Context))
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, &CategoriesResult{
		Results: flattenCategories(categories, "", nil),
	}, nil
}

// mcpQueryContext builds a query context from a tool's locale block.
func mcpQueryContext(in ContextInput) model.QueryContext {
	return model.QueryContext{
		Language: in.Language,
		Country:  in.Country,
		Currency: in.Currency,
		Segment:  in.Segment,
	}
}

// mcpError converts codec errors to MCP-friendly errors. Codec errors
// usually arrive wrapped with call-site context.
func (h *Handler) mcpError(err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}
