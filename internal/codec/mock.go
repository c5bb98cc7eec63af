package codec

import (
	"context"

	"catalog-proxy/internal/model"
)

// Mock implements Codec for testing.
// Each method can be configured via function fields.
type Mock struct {
	GetProductFunc             func(ctx context.Context, qc model.QueryContext) (*model.Product, error)
	GetProductsFunc            func(ctx context.Context, qc model.QueryContext) (model.Page[model.Product], error)
	GetCategoryFunc            func(ctx context.Context, qc model.QueryContext) (*model.Category, error)
	GetCategoriesFunc          func(ctx context.Context, qc model.QueryContext) ([]model.Category, error)
	GetCategoryHierarchyFunc   func(ctx context.Context, qc model.QueryContext) ([]model.Category, error)
	GetProductsForCategoryFunc func(ctx context.Context, parent model.Category, qc model.QueryContext) ([]model.Product, error)
	ImportProductFunc          func(ctx context.Context, imp model.ProductImport) (*model.Product, error)
}

// GetProduct calls the configured GetProductFunc or returns a not-found error.
func (m *Mock) GetProduct(ctx context.Context, qc model.QueryContext) (*model.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, qc)
	}
	return nil, model.NewNotFoundError("product")
}

// GetProducts calls the configured GetProductsFunc or returns an empty page.
func (m *Mock) GetProducts(ctx context.Context, qc model.QueryContext) (model.Page[model.Product], error) {
	if m.GetProductsFunc != nil {
		return m.GetProductsFunc(ctx, qc)
	}
	return model.Page[model.Product]{Results: []model.Product{}}, nil
}

// GetCategory calls the configured GetCategoryFunc or returns a not-found error.
func (m *Mock) GetCategory(ctx context.Context, qc model.QueryContext) (*model.Category, error) {
	if m.GetCategoryFunc != nil {
		return m.GetCategoryFunc(ctx, qc)
	}
	return nil, model.NewNotFoundError("category")
}

// GetCategories calls the configured GetCategoriesFunc or returns an empty list.
func (m *Mock) GetCategories(ctx context.Context, qc model.QueryContext) ([]model.Category, error) {
	if m.GetCategoriesFunc != nil {
		return m.GetCategoriesFunc(ctx, qc)
	}
	return []model.Category{}, nil
}

// GetCategoryHierarchy calls the configured GetCategoryHierarchyFunc or returns an empty list.
func (m *Mock) GetCategoryHierarchy(ctx context.Context, qc model.QueryContext) ([]model.Category, error) {
	if m.GetCategoryHierarchyFunc != nil {
		return m.GetCategoryHierarchyFunc(ctx, qc)
	}
	return []model.Category{}, nil
}

// GetProductsForCategory calls the configured GetProductsForCategoryFunc or returns an empty list.
func (m *Mock) GetProductsForCategory(ctx context.Context, parent model.Category, qc model.QueryContext) ([]model.Product, error) {
	if m.GetProductsForCategoryFunc != nil {
		return m.GetProductsForCategoryFunc(ctx, parent, qc)
	}
	return []model.Product{}, nil
}

// ImportProduct calls the configured ImportProductFunc or returns an internal error.
func (m *Mock) ImportProduct(ctx context.Context, imp model.ProductImport) (*model.Product, error) {
	if m.ImportProductFunc != nil {
		return m.ImportProductFunc(ctx, imp)
	}
	return nil, model.NewInternalError(nil)
}

// Verify Mock implements Codec interface at compile time.
var _ Codec = (*Mock)(nil)
