package handler

import (
	"net/http"

	"catalog-proxy/internal/model"
)

// handleGetProducts returns a product listing.
// GET /products?keyword=...&filter=...&productIds=...&limit=...&all=true
func (h *Handler) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.codec.GetProducts(r.Context(), h.queryContext(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, page)
}

// handleGetProduct returns a single product. The path value is treated as
// an id; lookup by slug or sku goes through the query parameters instead.
// GET /products/{id}
func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	qc := h.queryContext(r)
	qc.Args.ID = r.PathValue("id")

	product, err := h.codec.GetProduct(r.Context(), qc)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, model.SinglePage(*product))
}

// handleImportProduct writes a product into the vendor catalog.
// POST /products
func (h *Handler) handleImportProduct(w http.ResponseWriter, r *http.Request) {
	var imp model.ProductImport
	if err := decodeJSON(r, &imp); err != nil {
		h.writeError(w, err)
		return
	}

	product, err := h.codec.ImportProduct(r.Context(), imp)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, model.SinglePage(*product))
}

// handleGetCategories returns the category hierarchy.
// GET /categories
func (h *Handler) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.codec.GetCategories(r.Context(), h.queryContext(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, model.Page[model.Category]{Results: categories})
}

// handleGetCategory returns a single category subtree, with products when
// full is set.
// GET /categories/{id}?full=true
func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	qc := h.queryContext(r)
	qc.Args.ID = r.PathValue("id")
	qc.Args.Slug = ""

	category, err := h.codec.GetCategory(r.Context(), qc)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, model.SinglePage(*category))
}

// handleGetCategoryProducts returns the products anywhere under a category.
// GET /categories/{id}/products
func (h *Handler) handleGetCategoryProducts(w http.ResponseWriter, r *http.Request) {
	qc := h.queryContext(r)
	qc.Args.ID = r.PathValue("id")
	qc.Args.Slug = ""

	category, err := h.codec.GetCategory(r.Context(), qc)
	if err != nil {
		h.writeError(w, err)
		return
	}

	products, err := h.codec.GetProductsForCategory(r.Context(), *category, qc)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, model.Page[model.Product]{Results: products})
}
