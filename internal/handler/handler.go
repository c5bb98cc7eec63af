// Package handler provides HTTP handlers for the catalog proxy API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"catalog-proxy/internal/codec"
	"catalog-proxy/internal/model"
	"catalog-proxy/internal/reqcontext"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	codec  codec.Codec
	logger *slog.Logger
}

// New creates a new Handler with the given codec and logger.
func New(c codec.Codec, logger *slog.Logger) *Handler {
	return &Handler{
		codec:  c,
		logger: logger,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Discovery endpoint
	mux.HandleFunc("GET /.well-known/commerce", h.handleWellKnown)

	// REST transport - catalog operations
	mux.HandleFunc("GET /products", h.handleGetProducts)
	mux.HandleFunc("GET /products/{id}", h.handleGetProduct)
	mux.HandleFunc("POST /products", h.handleImportProduct)
	mux.HandleFunc("GET /categories", h.handleGetCategories)
	mux.HandleFunc("GET /categories/{id}", h.handleGetCategory)
	mux.HandleFunc("GET /categories/{id}/products", h.handleGetCategoryProducts)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// === Query Context ===

// knownParams are query parameters bound to named Args fields. Everything
// else travels in Args.Extra and overrides the named fields when the vendor
// request is built.
var knownParams = map[string]bool{
	"id": true, "slug": true, "sku": true, "keyword": true,
	"filter": true, "where": true, "productIds": true,
	"limit": true, "offset": true, "full": true, "all": true,
	"language": true, "country": true, "currency": true, "segment": true,
}

// queryContext builds the query context for a request: the locale stored by
// the context middleware, locale overrides from query parameters, and the
// structured arguments.
func (h *Handler) queryContext(r *http.Request) model.QueryContext {
	qc := reqcontext.FromContext(r.Context())

	params := r.URL.Query()
	if v := params.Get("language"); v != "" {
		qc.Language = v
	}
	if v := params.Get("country"); v != "" {
		qc.Country = v
	}
	if v := params.Get("currency"); v != "" {
		qc.Currency = v
	}
	if v := params.Get("segment"); v != "" {
		qc.Segment = v
	}

	qc.Args = model.Args{
		ID:         params.Get("id"),
		Slug:       params.Get("slug"),
		SKU:        params.Get("sku"),
		Keyword:    params.Get("keyword"),
		Filter:     params.Get("filter"),
		Where:      params.Get("where"),
		ProductIDs: params.Get("productIds"),
		Limit:      intParam(params, "limit"),
		Offset:     intParam(params, "offset"),
		Full:       boolParam(params, "full"),
		All:        boolParam(params, "all"),
	}

	for key, values := range params {
		if knownParams[key] {
			continue
		}
		if qc.Args.Extra == nil {
			qc.Args.Extra = url.Values{}
		}
		qc.Args.Extra[key] = values
	}

	return qc
}

func intParam(params url.Values, key string) int {
	n, err := strconv.Atoi(params.Get(key))
	if err != nil {
		return 0
	}
	return n
}

func boolParam(params url.Values, key string) bool {
	if !params.Has(key) {
		return false
	}
	v := params.Get(key)
	return v == "" || v == "true" || v == "1"
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error response, extracting status/code from APIError if present.
// Uses errors.As() to unwrap error chains (e.g., fmt.Errorf wrapping).
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if errors.As(err, &apiErr) {
		// Found APIError in error chain - use it
	} else {
		// Wrap unexpected errors
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v interface{}) error {
	// Limit request body size to prevent DoS
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}
