package handler

import (
	"net/http"

	"catalog-proxy/internal/codec"
	"catalog-proxy/internal/reqcontext"
)

// discoveryProfile describes the service to clients: which vendors the
// registry can serve, the context header contract, and where each
// transport is mounted.
type discoveryProfile struct {
	Service        string            `json:"service"`
	ContextVersion string            `json:"context_version"`
	ContextHeader  string            `json:"context_header"`
	Vendors        []string          `json:"vendors"`
	Endpoints      map[string]string `json:"endpoints"`
}

// handleWellKnown returns the service discovery profile.
// GET /.well-known/commerce
func (h *Handler) handleWellKnown(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, discoveryProfile{
		Service:        "catalog-proxy",
		ContextVersion: reqcontext.CurrentVersion,
		ContextHeader:  reqcontext.Header,
		Vendors:        codec.Vendors(),
		Endpoints: map[string]string{
			"products":   "/products",
			"categories": "/categories",
			"mcp":        "/mcp",
		},
	})
}

// handleHealth returns a simple health check response.
// GET /health, GET /healthz
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type healthResponse struct {
	Status string `json:"status"`
}
