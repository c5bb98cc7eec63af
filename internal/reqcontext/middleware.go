package reqcontext

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"catalog-proxy/internal/model"
)

type contextKey string

const queryContextKey contextKey = "commerce_context"

// Defaults are the locale values applied when a request does not declare
// them.
type Defaults struct {
	Language string
	Country  string
	Currency string
}

// Middleware parses the Commerce-Context header and stores the resulting
// query context on the request. The header is optional; missing keys fall
// back to the configured defaults. A malformed header is rejected with
// 400 rather than silently served in the wrong locale.
func Middleware(defaults Defaults, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var qc model.QueryContext

			if header := r.Header.Get(Header); header != "" {
				parsed, err := ParseHeader(header)
				if err != nil {
					logger.Warn("rejecting commerce context header",
						slog.String("header", header),
						slog.String("error", err.Error()))
					writeContextError(w, err.Error())
					return
				}
				qc = parsed
			}

			if qc.Language == "" {
				qc.Language = defaults.Language
			}
			if qc.Country == "" {
				qc.Country = defaults.Country
			}
			if qc.Currency == "" {
				qc.Currency = defaults.Currency
			}

			ctx := context.WithValue(r.Context(), queryContextKey, qc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the query context stored by Middleware. The zero
// context is returned when the middleware did not run.
func FromContext(ctx context.Context) model.QueryContext {
	qc, _ := ctx.Value(queryContextKey).(model.QueryContext)
	return qc
}

// writeContextError writes the standard error envelope for a rejected
// context header.
func writeContextError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	resp := struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}{}
	resp.Error.Code = "INVALID_CONTEXT"
	resp.Error.Message = message

	json.NewEncoder(w).Encode(resp)
}
