package reqcontext

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-proxy/internal/model"
)

func testDefaults() Defaults {
	return Defaults{Language: "en", Country: "US", Currency: "USD"}
}

func runMiddleware(t *testing.T, header string) (*httptest.ResponseRecorder, model.QueryContext) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var got model.QueryContext
	handler := Middleware(testDefaults(), logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/products", nil)
	if header != "" {
		req.Header.Set(Header, header)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, got
}

func TestMiddlewareAppliesDefaults(t *testing.T) {
	w, got := runMiddleware(t, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}
	if got.Language != "en" || got.Country != "US" || got.Currency != "USD" {
		t.Errorf("context = %+v, want defaults", got)
	}
}

func TestMiddlewareHeaderOverridesDefaults(t *testing.T) {
	w, got := runMiddleware(t, `language=de, currency=EUR, segment=b2b`)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d", w.Code)
	}
	if got.Language != "de" || got.Currency != "EUR" || got.Segment != "b2b" {
		t.Errorf("context = %+v, want header values", got)
	}
	if got.Country != "US" {
		t.Errorf("Country = %q, want default kept for undeclared keys", got.Country)
	}
}

func TestMiddlewareRejectsMalformedHeader(t *testing.T) {
	w, _ := runMiddleware(t, `language==de`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Status = %d, want 400", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	got := FromContext(req.Context())
	if got.Language != "" {
		t.Errorf("FromContext() = %+v, want zero context", got)
	}
}
