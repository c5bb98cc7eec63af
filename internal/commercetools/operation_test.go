package commercetools

import (
	"context"
	"net/url"
	"testing"

	"catalog-proxy/internal/codec"
	"catalog-proxy/internal/model"
)

func testClient() *Client {
	return NewClient(codec.Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		OAuthURL:     "https://auth.example.com",
		APIURL:       "https://api.example.com",
		Project:      "store",
		Scope:        "view_products",
	})
}

func TestRequestURLExtraOverridesNamedArgs(t *testing.T) {
	c := testClient()

	qc := model.QueryContext{
		Args: model.Args{
			Limit: 10,
			Where: "id=\"p1\"",
			Extra: url.Values{
				"limit":  {"20"},
				"filter": {"x"},
			},
		},
	}

	raw := c.requestURL(cartDiscountResource{}, qc)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	q := u.Query()

	if got := q.Get("limit"); got != "20" {
		t.Errorf("limit = %q, want extra arg to win with %q", got, "20")
	}
	if got := q.Get("filter"); got != "x" {
		t.Errorf("filter = %q, want %q", got, "x")
	}
	if got := q.Get("where"); got != "id=\"p1\"" {
		t.Errorf("where = %q, want named arg kept when not overridden", got)
	}
}

func TestRequestURLOmitsEmptyQuery(t *testing.T) {
	c := testClient()

	raw := c.requestURL(cartDiscountResource{}, model.QueryContext{})
	want := "https://api.example.com/store/cart-discounts"
	if raw != want {
		t.Errorf("requestURL() = %q, want %q", raw, want)
	}
}

func TestBaseQueryOmitsZeroValues(t *testing.T) {
	q := baseQuery(model.Args{Limit: 0, Offset: 0})
	if len(q) != 0 {
		t.Errorf("baseQuery(zero args) = %v, want empty", q)
	}

	q = baseQuery(model.Args{Limit: 5, Offset: 10, Where: "w", Filter: "f"})
	if q.Get("limit") != "5" || q.Get("offset") != "10" || q.Get("where") != "w" || q.Get("filter") != "f" {
		t.Errorf("baseQuery() = %v", q)
	}
}

func TestTranslatePageCopiesMeta(t *testing.T) {
	p := page[int]{Limit: 20, Count: 2, Offset: 40, Total: 100, Results: []int{1, 2}}

	out, err := translatePage(context.Background(), p, func(n int) (string, error) {
		if n == 1 {
			return "one", nil
		}
		return "two", nil
	})
	if err != nil {
		t.Fatalf("translatePage() error = %v", err)
	}

	if out.Meta == nil {
		t.Fatal("Meta = nil, want pagination envelope copied")
	}
	if out.Meta.Limit != 20 || out.Meta.Count != 2 || out.Meta.Offset != 40 || out.Meta.Total != 100 {
		t.Errorf("Meta = %+v, want envelope copied verbatim", out.Meta)
	}
	if len(out.Results) != 2 || out.Results[0] != "one" || out.Results[1] != "two" {
		t.Errorf("Results = %v, want mapped in vendor order", out.Results)
	}
}

func TestTranslatePagePreservesOrder(t *testing.T) {
	p := page[int]{Count: 50, Total: 50}
	for i := 0; i < 50; i++ {
		p.Results = append(p.Results, i)
	}

	out, err := translatePage(context.Background(), p, func(n int) (int, error) {
		return n * 2, nil
	})
	if err != nil {
		t.Fatalf("translatePage() error = %v", err)
	}
	for i, got := range out.Results {
		if got != i*2 {
			t.Fatalf("Results[%d] = %d, want %d", i, got, i*2)
		}
	}
}

func TestTranslateOneWrapsSingleEntity(t *testing.T) {
	out, err := translateOne(7, func(n int) (int, error) { return n, nil })
	if err != nil {
		t.Fatalf("translateOne() error = %v", err)
	}
	if out.Meta != nil {
		t.Errorf("Meta = %+v, want nil for single-entity responses", out.Meta)
	}
	if len(out.Results) != 1 || out.Results[0] != 7 {
		t.Errorf("Results = %v, want the entity wrapped alone", out.Results)
	}
}
