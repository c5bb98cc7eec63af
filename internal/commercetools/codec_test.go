package commercetools

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"catalog-proxy/internal/codec"
	"catalog-proxy/internal/model"
)

func TestValidate(t *testing.T) {
	full := codec.Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		OAuthURL:     "https://auth.example.com",
		APIURL:       "https://api.example.com",
		Project:      "store",
		Scope:        "view_products",
	}
	if !Validate(full) {
		t.Error("Validate(full credentials) = false")
	}

	missing := full
	missing.Project = ""
	if Validate(missing) {
		t.Error("Validate(missing project) = true")
	}
}

func TestCodecRegistered(t *testing.T) {
	if _, ok := codec.Lookup(Vendor); !ok {
		t.Fatalf("Lookup(%q) = false, want codec registered at init", Vendor)
	}
}

func TestBuildHierarchy(t *testing.T) {
	flat := []model.Category{
		{ID: "1", Name: "Root", Slug: "root"},
		{ID: "2", Name: "Mid", Slug: "mid", Parent: &model.CategoryRef{ID: "1"}},
		{ID: "3", Name: "Leaf", Slug: "leaf", Parent: &model.CategoryRef{ID: "2"}},
		{ID: "4", Name: "Other", Slug: "other"},
	}
	cc := testCodec()

	t.Run("top level roots", func(t *testing.T) {
		roots := cc.buildHierarchy(flat, model.QueryContext{})
		if len(roots) != 2 {
			t.Fatalf("len(roots) = %d, want the two parentless categories", len(roots))
		}

		root := roots[0]
		if root.ID != "1" || len(root.Children) != 1 {
			t.Fatalf("root = %+v, want child attached", root)
		}
		mid := root.Children[0]
		if mid.ID != "2" || len(mid.Children) != 1 || mid.Children[0].ID != "3" {
			t.Errorf("nested chain = %+v, want 1 > 2 > 3", mid)
		}
		if roots[1].ID != "4" || len(roots[1].Children) != 0 {
			t.Errorf("roots[1] = %+v", roots[1])
		}
	})

	t.Run("root by id", func(t *testing.T) {
		roots := cc.buildHierarchy(flat, model.QueryContext{Args: model.Args{ID: "2"}})
		if len(roots) != 1 || roots[0].ID != "2" {
			t.Fatalf("roots = %+v, want the selected category only", roots)
		}
		if len(roots[0].Children) != 1 || roots[0].Children[0].ID != "3" {
			t.Errorf("children = %+v, want subtree kept", roots[0].Children)
		}
	})

	t.Run("root by slug", func(t *testing.T) {
		roots := cc.buildHierarchy(flat, model.QueryContext{Args: model.Args{Slug: "mid"}})
		if len(roots) != 1 || roots[0].ID != "2" {
			t.Fatalf("roots = %+v", roots)
		}
	})
}

func TestBuildHierarchyBreaksCycles(t *testing.T) {
	// a and b claim each other as parent.
	flat := []model.Category{
		{ID: "a", Slug: "a", Parent: &model.CategoryRef{ID: "b"}},
		{ID: "b", Slug: "b", Parent: &model.CategoryRef{ID: "a"}},
	}
	cc := testCodec()

	roots := cc.buildHierarchy(flat, model.QueryContext{Args: model.Args{ID: "a"}})
	if len(roots) != 1 {
		t.Fatalf("len(roots) = %d, want 1", len(roots))
	}
	a := roots[0]
	if len(a.Children) != 1 || a.Children[0].ID != "b" {
		t.Fatalf("children = %+v", a.Children)
	}
	if len(a.Children[0].Children) != 0 {
		t.Error("cycle not broken: b re-attached its visited parent")
	}
}

func newHierarchyServer(t *testing.T) *Codec {
	t.Helper()
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/store/categories"):
			if where := r.URL.Query().Get("where"); where != "" {
				t.Errorf("where = %q, want hierarchy fetches unfiltered", where)
			}
			json.NewEncoder(w).Encode(page[ctCategory]{
				Count: 3, Total: 3,
				Results: []ctCategory{
					{ID: "1", Name: map[string]string{"en": "Root"}, Slug: map[string]string{"en": "root"}},
					{ID: "2", Name: map[string]string{"en": "Mid"}, Slug: map[string]string{"en": "mid"}, Parent: &ctReference{ID: "1"}},
					{ID: "3", Name: map[string]string{"en": "Leaf"}, Slug: map[string]string{"en": "leaf"}, Parent: &ctReference{ID: "2"}},
				},
			})
		case strings.HasPrefix(r.URL.Path, "/store/product-projections"):
			json.NewEncoder(w).Encode(page[ctProduct]{
				Count: 1, Total: 1,
				Results: []ctProduct{{
					ID:   "p1",
					Name: map[string]string{"en": "Shoes"},
					Slug: map[string]string{"en": "shoes"},
				}},
			})
		default:
			http.NotFound(w, r)
		}
	})
	return &Codec{client: c, logger: slog.Default()}
}

func TestGetCategoryHierarchy(t *testing.T) {
	cc := newHierarchyServer(t)

	roots, err := cc.GetCategoryHierarchy(context.Background(), model.QueryContext{})
	if err != nil {
		t.Fatalf("GetCategoryHierarchy() error = %v", err)
	}
	if len(roots) != 1 || roots[0].ID != "1" {
		t.Fatalf("roots = %+v", roots)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].ID != "2" {
		t.Fatalf("children = %+v", roots[0].Children)
	}
	if got := roots[0].Children[0].Children; len(got) != 1 || got[0].ID != "3" {
		t.Errorf("grandchildren = %+v", got)
	}
}

func TestGetCategoryFull(t *testing.T) {
	cc := newHierarchyServer(t)

	cat, err := cc.GetCategory(context.Background(), model.QueryContext{
		Args: model.Args{Slug: "mid", Full: true},
	})
	if err != nil {
		t.Fatalf("GetCategory() error = %v", err)
	}
	if cat.ID != "2" {
		t.Errorf("ID = %q, want %q", cat.ID, "2")
	}
	if len(cat.Products) != 1 || cat.Products[0].ID != "p1" {
		t.Errorf("Products = %+v, want loaded with Full set", cat.Products)
	}
}

func TestGetCategoryRequiresSelector(t *testing.T) {
	cc := testCodec()
	if _, err := cc.GetCategory(context.Background(), model.QueryContext{}); err == nil {
		t.Fatal("GetCategory() without id or slug should fail")
	}
}

func TestGetProductNotFound(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(page[ctProduct]{})
	})
	cc := &Codec{client: c, logger: slog.Default()}

	_, err := cc.GetProduct(context.Background(), model.QueryContext{Args: model.Args{ID: "missing"}})
	if err == nil {
		t.Fatal("GetProduct() with no results should fail")
	}
}

func TestGetProductRequiresSelector(t *testing.T) {
	cc := testCodec()
	if _, err := cc.GetProduct(context.Background(), model.QueryContext{}); err == nil {
		t.Fatal("GetProduct() without a selector should fail")
	}
}

func TestGetProductsForCategoryUsesSubtreeFilter(t *testing.T) {
	var gotFilter string
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("filter")
		json.NewEncoder(w).Encode(page[ctProduct]{})
	})
	cc := &Codec{client: c, logger: slog.Default()}

	_, err := cc.GetProductsForCategory(context.Background(),
		model.Category{ID: "c1"},
		model.QueryContext{Args: model.Args{ID: "c1", Slug: "mid"}})
	if err != nil {
		t.Fatalf("GetProductsForCategory() error = %v", err)
	}
	if want := `categories.id: subtree("c1")`; gotFilter != want {
		t.Errorf("filter = %q, want %q", gotFilter, want)
	}
}
