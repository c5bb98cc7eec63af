package commercetools

import (
	"testing"

	"catalog-proxy/internal/model"
)

func TestCategoryResourceQuery(t *testing.T) {
	tests := []struct {
		name      string
		qc        model.QueryContext
		wantWhere string
	}{
		{
			name:      "no selector",
			qc:        model.QueryContext{},
			wantWhere: "",
		},
		{
			name:      "slug matches query language and english",
			qc:        model.QueryContext{Language: "de", Args: model.Args{Slug: "schuhe"}},
			wantWhere: `slug(de="schuhe") or slug(en="schuhe")`,
		},
		{
			name:      "slug wins over id",
			qc:        model.QueryContext{Args: model.Args{Slug: "shoes", ID: "c1"}},
			wantWhere: `slug(en="shoes") or slug(en="shoes")`,
		},
		{
			name:      "id selector",
			qc:        model.QueryContext{Args: model.Args{ID: "c1"}},
			wantWhere: `id="c1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := categoryResource{}.query(tt.qc)
			if got := q.Get("where"); got != tt.wantWhere {
				t.Errorf("where = %q, want %q", got, tt.wantWhere)
			}
			if got := q.Get("limit"); got != "500" {
				t.Errorf("limit = %q, want the category page limit", got)
			}
		})
	}
}

func TestExportCategory(t *testing.T) {
	cc := testCodec()

	cat := ctCategory{
		ID:        "c3",
		Parent:    &ctReference{ID: "c2"},
		Ancestors: []ctReference{{ID: "c1"}, {ID: "c2"}},
		Name:      map[string]string{"en": "Leaf", "de": "Blatt"},
		Slug:      map[string]string{"en": "leaf"},
	}

	got := cc.exportCategory(cat, model.QueryContext{Language: "de"})

	if got.ID != "c3" || got.Name != "Blatt" || got.Slug != "leaf" {
		t.Errorf("category = %+v", got)
	}
	if got.Parent == nil || got.Parent.ID != "c2" {
		t.Errorf("Parent = %+v", got.Parent)
	}
	if len(got.Ancestors) != 2 || got.Ancestors[0].ID != "c1" {
		t.Errorf("Ancestors = %+v", got.Ancestors)
	}
	if got.Children != nil {
		t.Errorf("Children = %+v, want empty before hierarchy reconstruction", got.Children)
	}
}
