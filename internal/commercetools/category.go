package commercetools

import (
	"context"
	"fmt"
	"net/url"

	"catalog-proxy/internal/model"
)

// =============================================================================
// CATEGORY RESOURCE
// =============================================================================
//
// Categories are fetched flat and in one page. commercetools stores each
// category with a parent reference and an ancestor chain but no child list;
// the tree is rebuilt locally, see buildHierarchy in codec.go.
// =============================================================================

// categoryPageLimit is large enough to hold a typical full category set in
// one response. Catalogs with more categories page via Args.Extra.
const categoryPageLimit = 500

type categoryResource struct{}

func (categoryResource) path(model.QueryContext) string { return "categories" }

func (categoryResource) query(qc model.QueryContext) url.Values {
	q := baseQuery(qc.Args)
	q.Set("limit", fmt.Sprintf("%d", categoryPageLimit))

	lang := qc.Language
	if lang == "" {
		lang = defaultLanguage
	}
	switch {
	case qc.Args.Slug != "":
		q.Set("where", fmt.Sprintf("slug(%s=%q) or slug(%s=%q)", lang, qc.Args.Slug, defaultLanguage, qc.Args.Slug))
	case qc.Args.ID != "":
		q.Set("where", fmt.Sprintf("id=%q", qc.Args.ID))
	}
	return q
}

// fetchCategories retrieves the raw category set selected by the query.
func (c *Codec) fetchCategories(ctx context.Context, qc model.QueryContext) (model.Page[model.Category], error) {
	var p page[ctCategory]
	if err := c.client.get(ctx, c.client.requestURL(categoryResource{}, qc), &p); err != nil {
		return model.Page[model.Category]{}, fmt.Errorf("fetching categories: %w", err)
	}
	return translatePage(ctx, p, func(cat ctCategory) (model.Category, error) {
		return c.exportCategory(cat, qc), nil
	})
}

// exportCategory translates a wire category into its neutral, localized form.
// Children stays empty here; hierarchy reconstruction fills it in.
func (c *Codec) exportCategory(cat ctCategory, qc model.QueryContext) model.Category {
	return model.Category{
		ID:        cat.ID,
		Parent:    exportReference(cat.Parent),
		Ancestors: exportReferences(cat.Ancestors),
		Name:      c.localizeString(cat.Name, qc.Language),
		Slug:      c.localizeString(cat.Slug, qc.Language),
	}
}

func exportReference(ref *ctReference) *model.CategoryRef {
	if ref == nil {
		return nil
	}
	return &model.CategoryRef{ID: ref.ID}
}

func exportReferences(refs []ctReference) []model.CategoryRef {
	if len(refs) == 0 {
		return nil
	}
	out := make([]model.CategoryRef, len(refs))
	for i, r := range refs {
		out[i] = model.CategoryRef{ID: r.ID}
	}
	return out
}
