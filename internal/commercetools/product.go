package commercetools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"catalog-proxy/internal/model"
)

// =============================================================================
// PRODUCT RESOURCE
// =============================================================================
//
// Products are read from the product-projections endpoint. Keyword and
// facet-filter queries must go through product-projections/search instead;
// the plain endpoint does not accept text.* or filter parameters. Both
// endpoints share the paginated envelope and the projection shape.
//
// Pricing: requests carry priceCountry/priceCurrency so commercetools
// computes a scopedPrice per variant. Variants without a scoped price fall
// back to their first listed price.
// =============================================================================

const (
	// imageSetAttribute is the variant attribute that identifies the
	// product's image set in the DAM.
	imageSetAttribute = "articleNumberMax"

	// drainPageSize is the page size used when draining the full catalog.
	drainPageSize = 100
)

type productResource struct{}

func (productResource) path(qc model.QueryContext) string {
	if qc.Args.Keyword != "" || qc.Args.Filter != "" {
		return "product-projections/search"
	}
	return "product-projections"
}

func (productResource) query(qc model.QueryContext) url.Values {
	q := baseQuery(qc.Args)
	q.Set("expand", "categories[*]")

	if qc.Country != "" {
		q.Set("priceCountry", qc.Country)
	}
	if qc.Currency != "" {
		q.Set("priceCurrency", qc.Currency)
	}

	lang := qc.Language
	if lang == "" {
		lang = defaultLanguage
	}
	if qc.Args.Keyword != "" {
		q.Set("text."+lang, qc.Args.Keyword)
	}

	// An explicit filter wins over a productIds list.
	switch {
	case qc.Args.Filter != "":
		q.Set("filter", qc.Args.Filter)
	case qc.Args.ProductIDs != "":
		q.Set("filter", fmt.Sprintf("id:%s", quoteList(qc.Args.ProductIDs)))
	}

	// A single-entity selector wins over a raw where predicate.
	switch {
	case qc.Args.ID != "":
		q.Set("where", fmt.Sprintf("id=%q", qc.Args.ID))
	case qc.Args.Slug != "":
		q.Set("where", fmt.Sprintf("slug(%s=%q) or slug(%s=%q)", lang, qc.Args.Slug, defaultLanguage, qc.Args.Slug))
	case qc.Args.SKU != "":
		q.Set("where", fmt.Sprintf("variants(sku=%q) or masterVariant(sku=%q)", qc.Args.SKU, qc.Args.SKU))
	}

	return q
}

// quoteList turns a comma-separated list into a quoted predicate list,
// `a,b` becomes `"a","b"`.
func quoteList(list string) string {
	parts := strings.Split(list, ",")
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		quoted = append(quoted, fmt.Sprintf("%q", p))
	}
	return strings.Join(quoted, ",")
}

// fetchProducts retrieves the product selection of the query: a single page,
// or the whole catalog when Args.All is set. Sale prices are recomputed from
// the project's cart discounts before the page is returned.
func (c *Codec) fetchProducts(ctx context.Context, qc model.QueryContext) (model.Page[model.Product], error) {
	var (
		result model.Page[model.Product]
		err    error
	)
	if qc.Args.All {
		result, err = c.drainProducts(ctx, qc)
	} else {
		var p page[ctProduct]
		if err := c.client.get(ctx, c.client.requestURL(productResource{}, qc), &p); err != nil {
			return model.Page[model.Product]{}, fmt.Errorf("fetching products: %w", err)
		}
		result, err = translatePage(ctx, p, func(prod ctProduct) (model.Product, error) {
			return c.exportProduct(prod, qc), nil
		})
	}
	if err != nil {
		return model.Page[model.Product]{}, err
	}

	if err := c.applyCartDiscounts(ctx, qc, result.Results); err != nil {
		return model.Page[model.Product]{}, err
	}
	return result, nil
}

// drainProducts fetches every page of the product selection. The vendor's
// total is unknown until the first response arrives; pages are requested
// until the accumulated result count reaches it. The returned envelope is
// synthetic: one page covering everything.
func (c *Codec) drainProducts(ctx context.Context, qc model.QueryContext) (model.Page[model.Product], error) {
	var (
		results []ctProduct
		total   = -1
	)
	for total == -1 || len(results) < total {
		sub := qc
		sub.Args.Limit = drainPageSize
		sub.Args.Offset = len(results)

		var p page[ctProduct]
		if err := c.client.get(ctx, c.client.requestURL(productResource{}, sub), &p); err != nil {
			return model.Page[model.Product]{}, fmt.Errorf("draining products at offset %d: %w", sub.Args.Offset, err)
		}

		total = p.Total
		results = append(results, p.Results...)
		c.logger.Info("draining catalog", "fetched", len(results), "total", total)

		if p.Count == 0 {
			break
		}
	}

	return translatePage(ctx, page[ctProduct]{
		Limit:   len(results),
		Count:   len(results),
		Offset:  0,
		Total:   len(results),
		Results: results,
	}, func(prod ctProduct) (model.Product, error) {
		return c.exportProduct(prod, qc), nil
	})
}

// exportProduct translates a wire product into its neutral, localized form.
func (c *Codec) exportProduct(prod ctProduct, qc model.QueryContext) model.Product {
	variants := make([]model.Variant, 0, len(prod.Variants)+1)
	for _, v := range prod.Variants {
		variants = append(variants, c.exportVariant(v, prod, qc))
	}
	variants = append(variants, c.exportVariant(prod.MasterVariant, prod, qc))

	out := model.Product{
		ID:          prod.ID,
		Name:        c.localizeString(prod.Name, qc.Language),
		Slug:        c.localizeString(prod.Slug, qc.Language),
		Variants:    variants,
		Categories:  exportProductCategories(prod.Categories),
		ProductType: prod.ProductType.ID,
	}

	// The image set id lives on the first non-master variant when present.
	if len(prod.Variants) > 0 {
		for _, attr := range prod.Variants[0].Attributes {
			if attr.Name == imageSetAttribute {
				if s, ok := attr.Value.(string); ok {
					out.ImageSetID = s
				}
			}
		}
	}

	return out
}

// exportVariant translates one wire variant. The scoped price is preferred
// when the request carried a price scope; otherwise the first listed price
// is used. Sale starts equal to List and is overwritten by cart discount
// post-processing.
func (c *Codec) exportVariant(v ctVariant, prod ctProduct, qc model.QueryContext) model.Variant {
	sku := v.SKU
	if sku == "" {
		sku = prod.Key
	}

	var price *ctPrice
	switch {
	case v.ScopedPrice != nil:
		price = v.ScopedPrice
	case len(v.Prices) > 0:
		price = &v.Prices[0]
	}

	var prices model.Prices
	if price != nil {
		code := price.Value.CurrencyCode
		if code == "" {
			code = qc.Currency
		}
		list := model.FormatMoney(model.CentsToAmount(price.Value.CentAmount), code, qc.Language)
		prices = model.Prices{List: list, Sale: list}
	}

	images := make([]model.Image, len(v.Images))
	for i, img := range v.Images {
		images[i] = model.Image{URL: img.URL}
	}

	attrs := make([]model.Attribute, len(v.Attributes))
	for i, a := range v.Attributes {
		attrs[i] = model.Attribute{Name: a.Name, Value: c.localizeValue(a.Value, qc.Language)}
	}

	return model.Variant{
		SKU:        sku,
		Prices:     prices,
		Images:     images,
		Attributes: attrs,
	}
}

// exportProductCategories translates a product's category references. When
// the request expanded categories the parent and ancestor chain come along;
// otherwise the reference is id-only.
func exportProductCategories(refs []ctReference) []model.CategoryRef {
	if len(refs) == 0 {
		return nil
	}
	out := make([]model.CategoryRef, len(refs))
	for i, ref := range refs {
		if ref.Obj != nil {
			out[i] = model.CategoryRef{
				ID:        ref.Obj.ID,
				Parent:    exportReference(ref.Obj.Parent),
				Ancestors: exportReferences(ref.Obj.Ancestors),
			}
		} else {
			out[i] = model.CategoryRef{ID: ref.ID}
		}
	}
	return out
}

// === Product Import ===

// ImportProduct writes a product draft into the vendor catalog and returns
// the created product in neutral form.
func (c *Codec) ImportProduct(ctx context.Context, imp model.ProductImport) (*model.Product, error) {
	if imp.Name == "" {
		return nil, model.NewValidationError("name", "product name is required")
	}

	draft := importDraft(imp)

	var created ctProduct
	if err := c.client.post(ctx, c.client.baseURL()+"products", draft, &created); err != nil {
		return nil, fmt.Errorf("importing product %q: %w", imp.Name, err)
	}

	qc := model.QueryContext{Language: imp.Language}
	out := c.exportProduct(created, qc)
	return &out, nil
}

// importDraft builds the wire draft for a product import. The first variant
// becomes the master variant; the rest stay plain variants.
func importDraft(imp model.ProductImport) ctProductDraft {
	lang := imp.Language
	if lang == "" {
		lang = defaultLanguage
	}

	slug := imp.Slug
	if slug == "" {
		slug = strings.ToLower(strings.ReplaceAll(imp.Name, " ", "-"))
	}

	draft := ctProductDraft{
		Name:    map[string]string{lang: imp.Name},
		Slug:    map[string]string{lang: slug},
		Publish: true,
	}
	if imp.ProductType != "" {
		draft.ProductType = &ctTypeReference{TypeID: "product-type", ID: imp.ProductType}
	}

	for i, v := range imp.Variants {
		vd := ctVariantDraft{SKU: v.SKU}
		if v.PriceCents > 0 {
			currency := v.Currency
			if currency == "" {
				currency = "USD"
			}
			vd.Prices = []ctPriceDraft{{Value: ctMoney{CurrencyCode: currency, CentAmount: v.PriceCents}}}
		}
		for _, img := range v.Images {
			vd.Images = append(vd.Images, ctImage{URL: img.URL})
		}
		for _, a := range v.Attributes {
			vd.Attributes = append(vd.Attributes, ctAttribute{Name: a.Name, Value: a.Value})
		}

		if i == 0 {
			draft.MasterVariant = &vd
		} else {
			draft.Variants = append(draft.Variants, vd)
		}
	}

	return draft
}
