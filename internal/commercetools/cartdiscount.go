package commercetools

import (
	"context"
	"fmt"
	"net/url"

	"catalog-proxy/internal/model"
)

// cartDiscountResource reads the project's cart discount rules. Discounts
// are fetched flat; matching against products happens locally, see
// discount.go.
type cartDiscountResource struct{}

func (cartDiscountResource) path(model.QueryContext) string { return "cart-discounts" }

func (cartDiscountResource) query(qc model.QueryContext) url.Values {
	return baseQuery(qc.Args)
}

// fetchCartDiscounts retrieves every cart discount of the project, in the
// vendor's order. Discounts are applied in that order.
func (c *Codec) fetchCartDiscounts(ctx context.Context, qc model.QueryContext) ([]model.CartDiscount, error) {
	var p page[ctCartDiscount]
	if err := c.client.get(ctx, c.client.requestURL(cartDiscountResource{}, qc), &p); err != nil {
		return nil, fmt.Errorf("fetching cart discounts: %w", err)
	}

	out := make([]model.CartDiscount, len(p.Results))
	for i, d := range p.Results {
		out[i] = model.CartDiscount{
			CartPredicate: d.CartPredicate,
			Target: model.DiscountTarget{
				Type:      d.Target.Type,
				Predicate: d.Target.Predicate,
			},
			Value: model.DiscountValue{
				Type:      d.Value.Type,
				Permyriad: d.Value.Permyriad,
			},
		}
	}
	return out, nil
}
