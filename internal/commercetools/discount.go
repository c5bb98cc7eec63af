package commercetools

import (
	"context"
	"strconv"
	"strings"

	"catalog-proxy/internal/model"
)

// =============================================================================
// CART DISCOUNT POST-PROCESSING
// =============================================================================
//
// commercetools applies cart discounts at checkout, so product listings do
// not carry discounted prices. Storefronts still want to show the sale
// price, so the codec replays the discount rules locally:
//   1. Fetch the project's cart discounts, filtered to the query's
//      customer segment
//   2. Keep the relative lineItems discounts whose predicate matches the
//      product (always-true predicate, or a productType.id equality)
//   3. Recompute each variant's sale price from its list price, compounding
//      matching discounts in vendor order
//
// Relative discount values are permyriad: parts per 10,000. A permyriad of
// 2000 takes 20% off.
// =============================================================================

const (
	alwaysTruePredicate  = "1 = 1"
	targetLineItems      = "lineItems"
	discountTypeRelative = "relative"
)

// applyCartDiscounts recomputes the sale price of every variant in place.
// Without a customer segment there is nothing to match against and the
// listing keeps its list prices.
func (c *Codec) applyCartDiscounts(ctx context.Context, qc model.QueryContext, products []model.Product) error {
	segment := qc.Segment
	if segment == "" || segment == "null" || segment == "undefined" {
		return nil
	}
	if len(products) == 0 {
		return nil
	}

	predicate := segmentPredicate(segment)
	sub := qc
	sub.Args = model.Args{
		Where: "cartPredicate = " + strconv.Quote(predicate),
	}
	discounts, err := c.fetchCartDiscounts(ctx, sub)
	if err != nil {
		return err
	}

	// The where clause scopes the fetch server-side; each predicate is
	// still checked locally so only exact segment matches participate.
	kept := discounts[:0]
	for _, d := range discounts {
		if d.CartPredicate == predicate {
			kept = append(kept, d)
		}
	}
	discounts = kept
	if len(discounts) == 0 {
		return nil
	}

	for pi := range products {
		p := &products[pi]
		for vi := range p.Variants {
			v := &p.Variants[vi]
			if v.Prices.List == "" {
				continue
			}

			sale := model.ParseMoney(v.Prices.List)
			discounted := false
			for _, d := range discounts {
				if !discountMatches(d, p.ProductType) {
					continue
				}
				sale *= 1 - float64(d.Value.Permyriad)/10000
				discounted = true
			}
			if discounted {
				v.Prices.Sale = model.FormatMoney(sale, qc.Currency, qc.Language)
			}
		}
	}
	return nil
}

// segmentPredicate is the cart predicate commercetools stores for a
// customer-group discount. Group keys are upper-case by convention.
func segmentPredicate(segment string) string {
	return "customer.customerGroup.key = " + strconv.Quote(strings.ToUpper(segment))
}

// discountMatches reports whether a discount rule applies to products of
// the given type. Only relative lineItems discounts participate; the
// supported target predicates are the always-true predicate and a single
// productType.id equality.
func discountMatches(d model.CartDiscount, productType string) bool {
	if d.Target.Type != targetLineItems || d.Value.Type != discountTypeRelative {
		return false
	}
	if d.Target.Predicate == "" || d.Target.Predicate == alwaysTruePredicate {
		return true
	}

	key, value, ok := strings.Cut(d.Target.Predicate, " = ")
	if !ok {
		return false
	}
	return key == "productType.id" && value == strconv.Quote(productType)
}
