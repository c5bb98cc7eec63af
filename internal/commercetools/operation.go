package commercetools

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"catalog-proxy/internal/model"
)

// resource describes one commercetools REST resource: the path it lives at
// and the named query parameters a query context contributes. Entity
// packages implement this instead of subclassing a shared operation.
type resource interface {
	path(qc model.QueryContext) string
	query(qc model.QueryContext) url.Values
}

// requestURL composes the full URL for a resource query. The resource's
// named parameters are applied first, then open-ended Extra args override
// them key by key. Explicit arguments winning over computed defaults is
// load-bearing; callers depend on it to tune limits and filters.
func (c *Client) requestURL(res resource, qc model.QueryContext) string {
	q := res.query(qc)
	for key, values := range qc.Args.Extra {
		q[key] = values
	}

	u := c.baseURL() + res.path(qc)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// baseQuery builds the pagination and predicate parameters shared by all
// resources. Zero and empty values are omitted entirely rather than sent
// as empty parameters.
func baseQuery(args model.Args) url.Values {
	q := url.Values{}
	if args.Limit > 0 {
		q.Set("limit", strconv.Itoa(args.Limit))
	}
	if args.Offset > 0 {
		q.Set("offset", strconv.Itoa(args.Offset))
	}
	if args.Where != "" {
		q.Add("where", args.Where)
	}
	if args.Filter != "" {
		q.Add("filter", args.Filter)
	}
	return q
}

// translatePage maps every entity of a vendor page into its neutral form.
// The pagination envelope is copied verbatim into Meta. Mappers run
// concurrently, one goroutine per entity, with no inter-entity dependency;
// output order always matches the vendor's result order.
func translatePage[W, E any](ctx context.Context, p page[W], mapper func(W) (E, error)) (model.Page[E], error) {
	out := model.Page[E]{
		Meta: &model.PageMeta{
			Limit:  p.Limit,
			Count:  p.Count,
			Offset: p.Offset,
			Total:  p.Total,
		},
		Results: make([]E, len(p.Results)),
	}

	g, _ := errgroup.WithContext(ctx)
	for i, w := range p.Results {
		g.Go(func() error {
			e, err := mapper(w)
			if err != nil {
				return err
			}
			out.Results[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Page[E]{}, err
	}

	return out, nil
}

// translateOne maps a single-object response into a one-element page with
// no pagination meta.
func translateOne[W, E any](w W, mapper func(W) (E, error)) (model.Page[E], error) {
	e, err := mapper(w)
	if err != nil {
		return model.Page[E]{}, err
	}
	return model.SinglePage(e), nil
}
