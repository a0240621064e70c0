package notehq

import (
	"context"

	"github.com/notehq/notehq.go/pkg/filter"
	"github.com/notehq/notehq.go/pkg/iterator"
	"github.com/notehq/notehq.go/pkg/models"
	"github.com/notehq/notehq.go/pkg/transport"
)

// QueryOption adjusts one Query call.
type QueryOption func(*queryOptions)

type queryOptions struct {
	sorts    []transport.Sort
	pageSize int
	schema   filter.Schema
	extra    []filter.Node
}

// WithSort orders the results by a property. Repeating the option adds
// secondary sort keys.
func WithSort(property string, descending bool) QueryOption {
	return func(o *queryOptions) {
		o.sorts = append(o.sorts, transport.Sort{Property: property, Descending: descending})
	}
}

// WithPageSize overrides the session page size for this query.
func WithPageSize(n int) QueryOption {
	return func(o *queryOptions) {
		o.pageSize = n
	}
}

// WithSchema validates the conditions against the given schema instead of
// the one registered on the client.
func WithSchema(s filter.Schema) QueryOption {
	return func(o *queryOptions) {
		o.schema = s
	}
}

// WithFilter appends a pre-built predicate node to the query's implicit
// top-level And.
func WithFilter(node filter.Node) QueryOption {
	return func(o *queryOptions) {
		o.extra = append(o.extra, node)
	}
}

// Query returns a lazy sequence over all records of the given kind
// matching the conditions. Conditions use the field__operator convention
// and are translated once per returned sequence value; a translation
// error surfaces on the first pull, before any network call.
//
// The sequence definition is restartable: iterating it again re-translates
// nothing but re-fetches every page.
func (c *Client) Query(kind models.Kind, conditions map[string]any, opts ...QueryOption) *iterator.Seq[*models.Entity] {
	o := &queryOptions{pageSize: c.pageSize}
	for _, opt := range opts {
		opt(o)
	}
	if o.schema == nil {
		o.schema = c.Schema(kind)
	}

	node, terr := filter.NewBuilder(o.schema).
		Where(conditions).
		And(o.extra...).
		Build()

	var payload map[string]any
	if terr == nil && len(node) > 0 {
		payload = node.Wire()
	}

	return iterator.New(func(ctx context.Context, cursor string) ([]*models.Entity, string, bool, error) {
		if terr != nil {
			return nil, "", false, terr
		}
		res, err := c.transport.FetchPage(ctx, transport.PageRequest{
			Kind:     kind,
			Filter:   payload,
			Sorts:    o.sorts,
			Cursor:   cursor,
			PageSize: o.pageSize,
		})
		if err != nil {
			return nil, "", false, err
		}
		ents, err := c.decodeRecords(res.Records)
		if err != nil {
			return nil, "", false, err
		}
		return ents, res.NextCursor, res.HasMore, nil
	})
}
