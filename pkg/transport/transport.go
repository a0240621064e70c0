// Package transport defines the contract between the SDK core and the
// layer that actually talks to the workspace API. The core consumes three
// primitives: a single-record fetch, a cursor-paged fetch, and a mutation.
// Connection handling, authentication, retries and rate-limit headers all
// live behind this interface.
package transport

import (
	"context"

	"github.com/notehq/notehq.go/pkg/models"
)

// Transport is implemented by the wire layer. All methods are safe for
// concurrent use.
type Transport interface {
	// FetchOne returns the record identified by (kind, id), or a
	// *NotFoundError when no such record exists.
	FetchOne(ctx context.Context, kind models.Kind, id models.ID) (*models.Record, error)

	// FetchPage returns one page of records matching the request. The
	// returned cursor is opaque; it is only meaningful when HasMore is
	// true, and only for the request it was produced by.
	FetchPage(ctx context.Context, req PageRequest) (PageResult, error)

	// Mutate applies a patch to the record identified by (kind, id) and
	// returns the refreshed record.
	Mutate(ctx context.Context, kind models.Kind, id models.ID, m Mutation) (*models.Record, error)
}

// PageRequest describes one page fetch. Filter carries the already
// translated predicate tree in its wire shape; the transport forwards it
// verbatim.
type PageRequest struct {
	Kind     models.Kind
	Filter   map[string]any
	Sorts    []Sort
	Cursor   string
	PageSize int
}

// PageResult is one page of records plus the continuation state.
type PageResult struct {
	Records    []*models.Record
	NextCursor string
	HasMore    bool
}

// Sort orders a page fetch by one property.
type Sort struct {
	Property   string
	Descending bool
}

// Mutation is the patch shape driven through Mutate. Nil fields are left
// untouched by the remote; Create is set when the mutation should bring
// the record into existence.
type Mutation struct {
	Properties map[string]any
	Parent     *models.ParentRef
	Archived   *bool
	Create     bool
}
