// The [notehq] package is the core client layer for a document-workspace
// API whose records form a tree of pages, databases, blocks and users.
//
// # Sessions and the identity cache
//
// A [Client] is one session. It owns an identity cache: one map from id to
// the most recently fetched entity per record kind, with single-flight
// deduplication so that N concurrent reads of the same uncached record
// trigger exactly one fetch. Construct it with [New] from a [Config]
// carrying your transport implementation.
//
// The raw wire layer is out of this package's hands: anything satisfying
// [github.com/notehq/notehq.go/pkg/transport.Transport] works, and tests
// run against the in-process fake in internal/fakeapi.
//
// # Hierarchy navigation
//
// [Client.Ancestors], [Client.Children] and [Client.Descendants] walk the
// parent/child tree lazily. Descendant traversal is depth-first pre-order,
// keeps a visited set so a corrupt (cyclic) remote hierarchy cannot loop
// it forever, and honors an optional depth limit.
//
// # Queries
//
// [Client.Query] combines the filter translator with cursor-driven lazy
// pagination:
//
//	done := client.Query(models.KindPage, map[string]any{
//		"status":        "Done",
//		"priority__gte": 5,
//	})
//	pages, err := done.Limit(100).Collect(ctx)
//
// Condition keys use the field__operator convention; translation into the
// API's nested predicate tree happens eagerly and fails fast on an
// operator that the property's declared type does not support. See
// [github.com/notehq/notehq.go/pkg/filter].
//
// # Bulk operations
//
// Bulk mutations run through the rate-limited executor in
// [github.com/notehq/notehq.go/pkg/batch], which caps steady-state
// throughput at chunk size over minimum interval.
package notehq
