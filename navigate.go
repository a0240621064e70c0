package notehq

import (
	"context"
	"errors"

	"github.com/notehq/notehq.go/pkg/iterator"
	"github.com/notehq/notehq.go/pkg/models"
	"github.com/notehq/notehq.go/pkg/transport"
)

// Ancestors returns the chain of parents of the entity, nearest first,
// excluding the entity itself. The sequence ends when a root entity is
// reached. The remote hierarchy is acyclic by contract; ancestor walks
// rely on that contract and are otherwise unbounded.
func (c *Client) Ancestors(entity *models.Entity) *iterator.Seq[*models.Entity] {
	return iterator.FromNext(func() iterator.NextFunc[*models.Entity] {
		current := entity
		return func(ctx context.Context) (*models.Entity, error) {
			parent, err := c.ResolveParent(ctx, current)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				return nil, iterator.ErrDone
			}
			current = parent
			return parent, nil
		}
	})
}

// Children returns the direct children of the entity as a lazy paged
// sequence, in the order the remote returns them.
func (c *Client) Children(entity *models.Entity) *iterator.Seq[*models.Entity] {
	kinds := childKinds(entity.Kind)
	seqs := make([]*iterator.Seq[*models.Entity], 0, len(kinds))
	for _, kind := range kinds {
		seqs = append(seqs, c.childrenOfKind(entity.ID, kind))
	}
	return iterator.Concat(seqs...)
}

// Descendants returns every entity below the given one, depth-first
// pre-order, as a lazy sequence: pages are fetched only as the consumer
// pulls. maxDepth bounds the traversal (1 means direct children only);
// zero or negative means unbounded.
//
// A visited set guards the walk: the remote hierarchy is a tree by
// contract, but if that contract is ever violated the traversal skips
// already-seen nodes instead of looping forever.
func (c *Client) Descendants(entity *models.Entity, maxDepth int) *iterator.Seq[*models.Entity] {
	return iterator.FromNext(func() iterator.NextFunc[*models.Entity] {
		walk := &descendantWalk{
			client:   c,
			maxDepth: maxDepth,
			visited:  map[models.ID]struct{}{entity.ID: {}},
		}
		walk.push(entity, 1)
		return walk.next
	})
}

// descendantWalk is the explicit frontier of one descendant traversal: a
// stack of child iterators, one per partially-explored node.
type descendantWalk struct {
	client   *Client
	maxDepth int
	visited  map[models.ID]struct{}
	stack    []*walkFrame
}

type walkFrame struct {
	it    *iterator.Iterator[*models.Entity]
	depth int
}

func (w *descendantWalk) push(entity *models.Entity, depth int) {
	w.stack = append(w.stack, &walkFrame{
		it:    w.client.Children(entity).Iterate(),
		depth: depth,
	})
}

func (w *descendantWalk) next(ctx context.Context) (*models.Entity, error) {
	for len(w.stack) > 0 {
		frame := w.stack[len(w.stack)-1]

		child, err := frame.it.Next(ctx)
		if errors.Is(err, iterator.ErrDone) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		if err != nil {
			return nil, err
		}

		if _, seen := w.visited[child.ID]; seen {
			continue
		}
		w.visited[child.ID] = struct{}{}

		// Pre-order: descend into this child before its next sibling.
		if w.maxDepth <= 0 || frame.depth < w.maxDepth {
			w.push(child, frame.depth+1)
		}
		return child, nil
	}
	return nil, iterator.ErrDone
}

// childrenOfKind pages through records of one kind filtered to the given
// parent.
func (c *Client) childrenOfKind(parent models.ID, kind models.Kind) *iterator.Seq[*models.Entity] {
	return iterator.New(func(ctx context.Context, cursor string) ([]*models.Entity, string, bool, error) {
		res, err := c.transport.FetchPage(ctx, transport.PageRequest{
			Kind:     kind,
			Filter:   map[string]any{"parent_id": parent.String()},
			Cursor:   cursor,
			PageSize: c.pageSize,
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

// childKinds lists the record kinds that can sit directly under a record
// of the given kind: databases contain pages, pages contain blocks and
// subpages, blocks contain blocks and child pages. Users parent nothing.
func childKinds(kind models.Kind) []models.Kind {
	switch kind {
	case models.KindDatabase:
		return []models.Kind{models.KindPage}
	case models.KindPage:
		return []models.Kind{models.KindBlock, models.KindPage}
	case models.KindBlock:
		return []models.Kind{models.KindBlock, models.KindPage}
	case models.KindUser:
		return nil
	default:
		return nil
	}
}
