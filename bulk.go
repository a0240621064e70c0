package notehq

import (
	"context"

	"github.com/notehq/notehq.go/pkg/batch"
	"github.com/notehq/notehq.go/pkg/models"
)

// BulkUpdate applies the same property patch to many records through the
// rate-limited executor. Results come back in id order; the first failure
// aborts after its chunk drains.
func (c *Client) BulkUpdate(ctx context.Context, exec *batch.Executor, kind models.Kind, ids []models.ID, properties map[string]any) ([]*models.Entity, error) {
	return batch.Run(ctx, exec, ids, func(ctx context.Context, id models.ID) (*models.Entity, error) {
		return c.Update(ctx, kind, id, properties)
	})
}

// BulkArchive archives many records of one kind under the throttle.
func (c *Client) BulkArchive(ctx context.Context, exec *batch.Executor, kind models.Kind, ids []models.ID) (int, error) {
	results, err := batch.Run(ctx, exec, ids, func(ctx context.Context, id models.ID) (struct{}, error) {
		return struct{}{}, c.Archive(ctx, kind, id)
	})
	return len(results), err
}

// ArchiveDescendants archives the whole subtree below the entity, then
// the entity itself. The traversal is materialized first so archival can
// run leaves-first: children are archived before their parents, keeping
// the remote tree consistent if the run is cancelled midway.
func (c *Client) ArchiveDescendants(ctx context.Context, exec *batch.Executor, entity *models.Entity) (int, error) {
	subtree, err := c.Descendants(entity, 0).Collect(ctx)
	if err != nil {
		return 0, err
	}

	// Reverse the pre-order walk: deeper entities come later in the
	// collect, so archiving back to front handles leaves before their
	// ancestors and keeps the remote tree consistent if the run is
	// cancelled midway.
	for i, j := 0, len(subtree)-1; i < j; i, j = i+1, j-1 {
		subtree[i], subtree[j] = subtree[j], subtree[i]
	}

	results, err := batch.Run(ctx, exec, subtree, func(ctx context.Context, ent *models.Entity) (struct{}, error) {
		return struct{}{}, c.Archive(ctx, ent.Kind, ent.ID)
	})
	if err != nil {
		return len(results), err
	}

	if err := c.Archive(ctx, entity.Kind, entity.ID); err != nil {
		return len(results), err
	}
	return len(results) + 1, nil
}
