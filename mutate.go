package notehq

import (
	"context"

	"github.com/notehq/notehq.go/pkg/models"
	"github.com/notehq/notehq.go/pkg/transport"
)

// Create brings a new record into existence under the given parent. The
// id is generated client-side so the call is idempotent from the cache's
// point of view: the refreshed record lands in the cache before Create
// returns.
func (c *Client) Create(ctx context.Context, kind models.Kind, parent models.ParentRef, properties map[string]any) (*models.Entity, error) {
	id := models.NewID()
	c.log.Debug("creating record", "kind", kind, "id", id, "parent", parent.String())

	rec, err := c.transport.Mutate(ctx, kind, id, transport.Mutation{
		Properties: properties,
		Parent:     &parent,
		Create:     true,
	})
	if err != nil {
		return nil, err
	}
	return c.refresh(rec)
}

// Update patches the record's properties and refreshes the cache entry
// with the returned record.
func (c *Client) Update(ctx context.Context, kind models.Kind, id models.ID, properties map[string]any) (*models.Entity, error) {
	rec, err := c.transport.Mutate(ctx, kind, id, transport.Mutation{Properties: properties})
	if err != nil {
		return nil, err
	}
	return c.refresh(rec)
}

// Move reparents the record. The entity's cache slot is invalidated
// before the call goes out, since its parent ref is stale the moment the
// move is issued; the refreshed record then replaces it.
func (c *Client) Move(ctx context.Context, kind models.Kind, id models.ID, newParent models.ParentRef) (*models.Entity, error) {
	c.store.Invalidate(kind, id)

	rec, err := c.transport.Mutate(ctx, kind, id, transport.Mutation{Parent: &newParent})
	if err != nil {
		return nil, err
	}
	return c.refresh(rec)
}

// Archive soft-deletes the record and drops it from the cache.
func (c *Client) Archive(ctx context.Context, kind models.Kind, id models.ID) error {
	archived := true
	_, err := c.transport.Mutate(ctx, kind, id, transport.Mutation{Archived: &archived})
	if err != nil {
		return err
	}
	c.store.Invalidate(kind, id)
	return nil
}

// refresh decodes a mutation result and overwrites the cache entry.
func (c *Client) refresh(rec *models.Record) (*models.Entity, error) {
	ent, err := models.EntityFromRecord(rec, c.unmarshaler)
	if err != nil {
		return nil, err
	}
	c.store.Put(ent.Kind, ent)
	return ent, nil
}
