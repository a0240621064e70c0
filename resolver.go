package notehq

import (
	"context"
	"fmt"

	"github.com/notehq/notehq.go/pkg/models"
)

// ResolveParent resolves the entity's parent reference to the parent
// entity, going through the identity cache so repeated resolution of a
// shared parent is a cache hit after the first call. A root entity
// resolves to (nil, nil).
//
// After a move mutation the entity's own cache slot holds a stale parent
// ref; Move invalidates it, so re-fetch the entity before resolving again.
func (c *Client) ResolveParent(ctx context.Context, entity *models.Entity) (*models.Entity, error) {
	if entity == nil {
		return nil, ErrNilEntity
	}

	switch entity.Parent.Type {
	case models.ParentRoot:
		return nil, nil
	case models.ParentPage:
		return c.store.GetOrFetch(ctx, models.KindPage, entity.Parent.ID)
	case models.ParentDatabase:
		return c.store.GetOrFetch(ctx, models.KindDatabase, entity.Parent.ID)
	case models.ParentBlock:
		return c.store.GetOrFetch(ctx, models.KindBlock, entity.Parent.ID)
	default:
		return nil, fmt.Errorf("entity %s: unknown parent descriptor type %q", entity.ID, entity.Parent.Type)
	}
}
