package notehq

import (
	"context"
	"fmt"
	"sync"

	"github.com/notehq/notehq.go/internal/codec"
	"github.com/notehq/notehq.go/pkg/cache"
	"github.com/notehq/notehq.go/pkg/filter"
	"github.com/notehq/notehq.go/pkg/logger"
	"github.com/notehq/notehq.go/pkg/models"
	"github.com/notehq/notehq.go/pkg/transport"
)

// Client is one session against the workspace API. It owns the session's
// identity cache; two Clients never share cached state. All methods are
// safe for concurrent use.
type Client struct {
	transport   transport.Transport
	marshaler   codec.Marshaler
	unmarshaler codec.Unmarshaler
	log         logger.Logger
	pageSize    int

	store *cache.Store

	schemaMu sync.RWMutex
	schemas  map[models.Kind]filter.Schema
}

// New creates a session from the config. The only required field is the
// transport; everything else falls back to the NewConfig defaults.
func New(conf *Config) (*Client, error) {
	if conf == nil || conf.Transport == nil {
		return nil, ErrNoTransport
	}

	c := &Client{
		transport:   conf.Transport,
		marshaler:   conf.Marshaler,
		unmarshaler: conf.Unmarshaler,
		log:         conf.Logger,
		pageSize:    conf.PageSize,
		schemas:     make(map[models.Kind]filter.Schema),
	}
	if c.marshaler == nil {
		c.marshaler = codec.JSON{}
	}
	if c.unmarshaler == nil {
		c.unmarshaler = codec.JSON{}
	}
	if c.log == nil {
		c.log = logger.Nop{}
	}
	if c.pageSize <= 0 {
		c.pageSize = defaultPageSize
	}

	opts := []cache.Option{cache.WithLogger(c.log)}
	if conf.CacheMaxAge > 0 {
		opts = append(opts, cache.WithMaxAge(conf.CacheMaxAge))
	}
	c.store = cache.New(c.fetchEntity, opts...)

	return c, nil
}

// Cache exposes the session's identity cache for direct Get, Put,
// Invalidate and Clear calls.
func (c *Client) Cache() *cache.Store {
	return c.store
}

// Get returns the entity from cache or fetches it, deduplicating
// concurrent fetches for the same key.
func (c *Client) Get(ctx context.Context, kind models.Kind, id models.ID) (*models.Entity, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return c.store.GetOrFetch(ctx, kind, id)
}

// Page fetches the page with the given id, via the cache.
func (c *Client) Page(ctx context.Context, id models.ID) (*models.Entity, error) {
	return c.store.GetOrFetch(ctx, models.KindPage, id)
}

// Database fetches the database with the given id, via the cache.
func (c *Client) Database(ctx context.Context, id models.ID) (*models.Entity, error) {
	return c.store.GetOrFetch(ctx, models.KindDatabase, id)
}

// Block fetches the block with the given id, via the cache.
func (c *Client) Block(ctx context.Context, id models.ID) (*models.Entity, error) {
	return c.store.GetOrFetch(ctx, models.KindBlock, id)
}

// User fetches the user with the given id, via the cache.
func (c *Client) User(ctx context.Context, id models.ID) (*models.Entity, error) {
	return c.store.GetOrFetch(ctx, models.KindUser, id)
}

// SetSchema records the most recently observed property schema for a
// kind. Query validates filter conditions against the schema registered
// here; re-registering after a remote schema change replaces the old one
// wholesale.
func (c *Client) SetSchema(kind models.Kind, s filter.Schema) {
	c.schemaMu.Lock()
	defer c.schemaMu.Unlock()
	c.schemas[kind] = s
}

// Schema returns the registered schema for a kind, which may be nil.
func (c *Client) Schema(kind models.Kind) filter.Schema {
	c.schemaMu.RLock()
	defer c.schemaMu.RUnlock()
	return c.schemas[kind]
}

// fetchEntity is the cache's FetchFunc: one transport round trip plus
// decoding.
func (c *Client) fetchEntity(ctx context.Context, kind models.Kind, id models.ID) (*models.Entity, error) {
	c.log.Debug("fetching record", "kind", kind, "id", id)
	rec, err := c.transport.FetchOne(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return models.EntityFromRecord(rec, c.unmarshaler)
}

// decodeRecords converts a page of wire records, skipping none: a record
// that fails to decode fails the whole page.
func (c *Client) decodeRecords(recs []*models.Record) ([]*models.Entity, error) {
	out := make([]*models.Entity, 0, len(recs))
	for _, rec := range recs {
		ent, err := models.EntityFromRecord(rec, c.unmarshaler)
		if err != nil {
			return nil, err
		}
		out = append(out, ent)
	}
	return out, nil
}
