package models

import (
	"time"

	gojson "github.com/goccy/go-json"
)

// Record is the wire-level representation of an entity as returned by the
// transport collaborator. Parent and Properties stay raw until decoded into
// an Entity, so the transport never needs to understand either shape.
type Record struct {
	ID       ID        `json:"id"`
	Kind     Kind      `json:"kind"`
	EditedAt time.Time `json:"last_edited_time"`

	// Parent is the raw parent descriptor. It is always JSON, whatever
	// codec the property payloads negotiate, so it can be read without a
	// full decode.
	Parent gojson.RawMessage `json:"parent,omitempty"`

	// Properties is the undecoded property bag in the transport's codec.
	Properties gojson.RawMessage `json:"properties,omitempty"`

	Archived bool `json:"archived,omitempty"`
}
