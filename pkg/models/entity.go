package models

import (
	"fmt"
	"time"

	"github.com/notehq/notehq.go/internal/codec"
)

// Entity is the decoded, immutable snapshot of a record. The identity cache
// hands Entity values to callers by clone, so mutating one never corrupts
// cached state.
type Entity struct {
	ID         ID
	Kind       Kind
	EditedAt   time.Time
	Parent     ParentRef
	Properties map[string]any
	Archived   bool
}

// EntityFromRecord decodes a wire record into an Entity using the session's
// unmarshaler for the property bag.
func EntityFromRecord(rec *Record, um codec.Unmarshaler) (*Entity, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil record")
	}
	if !rec.Kind.Valid() {
		return nil, fmt.Errorf("record %s: unknown kind %q", rec.ID, rec.Kind)
	}

	parent, err := ParseParentRef(rec.Parent)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}

	props := map[string]any{}
	if len(rec.Properties) > 0 {
		if err := um.Unmarshal(rec.Properties, &props); err != nil {
			return nil, fmt.Errorf("record %s: decoding properties: %w", rec.ID, err)
		}
	}

	return &Entity{
		ID:         rec.ID,
		Kind:       rec.Kind,
		EditedAt:   rec.EditedAt,
		Parent:     parent,
		Properties: props,
		Archived:   rec.Archived,
	}, nil
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	dup := *e
	dup.Properties = cloneValue(e.Properties).(map[string]any)
	return &dup
}

// Property returns the named property value and whether it is present.
func (e *Entity) Property(name string) (any, bool) {
	v, ok := e.Properties[name]
	return v, ok
}

// Title returns the "title" property when it is a plain string, which is
// how pages and databases carry their display name.
func (e *Entity) Title() string {
	if v, ok := e.Properties["title"].(string); ok {
		return v
	}
	return ""
}

// BlockType returns the "type" property of a block entity, such as
// "paragraph" or "heading_1", or the empty string when absent.
func (e *Entity) BlockType() string {
	if v, ok := e.Properties["type"].(string); ok {
		return v
	}
	return ""
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		dup := make(map[string]any, len(t))
		for k, e := range t {
			dup[k] = cloneValue(e)
		}
		return dup
	case []any:
		dup := make([]any, len(t))
		for i, e := range t {
			dup[i] = cloneValue(e)
		}
		return dup
	default:
		return v
	}
}
