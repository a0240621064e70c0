package models

import (
	"fmt"

	"github.com/buger/jsonparser"
)

// ParentKind discriminates the variants of a ParentRef. The set is closed:
// every switch over a ParentKind must handle all four variants plus the
// unknown default.
type ParentKind string

const (
	// ParentRoot marks a record with no structural parent, such as a
	// top-level page in the workspace.
	ParentRoot ParentKind = "workspace"

	ParentPage     ParentKind = "page_id"
	ParentDatabase ParentKind = "database_id"
	ParentBlock    ParentKind = "block_id"
)

// ParentRef describes the structural parent of a record. A non-root ref
// carries the identifier of its target; the target's record kind follows
// from the variant via TargetKind.
//
// A ParentRef is a value, never mutated in place: moving a record replaces
// the whole ref when the record is refreshed.
type ParentRef struct {
	Type ParentKind
	ID   ID
}

// RootParent returns the ref for a record at the top of the hierarchy.
func RootParent() ParentRef {
	return ParentRef{Type: ParentRoot}
}

// PageParent returns a ref pointing at the page with the given id.
func PageParent(id ID) ParentRef {
	return ParentRef{Type: ParentPage, ID: id}
}

// DatabaseParent returns a ref pointing at the database with the given id.
func DatabaseParent(id ID) ParentRef {
	return ParentRef{Type: ParentDatabase, ID: id}
}

// BlockParent returns a ref pointing at the block with the given id.
func BlockParent(id ID) ParentRef {
	return ParentRef{Type: ParentBlock, ID: id}
}

// IsRoot reports whether the ref marks a record without a parent.
func (p ParentRef) IsRoot() bool {
	return p.Type == ParentRoot
}

// TargetKind maps the ref variant to the record kind it points at.
// Calling it on a root ref is a programming error and returns false.
func (p ParentRef) TargetKind() (Kind, bool) {
	switch p.Type {
	case ParentRoot:
		return "", false
	case ParentPage:
		return KindPage, true
	case ParentDatabase:
		return KindDatabase, true
	case ParentBlock:
		return KindBlock, true
	default:
		return "", false
	}
}

// Wire renders the ref in the API's parent-descriptor object shape,
// e.g. {"type":"page_id","page_id":"..."} or {"type":"workspace","workspace":true}.
func (p ParentRef) Wire() map[string]any {
	switch p.Type {
	case ParentRoot:
		return map[string]any{"type": string(ParentRoot), string(ParentRoot): true}
	case ParentPage, ParentDatabase, ParentBlock:
		return map[string]any{"type": string(p.Type), string(p.Type): p.ID.String()}
	default:
		return map[string]any{"type": string(p.Type)}
	}
}

func (p ParentRef) String() string {
	if p.IsRoot() {
		return "workspace"
	}
	return fmt.Sprintf("%s:%s", p.Type, p.ID)
}

// ParseParentRef reads a wire-level parent descriptor. The descriptor is a
// small object whose "type" field names the key holding the target id, so
// it is read with jsonparser instead of decoding into an intermediate map.
func ParseParentRef(raw []byte) (ParentRef, error) {
	if len(raw) == 0 {
		return RootParent(), nil
	}

	typ, err := jsonparser.GetString(raw, "type")
	if err != nil {
		return ParentRef{}, fmt.Errorf("parent descriptor missing type: %w", err)
	}

	switch ParentKind(typ) {
	case ParentRoot:
		return RootParent(), nil
	case ParentPage, ParentDatabase, ParentBlock:
		id, err := jsonparser.GetString(raw, typ)
		if err != nil {
			return ParentRef{}, fmt.Errorf("parent descriptor %q missing target id: %w", typ, err)
		}
		return ParentRef{Type: ParentKind(typ), ID: ID(id)}, nil
	default:
		return ParentRef{}, fmt.Errorf("unknown parent descriptor type %q", typ)
	}
}
