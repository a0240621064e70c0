package models

import "fmt"

// Kind identifies one of the four addressable record kinds exposed by the
// workspace API.
type Kind string

const (
	KindPage     Kind = "page"
	KindDatabase Kind = "database"
	KindBlock    Kind = "block"
	KindUser     Kind = "user"
)

// Kinds lists every addressable kind.
func Kinds() []Kind {
	return []Kind{KindPage, KindDatabase, KindBlock, KindUser}
}

// Valid reports whether k is one of the known record kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPage, KindDatabase, KindBlock, KindUser:
		return true
	default:
		return false
	}
}

// ParseKind converts a wire-level kind string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown record kind %q", s)
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}
