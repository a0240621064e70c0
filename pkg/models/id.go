package models

import "github.com/google/uuid"

// ID is the opaque stable identifier of a record, unique within its kind.
type ID string

// NewID generates a fresh identifier for client-created records.
func NewID() ID {
	return ID(uuid.NewString())
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}
