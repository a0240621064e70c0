package transport

import (
	"fmt"

	"github.com/notehq/notehq.go/pkg/models"
)

// NotFoundError reports that a fetch returned no record. The core never
// caches or retries these.
type NotFoundError struct {
	Kind models.Kind
	ID   models.ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// PermissionError reports that the remote refused access to a record. It
// is surfaced to callers as-is.
type PermissionError struct {
	Kind models.Kind
	ID   models.ID
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("unable to access %s %s", e.Kind, e.ID)
}
