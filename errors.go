package notehq

import (
	"errors"

	"github.com/notehq/notehq.go/pkg/filter"
	"github.com/notehq/notehq.go/pkg/transport"
)

// Errors
var (
	ErrNoTransport = errors.New("transport is not set")
	ErrNilEntity   = errors.New("nil entity")
	ErrUnknownKind = errors.New("unknown record kind")
)

// IsNotFound reports whether err means the remote returned no record.
// Not-found results are never cached and never retried by this layer.
func IsNotFound(err error) bool {
	var nf *transport.NotFoundError
	return errors.As(err, &nf)
}

// IsPermissionDenied reports whether err is an access refusal surfaced
// from the transport.
func IsPermissionDenied(err error) bool {
	var pe *transport.PermissionError
	return errors.As(err, &pe)
}

// IsTranslationError reports whether err came from filter translation,
// which always indicates a caller bug rather than a remote condition.
func IsTranslationError(err error) bool {
	var te *filter.TranslationError
	return errors.As(err, &te)
}
