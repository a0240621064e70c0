package notehq

import (
	"os"
	"time"

	"github.com/notehq/notehq.go/internal/codec"
	"github.com/notehq/notehq.go/pkg/logger"
	"github.com/notehq/notehq.go/pkg/transport"
)

const defaultPageSize = 100

// Config carries everything a session needs. Construct it with NewConfig
// to get codec and logger defaults, then override fields as needed.
type Config struct {
	// Transport is the wire layer the session talks through. Required.
	Transport transport.Transport

	// Marshaler and Unmarshaler encode mutation payloads and decode
	// record property bags. They default to JSON.
	Marshaler   codec.Marshaler
	Unmarshaler codec.Unmarshaler

	// Logger receives fetch, mutation and batch events. Defaults to a
	// zerolog logger on stderr.
	Logger logger.Logger

	// CacheMaxAge bounds how long a cached entity satisfies reads before
	// a refetch. Zero means cached entities never expire.
	CacheMaxAge time.Duration

	// PageSize is the page size requested from the remote on paged
	// fetches. Defaults to 100.
	PageSize int
}

// NewConfig returns a Config for the given transport with every default
// filled in.
func NewConfig(t transport.Transport) *Config {
	c := codec.JSON{}
	return &Config{
		Transport:   t,
		Marshaler:   c,
		Unmarshaler: c,
		Logger:      logger.New(os.Stderr),
		PageSize:    defaultPageSize,
	}
}
