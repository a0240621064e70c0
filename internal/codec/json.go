package codec

import (
	"io"

	gojson "github.com/goccy/go-json"
)

// JSON is the default codec for the workspace API's JSON payloads.
type JSON struct{}

var (
	_ Marshaler   = JSON{}
	_ Unmarshaler = JSON{}
)

func (JSON) Marshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

func (JSON) NewEncoder(w io.Writer) Encoder {
	return gojson.NewEncoder(w)
}

func (JSON) Unmarshal(data []byte, dst any) error {
	return gojson.Unmarshal(data, dst)
}

func (JSON) NewDecoder(r io.Reader) Decoder {
	return gojson.NewDecoder(r)
}
