package codec

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// CBOR encodes payloads with fxamacker/cbor for transports that negotiate
// a binary content type.
type CBOR struct{}

var (
	_ Marshaler   = CBOR{}
	_ Unmarshaler = CBOR{}
)

func (CBOR) Marshal(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (CBOR) NewEncoder(w io.Writer) Encoder {
	return cbor.NewEncoder(w)
}

func (CBOR) Unmarshal(data []byte, dst any) error {
	return cbor.Unmarshal(data, dst)
}

func (CBOR) NewDecoder(r io.Reader) Decoder {
	return cbor.NewDecoder(r)
}
