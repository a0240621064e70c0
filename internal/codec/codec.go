// Package codec abstracts how record property bags are encoded on the
// wire. The session core never inspects raw payloads itself; it hands
// them to whichever Marshaler/Unmarshaler pair the transport negotiated,
// JSON by default and CBOR for binary transports.
package codec

import "io"

// Encoder writes successive values to an underlying stream.
type Encoder interface {
	Encode(v any) error
}

// Decoder reads successive values from an underlying stream.
type Decoder interface {
	Decode(v any) error
}

// Marshaler encodes mutation payloads and, in the fake transport, stored
// property bags.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
	NewEncoder(w io.Writer) Encoder
}

// Unmarshaler decodes the raw property bags carried by records into the
// entity's property map.
type Unmarshaler interface {
	Unmarshal(data []byte, dst any) error
	NewDecoder(r io.Reader) Decoder
}

// Codec bundles both directions for callers that negotiate one format.
type Codec interface {
	Marshaler
	Unmarshaler
}
