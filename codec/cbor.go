package codec

import (
	"encoding/json"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// CBOR decodes CBOR-encoded values and renders them as JSON text.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Maps are decoded into map[string]any so the JSON rendering stays
// deterministic; payloads with non-string map keys fail at Decode.
type CBOR struct {
	dec cbor.DecMode
}

var _ Decoder = CBOR{}

// NewCBOR constructs a CBOR decoder with string-keyed map decoding.
func NewCBOR() (CBOR, error) {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Should not use for prod just handy for package-level variables in tests/examples.
func MustCBOR() CBOR {
	c, err := NewCBOR()
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR) Decode(b []byte) ([]byte, error) {
	var v any
	if err := c.dec.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
