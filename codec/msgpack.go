package codec

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack decodes msgpack-encoded values and renders them as JSON text.
// The zero value is ready to use.
//
// Map keys must be strings for the JSON rendering to succeed; msgpack
// payloads with non-string map keys are reported as decode errors.
type Msgpack struct{}

func (Msgpack) Decode(b []byte) ([]byte, error) {
	var v any
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
