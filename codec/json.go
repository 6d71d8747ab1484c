package codec

import (
	"bytes"
	"encoding/json"
)

// JSON validates that the stored bytes are well-formed JSON and compacts
// them. Invalid JSON is reported as a decode error rather than copied onto
// the record.
type JSON struct{}

func (JSON) Decode(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
