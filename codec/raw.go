package codec

// Raw is the identity decoder. Decode returns the input unchanged. Use it
// when the cache stores plain text or opaque bytes that should land on the
// record as-is. This is the default when no decoder is configured.
type Raw struct{}

func (Raw) Decode(b []byte) ([]byte, error) { return b, nil }
