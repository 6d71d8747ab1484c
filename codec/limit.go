package codec

import "fmt"

// Limit wraps another decoder to enforce a maximum allowed payload size.
// If Max <= 0, size limiting is disabled.
//
// Typical use: protect against oversized/malicious values coming from a
// shared cache before the inner decoder allocates for them.
type Limit struct {
	// Inner is the underlying decoder being wrapped. It must be set.
	Inner Decoder
	// Max is the maximum permitted length (in bytes) of the incoming
	// payload. If the payload exceeds Max, Decode returns an error without
	// invoking Inner.
	Max int
}

func (c Limit) Decode(b []byte) ([]byte, error) {
	if c.Max > 0 && len(b) > c.Max {
		return nil, fmt.Errorf("payload too large: %d > %d", len(b), c.Max)
	}
	return c.Inner.Decode(b)
}
