// Package codec renders bytes fetched from a cache into the bytes written
// to the record. The cache service owns serialization; a Decoder only
// translates what was stored into a representation the record can carry
// (typically JSON text for structured formats).
package codec

// Decoder transforms stored cache bytes into record bytes.
type Decoder interface {
	Decode([]byte) ([]byte, error)
}
