package cachefetch

import (
	"context"

	cd "github.com/flowgrid/cachefetch/codec"
	pr "github.com/flowgrid/cachefetch/provider"
)

// Fetcher drives cache lookups for records and routes them.
// Implementations are stateless between calls and safe for concurrent use
// as long as the Provider is.
type Fetcher interface {
	// Dispatch resolves the key template against rec, performs the lookups
	// and computes the outcome. rec is not mutated.
	Dispatch(ctx context.Context, rec *Record) Outcome

	// Route dispatches rec, applies the outcome to it (body replacement or
	// attribute writes) and returns the relationship the record leaves on.
	// On failure the record is returned unchanged.
	Route(ctx context.Context, rec *Record) Relationship

	Close(context.Context) error
}

// Options tune a Fetcher. KeyTemplate and Provider are required; everything
// else has a sensible default.
type Options struct {
	// KeyTemplate is the cache entry identifier: literal text with ${attr}
	// placeholders expanded against the record's attributes. When Attribute
	// is set it may be a comma-separated list of such templates.
	KeyTemplate string

	// Attribute is the destination attribute for fetched values. Empty
	// means body mode: the single fetched value replaces the record body.
	// With multiple keys the attributes are named Attribute+"."+key.
	Attribute string

	// MaxAttributeLength caps attribute values in bytes. 0 = unbounded.
	// Body mode ignores it.
	MaxAttributeLength int

	// Provider is the cache service the values are fetched from. Required.
	Provider pr.Provider

	// Decoder renders stored bytes before they reach the record.
	// nil = codec.Raw (bytes pass through unchanged).
	Decoder cd.Decoder

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// CloseProvider makes Close also close the provider. Leave false when
	// the provider is shared with other components.
	CloseProvider bool
}

// New validates opts and builds a Fetcher. A comma-separated KeyTemplate
// without a destination Attribute is an invalid configuration and is
// rejected here, before any record is dispatched.
func New(opts Options) (Fetcher, error) {
	return newFetcher(opts)
}
