package cachefetch

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The dispatcher calls them on hot paths.
type Hooks interface {
	// A key was found in the cache; size is the stored value length.
	CacheHit(key string, size int)

	// A key had no cache entry. Feeds the not-found relationship.
	CacheMiss(key string)

	// The provider returned a transport-level error; remaining keys of the
	// same dispatch were not queried.
	TransportError(key string, err error)

	// The key template expanded to an empty string for a record.
	EmptyKey(template string)

	// The configured decoder rejected a stored value.
	ValueDecodeError(key string, err error)

	// An attribute value was cut to the configured byte limit.
	AttributeTruncated(name string, from, to int)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CacheHit(string, int)                {}
func (NopHooks) CacheMiss(string)                    {}
func (NopHooks) TransportError(string, error)        {}
func (NopHooks) EmptyKey(string)                     {}
func (NopHooks) ValueDecodeError(string, error)      {}
func (NopHooks) AttributeTruncated(string, int, int) {}
