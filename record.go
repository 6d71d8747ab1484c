package cachefetch

// Record is the unit of work a dispatch operates on: an opaque body plus a
// flat map of string attributes. The surrounding flow owns the record; the
// dispatcher only reads attributes during key resolution, and Route is the
// single place a record is mutated.
type Record struct {
	Body       []byte
	Attributes map[string]string
}

// NewRecord returns a record with the given body and no attributes.
func NewRecord(body []byte) *Record {
	return &Record{Body: body, Attributes: make(map[string]string)}
}

// Attribute returns the named attribute and whether it is set.
func (r *Record) Attribute(name string) (string, bool) {
	v, ok := r.Attributes[name]
	return v, ok
}

// SetAttribute writes an attribute, allocating the map on first use.
func (r *Record) SetAttribute(name, value string) {
	if r.Attributes == nil {
		r.Attributes = make(map[string]string)
	}
	r.Attributes[name] = value
}
