package cachefetch

// materialize builds the attribute write for one fetched key. The name is
// the configured attribute in single-key mode and attribute+"."+key when the
// template declared multiple keys, which keeps names collision-free across
// distinct key strings. Truncation is a byte-prefix cut; multi-byte text
// boundaries are not respected.
func (f *fetcher) materialize(key string, value []byte) AttributeWrite {
	name := f.attribute
	if f.multi {
		name = f.attribute + "." + key
	}
	if f.maxAttrLen > 0 && len(value) > f.maxAttrLen {
		f.hooks.AttributeTruncated(name, len(value), f.maxAttrLen)
		value = value[:f.maxAttrLen]
	}
	return AttributeWrite{Name: name, Value: string(value)}
}
