package cachefetch

// Status is the three-way routing decision of one dispatch.
type Status int

const (
	StatusSuccess Status = iota
	StatusNotFound
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not-found"
	case StatusFailure:
		return "failure"
	}
	return "unknown"
}

// Relationship names the outgoing edge a routed record leaves on.
type Relationship string

const (
	RelSuccess  Relationship = "success"
	RelNotFound Relationship = "not-found"
	RelFailure  Relationship = "failure"
)

// AttributeWrite is one materialized attribute: the destination name and the
// (possibly truncated) value.
type AttributeWrite struct {
	Name  string
	Value string
}

// Outcome is the result of one dispatch. It is immutable once returned and
// carries everything Route needs: the status, the body replacement for
// single-key body mode, attribute writes for attribute mode, and the failure
// cause. Writes may be populated on a not-found outcome; attributes for the
// keys that were found are preserved even when the dispatch as a whole is
// incomplete.
type Outcome struct {
	Status      Status
	Body        []byte
	ReplaceBody bool
	Writes      []AttributeWrite
	Err         error // failure cause; for logging only, never applied to the record
}
