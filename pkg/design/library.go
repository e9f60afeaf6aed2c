package design

// Library stores Designs in insertion order. It is append-only: there is no
// removal, no deduplication, and the stored order never changes. Sorting for
// display happens outside the library on a copy of its contents.
//
// A Library is not safe for concurrent use; the tool is single-threaded by
// design.
type Library struct {
	designs []Design
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{}
}

// Add appends a design. Duplicate names are accepted.
func (l *Library) Add(d Design) {
	l.designs = append(l.designs, d)
}

// Designs returns the stored designs in insertion order. The returned slice
// is a copy; callers may reorder it freely without affecting the library.
func (l *Library) Designs() []Design {
	out := make([]Design, len(l.designs))
	copy(out, l.designs)
	return out
}

// Len returns the number of stored designs.
func (l *Library) Len() int {
	return len(l.designs)
}
