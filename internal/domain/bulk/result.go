package bulk

// UpsertResult is the outcome of one bulk upsert request. Every input
// record lands in exactly one of the three buckets, so
// len(Created)+len(Updated)+len(Errors) equals the input length.
type UpsertResult[T any] struct {
	Created []T        `json:"created"`
	Updated []T        `json:"updated"`
	Errors  []RowError `json:"errors"`
}

// NewUpsertResult returns an empty result with non-nil slices so the
// JSON encoding always carries arrays
func NewUpsertResult[T any]() UpsertResult[T] {
	return UpsertResult[T]{
		Created: []T{},
		Updated: []T{},
		Errors:  []RowError{},
	}
}

// Total returns the number of processed input records
func (r UpsertResult[T]) Total() int {
	return len(r.Created) + len(r.Updated) + len(r.Errors)
}
