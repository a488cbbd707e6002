package portfolio

// Keyed is implemented by every record type stored in a local collection.
type Keyed interface {
	Key() string
}

// MutationKind identifies how a completed remote mutation changes a local collection.
type MutationKind int

const (
	// MutationAppend adds the returned rows at the end of the collection.
	MutationAppend MutationKind = iota
	// MutationPrepend adds the returned rows in front of the collection.
	MutationPrepend
	// MutationReplace swaps the entry matching the returned row's key.
	MutationReplace
	// MutationDelete removes the entry matching ID.
	MutationDelete
)

// Mutation is the outcome of a remote call that a collection is reconciled against.
type Mutation[T Keyed] struct {
	Kind MutationKind
	Rows []T
	ID   string
	Err  error
}

// Reduce returns the collection that results from applying m to prior.
// A failed mutation leaves the collection unchanged. The prior slice is never modified.
func Reduce[T Keyed](prior []T, m Mutation[T]) []T {
	if m.Err != nil {
		return clone(prior)
	}

	switch m.Kind {
	case MutationAppend:
		next := make([]T, 0, len(prior)+len(m.Rows))
		next = append(next, prior...)
		return append(next, m.Rows...)
	case MutationPrepend:
		next := make([]T, 0, len(prior)+len(m.Rows))
		next = append(next, m.Rows...)
		return append(next, prior...)
	case MutationReplace:
		next := clone(prior)
		for _, row := range m.Rows {
			for i := range next {
				if next[i].Key() == row.Key() {
					next[i] = row
				}
			}
		}
		return next
	case MutationDelete:
		next := make([]T, 0, len(prior))
		for _, item := range prior {
			if item.Key() != m.ID {
				next = append(next, item)
			}
		}
		return next
	default:
		return clone(prior)
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
