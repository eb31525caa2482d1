// Package ref resolves records referenced by id across collections.
// A reference that does not resolve is treated as absent, never as an error.
package ref

// Identifiable is any record with an opaque id.
type Identifiable interface {
	RefID() string
}

// Index looks records up by id.
type Index[T Identifiable] struct {
	byID map[string]T
}

func NewIndex[T Identifiable](items []T) Index[T] {
	ix := Index[T]{byID: make(map[string]T, len(items))}
	for _, it := range items {
		ix.byID[it.RefID()] = it
	}
	return ix
}

// Resolve returns the record with the given id, ok is false if the reference dangles.
func (ix Index[T]) Resolve(id string) (T, bool) {
	it, ok := ix.byID[id]
	return it, ok
}

func (ix Index[T]) Has(id string) bool {
	_, ok := ix.byID[id]
	return ok
}

// ResolveAll returns the records for ids in order, dropping dangling ids.
func (ix Index[T]) ResolveAll(ids []string) []T {
	res := make([]T, 0, len(ids))
	for _, id := range ids {
		if it, ok := ix.byID[id]; ok {
			res = append(res, it)
		}
	}
	return res
}

// KeepResolved filters items down to those whose reference (given by key) resolves.
func KeepResolved[T any, R Identifiable](items []T, ix Index[R], key func(T) string) []T {
	res := make([]T, 0, len(items))
	for _, it := range items {
		if ix.Has(key(it)) {
			res = append(res, it)
		}
	}
	return res
}
