package rbac

import "fmt"

// Hierarchy is an ordered enumeration where the position of a value is its rank.
// It is immutable after construction and safe for concurrent use.
type Hierarchy[T comparable] struct {
	order []T
	ranks map[T]int
}

// NewHierarchy builds a hierarchy from values listed lowest rank first.
func NewHierarchy[T comparable](order ...T) (Hierarchy[T], error) {
	ranks := make(map[T]int, len(order))
	for i, v := range order {
		if _, dup := ranks[v]; dup {
			return Hierarchy[T]{}, fmt.Errorf("%w: %v", ErrDuplicateRank, v)
		}
		ranks[v] = i
	}
	return Hierarchy[T]{order: append([]T(nil), order...), ranks: ranks}, nil
}

// MustHierarchy is like NewHierarchy but panics on duplicate values.
// Intended for package-level hierarchy declarations.
func MustHierarchy[T comparable](order ...T) Hierarchy[T] {
	h, err := NewHierarchy(order...)
	if err != nil {
		panic(err)
	}
	return h
}

// Rank returns the position of v and whether v belongs to the hierarchy.
func (h Hierarchy[T]) Rank(v T) (int, bool) {
	r, ok := h.ranks[v]
	return r, ok
}

// Contains reports whether v is part of the hierarchy.
func (h Hierarchy[T]) Contains(v T) bool {
	_, ok := h.ranks[v]
	return ok
}

// Values returns the hierarchy lowest rank first.
func (h Hierarchy[T]) Values() []T {
	return append([]T(nil), h.order...)
}

// MeetsMinimum reports whether actual ranks at or above required.
// A nil actual never passes, and neither does a value outside the hierarchy
// on either side.
func (h Hierarchy[T]) MeetsMinimum(actual *T, required T) bool {
	if actual == nil {
		return false
	}
	have, ok := h.ranks[*actual]
	if !ok {
		return false
	}
	need, ok := h.ranks[required]
	if !ok {
		return false
	}
	return have >= need
}
