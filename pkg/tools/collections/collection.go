package collections

import (
	"cmp"
	"slices"
)

func Keys[K comparable, V any](m map[K]V) []K {
	result := make([]K, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}

func Contains[T comparable](list []T, t T) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func ContainsAny[T comparable](list []T, values ...T) bool {
	if len(list) > len(values) {
		list, values = values, list
	}
	for _, v := range list {
		if Contains(values, v) {
			return true
		}
	}
	return false
}

// Set is an unordered collection of distinct values.
type Set[T cmp.Ordered] map[T]struct{}

func NewSet[T cmp.Ordered](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set[T]) Insert(v T) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s Set[T]) Remove(v T) bool {
	if _, ok := s[v]; !ok {
		return false
	}
	delete(s, v)
	return true
}

func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) Len() int { return len(s) }

// Sorted returns the members in ascending order.
func (s Set[T]) Sorted() []T {
	list := Keys(s)
	slices.Sort(list)
	return list
}
