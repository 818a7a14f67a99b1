package f

import (
	"maps"
	"slices"
)

type Set[T comparable] map[T]struct{}

func NewSet[T comparable]() Set[T] {
	return make(map[T]struct{})
}

func (s Set[T]) Add(item T) {
	s[item] = struct{}{}
}

func (s Set[T]) Contains(item T) bool {
	_, found := s[item]
	return found
}

// AddIfMissing adds item and reports whether it was not already present
func (s Set[T]) AddIfMissing(item T) bool {
	if s.Contains(item) {
		return false
	}
	s.Add(item)
	return true
}

func (s Set[T]) Items() []T {
	return slices.Collect(maps.Keys(s))
}

func Map[T, U any](ts []T, f func(T) U) []U {
	us := make([]U, len(ts))
	for i, t := range ts {
		us[i] = f(t)
	}
	return us
}

func Filtered[T any](ts []T, f func(T) bool) []T {
	filtered := make([]T, 0)
	for _, t := range ts {
		if f(t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func RemoveDuplicates[T comparable](sliceList []T) []T {
	seen := NewSet[T]()
	return slices.DeleteFunc(sliceList, func(t T) bool {
		return !seen.AddIfMissing(t)
	})
}

// Sorted returns a sorted copy, leaving the input untouched
func Sorted[T interface{ ~int | ~string }](ts []T) []T {
	sorted := slices.Clone(ts)
	slices.Sort(sorted)
	return sorted
}

func SlicesItemsMatch[T comparable](slice1, slice2 []T) bool {
	if len(slice1) != len(slice2) {
		return false
	}
	counts := make(map[T]int, len(slice1))
	for _, item := range slice1 {
		counts[item]++
	}
	for _, item := range slice2 {
		if counts[item] == 0 {
			return false
		}
		counts[item]--
	}
	return true
}
