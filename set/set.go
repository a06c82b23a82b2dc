package set

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Set returns a sorted slice of unique values.
func Set[T constraints.Ordered](incoming []T) []T {
	return Sort(Unique(incoming))
}

func Unique[T constraints.Ordered](incoming []T) []T {
	intermediate := make(map[T]bool)
	for _, value := range incoming {
		intermediate[value] = true
	}
	result := make([]T, 0, len(intermediate))
	for key := range intermediate {
		result = append(result, key)
	}
	return result
}

func Sort[T constraints.Ordered](values []T) []T {
	sort.Slice(values, func(left, right int) bool {
		return values[left] < values[right]
	})
	return values
}

func Keys[Key constraints.Ordered, Value any](incoming map[Key]Value) []Key {
	result := make([]Key, 0, len(incoming))
	for key := range incoming {
		result = append(result, key)
	}
	return Sort(result)
}

func Values[Key constraints.Ordered, Value any](incoming map[Key]Value) []Value {
	result := make([]Value, 0, len(incoming))
	for _, key := range Keys(incoming) {
		result = append(result, incoming[key])
	}
	return result
}

func Member[T comparable](incoming []T, candidate T) bool {
	for _, value := range incoming {
		if value == candidate {
			return true
		}
	}
	return false
}

func With[T constraints.Ordered](incoming []T, candidate T) []T {
	return Set(append(incoming, candidate))
}

func Without[T comparable](incoming []T, candidate T) []T {
	result := make([]T, 0, len(incoming))
	for _, value := range incoming {
		if value != candidate {
			result = append(result, value)
		}
	}
	return result
}
