package step

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyOperation is returned by Validate when a step has no description.
var ErrEmptyOperation = errors.New("step: operation is empty")

// IndexSet is a sorted, duplicate-free set of array positions.
type IndexSet []int

// NewIndexSet builds an IndexSet from arbitrary indices.
func NewIndexSet(indices ...int) IndexSet {
	if len(indices) == 0 {
		return nil
	}
	s := slices.Clone(indices)
	slices.Sort(s)
	return IndexSet(slices.Compact(s))
}

// Has reports whether i is in the set.
func (s IndexSet) Has(i int) bool {
	_, ok := slices.BinarySearch(s, i)
	return ok
}

// With returns a new set that also contains the given indices.
func (s IndexSet) With(indices ...int) IndexSet {
	return NewIndexSet(append(slices.Clone(s), indices...)...)
}

// Step is one discrete moment of an algorithm's execution: the state after
// the operation it describes.
type Step struct {
	Array        []int    `json:"array"`
	CurrentIndex *int     `json:"current_index,omitempty"`
	Comparing    IndexSet `json:"comparing,omitempty"`
	Swapping     IndexSet `json:"swapping,omitempty"`
	Sorted       IndexSet `json:"sorted,omitempty"`
	Visited      IndexSet `json:"visited,omitempty"`
	Operation    string   `json:"operation"`
	Result       *float64 `json:"result,omitempty"`
	Line         *int     `json:"line,omitempty"`
}

// Validate checks that every index references a valid array position and
// that the operation is described.
func (s Step) Validate() error {
	if s.Operation == "" {
		return ErrEmptyOperation
	}
	n := len(s.Array)
	check := func(name string, set IndexSet) error {
		for _, i := range set {
			if i < 0 || i >= n {
				return fmt.Errorf("step: %s index %d out of range [0,%d)", name, i, n)
			}
		}
		return nil
	}
	if s.CurrentIndex != nil {
		if err := check("current", IndexSet{*s.CurrentIndex}); err != nil {
			return err
		}
	}
	for _, c := range []struct {
		name string
		set  IndexSet
	}{
		{"comparing", s.Comparing},
		{"swapping", s.Swapping},
		{"sorted", s.Sorted},
		{"visited", s.Visited},
	} {
		if err := check(c.name, c.set); err != nil {
			return err
		}
	}
	return nil
}

// Int returns a pointer to v, for the optional integer fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for the optional Result field.
func Float(v float64) *float64 { return &v }
