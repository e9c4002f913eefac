package unique

import (
	"github.com/wippyai/lifetime"
)

// Slice owns a whole backing array with indexed access, the array
// counterpart of Unique. The deleter sees the full slice exactly once.
type Slice[T any] struct {
	elems []T
	del   func([]T)
}

// defaultDeleteSlice drops every element that implements Dropper.
func defaultDeleteSlice[T any](elems []T) {
	for i := range elems {
		lifetime.DropValue(&elems[i])
	}
}

// NewSlice adopts elems under the default per-element deleter.
func NewSlice[T any](elems []T) Slice[T] {
	return Slice[T]{elems: elems, del: defaultDeleteSlice[T]}
}

// NewSliceWithDeleter adopts elems with a caller-supplied deleter. A
// nil deleter falls back to the default.
func NewSliceWithDeleter[T any](elems []T, del func([]T)) Slice[T] {
	if del == nil {
		del = defaultDeleteSlice[T]
	}
	return Slice[T]{elems: elems, del: del}
}

// Move transfers ownership to the returned handle and empties s.
func (s *Slice[T]) Move() Slice[T] {
	out := Slice[T]{elems: s.elems, del: s.del}
	s.elems = nil
	return out
}

// Release gives up ownership and returns the raw slice without
// running the deleter.
func (s *Slice[T]) Release() []T {
	elems := s.elems
	s.elems = nil
	return elems
}

// Reset destroys the owned elements, if any, and empties the handle.
func (s *Slice[T]) Reset() {
	old := s.elems
	s.elems = nil
	if old != nil && s.del != nil {
		s.del(old)
	}
}

// At returns a pointer to the i-th element. Bounds violations panic
// the way a slice index would.
func (s *Slice[T]) At(i int) *T {
	return &s.elems[i]
}

// Len returns the number of owned elements.
func (s *Slice[T]) Len() int {
	return len(s.elems)
}

// Get returns the owned slice, nil for an empty handle.
func (s *Slice[T]) Get() []T {
	return s.elems
}

// IsNil reports whether the handle owns nothing.
func (s *Slice[T]) IsNil() bool {
	return s.elems == nil
}
