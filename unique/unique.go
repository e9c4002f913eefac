package unique

import (
	"github.com/wippyai/lifetime"
)

// Unique is an exclusive-ownership handle: a (pointer, deleter) pair.
// The zero value is an empty handle. A stateless deleter is stored as
// a plain func field; Go has no zero-size specialization for it, and
// the single word of overhead is accepted.
type Unique[T any] struct {
	ptr *T
	del func(*T)
}

// defaultDelete runs the value's Drop method when it has one.
func defaultDelete[T any](ptr *T) {
	lifetime.DropValue(ptr)
}

// New adopts ptr under the default deleter.
func New[T any](ptr *T) Unique[T] {
	return Unique[T]{ptr: ptr, del: defaultDelete[T]}
}

// NewWithDeleter adopts ptr with a caller-supplied deleter. A nil
// deleter falls back to the default.
func NewWithDeleter[T any](ptr *T, del func(*T)) Unique[T] {
	if del == nil {
		del = defaultDelete[T]
	}
	return Unique[T]{ptr: ptr, del: del}
}

// Move transfers ownership to the returned handle and empties u. The
// deleter travels with the value.
func (u *Unique[T]) Move() Unique[T] {
	out := Unique[T]{ptr: u.ptr, del: u.del}
	u.ptr = nil
	return out
}

// Release gives up ownership and returns the raw pointer without
// running the deleter. The handle is empty afterwards.
func (u *Unique[T]) Release() *T {
	ptr := u.ptr
	u.ptr = nil
	return ptr
}

// Reset destroys the owned value, if any, and empties the handle.
func (u *Unique[T]) Reset() {
	u.ResetTo(nil)
}

// ResetTo destroys the owned value, if any, and adopts ptr in its
// place under the same deleter.
func (u *Unique[T]) ResetTo(ptr *T) {
	old := u.ptr
	u.ptr = ptr
	if old != nil && u.del != nil {
		u.del(old)
	}
}

// Swap exchanges the contents of two handles, deleters included.
func (u *Unique[T]) Swap(other *Unique[T]) {
	u.ptr, other.ptr = other.ptr, u.ptr
	u.del, other.del = other.del, u.del
}

// Get returns the owned pointer, nil for an empty handle.
func (u *Unique[T]) Get() *T {
	return u.ptr
}

// Deref returns the owned value. It panics on an empty handle.
func (u *Unique[T]) Deref() T {
	return *u.ptr
}

// Deleter returns the handle's deleter.
func (u *Unique[T]) Deleter() func(*T) {
	return u.del
}

// IsNil reports whether the handle owns nothing.
func (u *Unique[T]) IsNil() bool {
	return u.ptr == nil
}
