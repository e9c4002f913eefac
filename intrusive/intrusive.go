package intrusive

import (
	"github.com/wippyai/lifetime"
)

// Counted is the capability a value gains by embedding RefCounted.
type Counted interface {
	IncRef() uint32
	DecRef() uint32
	RefCount() uint32
}

// RefCounted is the embeddable counter. The zero value starts at
// zero references; Adopt performs the first increment.
type RefCounted struct {
	count uint32
}

// IncRef increments the counter and returns the new count.
func (r *RefCounted) IncRef() uint32 {
	r.count++
	return r.count
}

// DecRef decrements the counter and returns the new count. Decrement
// below zero is a contract violation.
func (r *RefCounted) DecRef() uint32 {
	if r.count == 0 {
		panic("intrusive: reference count underflow")
	}
	r.count--
	return r.count
}

// RefCount returns the current count.
func (r *RefCounted) RefCount() uint32 {
	return r.count
}

// Ptr is a handle over a value carrying its own reference count. The
// type parameter is the pointer type, e.g. intrusive.Ptr[*Buffer].
// The zero value is an empty handle.
type Ptr[T interface {
	Counted
	comparable
}] struct {
	obj T
}

// Adopt takes a reference on obj and returns a handle for it.
func Adopt[T interface {
	Counted
	comparable
}](obj T) Ptr[T] {
	var zero T
	if obj == zero {
		return Ptr[T]{}
	}
	obj.IncRef()
	return Ptr[T]{obj: obj}
}

// Clone returns a new handle sharing the reference.
func (p *Ptr[T]) Clone() Ptr[T] {
	var zero T
	if p.obj == zero {
		return Ptr[T]{}
	}
	p.obj.IncRef()
	return Ptr[T]{obj: p.obj}
}

// Move transfers the reference to the returned handle and empties p.
func (p *Ptr[T]) Move() Ptr[T] {
	out := Ptr[T]{obj: p.obj}
	var zero T
	p.obj = zero
	return out
}

// Assign releases p's current reference and makes it share other's.
// Assigning a handle to itself is a no-op.
func (p *Ptr[T]) Assign(other *Ptr[T]) {
	if p == other || p.obj == other.obj {
		return
	}
	var zero T
	if other.obj != zero {
		other.obj.IncRef()
	}
	old := p.obj
	p.obj = other.obj
	release(old)
}

// Release drops the reference. When the count reaches zero the value's
// Drop method runs. Releasing an empty handle is a no-op.
func (p *Ptr[T]) Release() {
	old := p.obj
	var zero T
	p.obj = zero
	release(old)
}

// Reset is Release under the name the pointer family uses.
func (p *Ptr[T]) Reset() {
	p.Release()
}

// ResetTo releases the current reference and adopts obj instead.
func (p *Ptr[T]) ResetTo(obj T) {
	var zero T
	if obj != zero {
		obj.IncRef()
	}
	old := p.obj
	p.obj = obj
	release(old)
}

// Swap exchanges the contents of two handles without touching counts.
func (p *Ptr[T]) Swap(other *Ptr[T]) {
	p.obj, other.obj = other.obj, p.obj
}

// Get returns the referenced value, the zero pointer for an empty
// handle.
func (p *Ptr[T]) Get() T {
	return p.obj
}

// UseCount reports the value's current reference count.
func (p *Ptr[T]) UseCount() int {
	var zero T
	if p.obj == zero {
		return 0
	}
	return int(p.obj.RefCount())
}

// IsNil reports whether the handle references nothing.
func (p *Ptr[T]) IsNil() bool {
	var zero T
	return p.obj == zero
}

// Same reports whether two handles reference the same value.
func (p *Ptr[T]) Same(other *Ptr[T]) bool {
	return p.obj == other.obj
}

// release decrements and destroys on zero. Decrement-then-check: the
// value's destructor runs exactly once, at the transition to zero.
func release[T interface {
	Counted
	comparable
}](obj T) {
	var zero T
	if obj == zero {
		return
	}
	if obj.DecRef() == 0 {
		lifetime.DropValue(obj)
	}
}
