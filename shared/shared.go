package shared

import (
	"github.com/wippyai/lifetime/errors"
)

// Shared is an owning reference to a managed value. It pairs a control
// block with an observed pointer; the two can diverge for aliased
// handles. The zero value is an empty handle.
type Shared[T any] struct {
	ctl control
	obj *T
}

// Wrap adopts an independently allocated value, creating a fresh
// control block with a use count of one. Wrap(nil) yields an empty
// handle.
func Wrap[T any](ptr *T) Shared[T] {
	if ptr == nil {
		return Shared[T]{}
	}
	ctl := newPtrBlock(ptr)
	bindSelf(ctl, ptr)
	return Shared[T]{ctl: ctl, obj: ptr}
}

// Make constructs the value inside the control block itself, so block
// and value share a single allocation.
func Make[T any](v T) Shared[T] {
	b := newObjectBlock(v)
	bindSelf[T](b, b.ptr)
	return Shared[T]{ctl: b, obj: b.ptr}
}

// Alias returns a handle that observes ptr while sharing src's control
// block, keeping src's whole value alive. An empty src yields an empty
// handle regardless of ptr. Aliasing never initializes ptr's
// self-reference; only the block's own value may hold that edge, or
// the weak count could never drain back to zero.
func Alias[T, U any](src *Shared[U], ptr *T) Shared[T] {
	if src == nil || src.ctl == nil {
		return Shared[T]{}
	}
	src.ctl.incStrong()
	return Shared[T]{ctl: src.ctl, obj: ptr}
}

// FromWeak promotes a weak observer to an owning handle. It fails with
// ErrExpired if the target was already destroyed.
func FromWeak[T any](w *Weak[T]) (Shared[T], error) {
	if w == nil || w.ctl == nil {
		return Shared[T]{}, errors.EmptyHandle(errors.OpPromote)
	}
	if w.ctl.strong() == 0 {
		return Shared[T]{}, errors.Expired(errors.OpPromote)
	}
	w.ctl.incStrong()
	return Shared[T]{ctl: w.ctl, obj: w.obj}, nil
}

// Clone returns a new handle sharing ownership with s. Cloning does
// not touch the self-reference; s may be an aliased handle whose
// observed pointer is not the block's value.
func (s *Shared[T]) Clone() Shared[T] {
	if s.ctl == nil {
		return Shared[T]{}
	}
	s.ctl.incStrong()
	return Shared[T]{ctl: s.ctl, obj: s.obj}
}

// Move transfers ownership to the returned handle and empties s. Use
// counts do not change.
func (s *Shared[T]) Move() Shared[T] {
	out := Shared[T]{ctl: s.ctl, obj: s.obj}
	s.ctl, s.obj = nil, nil
	return out
}

// Assign releases s's current ownership and makes it share other's.
// Assigning a handle to itself is a no-op.
func (s *Shared[T]) Assign(other *Shared[T]) {
	if s == other {
		return
	}
	if other.ctl != nil {
		other.ctl.incStrong()
	}
	if s.ctl != nil {
		s.ctl.decStrong()
	}
	s.ctl, s.obj = other.ctl, other.obj
}

// Release drops s's ownership. On the last release the value is
// destroyed; the block is freed too once no weak observers remain.
// Releasing an empty handle is a no-op, so moved-from handles are
// safe to release again.
func (s *Shared[T]) Release() {
	if s.ctl != nil {
		s.ctl.decStrong()
	}
	s.ctl, s.obj = nil, nil
}

// Reset is Release under the name the pointer family uses.
func (s *Shared[T]) Reset() {
	s.Release()
}

// ResetTo releases current ownership and adopts ptr into a fresh
// separate-allocation block. Weak observers of the old value are
// unaffected by the new one.
func (s *Shared[T]) ResetTo(ptr *T) {
	if s.ctl != nil {
		s.ctl.decStrong()
	}
	if ptr == nil {
		s.ctl, s.obj = nil, nil
		return
	}
	s.ctl = newPtrBlock(ptr)
	s.obj = ptr
}

// Swap exchanges the contents of two handles without touching counts.
func (s *Shared[T]) Swap(other *Shared[T]) {
	s.ctl, other.ctl = other.ctl, s.ctl
	s.obj, other.obj = other.obj, s.obj
}

// Get returns the observed pointer, nil for an empty handle.
func (s *Shared[T]) Get() *T {
	return s.obj
}

// Deref returns the observed value. It panics on an empty handle.
func (s *Shared[T]) Deref() T {
	return *s.obj
}

// UseCount reports the number of strong owners sharing s's block.
func (s *Shared[T]) UseCount() int {
	if s.ctl == nil {
		return 0
	}
	return int(s.ctl.strong())
}

// IsNil reports whether the handle observes nothing.
func (s *Shared[T]) IsNil() bool {
	return s.obj == nil
}

// Same reports whether two handles observe the same value.
func (s *Shared[T]) Same(other *Shared[T]) bool {
	return s.obj == other.obj
}

// bindSelf lazily initializes the value's self-reference when the
// managed type embeds SelfRef. Re-binding against the same block is
// idempotent.
func bindSelf[T any](ctl control, obj *T) {
	if obj == nil || ctl == nil {
		return
	}
	if sb, ok := any(obj).(selfBinder); ok {
		sb.bindSelf(ctl, obj)
	}
}
