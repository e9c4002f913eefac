package shared

// Weak is a non-owning observer of a managed value. It never extends
// the value's lifetime, only the control block's. The zero value is an
// empty handle.
type Weak[T any] struct {
	ctl control
	obj *T
}

// Downgrade derives a weak observer from a strong handle.
func Downgrade[T any](s *Shared[T]) Weak[T] {
	if s == nil || s.ctl == nil {
		return Weak[T]{}
	}
	s.ctl.incWeak()
	return Weak[T]{ctl: s.ctl, obj: s.obj}
}

// Clone returns a new observer of the same block.
func (w *Weak[T]) Clone() Weak[T] {
	if w.ctl == nil {
		return Weak[T]{}
	}
	w.ctl.incWeak()
	return Weak[T]{ctl: w.ctl, obj: w.obj}
}

// Move transfers the observation to the returned handle and empties w.
func (w *Weak[T]) Move() Weak[T] {
	out := Weak[T]{ctl: w.ctl, obj: w.obj}
	w.ctl, w.obj = nil, nil
	return out
}

// Assign releases w's current observation and makes it observe other's
// block. Assigning a handle to itself is a no-op.
func (w *Weak[T]) Assign(other *Weak[T]) {
	if w == other {
		return
	}
	if other.ctl != nil {
		other.ctl.incWeak()
	}
	if w.ctl != nil {
		w.ctl.decWeak()
	}
	w.ctl, w.obj = other.ctl, other.obj
}

// Observe releases w's current observation and points it at the value
// s owns.
func (w *Weak[T]) Observe(s *Shared[T]) {
	if s.ctl != nil {
		s.ctl.incWeak()
	}
	if w.ctl != nil {
		w.ctl.decWeak()
	}
	w.ctl, w.obj = s.ctl, s.obj
}

// Release ends the observation. The block is freed once both counters
// are drained. Releasing an empty handle is a no-op.
func (w *Weak[T]) Release() {
	if w.ctl != nil {
		w.ctl.decWeak()
	}
	w.ctl, w.obj = nil, nil
}

// Reset is Release under the name the pointer family uses.
func (w *Weak[T]) Reset() {
	w.Release()
}

// UseCount reports the number of strong owners of the observed block.
func (w *Weak[T]) UseCount() int {
	if w.ctl == nil {
		return 0
	}
	return int(w.ctl.strong())
}

// Expired reports whether the observed value has been destroyed. An
// empty handle is expired.
func (w *Weak[T]) Expired() bool {
	return w.UseCount() == 0
}

// Lock attempts promotion to an owning handle. It returns an empty
// handle if the target expired; it never dereferences a dead value.
func (w *Weak[T]) Lock() Shared[T] {
	if w.Expired() {
		return Shared[T]{}
	}
	w.ctl.incStrong()
	return Shared[T]{ctl: w.ctl, obj: w.obj}
}

// TryLock is Lock with an explicit failure: ErrExpired when the target
// is gone, an empty-handle error when w observes nothing.
func (w *Weak[T]) TryLock() (Shared[T], error) {
	return FromWeak(w)
}
