package shared

import (
	"github.com/wippyai/lifetime/errors"
)

// SelfRef lets a managed value manufacture handles to itself from its
// own methods. Embed it with the enclosing type as the parameter:
//
//	type Session struct {
//	    shared.SelfRef[Session]
//	    ...
//	}
//
// The internal weak edge is bound the first time the value becomes
// reachable through any Shared construction path and stays bound to
// that control block for the value's whole life.
type SelfRef[T any] struct {
	self Weak[T]
}

// selfBinder is satisfied by any *V whose V embeds SelfRef. The obj
// argument carries the typed pointer the mixin re-asserts.
type selfBinder interface {
	bindSelf(ctl control, obj any)
}

// selfReleaser is the teardown half, called during value destruction.
type selfReleaser interface {
	releaseSelf()
}

func (r *SelfRef[T]) bindSelf(ctl control, obj any) {
	if r.self.ctl != nil {
		// Already bound; later copies share the same block.
		return
	}
	ptr, ok := obj.(*T)
	if !ok || ptr == nil {
		return
	}
	ctl.incWeak()
	r.self = Weak[T]{ctl: ctl, obj: ptr}
}

// releaseSelf drops the internal weak edge without the free check.
// It runs inside the strong count's zero transition, where the normal
// weak release would race the free check already in progress.
func (r *SelfRef[T]) releaseSelf() {
	if r.self.ctl == nil {
		return
	}
	r.self.ctl.forceDecWeak()
	r.self = Weak[T]{}
}

// SharedFromThis returns a new owning handle to the value. It fails
// with ErrUnbound if the value was never placed under a Shared handle,
// and with ErrExpired if it is already being destroyed.
func (r *SelfRef[T]) SharedFromThis() (Shared[T], error) {
	if r.self.ctl == nil {
		return Shared[T]{}, errors.Unbound(errors.OpSelfRef)
	}
	if r.self.ctl.strong() == 0 {
		return Shared[T]{}, errors.Expired(errors.OpSelfRef)
	}
	r.self.ctl.incStrong()
	return Shared[T]{ctl: r.self.ctl, obj: r.self.obj}, nil
}

// WeakFromThis returns a new weak observer of the value. It never
// fails; for an unbound value the result is simply an empty (expired)
// handle.
func (r *SelfRef[T]) WeakFromThis() Weak[T] {
	return r.self.Clone()
}
