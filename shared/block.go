package shared

import (
	"go.uber.org/zap"

	"github.com/wippyai/lifetime"
)

// BlockKind identifies a control block's allocation strategy.
type BlockKind uint8

const (
	// KindSeparate wraps a value allocated independently of the block.
	KindSeparate BlockKind = iota
	// KindCoAllocated stores the value inline in the block allocation.
	KindCoAllocated
)

func (k BlockKind) String() string {
	if k == KindCoAllocated {
		return "co-allocated"
	}
	return "separate"
}

// control is the capability set every control block variant provides.
// Handles never touch storage directly; all lifetime decisions route
// through these methods.
type control interface {
	incStrong()
	decStrong()
	incWeak()
	decWeak()

	// forceDecWeak decrements the weak count without the free check.
	// Used only by self-reference teardown, which runs inside
	// decStrong's own zero transition; the ordinary decWeak would
	// re-enter the free check mid-release.
	forceDecWeak()

	strong() uint32
}

// counters carries the state common to both block variants.
type counters struct {
	tr          Tracker
	trackID     uint64
	strongCount uint32
	weakCount   uint32
	destroying  bool
	freed       bool
}

// allocated initializes the counters for a fresh block. A new block
// always starts with one strong owner.
func (c *counters) allocated(kind BlockKind) {
	c.strongCount = 1
	c.tr = tracker
	if c.tr != nil {
		c.trackID = c.tr.BlockAllocated(kind)
	}
	debugf("block %d: allocated (%s)", c.trackID, kind)
}

func (c *counters) incStrong() {
	c.strongCount++
	c.countChanged()
}

func (c *counters) incWeak() {
	c.weakCount++
	c.countChanged()
}

func (c *counters) forceDecWeak() {
	if c.weakCount == 0 {
		panic("shared: weak count underflow")
	}
	c.weakCount--
	c.countChanged()
}

func (c *counters) strong() uint32 {
	return c.strongCount
}

// decStrongCount decrements and reports whether the value must be
// destroyed. Underflow means a handle released a count it never held.
func (c *counters) decStrongCount() bool {
	if c.strongCount == 0 {
		panic("shared: strong count underflow")
	}
	c.strongCount--
	c.countChanged()
	return c.strongCount == 0
}

// decWeakCount decrements and reports whether the last observer is gone.
func (c *counters) decWeakCount() bool {
	if c.weakCount == 0 {
		panic("shared: weak count underflow")
	}
	c.weakCount--
	c.countChanged()
	return c.weakCount == 0
}

func (c *counters) countChanged() {
	if c.tr != nil {
		c.tr.CountChanged(c.trackID, c.strongCount, c.weakCount)
	}
}

func (c *counters) valueDestroyed() {
	Logger().Debug("value destroyed", zap.Uint64("block", c.trackID))
	if c.tr != nil {
		c.tr.ValueDestroyed(c.trackID)
	}
}

// freeBlock detaches the block. Nothing is deallocated here; the
// collector reclaims the memory once the last handle lets go. The
// event is what matters for leak accounting, and it must fire exactly
// once even when a weak release re-enters from inside Drop.
func (c *counters) freeBlock() {
	if c.freed {
		return
	}
	c.freed = true
	Logger().Debug("control block freed", zap.Uint64("block", c.trackID))
	if c.tr != nil {
		c.tr.BlockFreed(c.trackID)
	}
}

// destroyValue runs the value's destructor and tears down its
// self-reference. Drop runs first; the self edge goes last, through
// forceDecWeak, because this call is already inside the strong-count
// zero transition.
func destroyValue[T any](ptr *T) {
	if ptr == nil {
		return
	}
	lifetime.DropValue(ptr)
	if r, ok := any(ptr).(selfReleaser); ok {
		r.releaseSelf()
	}
}

// ptrBlock is the separate-allocation variant: it references a value
// the caller allocated independently.
type ptrBlock[T any] struct {
	counters
	ptr *T
}

func newPtrBlock[T any](ptr *T) *ptrBlock[T] {
	b := &ptrBlock[T]{ptr: ptr}
	b.allocated(KindSeparate)
	return b
}

func (b *ptrBlock[T]) decStrong() {
	if !b.decStrongCount() {
		return
	}
	ptr := b.ptr
	b.ptr = nil
	b.destroying = true
	destroyValue(ptr)
	b.destroying = false
	b.valueDestroyed()
	if b.weakCount == 0 {
		b.freeBlock()
	}
}

func (b *ptrBlock[T]) decWeak() {
	// While Drop runs, decStrong holds the free decision; a weak
	// release from inside it must not detach the block early.
	if b.decWeakCount() && b.strongCount == 0 && !b.destroying {
		b.freeBlock()
	}
}

// objectBlock is the co-allocated variant: block and value share one
// allocation. Destroying the value does not free the block; the block
// goes as a unit once the weak count drains too.
type objectBlock[T any] struct {
	counters
	val T
	ptr *T
}

func newObjectBlock[T any](v T) *objectBlock[T] {
	b := &objectBlock[T]{val: v}
	b.ptr = &b.val
	b.allocated(KindCoAllocated)
	return b
}

func (b *objectBlock[T]) decStrong() {
	if !b.decStrongCount() {
		return
	}
	ptr := b.ptr
	b.ptr = nil
	b.destroying = true
	destroyValue(ptr)
	b.destroying = false
	b.valueDestroyed()
	if b.weakCount == 0 {
		b.freeBlock()
	}
}

func (b *objectBlock[T]) decWeak() {
	if b.decWeakCount() && b.strongCount == 0 && !b.destroying {
		b.freeBlock()
	}
}
