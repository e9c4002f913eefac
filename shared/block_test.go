package shared

import (
	"errors"
	"testing"

	lferrors "github.com/wippyai/lifetime/errors"
)

// recordingTracker captures lifecycle notifications in order.
type recordingTracker struct {
	events []string
	next   uint64
}

func (r *recordingTracker) BlockAllocated(kind BlockKind) uint64 {
	r.next++
	r.events = append(r.events, "alloc:"+kind.String())
	return r.next
}

func (r *recordingTracker) CountChanged(id uint64, strong, weak uint32) {}

func (r *recordingTracker) ValueDestroyed(id uint64) {
	r.events = append(r.events, "destroy")
}

func (r *recordingTracker) BlockFreed(id uint64) {
	r.events = append(r.events, "free")
}

func (r *recordingTracker) last() string {
	if len(r.events) == 0 {
		return ""
	}
	return r.events[len(r.events)-1]
}

func withTracker(t *testing.T) *recordingTracker {
	t.Helper()
	rt := &recordingTracker{}
	SetTracker(rt)
	t.Cleanup(func() { SetTracker(nil) })
	return rt
}

func TestBlock_TwoStageRelease(t *testing.T) {
	// With an observer alive, the last strong release destroys the
	// value but must not free the block; the block goes only when the
	// weak count drains.
	rt := withTracker(t)
	drops := 0

	s := Wrap(&cell{drops: &drops})
	w := Downgrade(&s)

	s.Release()
	if rt.last() != "destroy" {
		t.Fatalf("expected destruction without free, events: %v", rt.events)
	}

	w.Release()
	if rt.last() != "free" {
		t.Fatalf("expected the block to free after the observer, events: %v", rt.events)
	}
}

func TestBlock_ImmediateFree(t *testing.T) {
	// No observers: destruction and free happen in the same release.
	rt := withTracker(t)
	drops := 0

	s := Make(cell{drops: &drops})
	s.Release()

	if len(rt.events) != 3 || rt.events[1] != "destroy" || rt.events[2] != "free" {
		t.Fatalf("expected alloc, destroy, free; got %v", rt.events)
	}
}

func TestBlock_KindReported(t *testing.T) {
	rt := withTracker(t)

	s1 := Wrap(&cell{v: 1, drops: new(int)})
	s2 := Make(cell{v: 2, drops: new(int)})

	if rt.events[0] != "alloc:separate" {
		t.Fatalf("expected a separate-allocation block, got %q", rt.events[0])
	}
	if rt.events[1] != "alloc:co-allocated" {
		t.Fatalf("expected a co-allocated block, got %q", rt.events[1])
	}

	s1.Release()
	s2.Release()
}

func TestBlock_WeakOnlyNeverDestroys(t *testing.T) {
	// Weak churn alone must not trigger destruction.
	rt := withTracker(t)
	drops := 0

	s := Wrap(&cell{drops: &drops})
	for i := 0; i < 8; i++ {
		w := Downgrade(&s)
		w2 := w.Clone()
		w2.Release()
		w.Release()
	}

	if drops != 0 {
		t.Fatal("weak handles destroyed the value")
	}
	for _, e := range rt.events {
		if e == "destroy" || e == "free" {
			t.Fatalf("unexpected lifecycle event during weak churn: %v", rt.events)
		}
	}

	s.Release()
	if drops != 1 {
		t.Fatalf("expected exactly one destruction, got %d", drops)
	}
}

// watcher releases its own weak observer while being destroyed.
type watcher struct {
	peer  Weak[watcher]
	drops *int
}

func (w *watcher) Drop() {
	*w.drops++
	w.peer.Release()
}

func TestBlock_WeakReleaseInsideDropFreesOnce(t *testing.T) {
	// Drop may release the last weak observer of its own block. The
	// free decision stays with the owning release in flight; the block
	// detaches exactly once, after the destroy event.
	rt := withTracker(t)
	drops := 0

	s := Wrap(&watcher{drops: &drops})
	s.Get().peer = Downgrade(&s)

	s.Release()
	if drops != 1 {
		t.Fatalf("expected exactly one destruction, got %d", drops)
	}

	want := []string{"alloc:separate", "destroy", "free"}
	if len(rt.events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, rt.events)
	}
	for i, e := range want {
		if rt.events[i] != e {
			t.Fatalf("expected events %v, got %v", want, rt.events)
		}
	}
}

// gadget embeds SelfRef; chassis carries one as a plain field.
type gadget struct {
	SelfRef[gadget]
	id int
}

type chassis struct {
	in    gadget
	drops *int
}

func (c *chassis) Drop() { *c.drops++ }

func TestBlock_AliasLeavesFieldSelfRefUnbound(t *testing.T) {
	// Aliasing into a field that embeds SelfRef must not wire a weak
	// edge into the parent's block; nothing would ever release that
	// edge and the block could never drain.
	rt := withTracker(t)
	drops := 0

	whole := Wrap(&chassis{in: gadget{id: 1}, drops: &drops})
	part := Alias(&whole, &whole.Get().in)
	extra := part.Clone()

	if _, err := part.Get().SharedFromThis(); !errors.Is(err, lferrors.ErrUnbound) {
		t.Fatalf("aliased field should stay unbound, got %v", err)
	}

	extra.Release()
	part.Release()
	whole.Release()

	if drops != 1 {
		t.Fatalf("expected exactly one destruction, got %d", drops)
	}
	if rt.last() != "free" {
		t.Fatalf("block never freed, events: %v", rt.events)
	}
}
