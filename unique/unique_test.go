package unique

import (
	"testing"
)

type resource struct {
	drops *int
	v     int
}

func (r *resource) Drop() {
	*r.drops++
}

func TestUnique_DefaultDeleter(t *testing.T) {
	drops := 0
	u := New(&resource{v: 1, drops: &drops})

	if u.IsNil() || u.Get().v != 1 || u.Deref().v != 1 {
		t.Fatal("fresh handle should own the value")
	}

	u.Reset()
	if drops != 1 {
		t.Fatalf("expected the default deleter to run Drop once, got %d", drops)
	}
	if !u.IsNil() {
		t.Fatal("handle should be empty after reset")
	}

	// Reset on an empty handle is a no-op.
	u.Reset()
	if drops != 1 {
		t.Fatal("reset of an empty handle ran the deleter")
	}
}

func TestUnique_CustomDeleter(t *testing.T) {
	calls := 0
	drops := 0
	u := NewWithDeleter(&resource{drops: &drops}, func(r *resource) {
		calls++
	})

	u.Reset()
	if calls != 1 {
		t.Fatalf("expected the custom deleter once, got %d", calls)
	}
	if drops != 0 {
		t.Fatal("custom deleter should replace Drop, not add to it")
	}
}

func TestUnique_Move(t *testing.T) {
	drops := 0
	u := New(&resource{v: 2, drops: &drops})
	u2 := u.Move()

	if !u.IsNil() {
		t.Fatal("moved-from handle should be empty")
	}
	if u2.Get().v != 2 {
		t.Fatal("move target should own the value")
	}

	u.Reset() // no-op
	if drops != 0 {
		t.Fatal("moved-from reset destroyed the value")
	}

	u2.Reset()
	if drops != 1 {
		t.Fatalf("expected exactly one destruction, got %d", drops)
	}
}

func TestUnique_MoveCarriesDeleter(t *testing.T) {
	calls := 0
	u := NewWithDeleter(&resource{drops: new(int)}, func(*resource) { calls++ })
	u2 := u.Move()
	u2.Reset()
	if calls != 1 {
		t.Fatal("deleter should travel with the value")
	}
}

func TestUnique_Release(t *testing.T) {
	drops := 0
	r := &resource{v: 3, drops: &drops}
	u := New(r)

	got := u.Release()
	if got != r {
		t.Fatal("release should hand back the original pointer")
	}
	if !u.IsNil() {
		t.Fatal("handle should be empty after release")
	}

	u.Reset()
	if drops != 0 {
		t.Fatal("released value must not be destroyed by the handle")
	}
}

func TestUnique_ResetTo(t *testing.T) {
	drops := 0
	u := New(&resource{v: 1, drops: &drops})
	u.ResetTo(&resource{v: 2, drops: &drops})

	if drops != 1 {
		t.Fatal("reset should destroy the previous value")
	}
	if u.Get().v != 2 {
		t.Fatal("handle should own the new value")
	}

	u.Reset()
	if drops != 2 {
		t.Fatalf("expected both values destroyed, got %d", drops)
	}
}

func TestUnique_Swap(t *testing.T) {
	aCalls, bCalls := 0, 0
	a := NewWithDeleter(&resource{v: 1, drops: new(int)}, func(*resource) { aCalls++ })
	b := NewWithDeleter(&resource{v: 2, drops: new(int)}, func(*resource) { bCalls++ })

	a.Swap(&b)
	if a.Get().v != 2 || b.Get().v != 1 {
		t.Fatal("swap should exchange owned values")
	}

	// Deleters travel with their values.
	a.Reset()
	if bCalls != 1 || aCalls != 0 {
		t.Fatal("swap should carry deleters along")
	}
	b.Reset()
	if aCalls != 1 {
		t.Fatal("original deleter lost in swap")
	}
}

func TestSlice_Lifecycle(t *testing.T) {
	drops := 0
	s := NewSlice([]resource{
		{v: 1, drops: &drops},
		{v: 2, drops: &drops},
		{v: 3, drops: &drops},
	})

	if s.Len() != 3 || s.At(1).v != 2 {
		t.Fatal("slice handle should expose indexed elements")
	}

	s.At(1).v = 20
	if s.Get()[1].v != 20 {
		t.Fatal("At should reference the backing array")
	}

	s.Reset()
	if drops != 3 {
		t.Fatalf("expected every element dropped, got %d", drops)
	}
	if !s.IsNil() || s.Len() != 0 {
		t.Fatal("handle should be empty after reset")
	}
}

func TestSlice_CustomDeleter(t *testing.T) {
	var seen int
	s := NewSliceWithDeleter(make([]resource, 4), func(rs []resource) {
		seen = len(rs)
	})

	s2 := s.Move()
	if !s.IsNil() || s2.Len() != 4 {
		t.Fatal("move should transfer the whole slice")
	}

	s2.Reset()
	if seen != 4 {
		t.Fatalf("deleter should see the full slice once, saw %d", seen)
	}
}

func TestSlice_Release(t *testing.T) {
	drops := 0
	backing := []resource{{drops: &drops}}
	s := NewSlice(backing)

	got := s.Release()
	if len(got) != 1 || &got[0] != &backing[0] {
		t.Fatal("release should hand back the original slice")
	}

	s.Reset()
	if drops != 0 {
		t.Fatal("released elements must not be destroyed by the handle")
	}
}
