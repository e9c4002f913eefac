package intrusive

import (
	"testing"
)

type buffer struct {
	RefCounted
	drops *int
	v     int
}

func (b *buffer) Drop() {
	*b.drops++
}

func TestPtr_Lifecycle(t *testing.T) {
	drops := 0
	p := Adopt(&buffer{v: 1, drops: &drops})

	if p.UseCount() != 1 || p.Get().v != 1 {
		t.Fatal("adopt should take the first reference")
	}

	q := p.Clone()
	if p.UseCount() != 2 || !p.Same(&q) {
		t.Fatal("clone should share the reference")
	}

	p.Release()
	if drops != 0 || q.UseCount() != 1 {
		t.Fatal("value destroyed while a reference remains")
	}

	q.Release()
	if drops != 1 {
		t.Fatalf("expected exactly one destruction, got %d", drops)
	}
}

func TestPtr_Move(t *testing.T) {
	drops := 0
	p := Adopt(&buffer{drops: &drops})
	q := p.Move()

	if !p.IsNil() || p.UseCount() != 0 {
		t.Fatal("moved-from handle should be empty")
	}
	if q.UseCount() != 1 {
		t.Fatal("move must not change the count")
	}

	p.Release() // no-op
	q.Release()
	if drops != 1 {
		t.Fatalf("expected exactly one destruction, got %d", drops)
	}
}

func TestPtr_Assign(t *testing.T) {
	aDrops, bDrops := 0, 0
	a := Adopt(&buffer{v: 1, drops: &aDrops})
	b := Adopt(&buffer{v: 2, drops: &bDrops})

	a.Assign(&b)
	if aDrops != 1 {
		t.Fatal("assignment should release the previous value")
	}
	if a.UseCount() != 2 || a.Get().v != 2 {
		t.Fatal("assignment should share the source's value")
	}

	a.Assign(&a)
	if a.UseCount() != 2 {
		t.Fatal("self-assignment must not change the count")
	}

	a.Release()
	b.Release()
	if bDrops != 1 {
		t.Fatalf("expected exactly one destruction, got %d", bDrops)
	}
}

func TestPtr_ResetTo(t *testing.T) {
	drops := 0
	p := Adopt(&buffer{v: 1, drops: &drops})
	p.ResetTo(&buffer{v: 2, drops: &drops})

	if drops != 1 {
		t.Fatal("reset should destroy the previous value")
	}
	if p.UseCount() != 1 || p.Get().v != 2 {
		t.Fatal("handle should reference the new value")
	}

	p.Release()
	if drops != 2 {
		t.Fatalf("expected both values destroyed, got %d", drops)
	}
}

func TestPtr_Swap(t *testing.T) {
	drops := 0
	a := Adopt(&buffer{v: 1, drops: &drops})
	b := Adopt(&buffer{v: 2, drops: &drops})

	a.Swap(&b)
	if a.Get().v != 2 || b.Get().v != 1 {
		t.Fatal("swap should exchange referenced values")
	}
	if a.UseCount() != 1 || b.UseCount() != 1 {
		t.Fatal("swap must not change counts")
	}

	a.Release()
	b.Release()
}

func TestPtr_SharedObjectAcrossHandles(t *testing.T) {
	// The counter lives in the object: independently adopted handles
	// still coordinate.
	drops := 0
	obj := &buffer{drops: &drops}

	p := Adopt(obj)
	q := Adopt(obj)
	if p.UseCount() != 2 || q.UseCount() != 2 {
		t.Fatal("independent adoption should share the object's counter")
	}

	p.Release()
	q.Release()
	if drops != 1 {
		t.Fatalf("expected exactly one destruction, got %d", drops)
	}
}

func TestPtr_Empty(t *testing.T) {
	var p Ptr[*buffer]
	if !p.IsNil() || p.UseCount() != 0 {
		t.Fatal("zero handle should be empty")
	}
	p.Release() // no-op
	q := p.Clone()
	if !q.IsNil() {
		t.Fatal("clone of an empty handle should be empty")
	}
}

func TestRefCounted_UnderflowPanics(t *testing.T) {
	var r RefCounted
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on counter underflow")
		}
	}()
	r.DecRef()
}

func TestAdopt_Nil(t *testing.T) {
	p := Adopt[*buffer](nil)
	if !p.IsNil() {
		t.Fatal("adopting nil should yield an empty handle")
	}
}
