// Package shared provides reference-counted ownership handles with
// strong/weak semantics, modeled on the classic two-counter control
// block protocol.
//
// # Ownership Model
//
// Every managed value is owned by exactly one control block. The block
// holds two counters:
//
//	strong  - number of owning Shared handles; the value is live
//	          while strong > 0
//	weak    - number of observing Weak handles; does not affect the
//	          value's lifetime, only the block's
//
// Dropping the last strong reference destroys the value (its Drop
// method runs if it has one). The block itself stays reachable until
// the weak count also drains, so observers can still detect expiry.
//
// # Construction
//
// Two allocation strategies exist:
//
//	s := shared.Wrap(ptr)    // block references an existing value
//	s := shared.Make(value)  // value stored inline in the block
//
// Both yield handles with identical observable behavior.
//
// # Handles Are Not Plain Values
//
// Shared and Weak participate in reference counting through their
// methods. Duplicate a handle with Clone, transfer it with Move, and
// end it with Release; copying the struct directly bypasses the
// counters and corrupts the bookkeeping.
//
//	s2 := s.Clone()  // use count +1
//	s3 := s.Move()   // transfer; s becomes empty
//	s2.Release()     // use count -1
//
// # Weak Observation
//
//	w := shared.Downgrade(&s)
//	if t, err := w.TryLock(); err == nil {
//	    defer t.Release()
//	    use(t.Get())
//	}
//
// # Aliasing
//
// A handle may observe a sub-object while keeping a different value's
// control block alive:
//
//	field := shared.Alias(&whole, &whole.Get().Field)
//
// # Self Observation
//
// A value that needs to hand out handles to itself from its own
// methods embeds SelfRef:
//
//	type Node struct {
//	    shared.SelfRef[Node]
//	    ...
//	}
//
// Once the node is managed by any Shared handle, Node methods may call
// SharedFromThis or WeakFromThis.
//
// # Concurrency
//
// Counters are plain integers. Handles sharing one control block must
// be manipulated by a single goroutine or under external locking.
package shared
