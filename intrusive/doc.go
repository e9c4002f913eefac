// Package intrusive provides reference counting where the counter
// lives inside the managed value itself: no side allocation, no
// control block, no weak form.
//
// A type opts in by embedding RefCounted:
//
//	type Buffer struct {
//	    intrusive.RefCounted
//	    data []byte
//	}
//
//	func (b *Buffer) Drop() { pool.Put(b.data) }
//
// Handles then manage the embedded counter:
//
//	p := intrusive.Adopt(&Buffer{data: make([]byte, 4096)})
//	q := p.Clone()   // count 2
//	p.Release()      // count 1
//	q.Release()      // Buffer.Drop runs here
//
// Destruction is triggered by the value's own counter reaching zero;
// the last Release runs the value's Drop method. Counters are not
// atomic; synchronize externally when handles cross goroutines.
package intrusive
