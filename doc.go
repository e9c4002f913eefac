// Package lifetime provides reference-counted and unique-ownership
// handle primitives for managing resource lifetimes explicitly.
//
// Go's garbage collector reclaims memory, but it says nothing about
// when a resource's destructor runs. This library manages that: a
// value wrapped in a handle has its Drop method called exactly once,
// at a deterministic point, under one of three ownership disciplines.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	lifetime/       Root package with the Dropper destructor protocol
//	├── shared/     Shared/Weak reference-counted handles and control blocks
//	├── unique/     Exclusive-ownership handles with custom deleters
//	├── intrusive/  Reference count embedded in the managed value
//	├── track/      Lifecycle registry for leak detection and debugging
//	└── errors/     Structured error types for handle operations
//
// # Quick Start
//
// Shared ownership with a weak observer:
//
//	s := shared.Make(Conn{fd: fd})
//	w := shared.Downgrade(&s)
//
//	s2 := s.Clone()     // use count 2
//	s.Release()         // use count 1
//	s2.Release()        // Conn.Drop runs here
//
//	if _, err := w.TryLock(); err != nil {
//	    // observer sees the expired target
//	}
//
// Exclusive ownership:
//
//	u := unique.New(&file)
//	u2 := u.Move()      // transfer; u is now empty
//	u2.Reset()          // file.Drop runs here
//
// # Destructors
//
// A value opts into destruction by implementing Dropper. Values
// without a Drop method are still counted and released on time; there
// is simply nothing to run.
//
// # Thread Safety
//
// Counters are not atomic. A group of handles sharing one control
// block must be manipulated from a single goroutine, or access must
// be synchronized externally. The track.Registry is safe for
// concurrent use.
package lifetime
