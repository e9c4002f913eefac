// Package unique provides exclusive-ownership handles: exactly one
// handle owns a value at a time, and ownership only ever transfers,
// never duplicates.
//
// # Basic Use
//
//	u := unique.New(&conn)
//	defer u.Reset()        // conn.Drop runs here
//
//	use(u.Get())
//
// # Transfer
//
//	u2 := u.Move()         // u is now empty
//	raw := u2.Release()    // give up ownership without destruction
//
// # Deleters
//
// The default deleter runs the value's Drop method when it has one.
// A custom deleter replaces that:
//
//	u := unique.NewWithDeleter(f, func(f *os.File) { f.Close() })
//
// # Slices
//
// Slice owns a whole backing array with indexed access:
//
//	s := unique.NewSlice(buf)
//	s.At(3).fill()
//	s.Reset()              // deleter sees the full slice once
//
// Handles must be moved, not copied; a struct copy would give two
// handles a claim on the same value and run its deleter twice.
package unique
