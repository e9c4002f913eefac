package shared

// Tracker receives control-block lifecycle notifications. The track
// package provides an implementation with leak accounting and
// observer fanout; by default nothing is tracked.
type Tracker interface {
	// BlockAllocated reports a new control block and returns the id
	// used in subsequent notifications for the same block.
	BlockAllocated(kind BlockKind) uint64

	// CountChanged reports the counters after every increment or
	// decrement on the block.
	CountChanged(id uint64, strong, weak uint32)

	// ValueDestroyed reports that the managed value's destructor ran.
	ValueDestroyed(id uint64)

	// BlockFreed reports that both counters reached zero and the
	// block was detached.
	BlockFreed(id uint64)
}

var tracker Tracker

// SetTracker installs a lifecycle tracker for blocks constructed from
// this point on. Existing blocks keep the tracker they were born with.
// Pass nil to stop tracking.
func SetTracker(t Tracker) {
	tracker = t
}
