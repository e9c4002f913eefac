package track

import (
	"github.com/wippyai/lifetime/shared"
)

// ID identifies a tracked control block. ID 0 is reserved and always
// invalid.
type ID uint64

// State is a tracked block's position in the two-stage release
// protocol.
type State uint8

const (
	// StateLive means the managed value has not been destroyed.
	StateLive State = iota
	// StateDestroyed means the value is gone but weak observers keep
	// the block reachable.
	StateDestroyed
	// StateFreed means both counters drained and the block is gone.
	StateFreed
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateDestroyed:
		return "destroyed"
	default:
		return "freed"
	}
}

// Record is a point-in-time view of one tracked block.
type Record struct {
	ID     ID
	Kind   shared.BlockKind
	State  State
	Strong uint32
	Weak   uint32
}

// Event types for block lifecycle notifications.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventCountChanged
	EventDestroyed
	EventFreed
)

// Event represents a block lifecycle event.
type Event struct {
	Record Record
	Type   EventType
}

// Observer receives notifications about block lifecycle events.
type Observer interface {
	OnBlockEvent(Event)
}

// Stats summarizes a registry's bookkeeping.
type Stats struct {
	// Allocated is the total number of blocks ever tracked.
	Allocated uint64
	// Live counts blocks whose value has not been destroyed.
	Live int
	// Destroyed counts blocks in the weak-observers-only stage.
	Destroyed int
	// Freed is the total number of fully released blocks.
	Freed uint64
}
