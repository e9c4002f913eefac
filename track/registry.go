package track

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/lifetime/shared"
)

// Registry tracks control-block lifecycles. It implements
// shared.Tracker and is safe for concurrent use.
type Registry struct {
	entries   []entry
	freeList  []ID
	observers []Observer
	allocated uint64
	freed     uint64
	mu        sync.RWMutex
	obsMu     sync.RWMutex
}

type entry struct {
	kind   shared.BlockKind
	state  State
	strong uint32
	weak   uint32
	valid  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make([]entry, 0, 64),
		freeList: make([]ID, 0, 16),
	}
}

// BlockAllocated records a new block and returns its id.
func (r *Registry) BlockAllocated(kind shared.BlockKind) uint64 {
	r.mu.Lock()

	e := entry{
		kind:   kind,
		state:  StateLive,
		strong: 1,
		valid:  true,
	}

	var id ID
	if len(r.freeList) > 0 {
		id = r.freeList[len(r.freeList)-1]
		r.freeList = r.freeList[:len(r.freeList)-1]
		r.entries[id-1] = e
	} else {
		r.entries = append(r.entries, e)
		id = ID(len(r.entries))
	}
	r.allocated++

	rec := r.record(id)
	r.mu.Unlock()

	logger().Debug("block allocated",
		zap.Uint64("id", uint64(id)),
		zap.String("kind", kind.String()))
	r.notify(Event{Type: EventAllocated, Record: rec})
	return uint64(id)
}

// CountChanged records the block's counters after a mutation.
func (r *Registry) CountChanged(id uint64, strong, weak uint32) {
	r.mu.Lock()
	e := r.lookup(ID(id))
	if e == nil {
		r.mu.Unlock()
		return
	}
	e.strong = strong
	e.weak = weak
	rec := r.record(ID(id))
	r.mu.Unlock()

	r.notify(Event{Type: EventCountChanged, Record: rec})
}

// ValueDestroyed marks the block's value as gone.
func (r *Registry) ValueDestroyed(id uint64) {
	r.mu.Lock()
	e := r.lookup(ID(id))
	if e == nil {
		r.mu.Unlock()
		return
	}
	e.state = StateDestroyed
	rec := r.record(ID(id))
	r.mu.Unlock()

	logger().Debug("value destroyed", zap.Uint64("id", id))
	r.notify(Event{Type: EventDestroyed, Record: rec})
}

// BlockFreed retires the block and recycles its id.
func (r *Registry) BlockFreed(id uint64) {
	r.mu.Lock()
	e := r.lookup(ID(id))
	if e == nil {
		r.mu.Unlock()
		return
	}
	e.state = StateFreed
	rec := r.record(ID(id))
	e.valid = false
	r.freeList = append(r.freeList, ID(id))
	r.freed++
	r.mu.Unlock()

	logger().Debug("block freed", zap.Uint64("id", id))
	r.notify(Event{Type: EventFreed, Record: rec})
}

// Get returns the record for a tracked block.
func (r *Registry) Get(id ID) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.lookup(id) == nil {
		return Record{}, false
	}
	return r.record(id), true
}

// Live counts blocks whose value has not been destroyed.
func (r *Registry) Live() int {
	return r.Stats().Live
}

// Stats summarizes the registry's bookkeeping.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Stats{Allocated: r.allocated, Freed: r.freed}
	for _, e := range r.entries {
		if !e.valid {
			continue
		}
		switch e.state {
		case StateLive:
			st.Live++
		case StateDestroyed:
			st.Destroyed++
		}
	}
	return st
}

// Each iterates over all tracked blocks that are not yet freed.
func (r *Registry) Each(fn func(Record) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].valid {
			if !fn(r.record(ID(i + 1))) {
				break
			}
		}
	}
}

// Snapshot returns records for all tracked blocks that are not yet
// freed, in allocation-slot order.
func (r *Registry) Snapshot() []Record {
	var out []Record
	r.Each(func(rec Record) bool {
		out = append(out, rec)
		return true
	})
	return out
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// lookup returns the entry for id, nil when id is unknown or retired.
// Callers hold mu.
func (r *Registry) lookup(id ID) *entry {
	if id == 0 || int(id) > len(r.entries) {
		return nil
	}
	e := &r.entries[id-1]
	if !e.valid {
		return nil
	}
	return e
}

// record builds a Record for a valid id. Callers hold mu.
func (r *Registry) record(id ID) Record {
	e := &r.entries[id-1]
	return Record{
		ID:     id,
		Kind:   e.kind,
		State:  e.state,
		Strong: e.strong,
		Weak:   e.weak,
	}
}

func (r *Registry) notify(ev Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnBlockEvent(ev)
	}
}
