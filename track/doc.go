// Package track provides a lifecycle registry for control blocks:
// live/leak accounting, per-block counter snapshots, and observer
// fanout for lifecycle events.
//
// # Registry
//
// The Registry implements shared.Tracker. Install it before
// constructing handles:
//
//	reg := track.NewRegistry()
//	shared.SetTracker(reg)
//
//	s := shared.Make(conn)
//	reg.Live()   // 1
//	s.Release()
//	reg.Live()   // 0
//
// # Leak Detection
//
// Stats distinguishes blocks whose value was destroyed from blocks
// fully freed; anything still live at a checkpoint is a leak
// candidate:
//
//	st := reg.Stats()
//	if st.Live > 0 {
//	    reg.Each(func(r track.Record) bool {
//	        log.Printf("leaked block %d (%s) strong=%d weak=%d",
//	            r.ID, r.Kind, r.Strong, r.Weak)
//	        return true
//	    })
//	}
//
// # Observers
//
// Register observers to follow lifecycle events as they happen:
//
//	reg.Subscribe(obs)   // obs.OnBlockEvent(track.Event)
//	reg.Unsubscribe(obs)
//
// # Logging
//
// Lifecycle events are logged through a zap logger, no-op by default;
// configure it with track.SetLogger.
//
// The Registry is safe for concurrent use, unlike the handles it
// observes.
package track
