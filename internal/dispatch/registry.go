package dispatch

// entry pairs a listener's identity handle with the callback resolved for the
// owning phase. The handle is what Unregister matches against; the resolved
// func avoids a type switch per invocation.
type entry struct {
	handle Listener
	call   func()
}

// registry holds one phase's live and pending listener lists. Deferred add,
// immediate remove: pending entries join the live list only at the merge point
// at the end of an advance, removals take effect on the spot. Single-goroutine
// access only (frame loop).
type registry struct {
	live    []entry
	pending []entry
	scratch []entry // reused advance snapshot
}

// contains reports whether the handle is present in the live or pending list.
func (r *registry) contains(h Listener) bool {
	for i := range r.live {
		if r.live[i].handle == h {
			return true
		}
	}
	for i := range r.pending {
		if r.pending[i].handle == h {
			return true
		}
	}
	return false
}

// inLive reports whether the handle is still in the live list. Used during an
// advance to skip snapshot entries removed by an earlier callback.
func (r *registry) inLive(h Listener) bool {
	for i := range r.live {
		if r.live[i].handle == h {
			return true
		}
	}
	return false
}

func (r *registry) add(h Listener, call func()) bool {
	if r.contains(h) {
		return false
	}
	r.pending = append(r.pending, entry{handle: h, call: call})
	return true
}

// remove drops the handle from whichever list holds it. Removing from pending
// cancels a registration that has not been admitted yet.
func (r *registry) remove(h Listener) bool {
	for i := range r.live {
		if r.live[i].handle == h {
			r.live = append(r.live[:i], r.live[i+1:]...)
			return true
		}
	}
	for i := range r.pending {
		if r.pending[i].handle == h {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return true
		}
	}
	return false
}

// advance invokes every live listener exactly once, most recently admitted
// first. There are two merge points: pending entries queued since the last
// advance are admitted up front, so a listener registered between advances is
// invoked on the very next one, and entries queued by callbacks during the
// walk are admitted at the end, so they wait one advance. The pending list is
// therefore always empty between advances.
//
// Iteration runs over a snapshot of the live list, so a callback may call
// remove for any listener — itself, one not yet visited, one already visited —
// without disturbing the walk. A snapshot entry that was removed before its
// turn is skipped via the inLive check; everything else in the snapshot is
// invoked exactly once. The snapshot buffer is reused across advances, so a
// callback must not re-entrantly call advance for the same phase.
func (r *registry) advance() {
	r.merge()
	r.scratch = append(r.scratch[:0], r.live...)
	for i := len(r.scratch) - 1; i >= 0; i-- {
		e := r.scratch[i]
		if !r.inLive(e.handle) {
			continue
		}
		e.call()
	}
	r.merge()
}

// merge admits the pending list into the live list in queue order.
func (r *registry) merge() {
	if len(r.pending) == 0 {
		return
	}
	r.live = append(r.live, r.pending...)
	r.pending = r.pending[:0]
}

func (r *registry) liveCount() int    { return len(r.live) }
func (r *registry) pendingCount() int { return len(r.pending) }
