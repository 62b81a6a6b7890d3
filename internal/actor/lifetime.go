package actor

import "github.com/framehost/engine/internal/dispatch"

// Lifetime retires a listener after a fixed number of frames: it counts
// update advances and then unregisters both the target and itself, from
// inside its own callback.
type Lifetime struct {
	disp      *dispatch.Dispatcher
	phase     dispatch.Phase
	target    dispatch.Listener
	remaining int
}

// NewLifetime removes target from phase after frames update advances.
func NewLifetime(d *dispatch.Dispatcher, phase dispatch.Phase, target dispatch.Listener, frames int) *Lifetime {
	return &Lifetime{disp: d, phase: phase, target: target, remaining: frames}
}

func (l *Lifetime) OnUpdate() {
	l.remaining--
	if l.remaining > 0 {
		return
	}
	l.disp.Unregister(l.phase, l.target)
	l.disp.Unregister(dispatch.Update, l)
}
