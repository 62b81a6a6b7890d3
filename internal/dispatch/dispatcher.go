// Package dispatch fans the host's per-frame phase advances out to registered
// listeners. One Dispatcher replaces per-object engine callbacks: objects
// register once here and the frame loop drives the whole set through three
// ordered phases (update, physics, late_update) per frame.
package dispatch

import "go.uber.org/zap"

// Listener is the opaque identity handle a participant registers under.
// Matching is by interface identity, so the exact value passed to Register
// must be passed to Unregister, and the dynamic type must be comparable
// (listeners are pointers in practice). The dispatcher never owns a listener;
// it only records membership.
type Listener any

// Updater receives the pre-physics callback once per update advance.
type Updater interface {
	OnUpdate()
}

// PhysicsStepper receives the fixed-rate simulation callback once per
// physics advance.
type PhysicsStepper interface {
	OnPhysicsStep()
}

// LateUpdater receives the post-physics callback once per late_update advance.
type LateUpdater interface {
	OnLateUpdate()
}

// Dispatcher owns three independent phase registries. It is an explicitly
// constructed value, not process state: tests and multiple loops each build
// their own. Single-goroutine access only (the host's frame loop thread).
//
// Callbacks run inline on the caller of Advance; a panic in a callback
// propagates to the host untouched.
type Dispatcher struct {
	regs [phaseCount]registry
	log  *zap.Logger
}

// New creates an empty dispatcher. log may be nil; it is used only for
// debug-level registration diagnostics, never on the dispatch path.
func New(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{log: log}
}

// Register queues l for admission to the phase's live list. A listener
// registered outside any advance is admitted at the start of the phase's next
// Advance and receives its first callback there; one registered from inside a
// callback is admitted at the merge point ending the in-flight advance and
// receives its first callback one advance later. Registering an already live
// or pending listener is a no-op.
//
// l must implement the phase's capability interface (Updater, PhysicsStepper
// or LateUpdater); a listener without it is ignored.
func (d *Dispatcher) Register(phase Phase, l Listener) {
	if !phase.valid() || l == nil {
		return
	}
	call := callbackFor(phase, l)
	if call == nil {
		d.log.Warn("listener lacks phase capability",
			zap.Stringer("phase", phase))
		return
	}
	if !d.regs[phase].add(l, call) {
		d.log.Debug("duplicate registration ignored",
			zap.Stringer("phase", phase))
	}
}

// Unregister removes l from the phase immediately: a live listener stops
// receiving callbacks as of now (safe to call from inside any callback,
// including l's own), and a still-pending listener is cancelled before its
// first callback. Unknown listeners are a silent no-op.
func (d *Dispatcher) Unregister(phase Phase, l Listener) {
	if !phase.valid() || l == nil {
		return
	}
	d.regs[phase].remove(l)
}

// Advance admits registrations queued since the last advance, invokes every
// live listener for the phase exactly once, most recently admitted first, and
// finally admits registrations made during the walk. The host calls this once
// per frame per phase, update before physics before late_update, with zero or
// more physics advances per frame at the host's fixed step rate. Advance must
// not be called re-entrantly for the same phase from inside a callback.
func (d *Dispatcher) Advance(phase Phase) {
	if !phase.valid() {
		return
	}
	d.regs[phase].advance()
}

// LiveCount returns the number of admitted listeners for the phase.
func (d *Dispatcher) LiveCount(phase Phase) int {
	if !phase.valid() {
		return 0
	}
	return d.regs[phase].liveCount()
}

// PendingCount returns the number of listeners awaiting admission.
func (d *Dispatcher) PendingCount(phase Phase) int {
	if !phase.valid() {
		return 0
	}
	return d.regs[phase].pendingCount()
}

func callbackFor(phase Phase, l Listener) func() {
	switch phase {
	case Update:
		if u, ok := l.(Updater); ok {
			return u.OnUpdate
		}
	case Physics:
		if p, ok := l.(PhysicsStepper); ok {
			return p.OnPhysicsStep
		}
	case LateUpdate:
		if u, ok := l.(LateUpdater); ok {
			return u.OnLateUpdate
		}
	}
	return nil
}
