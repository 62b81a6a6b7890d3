package loop

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/framehost/engine/internal/config"
	"github.com/framehost/engine/internal/dispatch"
)

type recorder struct {
	name    string
	journal *[]string
}

func (r *recorder) OnUpdate()      { *r.journal = append(*r.journal, r.name) }
func (r *recorder) OnPhysicsStep() { *r.journal = append(*r.journal, r.name) }
func (r *recorder) OnLateUpdate()  { *r.journal = append(*r.journal, r.name) }

func newRig(t *testing.T, cfg config.LoopConfig) (*Runner, *[]string) {
	t.Helper()
	d := dispatch.New(nil)
	var journal []string
	d.Register(dispatch.Update, &recorder{name: "U", journal: &journal})
	d.Register(dispatch.Physics, &recorder{name: "P", journal: &journal})
	d.Register(dispatch.LateUpdate, &recorder{name: "L", journal: &journal})
	return NewRunner(d, cfg, nil), &journal
}

func TestStepPhaseOrder(t *testing.T) {
	r, journal := newRig(t, config.LoopConfig{
		FrameRate:        16 * time.Millisecond,
		FixedStep:        10 * time.Millisecond,
		MaxStepsPerFrame: 5,
	})

	// 25ms buys two 10ms physics steps; 5ms stays in the accumulator.
	r.Step(25 * time.Millisecond)
	if got := strings.Join(*journal, " "); got != "U P P L" {
		t.Fatalf("frame 1 = %q, want %q", got, "U P P L")
	}

	// Carried 5ms + 5ms = one more step.
	*journal = (*journal)[:0]
	r.Step(5 * time.Millisecond)
	if got := strings.Join(*journal, " "); got != "U P L" {
		t.Errorf("frame 2 = %q, want %q", got, "U P L")
	}

	if r.Frames() != 2 || r.PhysicsSteps() != 3 {
		t.Errorf("frames=%d steps=%d, want 2/3", r.Frames(), r.PhysicsSteps())
	}
}

func TestStepWithoutEnoughBudgetSkipsPhysics(t *testing.T) {
	r, journal := newRig(t, config.LoopConfig{
		FrameRate:        16 * time.Millisecond,
		FixedStep:        50 * time.Millisecond,
		MaxStepsPerFrame: 5,
	})
	for i := 0; i < 3; i++ {
		r.Step(10 * time.Millisecond)
	}
	// 30ms accumulated, fixed step is 50ms: update and late run every frame,
	// physics not once.
	if got := strings.Join(*journal, " "); got != "U L U L U L" {
		t.Fatalf("frames = %q, want %q", got, "U L U L U L")
	}
	if r.PhysicsSteps() != 0 {
		t.Errorf("physics steps = %d, want 0", r.PhysicsSteps())
	}
}

func TestCatchupClampDropsBacklog(t *testing.T) {
	r, journal := newRig(t, config.LoopConfig{
		FrameRate:        16 * time.Millisecond,
		FixedStep:        10 * time.Millisecond,
		MaxStepsPerFrame: 2,
	})

	// A 100ms stall owes 10 steps; the clamp allows 2 and discards the rest.
	r.Step(100 * time.Millisecond)
	if got := strings.Join(*journal, " "); got != "U P P L" {
		t.Fatalf("stalled frame = %q, want %q", got, "U P P L")
	}

	// Backlog was dropped, not deferred.
	*journal = (*journal)[:0]
	r.Step(0)
	if got := strings.Join(*journal, " "); got != "U L" {
		t.Errorf("frame after stall = %q, want %q", got, "U L")
	}
}

func TestNegativeDeltaTreatedAsZero(t *testing.T) {
	r, journal := newRig(t, config.LoopConfig{
		FrameRate:        16 * time.Millisecond,
		FixedStep:        10 * time.Millisecond,
		MaxStepsPerFrame: 5,
	})
	r.Step(-time.Second)
	if got := strings.Join(*journal, " "); got != "U L" {
		t.Errorf("negative-delta frame = %q, want %q", got, "U L")
	}
}

func TestRunReturnsOnCancelledContext(t *testing.T) {
	r, _ := newRig(t, config.LoopConfig{
		FrameRate:        time.Millisecond,
		FixedStep:        time.Millisecond,
		MaxStepsPerFrame: 1,
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
