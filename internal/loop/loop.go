// Package loop is the host side of the dispatcher contract: a fixed-timestep
// frame loop that issues the three phase advances in order, once per frame,
// with the physics rate decoupled from the frame rate.
package loop

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/framehost/engine/internal/config"
	"github.com/framehost/engine/internal/dispatch"
)

// Runner drives one Dispatcher. Per frame: one update advance, zero or more
// physics advances paid for by the fixed-step accumulator, one late_update
// advance. Everything runs inline on the goroutine calling Run or Step.
type Runner struct {
	disp      *dispatch.Dispatcher
	frameRate time.Duration
	fixedStep time.Duration
	maxSteps  int
	log       *zap.Logger

	acc    time.Duration
	frames uint64
	steps  uint64
}

func NewRunner(d *dispatch.Dispatcher, cfg config.LoopConfig, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		disp:      d,
		frameRate: cfg.FrameRate,
		fixedStep: cfg.FixedStep,
		maxSteps:  cfg.MaxStepsPerFrame,
		log:       log,
	}
}

// Step advances one frame with the given wall-clock delta. Exposed so tests
// and headless tools can drive frames deterministically.
func (r *Runner) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	r.acc += dt

	r.disp.Advance(dispatch.Update)

	steps := 0
	for r.acc >= r.fixedStep {
		if steps >= r.maxSteps {
			// A long stall would otherwise demand an unbounded catch-up
			// burst; drop the backlog and let simulation time slip.
			r.log.Warn("physics backlog dropped",
				zap.Duration("backlog", r.acc),
				zap.Int("steps_run", steps))
			r.acc = 0
			break
		}
		r.disp.Advance(dispatch.Physics)
		r.acc -= r.fixedStep
		steps++
	}
	r.steps += uint64(steps)

	r.disp.Advance(dispatch.LateUpdate)
	r.frames++
}

// Run drives frames off a ticker until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.frameRate)
	defer ticker.Stop()

	r.log.Info("frame loop started",
		zap.Duration("frame_rate", r.frameRate),
		zap.Duration("fixed_step", r.fixedStep))

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("frame loop stopped",
				zap.Uint64("frames", r.frames),
				zap.Uint64("physics_steps", r.steps))
			return
		case now := <-ticker.C:
			r.Step(now.Sub(last))
			last = now
		}
	}
}

// Frames returns the number of completed frames.
func (r *Runner) Frames() uint64 { return r.frames }

// PhysicsSteps returns the total number of physics advances issued.
func (r *Runner) PhysicsSteps() uint64 { return r.steps }
