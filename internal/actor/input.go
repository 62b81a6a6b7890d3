package actor

import "go.uber.org/zap"

// Command is one steering input for a mover.
type Command struct {
	VX, VY float64
}

// InputSampler applies queued commands to its mover at the top of each frame
// (update phase), before any physics step can observe a half-applied state.
// Queue and OnUpdate run on the same goroutine; the queue only decouples
// arrival order from frame boundaries.
type InputSampler struct {
	target *Mover
	queue  []Command
	log    *zap.Logger
}

func NewInputSampler(target *Mover, log *zap.Logger) *InputSampler {
	if log == nil {
		log = zap.NewNop()
	}
	return &InputSampler{target: target, log: log}
}

func (s *InputSampler) Queue(c Command) {
	s.queue = append(s.queue, c)
}

func (s *InputSampler) OnUpdate() {
	if len(s.queue) == 0 {
		return
	}
	// Later commands win within one frame.
	c := s.queue[len(s.queue)-1]
	s.target.VX = c.VX
	s.target.VY = c.VY
	s.log.Debug("input applied",
		zap.Int("queued", len(s.queue)),
		zap.Float64("vx", c.VX),
		zap.Float64("vy", c.VY))
	s.queue = s.queue[:0]
}
