package actor

// CameraFollow trails a mover with exponential smoothing. Runs in late_update
// so it always sees the mover's final position for the frame.
type CameraFollow struct {
	X, Y   float64
	target *Mover
	lerp   float64 // 0..1 fraction closed per frame
}

func NewCameraFollow(target *Mover, lerp float64) *CameraFollow {
	return &CameraFollow{X: target.X, Y: target.Y, target: target, lerp: lerp}
}

func (c *CameraFollow) OnLateUpdate() {
	c.X += (c.target.X - c.X) * c.lerp
	c.Y += (c.target.Y - c.Y) * c.lerp
}
