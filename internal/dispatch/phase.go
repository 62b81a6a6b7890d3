package dispatch

import "fmt"

// Phase identifies one of the three fixed per-frame dispatch points.
type Phase int

const (
	Update     Phase = iota // pre-physics logic
	Physics                 // fixed-rate simulation step
	LateUpdate              // post-physics logic
)

const phaseCount = 3

func (p Phase) String() string {
	switch p {
	case Update:
		return "update"
	case Physics:
		return "physics"
	case LateUpdate:
		return "late_update"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) valid() bool {
	return p >= Update && p < phaseCount
}

// ParsePhase maps a config/scene phase name to its Phase value.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "update":
		return Update, nil
	case "physics", "fixed_update":
		return Physics, nil
	case "late_update", "late":
		return LateUpdate, nil
	default:
		return 0, fmt.Errorf("unknown phase %q", s)
	}
}
