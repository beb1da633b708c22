package component

// Lane is one of the three lateral positions the actor can occupy.
type Lane int

const (
	LaneLeft Lane = iota
	LaneCenter
	LaneRight

	laneCount = 3
)

func (l Lane) Valid() bool {
	return l >= LaneLeft && l <= LaneRight
}

func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneCenter:
		return "center"
	case LaneRight:
		return "right"
	}
	return "invalid"
}

// ParseLane maps a prefab lane name, defaulting to the center lane.
func ParseLane(s string) Lane {
	switch s {
	case "left":
		return LaneLeft
	case "right":
		return LaneRight
	}
	return LaneCenter
}

// LaneTracker holds the lane the actor is heading to and the lane it is
// nearest to right now. Moves past either edge are no-ops.
type LaneTracker struct {
	Offsets [laneCount]float64
	Current Lane
	Target  Lane
}

var LaneTrackerComponent = NewComponent[LaneTracker]()

// NewLaneTracker builds a tracker from three X offsets ordered left, center,
// right.
func NewLaneTracker(offsets []float64, start Lane) *LaneTracker {
	t := &LaneTracker{Current: start, Target: start}
	copy(t.Offsets[:], offsets)
	if !start.Valid() {
		t.Current, t.Target = LaneCenter, LaneCenter
	}
	return t
}

// MoveLeft shifts the target one lane left and reports whether it moved.
func (t *LaneTracker) MoveLeft() bool {
	if t == nil || t.Target <= LaneLeft {
		return false
	}
	t.Target--
	return true
}

// MoveRight shifts the target one lane right and reports whether it moved.
func (t *LaneTracker) MoveRight() bool {
	if t == nil || t.Target >= LaneRight {
		return false
	}
	t.Target++
	return true
}

func (t *LaneTracker) Offset(l Lane) float64 {
	if t == nil || !l.Valid() {
		return 0
	}
	return t.Offsets[l]
}

func (t *LaneTracker) TargetOffset() float64 {
	return t.Offset(t.Target)
}

// Nearest returns the lane whose offset is closest to x.
func (t *LaneTracker) Nearest(x float64) Lane {
	best := LaneCenter
	bestDist := -1.0
	for l := LaneLeft; l <= LaneRight; l++ {
		d := t.Offsets[l] - x
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}
