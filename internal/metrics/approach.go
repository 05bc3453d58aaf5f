package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/trajectory"
	"github.com/san-kum/orbsim/internal/vmath"
)

// ClosestApproach is the lowest altitude above any planet's surface seen
// during the run. Zero means the vehicle touched down.
type ClosestApproach struct {
	name    string
	planets []*trajectory.Body
	min     float64
}

func NewClosestApproach(planets []*trajectory.Body) *ClosestApproach {
	return &ClosestApproach{
		name:    "closest_approach",
		planets: planets,
		min:     math.Inf(1),
	}
}

func (c *ClosestApproach) Name() string {
	return c.name
}

func (c *ClosestApproach) Observe(s trajectory.Snapshot, second int) {
	for _, p := range c.planets {
		center, err := p.PositionAt(second, false)
		if err != nil {
			continue
		}
		alt := vmath.Distance(s.Position, center) - p.Radius()
		c.min = math.Min(c.min, math.Max(alt, 0))
	}
}

// Value is +Inf when no planet was observed.
func (c *ClosestApproach) Value() float64 {
	return c.min
}

func (c *ClosestApproach) Reset() {
	c.min = math.Inf(1)
}

// Altitude reports the height of s above the nearest
// planet surface at second, and which planet that is.
func Altitude(s trajectory.Snapshot, planets []*trajectory.Body, second int) (float64, *trajectory.Body) {
	best, nearest := math.Inf(1), (*trajectory.Body)(nil)
	for _, p := range planets {
		center, err := p.PositionAt(second, false)
		if err != nil {
			continue
		}
		if alt := vmath.Distance(s.Position, center) - p.Radius(); alt < best {
			best, nearest = alt, p
		}
	}
	return best, nearest
}
