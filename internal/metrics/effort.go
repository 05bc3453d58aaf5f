package metrics

import (
	"math"

	"github.com/san-kum/orbsim/internal/trajectory"
)

// ThrustEffort is the mean absolute thrust plus angular-thrust level the
// vehicle commanded over the run.
type ThrustEffort struct {
	name     string
	thruster *trajectory.Thruster
	sum      float64
	samples  int
}

func NewThrustEffort(th *trajectory.Thruster) *ThrustEffort {
	return &ThrustEffort{
		name:     "thrust_effort",
		thruster: th,
	}
}

func (c *ThrustEffort) Name() string {
	return c.name
}

func (c *ThrustEffort) Observe(_ trajectory.Snapshot, second int) {
	if c.thruster == nil {
		return
	}
	c.sum += math.Abs(c.thruster.ThrustLevel(second)) + math.Abs(c.thruster.AngularLevel(second))
	c.samples++
}

func (c *ThrustEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ThrustEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(s trajectory.Snapshot, _ int) {
	m.max = math.Max(m.max, s.Speed())
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }
