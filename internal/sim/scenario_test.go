package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/trajectory"
	"github.com/san-kum/orbsim/internal/vmath"
)

func runPreset(name string) (*config.Config, *sim.Result) {
	cfg := config.GetPreset(name)
	Expect(cfg).NotTo(BeNil())

	vehicle, planets, err := cfg.Build()
	Expect(err).NotTo(HaveOccurred())

	s := sim.New(vehicle, planets)
	s.AddMetric(metrics.NewMaxSpeed())
	s.AddMetric(metrics.NewClosestApproach(planets))

	result, err := s.Run(context.Background(), sim.Config{Steps: cfg.Steps, StopOnCollision: cfg.StopOnCollision})
	Expect(err).NotTo(HaveOccurred())
	return cfg, result
}

var _ = Describe("Scenarios", func() {
	Describe("ascent", func() {
		var (
			cfg    *config.Config
			result *sim.Result
		)

		BeforeEach(func() {
			cfg, result = runPreset("ascent")
		})

		It("records the seed plus one snapshot per second", func() {
			Expect(result.StepsTaken).To(Equal(cfg.Steps))
			Expect(result.Vehicle.Len()).To(Equal(cfg.Steps + 1))
		})

		It("speeds up every second", func() {
			history := result.Vehicle.History()
			for i := 1; i < len(history); i++ {
				Expect(history[i].Speed()).To(BeNumerically(">", history[i-1].Speed()))
			}
			Expect(result.Metrics["max_speed"]).To(Equal(result.Final().Speed()))
		})

		It("flies along the initial 45° heading", func() {
			start := result.Vehicle.History()[0].Position
			Expect(vmath.AngleOf(r2.Sub(result.Final().Position, start))).To(BeNumerically("~", 45, 1e-6))
		})

		It("answers interpolated queries between samples", func() {
			a, err := result.Vehicle.PositionAt(3, false)
			Expect(err).NotTo(HaveOccurred())
			b, err := result.Vehicle.PositionAt(4, false)
			Expect(err).NotTo(HaveOccurred())

			mid, err := result.Vehicle.SnapshotAt(3, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(mid.Position).To(Equal(a))
			Expect(b.Y).To(BeNumerically(">", a.Y))
		})
	})

	Describe("landing", func() {
		It("comes to rest on the surface and stops", func() {
			_, result := runPreset("landing")

			Expect(result.Stopped).To(BeTrue())
			Expect(result.Collisions).To(HaveLen(1))
			Expect(result.Collisions[0].Target).To(Equal("earth"))

			earth := result.Planets[0]
			final := result.Final()
			Expect(vmath.Distance(final.Position, earth.Current().Position)).To(BeNumerically("~", earth.Radius(), 1e-3))
			Expect(final.Velocity).To(Equal(earth.Current().Velocity))
			Expect(result.Metrics["closest_approach"]).To(BeNumerically("<", 1e-3))
		})
	})

	Describe("moon", func() {
		It("feels a recorded, moving moon", func() {
			_, result := runPreset("moon")

			moon := result.Planets[1]
			Expect(moon.Len()).To(Equal(121))

			early, err := moon.PositionAt(0, true)
			Expect(err).NotTo(HaveOccurred())
			late, err := moon.PositionAt(120, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(late.X).To(BeNumerically("<", early.X))
			Expect(result.StepsTaken).To(Equal(120))
		})
	})

	Describe("errors", func() {
		It("surfaces step failures with the failing body", func() {
			vehicle, planets, err := config.GetPreset("demo").Build()
			Expect(err).NotTo(HaveOccurred())

			_, err = sim.New(vehicle, append(planets, vehicle, mustDrifter())).Run(context.Background(), sim.Config{Steps: 2})
			Expect(err).To(MatchError(trajectory.ErrNotCelestial))

			var stepErr *trajectory.StepError
			Expect(err).To(BeAssignableToTypeOf(stepErr))
		})
	})
})

func mustDrifter() *trajectory.Body {
	b, err := trajectory.NewBody("drifter", trajectory.NewSnapshot(1, vmath.Zero, vmath.Zero, 0, 0), trajectory.DefaultConfig())
	Expect(err).NotTo(HaveOccurred())
	return b
}
