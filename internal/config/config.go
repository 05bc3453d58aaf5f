package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbsim/internal/keyframe"
	"github.com/san-kum/orbsim/internal/trajectory"
)

const (
	DefaultSteps            = 60
	DefaultSnapshotInterval = 1
	DefaultVehicleMass      = 10000.0
	DefaultVehicleLength    = 10.0
	DefaultAngle            = 45.0
	DefaultPlanetMass       = 7.5e20
	DefaultPlanetRadius     = 4000.0
	DefaultPlanetY          = -10000.0
)

// Vec is a YAML-friendly 2D vector.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) R2() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

// Config describes one scenario: a powered vehicle flying among planets.
type Config struct {
	Name             string         `yaml:"name"`
	Steps            int            `yaml:"steps"`
	SnapshotInterval int            `yaml:"snapshot_interval"`
	StopOnCollision  bool           `yaml:"stop_on_collision"`
	Constants        Constants      `yaml:"constants"`
	Vehicle          VehicleConfig  `yaml:"vehicle"`
	Planets          []PlanetConfig `yaml:"planets"`
}

type VehicleConfig struct {
	Name            string  `yaml:"name"`
	Mass            float64 `yaml:"mass"`
	Position        Vec     `yaml:"position"`
	Velocity        Vec     `yaml:"velocity"`
	Angle           float64 `yaml:"angle"`
	AngularVelocity float64 `yaml:"angular_velocity"`
	Length          float64 `yaml:"length"`
	ExhaustVelocity float64 `yaml:"exhaust_velocity"`
	FuelBurnRate    float64 `yaml:"fuel_burn_rate"`
	MaxTorque       float64 `yaml:"max_torque"`
	// Thrust and Angular are per-second levels; the *Keys forms take
	// precedence when set.
	Thrust      []float64      `yaml:"thrust"`
	ThrustKeys  []keyframe.Key `yaml:"thrust_keys"`
	Angular     []float64      `yaml:"angular"`
	AngularKeys []keyframe.Key `yaml:"angular_keys"`
}

type PlanetConfig struct {
	Name     string  `yaml:"name"`
	Mass     float64 `yaml:"mass"`
	Radius   float64 `yaml:"radius"`
	Position Vec     `yaml:"position"`
	Velocity Vec     `yaml:"velocity"`
	// Precompute steps the planet this many seconds under the pull of the
	// planets listed before it, giving it a recorded orbit.
	Precompute  int     `yaml:"precompute"`
	PhaseOffset float64 `yaml:"phase_offset"`
}

func DefaultConfig() *Config {
	consts := DefaultConstants()
	return &Config{
		Name:             "default",
		Steps:            DefaultSteps,
		SnapshotInterval: DefaultSnapshotInterval,
		Constants:        consts,
		Vehicle: VehicleConfig{
			Name:            "rocket",
			Mass:            DefaultVehicleMass,
			Angle:           DefaultAngle,
			Length:          DefaultVehicleLength,
			ExhaustVelocity: consts.ExhaustVelocity,
			FuelBurnRate:    consts.FuelBurnRate,
			MaxTorque:       consts.MaxTorque,
			Thrust:          []float64{0},
			Angular:         []float64{0},
		},
		Planets: []PlanetConfig{{
			Name:     "earth",
			Mass:     DefaultPlanetMass,
			Radius:   DefaultPlanetRadius,
			Position: Vec{Y: DefaultPlanetY},
		}},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the scenario-level settings. Body-level invariants are
// enforced by the trajectory constructors in Build.
func (c *Config) Validate() error {
	var errs []error
	if c.Steps <= 0 {
		errs = append(errs, fmt.Errorf("steps must be positive, got %d", c.Steps))
	}
	if c.SnapshotInterval < 1 {
		errs = append(errs, fmt.Errorf("snapshot_interval must be at least 1, got %d", c.SnapshotInterval))
	}
	names := make(map[string]bool, len(c.Planets)+1)
	names[c.Vehicle.Name] = true
	for _, p := range c.Planets {
		if names[p.Name] {
			errs = append(errs, fmt.Errorf("duplicate body name %q", p.Name))
		}
		names[p.Name] = true
		if p.Precompute < 0 {
			errs = append(errs, fmt.Errorf("planet %s: precompute must not be negative", p.Name))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) trajectoryConfig() trajectory.Config {
	return trajectory.Config{
		G:                c.Constants.G,
		SnapshotInterval: c.SnapshotInterval,
	}
}

// Profiles resolves the vehicle's thrust and angular keyframes.
func (v VehicleConfig) Profiles() ThrustProfiles {
	thrust := v.ThrustKeys
	if len(thrust) == 0 {
		thrust = keyframe.FromValues(v.Thrust)
	}
	angular := v.AngularKeys
	if len(angular) == 0 {
		angular = keyframe.FromValues(v.Angular)
	}
	return ThrustProfiles{Thrust: thrust, Angular: angular}
}

// ThrustProfiles are the resolved keyframes of a vehicle.
type ThrustProfiles struct {
	Thrust  []keyframe.Key
	Angular []keyframe.Key
}

// Build creates the vehicle and planets. Planets with Precompute set are
// stepped, in order, against the planets listed before them.
func (c *Config) Build() (*trajectory.Body, []*trajectory.Body, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	tcfg := c.trajectoryConfig()

	planets := make([]*trajectory.Body, 0, len(c.Planets))
	for _, p := range c.Planets {
		pcfg := tcfg
		pcfg.PhaseOffset = p.PhaseOffset
		seed := trajectory.NewSnapshot(p.Mass, p.Position.R2(), p.Velocity.R2(), 0, 0)
		body, err := trajectory.NewCelestial(p.Name, seed, p.Radius, pcfg)
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < p.Precompute; i++ {
			if _, err := body.Step(planets); err != nil {
				return nil, nil, fmt.Errorf("precompute %s: %w", p.Name, err)
			}
		}
		planets = append(planets, body)
	}

	vehicle, err := c.BuildVehicle()
	if err != nil {
		return nil, nil, err
	}
	return vehicle, planets, nil
}

// BuildVehicle creates only the powered vehicle.
func (c *Config) BuildVehicle() (*trajectory.Body, error) {
	v := c.Vehicle
	profiles := v.Profiles()
	seed := trajectory.NewSnapshot(v.Mass, v.Position.R2(), v.Velocity.R2(), v.Angle, v.AngularVelocity)
	return trajectory.NewThrustBody(v.Name, seed, trajectory.ThrustParams{
		ThrustKeys:      profiles.Thrust,
		AngularKeys:     profiles.Angular,
		Length:          v.Length,
		ExhaustVelocity: v.ExhaustVelocity,
		FuelBurnRate:    v.FuelBurnRate,
		MaxTorque:       v.MaxTorque,
	}, c.trajectoryConfig())
}

// ScaleThrust returns a copy of the scenario with every thrust level
// multiplied by k. The angular profile is left alone.
func (c *Config) ScaleThrust(k float64) *Config {
	out := *c
	out.Planets = append([]PlanetConfig(nil), c.Planets...)
	out.Vehicle.Thrust = make([]float64, len(c.Vehicle.Thrust))
	for i, v := range c.Vehicle.Thrust {
		out.Vehicle.Thrust[i] = v * k
	}
	out.Vehicle.ThrustKeys = nil
	for _, key := range c.Vehicle.ThrustKeys {
		out.Vehicle.ThrustKeys = append(out.Vehicle.ThrustKeys, keyframe.Key{Time: key.Time, Value: key.Value * k})
	}
	return &out
}
