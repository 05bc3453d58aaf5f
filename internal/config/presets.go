package config

import (
	"sort"

	"github.com/san-kum/orbsim/internal/keyframe"
)

// Presets are ready-made scenarios, selected with --preset.
var Presets = map[string]*Config{
	// the console demonstration: a gently rotating rocket near a
	// heavy planet, engines off
	"demo": {
		Name: "demo", Steps: 5, SnapshotInterval: 1, Constants: DefaultConstants(),
		Vehicle: VehicleConfig{
			Name: "rocket", Mass: 10000, Angle: 45, Length: 1,
			ExhaustVelocity: 1000, FuelBurnRate: 1000, MaxTorque: DefaultConstants().MaxTorque,
			Thrust:  []float64{0, 0, 0, 0, 0},
			Angular: []float64{0.1, 0.0, -0.2, 0.0, 0.1},
		},
		Planets: []PlanetConfig{
			{Name: "earth", Mass: 7.5e20, Radius: 4000, Position: Vec{Y: -10000}},
		},
	},
	"ascent": {
		Name: "ascent", Steps: 7, SnapshotInterval: 1, Constants: DefaultConstants(),
		Vehicle: VehicleConfig{
			Name: "rocket", Mass: 10000, Angle: 45, Length: 10, Position: Vec{Y: 50},
			ExhaustVelocity: DefaultConstants().ExhaustVelocity,
			FuelBurnRate:    DefaultConstants().FuelBurnRate,
			MaxTorque:       DefaultConstants().MaxTorque,
			Thrust:          []float64{1, 1, 1, 1, 1, 1, 1},
			Angular:         []float64{0, 0, 0, 0, 0, 0, 0},
		},
		Planets: []PlanetConfig{
			{Name: "earth", Mass: 10000, Radius: 500, Position: Vec{Y: -10000}},
		},
	},
	"landing": {
		Name: "landing", Steps: 60, SnapshotInterval: 1, StopOnCollision: true, Constants: DefaultConstants(),
		Vehicle: VehicleConfig{
			Name: "lander", Mass: 15000, Angle: -90, Length: 12,
			Position:        Vec{X: 40, Y: DefaultConstants().EarthRadius + 2000},
			Velocity:        Vec{X: 2, Y: -100},
			ExhaustVelocity: DefaultConstants().ExhaustVelocity,
			FuelBurnRate:    1,
			MaxTorque:       DefaultConstants().MaxTorque,
			Thrust:          []float64{0},
			Angular:         []float64{0},
		},
		Planets: []PlanetConfig{
			{Name: "earth", Mass: DefaultConstants().EarthMass, Radius: DefaultConstants().EarthRadius},
		},
	},
	"saturn-v": {
		Name: "saturn-v", Steps: 150, SnapshotInterval: 5, Constants: DefaultConstants(),
		Vehicle: VehicleConfig{
			Name: "saturn-v", Mass: DefaultConstants().SaturnVMass, Angle: 90,
			Length:          DefaultConstants().SaturnVLength,
			Position:        Vec{Y: DefaultConstants().EarthRadius + 1},
			ExhaustVelocity: DefaultConstants().ExhaustVelocity,
			FuelBurnRate:    DefaultConstants().FuelBurnRate,
			MaxTorque:       DefaultConstants().MaxTorque,
			ThrustKeys:      []keyframe.Key{{Time: 0, Value: 1}, {Time: 150, Value: 1}},
			AngularKeys:     []keyframe.Key{{Time: 0, Value: 0}, {Time: 10, Value: -0.002}, {Time: 20, Value: 0}},
		},
		Planets: []PlanetConfig{
			{Name: "earth", Mass: DefaultConstants().EarthMass, Radius: DefaultConstants().EarthRadius},
		},
	},
	"moon": {
		Name: "moon", Steps: 120, SnapshotInterval: 1, Constants: DefaultConstants(),
		Vehicle: VehicleConfig{
			Name: "probe", Mass: 1000, Angle: 0, Length: 4,
			Position:        Vec{X: -2e7},
			Velocity:        Vec{X: 3000, Y: 1500},
			ExhaustVelocity: DefaultConstants().ExhaustVelocity,
			FuelBurnRate:    1,
			MaxTorque:       DefaultConstants().MaxTorque,
			Thrust:          []float64{0},
			Angular:         []float64{0},
		},
		Planets: []PlanetConfig{
			{Name: "earth", Mass: DefaultConstants().EarthMass, Radius: DefaultConstants().EarthRadius},
			{
				Name: "moon", Mass: 7.342e22, Radius: 1737400,
				Position:   Vec{Y: 3.844e8},
				Velocity:   Vec{X: -1022},
				Precompute: 120,
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Planets = append([]PlanetConfig(nil), cfg.Planets...)
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
