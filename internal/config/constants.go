package config

import "github.com/san-kum/orbsim/internal/trajectory"

// Constants are the physical figures scenarios draw their defaults from.
type Constants struct {
	G               float64 `yaml:"g"`
	ExhaustVelocity float64 `yaml:"exhaust_velocity"`
	FuelBurnRate    float64 `yaml:"fuel_burn_rate"`
	MaxTorque       float64 `yaml:"max_torque"`
	EarthMass       float64 `yaml:"earth_mass"`
	EarthRadius     float64 `yaml:"earth_radius"`
	SaturnVLength   float64 `yaml:"saturn_v_length"`
	SaturnVMass     float64 `yaml:"saturn_v_mass"`
}

func DefaultConstants() Constants {
	return Constants{
		G:               trajectory.StandardG,
		ExhaustVelocity: trajectory.DefaultExhaustVelocity,
		FuelBurnRate:    trajectory.DefaultFuelBurnRate,
		MaxTorque:       trajectory.DefaultMaxTorque,
		EarthMass:       5.9722e24,  // kg
		EarthRadius:     6371000,    // m
		SaturnVLength:   111,        // m
		SaturnVMass:     2812272.69, // kg
	}
}
