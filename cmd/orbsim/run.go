package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/san-kum/orbsim/internal/telemetry"
	"github.com/san-kum/orbsim/internal/trajectory"
	"github.com/san-kum/orbsim/internal/tui"
	"github.com/san-kum/orbsim/internal/viz"
)

func defaultMetrics(cfg *config.Config, vehicle *trajectory.Body, planets []*trajectory.Body) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewMaxSpeed(),
		metrics.NewClosestApproach(planets),
	}
	if th, ok := vehicle.Thruster(); ok {
		ms = append(ms, metrics.NewThrustEffort(th))
	}
	if len(planets) > 0 {
		ms = append(ms,
			metrics.NewOrbitalEnergy(planets[0], cfg.Constants.G),
			metrics.NewEnergyDrift(planets[0], cfg.Constants.G),
		)
	}
	return ms
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	vehicle, planets, err := cfg.Build()
	if err != nil {
		return err
	}

	collector := telemetry.NewCollector()
	s := sim.New(vehicle, planets).WithTelemetry(collector).WithLogger(log)
	for _, m := range defaultMetrics(cfg, vehicle, planets) {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := s.Run(ctx, sim.Config{Steps: cfg.Steps, StopOnCollision: cfg.StopOnCollision})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID := ""
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = st.Save(cfg.Name, result); err != nil {
			return err
		}
		log.Run(runID).Info("run stored", "scenario", cfg.Name, "dir", dataDir)
	}

	if metricsOut != "" {
		if err := collector.WriteTextfile(metricsOut); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	fmt.Println(summary(cfg, result, runID, elapsed))
	return nil
}

func summary(cfg *config.Config, result *sim.Result, runID string, elapsed time.Duration) string {
	final := result.Final()
	lines := []string{
		viz.Title.Render(cfg.Name) + "  " + viz.Subtle.Render(fmt.Sprintf("completed in %v", elapsed.Round(time.Microsecond))),
		"",
		viz.Field("steps", fmt.Sprintf("%d/%d", result.StepsTaken, cfg.Steps), 30),
		viz.Field("position", fmt.Sprintf("(%.1f, %.1f)", final.Position.X, final.Position.Y), 30),
		viz.Field("velocity", fmt.Sprintf("(%.2f, %.2f)", final.Velocity.X, final.Velocity.Y), 30),
		viz.Field("speed", fmt.Sprintf("%.2f m/s", final.Speed()), 30),
		viz.Field("angle", fmt.Sprintf("%.2f°", final.Angle), 30),
	}
	if runID != "" {
		lines = append(lines, viz.Field("run id", runID, 30))
	}

	for _, c := range result.Collisions {
		lines = append(lines, viz.StatusImpact.Render(fmt.Sprintf("hit %s at t=%ds", c.Target, c.Second)))
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		lines = append(lines, "", viz.Subtle.Render("metrics"))
	}
	for _, name := range names {
		lines = append(lines, viz.Field(name, fmt.Sprintf("%.6g", result.Metrics[name]), 30))
	}

	return viz.Panel.Render(strings.Join(lines, "\n"))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	vehicle, planets, err := cfg.Build()
	if err != nil {
		return err
	}

	return tui.Run(sim.New(vehicle, planets), tui.Options{
		Scenario:        cfg.Name,
		Steps:           cfg.Steps,
		StopOnCollision: cfg.StopOnCollision,
	})
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		return fmt.Errorf("no thrust levels given")
	}

	_, planets, err := cfg.Build()
	if err != nil {
		return err
	}

	vehicles := make([]*trajectory.Body, len(levels))
	for i, k := range levels {
		v, err := cfg.ScaleThrust(k).BuildVehicle()
		if err != nil {
			return fmt.Errorf("level %g: %w", k, err)
		}
		vehicles[i] = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := sim.NewEnsemble(planets, vehicles...).
		WithMetrics(func(v *trajectory.Body) []sim.Metric { return defaultMetrics(cfg, v, planets) }).
		SetLimit(parallel).
		Run(ctx, sim.Config{Steps: cfg.Steps, StopOnCollision: cfg.StopOnCollision})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCALE\tSTEPS\tSPEED\tMAX SPEED\tCLOSEST\tCOLLISION")
	for i, r := range results {
		hit := "-"
		if len(r.Collisions) > 0 {
			hit = fmt.Sprintf("%s@%ds", r.Collisions[0].Target, r.Collisions[0].Second)
		}
		fmt.Fprintf(w, "%.3g\t%d\t%.2f\t%.2f\t%.1f\t%s\n",
			levels[i], r.StepsTaken, r.Final().Speed(),
			r.Metrics["max_speed"], r.Metrics["closest_approach"], hit)
	}
	return w.Flush()
}

// runDemo flies the demonstration rocket and prints every state, one
// iteration at a time.
func runDemo(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset("demo")
	vehicle, planets, err := cfg.Build()
	if err != nil {
		return err
	}

	fmt.Println("Initial trajectory data:")
	fmt.Println(vehicle.Current())

	for i := 0; i < cfg.Steps; i++ {
		fmt.Println("Currently on iteration:", i)
		if _, err := vehicle.Step(planets); err != nil {
			return err
		}
		fmt.Println(vehicle.Current())
	}
	return nil
}
