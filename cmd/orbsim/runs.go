package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/san-kum/orbsim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSCENARIO\tVEHICLE\tSTEPS\tCOLLISIONS\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID, run.Scenario, run.Vehicle.Name, run.StepsTaken,
			len(run.Collisions), run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	vehicle, planets, err := st.Restore(runID)
	if err != nil {
		return err
	}

	history := vehicle.History()
	if len(history) < 2 {
		return fmt.Errorf("run %s has too few snapshots to plot", runID)
	}

	speed := make([]float64, len(history))
	altitude := make([]float64, 0, len(history))
	angle := make([]float64, len(history))
	for i, s := range history {
		second := i * meta.SnapshotInterval
		speed[i] = s.Speed()
		angle[i] = s.Angle
		if alt, near := metrics.Altitude(s, planets, second); near != nil {
			altitude = append(altitude, alt)
		}
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s (%s)", meta.Scenario, runID)))
	fmt.Println()
	plot("speed (m/s)", speed)
	if len(altitude) > 1 {
		plot("altitude (m)", altitude)
	}
	plot("angle (deg)", angle)
	return nil
}

func plot(caption string, data []float64) {
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption)))
	fmt.Println()
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	name := body
	if name == "" {
		name = meta.Vehicle.Name
	}
	history, err := st.LoadHistory(args[0], name)
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, name, meta.SnapshotInterval, history)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	history, err := st.LoadHistory(args[0], meta.Vehicle.Name)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, history)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	vehicle, planets, err := st.Restore(args[0])
	if err != nil {
		return err
	}

	scene := export.Scene{Stroke: "#00d7ff"}
	for _, s := range vehicle.History() {
		scene.Path = append(scene.Path, s.Position)
	}
	last := (vehicle.Len() - 1) * meta.SnapshotInterval
	for _, p := range planets {
		pos, err := p.PositionAt(last, true)
		if err != nil {
			return err
		}
		scene.Planets = append(scene.Planets, export.Circle{Name: p.Name(), Center: pos, Radius: p.Radius()})
	}
	for _, ev := range meta.Collisions {
		pos, err := vehicle.PositionAt(ev.Second+1, true)
		if err != nil {
			return err
		}
		scene.Collisions = append(scene.Collisions, pos)
	}

	var svg string
	if braille {
		svg = export.CanvasToSVG(brailleView(scene), 4)
	} else {
		svg = export.TrajectoryToSVG(scene, 800, 600)
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

// brailleView draws the scene the way the live view does.
func brailleView(scene export.Scene) *viz.Canvas {
	c := viz.NewCanvas(100, 40)

	points := append([]r2.Vec(nil), scene.Path...)
	radii := make([]float64, len(points))
	for _, p := range scene.Planets {
		points = append(points, p.Center)
		radii = append(radii, p.Radius)
	}
	proj := viz.Fit(c, points, radii)

	for _, p := range scene.Planets {
		x, y := proj.Dot(p.Center)
		c.DrawCircle(x, y, proj.Length(p.Radius))
	}
	for i := 1; i < len(scene.Path); i++ {
		x0, y0 := proj.Dot(scene.Path[i-1])
		x1, y1 := proj.Dot(scene.Path[i])
		c.DrawLine(x0, y0, x1, y1)
	}
	return c
}

func queryRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	vehicle, planets, err := st.Restore(args[0])
	if err != nil {
		return err
	}

	target := vehicle
	if body != "" && body != vehicle.Name() {
		target = nil
		for _, p := range planets {
			if p.Name() == body {
				target = p
			}
		}
		if target == nil {
			return fmt.Errorf("%w: %s", storage.ErrUnknownBody, body)
		}
	}

	s, err := target.SnapshotAt(queryTime, clamped)
	if err != nil {
		return err
	}
	fmt.Printf("%s at t=%d\n%s\n", target.Name(), queryTime, s)
	if alt, near := metrics.Altitude(s, planets, queryTime); near != nil && target == vehicle {
		fmt.Printf("altitude: %g above %s\n", alt, near.Name())
	}
	return nil
}

