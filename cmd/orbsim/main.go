package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/logging"
)

var (
	dataDir    string
	preset     string
	steps      int
	metricsOut string
	noSave     bool
	queryTime  int
	clamped    bool
	body       string
	outFile    string
	braille    bool
	levels     []float64
	parallel   int

	log = logging.Default()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orbsim",
		Short:         "planar orbital trajectory simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "run a scenario and store its history",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	scenarioFlags(runCmd)
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "write prometheus textfile metrics to this path")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [scenario.yaml]",
		Short: "run a scenario with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	scenarioFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "fly the vehicle at several thrust scales in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	scenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&levels, "levels", []float64{0.5, 1, 1.5}, "thrust scale factors")
	sweepCmd.Flags().IntVar(&parallel, "parallel", -1, "max vehicles in flight (-1 for no limit)")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "step the demonstration rocket and print every state",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %4d steps  %s among %d planet(s)\n", name, p.Steps, p.Vehicle.Name, len(p.Planets))
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot speed, altitude and heading of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a body's history to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&body, "body", "", "body name (default: the vehicle)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the vehicle history to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render the terminal dot view instead of vector paths")

	queryCmd := &cobra.Command{
		Use:   "query [run_id]",
		Short: "interpolate a stored body at a simulated second",
		Args:  cobra.ExactArgs(1),
		RunE:  queryRun,
	}
	queryCmd.Flags().IntVar(&queryTime, "t", 0, "simulated second")
	queryCmd.Flags().BoolVar(&clamped, "clamped", false, "hold the end states instead of wrapping")
	queryCmd.Flags().StringVar(&body, "body", "", "body name (default: the vehicle)")

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, demoCmd, presetsCmd, listCmd, plotCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, queryCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Failure("command failed", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset scenario")
	cmd.Flags().IntVar(&steps, "steps", 0, "override the number of simulated seconds")
}

// loadScenario picks the scenario from a file argument, a preset or the
// defaults, in that order, then applies --steps.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case len(args) == 1:
		c, err := config.Load(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	return cfg, cfg.Validate()
}
