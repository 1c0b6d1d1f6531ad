package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/experiment"
	"github.com/inference-sim/queue-sim/sim/recorder"
	"github.com/inference-sim/queue-sim/sim/trace"
)

var (
	configPath string // Experiment YAML file; overrides --preset
	presetName string // Built-in experiment name
	seed       int64  // Overrides the experiment seed when set
	customers  int    // Overrides the experiment customer count when set
	capacity   string // Overrides the wait line capacity when set
	logLevel   string // Log verbosity level
	traceLevel string // Event trace level
	showTable  bool   // Print the per-customer table
	csvPath    string // Per-customer CSV output
	sqlitePath string // SQLite database for run results
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queue-sim",
	Short: "Discrete-event simulator for multi-server queueing systems",
}

// runCmd executes one experiment using the flags below
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a queueing simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		logrus.StandardLogger().ExitFunc = atexit.Exit

		spec, err := loadSpec()
		if err != nil {
			logrus.Fatalf("Failed to load experiment: %v", err)
		}
		if err := applyOverrides(spec, cmd.Flags()); err != nil {
			logrus.Fatalf("Invalid override: %v", err)
		}

		recorders, err := openRecorders()
		if err != nil {
			logrus.Fatalf("Failed to open outputs: %v", err)
		}

		s, err := runExperiment(spec)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		s.Metrics().Print(os.Stdout)
		if s.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(s.Trace))
		}

		if err := recordRun(recorders, spec, s); err != nil {
			logrus.Fatalf("Failed to record results: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// presetsCmd lists the built-in experiments
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in experiments",
	Run: func(cmd *cobra.Command, args []string) {
		if err := listPresets(cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func loadSpec() (*experiment.ExperimentSpec, error) {
	if configPath != "" {
		return experiment.LoadExperimentSpec(configPath)
	}
	return experiment.LoadPreset(presetName)
}

// applyOverrides copies flags the user set explicitly onto spec.
// Defaults never replace values from the experiment file.
func applyOverrides(spec *experiment.ExperimentSpec, flags *pflag.FlagSet) error {
	if flags.Changed("seed") {
		spec.Seed = seed
	}
	if flags.Changed("customers") {
		spec.Customers = customers
	}
	if flags.Changed("capacity") {
		c, err := sim.ParseCapacity(capacity)
		if err != nil {
			return err
		}
		spec.SetCapacity(c)
	}
	if flags.Changed("trace") {
		spec.Trace = traceLevel
	}
	return nil
}

// runExperiment builds and runs the simulator for spec.
func runExperiment(spec *experiment.ExperimentSpec) (*sim.Simulator, error) {
	cfg, err := spec.Build()
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Run(); err != nil {
		return nil, err
	}
	return s, nil
}

// openRecorders opens every requested output before the run starts so a bad
// path fails fast. Each recorder is also closed if a later Fatal exits.
func openRecorders() ([]recorder.Recorder, error) {
	var recorders []recorder.Recorder
	if showTable {
		recorders = append(recorders, recorder.NewTableRecorder(os.Stdout))
	}
	if csvPath != "" {
		r, err := recorder.NewCSVRecorder(csvPath)
		if err != nil {
			return nil, err
		}
		recorders = append(recorders, r)
	}
	if sqlitePath != "" {
		r, err := recorder.NewSQLiteRecorder(sqlitePath)
		if err != nil {
			closeAll(recorders)
			return nil, err
		}
		recorders = append(recorders, r)
	}
	for _, r := range recorders {
		atexit.Register(func() { _ = r.Close() })
	}
	return recorders, nil
}

// recordRun sends the finished run to every recorder and closes them.
func recordRun(recorders []recorder.Recorder, spec *experiment.ExperimentSpec, s *sim.Simulator) error {
	if len(recorders) == 0 {
		return nil
	}
	defer closeAll(recorders)

	run := recorder.NewRun(spec.Name, spec.Seed, s)
	logrus.Infof("Recording run %s", run.ID)
	for _, r := range recorders {
		if err := r.Record(run); err != nil {
			return err
		}
	}
	for _, r := range recorders {
		if err := r.Close(); err != nil {
			return err
		}
	}
	return nil
}

func closeAll(recorders []recorder.Recorder) {
	for _, r := range recorders {
		_ = r.Close()
	}
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Events Processed        : %d\n", ts.TotalEvents)
	fmt.Fprintf(w, "Max Queue Length        : %d\n", ts.MaxQueueLen)
	fmt.Fprintf(w, "Max Busy Servers        : %d\n", ts.MaxBusy)
	outcomes := make([]string, 0, len(ts.Outcomes))
	for o := range ts.Outcomes {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		fmt.Fprintf(w, "Outcome %-16s: %d\n", o, ts.Outcomes[trace.Outcome(o)])
	}
}

func listPresets(w io.Writer) error {
	for _, name := range experiment.PresetNames() {
		spec, err := experiment.LoadPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-12s %s\n", name, spec.Description)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to an experiment YAML file (overrides --preset)")
	runCmd.Flags().StringVar(&presetName, "preset", "ablebaker", "Built-in experiment to run (see `queue-sim presets`)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for service and arrival sampling")
	runCmd.Flags().IntVar(&customers, "customers", 100, "Number of arriving customers")
	runCmd.Flags().StringVar(&capacity, "capacity", "unbounded", "Wait line capacity (integer >= 0 or \"unbounded\")")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Event trace level (none, events)")

	// Outputs
	runCmd.Flags().BoolVar(&showTable, "table", false, "Print the per-customer table")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "Write per-customer results to this CSV file")
	runCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Append run results to this SQLite database")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(presetsCmd)
}
