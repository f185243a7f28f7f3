package cmd

import (
	"encoding/json"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/BielJM1/MRTAOptima/sim"
	"github.com/BielJM1/MRTAOptima/sim/trace"
)

var (
	// CLI flags shared by run and sweep
	seed     int64  // Seed for random scenario generation
	logLevel string // Log verbosity level

	// Scenario generation flags
	numTasks          int     // Number of tasks
	numRobots         int     // Number of robots
	envWidth          float64 // Environment width
	envHeight         float64 // Environment height
	minTaskSeparation float64 // Minimum distance between any two tasks
	minET             int     // Minimum task execution time
	maxET             int     // Maximum task execution time
	minDeadlineFactor float64 // Deadline lower bound as a multiple of ET
	maxDeadlineFactor float64 // Deadline upper bound as a multiple of ET
	minUtility        float64 // Minimum task utility
	maxUtility        float64 // Maximum task utility
	maxRobotsPerTask  int     // Max robots that can usefully crowd one task
	minSpeedFactor    float64 // Slowest robot speed as a fraction of the fastest
	minWorkCapacity   int     // Minimum robot work capacity
	maxWorkCapacity   int     // Maximum robot work capacity
	startX            float64 // Fixed robot start X (NaN = start robots on random tasks)
	startY            float64 // Fixed robot start Y (NaN = start robots on random tasks)
	scenarioFile      string  // YAML scenario preset file
	scenarioName      string  // Preset name inside the scenario file

	// Fuzzy decision policy flags
	aggregationOp           string  // Aggregation operator across criteria
	opParam                 float64 // Operator parameter (Yager lambda / OWA wmax)
	interferenceEnabled     bool    // Penalize crowded tasks
	interferenceGamma       float64 // Interference membership at full crowding
	interferenceBeta        float64 // Interference membership at zero crowding
	inertiaEnabled          bool    // Favor the current target among comparable tasks
	inertiaK                float64 // Inertia membership for the current target
	changeTargetWhileMoving bool    // Allow retargeting mid-transit

	// Stimulus shape flags
	proximityExponent float64 // Exponent of the travelling-time fuzzy set
	lateFactor        float64 // Urgency decay steepness past the deadline

	// Run bound flags
	maxSteps            int64   // Hard step bound (0 = derive from deadlines)
	deadlineBoundFactor float64 // Derived bound as a multiple of the farthest deadline

	// Trace flags
	traceLevel string // Trace level (none, decisions, steps)
	traceFile  string // JSON file the collected trace is written to
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mrtaoptima",
	Short: "Fuzzy response-threshold simulator for multi-robot task allocation",
}

// scenarioConfig assembles the scenario configuration from flags or a preset.
func scenarioConfig() sim.ScenarioConfig {
	if scenarioFile != "" {
		if preset := GetScenarioConfig(scenarioFile, scenarioName); preset != nil {
			return *preset
		}
		logrus.Fatalf("scenario preset %q not found in %s", scenarioName, scenarioFile)
	}

	cfg := sim.ScenarioConfig{
		NumTasks:          numTasks,
		NumRobots:         numRobots,
		EnvWidth:          envWidth,
		EnvHeight:         envHeight,
		MinTaskSeparation: minTaskSeparation,
		MinET:             minET,
		MaxET:             maxET,
		MinDeadlineFactor: minDeadlineFactor,
		MaxDeadlineFactor: maxDeadlineFactor,
		MinUtility:        minUtility,
		MaxUtility:        maxUtility,
		MaxRobotsPerTask:  maxRobotsPerTask,
		MinSpeedFactor:    minSpeedFactor,
		MinWorkCapacity:   minWorkCapacity,
		MaxWorkCapacity:   maxWorkCapacity,
	}
	if !math.IsNaN(startX) && !math.IsNaN(startY) {
		cfg.Start = &sim.Point{X: startX, Y: startY}
	}
	return cfg
}

// policyConfig assembles the fuzzy decision policy from flags.
func policyConfig() sim.PolicyConfig {
	if !sim.IsValidAggregationOp(aggregationOp) {
		logrus.Fatalf("unknown aggregation operator: %s", aggregationOp)
	}
	return sim.PolicyConfig{
		CriteriaOp:              sim.AggregationOp(aggregationOp),
		OpParam:                 opParam,
		Interference:            interferenceEnabled,
		InterferenceGamma:       interferenceGamma,
		InterferenceBeta:        interferenceBeta,
		Inertia:                 inertiaEnabled,
		InertiaK:                inertiaK,
		ChangeTargetWhileMoving: changeTargetWhileMoving,
	}
}

func stimulusConfig() sim.StimulusConfig {
	return sim.StimulusConfig{ProximityExponent: proximityExponent, LateFactor: lateFactor}
}

func runConfig() sim.RunConfig {
	return sim.RunConfig{MaxSteps: maxSteps, DeadlineFactor: deadlineBoundFactor}
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one allocation simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
		robots, tasks, err := sim.GenerateScenario(scenarioConfig(), rng.ForSubsystem(sim.SubsystemScenario))
		if err != nil {
			logrus.Fatalf("unable to generate scenario: %v", err)
		}

		logrus.Infof("Starting simulation with %d robots, %d tasks, seed=%d, operator=%s",
			len(robots), len(tasks), seed, aggregationOp)

		s := sim.NewSimulator(robots, tasks, stimulusConfig(), policyConfig(), runConfig())
		if traceLevel != "" && traceLevel != string(trace.TraceLevelNone) {
			s.Trace = trace.NewRunTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		}

		if err := s.Run(); err != nil {
			logrus.Fatalf("simulation aborted: %v", err)
		}
		s.Metrics.Print()

		if s.Trace != nil {
			summary := trace.Summarize(s.Trace)
			logrus.Infof("Trace: %d steps, %d decisions (%d idle), %d unique targets",
				summary.TotalSteps, summary.TotalDecisions, summary.IdleDecisions, summary.UniqueTargets)
			if traceFile != "" {
				writeTraceFile(traceFile, s.Trace)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

// writeTraceFile serializes the collected trace as JSON.
func writeTraceFile(path string, rt *trace.RunTrace) {
	data, err := json.MarshalIndent(rt, "", "  ")
	if err != nil {
		logrus.Fatalf("unable to serialize trace: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logrus.Fatalf("unable to write trace file %s: %v", path, err)
	}
	logrus.Infof("Trace written to %s", path)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, cmd := range []*cobra.Command{runCmd, sweepCmd} {
		cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random scenario generation")
		cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

		// Scenario generation
		cmd.Flags().IntVar(&numTasks, "num-tasks", 20, "Number of tasks")
		cmd.Flags().IntVar(&numRobots, "num-robots", 10, "Number of robots")
		cmd.Flags().Float64Var(&envWidth, "env-width", 640, "Environment width")
		cmd.Flags().Float64Var(&envHeight, "env-height", 480, "Environment height")
		cmd.Flags().Float64Var(&minTaskSeparation, "min-task-separation", 100, "Minimum distance between any two tasks")
		cmd.Flags().IntVar(&minET, "min-et", 4, "Minimum task execution time")
		cmd.Flags().IntVar(&maxET, "max-et", 30, "Maximum task execution time")
		cmd.Flags().Float64Var(&minDeadlineFactor, "min-deadline-factor", 2.5, "Deadline lower bound as a multiple of ET")
		cmd.Flags().Float64Var(&maxDeadlineFactor, "max-deadline-factor", 4.0, "Deadline upper bound as a multiple of ET")
		cmd.Flags().Float64Var(&minUtility, "min-utility", 0.75, "Minimum task utility")
		cmd.Flags().Float64Var(&maxUtility, "max-utility", 1.0, "Maximum task utility")
		cmd.Flags().IntVar(&maxRobotsPerTask, "max-robots-per-task", 3, "Max robots that can usefully crowd one task")
		cmd.Flags().Float64Var(&minSpeedFactor, "min-speed-factor", 0.8, "Slowest robot speed as a fraction of the fastest")
		cmd.Flags().IntVar(&minWorkCapacity, "work-capacity-min", 1, "Minimum robot work capacity")
		cmd.Flags().IntVar(&maxWorkCapacity, "work-capacity-max", 2, "Maximum robot work capacity")
		cmd.Flags().Float64Var(&startX, "start-x", math.NaN(), "Fixed robot start X (omit to start robots on random tasks)")
		cmd.Flags().Float64Var(&startY, "start-y", math.NaN(), "Fixed robot start Y (omit to start robots on random tasks)")
		cmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML scenario preset file")
		cmd.Flags().StringVar(&scenarioName, "scenario", "", "Preset name inside the scenario file")

		// Fuzzy decision policy
		cmd.Flags().StringVar(&aggregationOp, "aggregation", "min", "Aggregation operator (min, max, product, yager, harmonic-mean, owa)")
		cmd.Flags().Float64Var(&opParam, "op-param", 1.0, "Operator parameter (Yager lambda / OWA wmax)")
		cmd.Flags().BoolVar(&interferenceEnabled, "interference", false, "Penalize tasks already targeted by many robots")
		cmd.Flags().Float64Var(&interferenceGamma, "interference-gamma", 0.0, "Interference membership at full crowding")
		cmd.Flags().Float64Var(&interferenceBeta, "interference-beta", 1.0, "Interference membership at zero crowding")
		cmd.Flags().BoolVar(&inertiaEnabled, "inertia", false, "Favor the robot's current target among comparable tasks")
		cmd.Flags().Float64Var(&inertiaK, "inertia-k", 0.5, "Inertia membership for the current target")
		cmd.Flags().BoolVar(&changeTargetWhileMoving, "change-target-while-moving", true, "Allow retargeting mid-transit")

		// Stimulus shapes
		cmd.Flags().Float64Var(&proximityExponent, "proximity-exponent", 1.0, "Exponent of the travelling-time fuzzy set")
		cmd.Flags().Float64Var(&lateFactor, "late-factor", 0.07, "Urgency decay steepness past the deadline")

		// Run bounds
		cmd.Flags().Int64Var(&maxSteps, "max-steps", 0, "Hard step bound (0 = derive from deadlines)")
		cmd.Flags().Float64Var(&deadlineBoundFactor, "deadline-bound-factor", 10.0, "Derived step bound as a multiple of the farthest deadline")
	}

	// Tracing applies to single runs only
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, decisions, steps)")
	runCmd.Flags().StringVar(&traceFile, "trace-file", "", "Write the collected trace as JSON to this file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
