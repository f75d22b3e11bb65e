// Package main wires the edfvdsim CLI entrypoint: load a task set and an
// execution-time trace, compute the EDF-VD schedule, and write the
// schedule/analysis/metrics outputs.
package main

//nolint:depguard // main wires project-internal modules and zap logging
import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"edfvdsim/internal/buildinfo"
	"edfvdsim/pkg/edfvd"
	"edfvdsim/pkg/hyperperiod"
	"edfvdsim/pkg/jobexpand"
	"edfvdsim/pkg/loader"
	"edfvdsim/pkg/metrics"
	"edfvdsim/pkg/report"
	"edfvdsim/pkg/runlock"
	"edfvdsim/pkg/sched"
)

const (
	exitCodeSuccess      = 0
	exitCodeRuntimeError = 1
	exitCodeParseError   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], defaultRunDeps(), os.Stderr))
}

// runDeps isolates the side-effecting constructors so tests can substitute
// them without touching the real filesystem or logger sink.
type runDeps struct {
	newLogger func(level string) (*zap.Logger, error)
	newRunID  func() string
}

func defaultRunDeps() runDeps {
	return runDeps{
		newLogger: newLogger,
		newRunID:  uuid.NewString,
	}
}

// flagValues holds the raw CLI flag strings; the empty string means "flag
// not provided" and applyFlagOverrides treats it as such.
type flagValues struct {
	configPath    string
	tasksPath     string
	execTimesPath string
	scheduleOut   string
	analysisOut   string
	metricsOut    string
	logLevel      string
}

func run(ctx context.Context, args []string, deps runDeps, stderr io.Writer) int {
	var (
		flags  flagValues
		runErr error
	)

	cmd := &cobra.Command{
		Use:           "edfvdsim",
		Short:         "Offline EDF-VD mixed-criticality scheduler simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runErr = execute(cmd.Context(), flags, deps)

			return runErr
		},
	}

	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(&flags.configPath, "config", defaultConfigPath, "Path to the optional YAML config file")
	cmd.Flags().StringVar(&flags.tasksPath, "tasks", "", "Path to the task-set input file")
	cmd.Flags().StringVar(&flags.execTimesPath, "exec-times", "", "Path to the execution-time trace file")
	cmd.Flags().StringVar(&flags.scheduleOut, "schedule-out", "", "Path to write the schedule listing")
	cmd.Flags().StringVar(&flags.analysisOut, "analysis-out", "", "Path to write the schedule analysis")
	cmd.Flags().StringVar(&flags.metricsOut, "metrics-out", "", "Path to write the optional Prometheus metrics snapshot")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Structured log level (debug, info, warn, error)")

	if err := cmd.ExecuteContext(ctx); err != nil {
		if runErr == nil {
			// RunE never ran: cobra rejected the arguments themselves.
			fmt.Fprintf(stderr, "%v\n", err)

			return exitCodeParseError
		}

		return exitCodeRuntimeError
	}

	return exitCodeSuccess
}

// execute runs one full simulation: load configuration, build the logger,
// then run the loader -> hyperperiod -> edfvd -> jobexpand -> sched ->
// report/metrics pipeline.
func execute(ctx context.Context, flags flagValues, deps runDeps) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	applyFlagOverrides(&cfg, flags)

	logger, err := deps.newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	runID := deps.newRunID()
	logger = logger.With(zap.String("runID", runID))

	info := buildinfo.Current()
	logger.Info("starting edfvdsim",
		zap.String("version", info.Version),
		zap.String("commit", info.GitCommit),
		zap.String("buildDate", info.BuildDate),
		zap.String("tasksPath", cfg.TasksPath),
		zap.String("execTimesPath", cfg.ExecTimesPath),
	)

	outDir := outputDir(cfg)

	lock, err := runlock.Acquire(outDir)
	if err != nil {
		logger.Error("failed to acquire output directory lock", zap.Error(err))

		return err
	}
	defer func() { _ = lock.Release() }()

	tasks, err := loader.Load(cfg.TasksPath)
	if err != nil {
		logger.Error("failed to load task set", zap.Error(err))

		return err
	}

	logger.Debug("loaded tasks", zap.Int("count", len(tasks)))

	hp := hyperperiod.Compute(tasks)

	for _, warning := range hp.Warnings {
		logger.Warn("numeric warning computing hyperperiod", zap.String("warning", warning.String()))
	}

	logger.Debug("computed hyperperiod", zap.Float64("H", hp.H))

	vd := edfvd.Compute(tasks, hp.JobCounts)
	for _, warning := range vd.Warnings {
		logger.Warn("schedulability warning", zap.String("warning", warning.String()))
	}

	logger.Info("computed EDF-VD parameters",
		zap.Float64("x", vd.X), zap.Float64("U_LO", vd.ULo), zap.Float64("U_HI", vd.UHi))

	jobs, err := jobexpand.Expand(vd.Tasks, hp.H, cfg.ExecTimesPath)
	if err != nil {
		logger.Error("failed to expand jobs", zap.Error(err))

		return err
	}

	logger.Debug("expanded jobs", zap.Int("count", len(jobs)))

	result, err := sched.New(hp.H).Run(ctx, jobs)
	if err != nil {
		logger.Error("scheduling run failed", zap.Error(err))

		return err
	}

	if err := report.WriteSchedule(cfg.ScheduleOut, result.Slices); err != nil {
		logger.Error("failed to write schedule", zap.Error(err))

		return err
	}

	summary := report.Analyze(result.Slices, result.Jobs, hp.H, vd.X)

	if err := report.WriteAnalysis(cfg.AnalysisOut, summary); err != nil {
		logger.Error("failed to write analysis", zap.Error(err))

		return err
	}

	if cfg.MetricsOut != "" {
		reg := metrics.New()
		reg.Observe(summary)

		if err := reg.WriteSnapshot(cfg.MetricsOut); err != nil {
			logger.Error("failed to write metrics snapshot", zap.Error(err))

			return err
		}
	}

	logger.Info("run complete",
		zap.Int("preemptions", summary.Preemptions),
		zap.Float64("avgWait", summary.AvgWait),
		zap.Float64("avgResponse", summary.AvgResponse),
	)

	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "" {
		level = defaultLogLevel
	}

	cfg := zap.NewProductionConfig()

	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidLogLevel, err)
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.CallerKey = "caller"

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return logger, nil
}

var errInvalidLogLevel = errors.New("invalid log level")

// outputDir returns the directory runlock should guard: the directory
// containing the schedule output file, since every output path in a single
// invocation is expected to share one directory.
func outputDir(cfg runtimeConfig) string {
	dir := filepath.Dir(cfg.ScheduleOut)
	if dir == "" {
		return "."
	}

	return dir
}
