package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	envTasksPath     = "EDFVD_TASKS_PATH"
	envExecTimesPath = "EDFVD_EXEC_TIMES_PATH"
	envScheduleOut   = "EDFVD_SCHEDULE_OUT_PATH"
	envAnalysisOut   = "EDFVD_ANALYSIS_OUT_PATH"
	envMetricsOut    = "EDFVD_METRICS_OUT_PATH"
	envLogLevel      = "EDFVD_LOG_LEVEL"

	defaultConfigPath = "./edfvdsim.yaml"
	defaultLogLevel   = "info"
)

// runtimeConfig is the fully resolved configuration for one invocation,
// after defaults, an optional YAML file, environment variables, and CLI
// flags have all been merged in that order.
type runtimeConfig struct {
	TasksPath     string
	ExecTimesPath string
	ScheduleOut   string
	AnalysisOut   string
	MetricsOut    string
	LogLevel      string
}

// fileConfig mirrors runtimeConfig with pointer fields so an absent YAML
// key is distinguishable from a key explicitly set to the empty string.
type fileConfig struct {
	TasksPath     *string `yaml:"tasksPath"`
	ExecTimesPath *string `yaml:"execTimesPath"`
	ScheduleOut   *string `yaml:"scheduleOut"`
	AnalysisOut   *string `yaml:"analysisOut"`
	MetricsOut    *string `yaml:"metricsOut"`
	LogLevel      *string `yaml:"logLevel"`
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		TasksPath:     "tasks.txt",
		ExecTimesPath: "exec_times.txt",
		ScheduleOut:   "schedule_output.txt",
		AnalysisOut:   "schedule_analysis.txt",
		MetricsOut:    "",
		LogLevel:      defaultLogLevel,
	}
}

// loadConfig resolves runtimeConfig from defaults, the YAML file at
// configPath (silently skipped if absent), and environment variables. CLI
// flag values are merged in afterward by the caller, since cobra has
// already parsed them into the same struct shape by the time this returns.
func loadConfig(configPath string) (runtimeConfig, error) {
	cfg := defaultRuntimeConfig()

	trimmed := strings.TrimSpace(configPath)
	if trimmed != "" {
		data, err := os.ReadFile(trimmed)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return runtimeConfig{}, fmt.Errorf("read config file %q: %w", trimmed, err)
			}
		} else {
			var fc fileConfig

			if err := yaml.Unmarshal(data, &fc); err != nil {
				return runtimeConfig{}, fmt.Errorf("decode config file %q: %w", trimmed, err)
			}

			mergeFileConfig(&cfg, fc)
		}
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func mergeFileConfig(dst *runtimeConfig, src fileConfig) {
	assignString(&dst.TasksPath, src.TasksPath)
	assignString(&dst.ExecTimesPath, src.ExecTimesPath)
	assignString(&dst.ScheduleOut, src.ScheduleOut)
	assignString(&dst.AnalysisOut, src.AnalysisOut)
	assignString(&dst.MetricsOut, src.MetricsOut)
	assignString(&dst.LogLevel, src.LogLevel)
}

func applyEnvOverrides(cfg *runtimeConfig) {
	cfg.TasksPath = envString(envTasksPath, cfg.TasksPath)
	cfg.ExecTimesPath = envString(envExecTimesPath, cfg.ExecTimesPath)
	cfg.ScheduleOut = envString(envScheduleOut, cfg.ScheduleOut)
	cfg.AnalysisOut = envString(envAnalysisOut, cfg.AnalysisOut)
	cfg.MetricsOut = envString(envMetricsOut, cfg.MetricsOut)
	cfg.LogLevel = envString(envLogLevel, cfg.LogLevel)
}

var lookupEnv = os.LookupEnv //nolint:gochecknoglobals // overridden in tests

func assignString(target *string, value *string) {
	if value != nil {
		*target = strings.TrimSpace(*value)
	}
}

func envString(key, fallback string) string {
	value, ok := lookupEnv(key)
	if !ok {
		return fallback
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}

	return trimmed
}

// applyFlagOverrides merges CLI-flag-provided values (nonempty strings
// cobra populated from --tasks, --exec-times, etc.) on top of cfg,
// preserving the configured default/file/env value when a flag was left at
// its zero value.
func applyFlagOverrides(cfg *runtimeConfig, flags flagValues) {
	overrideIfSet(&cfg.TasksPath, flags.tasksPath)
	overrideIfSet(&cfg.ExecTimesPath, flags.execTimesPath)
	overrideIfSet(&cfg.ScheduleOut, flags.scheduleOut)
	overrideIfSet(&cfg.AnalysisOut, flags.analysisOut)
	overrideIfSet(&cfg.MetricsOut, flags.metricsOut)
	overrideIfSet(&cfg.LogLevel, flags.logLevel)
}

func overrideIfSet(target *string, value string) {
	if strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}
