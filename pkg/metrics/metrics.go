// Package metrics renders a completed run's aggregate statistics as a
// Prometheus textfile-collector-style snapshot, independent of the
// schedule/analysis text reports in pkg/report.
package metrics

import (
	"bufio"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"edfvdsim/pkg/apperr"
	"edfvdsim/pkg/report"
)

const namespace = "edfvd"

// Registry owns one run's worth of metrics, isolated from the default
// Prometheus registry so a snapshot file contains only this run's values
// and not ambient process/Go-runtime collectors.
type Registry struct {
	registry *prometheus.Registry

	preemptions   prometheus.Counter
	avgWait       prometheus.Gauge
	avgResponse   prometheus.Gauge
	hyperperiod   prometheus.Gauge
	jobCount      prometheus.Gauge
	scalingFactor prometheus.Gauge
}

// New constructs a Registry with every run metric registered but unset.
func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		registry: reg,
		preemptions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preemptions_total",
			Help:      "Total number of identity transitions between adjacent run-slices.",
		}),
		avgWait: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "avg_wait_seconds",
			Help:      "Average waiting time across finished jobs.",
		}),
		avgResponse: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "avg_response_seconds",
			Help:      "Average response time across finished jobs.",
		}),
		hyperperiod: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hyperperiod_seconds",
			Help:      "Hyperperiod of the loaded task set.",
		}),
		jobCount: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "job_count",
			Help:      "Total number of jobs materialized for the run.",
		}),
		scalingFactor: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scaling_factor",
			Help:      "EDF-VD virtual deadline scaling factor x.",
		}),
	}
}

// Observe records summary's aggregate statistics into the registry's
// metrics.
func (r *Registry) Observe(summary report.Summary) {
	r.preemptions.Add(float64(summary.Preemptions))
	r.avgWait.Set(summary.AvgWait)
	r.avgResponse.Set(summary.AvgResponse)
	r.hyperperiod.Set(summary.Hyperperiod)
	r.jobCount.Set(float64(summary.TotalJobs))
	r.scalingFactor.Set(summary.ScalingFactor)
}

// WriteSnapshot renders every registered metric family in Prometheus text
// exposition format to path.
func (r *Registry) WriteSnapshot(path string) error {
	families, err := r.registry.Gather()
	if err != nil {
		return apperr.NewIoError("gather", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperr.NewIoError("create", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return apperr.NewIoError("encode", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return apperr.NewIoError("flush", path, err)
	}

	return nil
}
