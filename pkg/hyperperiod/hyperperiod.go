// Package hyperperiod computes the least common multiple of a task set's
// periods and the number of job arrivals each task contributes in
// [0, H).
package hyperperiod

import (
	"math"

	"edfvdsim/pkg/apperr"
	"edfvdsim/pkg/model"
)

// toleranceNonInteger is the largest deviation between a supplied period
// and its rounded integer value that is tolerated silently; anything larger
// is reported as a NumericWarning.
const toleranceNonInteger = 1e-9

// Result carries the computed hyperperiod, each task's job count, and any
// non-fatal NumericWarnings raised while rounding periods to integers.
type Result struct {
	H         float64
	JobCounts []int
	Warnings  []apperr.NumericWarning
}

// Compute derives the hyperperiod and per-task job counts for tasks.
func Compute(tasks []model.Task) Result {
	if len(tasks) == 0 {
		return Result{H: 0, JobCounts: nil}
	}

	intPeriods := make([]int64, len(tasks))

	var warnings []apperr.NumericWarning

	for i, task := range tasks {
		rounded := int64(math.Round(task.Period))
		if math.Abs(task.Period-float64(rounded)) > toleranceNonInteger {
			warnings = append(warnings, apperr.NumericWarning{
				TaskName: task.Name,
				Supplied: task.Period,
				Rounded:  rounded,
			})
		}

		if rounded <= 0 {
			rounded = 1
		}

		intPeriods[i] = rounded
	}

	h := int64(1)
	for _, p := range intPeriods {
		h = lcm(h, p)
	}

	hyperPeriod := float64(h)
	jobCounts := make([]int, len(tasks))

	for i, task := range tasks {
		jobCounts[i] = jobCount(task, hyperPeriod)
	}

	return Result{H: hyperPeriod, JobCounts: jobCounts, Warnings: warnings}
}

// jobCount returns the number of arrivals of task strictly inside [0, H):
// the count of integers j >= 0 with phase + j*period < H.
//
// A naive floor((H-phase)/period) undercounts whenever phase is not a
// multiple of period (e.g. phase=2, period=10, H=10 gives floor(0.8)=0,
// though the job arriving at t=2 is plainly inside [0, H)). Subtracting a
// small epsilon before flooring and adding 1 back counts correctly in both
// that case and the exact-multiple case, without ever counting an arrival
// at exactly H.
func jobCount(task model.Task, h float64) int {
	remaining := h - task.Phase
	if remaining <= 0 {
		return 0
	}

	return int(math.Floor((remaining-toleranceNonInteger)/task.Period)) + 1
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func lcm(a, b int64) int64 {
	g := gcd(a, b)
	if g == 0 {
		return 0
	}

	return (a / g) * b
}
