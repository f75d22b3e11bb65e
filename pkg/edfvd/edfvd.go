// Package edfvd computes the EDF-VD scaling factor x and the resulting
// per-task virtual deadlines.
package edfvd

import (
	"edfvdsim/pkg/apperr"
	"edfvdsim/pkg/model"
)

// Result carries the global scaling factor, the scaled task list, and any
// SchedulabilityWarnings raised while deriving it.
type Result struct {
	X        float64
	ULo      float64
	UHi      float64
	Tasks    []model.ScaledTask
	Warnings []apperr.SchedulabilityWarning
}

// Compute derives the EDF-VD scaling factor x for tasks and produces a
// ScaledTask per input task, using jobCounts[i] as tasks[i]'s job count.
func Compute(tasks []model.Task, jobCounts []int) Result {
	var uLo, uHi float64

	for _, task := range tasks {
		if task.Criticality == model.HI {
			uHi += task.Utilization()
		} else {
			uLo += task.Utilization()
		}
	}

	var warnings []apperr.SchedulabilityWarning

	x := 1.0

	switch {
	case uLo >= 1:
		warnings = append(warnings, apperr.SchedulabilityWarning{
			Reason: "U_LO >= 1: no virtualization capacity remains, scheduling with x = 1",
			ULo:    uLo,
			UHi:    uHi,
		})
	case uHi == 0 || uLo == 0:
		// Only one criticality level is present, so there is nothing to
		// virtualize against: deadlines stay unscaled with x = 1.
	default:
		x = uHi / (1 - uLo)
		if x > 1 {
			x = 1
		}
	}

	if uHi > 1 {
		warnings = append(warnings, apperr.SchedulabilityWarning{
			Reason: "U_HI > 1: HI-criticality demand alone exceeds capacity, deadline misses possible",
			ULo:    uLo,
			UHi:    uHi,
		})
	}

	scaled := make([]model.ScaledTask, len(tasks))
	for i, task := range tasks {
		jobCount := 0
		if i < len(jobCounts) {
			jobCount = jobCounts[i]
		}

		scaled[i] = model.NewScaledTask(task, jobCount, x)
	}

	return Result{X: x, ULo: uLo, UHi: uHi, Tasks: scaled, Warnings: warnings}
}
