// Package model defines the value types shared by every stage of the
// simulator pipeline: tasks, scaled tasks, jobs, and run-slices.
package model

import "fmt"

// Criticality distinguishes low-criticality tasks, which keep their nominal
// deadline, from high-criticality tasks, whose deadline is virtualized under
// EDF-VD.
type Criticality int

const (
	LO Criticality = iota
	HI
)

func (c Criticality) String() string {
	if c == HI {
		return "HI"
	}

	return "LO"
}

// Task is an immutable periodic task description as read from the task
// file. Index is the task's position in the loaded list and doubles as the
// deterministic tie-break key during scheduling.
type Task struct {
	Index       int
	Name        string
	Phase       float64
	Period      float64
	WCET        float64
	Deadline    float64
	Criticality Criticality
}

// Utilization returns wcet/period for this task.
func (t Task) Utilization() float64 {
	return t.WCET / t.Period
}

// ScaledTask pairs a Task with its derived virtual deadline and its job
// count in the hyperperiod. NewScaledTask is its constructor and enforces the
// EDF-VD virtual-deadline invariant; the fields are exported, so a struct
// literal can set VirtualDeadline without that check.
type ScaledTask struct {
	Task
	VirtualDeadline float64
	JobCount        int
}

// NewScaledTask builds a ScaledTask from a Task, the hyperperiod-derived job
// count, and the global EDF-VD scaling factor x. For LO tasks the virtual
// deadline equals the nominal deadline; for HI tasks it is deadline*x.
func NewScaledTask(task Task, jobCount int, x float64) ScaledTask {
	virtualDeadline := task.Deadline
	if task.Criticality == HI {
		virtualDeadline = task.Deadline * x
	}

	return ScaledTask{
		Task:            task,
		VirtualDeadline: virtualDeadline,
		JobCount:        jobCount,
	}
}

func (t ScaledTask) String() string {
	return fmt.Sprintf("%s(phase=%.2f period=%.2f wcet=%.2f deadline=%.2f crit=%s vdl=%.4f)",
		t.Name, t.Phase, t.Period, t.WCET, t.Deadline, t.Criticality, t.VirtualDeadline)
}
