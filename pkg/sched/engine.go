// Package sched implements the EDF-VD discrete-event scheduler engine: the
// decision-point loop that produces the run-slice timeline for a job list
// over [0, H).
package sched

import (
	"container/heap"
	"context"
	"fmt"
	"sort"

	"edfvdsim/pkg/model"
)

// epsilon is the remaining-time tolerance below which a job is considered
// finished, guarding against floating point residue after repeated
// subtraction.
const epsilon = 1e-9

// Result is the outcome of a completed simulation run: the ordered
// run-slice timeline and the (possibly mutated) job list, whose StartTime,
// FinishTime, and Finished fields are now populated for every job that ran
// to completion within [0, H).
type Result struct {
	Slices []model.RunSlice
	Jobs   []model.Job
}

// Engine runs the EDF-VD decision-point simulation described in the
// scheduler engine design: time advances only at arrivals, completions, 0,
// and H, and at every decision point the job with the earliest virtual
// absolute deadline is dispatched, tie-broken by (TaskIndex, JobID).
type Engine struct {
	h float64
}

// New constructs an Engine that simulates over [0, h).
func New(h float64) *Engine {
	return &Engine{h: h}
}

// Run simulates jobs from t=0 to the engine's hyperperiod and returns the
// resulting run-slice timeline. jobs is copied before mutation; the
// original slice passed in is left untouched.
//
// ctx is checked once per decision point purely so Run composes with the
// rest of the codebase's cancellation idiom -- the engine performs no I/O
// and otherwise never blocks, so cancellation is not required for
// correctness.
func (e *Engine) Run(ctx context.Context, jobs []model.Job) (Result, error) {
	working := make([]model.Job, len(jobs))
	copy(working, jobs)

	order := arrivalOrder(working)

	var (
		active  activeHeap
		slices  []model.RunSlice
		now     float64
		cursor  int
		lastID  model.Identity
		hasLast bool
	)

	heap.Init(&active)

	for now < e.h {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("sched: run cancelled: %w", err)
		}

		cursor = admitArrivals(working, order, cursor, now, &active)

		if active.Len() == 0 {
			nextArrival, ok := peekNextArrival(working, order, cursor)
			if !ok || nextArrival >= e.h {
				break
			}

			now = nextArrival

			continue
		}

		item := heap.Pop(&active).(activeItem)
		chosen := &working[item.jobSliceIndex]

		nextArrival, hasArrival := peekNextArrival(working, order, cursor)

		tArrival := e.h
		if hasArrival {
			tArrival = nextArrival
		}

		tFinish := now + chosen.Remaining
		tNext := minOf(tArrival, tFinish, e.h)

		identity := chosen.Identity()
		if !hasLast || identity != lastID {
			slices = append(slices, model.RunSlice{
				Start:     now,
				End:       tNext,
				TaskIndex: chosen.TaskIndex,
				TaskName:  chosen.TaskName,
				JobID:     chosen.JobID,
			})
			lastID = identity
			hasLast = true
		} else {
			slices[len(slices)-1].End = tNext
		}

		if chosen.StartTime == model.Undefined {
			chosen.StartTime = now
		}

		chosen.Remaining -= tNext - now
		now = tNext

		if chosen.Remaining <= epsilon {
			chosen.Finished = true
			chosen.FinishTime = now
		} else {
			heap.Push(&active, itemFor(chosen, item.jobSliceIndex))
		}
	}

	return Result{Slices: slices, Jobs: working}, nil
}

// arrivalOrder returns the indices of jobs sorted by (Arrival, TaskIndex,
// JobID), the order in which jobs become eligible to run.
func arrivalOrder(jobs []model.Job) []int {
	order := make([]int, len(jobs))
	for i := range jobs {
		order[i] = i
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := jobs[order[i]], jobs[order[j]]
		if a.Arrival != b.Arrival {
			return a.Arrival < b.Arrival
		}

		if a.TaskIndex != b.TaskIndex {
			return a.TaskIndex < b.TaskIndex
		}

		return a.JobID < b.JobID
	})

	return order
}

// admitArrivals pushes every job whose arrival is <= now into active,
// advancing and returning the arrival cursor.
func admitArrivals(jobs []model.Job, order []int, cursor int, now float64, active *activeHeap) int {
	for cursor < len(order) && jobs[order[cursor]].Arrival <= now {
		idx := order[cursor]
		heap.Push(active, itemFor(&jobs[idx], idx))
		cursor++
	}

	return cursor
}

// peekNextArrival returns the arrival time of the next not-yet-admitted
// job, if any.
func peekNextArrival(jobs []model.Job, order []int, cursor int) (float64, bool) {
	if cursor >= len(order) {
		return 0, false
	}

	return jobs[order[cursor]].Arrival, true
}

func minOf(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}

	if c < m {
		m = c
	}

	return m
}
