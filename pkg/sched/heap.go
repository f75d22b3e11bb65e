package sched

import "edfvdsim/pkg/model"

// activeItem is one entry in the active-set heap: the job's current
// priority key (virtual absolute deadline, tie-broken by task/job index)
// plus an index into the owning job slice, so the heap never copies or
// re-matches Job values by equality.
type activeItem struct {
	virtualAbsoluteDeadline float64
	taskIndex               int
	jobID                   int
	jobSliceIndex           int
}

func less(a, b activeItem) bool {
	if a.virtualAbsoluteDeadline != b.virtualAbsoluteDeadline {
		return a.virtualAbsoluteDeadline < b.virtualAbsoluteDeadline
	}

	if a.taskIndex != b.taskIndex {
		return a.taskIndex < b.taskIndex
	}

	return a.jobID < b.jobID
}

// activeHeap is a container/heap.Interface over activeItem, used as the
// scheduler's min-priority active set. The engine maintains the invariant
// that every currently-active, unfinished job has exactly one entry in the
// heap at a time: a job is popped when chosen to run and only pushed back
// if it remains unfinished, so no stale entry for a finished job can ever
// reach the root and no lazy-deletion pass is needed.
type activeHeap []activeItem

func (h activeHeap) Len() int            { return len(h) }
func (h activeHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h activeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *activeHeap) Push(x interface{}) { *h = append(*h, x.(activeItem)) }

func (h *activeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

func itemFor(job *model.Job, sliceIndex int) activeItem {
	return activeItem{
		virtualAbsoluteDeadline: job.VirtualAbsoluteDeadline,
		taskIndex:               job.TaskIndex,
		jobID:                   job.JobID,
		jobSliceIndex:           sliceIndex,
	}
}
