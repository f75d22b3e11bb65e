package sched_test

import (
	"context"
	"testing"

	"edfvdsim/pkg/edfvd"
	"edfvdsim/pkg/hyperperiod"
	"edfvdsim/pkg/jobexpand"
	"edfvdsim/pkg/loader"
	"edfvdsim/pkg/model"
	"edfvdsim/pkg/sched"
)

// TestFullPipelineScenarioA runs the real loader/hyperperiod/edfvd/jobexpand
// stages against on-disk fixtures before handing the result to the engine,
// exercising the same wiring cmd/edfvdsim performs rather than hand-built
// model.Job values.
func TestFullPipelineScenarioA(t *testing.T) {
	t.Parallel()

	tasks, err := loader.Load("testdata/scenario_a_tasks.txt")
	if err != nil {
		t.Fatalf("loader.Load: %v", err)
	}

	hp := hyperperiod.Compute(tasks)
	if hp.H != 12 {
		t.Fatalf("H = %v, want 12", hp.H)
	}

	vd := edfvd.Compute(tasks, hp.JobCounts)
	if vd.X != 1 {
		t.Fatalf("x = %v, want 1 (pure LO task set)", vd.X)
	}

	jobs, err := jobexpand.Expand(vd.Tasks, hp.H, "testdata/scenario_a_exec.txt")
	if err != nil {
		t.Fatalf("jobexpand.Expand: %v", err)
	}

	if len(jobs) != 5 {
		t.Fatalf("job count = %d, want 5", len(jobs))
	}

	result, err := sched.New(hp.H).Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []model.RunSlice{
		{Start: 0, End: 1, TaskIndex: 0, TaskName: "T1", JobID: 0},
		{Start: 1, End: 3, TaskIndex: 1, TaskName: "T2", JobID: 0},
		{Start: 4, End: 5, TaskIndex: 0, TaskName: "T1", JobID: 1},
		{Start: 6, End: 8, TaskIndex: 1, TaskName: "T2", JobID: 1},
		{Start: 8, End: 9, TaskIndex: 0, TaskName: "T1", JobID: 2},
	}

	if len(result.Slices) != len(want) {
		t.Fatalf("slices = %+v, want %+v", result.Slices, want)
	}

	for i, w := range want {
		if result.Slices[i] != w {
			t.Fatalf("slice %d = %+v, want %+v", i, result.Slices[i], w)
		}
	}
}
