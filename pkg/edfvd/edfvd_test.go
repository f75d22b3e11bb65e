package edfvd

import (
	"math"
	"testing"

	"edfvdsim/pkg/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeScenarioB(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{Index: 0, Name: "H1", Phase: 0, Period: 10, WCET: 5, Deadline: 10, Criticality: model.HI},
		{Index: 1, Name: "L1", Phase: 0, Period: 20, WCET: 4, Deadline: 20, Criticality: model.LO},
	}

	result := Compute(tasks, []int{2, 1})

	if !almostEqual(result.UHi, 0.5) {
		t.Fatalf("UHi = %v, want 0.5", result.UHi)
	}

	if !almostEqual(result.ULo, 0.2) {
		t.Fatalf("ULo = %v, want 0.2", result.ULo)
	}

	if !almostEqual(result.X, 0.625) {
		t.Fatalf("X = %v, want 0.625", result.X)
	}

	if !almostEqual(result.Tasks[0].VirtualDeadline, 6.25) {
		t.Fatalf("H1 virtual deadline = %v, want 6.25", result.Tasks[0].VirtualDeadline)
	}

	if result.Tasks[1].VirtualDeadline != 20 {
		t.Fatalf("L1 virtual deadline = %v, want 20", result.Tasks[1].VirtualDeadline)
	}

	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
}

func TestComputePureLOYieldsXOne(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{Index: 0, Name: "T1", Phase: 0, Period: 4, WCET: 1, Deadline: 4, Criticality: model.LO},
		{Index: 1, Name: "T2", Phase: 0, Period: 6, WCET: 2, Deadline: 6, Criticality: model.LO},
	}

	result := Compute(tasks, []int{3, 2})

	if result.X != 1 {
		t.Fatalf("X = %v, want 1", result.X)
	}

	for _, st := range result.Tasks {
		if st.VirtualDeadline != st.Deadline {
			t.Fatalf("expected LO virtual deadline == deadline, got %+v", st)
		}
	}
}

func TestComputeULoAtLeastOneWarnsAndClampsX(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{Index: 0, Name: "L1", Phase: 0, Period: 2, WCET: 2, Deadline: 2, Criticality: model.LO},
		{Index: 1, Name: "H1", Phase: 0, Period: 10, WCET: 1, Deadline: 10, Criticality: model.HI},
	}

	result := Compute(tasks, []int{5, 1})

	if result.X != 1 {
		t.Fatalf("X = %v, want 1 when U_LO >= 1", result.X)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
}

func TestComputeUHiAboveOneWarns(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{Index: 0, Name: "H1", Phase: 0, Period: 2, WCET: 3, Deadline: 2, Criticality: model.HI},
	}

	result := Compute(tasks, []int{5})

	if result.UHi <= 1 {
		t.Fatalf("expected UHi > 1, got %v", result.UHi)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning for U_HI > 1, got %d", len(result.Warnings))
	}
}

func TestComputeHIOnlyUnderCapacityBehavesLikePlainEDF(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		{Index: 0, Name: "H1", Phase: 0, Period: 10, WCET: 3, Deadline: 10, Criticality: model.HI},
	}

	result := Compute(tasks, []int{2})

	if result.X != 1 {
		t.Fatalf("X = %v, want 1", result.X)
	}

	if result.Tasks[0].VirtualDeadline != result.Tasks[0].Deadline {
		t.Fatalf("expected virtual deadline == deadline when x == 1")
	}
}
