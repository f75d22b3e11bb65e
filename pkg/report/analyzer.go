package report

import (
	"bufio"
	"fmt"
	"os"

	"edfvdsim/pkg/apperr"
	"edfvdsim/pkg/model"
)

// Summary is the set of aggregate statistics computed over a finished run,
// shared by the analysis text file and the metrics snapshot.
type Summary struct {
	Preemptions   int
	AvgWait       float64
	AvgResponse   float64
	FinishedJobs  int
	TotalJobs     int
	Hyperperiod   float64
	ScalingFactor float64
}

// Analyze computes the preemption count and average wait/response times for
// a finished run. Preemptions is the number of identity transitions between
// adjacent run-slices; waiting and response time are only accumulated over
// jobs that finished.
func Analyze(slices []model.RunSlice, jobs []model.Job, h, x float64) Summary {
	preemptions := 0

	for i := 1; i < len(slices); i++ {
		if slices[i].Identity() != slices[i-1].Identity() {
			preemptions++
		}
	}

	var totalWait, totalResponse float64

	finished := 0

	for _, job := range jobs {
		if !job.Finished {
			continue
		}

		totalWait += job.StartTime - job.Arrival
		totalResponse += job.FinishTime - job.Arrival
		finished++
	}

	var avgWait, avgResponse float64
	if finished > 0 {
		avgWait = totalWait / float64(finished)
		avgResponse = totalResponse / float64(finished)
	}

	return Summary{
		Preemptions:   preemptions,
		AvgWait:       avgWait,
		AvgResponse:   avgResponse,
		FinishedJobs:  finished,
		TotalJobs:     len(jobs),
		Hyperperiod:   h,
		ScalingFactor: x,
	}
}

// WriteAnalysis writes summary to path in the original tool's
// "label: value" report format.
func WriteAnalysis(path string, summary Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return apperr.NewIoError("create", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	_, err = fmt.Fprintf(w, "EDF-VD Schedule Analysis\n========================\n"+
		"Number of Preemptions: %d\n"+
		"Average Waiting Time:  %.2f\n"+
		"Average Response Time: %.2f\n"+
		"Finished Jobs:         %d / %d\n"+
		"Hyperperiod:           %.2f\n"+
		"Scaling Factor x:      %.4f\n",
		summary.Preemptions, summary.AvgWait, summary.AvgResponse,
		summary.FinishedJobs, summary.TotalJobs, summary.Hyperperiod, summary.ScalingFactor)
	if err != nil {
		return apperr.NewIoError("write", path, err)
	}

	if err := w.Flush(); err != nil {
		return apperr.NewIoError("flush", path, err)
	}

	return nil
}
