// Package jobexpand materializes the concrete job list for a scaled task
// set over [0, H), attaching each job's actual execution time from the
// trace file.
package jobexpand

import (
	"io"
	"os"

	"edfvdsim/pkg/apperr"
	"edfvdsim/pkg/model"
	"edfvdsim/pkg/tokenize"
)

// Expand reads the execution-time trace at path and builds the ordered job
// list for tasks, whose hyperperiod is h.
//
// Format: a stream of whitespace-separated positive reals. For each task i
// in input order, the next tasks[i].JobCount tokens are that task's
// per-job actual execution times.
func Expand(tasks []model.ScaledTask, h float64, path string) ([]model.Job, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NewIoError("open", path, apperr.ErrMissingFile)
		}

		return nil, apperr.NewIoError("open", path, err)
	}
	defer file.Close()

	return expand(tasks, h, path, file)
}

func expand(tasks []model.ScaledTask, h float64, source string, r io.Reader) ([]model.Job, error) {
	tok := tokenize.NewReader(source, r)

	var jobs []model.Job

	for _, task := range tasks {
		for jobID := 0; jobID < task.JobCount; jobID++ {
			actualExec, err := tok.Float(task.Index, "actual_exec_time")
			if err != nil {
				return nil, err
			}

			if actualExec <= 0 {
				return nil, apperr.NewInputError(source, task.Index, "actual execution time must be positive")
			}

			arrival := task.Phase + float64(jobID)*task.Period
			if arrival >= h {
				continue
			}

			jobs = append(jobs, model.NewJob(task, jobID, arrival, actualExec))
		}
	}

	return jobs, nil
}
