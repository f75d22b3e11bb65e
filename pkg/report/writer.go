// Package report renders a completed simulation run to the two output
// files the original tool produced: a human-readable schedule listing and
// a summary analysis.
package report

import (
	"bufio"
	"fmt"
	"os"

	"edfvdsim/pkg/apperr"
	"edfvdsim/pkg/model"
)

// WriteSchedule writes one header line followed by one line per run-slice
// to path, in the format "[ start -> end]: Task=name Job=id".
func WriteSchedule(path string, slices []model.RunSlice) error {
	file, err := os.Create(path)
	if err != nil {
		return apperr.NewIoError("create", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	if _, err := fmt.Fprintln(w, "EDF-VD Schedule from 0 to each event:"); err != nil {
		return apperr.NewIoError("write", path, err)
	}

	for _, slice := range slices {
		_, err := fmt.Fprintf(w, "[%6.2f -> %6.2f]: Task=%s Job=%d\n",
			slice.Start, slice.End, slice.TaskName, slice.JobID)
		if err != nil {
			return apperr.NewIoError("write", path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return apperr.NewIoError("flush", path, err)
	}

	return nil
}
