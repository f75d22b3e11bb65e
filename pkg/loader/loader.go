// Package loader reads the whitespace-delimited task-set file into the
// ordered list of model.Task values the rest of the pipeline operates on.
package loader

import (
	"io"
	"os"
	"strings"

	"edfvdsim/pkg/apperr"
	"edfvdsim/pkg/model"
	"edfvdsim/pkg/tokenize"
)

// Load reads the task file at path and returns the ordered task list.
//
// Format: the first token is an integer N, followed by N records of six
// whitespace-separated fields each: name phase period wcet deadline
// critChar. Whitespace (including newlines) between and within records is
// not significant; the file is tokenized, not parsed line by line.
func Load(path string) ([]model.Task, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NewIoError("open", path, apperr.ErrMissingFile)
		}

		return nil, apperr.NewIoError("open", path, err)
	}
	defer file.Close()

	return parse(path, file)
}

func parse(source string, r io.Reader) ([]model.Task, error) {
	tok := tokenize.NewReader(source, r)

	count, err := tok.Int(-1, "task count")
	if err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, apperr.NewInputError(source, -1, "task count must be non-negative")
	}

	tasks := make([]model.Task, 0, count)

	for i := 0; i < count; i++ {
		task, err := parseTaskRecord(tok, source, i)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}

func parseTaskRecord(tok *tokenize.Reader, source string, index int) (model.Task, error) {
	name, err := tok.Token(index, "name")
	if err != nil {
		return model.Task{}, err
	}

	phase, err := tok.Float(index, "phase")
	if err != nil {
		return model.Task{}, err
	}

	period, err := tok.Float(index, "period")
	if err != nil {
		return model.Task{}, err
	}

	if period <= 0 {
		return model.Task{}, apperr.NewInputError(source, index, "period must be positive")
	}

	wcet, err := tok.Float(index, "wcet")
	if err != nil {
		return model.Task{}, err
	}

	if wcet <= 0 {
		return model.Task{}, apperr.NewInputError(source, index, "wcet must be positive")
	}

	deadline, err := tok.Float(index, "deadline")
	if err != nil {
		return model.Task{}, err
	}

	if deadline <= 0 {
		return model.Task{}, apperr.NewInputError(source, index, "deadline must be positive")
	}

	critToken, err := tok.Token(index, "criticality")
	if err != nil {
		return model.Task{}, err
	}

	return model.Task{
		Index:       index,
		Name:        name,
		Phase:       phase,
		Period:      period,
		WCET:        wcet,
		Deadline:    deadline,
		Criticality: parseCriticality(critToken),
	}, nil
}

func parseCriticality(token string) model.Criticality {
	trimmed := strings.TrimSpace(token)
	if trimmed == "H" || trimmed == "h" {
		return model.HI
	}

	return model.LO
}
