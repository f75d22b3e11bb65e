// Package tokenize provides the whitespace-insensitive token reader shared
// by the task-set loader and the job expander's execution-time trace
// reader. Both input formats are streams of tokens rather than fixed lines,
// so both read through the same bufio.Scanner/ScanWords tokenizer instead
// of a line-oriented or fscanf-style partial parser.
package tokenize

import (
	"bufio"
	"io"
	"strconv"

	"edfvdsim/pkg/apperr"
)

// Reader yields successive whitespace-separated tokens from an io.Reader,
// reporting failures as apperr.InputError tagged with the supplied source
// name and the caller's notion of "record index" (a task index, a job
// index, and so on -- tokenize itself has no opinion on record structure).
type Reader struct {
	scanner *bufio.Scanner
	source  string
}

// NewReader constructs a Reader over r, identifying it as source in any
// error produced.
func NewReader(source string, r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &Reader{scanner: scanner, source: source}
}

// Token reads the next whitespace-separated token.
func (r *Reader) Token(recordIndex int, field string) (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", apperr.WrapInputError(r.source, recordIndex, "reading "+field, err)
		}

		return "", apperr.NewInputError(r.source, recordIndex, "unexpected end of input reading "+field)
	}

	return r.scanner.Text(), nil
}

// Int reads the next token and parses it as a base-10 integer.
func (r *Reader) Int(recordIndex int, field string) (int, error) {
	token, err := r.Token(recordIndex, field)
	if err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(token)
	if err != nil {
		return 0, apperr.WrapInputError(r.source, recordIndex, "non-integer "+field+" "+strconv.Quote(token), err)
	}

	return value, nil
}

// Float reads the next token and parses it as a 64-bit float.
func (r *Reader) Float(recordIndex int, field string) (float64, error) {
	token, err := r.Token(recordIndex, field)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, apperr.WrapInputError(r.source, recordIndex, "non-numeric "+field+" "+strconv.Quote(token), err)
	}

	return value, nil
}
