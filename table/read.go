// SPDX-License-Identifier: MIT
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/kxmatch/matrix"
)

// ErrMalformed is returned for any matrix file that does not follow the
// format; the wrapping message carries the 1-based line number.
var ErrMalformed = errors.New("table: malformed matrix file")

func malformedf(line int, format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", line, fmt.Sprintf(format, args...), ErrMalformed)
}

// ReadMatrix parses a matrix file into a Compatibility matrix.
//
// Rules:
//   - the header's first field is ignored; the rest are right labels;
//   - every data line has exactly 1+n fields;
//   - blank score fields (after trimming spaces) read as 0;
//   - the number of data lines equals n.
//
// An empty input yields the empty (order 0) matrix.
// Errors: ErrMalformed (wrapped), or the reader's I/O error.
func ReadMatrix(r io.Reader) (*matrix.Compatibility, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return matrix.NewCompatibility(nil, nil, nil)
	}
	if err != nil {
		return nil, readErr(err)
	}
	last, _ := cr.FieldPos(0)
	right := header[1:]
	n := len(right)
	for i := range right {
		right[i] = strings.TrimSpace(right[i])
	}

	left := make([]string, 0, n)
	scores := make([][]int64, 0, n)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readErr(err)
		}
		line, _ := cr.FieldPos(0)
		last = line
		if len(scores) == n {
			return nil, malformedf(line, "more than %d data rows", n)
		}
		if len(rec) != n+1 {
			return nil, malformedf(line, "got %d fields, want %d", len(rec), n+1)
		}

		row := make([]int64, n)
		for j, field := range rec[1:] {
			if row[j], err = parseScore(field); err != nil {
				return nil, malformedf(line, "column %d (%s): %v", j+1, right[j], err)
			}
		}
		left = append(left, strings.TrimSpace(rec[0]))
		scores = append(scores, row)
	}
	if len(scores) != n {
		return nil, malformedf(last, "got %d data rows, header names %d columns", len(scores), n)
	}

	return matrix.NewCompatibility(scores, left, right)
}

// parseScore reads one cell: blank → 0, otherwise a nonnegative integer.
func parseScore(field string) (int64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", field)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative score %d", v)
	}

	return v, nil
}

// readErr maps csv parse errors onto ErrMalformed, keeping their line.
func readErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return malformedf(pe.Line, "%v", pe.Err)
	}

	return fmt.Errorf("ReadMatrix: %w", err)
}
