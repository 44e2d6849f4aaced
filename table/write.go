// SPDX-License-Identifier: MIT
package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/katalvlaran/kxmatch/matrix"
	"github.com/katalvlaran/kxmatch/result"
)

// WriteMatrix writes m in the matrix file format ReadMatrix accepts.
func WriteMatrix(w io.Writer, m *matrix.Compatibility) error {
	if m == nil {
		return fmt.Errorf("WriteMatrix: %w", matrix.ErrNilMatrix)
	}
	n := m.Order()
	cw := csv.NewWriter(w)

	rec := make([]string, n+1)
	rec[0] = ""
	copy(rec[1:], m.RightLabels())
	if err := cw.Write(rec); err != nil {
		return fmt.Errorf("WriteMatrix: %w", err)
	}
	for i := 0; i < n; i++ {
		rec[0] = m.LeftLabel(i)
		for j := 0; j < n; j++ {
			rec[j+1] = strconv.FormatInt(m.Score(i, j), 10)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("WriteMatrix: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteResult writes one `left,right_or_NONE,score_or_0` line per record.
func WriteResult(w io.Writer, res result.Result) error {
	cw := csv.NewWriter(w)
	for _, rec := range res.Records {
		line := []string{rec.LeftLabel, rec.RightLabel, strconv.FormatInt(rec.Score, 10)}
		if !rec.Matched() {
			line[1], line[2] = result.UnmatchedLabel, "0"
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("WriteResult: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteResultJSON writes res as an indented JSON document.
func WriteResultJSON(w io.Writer, res result.Result) error {
	if res.Records == nil {
		res.Records = []result.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(res)
}

// WriteResultText writes an aligned table followed by the total line.
func WriteResultText(w io.Writer, res result.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEFT\tRIGHT\tSCORE")
	for _, rec := range res.Records {
		right := rec.RightLabel
		if !rec.Matched() {
			right = result.UnmatchedLabel
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", rec.LeftLabel, right, rec.Score)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("WriteResultText: %w", err)
	}
	_, err := fmt.Fprintf(w, "Total matching score: %d\n", res.Total)

	return err
}

// Formats accepted by Write.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatText = "text"
)

// Write renders res in the named format.
func Write(w io.Writer, format string, res result.Result) error {
	switch format {
	case FormatCSV, "":
		return WriteResult(w, res)
	case FormatJSON:
		return WriteResultJSON(w, res)
	case FormatText:
		return WriteResultText(w, res)
	default:
		return fmt.Errorf("table: unknown output format %q", format)
	}
}
