// SPDX-License-Identifier: MIT
package result

import (
	"fmt"

	"github.com/katalvlaran/kxmatch/matrix"
)

// Assemble scores colInd against m.
//
// For each i: Right = colInd[i]; when Unmatched the right label is
// UnmatchedLabel and the score 0, otherwise the score is m.Score(i, colInd[i]).
// Records appear in left-item order; Total is their sum.
//
// Errors: ErrNilMatrix, ErrLengthMismatch, ErrIndexOutOfRange (wrapped with
// the offending position).
// Complexity: O(n).
func Assemble(m *matrix.Compatibility, colInd []int) (Result, error) {
	if m == nil {
		return Result{}, fmt.Errorf("Assemble: %w", ErrNilMatrix)
	}
	n := m.Order()
	if len(colInd) != n {
		return Result{}, fmt.Errorf("Assemble: len %d, order %d: %w", len(colInd), n, ErrLengthMismatch)
	}

	res := Result{Records: make([]Record, n)}
	for i, j := range colInd {
		rec := Record{Left: i, Right: j, LeftLabel: m.LeftLabel(i)}
		switch {
		case j == Unmatched:
			rec.RightLabel = UnmatchedLabel
		case j < 0 || j >= n:
			return Result{}, fmt.Errorf("Assemble: col_ind[%d]=%d: %w", i, j, ErrIndexOutOfRange)
		default:
			rec.RightLabel = m.RightLabel(j)
			rec.Score = m.Score(i, j)
		}
		res.Records[i] = rec
		res.Total += rec.Score
	}

	return res, nil
}

// FromMate re-expresses a matcher mate array as a col_ind array.
// Negative entries become Unmatched; the input is not modified.
func FromMate(mate []int) []int {
	colInd := make([]int, len(mate))
	for i, v := range mate {
		if v < 0 {
			v = Unmatched
		}
		colInd[i] = v
	}

	return colInd
}

// Matched returns the number of records with a counterpart.
func (r Result) Matched() int {
	c := 0
	for _, rec := range r.Records {
		if rec.Matched() {
			c++
		}
	}

	return c
}

// Unmatched returns the left indices without a counterpart, ascending.
func (r Result) Unmatched() []int {
	var out []int
	for _, rec := range r.Records {
		if !rec.Matched() {
			out = append(out, rec.Left)
		}
	}

	return out
}
