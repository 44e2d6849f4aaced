// SPDX-License-Identifier: MIT
package result

import "errors"

var (
	// ErrNilMatrix is returned when Assemble receives a nil matrix.
	ErrNilMatrix = errors.New("result: nil matrix")

	// ErrLengthMismatch is returned when len(colInd) != matrix order.
	ErrLengthMismatch = errors.New("result: col_ind length does not match matrix order")

	// ErrIndexOutOfRange is returned when colInd holds an index outside
	// [0, n) that is not Unmatched.
	ErrIndexOutOfRange = errors.New("result: col_ind entry out of range")
)

const (
	// Unmatched marks a left item without a counterpart. It is never a valid index.
	Unmatched = -1

	// UnmatchedLabel is rendered in place of the right label for Unmatched.
	UnmatchedLabel = "NONE"
)

// Record is one line of a matching result.
type Record struct {
	Left       int    `json:"left"`
	Right      int    `json:"right"`
	LeftLabel  string `json:"left_label"`
	RightLabel string `json:"right_label"`
	Score      int64  `json:"score"`
}

// Matched reports whether the record has a counterpart.
func (r Record) Matched() bool { return r.Right != Unmatched }

// Result is the ordered record list (one per left item) plus its total.
type Result struct {
	Records []Record `json:"records"`
	Total   int64    `json:"total"`
}
