// SPDX-License-Identifier: MIT

// Package matrix - Compatibility storage (row-major) & safe accessors.
//
// Purpose:
//   - Hold an immutable n×n score table plus left/right labels and MaxScore.
//   - Guarantee safety at the public surface: At returns errors; Score mirrors
//     slice indexing for hot loops that already validated their bounds.
//
// AI-Hints:
//   - Solvers should read through Score(i, j) after checking Order() once.
//   - Use Scores() only for export; it deep-copies.

package matrix

import (
	"fmt"
	"strings"
)

const (
	ctxNew = "NewCompatibility"
	ctxAt  = "Compatibility.At"
)

// Compatibility is an immutable square matrix of nonnegative scores.
//   - n is the order (rows == cols == n; n may be 0 for the empty matrix).
//   - data holds n*n scores in row-major order (offset = i*n + j).
//   - left[i] labels row i, right[j] labels column j.
//   - max is the largest score (0 when n == 0).
type Compatibility struct {
	n     int
	data  []int64
	left  []string
	right []string
	max   int64
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Compatibility)(nil)

// NewCompatibility builds a Compatibility matrix from row slices and labels.
//
// Implementation:
//   - Stage 1: validate shape (n×n), then values (>= 0), then label counts.
//   - Stage 2: copy scores into a flat buffer while tracking the maximum.
//   - Stage 3: copy labels; nil labels become "L1".."Ln" / "R1".."Rn".
//
// Errors: ErrNonSquare, ErrNegativeScore, ErrLabelCount (wrapped).
// Complexity: O(n²) time and memory.
func NewCompatibility(scores [][]int64, left, right []string) (*Compatibility, error) {
	var err error
	if err = validateSquare(scores); err != nil {
		return nil, matrixErrorf(ctxNew, err)
	}
	if err = validateNonNegative(scores); err != nil {
		return nil, matrixErrorf(ctxNew, err)
	}
	n := len(scores)
	if err = validateLabels(left, n); err != nil {
		return nil, matrixErrorf(ctxNew+": left", err)
	}
	if err = validateLabels(right, n); err != nil {
		return nil, matrixErrorf(ctxNew+": right", err)
	}

	m := &Compatibility{
		n:     n,
		data:  make([]int64, n*n),
		left:  copyLabels(left, n, "L"),
		right: copyLabels(right, n, "R"),
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v := scores[i][j]
			m.data[i*n+j] = v
			if v > m.max {
				m.max = v
			}
		}
	}

	return m, nil
}

// MustCompatibility is like NewCompatibility but panics on error.
// Intended for literals in tests and examples.
func MustCompatibility(scores [][]int64, left, right []string) *Compatibility {
	m, err := NewCompatibility(scores, left, right)
	if err != nil {
		panic(err)
	}

	return m
}

func copyLabels(labels []string, n int, prefix string) []string {
	out := make([]string, n)
	if labels == nil {
		for i := 0; i < n; i++ {
			out[i] = fmt.Sprintf("%s%d", prefix, i+1)
		}

		return out
	}
	copy(out, labels)

	return out
}

// Order returns n, the number of original pairs.
func (m *Compatibility) Order() int { return m.n }

// Rows returns n. Together with Cols it lets *Compatibility be validated
// by shape-generic code.
func (m *Compatibility) Rows() int { return m.n }

// Cols returns n.
func (m *Compatibility) Cols() int { return m.n }

// MaxScore returns the largest score in the matrix (0 for an empty matrix).
func (m *Compatibility) MaxScore() int64 { return m.max }

// At returns score[i][j] or ErrOutOfRange.
// Complexity: O(1).
func (m *Compatibility) At(i, j int) (int64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, cellErrorf(ctxAt, i, j, ErrOutOfRange)
	}

	return m.data[i*m.n+j], nil
}

// Score returns score[i][j] without an error return.
// It panics on an out-of-range index, exactly like slice indexing.
func (m *Compatibility) Score(i, j int) int64 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(cellErrorf("Compatibility.Score", i, j, ErrOutOfRange))
	}

	return m.data[i*m.n+j]
}

// LeftLabel returns the label of row i ("" when i is out of range).
func (m *Compatibility) LeftLabel(i int) string {
	if i < 0 || i >= m.n {
		return ""
	}

	return m.left[i]
}

// RightLabel returns the label of column j ("" when j is out of range).
func (m *Compatibility) RightLabel(j int) string {
	if j < 0 || j >= m.n {
		return ""
	}

	return m.right[j]
}

// LeftLabels returns a copy of the row labels.
func (m *Compatibility) LeftLabels() []string { return append([]string(nil), m.left...) }

// RightLabels returns a copy of the column labels.
func (m *Compatibility) RightLabels() []string { return append([]string(nil), m.right...) }

// Scores returns a deep copy of the score table as row slices.
// Complexity: O(n²).
func (m *Compatibility) Scores() [][]int64 {
	out := make([][]int64, m.n)
	for i := 0; i < m.n; i++ {
		out[i] = append([]int64(nil), m.data[i*m.n:(i+1)*m.n]...)
	}

	return out
}

// String renders one bracketed row per line, e.g. "[6, 7, 8]\n".
func (m *Compatibility) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.n; i++ {
		sb.WriteString("[")
		for j = 0; j < m.n; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", m.data[i*m.n+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
