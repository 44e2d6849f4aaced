// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All constructors and accessors return these sentinels (optionally wrapped
// with a call-site tag via matrixErrorf); tests MUST check them via errors.Is.
// No exported function panics on user input; Score/Value panic only on an
// out-of-range index, exactly like slice indexing.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrNilMatrix indicates that a nil matrix pointer was passed or used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNonSquare signals that the score rows do not form an n×n square
	// (ragged rows, or a row count different from the column count).
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNegativeScore signals a score below zero; compatibility scores are
	// nonnegative by definition.
	ErrNegativeScore = errors.New("matrix: negative score")

	// ErrLabelCount signals that the number of left or right labels does not
	// match the matrix order.
	ErrLabelCount = errors.New("matrix: label count does not match order")

	// ErrOutOfRange indicates that a row or column index is outside [0, n).
	ErrOutOfRange = errors.New("matrix: index out of range")
)

// matrixErrorf wraps err with an operation tag ("NewCompatibility", "CostOf", ...).
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// cellErrorf wraps err with an operation tag and the offending coordinates.
func cellErrorf(op string, row, col int, err error) error {
	return fmt.Errorf("%s(%d,%d): %w", op, row, col, err)
}
