// SPDX-License-Identifier: MIT
package assignment

import (
	"context"
	"errors"
)

var (
	// ErrNonSquare is returned when Rows() != Cols() or a Table is ragged.
	ErrNonSquare = errors.New("assignment: cost matrix is not square")

	// ErrCostRange is returned when a cost magnitude exceeds MaxAbsCost, beyond
	// which potential arithmetic could overflow int64.
	ErrCostRange = errors.New("assignment: cost out of supported range")
)

// MaxAbsCost bounds |cost[i][j]|. Potentials stay within n·MaxAbsCost, far
// below the int64 limit for any practical n.
const MaxAbsCost int64 = 1 << 40

// Costs is the read-only view the solver needs.
type Costs interface {
	Rows() int
	Cols() int
	Value(i, j int) int64
}

// Table adapts plain row slices to Costs.
type Table [][]int64

var _ Costs = Table(nil)

// Rows returns the number of rows.
func (t Table) Rows() int { return len(t) }

// Cols returns the common row length, or -1 if the rows are ragged.
func (t Table) Cols() int {
	if len(t) == 0 {
		return 0
	}
	c := len(t[0])
	for _, row := range t {
		if len(row) != c {
			return -1
		}
	}

	return c
}

// Value returns t[i][j].
func (t Table) Value(i, j int) int64 { return t[i][j] }

// Options configures Solve.
//   - Ctx: checked between phases; nil means context.Background().
type Options struct {
	Ctx context.Context
}

// DefaultOptions returns Options with a background context.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// Result holds an optimal assignment.
type Result struct {
	// ColInd[i] is the column assigned to row i; a permutation of 0..n-1.
	ColInd []int

	// Cost is Σ cost[i][ColInd[i]].
	Cost int64
}
