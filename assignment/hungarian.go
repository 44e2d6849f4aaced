// SPDX-License-Identifier: MIT
package assignment

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/kxmatch/matrix"
)

// inf is larger than any reduced cost reachable under MaxAbsCost.
const inf = math.MaxInt64 / 4

// Solve returns a minimum-cost perfect assignment of c.
//
// Steps:
//  1. Validate: Rows()==Cols() (ErrNonSquare), |cost| <= MaxAbsCost (ErrCostRange).
//  2. For each row i (one phase), with column 0 as a virtual root holding i:
//     a. Grow the alternating tree one column at a time, keeping minv[j],
//     the smallest reduced cost reaching column j, and way[j], the column
//     it was reached from.
//     b. Shift potentials by delta = min minv over unused columns, which
//     makes at least one new edge tight.
//     c. Stop when the newly reached column is free, then flip the path
//     back to the root via way[].
//  3. Read the permutation off p[] (p[j] = row matched to column j).
//
// Complexity: O(n³) time, O(n) extra memory.
func Solve(c Costs, opts Options) (Result, error) {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if c == nil {
		return Result{}, fmt.Errorf("Solve: %w", ErrNonSquare)
	}
	n := c.Rows()
	if c.Cols() != n {
		return Result{}, fmt.Errorf("Solve: %d rows, %d cols: %w", n, c.Cols(), ErrNonSquare)
	}
	if n == 0 {
		return Result{ColInd: []int{}}, nil
	}
	if err := validateRange(c, n); err != nil {
		return Result{}, err
	}

	// 1-indexed potentials and bookkeeping; index 0 is the virtual column.
	var (
		u    = make([]int64, n+1)
		v    = make([]int64, n+1)
		p    = make([]int, n+1)
		way  = make([]int, n+1)
		minv = make([]int64, n+1)
		used = make([]bool, n+1)
	)

	var i, j, i0, j0, j1 int
	var delta, cur int64
	for i = 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("Solve: phase %d: %w", i, err)
		}
		p[0] = i
		j0 = 0
		for j = 0; j <= n; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 = p[j0]
			delta = inf
			j1 = 0
			for j = 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur = c.Value(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if j1 == 0 {
				// A square finite matrix always leaves an unused column here.
				panic(fmt.Sprintf("assignment: phase %d found no column to extend the tree", i))
			}
			for j = 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along way[] back to the virtual root.
		for j0 != 0 {
			j1 = way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	res := Result{ColInd: make([]int, n)}
	for j = 1; j <= n; j++ {
		res.ColInd[p[j]-1] = j - 1
	}
	for i = 0; i < n; i++ {
		res.Cost += c.Value(i, res.ColInd[i])
	}

	return res, nil
}

// MaximizeScore solves the assignment model on a compatibility matrix: it
// derives the cost matrix (cost = MaxScore − score) and minimizes it, which
// maximizes Σ score[i][ColInd[i]]. Result.Cost is the transformed cost.
func MaximizeScore(m *matrix.Compatibility, opts Options) (Result, error) {
	cost, err := matrix.CostOf(m)
	if err != nil {
		return Result{}, fmt.Errorf("MaximizeScore: %w", err)
	}

	return Solve(cost, opts)
}

// validateRange rejects costs whose magnitude could overflow potentials.
// Complexity: O(n²).
func validateRange(c Costs, n int) error {
	var i, j int
	var x int64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			x = c.Value(i, j)
			if x > MaxAbsCost || x < -MaxAbsCost {
				return fmt.Errorf("Solve: cost(%d,%d)=%d: %w", i, j, x, ErrCostRange)
			}
		}
	}

	return nil
}
