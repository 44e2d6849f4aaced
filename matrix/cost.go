// SPDX-License-Identifier: MIT

package matrix

const ctxCostOf = "CostOf"

// Cost is an n×n integer cost matrix, the minimization view consumed by the
// assignment solver. Like Compatibility it is immutable once built.
type Cost struct {
	n    int
	data []int64
}

// CostOf derives the cost matrix of m: cost[i][j] = MaxScore − score[i][j].
//
// Since MaxScore bounds every entry, cost[i][j] >= 0, and for any permutation
// π the total cost equals n*MaxScore − Σ score[i][π(i)]; minimizing the
// former maximizes the latter.
//
// Errors: ErrNilMatrix.
// Complexity: O(n²).
func CostOf(m *Compatibility) (*Cost, error) {
	if m == nil {
		return nil, matrixErrorf(ctxCostOf, ErrNilMatrix)
	}
	c := &Cost{n: m.n, data: make([]int64, len(m.data))}
	for k, v := range m.data {
		c.data[k] = m.max - v
	}

	return c, nil
}

// NewCost builds a Cost from plain rows. Values are taken as-is (negative
// costs are legal for the solver); only the shape is validated.
//
// Errors: ErrNonSquare (wrapped).
// Complexity: O(n²).
func NewCost(rows [][]int64) (*Cost, error) {
	if err := validateSquare(rows); err != nil {
		return nil, matrixErrorf("NewCost", err)
	}
	n := len(rows)
	c := &Cost{n: n, data: make([]int64, n*n)}
	for i := 0; i < n; i++ {
		copy(c.data[i*n:(i+1)*n], rows[i])
	}

	return c, nil
}

// Order returns n.
func (c *Cost) Order() int { return c.n }

// Rows returns n.
func (c *Cost) Rows() int { return c.n }

// Cols returns n.
func (c *Cost) Cols() int { return c.n }

// At returns cost[i][j] or ErrOutOfRange.
func (c *Cost) At(i, j int) (int64, error) {
	if i < 0 || i >= c.n || j < 0 || j >= c.n {
		return 0, cellErrorf("Cost.At", i, j, ErrOutOfRange)
	}

	return c.data[i*c.n+j], nil
}

// Value returns cost[i][j]; it panics on an out-of-range index.
func (c *Cost) Value(i, j int) int64 {
	if i < 0 || i >= c.n || j < 0 || j >= c.n {
		panic(cellErrorf("Cost.Value", i, j, ErrOutOfRange))
	}

	return c.data[i*c.n+j]
}
