// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Single source of truth for shape and value checks on raw [][]int64 input.
//   - Return plain sentinel errors (wrapped with coordinates) so constructors
//     wrap uniformly with their own tag.
//
// Determinism & Performance:
//   - Pure; fixed i→j scan order; no allocation.

package matrix

// validateSquare checks that rows is an n×n table, n = len(rows).
// Complexity: O(n).
func validateSquare(rows [][]int64) error {
	n := len(rows)
	for i := 0; i < n; i++ {
		if len(rows[i]) != n {
			return cellErrorf("validateSquare", i, len(rows[i]), ErrNonSquare)
		}
	}

	return nil
}

// validateNonNegative rejects any entry below zero.
// Assumes validateSquare already passed.
// Complexity: O(n²).
func validateNonNegative(rows [][]int64) error {
	var i, j int
	for i = range rows {
		for j = range rows[i] {
			if rows[i][j] < 0 {
				return cellErrorf("validateNonNegative", i, j, ErrNegativeScore)
			}
		}
	}

	return nil
}

// validateLabels ensures that a label slice is either nil (labels will be
// synthesized) or exactly n long.
func validateLabels(labels []string, n int) error {
	if labels != nil && len(labels) != n {
		return ErrLabelCount
	}

	return nil
}
