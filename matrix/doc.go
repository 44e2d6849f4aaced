// SPDX-License-Identifier: MIT

// Package matrix holds the data model shared by every solver in kxmatch:
// the square compatibility matrix of nonnegative integer scores and the cost
// matrix derived from it.
//
// What & Why:
//
//	A Compatibility matrix scores every (left item, right item) pair, e.g. a
//	donor against a patient. Row i and column i together form the i-th
//	original pair (the diagonal). Both solvers read the same immutable value:
//	the assignment solver through a Cost view (cost = MaxScore − score) and
//	the exchange builder directly.
//
// Storage:
//
//	Scores live in one flat row-major []int64 (offset = i*n + j), the same
//	layout the Dense matrix uses for floats. Construction deep-copies every
//	input, and accessors return copies, so a *Compatibility can be shared by
//	concurrent solves without synchronization.
//
// Errors:
//
//	Constructors return the package sentinels (ErrNonSquare, ErrNegativeScore,
//	ErrLabelCount, ...) wrapped with the call-site tag; match them with errors.Is.
//
// Complexity:
//
//	NewCompatibility and CostOf: O(n²) time and memory. At/Score: O(1).
package matrix
