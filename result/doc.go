// SPDX-License-Identifier: MIT

// Package result turns solver output into scored, donor-keyed records.
//
// Both models end in the same shape: a col_ind array of length n where
// colInd[i] is the right item (assignment model) or partner pair (exchange
// model) assigned to left item i, or Unmatched. Assemble looks every score
// up in the original compatibility matrix, so totals are always integers
// regardless of the edge weights the matcher optimized.
//
// Output rendering (CSV, JSON, text) lives in package table.
package result
