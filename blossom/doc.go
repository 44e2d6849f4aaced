// SPDX-License-Identifier: MIT

// Package blossom computes maximum-weight matchings in general (non-bipartite)
// undirected graphs with Edmonds' blossom algorithm in its weighted,
// primal–dual form.
//
// What & Why:
//
//	The pairwise-exchange model pairs up original donor/patient pairs; the
//	exchange graph is arbitrary (odd cycles included), so bipartite methods
//	do not apply. MaxWeightMatching returns a set of disjoint edges of
//	maximum total weight, or, with Options.MaxCardinality, of maximum weight
//	among the matchings of maximum cardinality.
//
// Method:
//
//   - Dual variables: one per vertex, one per non-trivial blossom. Duals are
//     stored doubled, so the slack of edge k=(i,j) is u_i + u_j − 2·w_k and
//     stays ≥ 0 (dual feasibility); matched edges have slack 0.
//   - Stage: label free vertices S, grow alternating trees over tight edges
//     (slack 0). An S–S edge either closes an odd cycle (contracted into a
//     blossom) or links two trees (augmenting path).
//   - When no tight edge advances the search, the duals move by
//     delta = min(δ1 vertex dual, δ2 S–free slack, δ3 S–S slack/2,
//     δ4 T-blossom dual) and the search resumes; δ4 expands a blossom.
//   - After an augmentation, S-blossoms whose dual reached 0 are expanded.
//
// Complexity:
//
//   - Time:   O(n³): at most n/2 augmentations, O(n²) work per stage.
//   - Memory: O(n + m).
//
// Numeric policy:
//
//	Weights are float64 and must be finite. Arithmetic is exact whenever the
//	weights are dyadic rationals of moderate size (integers, halves, ...),
//	which covers every graph the exchange package builds.
//
// Failure modes:
//
//	Invalid input (bad endpoint, self-loop, NaN/Inf weight) returns a
//	sentinel error. A violated internal invariant is a bug and panics with a
//	"blossom:" message; it is never reported as an ordinary error.
package blossom
