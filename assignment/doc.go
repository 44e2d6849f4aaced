// SPDX-License-Identifier: MIT

// Package assignment solves the square assignment problem exactly with the
// Hungarian (Kuhn–Munkres) algorithm.
//
// Given an n×n integer cost matrix, Solve returns the permutation ColInd
// (row i → column ColInd[i]) that minimizes Σ cost[i][ColInd[i]].
//
//   - Method: row/column potentials u, v; one phase per row grows a shortest
//     augmenting path over reduced costs cost[i][j] − u[i] − v[j], updating
//     potentials by the minimum slack each time the alternating tree stalls.
//
//   - Time:   O(n³) (n phases × O(n²)).
//
//   - Memory: O(n) besides the input.
//
// The compatibility model is handled by MaximizeScore, which applies
// matrix.CostOf (cost = MaxScore − score) before solving, so the returned
// permutation maximizes the total compatibility score.
//
// Costs is a small read-only interface: *matrix.Cost satisfies it, and Table
// adapts plain [][]int64 rows. Non-square input is rejected with
// ErrNonSquare instead of producing a silently wrong permutation.
//
// Cancellation: Options.Ctx is checked once per phase, never inside the
// inner loops. An empty matrix yields an empty Result and no error.
package assignment
