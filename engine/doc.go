// SPDX-License-Identifier: MIT

// Package engine runs one solve request end to end.
//
// Pipelines:
//
//	Assignment: matrix.CostOf → assignment.Solve → result.Assemble
//	Exchange:   exchange.Build → blossom.MaxWeightMatching → result.FromMate → result.Assemble
//
// The engine owns the only logging in the solve path; the algorithm packages
// stay silent. SolveAll fans several configurations over the same read-only
// matrix concurrently and returns outcomes in input order.
package engine
