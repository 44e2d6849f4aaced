// SPDX-License-Identifier: MIT

// Package kxmatch computes optimal matchings over donor/patient
// compatibility matrices.
//
// What is kxmatch?
//
//	A small, dependency-light engine with two matching models over the same
//	square score matrix:
//		• Global assignment: every donor to a distinct patient (Hungarian, O(n³))
//		• Pairwise exchange: original pairs swap donors two by two
//		  (weighted Edmonds blossom on the exchange graph, O(n³))
//
// Under the hood the repository is organized as flat packages:
//
//	matrix/     — Compatibility scores, labels, MaxScore, cost transform
//	assignment/ — Hungarian solver over any square cost view
//	exchange/   — exchange graph with plain / asymmetry-penalized weights
//	blossom/    — maximum-weight (optionally maximum-cardinality) matching
//	result/     — scored, donor-keyed result records
//	table/      — matrix and result file formats (CSV, JSON, text)
//	engine/     — one-shot solve orchestration with structured logging
//	config/     — YAML configuration with validation
//	cmd/kxmatch — command-line interface
//
// Quick start:
//
//	m, _ := table.ReadMatrix(f)
//	out, _ := engine.New(nil).Solve(ctx, m, engine.DefaultConfig())
//	_ = table.WriteResult(os.Stdout, out.Result)
//
// Solvers are pure and synchronous; a matrix is immutable and may be solved
// by several goroutines at once.
package kxmatch
