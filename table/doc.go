// SPDX-License-Identifier: MIT

// Package table reads and writes the plain-text formats around the solvers.
//
// Matrix file:
//
//	,<right_1>,<right_2>,...,<right_n>
//	<left_1>,<s_11>,<s_12>,...,<s_1n>
//	...
//	<left_n>,<s_n1>,<s_n2>,...,<s_nn>
//
// Scores are nonnegative integers; a blank field reads as 0.
//
// Result file, one line per left item:
//
//	<left_label>,<right_label_or_NONE>,<score_or_0>
//
// JSON and aligned-text renderings of a result are provided for the CLI.
package table
