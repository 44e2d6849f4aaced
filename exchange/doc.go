// SPDX-License-Identifier: MIT

// Package exchange builds the pairwise-exchange graph of a compatibility
// matrix.
//
// Each original pair i (left item i together with right item i, the
// diagonal) becomes a node. Two pairs i and j are joined by an undirected
// edge whose weight measures how good it is to swap partners: left i gives
// to right j and left j gives to right i.
//
// Two independent policy switches select the edge set and the weights:
//
//	DropAsymmetricZeroEdges  skip {i,j} when score[i][j]==0 or score[j][i]==0
//	UseModifiedAverage       w = avg · (MaxScore − |score[i][j] − score[j][i]|)
//	                         instead of the plain w = avg,
//	                         avg = (score[i][j] + score[j][i]) / 2
//
// The modified average rewards a high mutual score and penalizes exchanges
// that favour only one side. It is applied literally, without clamping.
//
// Every weight is a multiple of ½, so the matcher's float64 dual arithmetic
// stays exact on these graphs.
//
// Complexity: Build is O(n²) time and O(E) memory, E ≤ n(n−1)/2.
package exchange
