// SPDX-License-Identifier: MIT
package blossom

import (
	"context"
	"errors"
)

var (
	// ErrVertexOutOfRange is returned when an edge endpoint is outside [0, Order()).
	ErrVertexOutOfRange = errors.New("blossom: edge endpoint out of range")

	// ErrSelfLoop is returned for an edge {v,v}.
	ErrSelfLoop = errors.New("blossom: self-loop edge")

	// ErrBadWeight is returned for a NaN or ±Inf edge weight.
	ErrBadWeight = errors.New("blossom: weight is NaN or Inf")
)

// Unmatched marks an uncovered vertex in Matching.Mate.
const Unmatched = -1

// Graph is the read-only view the matcher consumes.
// Vertices are 0..Order()-1; VisitEdges reports each undirected edge once.
type Graph interface {
	Order() int
	VisitEdges(fn func(u, v int, w float64))
}

// Edge is an undirected weighted edge.
type Edge struct {
	U, V   int
	Weight float64
}

// EdgeList is a plain Graph implementation.
type EdgeList struct {
	N     int
	Edges []Edge
}

var _ Graph = EdgeList{}

// Order returns N.
func (l EdgeList) Order() int { return l.N }

// VisitEdges calls fn for every edge in slice order.
func (l EdgeList) VisitEdges(fn func(u, v int, w float64)) {
	for _, e := range l.Edges {
		fn(e.U, e.V, e.Weight)
	}
}

// Options configures MaxWeightMatching.
//   - MaxCardinality: only maximum-cardinality matchings are eligible; among
//     them the heaviest is returned.
//   - Ctx: checked between stages; nil means context.Background().
type Options struct {
	MaxCardinality bool
	Ctx            context.Context
}

// DefaultOptions returns Options with MaxCardinality=false and a background context.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// Pair is a matched edge with U < V.
type Pair struct {
	U, V   int
	Weight float64
}

// Matching is the result of MaxWeightMatching.
type Matching struct {
	// Mate[v] is v's partner, or Unmatched.
	Mate []int

	// Pairs lists matched edges ordered by U.
	Pairs []Pair

	// Weight is the sum of the matched edge weights.
	Weight float64
}

// Cardinality returns the number of matched pairs.
func (m Matching) Cardinality() int { return len(m.Pairs) }
