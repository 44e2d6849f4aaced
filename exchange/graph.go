// SPDX-License-Identifier: MIT
package exchange

import (
	"fmt"

	"github.com/katalvlaran/kxmatch/matrix"
)

// Graph is the immutable exchange graph over n original pairs.
// Edges are stored in row-major upper-triangle order: (0,1), (0,2), …, (n−2,n−1).
type Graph struct {
	n     int
	edges []Edge
	index map[[2]int]int // {i,j} (i<j) → position in edges
}

// Build derives the exchange graph of m under policy.
//
// For every unordered pair i<j:
//   - with DropAsymmetricZeroEdges, skip when score[i][j]==0 or score[j][i]==0;
//   - otherwise add {i,j} with weight avg or avg·(MaxScore−|Δ|).
//
// Errors: ErrNilMatrix.
// Complexity: O(n²).
func Build(m *matrix.Compatibility, policy Policy) (*Graph, error) {
	if m == nil {
		return nil, fmt.Errorf("Build: %w", ErrNilMatrix)
	}
	n := m.Order()
	g := &Graph{
		n:     n,
		edges: make([]Edge, 0, n*(n-1)/2),
		index: make(map[[2]int]int, n*(n-1)/2),
	}
	maxScore := float64(m.MaxScore())

	var i, j int
	var ij, ji int64
	for i = 0; i < n-1; i++ {
		for j = i + 1; j < n; j++ {
			ij, ji = m.Score(i, j), m.Score(j, i)
			if policy.DropAsymmetricZeroEdges && (ij == 0 || ji == 0) {
				continue
			}
			w := float64(ij+ji) / 2
			if policy.UseModifiedAverage {
				w *= maxScore - float64(absDiff(ij, ji))
			}
			g.index[[2]int{i, j}] = len(g.edges)
			g.edges = append(g.edges, Edge{I: i, J: j, Weight: w})
		}
	}

	return g, nil
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}

	return b - a
}

// Order returns the number of nodes (original pairs).
func (g *Graph) Order() int { return g.n }

// Len returns the number of edges.
func (g *Graph) Len() int { return len(g.edges) }

// Edges returns a copy of the edge list in construction order.
func (g *Graph) Edges() []Edge { return append([]Edge(nil), g.edges...) }

// Weight returns the weight of edge {i,j} in either orientation and whether
// the edge exists.
func (g *Graph) Weight(i, j int) (float64, bool) {
	if i > j {
		i, j = j, i
	}
	k, ok := g.index[[2]int{i, j}]
	if !ok {
		return 0, false
	}

	return g.edges[k].Weight, true
}

// VisitEdges calls fn once per edge in construction order.
func (g *Graph) VisitEdges(fn func(u, v int, w float64)) {
	for _, e := range g.edges {
		fn(e.I, e.J, e.Weight)
	}
}
