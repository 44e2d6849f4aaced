// SPDX-License-Identifier: MIT
package blossom_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kxmatch/blossom"
	"github.com/katalvlaran/kxmatch/exchange"
	"github.com/katalvlaran/kxmatch/matrix"
)

func solve(t *testing.T, g blossom.Graph, maxCard bool) blossom.Matching {
	t.Helper()
	m, err := blossom.MaxWeightMatching(g, blossom.Options{MaxCardinality: maxCard})
	require.NoError(t, err)
	requireValid(t, g, m)

	return m
}

// requireValid checks that m is a matching of g and that its fields agree.
func requireValid(t *testing.T, g blossom.Graph, m blossom.Matching) {
	t.Helper()
	n := g.Order()
	require.Len(t, m.Mate, n)

	weights := map[[2]int]float64{}
	g.VisitEdges(func(u, v int, w float64) {
		if u > v {
			u, v = v, u
		}
		if old, ok := weights[[2]int{u, v}]; !ok || w > old {
			weights[[2]int{u, v}] = w
		}
	})

	for v, u := range m.Mate {
		if u == blossom.Unmatched {
			continue
		}
		require.Equal(t, v, m.Mate[u], "mate is not symmetric at %d", v)
		require.NotEqual(t, v, u)
	}

	covered := 0
	total := 0.0
	prev := -1
	for _, p := range m.Pairs {
		require.Less(t, p.U, p.V)
		require.Greater(t, p.U, prev, "pairs not ordered by U")
		prev = p.U
		require.Equal(t, p.V, m.Mate[p.U])
		_, ok := weights[[2]int{p.U, p.V}]
		require.True(t, ok, "pair %v is not an edge", p)
		covered += 2
		total += p.Weight
	}
	matched := 0
	for _, u := range m.Mate {
		if u != blossom.Unmatched {
			matched++
		}
	}
	require.Equal(t, matched, covered)
	require.Equal(t, total, m.Weight)
	require.Equal(t, len(m.Pairs), m.Cardinality())
}

// bruteForce enumerates every matching of a small graph and returns the best
// weight, the best weight among maximum-cardinality matchings, and that
// cardinality.
func bruteForce(g blossom.EdgeList) (best, bestMaxCard float64, maxCard int) {
	used := make([]bool, g.N)
	var rec func(k int, w float64, c int)
	rec = func(k int, w float64, c int) {
		if k == len(g.Edges) {
			if w > best {
				best = w
			}
			if c > maxCard || (c == maxCard && w > bestMaxCard) {
				maxCard, bestMaxCard = c, w
			}
			return
		}
		rec(k+1, w, c)
		e := g.Edges[k]
		if !used[e.U] && !used[e.V] {
			used[e.U], used[e.V] = true, true
			rec(k+1, w+e.Weight, c+1)
			used[e.U], used[e.V] = false, false
		}
	}
	rec(0, 0, 0)

	return best, bestMaxCard, maxCard
}

func randomGraph(r *rand.Rand, n int, density float64, lo, hi int) blossom.EdgeList {
	g := blossom.EdgeList{N: n}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if r.Float64() < density {
				w := float64(lo+r.Intn(hi-lo+1)) / 2
				g.Edges = append(g.Edges, blossom.Edge{U: u, V: v, Weight: w})
			}
		}
	}

	return g
}

func TestMaxWeightMatching_Basic(t *testing.T) {
	// Single edge.
	m := solve(t, blossom.EdgeList{N: 2, Edges: []blossom.Edge{{U: 0, V: 1, Weight: 1}}}, false)
	assert.Equal(t, []int{1, 0}, m.Mate)
	assert.Equal(t, 1.0, m.Weight)

	// Path 0-1-2-3: the middle edge alone beats both ends.
	path := blossom.EdgeList{N: 4, Edges: []blossom.Edge{
		{U: 0, V: 1, Weight: 2}, {U: 1, V: 2, Weight: 10}, {U: 2, V: 3, Weight: 2},
	}}
	m = solve(t, path, false)
	assert.Equal(t, []int{-1, 2, 1, -1}, m.Mate)
	assert.Equal(t, 10.0, m.Weight)

	// Maximum cardinality prefers both ends.
	m = solve(t, path, true)
	assert.Equal(t, []int{1, 0, 3, 2}, m.Mate)
	assert.Equal(t, 4.0, m.Weight)
}

func TestMaxWeightMatching_NegativeAndZeroWeights(t *testing.T) {
	g := blossom.EdgeList{N: 4, Edges: []blossom.Edge{
		{U: 0, V: 1, Weight: 2}, {U: 1, V: 2, Weight: -1}, {U: 2, V: 3, Weight: 0},
	}}
	m := solve(t, g, false)
	assert.Equal(t, 2.0, m.Weight)
	assert.Equal(t, 1, m.Cardinality())

	m = solve(t, g, true)
	assert.Equal(t, 2, m.Cardinality())
	assert.Equal(t, 2.0, m.Weight)

	neg := blossom.EdgeList{N: 2, Edges: []blossom.Edge{{U: 0, V: 1, Weight: -3}}}
	m = solve(t, neg, false)
	assert.Zero(t, m.Cardinality())
	m = solve(t, neg, true)
	assert.Equal(t, 1, m.Cardinality())
	assert.Equal(t, -3.0, m.Weight)
}

// The following graphs force blossom creation, nested blossoms, relabelling
// of T-blossoms and expansion; expected mates are the known optima.
func TestMaxWeightMatching_Blossoms(t *testing.T) {
	cases := []struct {
		name string
		n    int
		e    [][3]float64
		card bool
		want []int
	}{
		{"s-blossom", 4, [][3]float64{{0, 1, 8}, {0, 2, 9}, {1, 2, 10}, {2, 3, 7}}, false, []int{1, 0, 3, 2}},
		{"s-blossom-augment", 6, [][3]float64{{0, 1, 8}, {0, 2, 9}, {1, 2, 10}, {2, 3, 7}, {0, 5, 5}, {3, 4, 6}}, false, []int{5, 2, 1, 4, 3, 0}},
		{"t-blossom", 6, [][3]float64{{0, 1, 9}, {0, 2, 8}, {1, 2, 10}, {0, 3, 5}, {3, 4, 4}, {0, 5, 3}}, false, []int{5, 2, 1, 4, 3, 0}},
		{"nested-s", 6, [][3]float64{{0, 1, 9}, {0, 2, 9}, {1, 2, 10}, {1, 3, 8}, {2, 4, 8}, {3, 4, 10}, {4, 5, 6}}, false, []int{2, 3, 0, 1, 5, 4}},
		{"nested-relabel-expand", 8, [][3]float64{{0, 1, 10}, {0, 6, 10}, {1, 2, 12}, {2, 3, 20}, {2, 4, 20}, {3, 4, 25}, {4, 5, 10}, {5, 6, 10}, {6, 7, 8}}, false, []int{1, 0, 3, 2, 5, 4, 7, 6}},
		{"s-relabel-expand", 8, [][3]float64{{0, 1, 8}, {0, 2, 8}, {1, 2, 10}, {1, 3, 12}, {2, 4, 12}, {3, 4, 14}, {3, 5, 12}, {4, 6, 12}, {5, 6, 14}, {6, 7, 12}}, false, []int{1, 0, 4, 5, 2, 3, 7, 6}},
		{"nasty-expand", 10, [][3]float64{{0, 1, 45}, {0, 4, 45}, {1, 2, 50}, {2, 3, 45}, {3, 4, 50}, {0, 5, 30}, {2, 8, 35}, {3, 7, 35}, {4, 6, 26}, {8, 9, 5}}, false, []int{5, 2, 1, 7, 6, 0, 4, 3, 9, 8}},
		{"nasty-expand-2", 10, [][3]float64{{0, 1, 45}, {0, 4, 45}, {1, 2, 50}, {2, 3, 45}, {3, 4, 50}, {0, 5, 30}, {2, 8, 35}, {3, 7, 26}, {4, 6, 40}, {8, 9, 5}}, false, []int{5, 2, 1, 7, 6, 0, 4, 3, 9, 8}},
		{"relabel-t-vertex", 10, [][3]float64{{0, 1, 45}, {0, 4, 45}, {1, 2, 50}, {2, 3, 45}, {3, 4, 50}, {0, 5, 30}, {2, 8, 35}, {3, 7, 28}, {4, 6, 26}, {8, 9, 5}}, false, []int{5, 2, 1, 7, 6, 0, 4, 3, 9, 8}},
		{"nested-nasty", 12, [][3]float64{{0, 1, 45}, {0, 6, 45}, {1, 2, 50}, {2, 3, 45}, {3, 4, 95}, {3, 5, 94}, {4, 5, 94}, {5, 6, 50}, {0, 7, 30}, {2, 10, 35}, {4, 8, 36}, {6, 9, 26}, {10, 11, 5}}, false, []int{7, 2, 1, 5, 8, 3, 9, 0, 4, 6, 11, 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := blossom.EdgeList{N: tc.n}
			for _, e := range tc.e {
				g.Edges = append(g.Edges, blossom.Edge{U: int(e[0]), V: int(e[1]), Weight: e[2]})
			}
			m := solve(t, g, tc.card)

			best, _, _ := bruteForce(g)
			assert.Equal(t, best, m.Weight)
			assert.Equal(t, tc.want, m.Mate)
		})
	}
}

func TestMaxWeightMatching_AgainstBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for rep := 0; rep < 300; rep++ {
		n := 1 + r.Intn(9)
		g := randomGraph(r, n, 0.2+0.7*r.Float64(), -4, 40)
		best, bestMaxCard, maxCard := bruteForce(g)

		m := solve(t, g, false)
		require.Equal(t, best, m.Weight, "rep %d: %+v", rep, g)

		mc := solve(t, g, true)
		require.Equal(t, maxCard, mc.Cardinality(), "rep %d: %+v", rep, g)
		require.Equal(t, bestMaxCard, mc.Weight, "rep %d: %+v", rep, g)
	}
}

func TestMaxWeightMatching_CompleteOddGraphLeavesOneFree(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, n := range []int{3, 5, 7, 9} {
		g := randomGraph(r, n, 1, 1, 30)
		m := solve(t, g, true)
		free := 0
		for _, u := range m.Mate {
			if u == blossom.Unmatched {
				free++
			}
		}
		assert.Equal(t, 1, free, "n=%d", n)
	}
}

func TestMaxWeightMatching_EmptyInputs(t *testing.T) {
	m := solve(t, blossom.EdgeList{}, true)
	assert.Empty(t, m.Mate)
	assert.Empty(t, m.Pairs)
	assert.Zero(t, m.Weight)

	m = solve(t, blossom.EdgeList{N: 3}, true)
	assert.Equal(t, []int{-1, -1, -1}, m.Mate)
	assert.Zero(t, m.Cardinality())
}

func TestMaxWeightMatching_Errors(t *testing.T) {
	_, err := blossom.MaxWeightMatching(blossom.EdgeList{N: 2, Edges: []blossom.Edge{{U: 0, V: 2, Weight: 1}}}, blossom.DefaultOptions())
	assert.ErrorIs(t, err, blossom.ErrVertexOutOfRange)

	_, err = blossom.MaxWeightMatching(blossom.EdgeList{N: 2, Edges: []blossom.Edge{{U: -1, V: 1, Weight: 1}}}, blossom.DefaultOptions())
	assert.ErrorIs(t, err, blossom.ErrVertexOutOfRange)

	_, err = blossom.MaxWeightMatching(blossom.EdgeList{N: 2, Edges: []blossom.Edge{{U: 1, V: 1, Weight: 1}}}, blossom.DefaultOptions())
	assert.ErrorIs(t, err, blossom.ErrSelfLoop)

	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = blossom.MaxWeightMatching(blossom.EdgeList{N: 2, Edges: []blossom.Edge{{U: 0, V: 1, Weight: w}}}, blossom.DefaultOptions())
		assert.ErrorIs(t, err, blossom.ErrBadWeight)
	}
}

func TestMaxWeightMatching_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := randomGraph(rand.New(rand.NewSource(1)), 6, 1, 1, 10)
	_, err := blossom.MaxWeightMatching(g, blossom.Options{Ctx: ctx})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMaxWeightMatching_Deterministic(t *testing.T) {
	g := randomGraph(rand.New(rand.NewSource(9)), 12, 0.8, 0, 20)
	first := solve(t, g, true)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, solve(t, g, true))
	}
}

func TestMaxWeightMatching_ExchangeGraph(t *testing.T) {
	m := matrix.MustCompatibility([][]int64{
		{6, 7, 8},
		{8, 6, 7},
		{7, 8, 6},
	}, nil, nil)
	g, err := exchange.Build(m, exchange.DefaultPolicy())
	require.NoError(t, err)

	res := solve(t, g, true)
	assert.Equal(t, 1, res.Cardinality())
	assert.Equal(t, 7.5, res.Weight)

	// A 4-pair instance with one clearly dominant pairing.
	m = matrix.MustCompatibility([][]int64{
		{0, 9, 1, 1},
		{9, 0, 1, 1},
		{1, 1, 0, 5},
		{1, 1, 5, 0},
	}, nil, nil)
	g, err = exchange.Build(m, exchange.DefaultPolicy())
	require.NoError(t, err)
	res = solve(t, g, true)
	assert.Equal(t, []int{1, 0, 3, 2}, res.Mate)
	assert.Equal(t, 14.0, res.Weight)
}
