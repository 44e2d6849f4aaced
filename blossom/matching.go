// SPDX-License-Identifier: MIT

// Package blossom - weighted Edmonds matching.
//
// Terminology used throughout this file:
//   - Vertices are 0..nv-1; non-trivial blossoms reuse ids nv..2nv-1.
//   - Edge k has two endpoints 2k (its U side) and 2k+1 (its V side);
//     endpoint[p] is the vertex at endpoint p, and p^1 is the opposite end.
//   - mate[v] stores the remote endpoint of v's matched edge (or -1) while
//     the search runs; it is converted to a vertex id at the end.
//   - label[b] of a top-level blossom: 0 free, 1 S (outer), 2 T (inner).
//     Bit 4 is a temporary breadcrumb used by scanBlossom.
//   - labelend[b] is the remote endpoint of the edge through which b got
//     its label (-1 for tree roots).
//
// AI-Hints:
//   - A stage ends with either an augmentation or a proof (delta type 1) that
//     no further augmentation can increase the objective.
//   - Index arithmetic on blossom child lists may go negative; cyc() maps it
//     back into range.

package blossom

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// MaxWeightMatching returns a maximum-weight matching of g.
//
// With opts.MaxCardinality the result has maximum cardinality and, among such
// matchings, maximum weight; otherwise it maximizes weight alone (edges of
// non-positive weight are then never used).
//
// Errors: ErrVertexOutOfRange, ErrSelfLoop, ErrBadWeight, or the context
// error when opts.Ctx is done at a stage boundary.
// Complexity: O(n³).
func MaxWeightMatching(g Graph, opts Options) (Matching, error) {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := newSolver(g, opts.MaxCardinality)
	if err != nil {
		return Matching{}, err
	}
	if err = s.run(ctx); err != nil {
		return Matching{}, err
	}

	return s.result(), nil
}

// solver holds every per-invocation structure of the primal–dual search.
type solver struct {
	nv      int
	edges   []Edge
	maxCard bool

	endpoint  []int   // 2·ne: endpoint[p] = vertex
	neighbend [][]int // per vertex: remote endpoints of incident edges

	mate      []int
	label     []int // 2·nv
	labelend  []int // 2·nv
	inblossom []int // nv: top-level blossom containing v

	blossomparent    []int   // 2·nv
	blossomchilds    [][]int // 2·nv: ordered cycle, base child first
	blossombase      []int   // 2·nv
	blossomendps     [][]int // 2·nv: endps[i] links childs[i] → childs[i+1]
	bestedge         []int   // 2·nv: least-slack edge to a different S-blossom
	blossombestedges [][]int // 2·nv: nil = not computed
	unused           []int

	dualvar   []float64 // 2·nv, doubled duals for vertices; blossom duals
	allowedge []bool    // ne: edge known to be tight
	queue     []int
}

// newSolver validates g and allocates the search structures.
func newSolver(g Graph, maxCard bool) (*solver, error) {
	nv := g.Order()
	if nv < 0 {
		nv = 0
	}
	s := &solver{nv: nv, maxCard: maxCard}

	var bad error
	g.VisitEdges(func(u, v int, w float64) {
		if bad != nil {
			return
		}
		switch {
		case u < 0 || u >= nv || v < 0 || v >= nv:
			bad = fmt.Errorf("MaxWeightMatching: edge {%d,%d}: %w", u, v, ErrVertexOutOfRange)
		case u == v:
			bad = fmt.Errorf("MaxWeightMatching: edge {%d,%d}: %w", u, v, ErrSelfLoop)
		case math.IsNaN(w) || math.IsInf(w, 0):
			bad = fmt.Errorf("MaxWeightMatching: edge {%d,%d}: %w", u, v, ErrBadWeight)
		default:
			s.edges = append(s.edges, Edge{U: u, V: v, Weight: w})
		}
	})
	if bad != nil {
		return nil, bad
	}

	ne := len(s.edges)
	s.endpoint = make([]int, 2*ne)
	s.neighbend = make([][]int, nv)
	maxWeight := 0.0
	for k, e := range s.edges {
		s.endpoint[2*k] = e.U
		s.endpoint[2*k+1] = e.V
		s.neighbend[e.U] = append(s.neighbend[e.U], 2*k+1)
		s.neighbend[e.V] = append(s.neighbend[e.V], 2*k)
		if e.Weight > maxWeight {
			maxWeight = e.Weight
		}
	}

	s.mate = filled(nv, -1)
	s.label = make([]int, 2*nv)
	s.labelend = filled(2*nv, -1)
	s.inblossom = make([]int, nv)
	s.blossomparent = filled(2*nv, -1)
	s.blossomchilds = make([][]int, 2*nv)
	s.blossombase = filled(2*nv, -1)
	s.blossomendps = make([][]int, 2*nv)
	s.bestedge = filled(2*nv, -1)
	s.blossombestedges = make([][]int, 2*nv)
	s.unused = make([]int, 0, nv)
	s.dualvar = make([]float64, 2*nv)
	s.allowedge = make([]bool, ne)
	for v := 0; v < nv; v++ {
		s.inblossom[v] = v
		s.blossombase[v] = v
		s.dualvar[v] = maxWeight
		s.unused = append(s.unused, nv+v)
	}

	return s, nil
}

func filled(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// fail reports a broken internal invariant. It never fires on valid input.
func fail(format string, args ...any) {
	panic("blossom: internal invariant violated: " + fmt.Sprintf(format, args...))
}

// cyc maps a possibly negative child index into [0, n).
func cyc(j, n int) int {
	j %= n
	if j < 0 {
		j += n
	}

	return j
}

func indexOf(xs []int, x int) int {
	for i, y := range xs {
		if y == x {
			return i
		}
	}
	fail("child %d not found in blossom", x)

	return -1
}

// slack returns the doubled reduced cost of edge k (ignores blossom duals).
func (s *solver) slack(k int) float64 {
	e := s.edges[k]

	return s.dualvar[e.U] + s.dualvar[e.V] - 2*e.Weight
}

// leaves appends all vertices contained in blossom b to dst.
func (s *solver) leaves(dst []int, b int) []int {
	if b < s.nv {
		return append(dst, b)
	}
	for _, t := range s.blossomchilds[b] {
		dst = s.leaves(dst, t)
	}

	return dst
}

// assignLabel labels w's top-level blossom t (1=S, 2=T) reached through
// remote endpoint p. A T-blossom immediately passes label S to its mate.
func (s *solver) assignLabel(w, t, p int) {
	b := s.inblossom[w]
	if s.label[w] != 0 || s.label[b] != 0 {
		fail("assignLabel: vertex %d already labelled", w)
	}
	s.label[w], s.label[b] = t, t
	s.labelend[w], s.labelend[b] = p, p
	s.bestedge[w], s.bestedge[b] = -1, -1
	switch t {
	case 1:
		s.queue = s.leaves(s.queue, b)
	case 2:
		base := s.blossombase[b]
		if s.mate[base] < 0 {
			fail("assignLabel: T-blossom base %d is unmatched", base)
		}
		s.assignLabel(s.endpoint[s.mate[base]], 1, s.mate[base]^1)
	}
}

// scanBlossom traces back from v and w alternately towards their roots.
// It returns the base of a new blossom, or -1 when the trees differ and an
// augmenting path was found.
func (s *solver) scanBlossom(v, w int) int {
	var path []int
	base := -1
	for v != -1 || w != -1 {
		b := s.inblossom[v]
		if s.label[b]&4 != 0 {
			base = s.blossombase[b]
			break
		}
		if s.label[b] != 1 {
			fail("scanBlossom: blossom %d is not an S-blossom", b)
		}
		path = append(path, b)
		s.label[b] = 5
		if s.labelend[b] == -1 {
			v = -1 // reached a root
		} else {
			v = s.endpoint[s.labelend[b]]
			b = s.inblossom[v]
			v = s.endpoint[s.labelend[b]]
		}
		if w != -1 {
			v, w = w, v
		}
	}
	for _, b := range path {
		s.label[b] = 1
	}

	return base
}

// addBlossom contracts the odd cycle closed by edge k with the given base.
func (s *solver) addBlossom(base, k int) {
	v, w := s.edges[k].U, s.edges[k].V
	bb := s.inblossom[base]
	bv := s.inblossom[v]
	bw := s.inblossom[w]

	b := s.unused[len(s.unused)-1]
	s.unused = s.unused[:len(s.unused)-1]
	s.blossombase[b] = base
	s.blossomparent[b] = -1
	s.blossomparent[bb] = b

	path := make([]int, 0, 4)
	endps := make([]int, 0, 4)
	// Walk from v's side down to the base.
	for bv != bb {
		s.blossomparent[bv] = b
		path = append(path, bv)
		endps = append(endps, s.labelend[bv])
		v = s.endpoint[s.labelend[bv]]
		bv = s.inblossom[v]
	}
	path = append(path, bb)
	reverseInts(path)
	reverseInts(endps)
	endps = append(endps, 2*k)
	// Then from w's side back up.
	for bw != bb {
		s.blossomparent[bw] = b
		path = append(path, bw)
		endps = append(endps, s.labelend[bw]^1)
		w = s.endpoint[s.labelend[bw]]
		bw = s.inblossom[w]
	}
	if s.label[bb] != 1 {
		fail("addBlossom: base blossom %d is not an S-blossom", bb)
	}
	s.blossomchilds[b] = path
	s.blossomendps[b] = endps
	s.label[b] = 1
	s.labelend[b] = s.labelend[bb]
	s.dualvar[b] = 0

	for _, lv := range s.leaves(nil, b) {
		if s.label[s.inblossom[lv]] == 2 {
			// Former T-vertices become S-vertices inside the new blossom.
			s.queue = append(s.queue, lv)
		}
		s.inblossom[lv] = b
	}

	// Least-slack edges from the new blossom to every other S-blossom.
	bestedgeto := filled(2*s.nv, -1)
	for _, child := range path {
		var nblists [][]int
		if s.blossombestedges[child] == nil {
			for _, lv := range s.leaves(nil, child) {
				lst := make([]int, len(s.neighbend[lv]))
				for i, p := range s.neighbend[lv] {
					lst[i] = p / 2
				}
				nblists = append(nblists, lst)
			}
		} else {
			nblists = [][]int{s.blossombestedges[child]}
		}
		for _, nblist := range nblists {
			for _, kk := range nblist {
				j := s.edges[kk].V
				if s.inblossom[j] == b {
					j = s.edges[kk].U
				}
				bj := s.inblossom[j]
				if bj != b && s.label[bj] == 1 &&
					(bestedgeto[bj] == -1 || s.slack(kk) < s.slack(bestedgeto[bj])) {
					bestedgeto[bj] = kk
				}
			}
		}
		s.blossombestedges[child] = nil
		s.bestedge[child] = -1
	}
	best := make([]int, 0)
	for _, kk := range bestedgeto {
		if kk != -1 {
			best = append(best, kk)
		}
	}
	s.blossombestedges[b] = best
	s.bestedge[b] = -1
	for _, kk := range best {
		if s.bestedge[b] == -1 || s.slack(kk) < s.slack(s.bestedge[b]) {
			s.bestedge[b] = kk
		}
	}
}

func reverseInts(xs []int) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// expandBlossom dissolves blossom b into its children. Mid-stage expansion
// of a T-blossom relabels the children along the even path from the entry
// child to the base; endstage expansion recurses into zero-dual sub-blossoms.
func (s *solver) expandBlossom(b int, endstage bool) {
	for _, c := range s.blossomchilds[b] {
		s.blossomparent[c] = -1
		switch {
		case c < s.nv:
			s.inblossom[c] = c
		case endstage && s.dualvar[c] == 0:
			s.expandBlossom(c, endstage)
		default:
			for _, lv := range s.leaves(nil, c) {
				s.inblossom[lv] = c
			}
		}
	}

	if !endstage && s.label[b] == 2 {
		childs := s.blossomchilds[b]
		endps := s.blossomendps[b]
		n := len(childs)
		if s.labelend[b] < 0 {
			fail("expandBlossom: T-blossom %d has no label edge", b)
		}
		entrychild := s.inblossom[s.endpoint[s.labelend[b]^1]]
		j := indexOf(childs, entrychild)
		var jstep, endptrick int
		if j&1 != 0 {
			// Odd position: go forward and wrap.
			j -= n
			jstep, endptrick = 1, 0
		} else {
			jstep, endptrick = -1, 1
		}

		p := s.labelend[b]
		for j != 0 {
			// Relabel the T-sub-blossom and its mate along the path.
			s.label[s.endpoint[p^1]] = 0
			s.label[s.endpoint[endps[cyc(j-endptrick, n)]^endptrick^1]] = 0
			s.assignLabel(s.endpoint[p^1], 2, p)
			s.allowedge[endps[cyc(j-endptrick, n)]/2] = true
			j += jstep
			p = endps[cyc(j-endptrick, n)] ^ endptrick
			s.allowedge[p/2] = true
			j += jstep
		}
		// The base sub-blossom keeps label T without passing S to its mate.
		bv := childs[cyc(j, n)]
		s.label[s.endpoint[p^1]], s.label[bv] = 2, 2
		s.labelend[s.endpoint[p^1]], s.labelend[bv] = p, p
		s.bestedge[bv] = -1

		// Sub-blossoms on the odd path that were reached from outside
		// (labelled vertices) must be relabelled T.
		j += jstep
		for childs[cyc(j, n)] != entrychild {
			bv = childs[cyc(j, n)]
			if s.label[bv] == 1 {
				j += jstep
				continue
			}
			v := -1
			for _, lv := range s.leaves(nil, bv) {
				if s.label[lv] != 0 {
					v = lv
					break
				}
			}
			if v != -1 {
				if s.label[v] != 2 || s.inblossom[v] != bv {
					fail("expandBlossom: unexpected label on vertex %d", v)
				}
				s.label[v] = 0
				s.label[s.endpoint[s.mate[s.blossombase[bv]]]] = 0
				s.assignLabel(v, 2, s.labelend[v])
			}
			j += jstep
		}
	}

	s.label[b], s.labelend[b] = -1, -1
	s.blossomchilds[b], s.blossomendps[b] = nil, nil
	s.blossombase[b] = -1
	s.blossombestedges[b] = nil
	s.bestedge[b] = -1
	s.unused = append(s.unused, b)
}

// augmentBlossom swaps matched/unmatched edges along the even path inside
// blossom b from vertex v to the base, and rotates b so that v's
// sub-blossom becomes the new base.
func (s *solver) augmentBlossom(b, v int) {
	t := v
	for s.blossomparent[t] != b {
		t = s.blossomparent[t]
	}
	if t >= s.nv {
		s.augmentBlossom(t, v)
	}

	childs := s.blossomchilds[b]
	endps := s.blossomendps[b]
	n := len(childs)
	i := indexOf(childs, t)
	j := i
	var jstep, endptrick int
	if i&1 != 0 {
		j -= n
		jstep, endptrick = 1, 0
	} else {
		jstep, endptrick = -1, 1
	}

	for j != 0 {
		j += jstep
		t = childs[cyc(j, n)]
		p := endps[cyc(j-endptrick, n)] ^ endptrick
		if t >= s.nv {
			s.augmentBlossom(t, s.endpoint[p])
		}
		j += jstep
		t = childs[cyc(j, n)]
		if t >= s.nv {
			s.augmentBlossom(t, s.endpoint[p^1])
		}
		s.mate[s.endpoint[p]] = p ^ 1
		s.mate[s.endpoint[p^1]] = p
	}

	rotChilds := make([]int, 0, n)
	rotChilds = append(append(rotChilds, childs[i:]...), childs[:i]...)
	rotEndps := make([]int, 0, n)
	rotEndps = append(append(rotEndps, endps[i:]...), endps[:i]...)
	s.blossomchilds[b] = rotChilds
	s.blossomendps[b] = rotEndps
	s.blossombase[b] = s.blossombase[rotChilds[0]]
	if s.blossombase[b] != v {
		fail("augmentBlossom: new base %d, want %d", s.blossombase[b], v)
	}
}

// augmentMatching flips the augmenting path through S–S edge k, walking
// from each endpoint back to its tree root.
func (s *solver) augmentMatching(k int) {
	ends := [2][2]int{{s.edges[k].U, 2*k + 1}, {s.edges[k].V, 2 * k}}
	for _, sp := range ends {
		sv, p := sp[0], sp[1]
		for {
			bs := s.inblossom[sv]
			if s.label[bs] != 1 {
				fail("augmentMatching: blossom %d is not an S-blossom", bs)
			}
			if bs >= s.nv {
				s.augmentBlossom(bs, sv)
			}
			s.mate[sv] = p
			if s.labelend[bs] == -1 {
				break // reached a root
			}
			t := s.endpoint[s.labelend[bs]]
			bt := s.inblossom[t]
			if s.label[bt] != 2 {
				fail("augmentMatching: blossom %d is not a T-blossom", bt)
			}
			sv = s.endpoint[s.labelend[bt]]
			j := s.endpoint[s.labelend[bt]^1]
			if bt >= s.nv {
				s.augmentBlossom(bt, j)
			}
			s.mate[j] = s.labelend[bt]
			p = s.labelend[bt] ^ 1
		}
	}
}

// run executes up to nv stages; each either augments or proves optimality.
func (s *solver) run(ctx context.Context) error {
	nv := s.nv
	if len(s.edges) == 0 {
		return nil
	}

	for stage := 0; stage < nv; stage++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("MaxWeightMatching: stage %d: %w", stage, err)
		}

		for i := range s.label {
			s.label[i] = 0
			s.bestedge[i] = -1
		}
		for b := nv; b < 2*nv; b++ {
			s.blossombestedges[b] = nil
		}
		for k := range s.allowedge {
			s.allowedge[k] = false
		}
		s.queue = s.queue[:0]

		for v := 0; v < nv; v++ {
			if s.mate[v] == -1 && s.label[s.inblossom[v]] == 0 {
				s.assignLabel(v, 1, -1)
			}
		}

		augmented := false
		for {
			augmented = s.search()
			if augmented {
				break
			}
			if s.adjustDuals() {
				break // delta type 1: optimum reached
			}
		}
		if !augmented {
			break
		}

		// End of stage: expand S-blossoms whose dual dropped to zero.
		for b := nv; b < 2*nv; b++ {
			if s.blossomparent[b] == -1 && s.blossombase[b] >= 0 &&
				s.label[b] == 1 && s.dualvar[b] == 0 {
				s.expandBlossom(b, true)
			}
		}
	}

	return nil
}

// search drains the queue, growing trees over tight edges.
// It reports whether an augmentation happened.
func (s *solver) search() bool {
	for len(s.queue) > 0 {
		v := s.queue[len(s.queue)-1]
		s.queue = s.queue[:len(s.queue)-1]
		if s.label[s.inblossom[v]] != 1 {
			fail("search: queued vertex %d is not in an S-blossom", v)
		}

		for _, p := range s.neighbend[v] {
			k := p / 2
			w := s.endpoint[p]
			if s.inblossom[v] == s.inblossom[w] {
				continue // internal blossom edge
			}
			var kslack float64
			if !s.allowedge[k] {
				kslack = s.slack(k)
				if kslack <= 0 {
					s.allowedge[k] = true
				}
			}

			switch {
			case s.allowedge[k]:
				switch {
				case s.label[s.inblossom[w]] == 0:
					// w is free: extend the tree (w becomes T, its mate S).
					s.assignLabel(w, 2, p^1)
				case s.label[s.inblossom[w]] == 1:
					if base := s.scanBlossom(v, w); base >= 0 {
						s.addBlossom(base, k)
					} else {
						s.augmentMatching(k)
						return true
					}
				case s.label[w] == 0:
					// w sits inside a T-blossom; remember how it was reached.
					s.label[w] = 2
					s.labelend[w] = p ^ 1
				}
			case s.label[s.inblossom[w]] == 1:
				b := s.inblossom[v]
				if s.bestedge[b] == -1 || kslack < s.slack(s.bestedge[b]) {
					s.bestedge[b] = k
				}
			case s.label[w] == 0:
				if s.bestedge[w] == -1 || kslack < s.slack(s.bestedge[w]) {
					s.bestedge[w] = k
				}
			}
		}
	}

	return false
}

// adjustDuals computes the minimal delta, applies it, and acts on its type.
// It returns true when delta type 1 ends the stage without augmentation.
func (s *solver) adjustDuals() bool {
	nv := s.nv
	deltatype := -1
	var delta float64
	deltaedge, deltablossom := -1, -1

	// δ1: the smallest vertex dual (not bounded under maximum cardinality).
	if !s.maxCard {
		deltatype = 1
		delta = minFloat(s.dualvar[:nv])
	}
	// δ2: S-vertex to free vertex.
	for v := 0; v < nv; v++ {
		if s.label[s.inblossom[v]] == 0 && s.bestedge[v] != -1 {
			d := s.slack(s.bestedge[v])
			if deltatype == -1 || d < delta {
				delta, deltatype, deltaedge = d, 2, s.bestedge[v]
			}
		}
	}
	// δ3: half the slack between two S-blossoms.
	for b := 0; b < 2*nv; b++ {
		if s.blossomparent[b] == -1 && s.label[b] == 1 && s.bestedge[b] != -1 {
			d := s.slack(s.bestedge[b]) / 2
			if deltatype == -1 || d < delta {
				delta, deltatype, deltaedge = d, 3, s.bestedge[b]
			}
		}
	}
	// δ4: the smallest T-blossom dual.
	for b := nv; b < 2*nv; b++ {
		if s.blossombase[b] >= 0 && s.blossomparent[b] == -1 && s.label[b] == 2 &&
			(deltatype == -1 || s.dualvar[b] < delta) {
			delta, deltatype, deltablossom = s.dualvar[b], 4, b
		}
	}
	if deltatype == -1 {
		// Maximum cardinality reached; one more δ1 step makes the duals optimal.
		if !s.maxCard {
			fail("adjustDuals: no delta without maximum cardinality")
		}
		deltatype = 1
		delta = math.Max(0, minFloat(s.dualvar[:nv]))
	}

	for v := 0; v < nv; v++ {
		switch s.label[s.inblossom[v]] {
		case 1:
			s.dualvar[v] -= delta
		case 2:
			s.dualvar[v] += delta
		}
	}
	for b := nv; b < 2*nv; b++ {
		if s.blossombase[b] >= 0 && s.blossomparent[b] == -1 {
			switch s.label[b] {
			case 1:
				s.dualvar[b] += delta
			case 2:
				s.dualvar[b] -= delta
			}
		}
	}

	switch deltatype {
	case 1:
		return true
	case 2:
		s.allowedge[deltaedge] = true
		i := s.edges[deltaedge].U
		if s.label[s.inblossom[i]] == 0 {
			i = s.edges[deltaedge].V
		}
		if s.label[s.inblossom[i]] != 1 {
			fail("adjustDuals: δ2 edge %d has no S endpoint", deltaedge)
		}
		s.queue = append(s.queue, i)
	case 3:
		s.allowedge[deltaedge] = true
		i := s.edges[deltaedge].U
		if s.label[s.inblossom[i]] != 1 {
			fail("adjustDuals: δ3 edge %d has no S endpoint", deltaedge)
		}
		s.queue = append(s.queue, i)
	case 4:
		s.expandBlossom(deltablossom, false)
	}

	return false
}

func minFloat(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}

	return m
}

// result converts endpoint-based mates into vertex mates and pairs.
func (s *solver) result() Matching {
	out := Matching{Mate: filled(s.nv, Unmatched), Pairs: []Pair{}}
	for v := 0; v < s.nv; v++ {
		p := s.mate[v]
		if p < 0 {
			continue
		}
		u := s.endpoint[p]
		out.Mate[v] = u
		if v < u {
			w := s.edges[p/2].Weight
			out.Pairs = append(out.Pairs, Pair{U: v, V: u, Weight: w})
			out.Weight += w
		}
	}
	sort.Slice(out.Pairs, func(a, b int) bool { return out.Pairs[a].U < out.Pairs[b].U })

	return out
}
