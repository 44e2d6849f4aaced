// SPDX-License-Identifier: MIT
package exchange

import "errors"

// ErrNilMatrix is returned when Build receives a nil matrix.
var ErrNilMatrix = errors.New("exchange: nil matrix")

// Policy selects the edge set and the weight formula of the exchange graph.
//
// Fields:
//
//	UseModifiedAverage      — weight = avg · (MaxScore − |Δ|) instead of avg.
//	DropAsymmetricZeroEdges — omit edges where either direction scores zero.
type Policy struct {
	UseModifiedAverage      bool
	DropAsymmetricZeroEdges bool
}

// Option configures a Policy.
type Option func(*Policy)

// WithModifiedAverage toggles the asymmetry-penalized weight formula.
func WithModifiedAverage(on bool) Option {
	return func(p *Policy) { p.UseModifiedAverage = on }
}

// WithDropAsymmetricZeroEdges toggles omission of edges with a zero direction.
func WithDropAsymmetricZeroEdges(on bool) Option {
	return func(p *Policy) { p.DropAsymmetricZeroEdges = on }
}

// DefaultPolicy returns the plain-average policy that keeps every edge.
func DefaultPolicy() Policy {
	return Policy{}
}

// NewPolicy applies opts over DefaultPolicy.
func NewPolicy(opts ...Option) Policy {
	p := DefaultPolicy()
	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// Edge is an undirected weighted edge between pairs I < J.
type Edge struct {
	I, J   int
	Weight float64
}
