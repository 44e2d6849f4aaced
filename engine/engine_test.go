// SPDX-License-Identifier: MIT
package engine_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/kxmatch/engine"
	"github.com/katalvlaran/kxmatch/matrix"
	"github.com/katalvlaran/kxmatch/result"
)

type EngineSuite struct {
	suite.Suite
	m   *matrix.Compatibility
	eng *engine.Engine
}

func (s *EngineSuite) SetupTest() {
	s.m = matrix.MustCompatibility([][]int64{
		{6, 7, 8},
		{8, 6, 7},
		{7, 8, 6},
	}, []string{"D1", "D2", "D3"}, []string{"P1", "P2", "P3"})
	s.eng = engine.New(zaptest.NewLogger(s.T()))
}

func (s *EngineSuite) TestAssignment() {
	out, err := s.eng.Solve(context.Background(), s.m, engine.Config{Model: engine.Assignment})
	s.Require().NoError(err)

	s.Equal(int64(24), out.Result.Total)
	s.Equal(3, out.Result.Matched())
	s.Zero(out.Edges)
	s.NotEqual([16]byte{}, [16]byte(out.RequestID))
	right := make([]int, 0, 3)
	for _, r := range out.Result.Records {
		right = append(right, r.Right)
	}
	s.Equal([]int{2, 0, 1}, right)
}

func (s *EngineSuite) TestExchangeOddOrder() {
	out, err := s.eng.Solve(context.Background(), s.m, engine.DefaultConfig())
	s.Require().NoError(err)

	s.Equal(3, out.Edges)
	s.Equal(2, out.Result.Matched())
	s.Len(out.Result.Unmatched(), 1)
	// Every edge averages 7.5; the matched pair scores its two directions.
	s.Equal(int64(15), out.Result.Total)
	for _, r := range out.Result.Records {
		if r.Matched() {
			s.Equal(r.Left, out.Result.Records[r.Right].Right, "exchange must be mutual")
		} else {
			s.Equal(result.UnmatchedLabel, r.RightLabel)
		}
	}
}

func (s *EngineSuite) TestExchangeDropsZeroEdges() {
	m := matrix.MustCompatibility([][]int64{
		{0, 5, 0},
		{5, 0, 9},
		{0, 0, 0},
	}, nil, nil)
	cfg := engine.DefaultConfig()
	cfg.DropAsymmetricZeroEdges = true
	out, err := s.eng.Solve(context.Background(), m, cfg)
	s.Require().NoError(err)
	s.Equal(1, out.Edges)
	s.Equal(int64(10), out.Result.Total)
	s.Equal([]int{2}, out.Result.Unmatched())
}

func (s *EngineSuite) TestEmptyMatrix() {
	empty := matrix.MustCompatibility(nil, nil, nil)
	for _, cfg := range []engine.Config{{Model: engine.Assignment}, engine.DefaultConfig()} {
		out, err := s.eng.Solve(context.Background(), empty, cfg)
		s.Require().NoError(err)
		s.Empty(out.Result.Records)
		s.Zero(out.Result.Total)
	}
}

func (s *EngineSuite) TestErrors() {
	_, err := s.eng.Solve(context.Background(), nil, engine.DefaultConfig())
	s.ErrorIs(err, matrix.ErrNilMatrix)

	_, err = s.eng.Solve(context.Background(), s.m, engine.Config{Model: engine.Model(7)})
	s.ErrorIs(err, engine.ErrUnknownModel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.eng.Solve(ctx, s.m, engine.Config{Model: engine.Assignment})
	s.ErrorIs(err, context.Canceled)
	_, err = s.eng.Solve(ctx, s.m, engine.DefaultConfig())
	s.ErrorIs(err, context.Canceled)
}

func (s *EngineSuite) TestSolveAllMatchesSequential() {
	cfgs := []engine.Config{
		{Model: engine.Assignment},
		{Model: engine.Exchange},
		{Model: engine.Exchange, UseModifiedAverage: true},
		{Model: engine.Exchange, DropAsymmetricZeroEdges: true, MaxCardinality: true},
		{Model: engine.Exchange, UseModifiedAverage: true, DropAsymmetricZeroEdges: true, MaxCardinality: true},
	}
	outs, err := s.eng.SolveAll(context.Background(), s.m, cfgs)
	s.Require().NoError(err)
	s.Require().Len(outs, len(cfgs))

	ignore := cmpopts.IgnoreFields(engine.Outcome{}, "RequestID", "Elapsed")
	for i, cfg := range cfgs {
		want, err := s.eng.Solve(context.Background(), s.m, cfg)
		s.Require().NoError(err)
		s.Equal(cfg, outs[i].Config)
		if diff := cmp.Diff(want, outs[i], ignore); diff != "" {
			s.Failf("SolveAll mismatch", "config %v (-want +got):\n%s", cfg, diff)
		}
	}
}

func (s *EngineSuite) TestSolveAllFailsFast() {
	_, err := s.eng.SolveAll(context.Background(), s.m, []engine.Config{
		{Model: engine.Assignment},
		{Model: engine.Model(9)},
	})
	s.ErrorIs(err, engine.ErrUnknownModel)
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func TestSolve_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	eng := engine.New(zap.New(core))
	m := matrix.MustCompatibility([][]int64{{4, 1}, {2, 3}}, nil, nil)

	out, err := eng.Solve(context.Background(), m, engine.Config{Model: engine.Assignment})
	require.NoError(t, err)

	entries := logs.FilterMessage("solve finished").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, out.RequestID.String(), fields["request_id"])
	assert.Equal(t, "assignment", fields["config"])
	assert.Equal(t, int64(7), fields["total"])
	assert.Equal(t, int64(2), fields["matched"])
}

func TestNew_NilLogger(t *testing.T) {
	out, err := engine.New(nil).Solve(context.Background(), matrix.MustCompatibility([][]int64{{5}}, nil, nil), engine.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []int{0}, out.Result.Unmatched())
}

func TestParseModel(t *testing.T) {
	for in, want := range map[string]engine.Model{
		"exchange":   engine.Exchange,
		"Pairwise":   engine.Exchange,
		"assignment": engine.Assignment,
		" GLOBAL ":   engine.Assignment,
	} {
		got, err := engine.ParseModel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := engine.ParseModel("greedy")
	assert.ErrorIs(t, err, engine.ErrUnknownModel)

	for _, m := range []engine.Model{engine.Exchange, engine.Assignment} {
		back, err := engine.ParseModel(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}

func TestConfig_String(t *testing.T) {
	assert.Equal(t, "assignment", engine.Config{Model: engine.Assignment, MaxCardinality: true}.String())
	assert.Equal(t, "exchange(plain,maxcard)", engine.DefaultConfig().String())
	assert.Equal(t, "exchange(modified,drop)",
		engine.Config{Model: engine.Exchange, UseModifiedAverage: true, DropAsymmetricZeroEdges: true}.String())
}
