// SPDX-License-Identifier: MIT
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kxmatch/assignment"
	"github.com/katalvlaran/kxmatch/blossom"
	"github.com/katalvlaran/kxmatch/exchange"
	"github.com/katalvlaran/kxmatch/matrix"
	"github.com/katalvlaran/kxmatch/result"
)

// Outcome is the product of one solve request.
type Outcome struct {
	RequestID uuid.UUID
	Config    Config
	Result    result.Result
	// Edges is the exchange graph size; 0 for the assignment model.
	Edges   int
	Elapsed time.Duration
}

// Engine dispatches solve requests. It holds no per-request state and is
// safe for concurrent use.
type Engine struct {
	log *zap.Logger
}

// New returns an Engine logging to log; nil disables logging.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{log: log}
}

// Solve runs cfg.Model over m.
func (e *Engine) Solve(ctx context.Context, m *matrix.Compatibility, cfg Config) (Outcome, error) {
	if m == nil {
		return Outcome{}, fmt.Errorf("Solve: %w", matrix.ErrNilMatrix)
	}
	out := Outcome{RequestID: uuid.New(), Config: cfg}
	log := e.log.With(
		zap.String("request_id", out.RequestID.String()),
		zap.Stringer("config", cfg),
		zap.Int("order", m.Order()),
	)
	log.Debug("solve started")
	start := time.Now()

	var (
		colInd []int
		err    error
	)
	switch cfg.Model {
	case Assignment:
		colInd, err = e.solveAssignment(ctx, m)
	case Exchange:
		colInd, out.Edges, err = e.solveExchange(ctx, m, cfg)
	default:
		err = fmt.Errorf("Solve: %w: %v", ErrUnknownModel, cfg.Model)
	}
	if err != nil {
		log.Warn("solve failed", zap.Error(err))
		return Outcome{}, err
	}

	out.Result, err = result.Assemble(m, colInd)
	if err != nil {
		log.Error("result assembly failed", zap.Error(err))
		return Outcome{}, err
	}
	out.Elapsed = time.Since(start)

	log.Info("solve finished",
		zap.Int("edges", out.Edges),
		zap.Int("matched", out.Result.Matched()),
		zap.Int64("total", out.Result.Total),
		zap.Duration("elapsed", out.Elapsed),
	)

	return out, nil
}

func (e *Engine) solveAssignment(ctx context.Context, m *matrix.Compatibility) ([]int, error) {
	res, err := assignment.MaximizeScore(m, assignment.Options{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("assignment: %w", err)
	}

	return res.ColInd, nil
}

func (e *Engine) solveExchange(ctx context.Context, m *matrix.Compatibility, cfg Config) ([]int, int, error) {
	g, err := exchange.Build(m, cfg.Policy())
	if err != nil {
		return nil, 0, fmt.Errorf("exchange graph: %w", err)
	}
	mt, err := blossom.MaxWeightMatching(g, blossom.Options{MaxCardinality: cfg.MaxCardinality, Ctx: ctx})
	if err != nil {
		return nil, g.Len(), fmt.Errorf("matching: %w", err)
	}
	e.log.Debug("matching computed",
		zap.Int("pairs", mt.Cardinality()),
		zap.Float64("weight", mt.Weight),
	)

	return result.FromMate(mt.Mate), g.Len(), nil
}

// SolveAll runs every configuration concurrently over m. Outcomes are in
// cfgs order; the first failure cancels the rest.
func (e *Engine) SolveAll(ctx context.Context, m *matrix.Compatibility, cfgs []Config) ([]Outcome, error) {
	outs := make([]Outcome, len(cfgs))
	g, gCtx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		g.Go(func() error {
			o, err := e.Solve(gCtx, m, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", cfg, err)
			}
			outs[i] = o

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outs, nil
}
