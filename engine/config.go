// SPDX-License-Identifier: MIT
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/kxmatch/exchange"
)

// ErrUnknownModel is returned by ParseModel and Solve for an unknown model.
var ErrUnknownModel = errors.New("engine: unknown model")

// Model selects the matching model.
type Model int

const (
	// Exchange pairs the original donor/patient pairs with each other.
	Exchange Model = iota
	// Assignment maps every left item to a distinct right item.
	Assignment
)

func (m Model) String() string {
	switch m {
	case Exchange:
		return "exchange"
	case Assignment:
		return "assignment"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// ParseModel is the inverse of Model.String (case-insensitive).
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exchange", "pairwise":
		return Exchange, nil
	case "assignment", "global":
		return Assignment, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
}

// Config is one solve request's settings. The exchange fields are ignored
// by the assignment model.
type Config struct {
	Model                   Model
	UseModifiedAverage      bool
	DropAsymmetricZeroEdges bool
	MaxCardinality          bool
}

// DefaultConfig returns the exchange model with plain averages, zero edges
// kept and maximum cardinality on.
func DefaultConfig() Config {
	return Config{Model: Exchange, MaxCardinality: true}
}

// Policy returns the exchange graph policy of c.
func (c Config) Policy() exchange.Policy {
	return exchange.NewPolicy(
		exchange.WithModifiedAverage(c.UseModifiedAverage),
		exchange.WithDropAsymmetricZeroEdges(c.DropAsymmetricZeroEdges),
	)
}

// String renders c compactly, e.g. "exchange(modified,drop,maxcard)".
func (c Config) String() string {
	if c.Model != Exchange {
		return c.Model.String()
	}
	var flags []string
	if c.UseModifiedAverage {
		flags = append(flags, "modified")
	} else {
		flags = append(flags, "plain")
	}
	if c.DropAsymmetricZeroEdges {
		flags = append(flags, "drop")
	}
	if c.MaxCardinality {
		flags = append(flags, "maxcard")
	}

	return c.Model.String() + "(" + strings.Join(flags, ",") + ")"
}
