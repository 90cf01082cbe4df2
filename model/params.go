// Package model holds the parameter records of the ambiguity-averse
// portfolio-choice problem and the closed-form variance decay driving its
// coefficient equations.
package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidParameter is returned when a caller-supplied parameter fails its
// basic sanity range check. All validation errors wrap it.
var ErrInvalidParameter = errors.New("invalid parameter")

// Parameters is the immutable parameter record of one problem instance.
type Parameters struct {
	// Sigma0 is the initial variance level, > 0.
	Sigma0 float64
	// By is the structural volatility scale, != 0.
	By float64
	// Gamma is the relative risk aversion, > 0.
	Gamma float64
	// Alpha is the ambiguity-aversion weight, >= 0.
	Alpha float64
	// Delta is the subjective discount rate, > 0.
	Delta float64
	// R is the riskless rate.
	R float64
}

// Validate rejects parameter values outside their admissible ranges. The
// variance decays monotonically from Sigma0 toward zero, so checking the
// risk denominator at Sigma0 and at zero covers the whole horizon.
func (p Parameters) Validate() error {
	switch {
	case !(p.Sigma0 > 0):
		return fmt.Errorf("%w: sigma0 must be positive, got %v", ErrInvalidParameter, p.Sigma0)
	case p.By == 0:
		return fmt.Errorf("%w: B_y must be nonzero", ErrInvalidParameter)
	case !(p.Gamma > 0):
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidParameter, p.Gamma)
	case p.Alpha < 0 || math.IsNaN(p.Alpha):
		return fmt.Errorf("%w: alpha must be nonnegative, got %v", ErrInvalidParameter, p.Alpha)
	case !(p.Delta > 0):
		return fmt.Errorf("%w: delta must be positive, got %v", ErrInvalidParameter, p.Delta)
	case math.IsNaN(p.R) || math.IsInf(p.R, 0):
		return fmt.Errorf("%w: r must be finite, got %v", ErrInvalidParameter, p.R)
	}
	if p.RiskDenominator(p.Sigma0) <= 0 || p.RiskDenominator(0) <= 0 {
		return fmt.Errorf("%w: gamma*B_y^2 + alpha*sigma must stay positive over the horizon", ErrInvalidParameter)
	}
	return nil
}

// RiskDenominator is gamma*B_y^2 + alpha*sigma, the denominator shared by
// the coefficient equations and the demand formulas.
func (p Parameters) RiskDenominator(sigma float64) float64 {
	return p.Gamma*p.By*p.By + p.Alpha*sigma
}

// Horizon is a finite terminal time together with the evaluation step used
// to build the reported output grid.
type Horizon struct {
	T  float64
	Dt float64
}

// Validate rejects non-positive horizons and steps.
func (h Horizon) Validate() error {
	if !(h.T > 0) {
		return fmt.Errorf("%w: horizon T must be positive, got %v", ErrInvalidParameter, h.T)
	}
	if !(h.Dt > 0) {
		return fmt.Errorf("%w: step dt must be positive, got %v", ErrInvalidParameter, h.Dt)
	}
	return nil
}

// Grid returns ceil(T/dt)+1 evenly spaced evaluation times, the last one
// exactly T. When T is not an integer multiple of dt the effective spacing
// shrinks below dt rather than overshooting the terminal time.
func (h Horizon) Grid() []float64 {
	n := int(math.Ceil(h.T/h.Dt - 1e-12))
	if n < 1 {
		n = 1
	}
	grid := floats.Span(make([]float64, n+1), 0, h.T)
	// Span accumulates the endpoint as n*(T/n), which can land one ulp past
	// T. Pin it so grid queries never leave [0, T].
	grid[n] = h.T
	return grid
}

// TerminalCondition selects the value the coefficient functions are pinned
// to at the terminal time.
type TerminalCondition int

const (
	// ZeroTerminal pins K2(T) = K0(T) = 0, the genuinely finite horizon.
	ZeroTerminal TerminalCondition = iota
	// LimitingTerminal pins the coefficients to their closed-form
	// infinite-horizon fixed point, used with a very long horizon as a
	// numerical proxy for T = infinity.
	LimitingTerminal
)

func (tc TerminalCondition) String() string {
	switch tc {
	case ZeroTerminal:
		return "zero"
	case LimitingTerminal:
		return "limiting"
	}
	return fmt.Sprintf("TerminalCondition(%d)", int(tc))
}

// Validate rejects selector values outside the two defined variants.
func (tc TerminalCondition) Validate() error {
	if tc != ZeroTerminal && tc != LimitingTerminal {
		return fmt.Errorf("%w: unknown terminal condition %d", ErrInvalidParameter, int(tc))
	}
	return nil
}
