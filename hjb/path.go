package hjb

import (
	"github.com/SuriChen1028/PortfolioChoice/ode"
)

// CoefficientPath is a solved coefficient function: samples on the caller's
// evaluation grid plus a dense interpolant for arbitrary-point queries. For
// the time-parameterized solvers the independent variable is forward time on
// [0, T]; for the state-parameterized solver it is the variance level on
// [epsilon, sigma0]. Paths are immutable once returned.
type CoefficientPath struct {
	// Times holds the evaluation grid of the independent variable.
	Times []float64
	// Values holds the coefficient samples, Values[i] at Times[i].
	Values []float64

	dense *ode.Solution
	// reversed marks that the dense solution lives on the reversed axis
	// s = horizon - t.
	reversed bool
	horizon  float64
}

// At evaluates the coefficient at an arbitrary point of its domain.
// Querying outside the domain is a programming-contract violation and panics
// with an *ode.OutOfRangeError.
func (p *CoefficientPath) At(x float64) float64 {
	if p.reversed {
		if x < 0 || x > p.horizon {
			panic(&ode.OutOfRangeError{T: x, From: 0, To: p.horizon})
		}
		return p.dense.At(p.horizon-x, 0)
	}
	return p.dense.At(x, 0)
}

// Span returns the domain covered by the path.
func (p *CoefficientPath) Span() (float64, float64) {
	if p.reversed {
		return 0, p.horizon
	}
	return p.dense.Span()
}

// Terminal returns the last grid sample, i.e. the value at the terminal time
// for time-parameterized paths.
func (p *CoefficientPath) Terminal() float64 {
	return p.Values[len(p.Values)-1]
}
