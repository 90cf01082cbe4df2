package model

import (
	"fmt"
)

// Variance is the closed-form deterministic decay path of the variance
// process,
//
// Sigma(t) = B_y^2*sigma0 / (t*sigma0 + B_y^2).
//
// It decreases strictly monotonically from sigma0 at t = 0 toward zero as
// t grows. The caller is responsible for sigma0 > 0 and B_y != 0; see
// Parameters.Validate.
func Variance(sigma0, by, t float64) float64 {
	// Written as sigma0/(1 + t*sigma0/B_y^2) so that Sigma(0) == sigma0
	// exactly.
	return sigma0 / (1 + t*sigma0/(by*by))
}

// DecayPath is the variance decay sampled on an evaluation grid. It is
// computed in closed form, not integrated, and never mutated after creation.
type DecayPath struct {
	Times  []float64
	Values []float64
}

// Decay samples the variance decay on the horizon's evaluation grid.
func Decay(sigma0, by float64, h Horizon) (*DecayPath, error) {
	if !(sigma0 > 0) {
		return nil, fmt.Errorf("%w: sigma0 must be positive, got %v", ErrInvalidParameter, sigma0)
	}
	if by == 0 {
		return nil, fmt.Errorf("%w: B_y must be nonzero", ErrInvalidParameter)
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	times := h.Grid()
	values := make([]float64, len(times))
	for i, t := range times {
		values[i] = Variance(sigma0, by, t)
	}
	return &DecayPath{Times: times, Values: values}, nil
}
