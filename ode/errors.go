package ode

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// IntegrationError reports that an adaptive integration could not be carried
// to the end of its interval. T and State hold the last accepted time and
// state, which the caller may inspect to diagnose the failure. Retrying with
// the same inputs cannot succeed.
type IntegrationError struct {
	T      float64
	State  []float64
	Reason string
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("ode: integration failed at t=%v: %s", e.T, e.Reason)
}

// OutOfRangeError reports a dense-solution query outside the integrated
// span. This is a programming-contract violation, raised as a panic.
type OutOfRangeError struct {
	T        float64
	From, To float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("ode: query at t=%v outside solved span [%v, %v]", e.T, e.From, e.To)
}

// nanOrInf checks if there are any NaN or Inf entries in the vector.
func nanOrInf(v mat.Vector) bool {
	for index := 0; index < v.Len(); index++ {
		x := v.AtVec(index)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}
	return false
}
