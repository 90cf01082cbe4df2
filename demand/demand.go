// Package demand computes portfolio demands and their slopes from a solved
// quadratic value-function coefficient. All functions are pure and
// non-iterative; inputs are assumed to satisfy model.Parameters.Validate,
// which the solvers enforce at their boundary.
package demand

import (
	"github.com/SuriChen1028/PortfolioChoice/model"
)

// Myopic is the single-period optimal response to an expected excess
// return, ignoring future variance changes.
func Myopic(excessReturn float64, p model.Parameters) float64 {
	return excessReturn / p.RiskDenominator(p.Sigma0)
}

// Hedging is the demand component compensating for anticipated future
// variance decay, proportional to the solved quadratic coefficient.
func Hedging(excessReturn, k2 float64, p model.Parameters) float64 {
	by2 := p.By * p.By
	return -k2 * excessReturn * (p.Sigma0 / by2) *
		((p.Gamma-1)*by2 + p.Alpha*p.Sigma0) / p.RiskDenominator(p.Sigma0)
}

// Total is the myopic plus hedging demand. Both components are linear in
// the excess return.
func Total(excessReturn, k2 float64, p model.Parameters) float64 {
	return Myopic(excessReturn, p) + Hedging(excessReturn, k2, p)
}

// MyopicSlope is the myopic demand per unit of excess return.
func MyopicSlope(p model.Parameters) float64 {
	return Myopic(1, p)
}

// HedgingSlope is the hedging demand per unit of excess return.
func HedgingSlope(k2 float64, p model.Parameters) float64 {
	return Hedging(1, k2, p)
}

// TotalSlope is the total demand per unit of excess return.
func TotalSlope(k2 float64, p model.Parameters) float64 {
	return Total(1, k2, p)
}

// DistortionSlope is the proportional reduction in the expected excess
// return under the worst-case probability distortion implied by the
// ambiguity weight.
func DistortionSlope(k2 float64, p model.Parameters) float64 {
	return p.Alpha * p.Sigma0 * (TotalSlope(k2, p) + k2*p.Sigma0/(p.By*p.By))
}
