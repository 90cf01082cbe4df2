package demand

import (
	"math"
	"testing"

	"github.com/SuriChen1028/PortfolioChoice/hjb"
	"github.com/SuriChen1028/PortfolioChoice/model"
)

func defaultParams() model.Parameters {
	return model.Parameters{Sigma0: 0.01, By: 0.18, Gamma: 5, Alpha: 0, Delta: 0.01, R: 0.02}
}

func TestMyopicSlopeClosedForm(t *testing.T) {
	p := defaultParams()
	if got := MyopicSlope(p); math.Abs(got-6.173) > 5e-4 {
		t.Errorf("myopic slope = %v, want 6.173", got)
	}
}

func TestAlphaZeroDecoupling(t *testing.T) {
	// With alpha = 0 the myopic slope is 1/(gamma*B^2), independent of the
	// variance level.
	p := defaultParams()
	base := MyopicSlope(p)
	p.Sigma0 = 0.05
	if got := MyopicSlope(p); got != base {
		t.Errorf("myopic slope should not depend on sigma0 at alpha=0: %v vs %v", got, base)
	}
	if want := 1 / (p.Gamma * p.By * p.By); math.Abs(base-want) > 1e-12 {
		t.Errorf("myopic slope = %v, want %v", base, want)
	}
}

func TestLinearityInExcessReturn(t *testing.T) {
	p := defaultParams()
	const k2 = 20.5
	for _, x := range []float64{0.5, 1, 2, -3} {
		if got, want := Total(x, k2, p), x*TotalSlope(k2, p); math.Abs(got-want) > 1e-12*math.Abs(want) {
			t.Errorf("Total(%v) = %v, want %v", x, got, want)
		}
		if got, want := Myopic(x, p)+Hedging(x, k2, p), Total(x, k2, p); got != want {
			t.Errorf("components do not add up at x=%v", x)
		}
	}
}

func TestFiniteHorizonScenario(t *testing.T) {
	// Table scenario: 25-year horizon, zero terminal condition.
	p := defaultParams()
	h := model.Horizon{T: 25, Dt: 0.01}
	k2, err := hjb.SolveQuadratic(p, h, model.ZeroTerminal)
	if err != nil {
		t.Fatalf("quadratic solve failed: %v", err)
	}
	k2Now := k2.At(0)
	if math.Abs(k2Now-20.5096) > 2e-3 {
		t.Errorf("K2(0) = %v, want 20.5096", k2Now)
	}
	if got := MyopicSlope(p); math.Abs(got-6.173) > 1e-3 {
		t.Errorf("myopic slope = %v, want 6.173", got)
	}
	if got := HedgingSlope(k2Now, p); math.Abs(got-(-5.064)) > 1e-3 {
		t.Errorf("hedging slope = %v, want -5.064", got)
	}
	if got := TotalSlope(k2Now, p); math.Abs(got-1.109) > 1e-3 {
		t.Errorf("total slope = %v, want 1.109", got)
	}
}

func TestInfiniteHorizonScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("long horizon")
	}
	// Same parameters under the limiting terminal condition at T=100000.
	// The myopic slope has no time dependence and is unchanged.
	p := defaultParams()
	h := model.Horizon{T: 100000, Dt: 1000}
	k2, err := hjb.SolveQuadratic(p, h, model.LimitingTerminal)
	if err != nil {
		t.Fatalf("quadratic solve failed: %v", err)
	}
	k2Now := k2.At(0)
	if math.Abs(k2Now-22.3638) > 2e-3 {
		t.Errorf("K2(0) = %v, want 22.3638", k2Now)
	}
	if got := MyopicSlope(p); math.Abs(got-6.173) > 1e-3 {
		t.Errorf("myopic slope = %v, want 6.173", got)
	}
	if got := HedgingSlope(k2Now, p); math.Abs(got-(-5.522)) > 1e-3 {
		t.Errorf("hedging slope = %v, want -5.522", got)
	}
	if got := TotalSlope(k2Now, p); math.Abs(got-0.651) > 1e-3 {
		t.Errorf("total slope = %v, want 0.651", got)
	}
}

func TestDistortionScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("long horizon")
	}
	p := defaultParams()
	p.Alpha = 3
	h := model.Horizon{T: 100000, Dt: 1000}
	k2, err := hjb.SolveQuadratic(p, h, model.LimitingTerminal)
	if err != nil {
		t.Fatalf("quadratic solve failed: %v", err)
	}
	if got := DistortionSlope(k2.At(0), p); math.Abs(got-0.187) > 1e-3 {
		t.Errorf("distortion slope = %v, want 0.187", got)
	}
}

func TestDistortionVanishesWithoutAmbiguity(t *testing.T) {
	p := defaultParams()
	if got := DistortionSlope(22.4, p); got != 0 {
		t.Errorf("distortion slope = %v, want 0 at alpha=0", got)
	}
}
