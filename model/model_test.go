package model

import (
	"errors"
	"math"
	"testing"
)

func validParams() Parameters {
	return Parameters{Sigma0: 0.01, By: 0.18, Gamma: 5, Alpha: 0, Delta: 0.01, R: 0.02}
}

func TestParametersValidate(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("default parameters should validate: %v", err)
	}
	bad := []Parameters{
		{Sigma0: 0, By: 0.18, Gamma: 5, Delta: 0.01},
		{Sigma0: 0.01, By: 0, Gamma: 5, Delta: 0.01},
		{Sigma0: 0.01, By: 0.18, Gamma: 0, Delta: 0.01},
		{Sigma0: 0.01, By: 0.18, Gamma: 5, Alpha: -1, Delta: 0.01},
		{Sigma0: 0.01, By: 0.18, Gamma: 5, Delta: 0},
		{Sigma0: 0.01, By: 0.18, Gamma: 5, Delta: 0.01, R: math.NaN()},
	}
	for i, p := range bad {
		err := p.Validate()
		if err == nil {
			t.Errorf("case %d should fail validation", i)
			continue
		}
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("case %d: error should wrap ErrInvalidParameter, got %v", i, err)
		}
	}
}

func TestHorizonGrid(t *testing.T) {
	h := Horizon{T: 25, Dt: 0.01}
	grid := h.Grid()
	if len(grid) != 2501 {
		t.Fatalf("expected 2501 grid points, got %v", len(grid))
	}
	if grid[0] != 0 {
		t.Errorf("grid must start at 0, got %v", grid[0])
	}
	if grid[len(grid)-1] != 25 {
		t.Errorf("grid must end exactly at T, got %v", grid[len(grid)-1])
	}

	// Non-integral T/dt still ends exactly at T, with a spacing below dt.
	h = Horizon{T: 1, Dt: 0.3}
	grid = h.Grid()
	if len(grid) != 5 {
		t.Fatalf("expected ceil(1/0.3)+1 = 5 points, got %v", len(grid))
	}
	if grid[len(grid)-1] != 1 {
		t.Errorf("grid must end exactly at T, got %v", grid[len(grid)-1])
	}
	if step := grid[1] - grid[0]; step > 0.3 {
		t.Errorf("effective step %v exceeds dt", step)
	}

	// Horizons whose spacing is not exactly representable must still end
	// exactly at T and never overshoot it at interior points.
	for _, h := range []Horizon{
		{T: 5.724775182473188, Dt: 0.1},
		{T: math.Pi, Dt: 0.05},
		{T: 0.3, Dt: 0.07},
		{T: 1e5, Dt: 3.3},
	} {
		grid := h.Grid()
		if grid[0] != 0 {
			t.Errorf("T=%v: grid must start at 0, got %v", h.T, grid[0])
		}
		if grid[len(grid)-1] != h.T {
			t.Errorf("T=%v: grid must end exactly at T, got %v (diff %v)",
				h.T, grid[len(grid)-1], grid[len(grid)-1]-h.T)
		}
		for i, g := range grid {
			if g > h.T {
				t.Errorf("T=%v: grid[%d] = %v exceeds T", h.T, i, g)
			}
		}
	}
}

func TestVarianceDecay(t *testing.T) {
	const (
		sigma0 = 0.01
		by     = 0.18
	)
	if got := Variance(sigma0, by, 0); got != sigma0 {
		t.Errorf("Sigma(0) = %v, want exactly %v", got, sigma0)
	}
	// Strict monotone decay.
	prev := Variance(sigma0, by, 0)
	for _, tt := range []float64{0.5, 1, 3, 10, 100, 1e4} {
		cur := Variance(sigma0, by, tt)
		if !(cur < prev) {
			t.Errorf("Sigma not strictly decreasing at t=%v: %v >= %v", tt, cur, prev)
		}
		prev = cur
	}
	if lim := Variance(sigma0, by, 1e12); lim > 1e-10 {
		t.Errorf("Sigma should vanish for large t, got %v", lim)
	}
}

func TestDecayPath(t *testing.T) {
	h := Horizon{T: 2, Dt: 0.5}
	path, err := Decay(0.01, 0.18, h)
	if err != nil {
		t.Fatalf("decay failed: %v", err)
	}
	if len(path.Times) != len(path.Values) || len(path.Times) != 5 {
		t.Fatalf("unexpected path shape: %v times, %v values", len(path.Times), len(path.Values))
	}
	for i, tt := range path.Times {
		if want := Variance(0.01, 0.18, tt); path.Values[i] != want {
			t.Errorf("path value at t=%v is %v, want %v", tt, path.Values[i], want)
		}
	}

	if _, err := Decay(-1, 0.18, h); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("negative sigma0 should be rejected, got %v", err)
	}
	if _, err := Decay(0.01, 0, h); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero B_y should be rejected, got %v", err)
	}
	if _, err := Decay(0.01, 0.18, Horizon{T: 1, Dt: 0}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero dt should be rejected, got %v", err)
	}
}

func TestTerminalConditionString(t *testing.T) {
	if ZeroTerminal.String() != "zero" || LimitingTerminal.String() != "limiting" {
		t.Error("unexpected terminal condition names")
	}
	if err := TerminalCondition(7).Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown variant should be rejected, got %v", err)
	}
}
