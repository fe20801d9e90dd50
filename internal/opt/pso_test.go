package opt

import (
	"math"
	"testing"
)

// Sphere function: f(x) = sum(x_i^2), minimum at origin
func sphere(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func uniformBounds(dim int, lo, hi float64) ([]float64, []float64) {
	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := range lower {
		lower[i] = lo
		upper[i] = hi
	}
	return lower, upper
}

func TestPSOOnSphere(t *testing.T) {
	cfg := NewPSOConfig()
	cfg.Seed = 42

	dim := 3
	lower, upper := uniformBounds(dim, -10, 10)

	best, cost := NewPSO(cfg).Run(sphere, lower, upper, dim)

	if len(best) != dim {
		t.Fatalf("Expected %d parameters, got %d", dim, len(best))
	}

	// Should converge close to zero
	if cost > 0.01 {
		t.Errorf("Expected cost near 0, got %f", cost)
	}

	for i, v := range best {
		if math.Abs(v) > 0.5 {
			t.Errorf("Parameter %d = %f, expected near 0", i, v)
		}
	}
}

func TestPSODeterministic(t *testing.T) {
	dim := 4
	lower, upper := uniformBounds(dim, -5, 5)

	cfg := NewPSOConfig()
	cfg.MaxIters = 50
	cfg.Seed = 123

	best1, cost1 := NewPSO(cfg).Run(sphere, lower, upper, dim)
	best2, cost2 := NewPSO(cfg).Run(sphere, lower, upper, dim)

	if cost1 != cost2 {
		t.Errorf("Non-deterministic: cost1=%v, cost2=%v", cost1, cost2)
	}
	for i := range best1 {
		if best1[i] != best2[i] {
			t.Errorf("Position %d differs: %v vs %v", i, best1[i], best2[i])
		}
	}
}

func TestPSORespectsBounds(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
	}{
		{name: "non-negative box", lo: 0, hi: 10},
		{name: "shifted box", lo: 2, hi: 3},
		{name: "negative box", lo: -8, hi: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dim := 5
			lower, upper := uniformBounds(dim, tt.lo, tt.hi)

			cfg := NewPSOConfig()
			cfg.MaxIters = 100
			cfg.Seed = 7

			// Pull the swarm toward a point outside the box so the clamp
			// actually has to act.
			target := tt.lo - 5
			pull := func(x []float64) float64 {
				var sum float64
				for _, v := range x {
					d := v - target
					sum += d * d
				}
				return sum
			}

			best, _ := NewPSO(cfg).Run(pull, lower, upper, dim)
			for i, v := range best {
				if v < tt.lo || v > tt.hi {
					t.Errorf("best[%d] = %f outside [%f, %f]", i, v, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestPSOPopulationFloor(t *testing.T) {
	for _, pop := range []int{0, 1, -3} {
		cfg := NewPSOConfig()
		cfg.Population = pop
		cfg.MaxIters = 20
		cfg.Seed = 9

		lower, upper := uniformBounds(2, -1, 1)
		best, cost := NewPSO(cfg).Run(sphere, lower, upper, 2)

		if len(best) != 2 {
			t.Fatalf("pop=%d: expected 2 parameters, got %d", pop, len(best))
		}
		if math.IsInf(cost, 1) || math.IsNaN(cost) {
			t.Errorf("pop=%d: expected finite cost, got %v", pop, cost)
		}
	}
}

func TestPSOProgressMonotonic(t *testing.T) {
	var iters []int
	var costs []float64

	cfg := NewPSOConfig()
	cfg.MaxIters = 200
	cfg.Seed = 11
	cfg.Progress = func(iteration int, bestCost float64) {
		iters = append(iters, iteration)
		costs = append(costs, bestCost)
	}

	lower, upper := uniformBounds(3, -10, 10)
	NewPSO(cfg).Run(sphere, lower, upper, 3)

	// Every 50th iteration plus the final one.
	want := []int{0, 50, 100, 150, 199}
	if len(iters) != len(want) {
		t.Fatalf("Expected %d progress calls, got %d (%v)", len(want), len(iters), iters)
	}
	for i, w := range want {
		if iters[i] != w {
			t.Errorf("Progress call %d at iteration %d, want %d", i, iters[i], w)
		}
	}

	for i := 1; i < len(costs); i++ {
		if costs[i] > costs[i-1] {
			t.Errorf("Best cost increased between reports: %v then %v", costs[i-1], costs[i])
		}
	}
}

func TestPSOZeroSeedStillRuns(t *testing.T) {
	cfg := NewPSOConfig()
	cfg.MaxIters = 10
	cfg.Seed = 0 // time-derived

	lower, upper := uniformBounds(2, 0, 1)
	best, cost := NewPSO(cfg).Run(sphere, lower, upper, 2)

	if len(best) != 2 {
		t.Fatalf("Expected 2 parameters, got %d", len(best))
	}
	if cost < 0 {
		t.Errorf("Expected non-negative cost, got %f", cost)
	}
}
