package opt

import (
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Default velocity-update coefficients. The inertia and learn factors are the
// constriction-style values common in the PSO literature (Clerc's constriction
// coefficient applied to c1 = c2 = 2.05).
const (
	DefaultInertia   = 0.729
	DefaultCognitive = 1.49445
	DefaultSocial    = 1.49445
)

// minPopulation is the smallest swarm that still has a meaningful social term.
// Requested populations below this are floored, not rejected.
const minPopulation = 2

// initVelocityScale damps initial velocities so the first moves stay small
// relative to the position range.
const initVelocityScale = 0.1

// progressStride is the iteration cadence of progress notifications.
const progressStride = 50

// PSOConfig holds the swarm parameters for one Run call.
type PSOConfig struct {
	// Population is the number of particles. Values below 2 are floored to 2.
	Population int

	// MaxIters is the fixed iteration budget. There is no early stopping.
	MaxIters int

	// Inertia, Cognitive and Social weight the three velocity terms.
	Inertia   float64
	Cognitive float64
	Social    float64

	// Seed drives the single pseudo-random stream used for the whole run.
	// A zero seed is replaced with a time-derived value at Run time.
	Seed uint64

	// Progress, when non-nil, is invoked every progressStride iterations and
	// on the final iteration. It must not mutate anything the search reads.
	Progress ProgressFunc
}

// NewPSOConfig returns a config with the default coefficients and a 30/500
// population/iteration budget.
func NewPSOConfig() PSOConfig {
	return PSOConfig{
		Population: 30,
		MaxIters:   500,
		Inertia:    DefaultInertia,
		Cognitive:  DefaultCognitive,
		Social:     DefaultSocial,
	}
}

// PSO is a particle swarm optimizer over a box-bounded search space.
//
// Each particle carries a position, a velocity, and its best-seen position and
// cost. Velocities blend the previous velocity (inertia), the pull toward the
// particle's own best (cognitive), and the pull toward the swarm's best
// (social). Positions are hard-clamped into [lower, upper] after every move;
// with a lower bound of zero this clamp is the non-negativity projection.
//
// The global best seen by velocity updates is the pre-iteration global best
// for every particle in a sweep; it is refreshed by a min-reduction over the
// personal bests after the sweep completes. Best-so-far costs are therefore
// monotonically non-increasing across iterations.
//
// Determinism: all randomness comes from one seeded stream consumed in a fixed
// order - three draws per dimension per particle at initialization, then two
// draws per dimension per particle per iteration, particle-major. A fixed
// seed, config, and objective reproduce the run bit for bit.
type PSO struct {
	cfg PSOConfig
}

// NewPSO creates a particle swarm optimizer with the given config.
func NewPSO(cfg PSOConfig) *PSO {
	return &PSO{cfg: cfg}
}

type particle struct {
	pos      []float64
	vel      []float64
	bestPos  []float64
	bestCost float64
}

// Run searches for the minimum of eval inside the box [lower, upper] and
// returns the best position and cost found within the iteration budget.
func (p *PSO) Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64) {
	pop := p.cfg.Population
	if pop < minPopulation {
		slog.Warn("Population below minimum, flooring", "requested", pop, "floor", minPopulation)
		pop = minPopulation
	}

	seed := p.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	slog.Debug("Starting swarm search",
		"dim", dim, "population", pop, "iters", p.cfg.MaxIters, "seed", seed)

	// Initialize particles: positions uniform in the box, velocities from the
	// damped difference of two further uniform draws.
	swarm := make([]*particle, pop)
	for i := range swarm {
		pt := &particle{
			pos:     make([]float64, dim),
			vel:     make([]float64, dim),
			bestPos: make([]float64, dim),
		}
		for d := 0; d < dim; d++ {
			span := upper[d] - lower[d]
			pt.pos[d] = lower[d] + rng.Float64()*span
			u1 := lower[d] + rng.Float64()*span
			u2 := lower[d] + rng.Float64()*span
			pt.vel[d] = (u1 - u2) * initVelocityScale
		}
		copy(pt.bestPos, pt.pos)
		pt.bestCost = eval(pt.pos)
		swarm[i] = pt
	}

	// Global best is the minimum personal best; ties keep the first found.
	gbestPos := make([]float64, dim)
	copy(gbestPos, swarm[0].bestPos)
	gbestCost := swarm[0].bestCost
	for _, pt := range swarm[1:] {
		if pt.bestCost < gbestCost {
			gbestCost = pt.bestCost
			copy(gbestPos, pt.bestPos)
		}
	}

	for iter := 0; iter < p.cfg.MaxIters; iter++ {
		for _, pt := range swarm {
			for d := 0; d < dim; d++ {
				// r1 and r2 must be drawn fresh for every dimension.
				r1 := rng.Float64()
				r2 := rng.Float64()
				pt.vel[d] = p.cfg.Inertia*pt.vel[d] +
					p.cfg.Cognitive*r1*(pt.bestPos[d]-pt.pos[d]) +
					p.cfg.Social*r2*(gbestPos[d]-pt.pos[d])
				pt.pos[d] = clamp(pt.pos[d]+pt.vel[d], lower[d], upper[d])
			}

			if cost := eval(pt.pos); cost < pt.bestCost {
				pt.bestCost = cost
				copy(pt.bestPos, pt.pos)
			}
		}

		// Fold personal bests into the global best only after the full sweep,
		// so every particle in one iteration saw the same global best.
		for _, pt := range swarm {
			if pt.bestCost < gbestCost {
				gbestCost = pt.bestCost
				copy(gbestPos, pt.bestPos)
			}
		}

		if p.cfg.Progress != nil && (iter%progressStride == 0 || iter == p.cfg.MaxIters-1) {
			p.cfg.Progress(iter, gbestCost)
		}
	}

	best := make([]float64, dim)
	copy(best, gbestPos)
	return best, gbestCost
}

func clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
