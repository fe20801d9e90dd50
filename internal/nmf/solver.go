// Package nmf solves for the coefficient matrix of a non-negative matrix
// factorization X ~ W*H when W and X are given, using a particle swarm
// search over a box-bounded, flattened H.
package nmf

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Anirban95/PSO-BADINIT/internal/opt"
)

// Config holds the swarm and bound parameters for one Fit call.
type Config struct {
	// Population is the swarm size. Values below 2 are floored to 2 at run
	// time rather than rejected; the floor is logged as a warning.
	Population int

	// MaxIters is the fixed iteration budget; the sole termination criterion.
	MaxIters int

	// Inertia, Cognitive and Social are the velocity-update weights.
	Inertia   float64
	Cognitive float64
	Social    float64

	// LowerBound and UpperBound box every entry of H. With the default
	// LowerBound of 0 the projection enforces non-negativity. The same lower
	// bound is used for the evaluation-side floor and the position clamp.
	LowerBound float64
	UpperBound float64

	// Verbose enables progress lines (iteration index and best cost) every
	// 50th iteration and on the final one.
	Verbose bool

	// Seed drives the random stream. Zero means derive from time, which
	// forfeits reproducibility.
	Seed uint64
}

// DefaultConfig returns the stock configuration: a 30-particle swarm, 500
// iterations, constriction-style coefficients, and H bounded to [0, 10].
func DefaultConfig() Config {
	return Config{
		Population: 30,
		MaxIters:   500,
		Inertia:    opt.DefaultInertia,
		Cognitive:  opt.DefaultCognitive,
		Social:     opt.DefaultSocial,
		LowerBound: 0.0,
		UpperBound: 10.0,
		Verbose:    false,
		Seed:       0,
	}
}

func (c Config) validate() error {
	if c.MaxIters < 1 {
		return fmt.Errorf("%w: max iterations must be >= 1, got %d", ErrInvalidConfig, c.MaxIters)
	}
	if c.LowerBound > c.UpperBound {
		return fmt.Errorf("%w: lower bound %v exceeds upper bound %v", ErrInvalidConfig, c.LowerBound, c.UpperBound)
	}
	for name, v := range map[string]float64{
		"inertia":     c.Inertia,
		"cognitive":   c.Cognitive,
		"social":      c.Social,
		"lower bound": c.LowerBound,
		"upper bound": c.UpperBound,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Solver finds a non-negative coefficient matrix H minimizing the squared
// reconstruction error of X ~ W*H using a particle swarm search. W and X are
// borrowed read-only for the duration of one Fit call; all swarm state is
// owned by the call and does not outlive it.
//
// Numeric instability (NaN/Inf creeping in from extreme bounds, coefficients,
// or ill-conditioned W) is not guarded mid-search; with such inputs the
// result is undefined.
type Solver struct {
	cfg      Config
	progress opt.ProgressFunc
}

// New creates a solver with DefaultConfig.
func New() *Solver {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a solver with the given configuration.
func NewWithConfig(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// Config returns a copy of the solver's current configuration.
func (s *Solver) Config() Config { return s.cfg }

// Setters adjust individual fields. They take effect on the next Fit call;
// the configuration is immutable while a Fit is in flight.

func (s *Solver) SetPopulation(n int)      { s.cfg.Population = n }
func (s *Solver) SetMaxIters(n int)        { s.cfg.MaxIters = n }
func (s *Solver) SetInertia(w float64)     { s.cfg.Inertia = w }
func (s *Solver) SetCognitive(c1 float64)  { s.cfg.Cognitive = c1 }
func (s *Solver) SetSocial(c2 float64)     { s.cfg.Social = c2 }
func (s *Solver) SetBounds(lb, ub float64) { s.cfg.LowerBound, s.cfg.UpperBound = lb, ub }
func (s *Solver) SetVerbose(v bool)        { s.cfg.Verbose = v }
func (s *Solver) SetSeed(seed uint64)      { s.cfg.Seed = seed }

// OnProgress registers an observer invoked on the same cadence as verbose
// progress lines. It must not block or mutate solver state.
func (s *Solver) OnProgress(fn opt.ProgressFunc) { s.progress = fn }

// Fit searches for H (k×s) minimizing ||X - W*H||_F^2 given W (g×k) and
// X (g×s). Every entry of the returned H lies in [LowerBound, UpperBound].
//
// For a fixed seed, configuration, and inputs the run is bit-for-bit
// reproducible.
func (s *Solver) Fit(W, X mat.Matrix) (*mat.Dense, error) {
	if err := s.cfg.validate(); err != nil {
		return nil, err
	}

	gW, k := W.Dims()
	gX, sc := X.Dims()
	if gW == 0 || k == 0 || gX == 0 || sc == 0 {
		return nil, fmt.Errorf("%w: inputs must be non-empty, W is %dx%d and X is %dx%d",
			ErrShapeMismatch, gW, k, gX, sc)
	}
	if gW != gX {
		return nil, fmt.Errorf("%w: W has %d rows, X has %d rows", ErrShapeMismatch, gW, gX)
	}

	codec := Codec{Rows: k, Cols: sc}
	bounds := NewUniformBounds(codec.Len(), s.cfg.LowerBound, s.cfg.UpperBound)
	cost := NewResidualCost(W, X, codec, s.cfg.LowerBound)

	pso := opt.NewPSO(opt.PSOConfig{
		Population: s.cfg.Population,
		MaxIters:   s.cfg.MaxIters,
		Inertia:    s.cfg.Inertia,
		Cognitive:  s.cfg.Cognitive,
		Social:     s.cfg.Social,
		Seed:       s.cfg.Seed,
		Progress:   s.progressFunc(),
	})

	best, bestCost := pso.Run(cost, bounds.Lower, bounds.Upper, codec.Len())

	H := mat.NewDense(k, sc, nil)
	codec.Decode(best, H)

	if s.cfg.Verbose {
		slog.Info("Fit complete", "k", k, "s", sc, "best_cost", bestCost)
	}
	return H, nil
}

func (s *Solver) progressFunc() opt.ProgressFunc {
	verbose := s.cfg.Verbose
	observer := s.progress
	if !verbose && observer == nil {
		return nil
	}
	return func(iteration int, bestCost float64) {
		if verbose {
			slog.Info("Swarm progress", "iteration", iteration, "best_cost", bestCost)
		}
		if observer != nil {
			observer(iteration, bestCost)
		}
	}
}
