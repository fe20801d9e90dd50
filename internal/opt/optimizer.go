// Package opt provides bounded stochastic minimization, currently a single
// particle swarm implementation behind a small Optimizer interface.
package opt

// Optimizer defines a bounded minimization algorithm
type Optimizer interface {
	// Run executes the optimization
	// eval: objective function to minimize (lower is better)
	// lower, upper: per-dimension parameter bounds
	// dim: dimensionality of parameter space
	// Returns: best parameters and best cost
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}

// ProgressFunc observes the search without influencing it. It receives the
// iteration index and the global-best cost at the end of that iteration.
type ProgressFunc func(iteration int, bestCost float64)
