package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Anirban95/PSO-BADINIT/internal/matio"
	"github.com/Anirban95/PSO-BADINIT/internal/nmf"
	"github.com/Anirban95/PSO-BADINIT/internal/store"
)

var (
	wPath   string
	xPath   string
	outPath string
	popSize int
	iters   int
	inertia float64
	c1      float64
	c2      float64
	lb      float64
	ub      float64
	seed    uint64
	verbose bool
	dataDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fit the coefficient matrix H for given W and X",
	Long: `Loads W and X from CSV, runs the particle swarm search for H, and writes
the fitted H to CSV. With --data-dir, the run manifest and a per-iteration
best-cost trace are persisted for later inspection.`,
	RunE: runFit,
}

func init() {
	runCmd.Flags().StringVar(&wPath, "w", "", "Basis matrix W as CSV, g rows x k columns (required)")
	runCmd.Flags().StringVar(&xPath, "x", "", "Target matrix X as CSV, g rows x s columns (required)")
	runCmd.Flags().StringVar(&outPath, "out", "h.csv", "Output path for the fitted H (k x s)")
	runCmd.Flags().IntVar(&popSize, "pop", 30, "Swarm population size (floored to 2)")
	runCmd.Flags().IntVar(&iters, "iters", 500, "Iteration budget")
	runCmd.Flags().Float64Var(&inertia, "inertia", 0.729, "Inertia weight")
	runCmd.Flags().Float64Var(&c1, "c1", 1.49445, "Cognitive coefficient")
	runCmd.Flags().Float64Var(&c2, "c2", 1.49445, "Social coefficient")
	runCmd.Flags().Float64Var(&lb, "lb", 0, "Lower bound for H entries")
	runCmd.Flags().Float64Var(&ub, "ub", 10, "Upper bound for H entries")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed (0 = derive from time)")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "Emit progress lines during the search")
	runCmd.Flags().StringVar(&dataDir, "data-dir", "", "Persist run manifest and cost trace under this directory")

	runCmd.MarkFlagRequired("w")
	runCmd.MarkFlagRequired("x")
	rootCmd.AddCommand(runCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	W, err := matio.ReadMatrix(wPath)
	if err != nil {
		return fmt.Errorf("failed to load W: %w", err)
	}
	X, err := matio.ReadMatrix(xPath)
	if err != nil {
		return fmt.Errorf("failed to load X: %w", err)
	}

	g, k := W.Dims()
	_, s := X.Dims()
	slog.Info("Loaded matrices", "g", g, "k", k, "s", s)

	cfg := nmf.Config{
		Population: popSize,
		MaxIters:   iters,
		Inertia:    inertia,
		Cognitive:  c1,
		Social:     c2,
		LowerBound: lb,
		UpperBound: ub,
		Verbose:    verbose,
		Seed:       seed,
	}
	solver := nmf.NewWithConfig(cfg)

	// Optionally tee the best-cost decay into a persisted trace.
	var (
		fsStore *store.FSStore
		trace   *store.TraceWriter
		runID   string
	)
	if dataDir != "" {
		fsStore, err = store.NewFSStore(dataDir)
		if err != nil {
			return fmt.Errorf("failed to open data dir: %w", err)
		}
		runID = store.NewRunID()
		trace, err = store.NewTraceWriter(dataDir, runID)
		if err != nil {
			return fmt.Errorf("failed to create trace: %w", err)
		}
		defer trace.Close()

		solver.OnProgress(func(iteration int, bestCost float64) {
			entry := store.TraceEntry{Iteration: iteration, BestCost: bestCost, Timestamp: time.Now()}
			if werr := trace.Write(entry); werr != nil {
				slog.Warn("Failed to write trace entry", "error", werr)
			}
		})
	}

	start := time.Now()
	H, err := solver.Fit(W, X)
	if err != nil {
		return fmt.Errorf("fit failed: %w", err)
	}
	elapsed := time.Since(start)

	if err := matio.WriteMatrix(outPath, H); err != nil {
		return fmt.Errorf("failed to write H: %w", err)
	}

	// Residual of the returned H, for the summary and the manifest.
	codec := nmf.Codec{Rows: k, Cols: s}
	flat := make([]float64, codec.Len())
	codec.Encode(H, flat)
	bestCost := nmf.NewResidualCost(W, X, codec, lb)(flat)

	slog.Info("Fit complete",
		"elapsed", elapsed,
		"best_cost", bestCost,
		"out", outPath,
	)

	if fsStore != nil {
		result := &store.RunResult{
			RunID:     runID,
			Timestamp: time.Now(),
			Config: store.RunConfig{
				Population: popSize,
				MaxIters:   iters,
				Inertia:    inertia,
				Cognitive:  c1,
				Social:     c2,
				LowerBound: lb,
				UpperBound: ub,
				Seed:       seed,
			},
			Rows:       g,
			Basis:      k,
			Samples:    s,
			BestCost:   bestCost,
			Elapsed:    elapsed,
			OutputPath: outPath,
		}
		if err := result.Validate(); err != nil {
			return fmt.Errorf("refusing to persist run: %w", err)
		}
		if err := fsStore.SaveResult(runID, result); err != nil {
			return fmt.Errorf("failed to persist run: %w", err)
		}
		slog.Info("Run persisted", "run_id", runID, "dir", fsStore.RunDir(runID))
	}

	fmt.Printf("Wrote %s (%dx%d, cost %.6g, %s)\n", outPath, k, s, bestCost, elapsed.Round(time.Millisecond))
	return nil
}
