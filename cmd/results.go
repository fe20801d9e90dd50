package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Anirban95/PSO-BADINIT/internal/store"
)

var resultsDataDir string

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List persisted runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		fsStore, err := store.NewFSStore(resultsDataDir)
		if err != nil {
			return fmt.Errorf("failed to open data dir: %w", err)
		}

		infos, err := fsStore.ListResults()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(infos) == 0 {
			fmt.Println("No runs found.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			return infos[i].Timestamp.Before(infos[j].Timestamp)
		})

		for _, info := range infos {
			fmt.Printf("%s  %s  g=%d k=%d s=%d  cost=%.6g\n",
				info.Timestamp.Format("2006-01-02 15:04:05"),
				info.RunID,
				info.Rows, info.Basis, info.Samples,
				info.BestCost,
			)
		}
		return nil
	},
}

func init() {
	resultsCmd.Flags().StringVar(&resultsDataDir, "data-dir", "data", "Directory holding persisted runs")
	rootCmd.AddCommand(resultsCmd)
}
