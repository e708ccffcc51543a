// Package main implements the cv_ranker CLI for explainable CV scoring and ranking.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_ranker",
	Short: "Explainable CV scoring and ranking toolkit",
	Long:  "cv_ranker scores structured CV records against configurable criteria, ranks scored batches, explains pairwise comparisons with evidence, and evaluates ranking quality against ground truth.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
