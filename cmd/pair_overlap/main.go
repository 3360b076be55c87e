// Package main provides the entry point for the employee pair overlap CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pair_overlap",
	Short: "Employee pair overlap finder",
	Long: `Reads employee project assignments (employeeId, projectId, fromDate, toDate) and reports
which pair of employees worked together on common projects for the longest total time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
