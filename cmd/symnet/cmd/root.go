package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "symnet",
	Short: "Symbolic linear network algebra",
	Long: `Compose one-port and two-port linear networks symbolically, inspect
their matrix representations, and sweep terminated sections over frequency.

Examples:
  symnet info tsection 10 20 30           # T section parameter matrices
  symnet info lsection "1/(s*1e-6)" 50    # element values are s-expressions
  symnet sweep lsection 1000 "1/(s*159e-9)" --start 10 --stop 100000`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
