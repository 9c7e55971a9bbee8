// Package cmd is the command-line front end: a cobra root command with a
// single "verify" subcommand implementing spec.md §6's
// "prog <in> <out> <sat|unsat> [block_size]" contract. Grounded on the
// teacher's pkg/cmd/root.go (cobra root + persistent flags, Execute
// wrapping os.Exit) and pkg/cmd/util.go (flag-accessor helpers).
package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vipr-smt",
	Short: "Transforms a VIPR certificate into an SMT-LIB 2.6 verification formula.",
	Long: `vipr-smt reads a VIPR certificate for a mixed-integer linear program,
emits an equivalent set of SMT-LIB 2.6 assertions over AUFLIRA, dispatches
them to an external solver runner, and reports whether the result matches
an expected satisfiability outcome.`,
}

// Execute runs the root command; called once from cmd/vipr-smt/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.AddCommand(verifyCmd)

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
