package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// getFlag mirrors the teacher's pkg/cmd/util.go getFlag: fetch a bool
// flag or abort, since a missing/mistyped flag here is a programming
// error, not user input.
func getFlag(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return v
}

func getString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return v
}

func getStringSlice(cmd *cobra.Command, flag string) []string {
	v, err := cmd.Flags().GetStringSlice(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return v
}
