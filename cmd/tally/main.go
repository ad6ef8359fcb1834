// Command tally tabulates instant-runoff results outside the API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Instant-runoff tabulation for ranked choice polls",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newComputeCmd())
	root.AddCommand(newFetchCmd())

	return root
}
