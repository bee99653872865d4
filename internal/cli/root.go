// Package cli implements the sigwait command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func NewRoot(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sigwait",
		Short:         "sigwait: a blocking, pollable queue of POSIX signals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = version
	cmd.SetVersionTemplate("sigwait {{.Version}}\n")

	cmd.AddCommand(newWaitCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
