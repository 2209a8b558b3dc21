package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the commitview root command
func NewRootCmd() *cobra.Command {
	version := os.Getenv("COMMITVIEW_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "commitview",
		Short:         "Display-ready views of single GitHub commits",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of commitview",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitview version %s\n", version)
		},
	})

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewShowCmd())

	return cmd
}
