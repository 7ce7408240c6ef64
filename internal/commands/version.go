package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-parser/internal/buildinfo"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "statement-parser %s\n", buildinfo.String())
		},
	}
}
