package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/holocron/pkg/version"
)

func newVersionCmd(ver string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the holocron version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "holocron %s\n", ver)
			fmt.Fprintf(out, "user agent: %s\n", version.UserAgent())
		},
	}
}
