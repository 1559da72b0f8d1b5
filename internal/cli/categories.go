package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/config"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the browsable categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			cat := catalog.New(cfg.API.BaseURL, cfg.API.PageLimit)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tDETAILS\tLIST URL")
			for _, id := range catalog.Categories() {
				spec := cat.Lookup(id)
				details := "no"
				if spec.SupportsDetail {
					details = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, catalog.Label(id), details, spec.ListURL)
			}
			return tw.Flush()
		},
	}
}
