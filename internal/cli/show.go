package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/config"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <category> <uid>",
		Short: "Print the detail summary of one item",
		Example: `  # Luke Skywalker
  holocron show people 1`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return detailCategoryNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := catalog.ParseCategory(args[0])
			if err != nil {
				return err
			}

			svc := newServices(config.GetGlobalConfig())
			if !svc.catalog.Lookup(id).SupportsDetail {
				return fmt.Errorf("%s have no detail view", catalog.Label(id))
			}

			summary, err := svc.loader.Fetch(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), summary)
			return err
		},
	}
}

func detailCategoryNames() []string {
	cat := catalog.New(catalog.DefaultBaseURL, catalog.DefaultPageLimit)
	var names []string
	for _, id := range catalog.Categories() {
		if cat.Lookup(id).SupportsDetail {
			names = append(names, id.String())
		}
	}
	return names
}
