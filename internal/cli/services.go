package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/browser"
	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/detail"
	"github.com/rshade/holocron/internal/swapi"
)

// services bundles the components built from the active configuration.
type services struct {
	catalog    *catalog.Catalog
	client     *swapi.Client
	controller *browser.Controller
	loader     *detail.Loader
}

func newServices(cfg *config.Config) *services {
	cat := catalog.New(cfg.API.BaseURL, cfg.API.PageLimit)
	client := swapi.NewClient(cfg.API.Timeout, baseLogger)
	return &services{
		catalog:    cat,
		client:     client,
		controller: browser.NewController(cat, client, baseLogger),
		loader:     detail.NewLoader(cat, client, baseLogger),
	}
}

// addCategoryFlag registers --category with shell completion of known ids.
func addCategoryFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "category", "c", "", "initial category (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("category", completeCategory)
}

func completeCategory(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return categoryNames(), cobra.ShellCompDirectiveNoFileComp
}

func categoryNames() []string {
	ids := catalog.Categories()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.String())
	}
	return names
}
