package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/catalog"
	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		Long: `Opens a tabbed browser over films, people and planets.

Without a terminal, the selected category is printed as a table instead.`,
		Example: `  # Start on the planets tab
  holocron browse --category planets`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationTUI: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, category)
		},
	}
	addCategoryFlag(cmd, &category)

	return cmd
}

func runBrowse(cmd *cobra.Command, category string) error {
	cfg := config.GetGlobalConfig()
	if category == "" {
		category = cfg.UI.DefaultCategory
	}
	id, err := catalog.ParseCategory(category)
	if err != nil {
		return err
	}

	if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
		logger.Debug().Ctx(cmd.Context()).Msg("no interactive terminal, printing list")
		return runList(cmd, id, listOptions{output: outputTable})
	}

	svc := newServices(cfg)
	model, err := tui.NewBrowserModel(cmd.Context(), svc.controller, svc.loader, id)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
