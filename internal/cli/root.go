package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/config"
	"github.com/rshade/holocron/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// baseLogger is the untagged logger handed to the API components.
var baseLogger = zerolog.Nop() //nolint:gochecknoglobals // Set once per command by setupLogging

// annotationTUI marks commands that may take over the terminal.
const annotationTUI = "holocron/tui"

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	debug      bool
	configPath string
	baseURL    string
	timeout    time.Duration
}

// NewRootCmd creates the root Cobra command for the holocron CLI.
// Running it without a subcommand opens the interactive browser.
func NewRootCmd(ver string) *cobra.Command {
	var (
		flags     rootFlags
		category  string
		logResult *logging.LogPathResult
	)

	cmd := &cobra.Command{
		Use:          "holocron",
		Short:        "Browse the Star Wars API from the terminal",
		Long:         "holocron: browse films, people and planets from the Star Wars API",
		Version:      ver,
		Example:      rootCmdExample,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Annotations:  map[string]string{annotationTUI: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)

			result := setupLogging(cmd, flags.debug)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logResult.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, category)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.holocron/config.yaml)")
	pf.StringVar(&flags.baseURL, "base-url", "", "API base URL (overrides config file and env var)")
	pf.DurationVar(&flags.timeout, "timeout", 0, "per-request timeout, 0 for none (overrides config file)")
	addCategoryFlag(cmd, &category)

	cmd.AddCommand(
		newBrowseCmd(),
		newListCmd(),
		newShowCmd(),
		newCategoriesCmd(),
		newConfigCmd(),
		newVersionCmd(ver),
	)

	return cmd
}

// loadConfig reads the config file and environment, then applies flags that
// were explicitly set.
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	path, err := config.ResolvePath(flags.configPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("base-url") {
		cfg.API.BaseURL = flags.baseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.API.Timeout = flags.timeout
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("after applying flags: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Open the interactive browser on the people tab
  holocron browse --category people

  # Print planets whose name contains "oo"
  holocron list planets --filter oo

  # Print people with their details as JSON
  holocron list people --details --output json

  # Show the detail summary of one planet
  holocron show planets 1

  # Use a local mirror of the API
  holocron list films --base-url http://localhost:8080/api

  # Write the default configuration file
  holocron config init`
