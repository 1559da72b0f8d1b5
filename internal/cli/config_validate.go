package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/holocron/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage holocron configuration",
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), newConfigShowCmd())
	return cmd
}

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file together with environment overrides.

This checks that:
- api.base_url is an http(s) URL
- api.page_limit is positive and api.timeout is not negative
- ui.default_category names a known category
- logging.format is console or json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPathFlag(cmd)
			if err != nil {
				return err
			}
			if _, err = config.Load(path); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %s\n", path)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(config.GetGlobalConfig()); err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			return enc.Close()
		},
	}
}
