package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/holocron/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at
~/.holocron/config.yaml, or at the path given by --config or HOLOCRON_CONFIG.`,
		Example: `  # Create the default configuration
  holocron config init

  # Create configuration, overwriting existing
  holocron config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPathFlag(cmd)
			if err != nil {
				return err
			}
			return initConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func initConfig(cmd *cobra.Command, configPath string, force bool) error {
	if !force {
		_, err := os.Stat(configPath)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", configPath, err)
		}
	}

	if err := config.New().Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration initialized successfully\n")
	fmt.Fprintf(out, "Configuration file: %s\n", configPath)
	return nil
}

// configPathFlag resolves the config file path from the persistent --config flag.
func configPathFlag(cmd *cobra.Command) (string, error) {
	flagValue, _ := cmd.Flags().GetString("config")
	return config.ResolvePath(flagValue)
}
