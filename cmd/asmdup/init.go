package main

import (
	"fmt"
	"path/filepath"

	"github.com/ludo-technologies/asmdup/internal/config"
	"github.com/spf13/cobra"
)

// InitCommand represents the init command.
type InitCommand struct {
	force      bool
	configPath string
}

// NewInitCommand creates a new init command.
func NewInitCommand() *InitCommand {
	return &InitCommand{
		force:      false,
		configPath: config.DefaultConfigFileName,
	}
}

// CreateCobraCommand creates the cobra command for configuration
// initialization.
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize asmdup configuration file",
		Long: `Initialize an asmdup configuration file in the current directory.

Creates a .asmdup.toml file with the default settings and helpful comments,
including a commented [[pairs]] example binding an assembly directory to
the source tree that decompiles it.

Examples:
  # Create .asmdup.toml in the current directory
  asmdup init

  # Overwrite an existing configuration file
  asmdup init --force`,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&i.configPath, "config", "c", i.configPath, "Configuration file path")

	return cmd
}

// runInit executes the init command.
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	configPath, err := filepath.Abs(i.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	if err := config.CreateDefaultConfigFile(configPath, i.force); err != nil {
		return err
	}

	relPath, err := filepath.Rel(".", configPath)
	if err != nil {
		relPath = configPath
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", relPath)
	return nil
}

// NewInitCmd creates and returns the init cobra command.
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
