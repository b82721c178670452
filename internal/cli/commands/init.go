package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapdraw/internal/cli/config"
)

const configFileName = "leapdraw.yaml"

const configHeader = `# leapdraw configuration
#
# Relative paths are resolved against the directory of this file.
# Every value can be overridden with a LEAPDRAW_ environment variable
# (e.g. LEAPDRAW_LOG_STRATEGY=database) or a command-line flag.

`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a leapdraw.yaml with default settings",
		Long: `Initialize a directory for leapdraw.

This creates:
  - leapdraw.yaml with every setting at its default value
  - .leapdraw/ for the drawing store and shell history`,
		Example: `  # Initialize in current directory
  leapdraw init

  # Initialize in a new directory
  leapdraw init sketches

  # Overwrite an existing config
  leapdraw init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cmdCtx := NewCommandContextWithoutStore(cmd)
			path, err := runInit(dir, force)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Success("created " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(dir string, force bool) (string, error) {
	if err := os.MkdirAll(filepath.Join(dir, filepath.Dir(config.DefaultStoreFile)), 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	body, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), body...), 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
