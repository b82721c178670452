package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved drawings",
		Long: `List every saved drawing name with its latest shape count, most recently
saved first.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List drawings
  leapdraw list

  # List drawings as JSON
  leapdraw list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	drawings, err := cmdCtx.Store.ListDrawings(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list drawings: %w", err)
	}
	return renderDrawings(cmdCtx.Renderer, drawings)
}
