package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdraw/internal/cli/output"
	"github.com/leapstack-labs/leapdraw/pkg/codec"
)

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the shapes of a saved drawing",
		Long: `Show the shapes of the latest save of a drawing in z-order, bottom first.

Records that can no longer be decoded are skipped and reported.`,
		Example: `  # Show a drawing
  leapdraw show floorplan

  # Show the stored records as JSON
  leapdraw show floorplan -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
	return cmd
}

func runShow(cmd *cobra.Command, name string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	d, err := cmdCtx.Store.LoadDrawing(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to load drawing: %w", err)
	}

	shapes := codec.DecodeAll(d.Records, cmdCtx.Logger)
	r := cmdCtx.Renderer

	if r.EffectiveMode() != output.ModeJSON {
		r.Header(1, d.Name)
		r.KeyValue("Saved", d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		r.KeyValue("Shapes", fmt.Sprintf("%d", len(shapes)))
		r.Println()
	}
	if err := renderShapes(r, shapes, ""); err != nil {
		return err
	}
	if skipped := len(d.Records) - len(shapes); skipped > 0 {
		r.Warning(fmt.Sprintf("%d stored shape record(s) could not be decoded", skipped))
	}
	return nil
}
