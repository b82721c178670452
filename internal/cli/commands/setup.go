package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdraw/internal/actionlog"
	"github.com/leapstack-labs/leapdraw/internal/cli/config"
	"github.com/leapstack-labs/leapdraw/internal/cli/output"
	"github.com/leapstack-labs/leapdraw/internal/editor"
	"github.com/leapstack-labs/leapdraw/internal/state"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *state.SQLiteStore
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an open drawing store.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutStore(cmd)

	store, err := openStore(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Store = store

	cleanup := func() {
		_ = store.Close()
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without a store.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// openStore opens and migrates the drawing store, creating its directory.
func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	if cfg.StorePath != ":memory:" {
		dir := filepath.Dir(cfg.StorePath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("%w: failed to create store directory: %w", state.ErrStorageUnavailable, err)
			}
		}
	}
	return state.OpenSQLiteStore(cfg.StorePath, logger)
}

// logStore returns store as an action log store, or a nil interface when
// there is no store.
func logStore(store *state.SQLiteStore) actionlog.LogStore {
	if store == nil {
		return nil
	}
	return store
}

// newActionLog builds the action logger for the configured strategy. When the
// strategy cannot be built the logger falls back to the console.
func newActionLog(cfg *config.Config, console io.Writer, store actionlog.LogStore, logger *slog.Logger) (*actionlog.Logger, actionlog.Options) {
	opts := actionlog.Options{
		Console:  console,
		FilePath: cfg.LogFile,
		Store:    store,
	}

	strategy, err := actionlog.NewStrategy(cfg.LogStrategy, opts)
	if err != nil {
		logger.Warn("falling back to console action log",
			slog.String("strategy", cfg.LogStrategy), slog.Any("error", err))
		strategy = actionlog.NewConsoleStrategy(console)
	}
	return actionlog.New(strategy), opts
}

// newEditor builds an editor session from the config. store may be nil.
func newEditor(cfg *config.Config, store *state.SQLiteStore, actions *actionlog.Logger, logOpts actionlog.Options, logger *slog.Logger) (*editor.Editor, error) {
	col, err := cfg.Color()
	if err != nil {
		return nil, err
	}

	opts := editor.Options{
		ActionLog:   actions,
		LogOptions:  logOpts,
		Logger:      logger,
		Color:       &col,
		StrokeWidth: cfg.DefaultStrokeWidth,
	}
	if store != nil {
		opts.Store = store
	}
	return editor.New(opts), nil
}
