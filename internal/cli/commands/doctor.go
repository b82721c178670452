package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapdraw/internal/actionlog"
	"github.com/leapstack-labs/leapdraw/internal/cli/output"
)

// Check statuses.
const (
	statusPass  = "pass"
	statusWarn  = "warn"
	statusError = "error"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the configuration, drawing store and action log",
		Long: `Check that leapdraw can run with the current settings.

The doctor command reports:
- Which config file was loaded
- Whether the drawing store opens and its schema version
- How many drawings are saved
- Whether the configured logging strategy can be started
- Where shell history is kept

Exits with an error if any check fails.`,
		Example: `  leapdraw doctor
  leapdraw doctor --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Checks  []HealthCheck `json:"checks"`
	Healthy bool          `json:"healthy"`
}

// HealthCheck is the result of one doctor check.
type HealthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Details string `json:"details"`
}

func runDoctor(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	report := diagnose(cmd.Context(), cmdCtx)

	r := cmdCtx.Renderer
	var err error
	if r.EffectiveMode() == output.ModeJSON {
		err = r.JSON(report)
	} else {
		err = renderDoctor(r, report)
	}
	if err != nil {
		return err
	}

	if !report.Healthy {
		failed := 0
		for _, c := range report.Checks {
			if c.Status == statusError {
				failed++
			}
		}
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func diagnose(ctx context.Context, cmdCtx *CommandContext) *DoctorOutput {
	cfg := cmdCtx.Cfg
	var checks []HealthCheck
	add := func(name, status, details string) {
		checks = append(checks, HealthCheck{Name: name, Status: status, Details: details})
	}

	if cfg.ConfigFile != "" {
		add("config file", statusPass, cfg.ConfigFile)
	} else {
		add("config file", statusWarn, "none found, using defaults (run leapdraw init)")
	}

	store, err := openStore(cfg, cmdCtx.Logger)
	if err != nil {
		add("drawing store", statusError, err.Error())
	} else {
		defer func() { _ = store.Close() }()
		if v, err := store.GetMigrationVersion(); err != nil {
			add("drawing store", statusError, err.Error())
		} else {
			add("drawing store", statusPass, fmt.Sprintf("%s (schema version %d)", cfg.StorePath, v))
		}
		if names, err := store.ListDrawingNames(ctx); err != nil {
			add("saved drawings", statusError, err.Error())
		} else {
			add("saved drawings", statusPass, fmt.Sprintf("%d", len(names)))
		}
	}

	strategy, err := actionlog.NewStrategy(cfg.LogStrategy, actionlog.Options{
		Console:  io.Discard,
		FilePath: cfg.LogFile,
		Store:    logStore(store),
	})
	if err != nil {
		add("action log", statusError, err.Error())
	} else {
		add("action log", statusPass, strategy.Name())
		_ = strategy.Close()
	}

	switch {
	case cfg.HistoryFile == "":
		add("shell history", statusWarn, "disabled")
	case dirExists(filepath.Dir(cfg.HistoryFile)):
		add("shell history", statusPass, cfg.HistoryFile)
	default:
		add("shell history", statusWarn, cfg.HistoryFile+" (directory will be created)")
	}

	healthy := true
	for _, c := range checks {
		if c.Status == statusError {
			healthy = false
		}
	}
	return &DoctorOutput{Checks: checks, Healthy: healthy}
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

func renderDoctor(r *output.Renderer, report *DoctorOutput) error {
	titleCaser := cases.Title(language.English)

	r.Header(1, "leapdraw doctor")

	t := newTable(r.Writer())
	t.AppendHeader(table.Row{"Check", "Status", "Details"})
	for _, c := range report.Checks {
		status := titleCaser.String(c.Status)
		if r.EffectiveMode() == output.ModeText {
			switch c.Status {
			case statusPass:
				status = r.Styles().Success.Render(status)
			case statusWarn:
				status = r.Styles().Warning.Render(status)
			default:
				status = r.Styles().Error.Render(status)
			}
		}
		t.AppendRow(table.Row{titleCaser.String(c.Name), status, c.Details})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}

	if report.Healthy {
		r.Success("all checks passed")
	}
	return nil
}
