package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdraw/internal/actionlog"
	"github.com/leapstack-labs/leapdraw/internal/cli/output"
	"github.com/leapstack-labs/leapdraw/internal/document"
	"github.com/leapstack-labs/leapdraw/internal/editor"
	"github.com/leapstack-labs/leapdraw/internal/state"
	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

const shellPrompt = "leapdraw> "

// NewShellCommand creates the interactive drawing shell.
func NewShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Edit drawings in an interactive shell",
		Long: `Start an interactive drawing session.

Shapes are created from two points, the way a drag gesture would create them:
a rectangle spans both corners, a circle is centred on the first point with the
distance to the second as radius, and a line joins the points.

Every edit goes through the undo history. If the drawing store cannot be
opened the session continues in memory and save/open report the failure.`,
		Example: `  leapdraw shell
  leapdraw shell --log-strategy database`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd)
		},
	}
	return cmd
}

func runShell(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutStore(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger
	r := cmdCtx.Renderer

	store, err := openStore(cfg, logger)
	if err != nil {
		r.Warning(fmt.Sprintf("drawing store unavailable, working in memory: %v", err))
		store = nil
	} else {
		defer func() { _ = store.Close() }()
	}

	actions, logOpts := newActionLog(cfg, cmd.ErrOrStderr(), logStore(store), logger)
	defer func() { _ = actions.Close() }()

	ed, err := newEditor(cfg, store, actions, logOpts, logger)
	if err != nil {
		return err
	}

	sub := ed.Document().Subscribe(func(e document.Event) {
		logger.Debug("document changed", slog.String("event", e.Kind.String()))
	})
	defer ed.Document().Unsubscribe(sub)

	sh := &shell{ctx: cmd.Context(), ed: ed, r: r}

	historyFile := cfg.HistoryFile
	if historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(historyFile), 0750); err != nil {
			historyFile = ""
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.Styles().Prompt.Render(shellPrompt),
		HistoryFile:     historyFile,
		AutoComplete:    sh.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r.Printf("leapdraw shell (store: %s, logging: %s)\n", storeLabel(cfg.StorePath, store), ed.LoggingStrategy())
	r.Println("Type .help for commands, .quit to exit")
	r.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if sh.exec(line) {
			break
		}
	}
	return nil
}

func storeLabel(path string, store *state.SQLiteStore) string {
	if store == nil {
		return "unavailable"
	}
	return path
}

// shell interprets one line at a time against an editor session.
type shell struct {
	ctx context.Context
	ed  *editor.Editor
	r   *output.Renderer
}

// exec runs one input line and reports whether the shell should exit.
// Errors are printed, never returned.
func (s *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	var err error
	switch name {
	case ".quit", ".exit", "quit", "exit":
		return true
	case ".help", "help":
		printShellHelp(s.r.Writer())
	case "rect", "rectangle", "circle", "line":
		err = s.drawKind(name, args)
	case "draw":
		err = s.draw(args)
	case "tool":
		err = s.tool(args)
	case "color", "colour":
		err = s.color(args)
	case "stroke":
		err = s.stroke(args)
	case "select":
		err = s.selectAt(args)
	case "delete", "rm":
		err = s.remove(args)
	case "undo":
		s.undo()
	case "redo":
		s.redo()
	case "ls", "shapes":
		err = renderShapes(s.r, s.ed.Document().Shapes(), selectedID(s.ed))
	case "status":
		s.status()
	case "save":
		err = s.save(args)
	case "open":
		err = s.open(args)
	case "new":
		s.ed.NewDrawing()
		s.r.Success("started a new drawing")
	case "clear":
		s.ed.ClearDrawing()
		s.r.Success("drawing cleared")
	case "drawings":
		err = s.drawings()
	case "log":
		err = s.log(args)
	default:
		err = fmt.Errorf("unknown command: %s (type .help for commands)", fields[0])
	}

	if err != nil {
		s.r.Error(err.Error())
	}
	return false
}

func selectedID(ed *editor.Editor) string {
	if sel := ed.Selected(); sel != nil {
		return sel.ID()
	}
	return ""
}

func parseFloats(args []string, n int, usage string) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func (s *shell) drawKind(name string, args []string) error {
	k, err := shape.ParseKind(name)
	if err != nil {
		return err
	}
	s.ed.SetTool(k)
	return s.draw(args)
}

func (s *shell) draw(args []string) error {
	p, err := parseFloats(args, 4, strings.ToLower(s.ed.Tool().String())+" x1 y1 x2 y2")
	if err != nil {
		return err
	}
	created, err := s.ed.CreateShape(p[0], p[1], p[2], p[3])
	if err != nil {
		return err
	}
	s.r.Success("added " + created.CanonicalText())
	return nil
}

func (s *shell) tool(args []string) error {
	if len(args) == 0 {
		s.r.KeyValue("Tool", s.ed.Tool().String())
		return nil
	}
	k, err := shape.ParseKind(args[0])
	if err != nil {
		return err
	}
	s.ed.SetTool(k)
	s.r.Success("tool set to " + k.String())
	return nil
}

func (s *shell) color(args []string) error {
	if len(args) == 0 {
		s.r.KeyValue("Color", s.r.Styles().Swatch(s.ed.Color()))
		return nil
	}
	c, err := shape.ParseColor(args[0])
	if err != nil {
		return err
	}
	s.ed.SetColor(c)
	s.r.Success("color set to " + c.String())
	return nil
}

func (s *shell) stroke(args []string) error {
	if len(args) == 0 {
		s.r.KeyValue("Stroke", fmt.Sprintf("%.2f", s.ed.StrokeWidth()))
		return nil
	}
	p, err := parseFloats(args, 1, "stroke <width>")
	if err != nil {
		return err
	}
	if err := s.ed.SetStrokeWidth(p[0]); err != nil {
		return err
	}
	s.r.Success(fmt.Sprintf("stroke width set to %.2f", p[0]))
	return nil
}

func (s *shell) selectAt(args []string) error {
	p, err := parseFloats(args, 2, "select x y")
	if err != nil {
		return err
	}
	sel := s.ed.Select(p[0], p[1])
	if sel == nil {
		s.r.Muted(fmt.Sprintf("nothing at (%g, %g)", p[0], p[1]))
		return nil
	}
	s.r.Success("selected " + sel.CanonicalText())
	return nil
}

func (s *shell) remove(args []string) error {
	var removed shape.Shape
	if len(args) == 0 {
		removed = s.ed.RemoveSelected()
		if removed == nil {
			return fmt.Errorf("nothing selected (use delete x y or select first)")
		}
	} else {
		p, err := parseFloats(args, 2, "delete [x y]")
		if err != nil {
			return err
		}
		removed = s.ed.RemoveAt(p[0], p[1])
		if removed == nil {
			s.r.Muted(fmt.Sprintf("nothing at (%g, %g)", p[0], p[1]))
			return nil
		}
	}
	s.r.Success("removed " + removed.CanonicalText())
	return nil
}

func (s *shell) undo() {
	if desc := s.ed.Undo(); desc != "" {
		s.r.Success("undid " + desc)
		return
	}
	s.r.Muted("nothing to undo")
}

func (s *shell) redo() {
	if desc := s.ed.Redo(); desc != "" {
		s.r.Success("redid " + desc)
		return
	}
	s.r.Muted("nothing to redo")
}

func (s *shell) status() {
	doc := s.ed.Document()
	h := s.ed.History()
	s.r.Header(2, doc.Name())
	s.r.KeyValue("Shapes", strconv.Itoa(doc.Len()))
	s.r.KeyValue("Tool", s.ed.Tool().String())
	s.r.KeyValue("Color", s.ed.Color().String())
	s.r.KeyValue("Stroke", fmt.Sprintf("%.2f", s.ed.StrokeWidth()))
	if h.CanUndo() {
		s.r.KeyValue("Undo", h.PeekUndoDescription())
	}
	if h.CanRedo() {
		s.r.KeyValue("Redo", h.PeekRedoDescription())
	}
	s.r.KeyValue("Logging", s.ed.LoggingStrategy())
}

func (s *shell) save(args []string) error {
	id, err := s.ed.Save(s.ctx, strings.Join(args, " "))
	if errors.Is(err, editor.ErrNameRequired) {
		return fmt.Errorf("usage: save <name> (the drawing is untitled)")
	}
	if err != nil {
		return err
	}
	s.r.Success(fmt.Sprintf("saved %q (id %d)", s.ed.Document().Name(), id))
	return nil
}

func (s *shell) open(args []string) error {
	if len(args) == 0 {
		return s.drawings()
	}
	name := strings.Join(args, " ")
	dropped, err := s.ed.Open(s.ctx, name)
	if err != nil {
		return err
	}
	s.r.Success(fmt.Sprintf("opened %q with %d shape(s)", name, s.ed.Document().Len()))
	if dropped > 0 {
		s.r.Warning(fmt.Sprintf("%d stored shape record(s) could not be decoded", dropped))
	}
	return nil
}

func (s *shell) drawings() error {
	names, err := s.ed.ListDrawings(s.ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		s.r.Muted("(no saved drawings)")
		return nil
	}
	for _, n := range names {
		s.r.Println(n)
	}
	return nil
}

func (s *shell) log(args []string) error {
	if len(args) > 0 {
		if err := s.ed.SetLoggingStrategy(args[0]); err != nil {
			return err
		}
		s.r.Success("logging strategy: " + s.ed.LoggingStrategy())
		return nil
	}

	s.r.KeyValue("Logging", s.ed.LoggingStrategy())
	logs, err := s.ed.RecentLogs(s.ctx, 0)
	if err != nil {
		if errors.Is(err, state.ErrStorageUnavailable) {
			return nil
		}
		return err
	}
	return renderLogs(s.r, logs)
}

func (s *shell) completer() *readline.PrefixCompleter {
	names := readline.PcItemDynamic(func(string) []string {
		names, err := s.ed.ListDrawings(s.ctx)
		if err != nil {
			return nil
		}
		return names
	})

	kinds := make([]readline.PrefixCompleterInterface, 0, len(shape.Kinds))
	for _, k := range shape.Kinds {
		kinds = append(kinds, readline.PcItem(strings.ToLower(k.String())))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("rect"),
		readline.PcItem("circle"),
		readline.PcItem("line"),
		readline.PcItem("draw"),
		readline.PcItem("tool", kinds...),
		readline.PcItem("color"),
		readline.PcItem("stroke"),
		readline.PcItem("select"),
		readline.PcItem("delete"),
		readline.PcItem("undo"),
		readline.PcItem("redo"),
		readline.PcItem("ls"),
		readline.PcItem("status"),
		readline.PcItem("save"),
		readline.PcItem("open", names),
		readline.PcItem("new"),
		readline.PcItem("clear"),
		readline.PcItem("drawings"),
		readline.PcItem("log",
			readline.PcItem(actionlog.StrategyConsole),
			readline.PcItem(actionlog.StrategyFile),
			readline.PcItem(actionlog.StrategyDatabase),
		),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

func printShellHelp(w io.Writer) {
	help := `
Drawing:
  rect x1 y1 x2 y2     Add a rectangle spanning two corners
  circle x1 y1 x2 y2   Add a circle centred on (x1, y1) through (x2, y2)
  line x1 y1 x2 y2     Add a line between two points
  draw x1 y1 x2 y2     Add a shape with the current tool
  tool [kind]          Show or set the current tool
  color [spec]         Show or set the color (name, #rrggbb, 0xrrggbbaa)
  stroke [width]       Show or set the stroke width
  select x y           Select the topmost shape at a point
  delete [x y]         Remove the selected shape, or the topmost at a point
  undo / redo          Step through the edit history
  ls                   List shapes, bottom first
  status               Show the drawing and tool state

Storage:
  save [name]          Save the drawing (name required when untitled)
  open [name]          Open a saved drawing, or list saved drawings
  drawings             List saved drawings, newest first
  new                  Start a new untitled drawing
  clear                Remove every shape and forget the history
  log [strategy]       Show recent logs, or switch to console, file or database

  .help                Show this help message
  .quit / .exit        Exit the shell
`
	_, _ = fmt.Fprintln(w, help)
}
