// Package testutil provides helpers for testing CLI commands and output.
package testutil

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapdraw/internal/cli/config"
	"github.com/leapstack-labs/leapdraw/internal/cli/output"
)

// TestRenderer wraps a Renderer with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a renderer with the given mode and TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a text renderer on a simulated TTY.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a markdown renderer.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a JSON renderer.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns everything written to stdout.
func (tr *TestRenderer) Output() string { return tr.Out.String() }

// ErrorOutput returns everything written to stderr.
func (tr *TestRenderer) ErrorOutput() string { return tr.ErrOut.String() }

// Reset clears both buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// MemoryConfig returns the default config pointed at a throwaway in-memory
// store, with history disabled.
func MemoryConfig() *config.Config {
	cfg := config.Defaults()
	cfg.StorePath = ":memory:"
	cfg.HistoryFile = ""
	return cfg
}

// ContextWithConfig returns a context carrying cfg, as the root command
// would set it up.
func ContextWithConfig(cfg *config.Config) context.Context {
	return config.WithConfig(context.Background(), cfg)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that s contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertMarkdownTable checks that md holds a markdown table with the given
// header cells.
func AssertMarkdownTable(t *testing.T, md string, headers ...string) {
	t.Helper()
	var headerLine string
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			headerLine = line
			break
		}
	}
	if headerLine == "" {
		t.Errorf("no markdown table in %q", md)
		return
	}
	for _, h := range headers {
		if !strings.Contains(headerLine, h) {
			t.Errorf("table header %q is missing %q", headerLine, h)
		}
	}
}
