package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/leapdraw/pkg/shape"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	renderer *lipgloss.Renderer

	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Key     lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles builds the style set for a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		renderer: r,
		Header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:     r.NewStyle().Bold(true),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Info:     r.NewStyle().Foreground(lipgloss.Color("14")),
		Key:      r.NewStyle().Foreground(lipgloss.Color("6")),
		Prompt:   r.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	}
}

// Swatch renders a small block in the given colour followed by its code.
func (s *Styles) Swatch(c shape.Color) string {
	hex := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	return s.renderer.NewStyle().Foreground(hex).Render("■") + " " + c.String()
}
