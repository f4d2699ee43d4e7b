package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 40

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Canvas lipgloss.Style
	Panel  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Status lipgloss.Style
	Graph  lipgloss.Style
	Help   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().Foreground(t.Lattice),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(panelWidth),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border).
			MarginBottom(1),
		Label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:  lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Status: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Graph:  lipgloss.NewStyle().Foreground(t.Graph).MarginTop(1),
		Help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

// Row renders one label/value line of the side panel.
func (s Styles) Row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value) + "\n"
}

// Separator is a muted rule with a centre mark.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Label.UnsetWidth().Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Label.UnsetWidth().Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-3))
}
