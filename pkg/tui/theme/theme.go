// Package theme holds the Lip Gloss styles shared by the shelf screens.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer   FooterTheme
	Panel    PanelTheme
	Form     FormTheme
	Card     CardTheme
	Progress ProgressTheme
}

// FooterTheme groups styles used by the status and key help lines.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// FormTheme styles editor labels and inputs.
type FormTheme struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Muted        lipgloss.Style
	Done         lipgloss.Style
}

// CardTheme styles one book card in the browser.
type CardTheme struct {
	Frame    lipgloss.Style
	Selected lipgloss.Style
	Title    lipgloss.Style
	Author   lipgloss.Style
	Meta     lipgloss.Style
}

// ProgressTheme holds the progress bar gradient endpoints.
type ProgressTheme struct {
	From  string
	To    string
	Empty lipgloss.Style
	Label lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Form: FormTheme{
			Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Done:         lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		},
		Card: CardTheme{
			Frame:    frame.BorderForeground(lipgloss.Color("240")),
			Selected: frame.BorderForeground(lipgloss.Color("212")),
			Title:    lipgloss.NewStyle().Bold(true),
			Author:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Progress: ProgressTheme{
			From:  "#5A56E0",
			To:    "#EE6FF8",
			Empty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Label: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		},
	}
}

// Bar renders a width-cell progress bar for percent (0-100). Filled cells
// blend from From to To.
func (p ProgressTheme) Bar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(percent, 100))
	filled := width * percent / 100

	from, err := colorful.Hex(p.From)
	if err != nil {
		from = colorful.Color{}
	}
	to, err := colorful.Hex(p.To)
	if err != nil {
		to = from
	}

	var b strings.Builder
	for i := 0; i < filled; i++ {
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		cell := lipgloss.NewStyle().Foreground(lipgloss.Color(from.BlendLab(to, t).Hex()))
		b.WriteString(cell.Render("█"))
	}
	if filled < width {
		b.WriteString(p.Empty.Render(strings.Repeat("░", width-filled)))
	}
	return b.String()
}
