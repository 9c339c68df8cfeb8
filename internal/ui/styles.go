package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/treescopelabs/treescope/internal/model"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#73F59F")
	ColorDanger  = lipgloss.Color("#F56565")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorBorder  = lipgloss.Color("#3F3F46")
	ColorBranch  = lipgloss.Color("#7DD3FC")
	ColorLeaf    = lipgloss.Color("#E4E4E7")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F1F23")).
			Padding(0, 1)

	TotalsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E4E4E7"))

	// Outline
	OutlinePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	OutlineItemSelected = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	OutlineItemSelectedUnfocused = lipgloss.NewStyle().
					Background(lipgloss.Color("#3F3F46")).
					Foreground(lipgloss.Color("#FFFFFF"))

	// Treemap
	TreemapPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	// Status + help bar
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A1A1AA")).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
)

// FormatSize formats bytes to a human readable string.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1fTB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1fGB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fKB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// FormatCount formats a plain weight (e.g. citations) with thousands
// separators.
func FormatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

// nodeColor converts the node's stored colour to a lipgloss colour.
func nodeColor(c model.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
