package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 12 // Width for key column in help text

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay() HelpOverlay {
	return HelpOverlay{
		visible: false,
	}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (ho *HelpOverlay) SetSize(w, h int) {
	ho.width = w
	ho.height = h
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true).
		MarginTop(1)

	keyStyle := HelpKey
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E4E4E7"))

	var content strings.Builder

	content.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("NAVIGATION"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "arrows/jk", "Navigate outline"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "PgUp/PgDn", "Scroll faster"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "g/G", "Jump to top/bottom"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Tab", "Switch panel"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Click", "Select block"))

	content.WriteString(sectionStyle.Render("TREE"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "→/e", "Expand"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "←/c", "Collapse"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "E/C", "Expand/collapse all"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "+/-", "Grow/shrink weight 1%"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "x/Del", "Delete node"))

	content.WriteString(sectionStyle.Render("OTHER"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "m", "Toggle layout mode"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "S", "Export SVG snapshot"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "?", "Toggle this help"))
	content.WriteString(formatHelpLineNoNewline(keyStyle, descStyle, "q", "Quit"))

	box := boxStyle.Render(content.String())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

// formatHelpLineNoNewline formats a help line without trailing newline
func formatHelpLineNoNewline(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc)
}

// HelpBar renders a bottom help bar with key hints
func HelpBar(width int) string {
	keyStyle := HelpKey
	sepStyle := HelpStyle

	hints := []struct {
		key  string
		desc string
	}{
		{"↑↓/jk", "navigate"},
		{"→/←", "expand/collapse"},
		{"+/-", "resize"},
		{"x", "delete"},
		{"m", "mode"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, hint := range hints {
		parts = append(parts, keyStyle.Render(hint.key)+sepStyle.Render(" "+hint.desc))
	}

	bar := strings.Join(parts, sepStyle.Render("  |  "))

	return HelpStyle.Width(width).Render(bar)
}
