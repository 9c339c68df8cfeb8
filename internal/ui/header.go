package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const headerGaugeWidth = 20 // Width of volume usage gauge

// Header displays the dataset title and totals
type Header struct {
	title         string
	total         int64
	prunedSession int64
	prunedTotal   int64
	width         int
	loading       bool
	progress      string
	format        func(int64) string
	volTotal      int64
	volFree       int64
	hasVolume     bool
}

// NewHeader creates a new header component
func NewHeader(title string) Header {
	return Header{title: title, format: FormatCount}
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// SetTotal sets the displayed total weight
func (h *Header) SetTotal(total int64) {
	h.total = total
}

// SetPruned sets the pruned counters for this session and all time
func (h *Header) SetPruned(session, total int64) {
	h.prunedSession = session
	h.prunedTotal = total
}

// SetFormat sets the weight formatter (citations vs bytes)
func (h *Header) SetFormat(f func(int64) string) {
	h.format = f
}

// SetLoading sets the loading state
func (h *Header) SetLoading(loading bool, progress string) {
	h.loading = loading
	h.progress = progress
}

// SetVolume shows a usage gauge for the volume the scanned path lives on.
func (h *Header) SetVolume(total, free int64) {
	h.volTotal = total
	h.volFree = free
	h.hasVolume = total > 0
}

// View renders the header
func (h Header) View() string {
	appName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C084FC")).
		Bold(true).
		Render("TREESCOPE")

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" │ ")

	title := TotalsStyle.Render(h.title)

	var middle string
	switch {
	case h.loading:
		middle = StatusStyle.Render(h.progress)
	case h.prunedSession > 0 || h.prunedTotal > 0:
		label := lipgloss.NewStyle().Foreground(ColorMuted).Render("Pruned: ")
		session := lipgloss.NewStyle().Foreground(ColorDanger).Render(h.format(h.prunedSession) + " session")
		psep := lipgloss.NewStyle().Foreground(ColorMuted).Render(" | ")
		total := lipgloss.NewStyle().Foreground(ColorMuted).Render(h.format(h.prunedTotal) + " total")
		middle = label + session + psep + total
	}

	var right string
	if !h.loading {
		right = TotalsStyle.Render("Total: " + h.format(h.total))
		if h.hasVolume {
			used := h.volTotal - h.volFree
			pct := float64(used) / float64(h.volTotal) * 100
			filled := int(pct / 100 * float64(headerGaugeWidth))
			if filled > headerGaugeWidth {
				filled = headerGaugeWidth
			}
			bar := strings.Repeat("█", filled) + strings.Repeat("░", headerGaugeWidth-filled)
			right += sep + TotalsStyle.Render(fmt.Sprintf(
				"Disk: %s / %s  [%s] %.0f%%",
				FormatSize(used), FormatSize(h.volTotal), bar, pct,
			))
		}
	}

	left := appName + sep + title
	leftWidth := lipgloss.Width(left)
	middleWidth := lipgloss.Width(middle)
	rightWidth := lipgloss.Width(right)

	// Narrow terminals drop the gauge first, then the middle section
	if leftWidth+middleWidth+rightWidth+4 > h.width && h.hasVolume {
		right = TotalsStyle.Render("Total: " + h.format(h.total))
		rightWidth = lipgloss.Width(right)
	}
	if leftWidth+middleWidth+rightWidth+4 > h.width {
		middle = ""
		middleWidth = 0
	}

	remaining := h.width - leftWidth - middleWidth - rightWidth
	if remaining < 2 {
		remaining = 2
	}
	leftGap := remaining / 2
	rightGap := remaining - leftGap
	if leftGap < 1 {
		leftGap = 1
	}
	if rightGap < 1 {
		rightGap = 1
	}

	line := left + strings.Repeat(" ", leftGap) + middle + strings.Repeat(" ", rightGap) + right

	return HeaderStyle.MaxHeight(1).Render(line)
}
