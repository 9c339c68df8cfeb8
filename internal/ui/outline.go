package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treescopelabs/treescope/internal/model"
)

const outlineSizeBarWidth = 4 // Width of size proportion bar [████]

// OutlinePanel lists the displayed tree with a cursor. Which nodes are
// listed follows the Expanded flags on the nodes themselves, so the outline
// and the treemap always agree about what is visible.
type OutlinePanel struct {
	root    *model.Node
	cursor  int
	visible []*model.Node
	width   int
	height  int
	focused bool
	offset  int // scroll offset
	format  func(int64) string
}

// NewOutlinePanel creates a new outline panel
func NewOutlinePanel() OutlinePanel {
	return OutlinePanel{format: FormatCount}
}

// SetRoot sets the root node
func (o *OutlinePanel) SetRoot(root *model.Node) {
	o.root = root
	o.cursor = 0
	o.offset = 0
	o.Refresh()
}

// SetSize sets the panel dimensions
func (o *OutlinePanel) SetSize(w, h int) {
	o.width = w
	o.height = h
}

// SetFocused sets focus state
func (o *OutlinePanel) SetFocused(focused bool) {
	o.focused = focused
}

// SetFormat sets the weight formatter (citations vs bytes)
func (o *OutlinePanel) SetFormat(f func(int64) string) {
	o.format = f
}

// Selected returns the node under the cursor
func (o OutlinePanel) Selected() *model.Node {
	if o.cursor >= 0 && o.cursor < len(o.visible) {
		return o.visible[o.cursor]
	}
	return nil
}

// Refresh rebuilds the visible list after a mutation, keeping the cursor on
// the same node when it is still displayed.
func (o *OutlinePanel) Refresh() {
	var keep *model.Node
	if o.cursor >= 0 && o.cursor < len(o.visible) {
		keep = o.visible[o.cursor]
	}

	o.visible = nil
	if o.root != nil {
		o.collectVisible(o.root)
	}

	if keep != nil {
		for i, n := range o.visible {
			if n == keep {
				o.cursor = i
				o.ensureVisible()
				return
			}
		}
	}
	if o.cursor >= len(o.visible) {
		o.cursor = len(o.visible) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
	o.ensureVisible()
}

func (o *OutlinePanel) collectVisible(node *model.Node) {
	o.visible = append(o.visible, node)
	if node.Expanded {
		for _, child := range node.Children {
			o.collectVisible(child)
		}
	}
}

// MoveUp moves cursor up
func (o *OutlinePanel) MoveUp() {
	if o.cursor > 0 {
		o.cursor--
		o.ensureVisible()
	}
}

// MoveDown moves cursor down
func (o *OutlinePanel) MoveDown() {
	if o.cursor < len(o.visible)-1 {
		o.cursor++
		o.ensureVisible()
	}
}

// PageUp moves cursor up by quarter page
func (o *OutlinePanel) PageUp() {
	o.cursor -= o.pageSize()
	if o.cursor < 0 {
		o.cursor = 0
	}
	o.ensureVisible()
}

// PageDown moves cursor down by quarter page
func (o *OutlinePanel) PageDown() {
	o.cursor += o.pageSize()
	if o.cursor >= len(o.visible) {
		o.cursor = len(o.visible) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
	o.ensureVisible()
}

func (o OutlinePanel) pageSize() int {
	size := (o.height - 4) / 4
	if size < 1 {
		size = 1
	}
	return size
}

// GoToTop moves to first item
func (o *OutlinePanel) GoToTop() {
	o.cursor = 0
	o.offset = 0
}

// GoToBottom moves to last item
func (o *OutlinePanel) GoToBottom() {
	if len(o.visible) == 0 {
		return
	}
	o.cursor = len(o.visible) - 1
	o.ensureVisible()
}

// Select moves the cursor to the given node, expanding its ancestors so it
// is displayed.
func (o *OutlinePanel) Select(node *model.Node) {
	if node == nil {
		return
	}
	for p := node.Parent; p != nil; p = p.Parent {
		p.Expand()
	}
	o.Refresh()
	for i, n := range o.visible {
		if n == node {
			o.cursor = i
			o.ensureVisible()
			return
		}
	}
}

func (o *OutlinePanel) ensureVisible() {
	if o.cursor < o.offset {
		o.offset = o.cursor
	}
	maxVisible := o.height - 2 // account for borders
	if maxVisible < 1 {
		maxVisible = 1
	}
	if o.cursor >= o.offset+maxVisible {
		o.offset = o.cursor - maxVisible + 1
	}
}

// RequiredWidth calculates the minimum width needed for the visible content
func (o OutlinePanel) RequiredWidth() int {
	if o.root == nil || len(o.visible) == 0 {
		return 30
	}

	maxWidth := 0
	for _, node := range o.visible {
		if w := lipgloss.Width(o.buildLine(node)); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth + 2 // left+right border
}

// buildLine creates the text content for one outline row
func (o OutlinePanel) buildLine(node *model.Node) string {
	prefix := strings.Repeat("  ", node.Depth())
	if !node.IsLeaf() {
		if node.Expanded {
			prefix += "▼ " // down triangle
		} else {
			prefix += "▶ " // right triangle
		}
	} else {
		prefix += "  "
	}

	// Size bar showing this node's share of its parent
	var sizeBar string
	if !node.IsLeaf() && node.Parent != nil && node.Parent.Size > 0 {
		pct := float64(node.Size) / float64(node.Parent.Size)
		filled := int(pct * float64(outlineSizeBarWidth))
		var bar strings.Builder
		for j := 0; j < outlineSizeBarWidth; j++ {
			if j < filled {
				bar.WriteRune('█')
			} else {
				bar.WriteRune('░')
			}
		}
		sizeBar = " [" + bar.String() + "]"
	}

	return fmt.Sprintf("%s%s%s %s", prefix, node.Name, sizeBar, o.format(node.Size))
}

// View renders the outline
func (o OutlinePanel) View() string {
	if o.root == nil {
		return OutlinePanelStyle.Width(o.width).Height(o.height).Render("No data")
	}

	var lines []string
	maxVisible := o.height - 2
	if maxVisible < 1 {
		maxVisible = 1
	}

	for i := o.offset; i < len(o.visible) && len(lines) < maxVisible; i++ {
		node := o.visible[i]
		line := o.buildLine(node)

		maxW := o.width - 2
		var itemStyle lipgloss.Style
		switch {
		case i == o.cursor && o.focused:
			itemStyle = OutlineItemSelected.Width(maxW).MaxWidth(maxW)
		case i == o.cursor:
			itemStyle = OutlineItemSelectedUnfocused.Width(maxW).MaxWidth(maxW)
		case !node.IsLeaf():
			itemStyle = lipgloss.NewStyle().Foreground(ColorBranch).MaxWidth(maxW)
		default:
			itemStyle = lipgloss.NewStyle().Foreground(ColorLeaf).MaxWidth(maxW)
		}
		lines = append(lines, itemStyle.Render(line))
	}

	style := OutlinePanelStyle.Width(o.width).Height(o.height)
	if o.focused {
		style = style.BorderForeground(ColorPrimary)
	}
	return style.Render(strings.Join(lines, "\n"))
}
