package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"

	"github.com/treescopelabs/treescope/internal/model"
)

// LayoutMode selects how treemap rectangles are computed.
type LayoutMode int

const (
	// ModeSlice alternates the split axis by depth: even depths divide the
	// width, odd depths the height. Rectangles come straight from the model
	// so clicks resolve through the same geometry.
	ModeSlice LayoutMode = iota
	// ModeSquarified aims for near-square aspect ratios.
	ModeSquarified
)

func (m LayoutMode) String() string {
	if m == ModeSquarified {
		return "squarified"
	}
	return "slice"
}

// Block represents a rectangle in the treemap
type Block struct {
	Node          *model.Node
	X, Y          int
	Width, Height int
}

// TreemapPanel displays a treemap of the current tree. The set of painted
// blocks is exactly the visible leaves: collapsed branches paint as one
// block, expanded branches paint through their children.
type TreemapPanel struct {
	root     *model.Node
	selected *model.Node
	blocks   []Block
	width    int
	height   int
	originX  int // panel position on screen, for mouse hit-testing
	originY  int
	focused  bool
	mode     LayoutMode
	format   func(int64) string
}

// NewTreemapPanel creates a new treemap panel
func NewTreemapPanel() TreemapPanel {
	return TreemapPanel{format: FormatCount}
}

// SetRoot sets the root node
func (t *TreemapPanel) SetRoot(root *model.Node) {
	t.root = root
	t.selected = root
	t.Refresh()
}

// SetSize sets the panel dimensions
func (t *TreemapPanel) SetSize(w, h int) {
	t.width = w
	t.height = h
	t.Refresh()
}

// SetOrigin records where the panel sits on screen so mouse coordinates can
// be translated into block coordinates.
func (t *TreemapPanel) SetOrigin(x, y int) {
	t.originX = x
	t.originY = y
}

// SetFocused sets focus state
func (t *TreemapPanel) SetFocused(focused bool) {
	t.focused = focused
}

// SetFormat sets the weight formatter (citations vs bytes)
func (t *TreemapPanel) SetFormat(f func(int64) string) {
	t.format = f
}

// SetSelected sets the selected node (for sync from the outline)
func (t *TreemapPanel) SetSelected(node *model.Node) {
	if node == nil {
		return
	}
	t.selected = node
}

// Selected returns the currently selected node
func (t TreemapPanel) Selected() *model.Node {
	return t.selected
}

// Mode returns the active layout mode.
func (t TreemapPanel) Mode() LayoutMode {
	return t.mode
}

// ToggleMode switches between slice and squarified layouts.
func (t *TreemapPanel) ToggleMode() {
	if t.mode == ModeSlice {
		t.mode = ModeSquarified
	} else {
		t.mode = ModeSlice
	}
	t.Refresh()
}

// contentArea returns the drawable size inside the border and padding.
func (t TreemapPanel) contentArea() (int, int) {
	w := t.width - 4
	h := t.height - 2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Refresh recomputes the blocks after any mutation or resize.
func (t *TreemapPanel) Refresh() {
	t.blocks = nil

	if t.root == nil || t.width <= 4 || t.height <= 2 {
		return
	}

	contentW, contentH := t.contentArea()

	if t.mode == ModeSlice {
		t.layoutSlice(contentW, contentH)
	} else {
		t.layoutSquarified(contentW, contentH)
	}
}

// layoutSlice delegates to the model layout and collects the rectangles of
// the visible leaves.
func (t *TreemapPanel) layoutSlice(contentW, contentH int) {
	model.Layout(t.root, model.Rect{X: 0, Y: 0, W: contentW, H: contentH})
	for _, n := range model.VisibleLeaves(t.root) {
		t.blocks = append(t.blocks, Block{
			Node:   n,
			X:      n.Rect.X,
			Y:      n.Rect.Y,
			Width:  n.Rect.W,
			Height: n.Rect.H,
		})
	}
}

// treemapItem wraps a node for the squarify algorithm
type treemapItem struct {
	node     *model.Node
	size     float64
	children []*treemapItem
}

// Size implements squarify.TreeSizer
func (t *treemapItem) Size() float64 {
	return t.size
}

// NumChildren implements squarify.TreeSizer
func (t *treemapItem) NumChildren() int {
	return len(t.children)
}

// Child implements squarify.TreeSizer
func (t *treemapItem) Child(i int) squarify.TreeSizer {
	return t.children[i]
}

// buildItems mirrors the displayed tree: collapsed branches and leaves stop
// the recursion, zero-weight children are dropped.
func buildItems(n *model.Node) *treemapItem {
	item := &treemapItem{node: n, size: float64(n.Size)}
	if n.IsLeaf() || !n.Expanded {
		return item
	}
	for _, c := range n.Children {
		if c.Size == 0 {
			continue
		}
		item.children = append(item.children, buildItems(c))
	}
	return item
}

// layoutSquarified runs the squarify library over the displayed tree and
// keeps the blocks of the display leaves.
func (t *TreemapPanel) layoutSquarified(contentW, contentH int) {
	if t.root.Size == 0 {
		t.blocks = append(t.blocks, Block{
			Node: t.root, X: 0, Y: 0, Width: contentW, Height: contentH,
		})
		return
	}

	rootItem := buildItems(t.root)
	if len(rootItem.children) == 0 {
		t.blocks = append(t.blocks, Block{
			Node: t.root, X: 0, Y: 0, Width: contentW, Height: contentH,
		})
		return
	}

	rect := squarify.Rect{X: 0, Y: 0, W: float64(contentW), H: float64(contentH)}
	blocks, _ := squarify.Squarify(rootItem, rect, squarify.Options{
		MaxDepth: maxDepth(t.root),
		Sort:     true,
	})

	for _, block := range blocks {
		item, ok := block.TreeSizer.(*treemapItem)
		if !ok || item.NumChildren() > 0 {
			continue // only display leaves paint
		}

		// Round the edges, not the extents, so neighbours share boundaries
		// instead of overlapping.
		x := int(math.Round(block.X))
		y := int(math.Round(block.Y))
		endX := int(math.Round(block.X + block.W))
		endY := int(math.Round(block.Y + block.H))

		if endX > contentW {
			endX = contentW
		}
		if endY > contentH {
			endY = contentH
		}
		w := endX - x
		h := endY - y
		if w < 1 || h < 1 || x >= contentW || y >= contentH {
			continue
		}

		t.blocks = append(t.blocks, Block{
			Node: item.node, X: x, Y: y, Width: w, Height: h,
		})
	}
}

func maxDepth(n *model.Node) int {
	d := 0
	for _, c := range n.Children {
		if cd := maxDepth(c) + 1; cd > d {
			d = cd
		}
	}
	return d
}

// NodeAt resolves a screen coordinate to the node painted there, or nil if
// the click lands outside the blocks.
func (t TreemapPanel) NodeAt(screenX, screenY int) *model.Node {
	// border plus one cell of horizontal padding
	cx := screenX - t.originX - 2
	cy := screenY - t.originY - 1

	contentW, contentH := t.contentArea()
	if cx < 0 || cy < 0 || cx >= contentW || cy >= contentH {
		return nil
	}

	if t.mode == ModeSlice {
		return model.LocateAt(t.root, cx, cy)
	}

	for i := range t.blocks {
		b := &t.blocks[i]
		if cx >= b.X && cx < b.X+b.Width && cy >= b.Y && cy < b.Y+b.Height {
			return b.Node
		}
	}
	return nil
}

// View renders the treemap
func (t TreemapPanel) View() string {
	if t.root == nil {
		return TreemapPanelStyle.Width(t.width).Height(t.height).Render("No data")
	}

	contentW, contentH := t.contentArea()

	// Create a 2D grid
	grid := make([][]rune, contentH)
	colors := make([][]lipgloss.Style, contentH)
	for i := range grid {
		grid[i] = make([]rune, contentW)
		colors[i] = make([]lipgloss.Style, contentW)
		for j := range grid[i] {
			grid[i][j] = ' '
			colors[i][j] = lipgloss.NewStyle()
		}
	}

	// Draw blocks
	for _, block := range t.blocks {
		t.drawBlock(grid, colors, block, contentW, contentH)
	}

	// Render grid to string
	var lines []string
	for y := 0; y < contentH; y++ {
		var line strings.Builder
		for x := 0; x < contentW; x++ {
			line.WriteString(colors[y][x].Render(string(grid[y][x])))
		}
		lines = append(lines, line.String())
	}

	content := strings.Join(lines, "\n")

	style := TreemapPanelStyle.Width(t.width).Height(t.height)
	if t.focused {
		style = style.BorderForeground(ColorPrimary)
	}

	return style.Render(content)
}

// drawBlock draws a single block onto the grid
func (t TreemapPanel) drawBlock(grid [][]rune, colors [][]lipgloss.Style, block Block, gridW, gridH int) {
	if block.Width < 1 || block.Height < 1 || block.Node == nil {
		return
	}

	bgColor := nodeColor(block.Node.Color)
	fgColor := lipgloss.Color("#E4E4E7")

	// Selection highlight: the selected node or the block covering it when
	// the selection itself is hidden inside a collapsed branch.
	isSelected := t.selected != nil && t.focused && coversNode(block.Node, t.selected)

	blockStyle := lipgloss.NewStyle().Background(bgColor).Foreground(fgColor)
	if isSelected {
		blockStyle = blockStyle.Background(ColorPrimary).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	}

	// Fill block area
	for y := block.Y; y < block.Y+block.Height && y < gridH; y++ {
		for x := block.X; x < block.X+block.Width && x < gridW; x++ {
			if y >= 0 && x >= 0 {
				grid[y][x] = ' '
				colors[y][x] = blockStyle
			}
		}
	}

	// Border only when there is room for an interior
	if block.Width >= 2 && block.Height >= 2 {
		borderStyle := lipgloss.NewStyle().Background(bgColor).Foreground(lipgloss.Color("#4B5563"))
		if isSelected {
			borderStyle = borderStyle.Background(ColorPrimary).Foreground(lipgloss.Color("#FFFFFF"))
		}

		top, bottom := block.Y, block.Y+block.Height-1
		left, right := block.X, block.X+block.Width-1

		for x := left; x <= right && x < gridW; x++ {
			if x < 0 {
				continue
			}
			if top >= 0 && top < gridH {
				grid[top][x] = '─'
				colors[top][x] = borderStyle
			}
			if bottom >= 0 && bottom < gridH {
				grid[bottom][x] = '─'
				colors[bottom][x] = borderStyle
			}
		}
		for y := top; y <= bottom && y < gridH; y++ {
			if y < 0 {
				continue
			}
			if left >= 0 && left < gridW {
				grid[y][left] = '│'
				colors[y][left] = borderStyle
			}
			if right >= 0 && right < gridW {
				grid[y][right] = '│'
				colors[y][right] = borderStyle
			}
		}
		setCorner := func(y, x int, r rune) {
			if y >= 0 && y < gridH && x >= 0 && x < gridW {
				grid[y][x] = r
				colors[y][x] = borderStyle
			}
		}
		setCorner(top, left, '┌')
		setCorner(top, right, '┐')
		setCorner(bottom, left, '└')
		setCorner(bottom, right, '┘')
	}

	// Draw label if space permits, trimming on rune boundaries
	if block.Width > 4 && block.Height > 2 {
		label := []rune(block.Node.Name)
		maxLen := block.Width - 4
		if maxLen > 0 && len(label) > maxLen {
			label = label[:maxLen]
		}

		labelY := block.Y + 1
		labelX := block.X + 2

		if labelY < gridH && labelX < gridW && maxLen > 0 {
			for i, ch := range label {
				x := labelX + i
				if x < gridW && x < block.X+block.Width-2 {
					grid[labelY][x] = ch
					colors[labelY][x] = blockStyle
				}
			}
		}

		// Show weight on next line if space
		if block.Height > 3 && block.Width > 6 {
			sizeStr := t.format(block.Node.Size)
			sizeY := block.Y + 2
			sizeX := block.X + 2

			if sizeY < gridH {
				for i, ch := range sizeStr {
					x := sizeX + i
					if x < gridW && x < block.X+block.Width-2 {
						grid[sizeY][x] = ch
						colors[sizeY][x] = blockStyle
					}
				}
			}
		}
	}
}

// coversNode reports whether block's node is target or an ancestor of it.
func coversNode(block, target *model.Node) bool {
	for n := target; n != nil; n = n.Parent {
		if n == block {
			return true
		}
	}
	return false
}
