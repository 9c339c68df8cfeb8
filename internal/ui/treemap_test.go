package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/treescopelabs/treescope/internal/model"
)

func testTree() *model.Node {
	a := model.NewLeaf("a", 100)
	b := model.NewLeaf("b", 100)
	c := model.NewLeaf("c", 100)
	root := model.NewBranch("root", []*model.Node{a, b, c})
	root.Expand()
	return root
}

func TestSliceBlocksTileContentArea(t *testing.T) {
	root := testTree()

	panel := NewTreemapPanel()
	panel.SetSize(34, 12)
	panel.SetRoot(root)

	if len(panel.blocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d", len(panel.blocks))
	}

	contentW, contentH := panel.contentArea()
	t.Logf("Content area: %dx%d", contentW, contentH)

	totalArea := 0
	for i, block := range panel.blocks {
		t.Logf("Block[%d] %s: x=%d y=%d w=%d h=%d",
			i, block.Node.Name, block.X, block.Y, block.Width, block.Height)
		if block.X < 0 || block.Y < 0 ||
			block.X+block.Width > contentW || block.Y+block.Height > contentH {
			t.Errorf("Block[%d] %s out of bounds", i, block.Node.Name)
		}
		totalArea += block.Width * block.Height
	}

	// Slice layout tiles exactly, no gaps and no overlap
	if totalArea != contentW*contentH {
		t.Errorf("Expected exact coverage %d, got %d", contentW*contentH, totalArea)
	}
}

func TestSliceCollapsedRootIsSingleBlock(t *testing.T) {
	root := testTree()
	root.Collapse()

	panel := NewTreemapPanel()
	panel.SetSize(34, 12)
	panel.SetRoot(root)

	if len(panel.blocks) != 1 {
		t.Fatalf("Expected 1 block for collapsed root, got %d", len(panel.blocks))
	}
	if panel.blocks[0].Node != root {
		t.Error("Collapsed root should paint as its own block")
	}
}

func TestSquarifiedBlocksStayInBounds(t *testing.T) {
	root := testTree()

	panel := NewTreemapPanel()
	panel.SetSize(40, 14)
	panel.SetRoot(root)
	panel.ToggleMode()

	if panel.Mode() != ModeSquarified {
		t.Fatalf("Expected squarified mode, got %v", panel.Mode())
	}
	if len(panel.blocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d", len(panel.blocks))
	}

	contentW, contentH := panel.contentArea()
	totalArea := 0
	for i, block := range panel.blocks {
		t.Logf("Block[%d] %s: x=%d y=%d w=%d h=%d",
			i, block.Node.Name, block.X, block.Y, block.Width, block.Height)
		if block.X < 0 || block.Y < 0 ||
			block.X+block.Width > contentW || block.Y+block.Height > contentH {
			t.Errorf("Block[%d] %s out of bounds", i, block.Node.Name)
		}
		totalArea += block.Width * block.Height
	}

	coverage := float64(totalArea) / float64(contentW*contentH)
	t.Logf("Coverage: %.1f%%", coverage*100)
	if coverage < 0.90 {
		t.Errorf("Blocks only cover %.1f%% of area, expected at least 90%%", coverage*100)
	}
}

func TestToggleModeRoundTrip(t *testing.T) {
	panel := NewTreemapPanel()
	panel.SetSize(40, 14)
	panel.SetRoot(testTree())

	if panel.Mode() != ModeSlice {
		t.Fatalf("Expected slice mode by default")
	}
	panel.ToggleMode()
	panel.ToggleMode()
	if panel.Mode() != ModeSlice {
		t.Error("Double toggle should restore slice mode")
	}
	if len(panel.blocks) != 3 {
		t.Errorf("Expected 3 blocks after round trip, got %d", len(panel.blocks))
	}
}

func TestNodeAtTranslatesScreenCoordinates(t *testing.T) {
	root := testTree()

	panel := NewTreemapPanel()
	panel.SetSize(34, 12) // content 30x10, three 10-wide columns
	panel.SetRoot(root)
	panel.SetOrigin(20, 1)

	// Center of the first column: content (5,5) -> screen (20+2+5, 1+1+5)
	got := panel.NodeAt(27, 7)
	if got != root.Children[0] {
		t.Errorf("Expected first child, got %v", got)
	}

	// Center of the last column
	got = panel.NodeAt(27+20, 7)
	if got != root.Children[2] {
		t.Errorf("Expected last child, got %v", got)
	}

	// Outside the content area
	if got := panel.NodeAt(0, 0); got != nil {
		t.Errorf("Expected nil outside the panel, got %v", got)
	}
}

func TestNodeAtSquarifiedMode(t *testing.T) {
	root := testTree()

	panel := NewTreemapPanel()
	panel.SetSize(40, 14)
	panel.SetRoot(root)
	panel.SetOrigin(0, 0)
	panel.ToggleMode()

	for _, block := range panel.blocks {
		cx := block.X + block.Width/2
		cy := block.Y + block.Height/2
		got := panel.NodeAt(cx+2, cy+1)
		if got != block.Node {
			t.Errorf("Center of %s resolved to %v", block.Node.Name, got)
		}
	}
}

func TestLabelTruncationKeepsValidUTF8(t *testing.T) {
	// A long multi-byte name must be cut on rune boundaries when the block
	// is narrower than the label.
	name := strings.Repeat("Ünïcödé", 8)
	root := model.NewBranch("root", []*model.Node{
		model.NewLeaf(name, 100),
		model.NewLeaf("b", 100),
	})
	root.Expand()

	panel := NewTreemapPanel()
	panel.SetSize(30, 10)
	panel.SetRoot(root)

	out := panel.View()
	if !utf8.ValidString(out) {
		t.Error("Rendered treemap contains invalid UTF-8")
	}
	if strings.ContainsRune(out, utf8.RuneError) {
		t.Error("Rendered treemap contains replacement runes")
	}
}

func TestStatusLineTruncationKeepsValidUTF8(t *testing.T) {
	app := App{width: 12}
	app.status = strings.Repeat("Пример", 10)

	out := app.statusLine()
	if !utf8.ValidString(out) {
		t.Error("Status line contains invalid UTF-8")
	}
	if strings.ContainsRune(out, utf8.RuneError) {
		t.Error("Status line contains replacement runes")
	}
}

func TestVisibleLeafBlocksFollowExpansion(t *testing.T) {
	inner := model.NewBranch("inner", []*model.Node{
		model.NewLeaf("x", 60),
		model.NewLeaf("y", 40),
	})
	root := model.NewBranch("root", []*model.Node{
		model.NewLeaf("a", 100),
		inner,
	})
	root.Expand()

	panel := NewTreemapPanel()
	panel.SetSize(44, 12)
	panel.SetRoot(root)

	// inner collapsed: it paints as one block
	if len(panel.blocks) != 2 {
		t.Fatalf("Expected 2 blocks with inner collapsed, got %d", len(panel.blocks))
	}

	inner.Expand()
	panel.Refresh()
	if len(panel.blocks) != 3 {
		t.Fatalf("Expected 3 blocks with inner expanded, got %d", len(panel.blocks))
	}
}
