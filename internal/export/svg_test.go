package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/treescopelabs/treescope/internal/model"
)

func sampleTree() *model.Node {
	a := model.NewLeaf("alpha", 300)
	b := model.NewLeaf("beta", 100)
	root := model.NewBranch("root", []*model.Node{a, b})
	root.Expand()
	return root
}

func TestWriteSVG(t *testing.T) {
	root := sampleTree()

	var buf bytes.Buffer
	if err := WriteSVG(&buf, root, 400, 200); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("Output is not an SVG document")
	}
	if !strings.Contains(out, "alpha") {
		t.Error("Expected label for the large block")
	}

	// One rect per visible leaf plus the background
	rects := strings.Count(out, "<rect")
	if rects != 3 {
		t.Errorf("Expected 3 rects, got %d", rects)
	}

	// Layout ran at canvas scale: alpha gets 3/4 of the width
	a := root.Children[0]
	if a.Rect.W != 300 || a.Rect.H != 200 {
		t.Errorf("Expected alpha rect 300x200, got %dx%d", a.Rect.W, a.Rect.H)
	}
	if !strings.Contains(out, fmt.Sprintf("fill:rgb(%d,%d,%d)", a.Color.R, a.Color.G, a.Color.B)) {
		t.Error("Expected alpha's fill colour in the output")
	}
}

func TestWriteSVGCollapsedRootIsOneBlock(t *testing.T) {
	root := sampleTree()
	root.Collapse()

	var buf bytes.Buffer
	if err := WriteSVG(&buf, root, 400, 200); err != nil {
		t.Fatalf("WriteSVG failed: %v", err)
	}
	if rects := strings.Count(buf.String(), "<rect"); rects != 2 {
		t.Errorf("Expected background plus one block, got %d rects", rects)
	}
}

func TestWriteSVGRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, nil, 400, 200); err == nil {
		t.Error("Expected error for nil tree")
	}
	if err := WriteSVG(&buf, sampleTree(), 0, 200); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	if err := Save(path, sampleTree(), 400, 200); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("Saved file is not an SVG document")
	}
}
