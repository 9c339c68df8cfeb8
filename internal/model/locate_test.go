package model

import "testing"

func TestLocateBeforeLayout(t *testing.T) {
	root := buildSampleTree()
	if got := LocateAt(root, 5, 5); got != nil {
		t.Errorf("expected nil before layout, got %s", got.Name)
	}
}

func TestLocateOutsideRoot(t *testing.T) {
	root := buildSampleTree()
	Layout(root, Rect{X: 0, Y: 0, W: 100, H: 50})

	if got := LocateAt(root, 200, 5); got != nil {
		t.Errorf("expected nil outside the root rect, got %s", got.Name)
	}
	if got := LocateAt(root, 5, -1); got != nil {
		t.Errorf("expected nil above the root rect, got %s", got.Name)
	}
}

func TestLocateCollapsedRootReturnsRoot(t *testing.T) {
	root := buildSampleTree()
	Layout(root, Rect{X: 0, Y: 0, W: 100, H: 50})

	if got := LocateAt(root, 10, 10); got != root {
		t.Errorf("collapsed root should be opaque, got %v", got)
	}
}

func TestLocateFindsDeepestVisible(t *testing.T) {
	a := NewLeaf("a", 30)
	b := NewLeaf("b", 70)
	root := NewBranch("root", []*Node{a, b})
	root.Expand()
	Layout(root, Rect{X: 0, Y: 0, W: 100, H: 10})

	if got := LocateAt(root, 10, 5); got != a {
		t.Errorf("expected a, got %v", got)
	}
	if got := LocateAt(root, 90, 5); got != b {
		t.Errorf("expected b, got %v", got)
	}
}

func TestLocateSharedEdgeGoesToLeftmost(t *testing.T) {
	a := NewLeaf("a", 50)
	b := NewLeaf("b", 50)
	root := NewBranch("root", []*Node{a, b})
	root.Expand()
	Layout(root, Rect{X: 0, Y: 0, W: 100, H: 10})

	// x=50 is the border between a and b.
	if got := LocateAt(root, 50, 5); got != a {
		t.Errorf("shared edge should resolve to the leftmost block, got %v", got)
	}
}

func TestLocateSkipsZeroSizeChildren(t *testing.T) {
	a := NewLeaf("a", 100)
	zero := NewLeaf("zero", 0)
	root := NewBranch("root", []*Node{zero, a})
	root.Expand()
	Layout(root, Rect{X: 0, Y: 0, W: 100, H: 10})

	if got := LocateAt(root, 10, 5); got != a {
		t.Errorf("expected a, got %v", got)
	}
}

func TestLocateAgreesWithLayoutVisibility(t *testing.T) {
	root := buildSampleTree()
	root.ExpandAll()
	// Collapse one branch; its leaves stay laid out from no earlier pass.
	root.Children[1].Collapse()
	Layout(root, Rect{X: 0, Y: 0, W: 120, H: 60})

	for _, leaf := range VisibleLeaves(root) {
		cx := leaf.Rect.X + leaf.Rect.W/2
		cy := leaf.Rect.Y + leaf.Rect.H/2
		if leaf.Rect.W < 2 || leaf.Rect.H < 2 {
			// A center on a shared edge legitimately resolves to the
			// neighbouring block.
			continue
		}
		if got := LocateAt(root, cx, cy); got != leaf {
			t.Errorf("center of %s resolved to %v", leaf.Name, got)
		}
	}
}
