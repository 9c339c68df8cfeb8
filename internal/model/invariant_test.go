package model

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// genTree draws a random tree up to three levels deep.
func genTree(t *rapid.T) *Node {
	var build func(depth int, label string) *Node
	build = func(depth int, label string) *Node {
		if depth >= 3 || rapid.Float64Range(0, 1).Draw(t, label+".leaf?") < 0.4 {
			size := rapid.Int64Range(0, 1000).Draw(t, label+".size")
			return NewLeaf(label, size)
		}
		n := rapid.IntRange(1, 4).Draw(t, label+".children")
		kids := make([]*Node, 0, n)
		for i := 0; i < n; i++ {
			kids = append(kids, build(depth+1, fmt.Sprintf("%s.%d", label, i)))
		}
		return NewBranch(label, kids)
	}
	return build(0, "n")
}

func allNodes(n *Node) []*Node {
	out := []*Node{n}
	for _, c := range n.Children {
		out = append(out, allNodes(c)...)
	}
	return out
}

func checkCoherence(t *rapid.T, n *Node) {
	if n.Size < 0 {
		t.Fatalf("negative size on %s: %d", n.Name, n.Size)
	}
	if n.IsLeaf() {
		return
	}
	var sum int64
	for _, c := range n.Children {
		sum += c.Size
	}
	if n.Size != sum {
		t.Fatalf("size coherence broken on %s: size=%d children=%d", n.Name, n.Size, sum)
	}
	for _, c := range n.Children {
		checkCoherence(t, c)
	}
}

func TestSizeCoherenceUnderRandomOps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genTree(t)
		steps := rapid.IntRange(1, 30).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			nodes := allNodes(root)
			target := nodes[rapid.IntRange(0, len(nodes)-1).Draw(t, fmt.Sprintf("target%d", i))]

			switch rapid.IntRange(0, 5).Draw(t, fmt.Sprintf("op%d", i)) {
			case 0:
				target.Expand()
			case 1:
				target.Collapse()
			case 2:
				target.ExpandAll()
			case 3:
				target.CollapseAll()
			case 4:
				ratio := rapid.Float64Range(-1.5, 1.5).Draw(t, fmt.Sprintf("ratio%d", i))
				target.Resize(ratio)
			case 5:
				if target != root {
					target.Delete()
				}
			}

			checkCoherence(t, root)
		}
	})
}

func TestLayoutPartitionAndContainment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genTree(t)
		root.ExpandAll()

		w := rapid.IntRange(1, 300).Draw(t, "w")
		h := rapid.IntRange(1, 120).Draw(t, "h")
		Layout(root, Rect{X: 0, Y: 0, W: w, H: h})

		var check func(n *Node, depth int)
		check = func(n *Node, depth int) {
			if n.IsLeaf() || !n.Expanded || n.Size == 0 {
				return
			}
			var visible []*Node
			for _, c := range n.Children {
				if c.Size > 0 {
					visible = append(visible, c)
				}
			}
			offset := 0
			for _, c := range visible {
				if !c.HasRect {
					t.Fatalf("visible child %s has no rect", c.Name)
				}
				// Containment.
				if c.Rect.X < n.Rect.X || c.Rect.Y < n.Rect.Y ||
					c.Rect.X+c.Rect.W > n.Rect.X+n.Rect.W ||
					c.Rect.Y+c.Rect.H > n.Rect.Y+n.Rect.H {
					t.Fatalf("child %s %+v escapes parent %+v", c.Name, c.Rect, n.Rect)
				}
				// Tiling: contiguous spans along the split axis.
				if depth%2 == 0 {
					if c.Rect.X != n.Rect.X+offset {
						t.Fatalf("gap before %s: x=%d want %d", c.Name, c.Rect.X, n.Rect.X+offset)
					}
					offset += c.Rect.W
				} else {
					if c.Rect.Y != n.Rect.Y+offset {
						t.Fatalf("gap before %s: y=%d want %d", c.Name, c.Rect.Y, n.Rect.Y+offset)
					}
					offset += c.Rect.H
				}
			}
			// Partition exactness: spans cover the parent extent exactly.
			if len(visible) > 0 {
				extent := n.Rect.W
				if depth%2 == 1 {
					extent = n.Rect.H
				}
				if offset != extent {
					t.Fatalf("spans of %s cover %d of %d", n.Name, offset, extent)
				}
			}
			for _, c := range visible {
				check(c, depth+1)
			}
		}
		check(root, 0)
	})
}

func TestLocateMatchesVisibleLeaves(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genTree(t)
		root.ExpandAll()
		Layout(root, Rect{X: 0, Y: 0, W: 200, H: 100})

		for _, leaf := range VisibleLeaves(root) {
			if leaf.Rect.W < 2 || leaf.Rect.H < 2 {
				continue
			}
			cx := leaf.Rect.X + leaf.Rect.W/2
			cy := leaf.Rect.Y + leaf.Rect.H/2
			got := LocateAt(root, cx, cy)
			if got != leaf {
				t.Fatalf("center of %s resolved to %v", leaf.Name, got)
			}
		}
	})
}
