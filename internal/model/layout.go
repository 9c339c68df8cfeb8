package model

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle. Edges are
// inclusive, so a point on a shared border between two blocks resolves to
// the leftmost or topmost one when children are scanned in layout order.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Layout assigns rect to the node and recursively partitions it among the
// visible descendants using the slice-and-dice algorithm: even depths split
// the width (children left to right), odd depths split the height (top to
// bottom). Children with size zero stay in the tree but receive no
// rectangle. The last laid-out child on each axis absorbs the rounding
// remainder, so the spans tile the parent exactly.
//
// A leaf or collapsed node is treated as an opaque rectangle. A node with
// size zero still receives its rectangle, so it can be selected and
// deleted, but produces no visible children.
func Layout(n *Node, rect Rect) {
	layoutAt(n, rect, 0)
}

func layoutAt(n *Node, rect Rect, depth int) {
	n.Rect = rect
	n.HasRect = true

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
	for i, c := range visible {
		frac := float64(c.Size) / float64(n.Size)
		last := i == len(visible)-1

		var child Rect
		if depth%2 == 0 {
			span := int(float64(rect.W) * frac)
			if last {
				span = rect.W - offset
			}
			child = Rect{X: rect.X + offset, Y: rect.Y, W: span, H: rect.H}
			offset += span
		} else {
			span := int(float64(rect.H) * frac)
			if last {
				span = rect.H - offset
			}
			child = Rect{X: rect.X, Y: rect.Y + offset, W: rect.W, H: span}
			offset += span
		}

		layoutAt(c, child, depth+1)
	}
}

// VisibleLeaves returns the nodes that get painted for the displayed tree
// rooted at n, in layout order: visible nodes that are leaves or collapsed,
// excluding zero-size nodes.
func VisibleLeaves(n *Node) []*Node {
	var out []*Node
	collectVisibleLeaves(n, &out)
	return out
}

func collectVisibleLeaves(n *Node, out *[]*Node) {
	if n.Size == 0 {
		return
	}
	if n.IsLeaf() || !n.Expanded {
		*out = append(*out, n)
		return
	}
	for _, c := range n.Children {
		collectVisibleLeaves(c, out)
	}
}
