package model

import "math"

// The mutation operations below keep the size-coherence invariant: after
// each one, every internal node's size equals the sum of its children's
// sizes, all the way up to the root. They leave cached rectangles stale;
// callers re-run Layout before the next paint or hit test.

// Expand marks an internal node as expanded so its children are shown.
// Expanding a leaf reports false; expanding an already expanded node is a
// harmless no-op.
func (n *Node) Expand() bool {
	if n.IsLeaf() {
		return false
	}
	n.Expanded = true
	return true
}

// Collapse hides the node's children. Descendant flags are left untouched,
// so a later Expand restores the previously expanded sub-structure.
// Collapsing a leaf reports false.
func (n *Node) Collapse() bool {
	if n.IsLeaf() {
		return false
	}
	n.Expanded = false
	return true
}

// ExpandAll expands this node and every internal descendant.
func (n *Node) ExpandAll() {
	if n.IsLeaf() {
		return
	}
	n.Expanded = true
	for _, c := range n.Children {
		c.ExpandAll()
	}
}

// CollapseAll collapses this node and every internal descendant.
func (n *Node) CollapseAll() {
	if n.IsLeaf() {
		return
	}
	n.Expanded = false
	for _, c := range n.Children {
		c.CollapseAll()
	}
}

// Resize scales a leaf's size by ratio (0.01 grows it one percent) and
// propagates the realized delta to every ancestor. The size is clamped at
// zero; reaching zero does not delete the node. Internal node sizes are
// derived from their children, so resizing one reports false, as does
// resizing a node that was already deleted: its ancestors no longer count
// it and must not absorb the delta.
func (n *Node) Resize(ratio float64) bool {
	if !n.IsLeaf() || !n.attached() {
		return false
	}

	var delta int64
	if ratio > 0 {
		delta = int64(math.Ceil(float64(n.Size) * ratio))
	} else {
		delta = int64(math.Floor(float64(n.Size) * ratio))
	}
	if n.Size+delta < 0 {
		delta = -n.Size
	}

	n.Size += delta
	n.propagate(delta)
	return true
}

// Delete removes this node and its subtree from the parent's children and
// subtracts the subtree's size from every remaining ancestor. Deleting the
// root, or a node already detached from its parent, reports false and
// changes nothing. The parent link on the detached node is kept so callers
// can still navigate away from it.
func (n *Node) Delete() bool {
	p := n.Parent
	if p == nil {
		return false
	}

	idx := -1
	for i, c := range p.Children {
		if c == n {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	p.Children = append(p.Children[:idx], p.Children[idx+1:]...)
	if len(p.Children) == 0 {
		p.Expanded = false
	}

	// Stop at a broken parent link: deleting inside an already detached
	// subtree must not reach the live tree.
	p.Size -= n.Size
	for a := p; a.Parent != nil; a = a.Parent {
		if !a.Parent.hasChild(a) {
			break
		}
		a.Parent.Size -= n.Size
	}
	return true
}

// propagate adds delta to the size of every ancestor.
func (n *Node) propagate(delta int64) {
	for a := n.Parent; a != nil; a = a.Parent {
		a.Size += delta
	}
}

// hasChild reports whether c is currently one of n's children.
func (n *Node) hasChild(c *Node) bool {
	for _, x := range n.Children {
		if x == c {
			return true
		}
	}
	return false
}

// attached reports whether every parent link up to the root is still backed
// by a child entry. Deleted nodes keep their Parent pointer, so the pointer
// alone does not prove membership.
func (n *Node) attached() bool {
	for a := n; a.Parent != nil; a = a.Parent {
		if !a.Parent.hasChild(a) {
			return false
		}
	}
	return true
}
