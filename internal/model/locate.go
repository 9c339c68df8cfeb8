package model

// LocateAt returns the deepest visible descendant of n (possibly n itself)
// whose last computed rectangle contains the point, or nil when the point
// misses n's rectangle or Layout has never run. It follows the same
// visibility rule as Layout: a collapsed or leaf node is opaque, and
// zero-size children are skipped, so what is clickable matches what is
// painted.
func LocateAt(n *Node, x, y int) *Node {
	if n == nil || !n.HasRect || !n.Rect.Contains(x, y) {
		return nil
	}
	if n.IsLeaf() || !n.Expanded {
		return n
	}
	for _, c := range n.Children {
		if c.Size == 0 || !c.HasRect {
			continue
		}
		if hit := LocateAt(c, x, y); hit != nil {
			return hit
		}
	}
	return n
}
