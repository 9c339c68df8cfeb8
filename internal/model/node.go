package model

import "math/rand"

// RGB is the fill colour assigned to a node when it is created.
type RGB struct {
	R, G, B uint8
}

// Info carries dataset-specific metadata for a node. The layout, mutation
// and hit-testing code never look inside it.
type Info interface {
	// Separator joins node names when building a path string.
	Separator() string
	// Suffix returns a short display descriptor for the node,
	// e.g. " (12 citations)" or " (folder, 3 items, 1.2MB)".
	Suffix(n *Node) string
}

// Node is a weighted tree node that can be laid out as a treemap.
// For an internal node Size is always the sum of the children's sizes;
// it is never set independently once the node has children.
type Node struct {
	Name     string
	Size     int64
	Children []*Node
	Parent   *Node // non-owning back-reference, used for upward size propagation
	Expanded bool

	// Rect is the last rectangle assigned by Layout. It is stale after any
	// mutation until Layout runs again; HasRect is false before the first
	// layout pass.
	Rect    Rect
	HasRect bool

	Color RGB
	Info  Info
}

// NewLeaf creates a leaf node with an externally supplied weight.
// Negative weights are clamped to zero.
func NewLeaf(name string, size int64) *Node {
	if size < 0 {
		size = 0
	}
	return &Node{Name: name, Size: size, Color: RandomColor()}
}

// NewBranch creates an internal node owning the given children. Its size is
// derived from the children, never supplied.
func NewBranch(name string, children []*Node) *Node {
	n := &Node{Name: name, Children: children, Color: RandomColor()}
	for _, c := range children {
		c.Parent = n
		n.Size += c.Size
	}
	return n
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Root returns the topmost ancestor of this node.
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Depth returns the number of ancestors above this node.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// RecomputeSizes recalculates internal node sizes bottom-up from the leaves
// and returns the total. Bulk builders call this once after attaching
// children; the mutation operations keep sizes coherent incrementally.
func (n *Node) RecomputeSizes() int64 {
	if n.IsLeaf() {
		return n.Size
	}
	var total int64
	for _, c := range n.Children {
		total += c.RecomputeSizes()
	}
	n.Size = total
	return total
}

// PathString returns the names from the root down to this node joined with
// the dataset separator.
func (n *Node) PathString() string {
	if n.Parent == nil {
		return n.Name
	}
	return n.Parent.PathString() + n.separator() + n.Name
}

// Describe returns the path string with the dataset suffix appended.
func (n *Node) Describe() string {
	if n.Info == nil {
		return n.PathString()
	}
	return n.PathString() + n.Info.Suffix(n)
}

func (n *Node) separator() string {
	if n.Info != nil {
		return n.Info.Separator()
	}
	return "/"
}

// RandomColor picks the fill colour for a new node. Bulk builders that
// create nodes directly use it too.
func RandomColor() RGB {
	return RGB{
		R: uint8(rand.Intn(256)),
		G: uint8(rand.Intn(256)),
		B: uint8(rand.Intn(256)),
	}
}
