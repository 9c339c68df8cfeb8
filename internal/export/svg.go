// Package export renders a treemap snapshot as an SVG document.
package export

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/treescopelabs/treescope/internal/model"
)

const (
	labelMinWidth  = 60 // smallest block that gets a text label, in px
	labelMinHeight = 24
	labelInset     = 6
	labelFontSize  = 12
)

// WriteSVG lays the tree out on a width x height canvas and writes the
// visible leaves as filled rectangles. The tree's cached rectangles are left
// at canvas scale; interactive callers re-run their own layout afterwards.
func WriteSVG(w io.Writer, root *model.Node, width, height int) error {
	if root == nil {
		return fmt.Errorf("export: nil tree")
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("export: invalid canvas %dx%d", width, height)
	}

	model.Layout(root, model.Rect{X: 0, Y: 0, W: width, H: height})

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#18181B")

	for _, n := range model.VisibleLeaves(root) {
		r := n.Rect
		if r.W < 1 || r.H < 1 {
			continue
		}
		fill := fmt.Sprintf("fill:rgb(%d,%d,%d);stroke:black;stroke-width:1", n.Color.R, n.Color.G, n.Color.B)
		canvas.Rect(r.X, r.Y, r.W, r.H, fill)

		if r.W >= labelMinWidth && r.H >= labelMinHeight {
			canvas.Text(r.X+labelInset, r.Y+labelInset+labelFontSize, n.Name,
				fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:white", labelFontSize))
		}
	}

	canvas.End()
	return nil
}

// Save writes the snapshot to a file.
func Save(path string, root *model.Node, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteSVG(f, root, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
