// Package dataset defines how external data sources become trees.
package dataset

import (
	"context"

	"github.com/treescopelabs/treescope/internal/model"
)

// Loader builds a fully linked tree from an external data source. The tree
// is handed to the UI loop once, before the first layout pass; loaders do
// not mutate it afterwards.
type Loader interface {
	Load(ctx context.Context) (*model.Node, error)
}
