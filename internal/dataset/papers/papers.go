// Package papers loads the CS education research paper dataset: a CSV of
// publications with nested category paths, weighted by citation count.
package papers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/treescopelabs/treescope/internal/logging"
	"github.com/treescopelabs/treescope/internal/model"
)

// categorySeparator splits the CSV category column into a path,
// e.g. "CS1: Assessment: Exams" -> [CS1, Assessment, Exams].
const categorySeparator = ": "

// PaperInfo is the metadata payload attached to paper and category nodes.
type PaperInfo struct {
	Authors string
	DOI     string
	Year    string
}

// Separator implements model.Info.
func (PaperInfo) Separator() string { return " : " }

// Suffix implements model.Info.
func (PaperInfo) Suffix(n *model.Node) string {
	return fmt.Sprintf(" (%d citations)", n.Size)
}

// Record is one parsed row of the dataset.
type Record struct {
	Authors    string
	Title      string
	Year       string
	Categories []string
	DOI        string
	Citations  int64
}

// Loader reads a papers CSV file into a category tree.
type Loader struct {
	Path   string
	Name   string // root node name, defaults to the file base name
	ByYear bool   // insert a year level above the categories
}

// Load implements dataset.Loader.
func (l Loader) Load(ctx context.Context) (*model.Node, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open papers dataset: %w", err)
	}
	defer f.Close()

	records, err := Parse(ctx, f)
	if err != nil {
		return nil, err
	}

	name := l.Name
	if name == "" {
		name = "papers"
	}
	logging.Debug.Info("papers dataset loaded", "path", l.Path, "records", len(records))
	return BuildTree(name, records, l.ByYear), nil
}

// Parse reads CSV rows of the form
// authors,title,year,categories,doi,citations (header skipped).
func Parse(ctx context.Context, r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 6

	// Header row; an empty file yields an empty dataset.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read papers header: %w", err)
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read papers row: %w", err)
		}

		citations, err := strconv.ParseInt(strings.TrimSpace(row[5]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %q: bad citation count: %w", row[1], err)
		}

		records = append(records, Record{
			Authors:    row[0],
			Title:      row[1],
			Year:       row[2],
			Categories: strings.Split(row[3], categorySeparator),
			DOI:        row[4],
			Citations:  citations,
		})
	}
	return records, nil
}

// group is an order-preserving intermediate node used while building the
// category hierarchy.
type group struct {
	name     string
	order    []string
	children map[string]*group
	papers   []Record
}

func newGroup(name string) *group {
	return &group{name: name, children: map[string]*group{}}
}

func (g *group) child(name string) *group {
	c, ok := g.children[name]
	if !ok {
		c = newGroup(name)
		g.children[name] = c
		g.order = append(g.order, name)
	}
	return c
}

// BuildTree groups records by shared path prefixes (optionally year first,
// then each category level) and returns the root of the weighted tree.
// Category sizes aggregate the citations of the papers below them.
func BuildTree(name string, records []Record, byYear bool) *model.Node {
	root := newGroup(name)
	for _, rec := range records {
		g := root
		if byYear {
			g = g.child(rec.Year)
		}
		for _, cat := range rec.Categories {
			g = g.child(cat)
		}
		g.papers = append(g.papers, rec)
	}
	return root.toNode()
}

func (g *group) toNode() *model.Node {
	var children []*model.Node
	for _, name := range g.order {
		children = append(children, g.children[name].toNode())
	}
	for _, p := range g.papers {
		leaf := model.NewLeaf(p.Title, p.Citations)
		leaf.Info = PaperInfo{Authors: p.Authors, DOI: p.DOI, Year: p.Year}
		children = append(children, leaf)
	}

	if len(children) == 0 {
		leaf := model.NewLeaf(g.name, 0)
		leaf.Info = PaperInfo{}
		return leaf
	}

	n := model.NewBranch(g.name, children)
	n.Info = PaperInfo{}
	return n
}
