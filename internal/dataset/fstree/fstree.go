// Package fstree scans a directory into a tree weighted by file size.
package fstree

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"

	"github.com/treescopelabs/treescope/internal/logging"
	"github.com/treescopelabs/treescope/internal/model"
)

// detectLimit caps the file size for MIME sniffing; anything larger is
// labelled by size alone.
const detectLimit = 8 << 20

// FileInfo is the metadata payload attached to file and folder nodes.
type FileInfo struct {
	Path string
	MIME string
	Dir  bool
}

// Separator implements model.Info.
func (FileInfo) Separator() string { return string(os.PathSeparator) }

// Suffix implements model.Info.
func (i FileInfo) Suffix(n *model.Node) string {
	if i.Dir {
		return fmt.Sprintf(" (folder, %d items, %s)", len(n.Children), humanSize(n.Size))
	}
	if i.MIME != "" {
		return fmt.Sprintf(" (%s, %s)", i.MIME, humanSize(n.Size))
	}
	return fmt.Sprintf(" (file, %s)", humanSize(n.Size))
}

// Loader walks a directory with fastwalk and builds the tree from the flat
// entry list.
type Loader struct {
	Root        string
	DetectTypes bool // sniff MIME types for small files
}

// entry is a temporary structure for building the tree.
type entry struct {
	path  string
	name  string
	size  int64
	isDir bool
	mime  string
}

// Load implements dataset.Loader.
func (l Loader) Load(ctx context.Context) (*model.Node, error) {
	absRoot, err := filepath.Abs(l.Root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}

	// A single file is a one-node tree.
	if !info.IsDir() {
		leaf := model.NewLeaf(filepath.Base(absRoot), info.Size())
		leaf.Info = FileInfo{Path: absRoot}
		return leaf, nil
	}

	entryCh := make(chan entry, 4096)
	var entries []entry
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for e := range entryCh {
			entries = append(entries, e)
		}
	}()

	conf := &fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			return nil // unreadable entries are simply absent from the tree
		}
		if path == absRoot {
			return nil
		}

		e := entry{path: path, name: d.Name(), isDir: d.IsDir()}
		if !d.IsDir() {
			fi, err := d.Info()
			if err != nil {
				return nil
			}
			e.size = fi.Size()
			if l.DetectTypes && e.size > 0 && e.size <= detectLimit {
				if m, err := mimetype.DetectFile(path); err == nil {
					e.mime = m.String()
				}
			}
		}
		entryCh <- e
		return nil
	})

	close(entryCh)
	wg.Wait()

	if walkErr != nil {
		return nil, walkErr
	}

	logging.Debug.Info("directory scanned", "root", absRoot, "entries", len(entries))
	return buildTree(absRoot, entries), nil
}

// buildTree links the flat entries into a tree, computes directory sizes and
// sorts siblings largest first.
func buildTree(rootPath string, entries []entry) *model.Node {
	nodes := make(map[string]*model.Node, len(entries)+1)

	root := &model.Node{
		Name:  filepath.Base(rootPath),
		Color: model.RandomColor(),
		Info:  FileInfo{Path: rootPath, Dir: true},
	}
	nodes[rootPath] = root

	for i := range entries {
		e := &entries[i]
		nodes[e.path] = &model.Node{
			Name:  e.name,
			Size:  e.size,
			Color: model.RandomColor(),
			Info:  FileInfo{Path: e.path, MIME: e.mime, Dir: e.isDir},
		}
	}

	for i := range entries {
		e := &entries[i]
		node := nodes[e.path]
		if parent, ok := nodes[filepath.Dir(e.path)]; ok {
			node.Parent = parent
			parent.Children = append(parent.Children, node)
		}
	}

	root.RecomputeSizes()
	sortTree(root)
	return root
}

func sortTree(n *model.Node) {
	model.SortBySize(n.Children)
	for _, c := range n.Children {
		sortTree(c)
	}
}

func humanSize(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)
	switch {
	case bytes >= tb:
		return fmt.Sprintf("%.2fTB", float64(bytes)/tb)
	case bytes >= gb:
		return fmt.Sprintf("%.2fGB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2fMB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2fkB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
