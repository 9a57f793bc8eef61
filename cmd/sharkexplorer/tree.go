package main

import (
	"strings"

	"github.com/lemonshark/sharkkit/ramfs"
)

// treeNode is one row of the fully loaded volume tree, in depth-first
// order. Volumes cap out at a few dozen inodes, so the whole tree is
// loaded up front and filtering works on the flat slice.
type treeNode struct {
	Path     string // absolute path inside the volume
	Name     string
	Depth    int
	Dir      bool
	Size     uint32
	Ino      uint32
	Children int // direct entries, "." and ".." excluded
}

// loadTree walks the volume from the root directory and returns every
// entry in depth-first order. The root itself is the first node.
func loadTree(fs *ramfs.FS) ([]treeNode, error) {
	rootStat, err := fs.Stat(ramfs.RootInode)
	if err != nil {
		return nil, err
	}

	nodes := []treeNode{{
		Path: "/",
		Name: "/",
		Dir:  true,
		Size: rootStat.Size,
		Ino:  ramfs.RootInode,
	}}

	if err := walkDir(fs, "/", ramfs.RootInode, 1, &nodes); err != nil {
		return nil, err
	}
	nodes[0].Children = countChildren(nodes, 0)
	return nodes, nil
}

func walkDir(fs *ramfs.FS, dirPath string, ino uint32, depth int, nodes *[]treeNode) error {
	entries, err := fs.ReadDir(ino)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		path := joinPath(dirPath, e.Name)
		idx := len(*nodes)
		*nodes = append(*nodes, treeNode{
			Path:  path,
			Name:  e.Name,
			Depth: depth,
			Dir:   e.Dir,
			Size:  e.Size,
			Ino:   e.Ino,
		})
		if e.Dir {
			if err := walkDir(fs, path, e.Ino, depth+1, nodes); err != nil {
				return err
			}
			(*nodes)[idx].Children = countChildren(*nodes, idx)
		}
	}
	return nil
}

// countChildren counts the direct children of nodes[idx] by scanning the
// depth-first run that follows it.
func countChildren(nodes []treeNode, idx int) int {
	n := 0
	depth := nodes[idx].Depth
	for i := idx + 1; i < len(nodes); i++ {
		if nodes[i].Depth <= depth {
			break
		}
		if nodes[i].Depth == depth+1 {
			n++
		}
	}
	return n
}

func joinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// parentPath returns the directory containing path ("/" for top-level
// entries and for the root itself).
func parentPath(path string) string {
	if path == "/" {
		return "/"
	}
	i := strings.LastIndexByte(path, '/')
	if i <= 0 {
		return "/"
	}
	return path[:i]
}

// visibleNodes returns the indexes of the rows the tree pane shows, in
// display order.
//
// With no filter, a node is visible when every ancestor directory is
// expanded. With a filter, expansion state is ignored and every node
// whose name contains the query (case-insensitive) is shown, so matches
// buried in collapsed directories still surface.
func (m Model) visibleNodes() []int {
	if len(m.nodes) == 0 {
		return nil
	}

	if m.filter != "" {
		q := strings.ToLower(m.filter)
		var out []int
		for i, n := range m.nodes {
			if strings.Contains(strings.ToLower(n.Name), q) {
				out = append(out, i)
			}
		}
		return out
	}

	out := make([]int, 0, len(m.nodes))
	// Tracks the nearest collapsed ancestor; nodes deeper than it are hidden.
	hiddenBelow := -1
	for i, n := range m.nodes {
		if hiddenBelow >= 0 && n.Depth > hiddenBelow {
			continue
		}
		hiddenBelow = -1
		out = append(out, i)
		if n.Dir && !m.expanded[n.Path] {
			hiddenBelow = n.Depth
		}
	}
	return out
}

// currentNode returns the tree node under the cursor, or nil when the
// tree is empty or the cursor is out of range.
func (m Model) currentNode() *treeNode {
	visible := m.visibleNodes()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return &m.nodes[visible[m.cursor]]
}
