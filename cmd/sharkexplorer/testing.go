package main

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// TestHelper drives the model with messages directly, without a
// terminal or a real image file
type TestHelper struct {
	model Model
}

// NewTestHelper creates a test helper around a bare model. Tree rows
// come from LoadTree, so no image is opened and load commands stay nil.
func NewTestHelper() *TestHelper {
	return &TestHelper{
		model: Model{
			imgPath:     "test.img",
			keys:        DefaultKeyMap(),
			focusedPane: TreePane,
			inputMode:   NormalMode,
			expanded:    map[string]bool{"/": true},
			viewport:    viewport.New(0, 0),
			fileDetail:  NewFileDetailModel(),
		},
	}
}

// SendKey simulates a key press but does not execute async commands
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	msg := tea.KeyMsg{Type: keyType}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	msg := tea.WindowSizeMsg{Width: width, Height: height}
	updated, _ := h.model.Update(msg)
	h.model = updated.(Model)
	return h
}

// LoadTree injects a loaded tree as if the walk command finished
func (h *TestHelper) LoadTree(nodes []treeNode) *TestHelper {
	updated, _ := h.model.Update(treeLoadedMsg{nodes: nodes})
	h.model = updated.(Model)
	return h
}

// LoadContent injects file content as if the read command finished
func (h *TestHelper) LoadContent(path string, data []byte) *TestHelper {
	updated, _ := h.model.Update(contentLoadedMsg{path: path, data: data})
	h.model = updated.(Model)
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// GetCurrentNode returns the tree node under the cursor
func (h *TestHelper) GetCurrentNode() *treeNode {
	return h.model.currentNode()
}

// VisibleCount returns the number of rows the tree pane would show
func (h *TestHelper) VisibleCount() int {
	return len(h.model.visibleNodes())
}

// testVolumeTree builds the tree most tests run against:
//
//	/
//	├── docs/
//	│   ├── guide.txt
//	│   └── notes/
//	│       └── todo.txt
//	├── kernel.cfg
//	└── motd
func testVolumeTree() []treeNode {
	return []treeNode{
		{Path: "/", Name: "/", Depth: 0, Dir: true, Ino: 0, Children: 3},
		{Path: "/docs", Name: "docs", Depth: 1, Dir: true, Ino: 1, Size: 512, Children: 2},
		{Path: "/docs/guide.txt", Name: "guide.txt", Depth: 2, Ino: 2, Size: 24},
		{Path: "/docs/notes", Name: "notes", Depth: 2, Dir: true, Ino: 3, Size: 512, Children: 1},
		{Path: "/docs/notes/todo.txt", Name: "todo.txt", Depth: 3, Ino: 4, Size: 9},
		{Path: "/kernel.cfg", Name: "kernel.cfg", Depth: 1, Ino: 5, Size: 40},
		{Path: "/motd", Name: "motd", Depth: 1, Ino: 6, Size: 12},
	}
}
