package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lemonshark/sharkkit/cmd/sharkexplorer/logger"
	"github.com/lemonshark/sharkkit/ramfs"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// If help is showing, handle help keys
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
				return m, nil
			}
			// Ignore other keys when help is showing
			return m, nil
		}

		// If the detail modal is open, handle its keys
		if m.fileDetail.IsVisible() {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Detail) {
				m.fileDetail.Hide()
				return m, nil
			}
			// Forward scroll keys to the modal viewport
			if key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down) ||
				key.Matches(msg, m.keys.PageUp) || key.Matches(msg, m.keys.PageDown) {
				var model tea.Model
				model, cmd = (&m.fileDetail).Update(msg)
				m.fileDetail = *model.(*FileDetailModel)
				if cmd != nil {
					cmds = append(cmds, cmd)
				}
				return m, tea.Batch(cmds...)
			}
			// Still allow quit
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			// Ignore other keys when the modal is open
			return m, nil
		}

		// Filter input mode
		if m.inputMode == FilterMode {
			return m.handleInputMode(msg)
		}

		// Global keys
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		// Clear an applied filter (Esc in normal mode)
		if key.Matches(msg, m.keys.Esc) && m.filter != "" {
			m.filter = ""
			m.cursor = 0
			m.treeOffset = 0
			m.statusMessage = "Filter cleared"
			return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
				return clearStatusMsg{}
			})
		}

		// Esc in the content pane hands focus back to the tree
		if key.Matches(msg, m.keys.Esc) && m.focusedPane == ContentPane {
			m.focusedPane = TreePane
			return m, nil
		}

		// Enter filter mode
		if key.Matches(msg, m.keys.Search) {
			m.inputMode = FilterMode
			m.inputBuffer = ""
			m.focusedPane = TreePane
			return m, nil
		}

		// Show help overlay
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = true
			return m, nil
		}

		// File detail modal for the entry under the cursor
		if key.Matches(msg, m.keys.Detail) {
			node := m.currentNode()
			if node == nil {
				return m, nil
			}
			st := ramfs.Stat{Ino: node.Ino, Size: node.Size, Dir: node.Dir}
			if m.fs != nil {
				full, err := m.fs.Stat(node.Ino)
				if err != nil {
					logger.Error("stat failed", "path", node.Path, "error", err)
					m.statusMessage = fmt.Sprintf("Stat failed: %v", err)
					return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
						return clearStatusMsg{}
					})
				}
				st = full
			}
			m.fileDetail.Show(*node, st, m.info)
			return m, nil
		}

		// Toggle hexdump rendering of the content pane
		if key.Matches(msg, m.keys.HexToggle) {
			m.hexMode = !m.hexMode
			m.viewport.SetContent(m.renderFileContent())
			m.viewport.YOffset = 0
			if m.hexMode {
				m.statusMessage = "Hexdump view"
			} else {
				m.statusMessage = "Text view"
			}
			return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
				return clearStatusMsg{}
			})
		}

		// Copy current path to the clipboard
		if key.Matches(msg, m.keys.Copy) {
			if node := m.currentNode(); node != nil {
				if err := clipboard.WriteAll(node.Path); err != nil {
					m.statusMessage = "Failed to copy path"
				} else {
					m.statusMessage = fmt.Sprintf("✓ Copied: %s", node.Path)
				}
				return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
					return clearStatusMsg{}
				})
			}
			return m, nil
		}

		// Copy loaded file content to the clipboard
		if key.Matches(msg, m.keys.CopyContent) {
			if m.contentPath == "" {
				m.statusMessage = "No file loaded"
			} else if err := clipboard.WriteAll(string(m.content)); err != nil {
				m.statusMessage = "Failed to copy content"
			} else {
				m.statusMessage = fmt.Sprintf("✓ Copied content of %s", m.contentPath)
			}
			return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
				return clearStatusMsg{}
			})
		}

		// Reload the tree from the volume
		if key.Matches(msg, m.keys.Refresh) {
			if m.fs == nil {
				return m, nil
			}
			m.statusMessage = "Reloading..."
			return m, m.loadTreeCmd()
		}

		// Tab to switch panes
		if key.Matches(msg, m.keys.Tab) {
			if m.focusedPane == TreePane {
				m.focusedPane = ContentPane
			} else {
				m.focusedPane = TreePane
			}
			return m, nil
		}

		// Handle keys based on focused pane
		switch m.focusedPane {
		case TreePane:
			return m.handleTreeKeys(msg)

		case ContentPane:
			// The viewport handles its own scroll keys
			m.viewport, cmd = m.viewport.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Pane split is 50-50; the content viewport loses the pane
		// border and padding
		contentWidth := m.width - m.width/2
		m.viewport.Width = contentWidth - 4
		m.viewport.Height = m.contentHeight()
		m.viewport.SetContent(m.renderFileContent())

		m.ensureCursorVisible(len(m.visibleNodes()))

		// Keep the modal sized even while hidden
		var model tea.Model
		model, cmd = (&m.fileDetail).Update(msg)
		m.fileDetail = *model.(*FileDetailModel)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case treeLoadedMsg:
		m.nodes = msg.nodes
		m.cursor = 0
		m.treeOffset = 0
		logger.Debug("tree loaded", "entries", len(msg.nodes))
		m.statusMessage = fmt.Sprintf("Loaded %d entries", len(msg.nodes)-1)
		return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case contentLoadedMsg:
		m.content = msg.data
		m.contentPath = msg.path
		m.viewport.SetContent(m.renderFileContent())
		m.viewport.YOffset = 0
		logger.Debug("content loaded", "path", msg.path, "bytes", len(msg.data))

	case errMsg:
		logger.Error("error occurred", "error", msg.err)
		m.err = msg.err
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// handleTreeKeys handles keys while the tree pane is focused
func (m Model) handleTreeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleNodes()
	if len(visible) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		return m.moveCursor(-m.treeHeight())

	case key.Matches(msg, m.keys.PageDown):
		return m.moveCursor(m.treeHeight())

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.ensureCursorVisible(len(visible))
		return m, m.maybeLoadContent()

	case key.Matches(msg, m.keys.End):
		m.cursor = len(visible) - 1
		m.ensureCursorVisible(len(visible))
		return m, m.maybeLoadContent()

	case key.Matches(msg, m.keys.Right):
		node := m.currentNode()
		if node == nil {
			return m, nil
		}
		if node.Dir {
			m.expanded[node.Path] = true
			return m, nil
		}
		m.focusedPane = ContentPane
		return m, m.maybeLoadContent()

	case key.Matches(msg, m.keys.Enter):
		node := m.currentNode()
		if node == nil {
			return m, nil
		}
		if node.Dir {
			m.expanded[node.Path] = !m.expanded[node.Path]
			m.clampCursor()
			return m, nil
		}
		m.focusedPane = ContentPane
		return m, m.maybeLoadContent()

	case key.Matches(msg, m.keys.Left):
		node := m.currentNode()
		if node == nil {
			return m, nil
		}
		if node.Dir && m.expanded[node.Path] && node.Path != "/" {
			m.expanded[node.Path] = false
			return m, nil
		}
		return m.moveCursorToPath(parentPath(node.Path))

	case key.Matches(msg, m.keys.GoToParent):
		node := m.currentNode()
		if node == nil {
			return m, nil
		}
		return m.moveCursorToPath(parentPath(node.Path))

	case key.Matches(msg, m.keys.ExpandAll):
		for _, n := range m.nodes {
			if n.Dir {
				m.expanded[n.Path] = true
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.CollapseAll):
		m.expanded = map[string]bool{"/": true}
		m.cursor = 0
		m.treeOffset = 0
		return m, nil
	}

	return m, nil
}

// moveCursor shifts the cursor by delta rows, clamped to the visible
// range, and kicks off a content load when it lands on a new file.
func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	visible := m.visibleNodes()
	if len(visible) == 0 {
		return m, nil
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	m.ensureCursorVisible(len(visible))
	return m, m.maybeLoadContent()
}

// moveCursorToPath places the cursor on the given path if it is
// currently visible.
func (m Model) moveCursorToPath(path string) (tea.Model, tea.Cmd) {
	visible := m.visibleNodes()
	for i, idx := range visible {
		if m.nodes[idx].Path == path {
			m.cursor = i
			m.ensureCursorVisible(len(visible))
			return m, m.maybeLoadContent()
		}
	}
	return m, nil
}

// maybeLoadContent returns a load command when the cursor sits on a
// file whose content is not already in the pane.
func (m Model) maybeLoadContent() tea.Cmd {
	node := m.currentNode()
	if node == nil || node.Dir || node.Path == m.contentPath {
		return nil
	}
	return m.loadContentCmd(node.Path, node.Ino)
}

// clampCursor pulls the cursor back into the visible range after a
// collapse shrank it.
func (m *Model) clampCursor() {
	visible := m.visibleNodes()
	if m.cursor >= len(visible) {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible(len(visible))
}

// ensureCursorVisible scrolls the tree window so the cursor row is on
// screen.
func (m *Model) ensureCursorVisible(total int) {
	h := m.treeHeight()
	if h < 1 {
		h = 1
	}
	if m.cursor < m.treeOffset {
		m.treeOffset = m.cursor
	}
	if m.cursor >= m.treeOffset+h {
		m.treeOffset = m.cursor - h + 1
	}
	maxOffset := total - h
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.treeOffset > maxOffset {
		m.treeOffset = maxOffset
	}
	if m.treeOffset < 0 {
		m.treeOffset = 0
	}
}

// treeHeight is the row count of the tree listing. Must match the
// layout math in view.go.
func (m Model) treeHeight() int {
	paneHeight := max(m.height-8, 5)
	h := paneHeight - (VolumeInfoPanelHeight + VolumeInfoPanelSpacing)
	if h < 5 {
		h = 5
	}
	return h
}

// contentHeight is the inner height of the content viewport, sized so
// the right pane lines up with the tree plus the volume info box.
func (m Model) contentHeight() int {
	return m.treeHeight() + VolumeInfoPanelHeight + VolumeInfoPanelSpacing
}
