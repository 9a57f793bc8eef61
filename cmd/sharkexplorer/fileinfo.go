package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lemonshark/sharkkit/ramfs"
)

// FileDetailModel shows inode-level detail for the selected entry as a
// modal over the main view.
type FileDetailModel struct {
	node     *treeNode
	stat     ramfs.Stat
	info     ramfs.Info
	viewport viewport.Model
	width    int
	height   int
	visible  bool
}

// NewFileDetailModel creates a new file detail model
func NewFileDetailModel() FileDetailModel {
	return FileDetailModel{
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (m FileDetailModel) Init() tea.Cmd {
	return nil
}

// Show displays details for a tree entry
func (m *FileDetailModel) Show(node treeNode, st ramfs.Stat, info ramfs.Info) {
	m.node = &node
	m.stat = st
	m.info = info
	m.visible = true
	m.updateContent()
}

// Hide closes the detail view
func (m *FileDetailModel) Hide() {
	m.visible = false
	m.node = nil
}

// IsVisible returns whether the detail view is currently shown
func (m *FileDetailModel) IsVisible() bool {
	return m.visible
}

// Update handles messages
func (m *FileDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportSize()
		m.updateContent()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateViewportSize keeps the modal at roughly 60% of the screen.
// Border and padding eat 4 rows and 6 columns of that.
func (m *FileDetailModel) updateViewportSize() {
	m.viewport.Width = int(float64(m.width)*0.6) - 6
	m.viewport.Height = int(float64(m.height)*0.6) - 4
	if m.viewport.Width < 20 {
		m.viewport.Width = 20
	}
	if m.viewport.Height < 5 {
		m.viewport.Height = 5
	}
}

// updateContent generates the detail text
func (m *FileDetailModel) updateContent() {
	if m.node == nil {
		m.viewport.SetContent("")
		return
	}

	var b strings.Builder

	b.WriteString(modalTitleStyle.Render(fmt.Sprintf("Entry: %s", m.node.Path)))
	b.WriteString("\n\n")

	kind := "file"
	if m.node.Dir {
		kind = "directory"
	}
	b.WriteString(fmt.Sprintf("Type:   %s\n", kind))
	b.WriteString(fmt.Sprintf("Inode:  %d\n", m.stat.Ino))
	b.WriteString(fmt.Sprintf("Size:   %d bytes\n", m.stat.Size))
	if m.node.Dir {
		b.WriteString(fmt.Sprintf("Entries: %d\n", m.node.Children))
	}

	b.WriteString(fmt.Sprintf("Blocks: %d", len(m.stat.Blocks)))
	if m.info.BlockSize > 0 && m.info.MaxFileSize > 0 {
		b.WriteString(fmt.Sprintf(" of %d max", m.info.MaxFileSize/m.info.BlockSize))
	}
	b.WriteString("\n")

	if len(m.stat.Blocks) > 0 {
		b.WriteString("\nBlock pointers:\n")
		for i, blk := range m.stat.Blocks {
			b.WriteString(fmt.Sprintf("  [%d] %d", i, blk))
			if m.info.BlockSize > 0 {
				start := uint64(blk) * uint64(m.info.BlockSize)
				b.WriteString(fmt.Sprintf("  (bytes %d-%d)", start, start+uint64(m.info.BlockSize)-1))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc to close  ↑/↓ to scroll"))

	m.viewport.SetContent(b.String())
	m.viewport.YOffset = 0
}

// View renders the modal box
func (m *FileDetailModel) View() string {
	if !m.visible {
		return ""
	}
	return modalStyle.Render(m.viewport.View())
}
