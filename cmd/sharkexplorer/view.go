package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lemonshark/sharkkit/cmd/sharkexplorer/logger"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	// If help overlay is showing, render it
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	// If the detail modal is open, composite it over the main view
	if m.fileDetail.IsVisible() {
		mainView := NewMainViewModel(&m)
		detailOverlay := overlay.New(
			&m.fileDetail,
			mainView,
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		)
		return detailOverlay.View()
	}

	header := m.renderHeader()
	content := m.renderContent()
	status := m.renderStatus()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		status,
	)
}

// renderHeader renders the header with image name and current path
func (m Model) renderHeader() string {
	title := "Shark Volume Explorer"
	imgName := fmt.Sprintf("Image: %s", m.imgPath)

	currentPath := ""
	if node := m.currentNode(); node != nil {
		currentPath = fmt.Sprintf("Path: %s", node.Path)
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render(title),
		lipgloss.NewStyle().Render("  "),
		pathStyle.Render(imgName),
	)

	if currentPath != "" {
		header = lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			pathStyle.Render(currentPath),
		)
	}

	return header
}

// renderContent renders the split-pane content
func (m Model) renderContent() string {
	// Pane widths (50-50 split)
	treeWidth := m.width / 2
	contentWidth := m.width - treeWidth

	treeViewHeight := m.treeHeight()
	infoHeight := VolumeInfoPanelHeight + VolumeInfoPanelSpacing

	// Left column: tree pane over the volume info box
	visible := m.visibleNodes()
	treeTitle := "Volume"
	if len(visible) > 0 {
		treeTitle = fmt.Sprintf("Volume (%d)", len(visible))
	}

	treeContent := m.renderTree(visible, treeWidth-4, treeViewHeight)
	treePane := lipgloss.NewStyle().
		Width(treeWidth - 4).
		Height(treeViewHeight).
		Render(treeContent)

	var treeBox string
	switch m.focusedPane {
	case TreePane:
		treeBox = activePaneStyle.
			Width(treeWidth - 2).
			Height(treeViewHeight + 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, treeTitle, treePane))
	default:
		treeBox = paneStyle.
			Width(treeWidth - 2).
			Height(treeViewHeight + 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, treeTitle, treePane))
	}

	infoBox := m.renderVolumeInfo(treeWidth-2, infoHeight)

	leftColumn := lipgloss.JoinVertical(
		lipgloss.Left,
		treeBox,
		infoBox,
	)

	// Right column matches the measured height of the left column
	leftColumnHeight := lipgloss.Height(leftColumn)
	contentViewHeight := leftColumnHeight - 3
	if contentViewHeight < 5 {
		contentViewHeight = 5
	}

	contentTitle := "Content"
	if m.contentPath != "" {
		mode := "text"
		if m.hexMode {
			mode = "hex"
		}
		contentTitle = fmt.Sprintf("Content: %s (%d bytes, %s)",
			truncate(m.contentPath, contentWidth/2), len(m.content), mode)
	}

	contentPane := lipgloss.NewStyle().
		Width(contentWidth - 4).
		Height(contentViewHeight).
		Render(m.viewport.View())

	var contentBox string
	switch m.focusedPane {
	case ContentPane:
		contentBox = activePaneStyle.
			Width(contentWidth - 2).
			Height(contentViewHeight + 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, contentTitle, contentPane))
	default:
		contentBox = paneStyle.
			Width(contentWidth - 2).
			Height(contentViewHeight + 1).
			Render(lipgloss.JoinVertical(lipgloss.Left, contentTitle, contentPane))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftColumn,
		contentBox,
	)
}

// renderTree renders the visible window of tree rows
func (m Model) renderTree(visible []int, width, height int) string {
	if len(m.nodes) == 0 {
		return helpStyle.Render("Loading...")
	}
	if len(visible) == 0 {
		return helpStyle.Render("No matches")
	}

	offset := m.treeOffset
	if offset > len(visible)-1 {
		offset = len(visible) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + height
	if end > len(visible) {
		end = len(visible)
	}

	var b strings.Builder
	for i := offset; i < end; i++ {
		node := m.nodes[visible[i]]

		indent := strings.Repeat("  ", node.Depth)
		marker := "  "
		if node.Dir {
			if m.filter != "" || m.expanded[node.Path] {
				marker = "▾ "
			} else {
				marker = "▸ "
			}
		}
		name := node.Name
		if node.Dir && node.Path != "/" {
			name += "/"
		}

		line := truncate(indent+marker+name, width)
		switch {
		case i == m.cursor && m.focusedPane == TreePane:
			line = selectedStyle.Render(line)
		case node.Dir:
			line = dirStyle.Render(line)
		default:
			line = fileStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderVolumeInfo renders the geometry box under the tree
func (m Model) renderVolumeInfo(width, totalHeight int) string {
	var b strings.Builder

	if m.info.TotalBlocks == 0 {
		b.WriteString(helpStyle.Render("No volume info"))
	} else {
		used := m.info.TotalBlocks - m.info.FreeBlocks
		b.WriteString(modalTitleStyle.Render("Volume"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Blocks: %d/%d used (%d B each)\n",
			used, m.info.TotalBlocks, m.info.BlockSize))
		b.WriteString(fmt.Sprintf("Inodes: %d/%d used\n",
			m.info.UsedInodes, m.info.Inodes))
		b.WriteString(fmt.Sprintf("Data:   blocks %d..%d",
			m.info.DataStart, m.info.TotalBlocks-1))
	}

	return paneStyle.
		Width(width).
		Height(totalHeight - 2).
		Render(b.String())
}

// renderStatus renders the status bar with help text
func (m Model) renderStatus() string {
	// Show the filter prompt while typing
	if m.inputMode == FilterMode {
		prompt := searchPromptStyle.Render("Filter: ") + m.inputBuffer + "█"
		return statusStyle.Width(m.width).Render(prompt)
	}

	// Show status message if set (takes priority over normal help)
	if m.statusMessage != "" {
		return statusStyle.Width(m.width).Render(
			searchPromptStyle.Render(m.statusMessage),
		)
	}

	// Build help text based on context
	var help strings.Builder

	switch m.focusedPane {
	case TreePane:
		help.WriteString(helpStyle.Render("↑/↓: Navigate"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("→/Enter: Open"))
		help.WriteString(" │ ")
		if m.filter != "" {
			help.WriteString(helpStyle.Render("Esc: Clear"))
			help.WriteString(" │ ")
		}
		help.WriteString(helpStyle.Render("/: Filter"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("i: Details"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("?: Help"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("q: Quit"))
	default: // ContentPane
		help.WriteString(helpStyle.Render("↑/↓: Scroll"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("x: Hexdump"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("y: Copy"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("Tab: Tree"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("?: Help"))
		help.WriteString(" │ ")
		help.WriteString(helpStyle.Render("q: Quit"))
	}

	// Status line with counts and info
	var statsBuilder strings.Builder

	if logger.Enabled() {
		statsBuilder.WriteString(logBadgeStyle.Render("LOG"))
		statsBuilder.WriteString(" │ ")
	}

	entries := len(m.nodes)
	if entries > 0 {
		entries-- // don't count the root row
	}
	statsBuilder.WriteString(statusCountStyle.Render(fmt.Sprintf("%d", entries)))
	statsBuilder.WriteString(" entries")

	if m.info.TotalBlocks > 0 {
		statsBuilder.WriteString(" │ ")
		statsBuilder.WriteString(statusCountStyle.Render(fmt.Sprintf("%d", m.info.FreeBlocks)))
		statsBuilder.WriteString(" blocks free")
	}

	if node := m.currentNode(); node != nil {
		pathPreview := node.Path
		maxPathLen := 40
		if len(pathPreview) > maxPathLen {
			pathPreview = "..." + pathPreview[len(pathPreview)-maxPathLen+3:]
		}
		statsBuilder.WriteString(" │ ")
		statsBuilder.WriteString(pathStyle.Render(pathPreview))
	}

	if m.filter != "" {
		statsBuilder.WriteString(" │ ")
		statsBuilder.WriteString(searchPromptStyle.Render("Filter: "))
		statsBuilder.WriteString(pathStyle.Render(fmt.Sprintf("'%s'", m.filter)))
	}

	statusLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		help.String(),
		lipgloss.NewStyle().Width(10).Render(""), // Spacer
		statsBuilder.String(),
	)

	return statusStyle.
		Width(m.width).
		Render(statusLine)
}

// renderHelpOverlay renders the help overlay
func (m Model) renderHelpOverlay() string {
	var helpContent strings.Builder

	title := helpTitleStyle.Render("Keyboard Shortcuts")
	helpContent.WriteString(title)
	helpContent.WriteString("\n\n")

	const keyWidth = 14

	writeEntry := func(keys, desc string) {
		helpContent.WriteString(helpKeyStyle.Width(keyWidth).Render(keys))
		helpContent.WriteString("  ")
		helpContent.WriteString(helpDescStyle.Render(desc))
		helpContent.WriteString("\n")
	}

	helpContent.WriteString(modalTitleStyle.Render("Navigation"))
	helpContent.WriteString("\n")
	writeEntry("↑/↓ or k/j", "Move cursor up/down")
	writeEntry("←/→ or h/l", "Collapse/Expand directories")
	writeEntry("Home or g", "Go to top")
	writeEntry("End or G", "Go to bottom")
	writeEntry("Tab", "Switch between tree and content")
	writeEntry("p", "Go to parent directory")
	helpContent.WriteString("\n")

	helpContent.WriteString(modalTitleStyle.Render("Tree"))
	helpContent.WriteString("\n")
	writeEntry("Enter", "Expand directory / open file")
	writeEntry("E", "Expand all directories")
	writeEntry("C", "Collapse all")
	helpContent.WriteString("\n")

	helpContent.WriteString(modalTitleStyle.Render("Content"))
	helpContent.WriteString("\n")
	writeEntry("x", "Toggle text/hexdump view")
	writeEntry("y", "Copy file content")
	writeEntry("↑/↓, PgUp/PgDn", "Scroll (in content pane)")
	helpContent.WriteString("\n")

	helpContent.WriteString(modalTitleStyle.Render("Filter"))
	helpContent.WriteString("\n")
	writeEntry("/", "Filter entries by name (live)")
	writeEntry("Enter", "Keep the filter")
	writeEntry("Esc", "Clear the filter")
	helpContent.WriteString("\n")

	helpContent.WriteString(modalTitleStyle.Render("Other"))
	helpContent.WriteString("\n")
	writeEntry("i", "File details (inode, blocks)")
	writeEntry("c", "Copy current path")
	writeEntry("F5", "Reload the volume")
	writeEntry("?", "Show this help")
	writeEntry("q or Ctrl+C", "Quit")
	helpContent.WriteString("\n")

	helpContent.WriteString(helpStyle.Render("Press Esc, ?, or q to close this help"))

	helpBox := modalStyle.
		Width(60).
		Render(helpContent.String())

	helpHeight := lipgloss.Height(helpBox)
	helpWidth := lipgloss.Width(helpBox)

	verticalPadding := (m.height - helpHeight) / 2
	horizontalPadding := (m.width - helpWidth) / 2

	if verticalPadding < 0 {
		verticalPadding = 0
	}
	if horizontalPadding < 0 {
		horizontalPadding = 0
	}

	positioned := lipgloss.NewStyle().
		MarginTop(verticalPadding).
		MarginLeft(horizontalPadding).
		Render(helpBox)

	return positioned
}
