package main

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lemonshark/sharkkit/pkg/sharkfs"
)

// buildTestVolume formats a 1 MiB image on disk and seeds it with a
// small directory layout:
//
//	/
//	├── docs/
//	│   └── readme
//	└── motd
func buildTestVolume(t *testing.T) string {
	t.Helper()

	imgPath := filepath.Join(t.TempDir(), "volume.img")
	if err := sharkfs.Mkfs(imgPath, 1<<20); err != nil {
		t.Fatalf("Mkfs failed: %v", err)
	}
	if err := sharkfs.Mkdir(imgPath, "/docs"); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if _, err := sharkfs.WriteFile(imgPath, "/docs/readme", []byte("hello shark\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := sharkfs.WriteFile(imgPath, "/motd", []byte("welcome\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return imgPath
}

// TestExplorerAgainstRealVolume drives the model against an image on
// disk, executing the async load commands by hand instead of running a
// program loop.
func TestExplorerAgainstRealVolume(t *testing.T) {
	imgPath := buildTestVolume(t)

	m := NewModel(imgPath)
	defer m.Close()

	if m.err != nil {
		t.Fatalf("NewModel failed: %v", m.err)
	}
	if m.info.TotalBlocks != 2048 {
		t.Errorf("1 MiB volume should have 2048 blocks, got %d", m.info.TotalBlocks)
	}
	if m.info.UsedInodes != 4 {
		t.Errorf("Expected 4 used inodes (root, docs, readme, motd), got %d", m.info.UsedInodes)
	}

	t.Log("Running the startup tree load")
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should return a tree load command")
	}
	msg := cmd()
	tl, ok := msg.(treeLoadedMsg)
	if !ok {
		t.Fatalf("Expected treeLoadedMsg, got %T", msg)
	}
	if len(tl.nodes) != 4 {
		t.Fatalf("Expected 4 tree nodes, got %d", len(tl.nodes))
	}
	if tl.nodes[0].Path != "/" {
		t.Errorf("First node should be the root, got %s", tl.nodes[0].Path)
	}

	model, _ := m.Update(tl)
	m = model.(Model)

	model, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = model.(Model)

	t.Log("Navigating to /docs/readme")
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(Model)
	if got := m.currentNode().Path; got != "/docs" {
		t.Fatalf("Cursor should be on /docs, got %s", got)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = model.(Model)
	if !m.expanded["/docs"] {
		t.Fatal("/docs should be expanded after →")
	}

	var loadCmd tea.Cmd
	model, loadCmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(Model)
	if got := m.currentNode().Path; got != "/docs/readme" {
		t.Fatalf("Cursor should be on /docs/readme, got %s", got)
	}
	if loadCmd == nil {
		t.Fatal("Landing on a file should schedule a content load")
	}

	cmsg := loadCmd()
	cl, ok := cmsg.(contentLoadedMsg)
	if !ok {
		t.Fatalf("Expected contentLoadedMsg, got %T", cmsg)
	}
	if cl.path != "/docs/readme" {
		t.Errorf("Expected content for /docs/readme, got %s", cl.path)
	}
	if string(cl.data) != "hello shark\n" {
		t.Errorf("Unexpected content: %q", cl.data)
	}

	model, _ = m.Update(cl)
	m = model.(Model)

	view := m.View()
	if !strings.Contains(view, "readme") {
		t.Error("View should list the readme entry")
	}
	if !strings.Contains(view, "hello shark") {
		t.Error("View should show the file content")
	}
	if !strings.Contains(view, "Content: /docs/readme (12 bytes, text)") {
		t.Error("Content title should show path, size and mode")
	}
	if !strings.Contains(view, "Inodes: 4/70 used") {
		t.Error("Volume info should show the inode usage")
	}

	t.Log("✓ Full startup and navigation flow works against a real volume")
}

// TestDetailModalRealStat tests that the detail modal pulls the real
// inode record, block pointers included
func TestDetailModalRealStat(t *testing.T) {
	imgPath := buildTestVolume(t)

	m := NewModel(imgPath)
	defer m.Close()
	if m.err != nil {
		t.Fatalf("NewModel failed: %v", m.err)
	}

	msg := m.Init()()
	model, _ := m.Update(msg)
	m = model.(Model)
	model, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = model.(Model)

	// With /docs collapsed the default view is /, /docs, /motd
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m = model.(Model)
	if got := m.currentNode().Path; got != "/motd" {
		t.Fatalf("Cursor should be on /motd, got %s", got)
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	m = model.(Model)
	if !m.fileDetail.IsVisible() {
		t.Fatal("Detail modal should be visible")
	}

	view := m.View()
	if !strings.Contains(view, "Entry: /motd") {
		t.Error("Modal should name the entry")
	}
	if !strings.Contains(view, "Size:   8 bytes") {
		t.Error("Modal should show the on-disk size")
	}
	if !strings.Contains(view, "Blocks: 1 of 16 max") {
		t.Error("Modal should show the block count against the inode cap")
	}
	if !strings.Contains(view, "Block pointers:") {
		t.Error("Modal should list the block pointers")
	}

	t.Log("✓ Detail modal shows the real inode record")
}

// TestRefreshReloadsVolume tests that F5 schedules a fresh tree walk
func TestRefreshReloadsVolume(t *testing.T) {
	imgPath := buildTestVolume(t)

	m := NewModel(imgPath)
	defer m.Close()
	if m.err != nil {
		t.Fatalf("NewModel failed: %v", m.err)
	}

	msg := m.Init()()
	model, _ := m.Update(msg)
	m = model.(Model)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m = model.(Model)
	if m.statusMessage != "Reloading..." {
		t.Errorf("Expected 'Reloading...' status, got %q", m.statusMessage)
	}
	if cmd == nil {
		t.Fatal("Refresh should return a load command")
	}

	reloaded, ok := cmd().(treeLoadedMsg)
	if !ok {
		t.Fatal("Refresh command should produce a tree load")
	}
	if len(reloaded.nodes) != 4 {
		t.Errorf("Reload should find 4 nodes, got %d", len(reloaded.nodes))
	}

	t.Log("✓ F5 reloads the tree from the volume")
}
