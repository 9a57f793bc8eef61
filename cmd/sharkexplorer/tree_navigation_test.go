package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// TestInitialCursorOnRoot tests that the cursor starts on the root row
func TestInitialCursorOnRoot(t *testing.T) {
	helper := NewTestHelper()
	helper.LoadTree(testVolumeTree())
	helper.SendWindowSize(120, 40)

	node := helper.GetCurrentNode()
	if node == nil {
		t.Fatal("No current node after loading the tree")
	}
	if node.Path != "/" {
		t.Errorf("Cursor should start on /, got %q", node.Path)
	}

	// Root expanded, subdirectories collapsed
	if helper.VisibleCount() != 4 {
		t.Errorf("Expected 4 visible rows (/, /docs, /kernel.cfg, /motd), got %d", helper.VisibleCount())
	}

	t.Log("✓ Initial cursor sits on the root row")
}

// TestCursorMovement tests up/down movement with clamping
func TestCursorMovement(t *testing.T) {
	helper := NewTestHelper()
	helper.LoadTree(testVolumeTree())
	helper.SendWindowSize(120, 40)

	t.Log("Moving down twice")
	helper.SendKey(tea.KeyDown)
	helper.SendKey(tea.KeyDown)

	node := helper.GetCurrentNode()
	if node.Path != "/kernel.cfg" {
		t.Errorf("Expected /kernel.cfg after two downs, got %q", node.Path)
	}

	t.Log("Moving up once")
	helper.SendKey(tea.KeyUp)

	node = helper.GetCurrentNode()
	if node.Path != "/docs" {
		t.Errorf("Expected /docs, got %q", node.Path)
	}

	t.Log("Moving up past the top (should clamp)")
	helper.SendKey(tea.KeyUp)
	helper.SendKey(tea.KeyUp)

	node = helper.GetCurrentNode()
	if node.Path != "/" {
		t.Errorf("Cursor should clamp at /, got %q", node.Path)
	}

	t.Log("✓ Cursor movement and clamping work")
}

// TestHomeEndKeys tests jumping to the first and last rows
func TestHomeEndKeys(t *testing.T) {
	helper := NewTestHelper()
	helper.LoadTree(testVolumeTree())
	helper.SendWindowSize(120, 40)

	helper.SendKey(tea.KeyEnd)
	node := helper.GetCurrentNode()
	if node.Path != "/motd" {
		t.Errorf("End should land on /motd, got %q", node.Path)
	}

	t.Log("Moving down past the bottom (should clamp)")
	helper.SendKey(tea.KeyDown)
	node = helper.GetCurrentNode()
	if node.Path != "/motd" {
		t.Errorf("Cursor should clamp at /motd, got %q", node.Path)
	}

	helper.SendKey(tea.KeyHome)
	node = helper.GetCurrentNode()
	if node.Path != "/" {
		t.Errorf("Home should land on /, got %q", node.Path)
	}

	t.Log("✓ Home/End keys work")
}

// TestExpandCollapseDirectory tests → and ← on a directory
func TestExpandCollapseDirectory(t *testing.T) {
	helper := NewTestHelper()
	helper.LoadTree(testVolumeTree())
	helper.SendWindowSize(120, 40)

	t.Log("Moving to /docs and expanding with →")
	helper.SendKey(tea.KeyDown)
	helper.SendKey(tea.KeyRight)

	if helper.VisibleCount() != 6 {
		t.Errorf("Expected 6 visible rows after expanding /docs, got %d", helper.VisibleCount())
	}

	// /docs/notes stays collapsed, so todo.txt is still hidden
	model := helper.GetModel()
	for _, idx := range model.visibleNodes() {
		if model.nodes[idx].Path == "/docs/notes/todo.txt" {
			t.Error("todo.txt should stay hidden while /docs/notes is collapsed")
		}
	}

	t.Log("Collapsing /docs with ←")
	helper.SendKey(tea.KeyLeft)

	if helper.VisibleCount() != 4 {
		t.Errorf("Expected 4 visible rows after collapsing /docs, got %d", helper.VisibleCount())
	}

	t.Log("✓ Expand/collapse with arrow keys works")
}

// TestEnterTogglesDirectory tests Enter on a directory row
func TestEnterTogglesDirectory(t *testing.T) {
	helper := NewTestHelper()
	helper.LoadTree(testVolumeTree())
	helper.SendWindowSize(120, 40)

	helper.SendKey(tea.KeyDown) // /docs
	helper.SendKey(tea.KeyEnter)

	if helper.VisibleCount() != 6 {
		t.Errorf("Expected 6 visible rows after Enter, got %d", helper.VisibleCount())
	}

	helper.SendKey(tea.KeyEnter)

	if helper.VisibleCount() != 4 {
		t.Errorf("Expected 4 visible rows after second Enter, got %d", helper.VisibleCount())
	}

	node := helper.GetCurrentNode()
	if node.Path != "/docs" {
		t.Errorf("Cursor should stay on /docs, got %q", node.Path)
	}

	t.Log("✓ Enter toggles directory expansion")
}

// TestGoToParent tests the p key and ← on files
func TestGoToParent(t *testing.T) {
	helper := NewTestHelper()
	helper.LoadTree(testVolumeTree())
	helper.SendWindowSize(120, 40)

	// Expand /docs and move onto guide.txt
	helper.SendKey(tea.KeyDown)
	helper.SendKey(tea.KeyRight)
	helper.SendKey(tea.KeyDown)

	node := helper.GetCurrentNode()
	if node.Path != "/docs/guide.txt" {
		t.Fatalf("Setup failed: expected /docs/guide.txt, got %q", node.Path)
	}

	t.Log("Pressing 'p' to go to the parent")
	helper.SendKeyRune('p')

	node = helper.GetCurrentNode()
	if node.Path != "/docs" {
		t.Errorf("Expected /docs after 'p', got %q", node.Path)
	}

	t.Log("Pressing ← on a file (should also go to the parent)")
	helper.SendKey(tea.KeyDown) // back to guide.txt
	helper.SendKey(tea.KeyLeft)

	node = helper.GetCurrentNode()
	if node.Path != "/docs" {
		t.Errorf("Expected /docs after ← on a file, got %q", node.Path)
	}

	t.Log("✓ Go-to-parent works")
}

// TestExpandAllCollapseAll tests the E and C keys
func TestExpandAllCollapseAll(t *testing.T) {
	helper := NewTestHelper()
	helper.LoadTree(testVolumeTree())
	helper.SendWindowSize(120, 40)

	t.Log("Pressing 'E' to expand everything")
	helper.SendKeyRune('E')

	if helper.VisibleCount() != 7 {
		t.Errorf("Expected all 7 rows visible after E, got %d", helper.VisibleCount())
	}

	t.Log("Moving to the bottom, then pressing 'C'")
	helper.SendKey(tea.KeyEnd)
	helper.SendKeyRune('C')

	if helper.VisibleCount() != 4 {
		t.Errorf("Expected 4 rows after C, got %d", helper.VisibleCount())
	}

	node := helper.GetCurrentNode()
	if node == nil || node.Path != "/" {
		t.Errorf("Cursor should reset to / after C, got %v", node)
	}

	t.Log("✓ Expand-all/collapse-all work")
}

// TestRightOnFileFocusesContent tests that → on a file switches panes
func TestRightOnFileFocusesContent(t *testing.T) {
	helper := NewTestHelper()
	helper.LoadTree(testVolumeTree())
	helper.SendWindowSize(120, 40)

	helper.SendKey(tea.KeyEnd) // /motd
	helper.SendKey(tea.KeyRight)

	model := helper.GetModel()
	if model.focusedPane != ContentPane {
		t.Error("→ on a file should focus the content pane")
	}

	t.Log("✓ → on a file focuses the content pane")
}
