package main

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lemonshark/sharkkit/cmd/sharkexplorer/logger"
	"github.com/lemonshark/sharkkit/image"
	"github.com/lemonshark/sharkkit/ramfs"
)

// Pane represents which pane is focused
type Pane int

const (
	TreePane Pane = iota
	ContentPane
)

// Layout constants
const (
	VolumeInfoPanelHeight  = 6 // Height reserved for volume info below the tree
	VolumeInfoPanelSpacing = 2 // Spacing between tree and volume info
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	FilterMode
)

// Model is the main application model
type Model struct {
	imgPath string
	img     *image.Image
	fs      *ramfs.FS
	info    ramfs.Info
	keys    KeyMap

	// Tree state
	nodes      []treeNode
	cursor     int             // index into visibleNodes()
	treeOffset int             // first visible row shown in the tree pane
	expanded   map[string]bool // dir path -> expanded

	// Content pane state
	viewport    viewport.Model
	content     []byte
	contentPath string
	hexMode     bool

	// File detail modal
	fileDetail FileDetailModel

	focusedPane Pane
	width       int
	height      int

	// Input modes
	inputMode   InputMode
	inputBuffer string // Buffer for filter input

	// Applied filter query
	filter string

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	err error
}

// NewModel creates a new TUI model. The volume is opened read-only and
// stays open until Close.
func NewModel(imgPath string) Model {
	m := Model{
		imgPath:     imgPath,
		keys:        DefaultKeyMap(),
		focusedPane: TreePane,
		inputMode:   NormalMode,
		expanded:    map[string]bool{"/": true},
		viewport:    viewport.New(0, 0),
		fileDetail:  NewFileDetailModel(),
	}

	img, err := image.OpenRead(imgPath)
	if err != nil {
		m.err = err
		return m
	}

	fs, err := ramfs.Mount(img.Device())
	if err != nil {
		img.Close()
		m.err = err
		return m
	}

	m.img = img
	m.fs = fs
	m.info = fs.Info()
	logger.Info("volume mounted",
		"path", imgPath,
		"blocks", m.info.TotalBlocks,
		"free", m.info.FreeBlocks)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.fs == nil {
		return nil
	}
	return m.loadTreeCmd()
}

// Close releases the mapped image. Call when the TUI exits.
func (m *Model) Close() error {
	if m.img == nil {
		return nil
	}
	err := m.img.Close()
	m.img = nil
	m.fs = nil
	return err
}

// loadTreeCmd walks the volume into a fresh node list.
func (m Model) loadTreeCmd() tea.Cmd {
	fs := m.fs
	return func() tea.Msg {
		nodes, err := loadTree(fs)
		if err != nil {
			return errMsg{err}
		}
		return treeLoadedMsg{nodes: nodes}
	}
}

// loadContentCmd reads the file under the cursor for the content pane.
func (m Model) loadContentCmd(path string, ino uint32) tea.Cmd {
	fs := m.fs
	if fs == nil {
		return nil
	}
	return func() tea.Msg {
		data, err := fs.ReadFile(ino)
		if err != nil {
			return errMsg{err}
		}
		return contentLoadedMsg{path: path, data: data}
	}
}

// Messages

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type treeLoadedMsg struct {
	nodes []treeNode
}

type contentLoadedMsg struct {
	path string
	data []byte
}

type clearStatusMsg struct{}
