package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// handleInputMode handles keys while typing a filter query. The filter
// is applied live on every keystroke; Enter keeps it, Esc drops it.
func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = NormalMode
		m.inputBuffer = ""
		m.filter = ""
		m.cursor = 0
		m.treeOffset = 0
		return m, nil

	case tea.KeyEnter:
		m.inputMode = NormalMode
		m.filter = m.inputBuffer
		m.inputBuffer = ""
		m.cursor = 0
		m.treeOffset = 0
		if m.filter == "" {
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("%d match(es)", len(m.visibleNodes()))
		return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case tea.KeyBackspace, tea.KeyDelete:
		if len(m.inputBuffer) > 0 {
			m.inputBuffer = m.inputBuffer[:len(m.inputBuffer)-1]
		}
		m.filter = m.inputBuffer
		m.cursor = 0
		m.treeOffset = 0
		return m, nil

	case tea.KeyRunes:
		m.inputBuffer += string(msg.Runes)
		m.filter = m.inputBuffer
		m.cursor = 0
		m.treeOffset = 0
		return m, nil
	}

	return m, nil
}
