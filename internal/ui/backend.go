package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mindmap-tui/internal/backend"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent reloads a clean outline straight away. With unsaved
// edits the change is only flagged so the user decides via reload.
func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt)
	if res.StoreErr != nil {
		m.errMsg = "Watching store failed: " + res.StoreErr.Error()
		return
	}
	if !res.StoreChanged {
		return
	}
	if m.engine.CanSave() {
		m.storeChanged = true
		m.setInfo("Store changed on disk. ctrl+r reloads and discards your edits.")
		return
	}
	m.reload()
	m.setInfo("Store changed on disk. Reloaded.")
}
