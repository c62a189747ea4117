package ui

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mindmap-tui/internal/logging"
	"github.com/atomicstack/mindmap-tui/internal/logging/events"
	"github.com/atomicstack/mindmap-tui/internal/tree"
	"github.com/atomicstack/mindmap-tui/internal/ui/command"
	uistate "github.com/atomicstack/mindmap-tui/internal/ui/state"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(keyMsg.String(), m.activeID())
	if !key.Matches(keyMsg, m.keys.Quit) {
		m.quitArmed = false
	}
	m.errMsg = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.outline.EnsureCursorVisible(m.maxVisibleRows())
	case key.Matches(keyMsg, m.keys.Left):
		m.activateDirection(tree.Left)
	case key.Matches(keyMsg, m.keys.Right):
		m.activateDirection(tree.Right)
	case key.Matches(keyMsg, m.keys.Up):
		m.activateDirection(tree.Up)
	case key.Matches(keyMsg, m.keys.Down):
		m.activateDirection(tree.Down)
	case key.Matches(keyMsg, m.keys.Next):
		m.stepRow(1)
	case key.Matches(keyMsg, m.keys.Prev):
		m.stepRow(-1)
	case key.Matches(keyMsg, m.keys.Home):
		if id, ok := m.outline.Home(); ok {
			m.selectRow(id)
		}
	case key.Matches(keyMsg, m.keys.End):
		if id, ok := m.outline.End(); ok {
			m.selectRow(id)
		}
	case key.Matches(keyMsg, m.keys.PageUp):
		if id, ok := m.outline.PageStep(m.maxVisibleRows(), false); ok {
			m.selectRow(id)
		}
	case key.Matches(keyMsg, m.keys.PageDown):
		if id, ok := m.outline.PageStep(m.maxVisibleRows(), true); ok {
			m.selectRow(id)
		}
	case key.Matches(keyMsg, m.keys.Child):
		if active := m.requireActive("add a child"); active != nil {
			m.engine.CreateChild(active)
		}
	case key.Matches(keyMsg, m.keys.Sibling):
		if active := m.requireActive("add a sibling"); active != nil {
			m.engine.CreateSibling(active)
		}
	case key.Matches(keyMsg, m.keys.TopLevel):
		m.engine.CreateChild(nil)
	case key.Matches(keyMsg, m.keys.Remove):
		m.removeActive()
	case key.Matches(keyMsg, m.keys.Edit):
		if active := m.requireActive("edit"); active != nil {
			m.startLabelForm(active)
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if active := m.requireActive("fold"); active != nil {
			m.engine.ToggleCollapsed(active)
		}
	case key.Matches(keyMsg, m.keys.ToggleChildren):
		if active := m.requireActive("fold children"); active != nil {
			m.toggleChildren(active)
		}
	case key.Matches(keyMsg, m.keys.Save):
		m.save()
	case key.Matches(keyMsg, m.keys.Reload):
		m.reload()
	case key.Matches(keyMsg, m.keys.Search):
		m.startSearchForm()
	case key.Matches(keyMsg, m.keys.Copy):
		if active := m.requireActive("copy"); active != nil {
			return m.bus.Execute(command.Request{
				ID:      "copy",
				Label:   active.Label,
				Handler: command.CopyText(m.clipboard, active.Label),
			})
		}
	case key.Matches(keyMsg, m.keys.Export):
		return m.export()
	case key.Matches(keyMsg, m.keys.Clear):
		m.engine.SetActive(nil)
	}
	return nil
}

func (m *Model) handleQuit() tea.Cmd {
	if !m.engine.CanSave() || m.quitArmed {
		events.App.Stop(m.engine.CanSave())
		return tea.Quit
	}
	m.quitArmed = true
	m.setInfo("Unsaved changes. Press q again to quit, ctrl+s to save.")
	return nil
}

func (m *Model) requireActive(action string) *tree.Node {
	active := m.engine.Active()
	if active == nil {
		m.setInfo(fmt.Sprintf("Select a node to %s.", action))
	}
	return active
}

func (m *Model) activateDirection(d tree.Direction) {
	if m.engine.Active() == nil {
		// nothing selected: arrows pick the row under the cursor
		if row, ok := m.outline.Current(); ok {
			m.selectRow(row.ID)
		}
		return
	}
	m.engine.ActivateDirection(d)
}

func (m *Model) stepRow(delta int) {
	if m.engine.Active() == nil {
		if row, ok := m.outline.Current(); ok {
			m.selectRow(row.ID)
		}
		return
	}
	if id, moved := m.outline.Step(delta); moved {
		m.selectRow(id)
	}
}

func (m *Model) selectRow(id int64) {
	n := m.engine.Find(id)
	if n == nil {
		return
	}
	m.engine.SetActive(n)
	events.UI.Cursor(m.outline.IndexOf(id), id)
}

func (m *Model) removeActive() {
	active := m.requireActive("remove")
	if active == nil {
		return
	}
	if !m.engine.RemoveNode(active) {
		m.setInfo("The last top-level node cannot be removed.")
		return
	}
	delete(m.childrenFolded, active.ID)
}

// toggleChildren flips the fold state of the direct children, remembering
// the last choice per node.
func (m *Model) toggleChildren(n *tree.Node) {
	next := !m.childrenFolded[n.ID]
	m.childrenFolded[n.ID] = next
	m.engine.SetChildrenCollapsed(n, next)
}

func (m *Model) startLabelForm(n *tree.Node) {
	m.labelForm = newLabelForm(n.ID, n.Label, m.engine.Placeholder())
	m.mode = ModeEdit
}

func (m *Model) handleLabelForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.labelForm == nil {
		m.mode = ModeOutline
		return false, nil
	}
	cmd, done, cancel := m.labelForm.Update(msg)
	if cancel {
		m.labelForm = nil
		m.mode = ModeOutline
		return true, cmd
	}
	if done {
		target := m.engine.Find(m.labelForm.Target())
		value := m.labelForm.Value()
		m.labelForm = nil
		m.mode = ModeOutline
		if target == nil {
			m.errMsg = "The node being edited no longer exists."
			return true, cmd
		}
		m.engine.SetLabel(target, value)
		return true, cmd
	}
	return true, cmd
}

func (m *Model) startSearchForm() {
	m.searchForm = newSearchForm(func(query string) []uistate.Match {
		return uistate.Search(m.engine, query)
	})
	m.mode = ModeSearch
}

func (m *Model) handleSearchForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.searchForm == nil {
		m.mode = ModeOutline
		return false, nil
	}
	cmd, done, cancel := m.searchForm.Update(msg)
	if cancel {
		m.searchForm = nil
		m.mode = ModeOutline
		return true, cmd
	}
	if done {
		match, _ := m.searchForm.Selected()
		query := m.searchForm.Query()
		m.searchForm = nil
		m.mode = ModeOutline
		if n := m.engine.Find(match.ID); n != nil {
			events.Search.Jump(query, n.ID)
			m.engine.Reveal(n)
		}
		return true, cmd
	}
	return true, cmd
}

func (m *Model) save() {
	if !m.engine.CanSave() {
		m.setInfo("Nothing to save.")
		return
	}
	if m.backend != nil {
		m.backend.Ignore(m.saveGrace)
	}
	if err := m.engine.Save(m.ctx); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.storeChanged = false
	if m.verbose {
		m.setInfo("Saved.")
	}
}

func (m *Model) reload() {
	m.engine.Load(m.ctx)
	m.storeChanged = false
	m.childrenFolded = make(map[int64]bool)
	m.setInfo("Reloaded from store.")
}

func (m *Model) export() tea.Cmd {
	var buf bytes.Buffer
	if err := m.engine.ExportMarkdown(&buf); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return nil
	}
	return m.bus.Execute(command.Request{
		ID:      "export",
		Label:   m.exportPath,
		Handler: command.WriteFile(m.exportPath, buf.Bytes()),
	})
}
