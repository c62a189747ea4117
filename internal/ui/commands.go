package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mindmap-tui/internal/logging"
	"github.com/atomicstack/mindmap-tui/internal/logging/events"
	"github.com/atomicstack/mindmap-tui/internal/ui/command"
)

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		logging.Error(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	m.setInfo(result.Info)
	events.Action.Success(result.Info)
	return nil
}
