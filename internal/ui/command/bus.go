package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mindmap-tui/internal/logging/events"
)

// Action performs side-effecting work off the UI goroutine and reports a
// short status line.
type Action func() (info string, err error)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Action
}

// Result is delivered back to the model once an action finishes.
type Result struct {
	ID   string
	Info string
	Err  error
}

// Bus coordinates the execution of UI actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		info, err := req.Handler()
		if err == nil && info == "" {
			events.Command.NoOp(req.ID, req.Label)
		}
		res := Result{ID: req.ID, Info: info, Err: err}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", res))
		return res
	}
}
