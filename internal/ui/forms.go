package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/mindmap-tui/internal/logging/events"
	uistate "github.com/atomicstack/mindmap-tui/internal/ui/state"
)

const (
	labelCharLimit  = 256
	searchListLimit = 5
)

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = labelCharLimit
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.Input != nil {
		ti.TextStyle = *styles.Input
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = *styles.Placeholder
	}
	ti.Focus()
	return ti
}

// labelForm edits the label of one node.
type labelForm struct {
	input   textinput.Model
	target  int64
	initial string
}

func newLabelForm(id int64, label, placeholder string) *labelForm {
	ti := newInput("label")
	// a node still carrying the placeholder starts empty
	if label != placeholder {
		ti.SetValue(label)
		ti.CursorEnd()
	}
	events.Edit.Start(id, label)
	return &labelForm{input: ti, target: id, initial: strings.TrimSpace(ti.Value())}
}

func (f *labelForm) Target() int64     { return f.target }
func (f *labelForm) Title() string     { return "Edit label" }
func (f *labelForm) Help() string      { return "Enter to save. Esc to cancel." }
func (f *labelForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *labelForm) InputView() string { return f.input.View() }

// Update returns done when the label should be applied and cancel when the
// form should close without changes.
func (f *labelForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
			}
			return nil, false, false
		}
		switch m.Type {
		case tea.KeyEsc:
			events.Edit.Cancel(f.target, events.EditReasonEscape)
			return nil, false, true
		case tea.KeyEnter:
			if f.Value() == f.initial {
				events.Edit.Cancel(f.target, events.EditReasonUnchanged)
				return nil, false, true
			}
			events.Edit.Submit(f.target, f.Value())
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

// searchForm runs a fuzzy query over every node as the user types.
type searchForm struct {
	input    textinput.Model
	matches  []uistate.Match
	selected int
	search   func(query string) []uistate.Match
}

func newSearchForm(search func(string) []uistate.Match) *searchForm {
	return &searchForm{input: newInput("search labels"), search: search}
}

func (f *searchForm) Query() string     { return strings.TrimSpace(f.input.Value()) }
func (f *searchForm) InputView() string { return f.input.View() }

func (f *searchForm) Help() string { return "Enter to jump. ↑/↓ pick match. Esc to cancel." }

// Selected returns the highlighted match.
func (f *searchForm) Selected() (uistate.Match, bool) {
	if f.selected < 0 || f.selected >= len(f.matches) {
		return uistate.Match{}, false
	}
	return f.matches[f.selected], true
}

// Window returns at most limit matches containing the selection, and the
// selection's index within them.
func (f *searchForm) Window(limit int) ([]uistate.Match, int) {
	if len(f.matches) == 0 || limit <= 0 {
		return nil, -1
	}
	start := 0
	if f.selected >= limit {
		start = f.selected - limit + 1
	}
	end := start + limit
	if end > len(f.matches) {
		end = len(f.matches)
	}
	return f.matches[start:end], f.selected - start
}

// Status describes the current match for the prompt line.
func (f *searchForm) Status() string {
	if f.Query() == "" {
		return ""
	}
	match, ok := f.Selected()
	if !ok {
		return fmt.Sprintf("No matches for %q", f.Query())
	}
	return fmt.Sprintf("%d/%d  %s", f.selected+1, len(f.matches), match.Label)
}

func (f *searchForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.Type {
		case tea.KeyEsc:
			return nil, false, true
		case tea.KeyEnter:
			if _, ok := f.Selected(); !ok {
				return nil, false, true
			}
			return nil, true, false
		case tea.KeyUp, tea.KeyShiftTab:
			if len(f.matches) > 0 {
				f.selected = (f.selected - 1 + len(f.matches)) % len(f.matches)
			}
			return nil, false, false
		case tea.KeyDown, tea.KeyTab:
			if len(f.matches) > 0 {
				f.selected = (f.selected + 1) % len(f.matches)
			}
			return nil, false, false
		}
	}
	before := f.input.Value()
	updated, cmd := f.input.Update(msg)
	f.input = updated
	if f.input.Value() != before {
		f.refresh()
	}
	return cmd, false, false
}

func (f *searchForm) refresh() {
	f.selected = 0
	f.matches = nil
	if f.search == nil {
		return
	}
	f.matches = f.search(f.Query())
	events.Search.Query(f.Query(), len(f.matches))
}
