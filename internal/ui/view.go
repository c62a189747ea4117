package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/mindmap-tui/internal/format/table"
	uistate "github.com/atomicstack/mindmap-tui/internal/ui/state"
)

const (
	// header and toolbar sit above the first row
	rowsTop = 2

	markerCollapsed = "▸"
	markerExpanded  = "▾"
	markerLeaf      = "•"
	activeIndicator = "›"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	// raw lines are already styled and only need ANSI-aware truncation
	raw bool
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.headerText(), raw: true})
	lines = append(lines, styledLine{text: m.toolbarText(), raw: true})

	rows, start := m.outline.Visible(m.maxVisibleRows())
	for i, row := range rows {
		lines = append(lines, m.rowLine(row, start+i == m.outline.Cursor))
	}

	switch m.mode {
	case ModeEdit:
		if m.labelForm != nil {
			lines = append(lines, styledLine{})
			lines = append(lines, styledLine{text: m.promptText(m.labelForm.Title()+": ", m.labelForm.InputView()), raw: true})
			lines = append(lines, styledLine{text: m.labelForm.Help(), style: styles.Footer})
		}
	case ModeSearch:
		if m.searchForm != nil {
			lines = append(lines, styledLine{})
			lines = append(lines, styledLine{text: m.promptText("/", m.searchForm.InputView()), raw: true})
			status := m.searchForm.Status()
			if status == "" {
				status = m.searchForm.Help()
			}
			lines = append(lines, styledLine{text: status, style: styles.Match})
			lines = append(lines, m.searchCandidates()...)
		}
	}

	if status, style := m.statusLine(); status != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: status, style: style})
	}
	if m.showFooter && m.mode == ModeOutline {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.help.View(m.keys), raw: true})
	}
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) headerText() string {
	title := render(styles.Header, fmt.Sprintf("mindmap · %s", m.engine.Key()))
	if m.engine.CanSave() {
		title += render(styles.Dirty, " [modified]")
	}
	if m.storeChanged {
		title += render(styles.Error, " (changed on disk)")
	}
	return title
}

// toolbarText renders the navigation and save buttons, dimmed when the
// matching capability is off.
func (m *Model) toolbarText() string {
	caps := m.engine.Capabilities()
	button := func(label string, enabled bool) string {
		style := styles.ToolbarDisabled
		if enabled {
			style = styles.ToolbarEnabled
		}
		if style == nil {
			return label
		}
		return style.Render(label)
	}
	parts := []string{
		button("←", caps.Left),
		button("↑", caps.Up),
		button("↓", caps.Down),
		button("→", caps.Right),
		button("save", caps.Save),
	}
	return strings.Join(parts, " ")
}

func (m *Model) rowLine(row uistate.Row, cursor bool) styledLine {
	indicator := " "
	if row.Active {
		indicator = activeIndicator
	}
	marker := markerLeaf
	if row.HasChildren {
		marker = markerExpanded
		if row.Collapsed {
			marker = markerCollapsed
		}
	}
	guide := indicator + strings.Repeat("  ", row.Depth) + marker + " "

	label := row.Label
	labelStyle := styles.Row
	guideStyle := styles.RowGuide
	if label == m.engine.Placeholder() || strings.TrimSpace(label) == "" {
		if strings.TrimSpace(label) == "" {
			label = "(empty)"
		}
		labelStyle = styles.Placeholder
	}
	if row.Active {
		labelStyle = styles.ActiveRow
		guideStyle = styles.ActiveGuide
	} else if cursor && m.engine.Active() == nil {
		guideStyle = styles.ActiveGuide
	}
	label = m.fitLabel(label, lipgloss.Width(guide))
	return styledLine{text: render(guideStyle, guide) + render(labelStyle, label), raw: true}
}

func (m *Model) fitLabel(label string, used int) string {
	if m.width <= 0 {
		return label
	}
	room := m.width - used
	if room < 1 {
		return ""
	}
	if lipgloss.Width(label) <= room {
		return label
	}
	return truncate.StringWithTail(label, uint(room), "…")
}

// searchCandidates lists the nearest matches with their ancestor paths in
// aligned columns.
func (m *Model) searchCandidates() []styledLine {
	window, selected := m.searchForm.Window(searchListLimit)
	if len(window) == 0 {
		return nil
	}
	rows := make([][]string, len(window))
	for i, match := range window {
		marker := " "
		if i == selected {
			marker = activeIndicator
		}
		rows[i] = []string{marker, match.Label, match.Path}
	}
	labelMax := 0
	if m.width > 0 {
		labelMax = m.width / 2
	}
	cols := table.Columns{Max: []int{0, labelMax}}
	out := make([]styledLine, len(rows))
	for i, text := range cols.Render(rows) {
		style := styles.Info
		if i == selected {
			style = styles.Match
		}
		out[i] = styledLine{text: text, style: style}
	}
	return out
}

func (m *Model) promptText(prompt, input string) string {
	return render(styles.Prompt, prompt) + input
}

func (m *Model) statusLine() (string, *lipgloss.Style) {
	if m.errMsg != "" {
		return fmt.Sprintf("Error: %s", m.errMsg), styles.Error
	}
	if info := m.currentInfo(); info != "" {
		return info, styles.Info
	}
	return "", nil
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.outline.EnsureCursorVisible(m.maxVisibleRows())
	return nil
}

// handleMouseMsg selects the clicked row; a second click on the same row
// edits it and a click below the rows clears the selection.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	if ev.Y < rowsTop {
		return nil
	}
	rows, _ := m.outline.Visible(m.maxVisibleRows())
	idx := ev.Y - rowsTop
	if idx >= len(rows) {
		m.engine.SetActive(nil)
		return nil
	}
	id := rows[idx].ID
	now := time.Now()
	double := id == m.lastClickID && now.Sub(m.lastClickAt) <= doubleClickGap
	m.lastClickID, m.lastClickAt = id, now
	m.selectRow(id)
	if double {
		if n := m.engine.Find(id); n != nil {
			m.startLabelForm(n)
		}
	}
	return nil
}

func (m *Model) maxVisibleRows() int {
	if m.height <= 0 {
		return -1
	}
	used := rowsTop
	if m.mode != ModeOutline {
		used += 3
	}
	if m.mode == ModeSearch && m.searchForm != nil {
		window, _ := m.searchForm.Window(searchListLimit)
		used += len(window)
	}
	if m.errMsg != "" || m.infoMsg != "" {
		used += 2
	}
	if m.showFooter && m.mode == ModeOutline {
		used += 1 + lipgloss.Height(m.help.View(m.keys))
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoLifetime)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw {
			out[i] = line.text
			continue
		}
		out[i] = render(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
