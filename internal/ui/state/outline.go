package state

import (
	"github.com/atomicstack/mindmap-tui/internal/tree"
)

// Row is one visible line of the outline.
type Row struct {
	ID          int64
	Label       string
	Depth       int
	Collapsed   bool
	HasChildren bool
	Active      bool
}

// Outline holds the flattened visible tree together with cursor and
// viewport state.
type Outline struct {
	Rows           []Row
	Cursor         int
	ViewportOffset int
}

// NewOutline returns an empty outline with the cursor on the first row.
func NewOutline() *Outline {
	return &Outline{}
}

// Flatten lists the nodes reachable without crossing a collapsed node, in
// depth-first order.
func Flatten(e *tree.Engine) []Row {
	rows := make([]Row, 0, e.Len())
	return appendRows(rows, e.Roots(), 0)
}

func appendRows(rows []Row, nodes []*tree.Node, depth int) []Row {
	for _, n := range nodes {
		rows = append(rows, Row{
			ID:          n.ID,
			Label:       n.Label,
			Depth:       depth,
			Collapsed:   n.Collapsed,
			HasChildren: n.HasChildren(),
			Active:      n.Active,
		})
		if !n.Collapsed {
			rows = appendRows(rows, n.Children, depth+1)
		}
	}
	return rows
}

// Rebuild replaces the rows from the engine. The cursor follows the active
// node when there is one and otherwise keeps its position.
func (o *Outline) Rebuild(e *tree.Engine) {
	o.Rows = Flatten(e)
	if active := e.Active(); active != nil {
		if idx := o.IndexOf(active.ID); idx >= 0 {
			o.Cursor = idx
			return
		}
	}
	o.clampCursor()
}

// IndexOf returns the row index for id, or -1.
func (o *Outline) IndexOf(id int64) int {
	for i, row := range o.Rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the row under the cursor.
func (o *Outline) Current() (Row, bool) {
	if o.Cursor < 0 || o.Cursor >= len(o.Rows) {
		return Row{}, false
	}
	return o.Rows[o.Cursor], true
}

// IDs lists the ids of every row.
func (o *Outline) IDs() []int64 {
	ids := make([]int64, len(o.Rows))
	for i, row := range o.Rows {
		ids[i] = row.ID
	}
	return ids
}

// Visible returns the rows inside the viewport and the index of the first.
func (o *Outline) Visible(maxVisible int) ([]Row, int) {
	o.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(o.Rows) <= maxVisible {
		return o.Rows, 0
	}
	start := o.ViewportOffset
	return o.Rows[start : start+maxVisible], start
}

func (o *Outline) clampCursor() {
	if o.Cursor >= len(o.Rows) {
		o.Cursor = len(o.Rows) - 1
	}
	if o.Cursor < 0 {
		o.Cursor = 0
	}
}
