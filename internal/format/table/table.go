package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Columns pads cells so every column lines up. Widths are display widths,
// so wide runes and ANSI styling are measured correctly.
type Columns struct {
	Align []Alignment
	// Max caps a column's width; zero means unlimited. Longer cells are
	// truncated with an ellipsis.
	Max []int
	Gap string
}

// Format returns rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	return Columns{Align: alignments}.Render(rows)
}

// Render lays out rows. Rows shorter than the widest row are padded with
// empty cells.
func (c Columns) Render(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	gap := c.Gap
	if gap == "" {
		gap = "  "
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for i, row := range rows {
		cells[i] = make([]string, colCount)
		for col := 0; col < colCount; col++ {
			var cell string
			if col < len(row) {
				cell = c.fit(col, row[col])
			}
			cells[i][col] = cell
			if w := lipgloss.Width(cell); w > widths[col] {
				widths[col] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for col, cell := range row {
			if col > 0 {
				b.WriteString(gap)
			}
			pad := widths[col] - lipgloss.Width(cell)
			last := col == colCount-1
			if c.alignment(col) == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if !last {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		out[i] = b.String()
	}
	return out
}

func (c Columns) alignment(col int) Alignment {
	if col < len(c.Align) {
		return c.Align[col]
	}
	return AlignLeft
}

func (c Columns) fit(col int, cell string) string {
	if col >= len(c.Max) || c.Max[col] <= 0 {
		return cell
	}
	if lipgloss.Width(cell) <= c.Max[col] {
		return cell
	}
	return truncate.StringWithTail(cell, uint(c.Max[col]), "…")
}
