package state

// Step returns the id of the row delta rows away from the cursor, clamped to
// the outline, and whether it differs from the current row.
func (o *Outline) Step(delta int) (int64, bool) {
	if len(o.Rows) == 0 {
		return 0, false
	}
	o.clampCursor()
	target := o.Cursor + delta
	if target < 0 {
		target = 0
	}
	if target >= len(o.Rows) {
		target = len(o.Rows) - 1
	}
	return o.Rows[target].ID, target != o.Cursor
}

// Home returns the id of the first row.
func (o *Outline) Home() (int64, bool) {
	if len(o.Rows) == 0 {
		return 0, false
	}
	return o.Rows[0].ID, true
}

// End returns the id of the last row.
func (o *Outline) End() (int64, bool) {
	if len(o.Rows) == 0 {
		return 0, false
	}
	return o.Rows[len(o.Rows)-1].ID, true
}

// PageStep returns the id one page away from the cursor.
func (o *Outline) PageStep(maxVisible int, forward bool) (int64, bool) {
	size := o.pageSize(maxVisible)
	if !forward {
		size = -size
	}
	return o.Step(size)
}

func (o *Outline) pageSize(maxVisible int) int {
	total := len(o.Rows)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (o *Outline) EnsureCursorVisible(maxVisible int) {
	if len(o.Rows) == 0 {
		o.Cursor = 0
		o.ViewportOffset = 0
		return
	}
	o.clampCursor()
	if maxVisible <= 0 {
		o.ViewportOffset = 0
		return
	}
	maxOffset := len(o.Rows) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if o.ViewportOffset > maxOffset {
		o.ViewportOffset = maxOffset
	}
	if o.ViewportOffset < 0 {
		o.ViewportOffset = 0
	}
	if o.Cursor < o.ViewportOffset {
		o.ViewportOffset = o.Cursor
	}
	upper := o.ViewportOffset + maxVisible - 1
	if o.Cursor > upper {
		o.ViewportOffset = o.Cursor - maxVisible + 1
		if o.ViewportOffset < 0 {
			o.ViewportOffset = 0
		}
		if o.ViewportOffset > maxOffset {
			o.ViewportOffset = maxOffset
		}
	}
}
