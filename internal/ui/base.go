package ui

// Base carries the focus and size state shared by every screen widget.
// Embed it in a widget model:
//
//	type Model struct {
//	    ui.Base
//	    posts  []booru.Post
//	    cursor cursor.Cursor
//	}
type Base struct {
	width, height int
	focused       bool
}

// SetFocused marks the widget as the key-input target.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused reports whether the widget receives key input.
func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize records the cell area the widget may draw into.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the widget width in cells.
func (b Base) Width() int {
	return b.width
}

// Height returns the widget height in cells.
func (b Base) Height() int {
	return b.height
}

// ListHeight returns the rows left for list entries after the panel
// border, header and separator are subtracted.
func (b Base) ListHeight(overhead int) int {
	return b.height - overhead
}
