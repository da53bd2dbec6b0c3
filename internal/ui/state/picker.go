// Package state holds the list-navigation state for the recent-item pickers:
// cursor position, filter query, and viewport offset.
package state

// Picker encapsulates one picker list: the full item set, the filtered view,
// and cursor/viewport positions.
type Picker struct {
	ID             string
	Title          string
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int

	// lastID remembers the selected item while a filter is active.
	lastID string
}

// NewPicker constructs a Picker over the provided items.
func NewPicker(id, title string, items []Item) *Picker {
	p := &Picker{
		ID:         id,
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	p.UpdateItems(items)
	return p
}

// IndexOf returns the index for a given item identifier.
func (p *Picker) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range p.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor, if any.
func (p *Picker) Current() (Item, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return Item{}, false
	}
	return p.Items[p.Cursor], true
}

// UpdateItems refreshes the item set while preserving the viewport when
// possible.
func (p *Picker) UpdateItems(items []Item) {
	prevOffset := p.ViewportOffset
	p.Full = CloneItems(items)
	p.applyFilter()
	if len(p.Items) == 0 {
		p.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(p.Items)-1 {
		p.ViewportOffset = 0
		return
	}
	p.ViewportOffset = prevOffset
}
