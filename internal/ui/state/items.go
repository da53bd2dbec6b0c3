package state

// Item is a single row in a picker list. ID is the value the selection
// resolves to; Label is what the list renders.
type Item struct {
	ID    string
	Label string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
