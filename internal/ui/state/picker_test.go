package state

import (
	"reflect"
	"testing"
)

func newTestPicker(ids ...string) *Picker {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Label: id}
	}
	return NewPicker("test", "Test", items)
}

func TestMoveCursorHomeAndEnd(t *testing.T) {
	p := newTestPicker("a", "b", "c")
	p.Cursor = 2
	if !p.MoveCursorHome() {
		t.Fatalf("expected move when items exist")
	}
	if p.Cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", p.Cursor)
	}
	if !p.MoveCursorEnd() {
		t.Fatalf("expected movement to end")
	}
	if p.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", p.Cursor)
	}

	empty := newTestPicker()
	empty.Cursor = 5
	if empty.MoveCursorHome() {
		t.Fatalf("expected no movement for empty picker")
	}
	if empty.Cursor != 0 {
		t.Fatalf("expected cursor reset to 0, got %d", empty.Cursor)
	}
}

func TestMoveCursorStepAndPage(t *testing.T) {
	p := newTestPicker("a", "b", "c", "d", "e")
	p.Cursor = 0
	if !p.MoveCursorDown() {
		t.Fatalf("expected step down")
	}
	if p.Cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", p.Cursor)
	}
	if !p.MoveCursorUp() {
		t.Fatalf("expected step up")
	}
	if p.MoveCursorUp() {
		t.Fatalf("expected no movement past start")
	}
	if !p.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on page down")
	}
	if p.Cursor != 2 {
		t.Fatalf("expected cursor 2, got %d", p.Cursor)
	}
	if !p.MoveCursorPageDown(2) {
		t.Fatalf("expected movement on second page down")
	}
	if p.Cursor != 4 {
		t.Fatalf("expected cursor 4, got %d", p.Cursor)
	}
	if p.MoveCursorPageDown(2) {
		t.Fatalf("expected no further movement past end")
	}
	if !p.MoveCursorPageUp(10) {
		t.Fatalf("expected movement back to start")
	}
	if p.Cursor != 0 {
		t.Fatalf("expected cursor at start, got %d", p.Cursor)
	}
}

func TestEnsureCursorVisibleAdjustsViewport(t *testing.T) {
	p := newTestPicker("a", "b", "c", "d", "e")
	p.Cursor = 4
	p.ViewportOffset = 0
	p.EnsureCursorVisible(2)
	if p.ViewportOffset != 3 {
		t.Fatalf("expected offset 3, got %d", p.ViewportOffset)
	}

	p.Cursor = -1
	p.EnsureCursorVisible(2)
	if p.Cursor != 0 {
		t.Fatalf("expected cursor normalized to 0, got %d", p.Cursor)
	}

	p.ViewportOffset = 4
	p.EnsureCursorVisible(0)
	if p.ViewportOffset != 0 {
		t.Fatalf("expected offset reset when maxVisible <= 0, got %d", p.ViewportOffset)
	}

	p.ViewportOffset = 4
	p.Cursor = 1
	p.EnsureCursorVisible(3)
	if p.ViewportOffset != 1 {
		t.Fatalf("expected offset aligned with cursor, got %d", p.ViewportOffset)
	}
}

func TestSetFilterTracksCursorAndRestoresPosition(t *testing.T) {
	p := newTestPicker("one", "two", "three")
	p.Cursor = 2
	p.SetFilter("two", len("two"))

	if p.Filter != "two" {
		t.Fatalf("expected filter persisted, got %q", p.Filter)
	}
	if p.FilterCursor != len("two") {
		t.Fatalf("expected cursor at end, got %d", p.FilterCursor)
	}
	if p.Cursor != 0 {
		t.Fatalf("expected filtered cursor at 0, got %d", p.Cursor)
	}
	if len(p.Items) != 1 || p.Items[0].ID != "two" {
		t.Fatalf("expected filtered items to contain only 'two', got %#v", p.Items)
	}

	p.SetFilter("", 0)
	if p.Cursor != 2 {
		t.Fatalf("expected cursor restored to 2, got %d", p.Cursor)
	}
	if p.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", p.LastCursor)
	}
}

func TestClearFilterFollowsItemWhenListShifts(t *testing.T) {
	p := newTestPicker("a", "b", "c")
	p.Cursor = 2
	p.SetFilter("b", 1)
	p.UpdateItems([]Item{
		{ID: "new", Label: "new"},
		{ID: "a", Label: "a"},
		{ID: "b", Label: "b"},
		{ID: "c", Label: "c"},
	})

	p.SetFilter("", 0)
	if p.Cursor != 3 {
		t.Fatalf("expected cursor to follow item c to index 3, got %d", p.Cursor)
	}
	if p.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", p.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	p := newTestPicker("alpha")

	if !p.InsertFilterText("ab") {
		t.Fatal("expected insert to succeed")
	}
	if p.Filter != "ab" || p.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", p.Filter, p.FilterCursor)
	}

	p.FilterCursor = 1
	if !p.InsertFilterText("z") {
		t.Fatal("expected insert in middle to succeed")
	}
	if p.Filter != "azb" {
		t.Fatalf("expected insert into middle, got %q", p.Filter)
	}
	if p.FilterCursor != 2 {
		t.Fatalf("expected cursor 2 after insert, got %d", p.FilterCursor)
	}

	if !p.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion to succeed")
	}
	if p.Filter != "ab" || p.FilterCursor != 1 {
		t.Fatalf("unexpected filter state after delete %q/%d", p.Filter, p.FilterCursor)
	}

	p.SetFilter("abc def", len("abc def"))
	if !p.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion to succeed")
	}
	if p.Filter != "abc " {
		t.Fatalf("expected trailing word removed, got %q", p.Filter)
	}

	p.SetFilter("abc", 0)
	if p.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
}

func TestFilterCursorNavigation(t *testing.T) {
	p := newTestPicker("one", "two")
	p.SetFilter("one", len("one"))

	if !p.MoveFilterCursorRuneBackward() {
		t.Fatal("expected rune backward movement")
	}
	if p.FilterCursor != len("one")-1 {
		t.Fatalf("expected cursor len-1, got %d", p.FilterCursor)
	}
	if !p.MoveFilterCursorRuneForward() {
		t.Fatal("expected rune forward movement")
	}
	if p.FilterCursor != len("one") {
		t.Fatalf("expected cursor at end, got %d", p.FilterCursor)
	}
	if !p.MoveFilterCursorStart() {
		t.Fatal("expected move to start")
	}
	if p.FilterCursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", p.FilterCursor)
	}
	if !p.MoveFilterCursorEnd() {
		t.Fatal("expected move back to end")
	}
}

func TestFilterItemsAndClone(t *testing.T) {
	items := []Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	filtered := FilterItems(items, "alp")
	if len(filtered) != 1 || filtered[0].Label != "Alpha" {
		t.Fatalf("unexpected filtered results %#v", filtered)
	}
	filtered = FilterItems(items, "ta")
	if len(filtered) != 1 || filtered[0].Label != "Beta" {
		t.Fatalf("expected contains match for Beta, got %#v", filtered)
	}

	clone := CloneItems(items)
	if &clone[0] == &items[0] {
		t.Fatal("expected clone to allocate new backing array")
	}

	filtered[0].Label = "changed"
	if items[1].Label != "Beta" {
		t.Fatal("expected original slice to remain unchanged")
	}

	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []Item{
		{ID: "/tmp/first.js", Label: "first.js"},
		{ID: "/tmp/second.js", Label: "second.js"},
		{ID: "/tmp/third.js", Label: "third.js"},
	}

	if idx := BestMatchIndex(items, "second.js"); idx != 1 {
		t.Fatalf("expected exact label match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "/tmp/second.js"); idx != 1 {
		t.Fatalf("expected ID match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}

func TestSetFilterSelectsFuzzyMatch(t *testing.T) {
	items := []Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	p := NewPicker("id", "title", items)
	p.SetFilter("alp", 3)
	if p.Cursor != 0 {
		t.Fatalf("expected fuzzy match to select first item, got %d", p.Cursor)
	}
	if !reflect.DeepEqual(p.Items, []Item{{ID: "1", Label: "Alpha"}}) {
		t.Fatalf("expected filtered items to contain Alpha, got %#v", p.Items)
	}
}
