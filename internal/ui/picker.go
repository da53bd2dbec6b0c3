package ui

import (
	"unicode"

	"github.com/atomfield/reelcode/internal/logging/events"
	"github.com/atomfield/reelcode/internal/recent"
	uistate "github.com/atomfield/reelcode/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEnterPickerMsg(msg tea.Msg) tea.Cmd {
	enter, ok := msg.(enterPickerMsg)
	if !ok {
		return nil
	}
	m.enterPicker(enter.mode)
	return nil
}

func (m *Model) enterPicker(mode Mode) {
	switch mode {
	case ModeFilePicker:
		// Entries whose files vanished since the last run drop out here.
		files, changed := m.fileList.Trim(m.files)
		m.files = files
		if changed {
			m.store.SetMRUFiles(recent.EncodeFileList(files))
		}
		items := make([]uistate.Item, 0, len(files))
		for _, entry := range files {
			items = append(items, uistate.Item{ID: entry.Path, Label: entry.Path})
		}
		m.filePicker = uistate.NewPicker("files", "Recent Files", items)
		m.filePicker.MoveCursorHome()
	case ModeMediaPicker:
		items := make([]uistate.Item, 0, len(m.mediaItems))
		for _, entry := range m.mediaItems {
			items = append(items, uistate.Item{ID: entry.ID, Label: entry.DisplayName})
		}
		m.mediaPicker = uistate.NewPicker("media", "Recent Media", items)
		m.mediaPicker.MoveCursorHome()
	default:
		return
	}
	m.mode = mode
	m.closeSuggestions()
	m.filterCursorDirty = true
}

func (m *Model) activePicker() *uistate.Picker {
	switch m.mode {
	case ModeFilePicker:
		return m.filePicker
	case ModeMediaPicker:
		return m.mediaPicker
	default:
		return nil
	}
}

func (m *Model) leavePicker() {
	m.mode = ModeInput
	m.filePicker = nil
	m.mediaPicker = nil
	m.filterCursorDirty = true
}

func (m *Model) handlePickerKey(key tea.KeyMsg) tea.Cmd {
	picker := m.activePicker()
	if picker == nil {
		m.leavePicker()
		return nil
	}
	switch key.String() {
	case "ctrl+u":
		if picker.Filter != "" {
			before := picker.FilterCursorPos()
			picker.SetFilter("", 0)
			m.notePickerCursorChange(picker, before)
			events.Filter.Cleared(picker.ID)
			m.syncViewport(picker)
		}
		return nil
	case "ctrl+w":
		before := picker.FilterCursorPos()
		if picker.DeleteFilterWordBackward() {
			m.notePickerCursorChange(picker, before)
			events.Filter.WordBackspace(picker.ID, picker.Filter)
			m.syncViewport(picker)
		}
		return nil
	case "ctrl+a":
		before := picker.FilterCursorPos()
		if picker.MoveFilterCursorStart() {
			m.notePickerCursorChange(picker, before)
			events.Filter.Cursor(picker.ID, picker.FilterCursor)
		}
		return nil
	case "ctrl+e":
		before := picker.FilterCursorPos()
		if picker.MoveFilterCursorEnd() {
			m.notePickerCursorChange(picker, before)
			events.Filter.Cursor(picker.ID, picker.FilterCursor)
		}
		return nil
	}
	switch key.Type {
	case tea.KeyEscape:
		m.leavePicker()
		return nil
	case tea.KeyEnter:
		return m.selectPickerItem(picker)
	case tea.KeyUp:
		if picker.MoveCursorUp() {
			events.UI.PickerCursor(picker.ID, picker.Cursor)
		}
		m.syncViewport(picker)
		return nil
	case tea.KeyDown:
		if picker.MoveCursorDown() {
			events.UI.PickerCursor(picker.ID, picker.Cursor)
		}
		m.syncViewport(picker)
		return nil
	case tea.KeyPgUp:
		picker.MoveCursorPageUp(m.maxVisibleItems())
		m.syncViewport(picker)
		return nil
	case tea.KeyPgDown:
		picker.MoveCursorPageDown(m.maxVisibleItems())
		m.syncViewport(picker)
		return nil
	case tea.KeyHome:
		picker.MoveCursorHome()
		m.syncViewport(picker)
		return nil
	case tea.KeyEnd:
		picker.MoveCursorEnd()
		m.syncViewport(picker)
		return nil
	case tea.KeyLeft:
		before := picker.FilterCursorPos()
		if picker.MoveFilterCursorRuneBackward() {
			m.notePickerCursorChange(picker, before)
			events.Filter.Cursor(picker.ID, picker.FilterCursor)
		}
		return nil
	case tea.KeyRight:
		before := picker.FilterCursorPos()
		if picker.MoveFilterCursorRuneForward() {
			m.notePickerCursorChange(picker, before)
			events.Filter.Cursor(picker.ID, picker.FilterCursor)
		}
		return nil
	case tea.KeyBackspace, tea.KeyCtrlH:
		before := picker.FilterCursorPos()
		if picker.DeleteFilterRuneBackward() {
			m.notePickerCursorChange(picker, before)
			events.Filter.Backspace(picker.ID, picker.Filter)
			m.syncViewport(picker)
		}
		return nil
	case tea.KeySpace:
		m.appendPickerFilter(picker, " ")
		return nil
	case tea.KeyRunes:
		if key.Alt || len(key.Runes) == 0 {
			return nil
		}
		for _, r := range key.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		m.appendPickerFilter(picker, string(key.Runes))
		return nil
	}
	return nil
}

func (m *Model) appendPickerFilter(picker *uistate.Picker, text string) {
	before := picker.FilterCursorPos()
	if !picker.InsertFilterText(text) {
		return
	}
	m.notePickerCursorChange(picker, before)
	events.Filter.Append(picker.ID, picker.Filter)
	m.syncViewport(picker)
}

func (m *Model) selectPickerItem(picker *uistate.Picker) tea.Cmd {
	item, ok := picker.Current()
	if !ok {
		return nil
	}
	events.UI.PickerEnter(picker.ID, item.ID, item.Label, picker.Filter)
	mode := m.mode
	m.leavePicker()
	switch mode {
	case ModeFilePicker:
		return loadFileCmd(item.ID)
	case ModeMediaPicker:
		m.loadMediaInput(item.ID)
	}
	return nil
}

func (m *Model) notePickerCursorChange(picker *uistate.Picker, before int) {
	if picker == nil {
		return
	}
	if before != picker.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

func (m *Model) syncViewport(picker *uistate.Picker) {
	if picker == nil {
		return
	}
	picker.EnsureCursorVisible(m.maxVisibleItems())
}
