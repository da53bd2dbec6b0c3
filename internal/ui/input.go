package ui

import (
	"unicode"

	"github.com/atomfield/reelcode/internal/logging/events"
	"github.com/atomfield/reelcode/internal/palette"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.String() == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case ModeFilePicker, ModeMediaPicker:
		return m.handlePickerKey(key)
	default:
		return m.handleInputKey(key)
	}
}

func (m *Model) handleInputKey(key tea.KeyMsg) tea.Cmd {
	m.emitActivity()
	switch key.String() {
	case "ctrl+u":
		m.clearInput()
		m.errMsg = ""
		return nil
	case "ctrl+w":
		m.deleteWordBackward()
		return nil
	case "ctrl+a":
		m.moveCaret(0)
		return nil
	case "ctrl+e":
		m.moveCaret(len(m.input))
		return nil
	}
	switch key.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyEscape:
		if m.suggestOpen {
			m.closeSuggestions()
			return nil
		}
		m.clearInput()
		m.errMsg = ""
		return nil
	case tea.KeyTab:
		m.acceptSuggestion()
		return nil
	case tea.KeyUp:
		m.moveSuggestion(-1)
		return nil
	case tea.KeyDown:
		m.moveSuggestion(1)
		return nil
	case tea.KeyLeft:
		m.moveCaret(m.caret - 1)
		return nil
	case tea.KeyRight:
		m.moveCaret(m.caret + 1)
		return nil
	case tea.KeyHome:
		m.moveCaret(0)
		return nil
	case tea.KeyEnd:
		m.moveCaret(len(m.input))
		return nil
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.deleteRuneBackward()
		return nil
	case tea.KeySpace:
		m.insertText(" ")
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
		m.insertText(string(key.Runes))
		return nil
	}
	return nil
}

func (m *Model) insertText(text string) {
	insert := []rune(text)
	if len(insert) == 0 {
		return
	}
	updated := make([]rune, 0, len(m.input)+len(insert))
	updated = append(updated, m.input[:m.caret]...)
	updated = append(updated, insert...)
	updated = append(updated, m.input[m.caret:]...)
	m.input = updated
	m.caret += len(insert)
	m.filterCursorDirty = true
	m.errMsg = ""
	m.refreshSuggestions()
}

func (m *Model) deleteRuneBackward() {
	if m.caret == 0 || len(m.input) == 0 {
		return
	}
	m.input = append(m.input[:m.caret-1], m.input[m.caret:]...)
	m.caret--
	m.filterCursorDirty = true
	m.refreshSuggestions()
}

func (m *Model) deleteWordBackward() {
	if m.caret == 0 || len(m.input) == 0 {
		return
	}
	i := m.caret
	for i > 0 && unicode.IsSpace(m.input[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(m.input[i-1]) {
		i--
	}
	m.input = append(m.input[:i], m.input[m.caret:]...)
	m.caret = i
	m.filterCursorDirty = true
	m.refreshSuggestions()
}

func (m *Model) moveCaret(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(m.input) {
		pos = len(m.input)
	}
	if pos == m.caret {
		return
	}
	m.caret = pos
	m.filterCursorDirty = true
	m.refreshSuggestions()
}

func (m *Model) clearInput() {
	m.input = nil
	m.caret = 0
	m.filterCursorDirty = true
	m.closeSuggestions()
}

// refreshSuggestions recomputes the completion list after every edit or caret
// move. Suggestions only appear while the caret sits at the end of the text.
func (m *Model) refreshSuggestions() {
	ctx, ok := m.registry.SuggestionContext(string(m.input), m.caret)
	if !ok {
		m.closeSuggestions()
		return
	}
	matches := m.registry.Matches(ctx)
	if len(matches) == 0 {
		m.closeSuggestions()
		return
	}
	if !m.suggestOpen || ctx != m.suggestCtx {
		m.suggestIndex = 0
	}
	if m.suggestIndex >= len(matches) {
		m.suggestIndex = len(matches) - 1
	}
	m.suggestCtx = ctx
	m.suggestions = matches
	m.suggestOpen = true
	events.Palette.Suggest(ctx.Query, len(matches), ctx.IsArgument)
}

func (m *Model) closeSuggestions() {
	m.suggestOpen = false
	m.suggestions = nil
	m.suggestIndex = 0
	m.suggestCtx = palette.Context{}
}

func (m *Model) moveSuggestion(delta int) {
	if !m.suggestOpen || len(m.suggestions) == 0 {
		return
	}
	next := m.suggestIndex + delta
	if next < 0 {
		next = len(m.suggestions) - 1
	}
	if next >= len(m.suggestions) {
		next = 0
	}
	m.suggestIndex = next
}

func (m *Model) acceptSuggestion() {
	if !m.suggestOpen || len(m.suggestions) == 0 {
		return
	}
	choice := m.suggestions[m.suggestIndex]
	text, caret := palette.Accept(string(m.input), m.suggestCtx, choice)
	m.input = []rune(text)
	m.caret = caret
	m.filterCursorDirty = true
	m.refreshSuggestions()
}

// inputPrompt renders the text field with the blinking caret.
func (m *Model) inputPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		m.filterCursor.TextStyle = styles.Input.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "> "
	if styles.Prompt != nil {
		prompt = styles.Prompt.Render(prompt)
	}
	if len(m.input) == 0 {
		placeholder := "(paste a link or type a command)"
		runes := []rune(placeholder)
		caretRune := string(runes[0])
		rest := string(runes[1:])
		if styles.Placeholder != nil {
			m.filterCursor.TextStyle = styles.Placeholder.Copy()
		}
		caret := m.renderInputCursor(caretRune)
		return prompt + caret + render(styles.Placeholder, rest)
	}
	runes := m.input
	pos := m.caret
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Input, string(runes[:pos]))
	caretRune := " "
	if pos < len(runes) {
		caretRune = string(runes[pos])
	}
	caret := m.renderInputCursor(caretRune)
	after := ""
	if pos < len(runes) {
		after = render(styles.Input, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderInputCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
