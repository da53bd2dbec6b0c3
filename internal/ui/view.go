package ui

import (
	"fmt"
	"strings"

	uistate "github.com/atomfield/reelcode/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

const footerHint = "enter submit  tab complete  ↑/↓ choose  esc back  ctrl+c quit"

// View implements tea.Model.
func (m *Model) View() string {
	if picker := m.activePicker(); picker != nil {
		return m.viewPicker(picker)
	}
	return m.viewInput()
}

func (m *Model) viewInput() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	lines = append(lines, styledLine{text: m.stateLine(), style: styles.Dimmed})
	if m.suggestOpen && len(m.suggestions) > 0 {
		lines = append(lines, styledLine{})
		for i, suggestion := range m.suggestions {
			lines = append(lines, m.buildSuggestionLine(suggestion, i))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: styles.Footer})
	}
	return m.renderWithBottomBar(lines, m.inputPrompt())
}

func (m *Model) viewPicker(picker *uistate.Picker) string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: picker.Title, style: styles.Header})
	m.syncViewport(picker)
	start := 0
	displayItems := picker.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = picker.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			if start < 0 {
				start = 0
			}
			picker.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	if len(picker.Items) == 0 {
		msg := "(no entries)"
		if picker.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", picker.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		for i, item := range displayItems {
			lines = append(lines, m.buildItemLine(item.Label, start+i, picker))
		}
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: styles.Footer})
	}
	return m.renderWithBottomBar(lines, m.pickerPrompt(picker))
}

func (m *Model) buildItemLine(label string, idx int, picker *uistate.Picker) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == picker.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := indicator + " " + label
	if m.width > 0 {
		if pad := m.width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) pickerPrompt(picker *uistate.Picker) string {
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
	prompt := "» "
	if styles.Prompt != nil {
		prompt = styles.Prompt.Render(prompt)
	}
	text := picker.Filter
	if text == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		caretRune := string(runes[0])
		rest := string(runes[1:])
		if styles.Placeholder != nil {
			m.filterCursor.TextStyle = styles.Placeholder.Copy()
		}
		caret := m.renderInputCursor(caretRune)
		return prompt + caret + render(styles.Placeholder, rest)
	}
	runes := []rune(text)
	pos := picker.FilterCursorPos()
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

func (m *Model) header() string {
	if m.currentFile == "" {
		return "reelcode · (no file)"
	}
	return "reelcode · " + m.currentFile
}

func (m *Model) stateLine() string {
	state := "waiting for surface"
	if m.connected {
		state = m.gate.State().String()
	}
	parts := []string{"surface: " + state}
	if m.mediaID != "" {
		parts = append(parts, "media: "+m.mediaID)
	}
	if m.dimmed {
		parts = append(parts, "playing")
	}
	return strings.Join(parts, "  ")
}

func (m *Model) buildSuggestionLine(label string, idx int) styledLine {
	indicator := "▌"
	lineStyle := styles.Suggestion
	indicatorStyle := styles.ItemIndicator
	if idx == m.suggestIndex {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedSuggestion
	}
	return styledLine{
		text:          indicator + " " + label,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// renderWithBottomBar lays out the body above a two-row bottom bar holding
// the error line and the text prompt.
func (m *Model) renderWithBottomBar(lines []styledLine, prompt string) string {
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottomLines := applyWidth([]styledLine{statusLine}, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines) + "\n" + promptLine(prompt, m.width)
}

// promptLine truncates the rendered prompt with ANSI-aware measurement, since
// the caret and styles embed escape sequences.
func promptLine(prompt string, width int) string {
	if width <= 0 {
		return prompt
	}
	if lipgloss.Width(prompt) > width {
		return truncate.StringWithTail(prompt, uint(width-1), "…")
	}
	return prompt
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
	if picker := m.activePicker(); picker != nil {
		m.syncViewport(picker)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error line + prompt
	used++    // header
	if m.mode == ModeInput {
		used++ // state line
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{
			text:          truncateText(line.text, width),
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
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
