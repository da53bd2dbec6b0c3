package ui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomfield/reelcode/internal/dialog"
	"github.com/atomfield/reelcode/internal/logging/events"
	"github.com/atomfield/reelcode/internal/media"
	"github.com/atomfield/reelcode/internal/palette"
	"github.com/atomfield/reelcode/internal/recent"
	"github.com/atomfield/reelcode/internal/surface"
	"github.com/atomfield/reelcode/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	dialogTimeout   = 2 * time.Minute
	seekStepSeconds = 10
)

// submit interprets the text field on enter. Registered commands dispatch
// through the palette; anything else is treated as a media link.
func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(string(m.input))
	if text == "" {
		return nil
	}
	events.UI.Submit(text)
	m.clearInput()
	parsed, ok := m.registry.Parse(text)
	if !ok {
		m.loadMediaInput(text)
		return nil
	}
	if _, known := m.registry.Lookup(parsed.Name); !known {
		events.Palette.Unknown(parsed.Name)
		m.errMsg = fmt.Sprintf("unknown command: %s", parsed.Name)
		return nil
	}
	events.Palette.Parse(parsed.Name, parsed.Arg, parsed.Explicit)
	return m.dispatch(parsed)
}

func (m *Model) dispatch(parsed palette.Parsed) tea.Cmd {
	handler := m.commandHandler(parsed)
	return m.cmdBus.Execute(command.Request{
		Name:    parsed.Name,
		Arg:     parsed.Arg,
		Handler: handler,
	})
}

func (m *Model) commandHandler(parsed palette.Parsed) func() tea.Cmd {
	arg := parsed.Arg
	switch parsed.Name {
	case "open":
		switch arg {
		case "":
			return func() tea.Cmd { return pickFileCmd(m.dialogs, false, "") }
		case "recent":
			return messageHandler(enterPickerMsg{mode: ModeFilePicker})
		default:
			return func() tea.Cmd { return loadFileCmd(arg) }
		}
	case "save":
		saveAs := arg == "as"
		if arg != "" && !saveAs {
			return messageHandler(statusMsg{text: fmt.Sprintf("save: unknown argument %q", arg), isErr: true})
		}
		if saveAs || m.currentFile == "" {
			suggested := filepath.Base(m.currentFile)
			if m.currentFile == "" {
				suggested = "untitled.js"
			}
			return func() tea.Cmd { return pickFileCmd(m.dialogs, true, suggested) }
		}
		path := m.currentFile
		return func() tea.Cmd { return saveContentCmd(m.correlator, m.surfaceBus, path) }
	case "play":
		if arg == "" {
			return messageHandler(surfaceControlMsg{env: surface.Envelope{Type: surface.TypeTogglePlayback}})
		}
		return messageHandler(loadMediaMsg{input: arg})
	case "pause":
		return messageHandler(surfaceControlMsg{env: surface.Envelope{Type: surface.TypeTogglePlayback}})
	case "seek":
		offset, err := seekOffset(arg)
		if err != nil {
			return messageHandler(statusMsg{text: err.Error(), isErr: true})
		}
		return messageHandler(surfaceControlMsg{env: surface.Envelope{
			Type:   surface.TypeSeekVideo,
			Offset: surface.Float(offset),
		}})
	case "opacity":
		value, err := percentArg("opacity", arg)
		if err != nil {
			return messageHandler(statusMsg{text: err.Error(), isErr: true})
		}
		return messageHandler(setOpacityMsg{value: value})
	case "volume":
		value, err := percentArg("volume", arg)
		if err != nil {
			return messageHandler(statusMsg{text: err.Error(), isErr: true})
		}
		return messageHandler(setVolumeMsg{value: value})
	case "media":
		switch arg {
		case "recent":
			return messageHandler(enterPickerMsg{mode: ModeMediaPicker})
		case "":
			return messageHandler(statusMsg{text: "media: needs a link, an id, or 'recent'", isErr: true})
		default:
			return messageHandler(loadMediaMsg{input: arg})
		}
	case "quit":
		return func() tea.Cmd { return tea.Quit }
	}
	return nil
}

func messageHandler(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return msg }
	}
}

func seekOffset(arg string) (float64, error) {
	switch arg {
	case "", "forward":
		return seekStepSeconds, nil
	case "back":
		return -seekStepSeconds, nil
	}
	offset, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("seek: expected 'back', 'forward', or seconds (got %q)", arg)
	}
	return offset, nil
}

func percentArg(name, arg string) (float64, error) {
	if arg == "" {
		return 0, fmt.Errorf("%s: needs a percentage from 0 to 100", name)
	}
	pct, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	// NaN slips past range comparisons and would poison the persisted
	// settings, so non-finite input is rejected outright.
	if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 || pct > 100 {
		return 0, fmt.Errorf("%s: expected a percentage from 0 to 100 (got %q)", name, arg)
	}
	return pct / 100, nil
}

// loadMediaInput normalizes free-form input into a media identifier and asks
// the surface to load it.
func (m *Model) loadMediaInput(input string) {
	id := media.Normalize(input)
	if id == "" {
		m.errMsg = fmt.Sprintf("not a recognisable media link: %s", strings.TrimSpace(input))
		return
	}
	m.pendingMedia = id
	m.mediaID = id
	m.mediaAutoplay = true
	m.store.SetMediaID(id)
	entry := recent.MediaEntry{ID: id, DisplayName: recent.SanitizeDisplayName("", id)}
	m.mediaItems = m.mediaList.Upsert(m.mediaItems, entry)
	events.Recent.Upsert("media", recent.MediaKey(entry))
	m.store.SetRecentMedia(recent.EncodeMediaList(m.mediaItems))
	m.gate.LoadMedia(id, true)
	m.setInfo(fmt.Sprintf("Loading media %s", id))
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return fileLoadedMsg{path: path, content: string(data), err: err}
	}
}

func saveContentCmd(c *surface.Correlator, bus *surface.Bus, path string) tea.Cmd {
	return func() tea.Msg {
		payload, err := c.Request(context.Background(), surface.KindContent, func() bool {
			return bus.Send(surface.Envelope{Type: surface.TypeRequestContent})
		})
		if err != nil {
			return fileSavedMsg{path: path, err: err}
		}
		if payload == nil {
			// Null content means the editor had nothing to give; distinct
			// from a timeout, and not worth truncating the file over.
			return fileSavedMsg{path: path, skipped: true}
		}
		return fileSavedMsg{path: path, err: os.WriteFile(path, []byte(*payload), 0o644)}
	}
}

func pickFileCmd(p dialog.Provider, save bool, suggested string) tea.Cmd {
	return func() tea.Msg {
		if p == nil {
			return dialogResultMsg{save: save, err: dialog.ErrUnavailable}
		}
		ctx, cancel := context.WithTimeout(context.Background(), dialogTimeout)
		defer cancel()
		var path string
		var err error
		if save {
			path, err = p.PickSaveFile(ctx, suggested)
		} else {
			path, err = p.PickOpenFile(ctx)
		}
		return dialogResultMsg{save: save, path: path, err: err}
	}
}

type surfaceControlMsg struct {
	env surface.Envelope
}

type enterPickerMsg struct {
	mode Mode
}

type statusMsg struct {
	text  string
	isErr bool
}

type fileLoadedMsg struct {
	path    string
	content string
	err     error
}

type fileSavedMsg struct {
	path    string
	skipped bool
	err     error
}

type dialogResultMsg struct {
	save bool
	path string
	err  error
}

type loadMediaMsg struct {
	input string
}

type setOpacityMsg struct {
	value float64
}

type setVolumeMsg struct {
	value float64
}

func (m *Model) handleSurfaceControlMsg(msg tea.Msg) tea.Cmd {
	control, ok := msg.(surfaceControlMsg)
	if !ok {
		return nil
	}
	if !m.gate.Control(control.env) {
		m.setInfo("surface is not ready yet")
	}
	return nil
}

func (m *Model) handleStatusMsg(msg tea.Msg) tea.Cmd {
	status, ok := msg.(statusMsg)
	if !ok {
		return nil
	}
	if status.isErr {
		m.errMsg = status.text
	} else {
		m.setInfo(status.text)
	}
	return nil
}

func (m *Model) handleFileLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(fileLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		events.Action.Error(loaded.err)
		m.errMsg = loaded.err.Error()
		return nil
	}
	m.currentFile = loaded.path
	m.lastContent = loaded.content
	m.lastExtension = strings.TrimPrefix(filepath.Ext(loaded.path), ".")
	m.gate.LoadFile(loaded.content, m.lastExtension)
	m.rememberFile(loaded.path)
	m.errMsg = ""
	if m.verbose {
		m.setInfo(fmt.Sprintf("Opened %s", loaded.path))
	}
	return nil
}

func (m *Model) handleFileSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(fileSavedMsg)
	if !ok {
		return nil
	}
	if saved.err != nil {
		events.Action.Error(saved.err)
		if errors.Is(saved.err, surface.ErrTimeout) {
			m.errMsg = "surface did not return the editor content in time"
		} else {
			m.errMsg = saved.err.Error()
		}
		return nil
	}
	if saved.skipped {
		m.setInfo("surface returned no content; save skipped")
		return nil
	}
	m.currentFile = saved.path
	m.lastExtension = strings.TrimPrefix(filepath.Ext(saved.path), ".")
	m.rememberFile(saved.path)
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Saved %s", saved.path))
	return nil
}

func (m *Model) handleDialogResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(dialogResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		switch {
		case errors.Is(result.err, dialog.ErrCanceled):
		case errors.Is(result.err, dialog.ErrUnavailable):
			m.setInfo("no file dialog configured; pass a path instead")
		default:
			m.errMsg = result.err.Error()
		}
		return nil
	}
	if result.save {
		return saveContentCmd(m.correlator, m.surfaceBus, result.path)
	}
	return loadFileCmd(result.path)
}

func (m *Model) handleLoadMediaMsg(msg tea.Msg) tea.Cmd {
	load, ok := msg.(loadMediaMsg)
	if !ok {
		return nil
	}
	m.loadMediaInput(load.input)
	return nil
}

func (m *Model) handleSetOpacityMsg(msg tea.Msg) tea.Cmd {
	set, ok := msg.(setOpacityMsg)
	if !ok {
		return nil
	}
	m.store.SetOpacity(set.value)
	m.gate.SetOpacity(set.value)
	m.setInfo(fmt.Sprintf("Opacity %.0f%%", set.value*100))
	return nil
}

func (m *Model) handleSetVolumeMsg(msg tea.Msg) tea.Cmd {
	set, ok := msg.(setVolumeMsg)
	if !ok {
		return nil
	}
	m.store.SetVolume(set.value)
	m.gate.SetVolume(set.value)
	m.setInfo(fmt.Sprintf("Volume %.0f%%", set.value*100))
	return nil
}

func (m *Model) rememberFile(path string) {
	entry := recent.FileEntry{Path: path}
	m.files = m.fileList.Upsert(m.files, entry)
	events.Recent.Upsert("files", recent.FileKey(entry))
	m.store.SetMRUFiles(recent.EncodeFileList(m.files))
}
