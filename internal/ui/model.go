package ui

import (
	"reflect"
	"time"

	"github.com/atomfield/reelcode/internal/activity"
	"github.com/atomfield/reelcode/internal/dialog"
	"github.com/atomfield/reelcode/internal/logging/events"
	"github.com/atomfield/reelcode/internal/palette"
	"github.com/atomfield/reelcode/internal/recent"
	"github.com/atomfield/reelcode/internal/settings"
	"github.com/atomfield/reelcode/internal/surface"
	"github.com/atomfield/reelcode/internal/theme"
	"github.com/atomfield/reelcode/internal/ui/command"
	uistate "github.com/atomfield/reelcode/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	ModeInput Mode = iota
	ModeFilePicker
	ModeMediaPicker
)

var styles = theme.Default()

// timeNow is swapped out by throttle tests.
var timeNow = time.Now

type msgHandler func(tea.Msg) tea.Cmd

// nopTransport stands in when no surface server is attached.
type nopTransport struct{}

func (nopTransport) Post(string) bool { return false }

// Model implements the Bubble Tea model for the host window.
type Model struct {
	mode  Mode
	input []rune
	caret int

	suggestions  []string
	suggestIndex int
	suggestCtx   palette.Context
	suggestOpen  bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	currentFile   string
	lastContent   string
	lastExtension string
	mediaID       string
	pendingMedia  string
	mediaAutoplay bool
	dimmed        bool
	connected     bool

	files      []recent.FileEntry
	mediaItems []recent.MediaEntry
	fileList   *recent.List[recent.FileEntry]
	mediaList  *recent.List[recent.MediaEntry]

	filePicker  *uistate.Picker
	mediaPicker *uistate.Picker

	filterCursor      cursor.Model
	filterCursorDirty bool

	registry   *palette.Registry
	cmdBus     *command.Bus
	store      settings.Repository
	dialogs    dialog.Provider
	caps       surface.Capabilities
	throttle   *activity.Throttle
	server     *surface.Server
	surfaceBus *surface.Bus
	gate       *surface.Gate
	correlator *surface.Correlator

	initialFile string
	pendingCmds []tea.Cmd

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state from stored settings and configuration.
func NewModel(server *surface.Server, store settings.Repository, dialogs dialog.Provider, caps surface.Capabilities, width, height int, showFooter, verbose bool, initialFile string) *Model {
	m := &Model{
		mode:        ModeInput,
		registry:    palette.Default(),
		cmdBus:      command.New(),
		store:       store,
		dialogs:     dialogs,
		caps:        caps,
		throttle:    activity.New(activity.DefaultInterval),
		server:      server,
		correlator:  surface.NewCorrelator(surface.DefaultRequestTimeout),
		fileList:    recent.Files(),
		mediaList:   recent.Media(),
		showFooter:  showFooter,
		verbose:     verbose,
		initialFile: initialFile,
	}
	if caps == nil {
		m.caps = surface.NoCapabilities{}
	}
	var transport surface.Transport = server
	if server == nil {
		transport = nopTransport{}
	}
	m.surfaceBus = surface.NewBus(transport)
	m.gate = surface.NewGate(m.surfaceBus.Send)
	m.mediaID = store.MediaID()
	m.loadRecentLists()
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		c.TextStyle = styles.Input.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerSurfaceHandlers()
	m.registerHandlers()
	return m
}

func (m *Model) loadRecentLists() {
	files, changed := m.fileList.Trim(recent.DecodeFileList(m.store.MRUFiles()))
	m.files = files
	if changed {
		events.Recent.Trimmed("files", len(m.store.MRUFiles())-len(files))
		m.store.SetMRUFiles(recent.EncodeFileList(files))
	}
	mediaItems, changed := m.mediaList.Trim(recent.DecodeMediaList(m.store.RecentMedia()))
	m.mediaItems = mediaItems
	if changed {
		events.Recent.Trimmed("media", len(m.store.RecentMedia())-len(mediaItems))
		m.store.SetRecentMedia(recent.EncodeMediaList(mediaItems))
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.server != nil {
		cmds = append(cmds, waitForSurfaceEvent(m.server))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.initialFile != "" {
		cmds = append(cmds, loadFileCmd(m.initialFile))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(surfaceEventMsg{}):   m.handleSurfaceEventMsg,
		reflect.TypeOf(surfaceDoneMsg{}):    m.handleSurfaceDoneMsg,
		reflect.TypeOf(surfaceControlMsg{}): m.handleSurfaceControlMsg,
		reflect.TypeOf(enterPickerMsg{}):    m.handleEnterPickerMsg,
		reflect.TypeOf(statusMsg{}):         m.handleStatusMsg,
		reflect.TypeOf(fileLoadedMsg{}):     m.handleFileLoadedMsg,
		reflect.TypeOf(fileSavedMsg{}):      m.handleFileSavedMsg,
		reflect.TypeOf(dialogResultMsg{}):   m.handleDialogResultMsg,
		reflect.TypeOf(loadMediaMsg{}):      m.handleLoadMediaMsg,
		reflect.TypeOf(setOpacityMsg{}):     m.handleSetOpacityMsg,
		reflect.TypeOf(setVolumeMsg{}):      m.handleSetVolumeMsg,
		reflect.TypeOf(pasteResultMsg{}):    m.handlePasteResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.pendingCmds) > 0 {
		cmds = append(cmds, m.pendingCmds...)
		m.pendingCmds = nil
	}
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) queueCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	m.pendingCmds = append(m.pendingCmds, cmd)
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
