package ui

import (
	"github.com/atomfield/reelcode/internal/logging/events"
	"github.com/atomfield/reelcode/internal/media"
	"github.com/atomfield/reelcode/internal/recent"
	"github.com/atomfield/reelcode/internal/surface"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForSurfaceEvent(s *surface.Server) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-s.Events()
		if !ok {
			return surfaceDoneMsg{}
		}
		return surfaceEventMsg{event: evt}
	}
}

type surfaceEventMsg struct {
	event surface.Event
}

type surfaceDoneMsg struct{}

func (m *Model) handleSurfaceEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(surfaceEventMsg)
	if !ok {
		return nil
	}
	m.applySurfaceEvent(eventMsg.event)
	if m.server != nil {
		return waitForSurfaceEvent(m.server)
	}
	return nil
}

func (m *Model) handleSurfaceDoneMsg(tea.Msg) tea.Cmd {
	m.server = nil
	m.connected = false
	return nil
}

func (m *Model) applySurfaceEvent(evt surface.Event) {
	switch evt.Kind {
	case surface.KindConnected:
		m.connected = true
		m.errMsg = ""
		m.gate.BeginLoad()
		enabled := m.caps.TryEnable(surface.FeatureCookies)
		events.Surface.Capability(string(surface.FeatureCookies), enabled)
		m.queueStartupIntents()
	case surface.KindMessage:
		m.surfaceBus.Receive(evt.Text)
	case surface.KindDisconnected:
		m.connected = false
		m.dimmed = false
		// The next connection replays the load cycle, so intents issued in
		// the gap park until it reports ready instead of hitting a dead
		// transport. Reload transitions keep the pending cells.
		m.gate.BeginLoad()
		if evt.Err != nil {
			events.Surface.Disconnected(evt.Err.Error())
		} else {
			events.Surface.Disconnected("")
		}
	}
}

// queueStartupIntents parks the persisted display state in the readiness gate
// so it flushes as soon as the surface reports ready.
func (m *Model) queueStartupIntents() {
	if m.currentFile != "" {
		m.gate.LoadFile(m.lastContent, m.lastExtension)
	}
	m.gate.SetOpacity(m.store.Opacity())
	if m.mediaID != "" {
		// An explicit play request the surface never honoured keeps its
		// autoplay across loads; persisted media comes back paused.
		m.gate.LoadMedia(m.mediaID, m.mediaAutoplay)
	}
	m.gate.SetVolume(m.store.Volume())
}

// registerSurfaceHandlers wires the inbound message types into model updates.
// Handlers run synchronously inside Update; work that must happen on the
// Bubble Tea command path is queued via queueCmd.
func (m *Model) registerSurfaceHandlers() {
	m.surfaceBus.Handle(surface.TypeEditorReady, func(surface.Envelope) {
		m.gate.MarkReady()
	})
	m.surfaceBus.Handle(surface.TypeEditorContent, func(env surface.Envelope) {
		m.correlator.Resolve(surface.KindContent, env.Content)
	})
	m.surfaceBus.Handle(surface.TypeVideoMetadata, func(env surface.Envelope) {
		m.acceptVideoMetadata(env)
	})
	m.surfaceBus.Handle(surface.TypePlaybackChanged, func(env surface.Envelope) {
		m.dimmed = env.State == "playing"
		if m.dimmed {
			// Playback started, so the play request is honoured; a later
			// reload resumes paused like any persisted media.
			m.mediaAutoplay = false
		}
	})
	m.surfaceBus.Handle(surface.TypePlayerError, func(env surface.Envelope) {
		m.errMsg = media.ErrorReason(env.Code)
	})
	m.surfaceBus.Handle(surface.TypeLog, func(env surface.Envelope) {
		events.Surface.Log(env.Message)
	})
	m.surfaceBus.Handle(surface.TypeRequestOpen, func(surface.Envelope) {
		m.queueCmd(pickFileCmd(m.dialogs, false, ""))
	})
	m.surfaceBus.Handle(surface.TypeRequestQuit, func(surface.Envelope) {
		m.queueCmd(tea.Quit)
	})
	m.surfaceBus.Handle(surface.TypeRequestPaste, func(surface.Envelope) {
		m.queueCmd(readClipboardCmd())
	})
}

// acceptVideoMetadata records a display name for the media the host asked to
// load. Titles for other media are ignored; a playlist accepts titles of the
// videos it plays.
func (m *Model) acceptVideoMetadata(env surface.Envelope) {
	target := m.pendingMedia
	if target == "" {
		target = m.mediaID
	}
	if target == "" {
		return
	}
	if env.VideoID != target && !media.IsPlaylistID(target) {
		return
	}
	entry := recent.MediaEntry{
		ID:          target,
		DisplayName: recent.SanitizeDisplayName(env.Title, target),
	}
	m.mediaItems = m.mediaList.Upsert(m.mediaItems, entry)
	events.Recent.Upsert("media", recent.MediaKey(entry))
	m.store.SetRecentMedia(recent.EncodeMediaList(m.mediaItems))
	m.pendingMedia = ""
}

func readClipboardCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := clipboard.ReadAll()
		return pasteResultMsg{text: text, err: err}
	}
}

type pasteResultMsg struct {
	text string
	err  error
}

func (m *Model) handlePasteResultMsg(msg tea.Msg) tea.Cmd {
	paste, ok := msg.(pasteResultMsg)
	if !ok {
		return nil
	}
	if paste.err != nil {
		m.errMsg = paste.err.Error()
		return nil
	}
	if paste.text == "" {
		return nil
	}
	m.gate.Control(surface.Envelope{
		Type:    surface.TypePasteText,
		Content: surface.String(paste.text),
	})
	return nil
}

// emitActivity forwards host keyboard activity so the surface can manage its
// overlay dimming. Sends are rate limited unless the surface is dimmed.
func (m *Model) emitActivity() {
	if !m.throttle.Allow(timeNow(), m.dimmed) {
		return
	}
	m.gate.Control(surface.Envelope{Type: surface.TypeHostActivity})
}
