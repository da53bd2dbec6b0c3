package surface

import "github.com/atomfield/reelcode/internal/logging/events"

// State tracks the embedded surface's load lifecycle.
type State int

const (
	NotLoaded State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case NotLoaded:
		return "not-loaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// FilePayload is a deferred load-code intent.
type FilePayload struct {
	Content   string
	Extension string
}

// MediaPayload is a deferred load-video intent.
type MediaPayload struct {
	ID       string
	Autoplay bool
}

// pendingIntents is the last-write-wins record of host intents awaiting
// readiness. Explicit slots keep the flush order auditable.
type pendingIntents struct {
	file    *FilePayload
	opacity *float64
	media   *MediaPayload
	volume  *float64
}

// Gate is the readiness state machine. Host operations that must act on the
// embedded document funnel through it: applied immediately when the surface
// is ready, otherwise parked in single-slot pending cells and flushed, in a
// fixed order, when readiness arrives. Control messages that cannot
// meaningfully be deferred are dropped while not ready.
type Gate struct {
	state   State
	pending pendingIntents
	send    func(Envelope) bool
}

// NewGate wires the gate to a send function (normally Bus.Send).
func NewGate(send func(Envelope) bool) *Gate {
	return &Gate{state: NotLoaded, send: send}
}

// State returns the current readiness state.
func (g *Gate) State() State {
	return g.state
}

// BeginLoad records that a new surface document has started loading. The
// initial transition clears any stale pending intents; a reload keeps them,
// so a value the user set while the surface was away is not silently lost.
func (g *Gate) BeginLoad() {
	reload := g.state != NotLoaded
	events.Readiness.Transition(g.state.String(), Loading.String(), reload)
	g.state = Loading
	if !reload {
		g.pending = pendingIntents{}
	}
}

// MarkReady transitions to Ready and flushes pending intents in fixed order:
// file content, opacity, media, volume. Each slot is consumed exactly once.
func (g *Gate) MarkReady() {
	if g.state == Ready {
		return
	}
	events.Readiness.Transition(g.state.String(), Ready.String(), false)
	g.state = Ready

	flushed := make([]string, 0, 4)
	if file := g.pending.file; file != nil {
		g.pending.file = nil
		g.send(Envelope{Type: TypeLoadCode, Content: String(file.Content), Extension: file.Extension})
		flushed = append(flushed, "file")
	}
	if opacity := g.pending.opacity; opacity != nil {
		g.pending.opacity = nil
		g.send(Envelope{Type: TypeSetOpacity, Value: opacity})
		flushed = append(flushed, "opacity")
	}
	if media := g.pending.media; media != nil {
		g.pending.media = nil
		g.send(Envelope{Type: TypeLoadVideo, VideoID: media.ID, Autoplay: media.Autoplay})
		flushed = append(flushed, "media")
	}
	if volume := g.pending.volume; volume != nil {
		g.pending.volume = nil
		g.send(Envelope{Type: TypeSetVolume, Value: volume})
		flushed = append(flushed, "volume")
	}
	if len(flushed) > 0 {
		events.Readiness.Flush(flushed)
	}
}

// LoadFile pushes file content to the surface, deferring until ready.
func (g *Gate) LoadFile(content, extension string) {
	if g.state != Ready {
		g.pending.file = &FilePayload{Content: content, Extension: extension}
		events.Readiness.Pend("file")
		return
	}
	g.send(Envelope{Type: TypeLoadCode, Content: String(content), Extension: extension})
}

// SetOpacity applies the display opacity, deferring until ready.
func (g *Gate) SetOpacity(value float64) {
	if g.state != Ready {
		g.pending.opacity = Float(value)
		events.Readiness.Pend("opacity")
		return
	}
	g.send(Envelope{Type: TypeSetOpacity, Value: Float(value)})
}

// LoadMedia starts or replaces the media item, deferring until ready.
func (g *Gate) LoadMedia(id string, autoplay bool) {
	if g.state != Ready {
		g.pending.media = &MediaPayload{ID: id, Autoplay: autoplay}
		events.Readiness.Pend("media")
		return
	}
	g.send(Envelope{Type: TypeLoadVideo, VideoID: id, Autoplay: autoplay})
}

// SetVolume applies the media volume, deferring until ready.
func (g *Gate) SetVolume(value float64) {
	if g.state != Ready {
		g.pending.volume = Float(value)
		events.Readiness.Pend("volume")
		return
	}
	g.send(Envelope{Type: TypeSetVolume, Value: Float(value)})
}

// Control sends a transport-control message. There is nothing meaningful to
// defer, so the message is dropped while the surface is not ready.
func (g *Gate) Control(env Envelope) bool {
	if g.state != Ready {
		events.Bus.Drop(env.Type, "surface not ready")
		return false
	}
	return g.send(env)
}
