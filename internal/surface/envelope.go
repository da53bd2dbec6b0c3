// Package surface owns everything the host exchanges with the embedded
// browser surface: the typed envelope codec, the message bus over the raw
// text channel, the readiness gate that defers host intents until the surface
// reports ready, the pending-request correlator, and the websocket transport
// the surface connects to.
package surface

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types crossing the host/surface boundary.
const (
	TypeEditorReady     = "editor-ready"
	TypeEditorContent   = "editor-content"
	TypeRequestContent  = "request-content"
	TypeLoadCode        = "load-code"
	TypeSetOpacity      = "set-opacity"
	TypeSetVolume       = "set-volume"
	TypeLoadVideo       = "load-video"
	TypeTogglePlayback  = "toggle-playback"
	TypeSeekVideo       = "seek-video"
	TypePlaybackChanged = "playback-changed"
	TypePlayerError     = "player-error"
	TypeVideoMetadata   = "video-metadata"
	TypeRequestOpen     = "request-open"
	TypeRequestQuit     = "request-quit"
	TypeRequestPaste    = "request-paste"
	TypePasteText       = "paste-text"
	TypeHostActivity    = "host-activity"
	TypeLog             = "log"
)

// Envelope is the unit of bus traffic. A single struct covers the closed set
// of message kinds; unused fields stay empty on the wire.
type Envelope struct {
	Type      string   `json:"type"`
	Content   *string  `json:"content,omitempty"`
	Extension string   `json:"extension,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	VideoID   string   `json:"videoId,omitempty"`
	Autoplay  bool     `json:"autoplay,omitempty"`
	Offset    *float64 `json:"offset,omitempty"`
	State     string   `json:"state,omitempty"`
	Code      int      `json:"code,omitempty"`
	Title     string   `json:"title,omitempty"`
	Message   string   `json:"message,omitempty"`
}

var errMissingType = errors.New("surface: envelope missing type")

// Encode renders an envelope as message text.
func Encode(env Envelope) (string, error) {
	if env.Type == "" {
		return "", errMissingType
	}
	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return string(data), nil
}

// Decode parses raw message text. Text that is not a JSON object with a
// non-empty type field is rejected.
func Decode(raw string) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, errMissingType
	}
	return env, nil
}

// Float returns a pointer to v, for optional envelope fields.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s, for optional envelope fields.
func String(s string) *string {
	return &s
}
