package surface

import "github.com/atomfield/reelcode/internal/logging/events"

// Feature names an optional surface capability.
type Feature string

// FeatureCookies lets the embedded player keep its own cookies, so playback
// preferences survive a surface reload. Not every backend supports it.
const FeatureCookies Feature = "cookies"

// Capabilities is implemented per platform backend. TryEnable is idempotent
// and best-effort: a false result means the feature is unavailable right now
// and may be retried on the next opportunity. Never fatal.
type Capabilities interface {
	TryEnable(feature Feature) bool
}

// NoCapabilities is the backend for environments without optional features.
type NoCapabilities struct{}

// TryEnable always reports the feature as unavailable.
func (NoCapabilities) TryEnable(feature Feature) bool {
	events.Surface.Capability(string(feature), false)
	return false
}
