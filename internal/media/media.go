// Package media turns free-form user input (URLs, bare identifiers) into the
// canonical media IDs exchanged with the embedded player.
package media

import (
	"fmt"
	"net/url"
	"strings"
)

const shortLinkHost = "youtu.be"

// playlistPrefixes are the two-character prefixes that mark playlist-style
// identifiers. Compared case-insensitively.
var playlistPrefixes = []string{"PL", "UU", "FL", "LL", "RD", "OL"}

// Normalize reduces input to a canonical media identifier. It never fails;
// unusable input yields the empty string. Applying Normalize to its own
// output is a no-op.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	raw := trimmed
	if u, err := url.Parse(trimmed); err == nil && u.IsAbs() && u.Host != "" {
		raw = idFromURL(u, trimmed)
	}
	return sanitize(raw)
}

// idFromURL extracts the raw identifier from an absolute URL. The fallback is
// returned when the URL carries no recognisable identifier.
func idFromURL(u *url.URL, fallback string) string {
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	segments := splitPath(u.EscapedPath())
	if host == shortLinkHost {
		if len(segments) > 0 {
			return segments[len(segments)-1]
		}
		return fallback
	}
	query := u.Query()
	// Playlist parameter takes priority over a single-item parameter.
	if list := query.Get("list"); list != "" {
		return list
	}
	if v := query.Get("v"); v != "" {
		return v
	}
	if len(segments) >= 2 {
		switch strings.ToLower(segments[0]) {
		case "embed", "shorts", "live":
			return segments[1]
		}
	}
	return fallback
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// sanitize keeps letters, digits, '-', and '_'.
func sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPlaylistID reports whether the identifier looks like a playlist rather
// than a single item. Playlists accept metadata for whatever item is currently
// playing; single items require an exact ID match.
func IsPlaylistID(id string) bool {
	if len(id) < 2 {
		return false
	}
	for _, prefix := range playlistPrefixes {
		if strings.EqualFold(id[:2], prefix) {
			return true
		}
	}
	return false
}

// playerErrorReasons maps player error codes to human-readable reasons.
var playerErrorReasons = map[int]string{
	2:   "invalid media identifier",
	5:   "playback failed",
	100: "media not found",
	101: "embedding disabled by owner",
	150: "embedding disabled by owner",
}

// ErrorReason describes a player error code.
func ErrorReason(code int) string {
	if reason, ok := playerErrorReasons[code]; ok {
		return reason
	}
	return fmt.Sprintf("player error (code %d)", code)
}
