// Package recent implements the bounded, deduplicated most-recently-used
// lists the host keeps for files and media. One algorithm serves both
// instances, parameterised by a key function, a validity predicate, a
// capacity, and a line codec for persistence.
package recent

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/atomfield/reelcode/internal/media"
)

const (
	// FileCapacity bounds the recent-file list.
	FileCapacity = 50
	// MediaCapacity bounds the recent-media list.
	MediaCapacity = 25

	mediaFieldSeparator = "|"
)

// List holds the shared MRU algorithm. Entries are most-recent-first.
type List[T any] struct {
	capacity int
	key      func(T) string
	valid    func(T) bool
}

// NewList builds a list manager. key derives the normalized deduplication key
// (empty means the entry is malformed); valid may be nil.
func NewList[T any](capacity int, key func(T) string, valid func(T) bool) *List[T] {
	return &List[T]{capacity: capacity, key: key, valid: valid}
}

// Trim filters invalid entries, deduplicates by key keeping the first
// occurrence, and truncates to capacity. The second return value reports
// whether the result differs from the input, so callers can skip redundant
// persistence writes.
func (l *List[T]) Trim(entries []T) ([]T, bool) {
	out := make([]T, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		key := l.key(entry)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if l.valid != nil && !l.valid(entry) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, entry)
		if len(out) == l.capacity {
			break
		}
	}
	return out, len(out) != len(entries)
}

// Upsert inserts item at the front, removing any existing entry with the same
// key and truncating to capacity. Re-adding an existing item moves it to the
// front rather than duplicating it.
func (l *List[T]) Upsert(entries []T, item T) []T {
	key := l.key(item)
	out := make([]T, 0, len(entries)+1)
	out = append(out, item)
	for _, entry := range entries {
		if key != "" && l.key(entry) == key {
			continue
		}
		out = append(out, entry)
		if len(out) == l.capacity {
			break
		}
	}
	return out
}

// FileEntry is a recent-file record.
type FileEntry struct {
	Path string
}

// MediaEntry is a recent-media record.
type MediaEntry struct {
	ID          string
	DisplayName string
}

// Files builds the recent-file list manager. Keys are case-insensitive
// cleaned paths; entries must currently exist and be readable.
func Files() *List[FileEntry] {
	return NewList(FileCapacity, FileKey, fileReadable)
}

// FileKey returns the normalized deduplication key for a path.
func FileKey(entry FileEntry) string {
	trimmed := strings.TrimSpace(entry.Path)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(filepath.Clean(trimmed))
}

func fileReadable(entry FileEntry) bool {
	f, err := os.Open(strings.TrimSpace(entry.Path))
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Media builds the recent-media list manager. Keys are normalized media IDs.
func Media() *List[MediaEntry] {
	return NewList(MediaCapacity, MediaKey, nil)
}

// MediaKey returns the normalized deduplication key for a media entry.
func MediaKey(entry MediaEntry) string {
	return media.Normalize(entry.ID)
}

// SanitizeDisplayName collapses line breaks and the persistence field
// separator to spaces. An empty result is replaced by the media ID, annotated
// when the classifier flags it as a playlist.
func SanitizeDisplayName(name, id string) string {
	cleaned := strings.NewReplacer("\r", " ", "\n", " ", mediaFieldSeparator, " ").Replace(name)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned != "" {
		return cleaned
	}
	if media.IsPlaylistID(id) {
		return id + " (playlist)"
	}
	return id
}

// EncodeMedia renders an entry as an "id|display_name" line.
func EncodeMedia(entry MediaEntry) string {
	return entry.ID + mediaFieldSeparator + SanitizeDisplayName(entry.DisplayName, entry.ID)
}

// DecodeMedia parses an "id|display_name" line. Lines without a separator are
// treated as a bare ID. Returns false for blank IDs.
func DecodeMedia(line string) (MediaEntry, bool) {
	id, name, found := strings.Cut(line, mediaFieldSeparator)
	id = strings.TrimSpace(id)
	if id == "" {
		return MediaEntry{}, false
	}
	if !found || strings.TrimSpace(name) == "" {
		name = id
	}
	return MediaEntry{ID: id, DisplayName: strings.TrimSpace(name)}, true
}

// EncodeMediaList renders entries as persistence lines.
func EncodeMediaList(entries []MediaEntry) []string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, EncodeMedia(entry))
	}
	return lines
}

// DecodeMediaList parses persistence lines, dropping malformed ones.
func DecodeMediaList(lines []string) []MediaEntry {
	entries := make([]MediaEntry, 0, len(lines))
	for _, line := range lines {
		if entry, ok := DecodeMedia(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// EncodeFileList renders file entries as persistence lines.
func EncodeFileList(entries []FileEntry) []string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Path)
	}
	return lines
}

// DecodeFileList parses persistence lines into file entries.
func DecodeFileList(lines []string) []FileEntry {
	entries := make([]FileEntry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, FileEntry{Path: line})
	}
	return entries
}
