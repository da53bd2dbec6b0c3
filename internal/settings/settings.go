// Package settings persists host state across runs: recent lists, display
// opacity, media volume, and the last media identifier. The repository is
// injected into the components that need it; nothing here is global.
package settings

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/atomfield/reelcode/internal/logging"
)

// Defaults applied when a key has never been written.
const (
	DefaultOpacity = 0.85
	DefaultVolume  = 0.5
	DefaultMediaID = "PLyPEwZQPST3okfxneqOAKsz2kYVMbLWlI"
)

// Repository is the typed settings surface the rest of the host depends on.
type Repository interface {
	MRUFiles() []string
	SetMRUFiles(paths []string)
	RecentMedia() []string
	SetRecentMedia(lines []string)
	Opacity() float64
	SetOpacity(value float64)
	Volume() float64
	SetVolume(value float64)
	MediaID() string
	SetMediaID(id string)
}

type values struct {
	MRUFiles    []string `toml:"mru_files"`
	RecentMedia []string `toml:"recent_media"`
	Opacity     float64  `toml:"opacity"`
	Volume      float64  `toml:"volume"`
	MediaID     string   `toml:"media_id"`
}

func defaults() values {
	return values{
		Opacity: DefaultOpacity,
		Volume:  DefaultVolume,
		MediaID: DefaultMediaID,
	}
}

// FileStore is a TOML-backed Repository. Every setter persists immediately;
// write failures are logged, never fatal.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values values
}

// Open loads the store at path, applying defaults for missing keys. A missing
// file yields a store of pure defaults.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: defaults()}
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s.values); err != nil {
		return nil, fmt.Errorf("load settings %s: %w", path, err)
	}
	s.values.Opacity = clamp01(s.values.Opacity)
	s.values.Volume = clamp01(s.values.Volume)
	return s, nil
}

// NewMemory returns a non-persisting store, for tests and ephemeral runs.
func NewMemory() *FileStore {
	return &FileStore{values: defaults()}
}

// DefaultPath places the settings file under the user configuration
// directory.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "reelcode.toml"
	}
	return filepath.Join(base, "reelcode", "settings.toml")
}

func (s *FileStore) MRUFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStrings(s.values.MRUFiles)
}

func (s *FileStore) SetMRUFiles(paths []string) {
	s.mu.Lock()
	s.values.MRUFiles = cloneStrings(paths)
	s.mu.Unlock()
	s.save()
}

func (s *FileStore) RecentMedia() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStrings(s.values.RecentMedia)
}

func (s *FileStore) SetRecentMedia(lines []string) {
	s.mu.Lock()
	s.values.RecentMedia = cloneStrings(lines)
	s.mu.Unlock()
	s.save()
}

func (s *FileStore) Opacity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Opacity
}

func (s *FileStore) SetOpacity(value float64) {
	s.mu.Lock()
	s.values.Opacity = clamp01(value)
	s.mu.Unlock()
	s.save()
}

func (s *FileStore) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Volume
}

func (s *FileStore) SetVolume(value float64) {
	s.mu.Lock()
	s.values.Volume = clamp01(value)
	s.mu.Unlock()
	s.save()
}

func (s *FileStore) MediaID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.MediaID
}

func (s *FileStore) SetMediaID(id string) {
	s.mu.Lock()
	s.values.MediaID = id
	s.mu.Unlock()
	s.save()
}

func (s *FileStore) save() {
	s.mu.Lock()
	path := s.path
	snapshot := s.values
	snapshot.MRUFiles = cloneStrings(s.values.MRUFiles)
	snapshot.RecentMedia = cloneStrings(s.values.RecentMedia)
	s.mu.Unlock()
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logging.Error(err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		logging.Error(err)
		return
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(snapshot); err != nil {
		logging.Error(err)
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

var _ Repository = (*FileStore)(nil)
