package settings

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFileYieldsDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "settings.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Opacity(); got != DefaultOpacity {
		t.Fatalf("expected default opacity %v, got %v", DefaultOpacity, got)
	}
	if got := s.Volume(); got != DefaultVolume {
		t.Fatalf("expected default volume %v, got %v", DefaultVolume, got)
	}
	if got := s.MediaID(); got != DefaultMediaID {
		t.Fatalf("expected default media id %q, got %q", DefaultMediaID, got)
	}
	if got := s.MRUFiles(); len(got) != 0 {
		t.Fatalf("expected no recent files, got %v", got)
	}
}

func TestSettersPersistAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.SetOpacity(0.25)
	s.SetVolume(0.75)
	s.SetMediaID("dQw4w9WgXcQ")
	s.SetMRUFiles([]string{"/tmp/a.js", "/tmp/b.js"})
	s.SetRecentMedia([]string{"dQw4w9WgXcQ|Some Title"})

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reopened.Opacity(); got != 0.25 {
		t.Fatalf("expected opacity 0.25, got %v", got)
	}
	if got := reopened.Volume(); got != 0.75 {
		t.Fatalf("expected volume 0.75, got %v", got)
	}
	if got := reopened.MediaID(); got != "dQw4w9WgXcQ" {
		t.Fatalf("expected media id to round trip, got %q", got)
	}
	if got := reopened.MRUFiles(); len(got) != 2 || got[0] != "/tmp/a.js" {
		t.Fatalf("expected recent files to round trip, got %v", got)
	}
	if got := reopened.RecentMedia(); len(got) != 1 || got[0] != "dQw4w9WgXcQ|Some Title" {
		t.Fatalf("expected recent media to round trip, got %v", got)
	}
}

func TestPartialFileKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("opacity = 0.4\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Opacity(); got != 0.4 {
		t.Fatalf("expected opacity 0.4, got %v", got)
	}
	if got := s.Volume(); got != DefaultVolume {
		t.Fatalf("expected default volume, got %v", got)
	}
	if got := s.MediaID(); got != DefaultMediaID {
		t.Fatalf("expected default media id, got %q", got)
	}
}

func TestOutOfRangeValuesClamp(t *testing.T) {
	s := NewMemory()
	s.SetOpacity(1.5)
	if got := s.Opacity(); got != 1 {
		t.Fatalf("expected opacity clamped to 1, got %v", got)
	}
	s.SetVolume(-0.2)
	if got := s.Volume(); got != 0 {
		t.Fatalf("expected volume clamped to 0, got %v", got)
	}
}

func TestNonFiniteValuesClamp(t *testing.T) {
	s := NewMemory()
	s.SetOpacity(math.NaN())
	if got := s.Opacity(); got != 0 {
		t.Fatalf("expected NaN opacity clamped to 0, got %v", got)
	}
	s.SetVolume(math.Inf(1))
	if got := s.Volume(); got != 1 {
		t.Fatalf("expected +Inf volume clamped to 1, got %v", got)
	}
}

func TestCallerCannotMutateStoredSlices(t *testing.T) {
	s := NewMemory()
	in := []string{"/tmp/a.js"}
	s.SetMRUFiles(in)
	in[0] = "/tmp/mutated.js"
	if got := s.MRUFiles(); got[0] != "/tmp/a.js" {
		t.Fatalf("expected stored copy untouched, got %v", got)
	}
	out := s.MRUFiles()
	out[0] = "/tmp/mutated.js"
	if got := s.MRUFiles(); got[0] != "/tmp/a.js" {
		t.Fatalf("expected returned copy detached, got %v", got)
	}
}

func TestMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("opacity = [not toml"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("expected decode error")
	}
}
