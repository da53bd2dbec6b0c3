package config

import "testing"

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Listen != "127.0.0.1:0" {
		t.Fatalf("expected loopback listen default, got %q", cfg.App.Listen)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.ShowFooter || cfg.App.Verbose || cfg.Logging.Trace {
		t.Fatal("expected footer/verbose/trace disabled by default")
	}
	if cfg.App.InitialFile != "" {
		t.Fatalf("expected no initial file, got %q", cfg.App.InitialFile)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	environ := []string{
		"REELCODE_LISTEN=127.0.0.1:9001",
		"REELCODE_WIDTH=80",
		"REELCODE_VERBOSE=1",
	}
	cfg, err := LoadArgs([]string{"-listen", "127.0.0.1:9002", "-width", "120"}, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Listen != "127.0.0.1:9002" {
		t.Fatalf("expected flag to win, got %q", cfg.App.Listen)
	}
	if cfg.App.Width != 120 {
		t.Fatalf("expected width 120, got %d", cfg.App.Width)
	}
	if !cfg.App.Verbose {
		t.Fatal("expected verbose from environment")
	}
}

func TestLoadArgsPositionalFile(t *testing.T) {
	cfg, err := LoadArgs([]string{"-footer", "notes.js"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.InitialFile != "notes.js" {
		t.Fatalf("expected initial file, got %q", cfg.App.InitialFile)
	}
	if !cfg.App.ShowFooter {
		t.Fatal("expected footer enabled")
	}

	if _, err := LoadArgs([]string{"a.js", "b.js"}, nil); err == nil {
		t.Fatal("expected error for multiple file arguments")
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatal("expected error for negative width")
	}
	if _, err := LoadArgs([]string{"-height", "-2"}, nil); err == nil {
		t.Fatal("expected error for negative height")
	}
	if _, err := LoadArgs([]string{"-listen", " "}, nil); err == nil {
		t.Fatal("expected error for blank listen address")
	}
}

func TestLoadArgsIgnoresMalformedEnvNumbers(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"REELCODE_WIDTH=abc", "REELCODE_FOOTER=maybe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 0 {
		t.Fatalf("expected fallback width, got %d", cfg.App.Width)
	}
	if cfg.App.ShowFooter {
		t.Fatal("expected fallback footer")
	}
}
