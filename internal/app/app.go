package app

import (
	"errors"
	"fmt"

	"github.com/atomfield/reelcode/internal/dialog"
	"github.com/atomfield/reelcode/internal/settings"
	"github.com/atomfield/reelcode/internal/surface"
	"github.com/atomfield/reelcode/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Listen       string
	SettingsPath string
	OpenDialog   string
	SaveDialog   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	InitialFile  string
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	path := cfg.SettingsPath
	if path == "" {
		path = settings.DefaultPath()
	}
	store, err := settings.Open(path)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	server := surface.NewServer(cfg.Listen)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start surface listener: %w", err)
	}
	defer server.Stop()
	var dialogs dialog.Provider
	if p := dialog.NewCommandProvider(cfg.OpenDialog, cfg.SaveDialog); p.Available() {
		dialogs = p
	}
	model := ui.NewModel(server, store, dialogs, surface.NoCapabilities{}, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, cfg.InitialFile)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
