// Package dialog abstracts native file pickers. The host shells out to an
// external picker command (zenity, kdialog, fzf wrappers) so it stays usable
// on systems without a desktop toolkit.
package dialog

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// ErrUnavailable marks hosts without a configured picker command.
var ErrUnavailable = errors.New("no file dialog configured")

// ErrCanceled marks a dialog the user dismissed without choosing a file.
var ErrCanceled = errors.New("dialog canceled")

// Provider opens native-style file dialogs. Both calls block until the user
// picks a file or dismisses the dialog.
type Provider interface {
	PickOpenFile(ctx context.Context) (string, error)
	PickSaveFile(ctx context.Context, suggested string) (string, error)
}

// CommandProvider runs configured commands and reads the chosen path from
// stdout. A nonzero exit is treated as cancellation.
type CommandProvider struct {
	OpenArgv []string
	SaveArgv []string
}

// NewCommandProvider builds a provider from whitespace-separated command
// lines. Empty strings leave the corresponding dialog unavailable.
func NewCommandProvider(openCmd, saveCmd string) *CommandProvider {
	return &CommandProvider{
		OpenArgv: strings.Fields(openCmd),
		SaveArgv: strings.Fields(saveCmd),
	}
}

// Available reports whether at least one dialog command is configured.
func (p *CommandProvider) Available() bool {
	return p != nil && (len(p.OpenArgv) > 0 || len(p.SaveArgv) > 0)
}

func (p *CommandProvider) PickOpenFile(ctx context.Context) (string, error) {
	return p.run(ctx, p.OpenArgv, "")
}

func (p *CommandProvider) PickSaveFile(ctx context.Context, suggested string) (string, error) {
	return p.run(ctx, p.SaveArgv, suggested)
}

func (p *CommandProvider) run(ctx context.Context, argv []string, suggested string) (string, error) {
	if p == nil || len(argv) == 0 {
		return "", ErrUnavailable
	}
	args := argv[1:]
	if suggested != "" {
		args = append(append([]string{}, args...), suggested)
	}
	out, err := exec.CommandContext(ctx, argv[0], args...).Output()
	if err != nil {
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			return "", ErrCanceled
		}
		return "", err
	}
	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", ErrCanceled
	}
	return path, nil
}

var _ Provider = (*CommandProvider)(nil)
