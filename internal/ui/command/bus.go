// Package command wraps palette command handlers into Bubble Tea commands
// with trace logging around dispatch.
package command

import (
	"fmt"

	"github.com/atomfield/reelcode/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a single command invocation.
type Request struct {
	Name    string
	Arg     string
	Handler func() tea.Cmd
}

// Bus coordinates the execution of palette commands.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a command handler into a Bubble Tea command while emitting
// trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.Name, req.Arg)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.Name, req.Arg)
			return nil
		}
		cmd := req.Handler()
		if cmd == nil {
			events.Command.NoOp(req.Name, req.Arg)
			return nil
		}
		msg := cmd()
		events.Command.Result(req.Name, req.Arg, fmt.Sprintf("%T", msg))
		return msg
	}
}
