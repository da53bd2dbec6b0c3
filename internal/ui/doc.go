// Package ui contains the Bubble Tea program that powers the host window.
// The package is structured so the Model type focuses on message
// orchestration, while dedicated helpers own the command line, the recent-item
// pickers, rendering, and surface traffic.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each message through a typed handler registry so every
//     tea.Msg is handled by a focused function (key presses, surface events,
//     command results).
//   - The command line (internal/ui/input.go) owns the dual-purpose text
//     field: plain text loads media, text starting with a registered command
//     name or the '>' marker dispatches through the palette.
//   - Picker helpers (internal/ui/picker.go) manage the recent-file and
//     recent-media lists using internal/ui/state.Picker for cursor, filter,
//     and viewport tracking.
//
// Surface interactions:
//   - A surface.Server streams websocket events; Update waits for those
//     events and hands incoming text to the surface bus, whose handlers
//     update readiness, resolve pending content requests, and track playback
//     state.
//   - Host intents issued before the surface reports ready are parked in the
//     readiness gate and flushed on the ready signal.
//   - Command execution runs through the internal/ui/command bus, letting
//     slow work (file dialogs, content round trips) happen asynchronously
//     via tea.Cmd values.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (command parsing, pickers, surface sync) without
// needing to reason about the entire program at once.
package ui
