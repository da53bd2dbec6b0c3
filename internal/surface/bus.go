package surface

import (
	"github.com/atomfield/reelcode/internal/logging/events"
)

// Transport carries raw message text toward the surface. Post reports whether
// the transport accepted the message; it says nothing about delivery or
// processing.
type Transport interface {
	Post(text string) bool
}

// Handler consumes a dispatched envelope.
type Handler func(Envelope)

// Bus serializes envelopes onto the transport and dispatches received text to
// per-type handlers. Malformed text is dropped with a diagnostic; unknown
// types are ignored.
type Bus struct {
	transport Transport
	handlers  map[string]Handler
}

// NewBus builds a bus over the given transport.
func NewBus(transport Transport) *Bus {
	return &Bus{transport: transport, handlers: make(map[string]Handler)}
}

// Handle registers the handler for a message type. Each type has exactly one
// handler; a later registration replaces an earlier one.
func (b *Bus) Handle(msgType string, handler Handler) {
	b.handlers[msgType] = handler
}

// Send encodes and posts an envelope. The result is the transport-level
// acknowledgment only.
func (b *Bus) Send(env Envelope) bool {
	text, err := Encode(env)
	if err != nil {
		events.Bus.Malformed(env.Type, err)
		return false
	}
	accepted := b.transport.Post(text)
	events.Bus.Send(env.Type, accepted)
	return accepted
}

// Receive parses raw message text and dispatches it. It never fails: bad
// input is logged and dropped.
func (b *Bus) Receive(raw string) {
	env, err := Decode(raw)
	if err != nil {
		events.Bus.Malformed(raw, err)
		return
	}
	handler, ok := b.handlers[env.Type]
	if !ok {
		events.Bus.Unknown(env.Type)
		return
	}
	events.Bus.Dispatch(env.Type)
	handler(env)
}
