package surface

import "testing"

type fakeTransport struct {
	posted []string
	accept bool
}

func (t *fakeTransport) Post(text string) bool {
	t.posted = append(t.posted, text)
	return t.accept
}

func TestBusSendReportsTransportAcceptance(t *testing.T) {
	transport := &fakeTransport{accept: true}
	bus := NewBus(transport)
	if !bus.Send(Envelope{Type: TypeRequestContent}) {
		t.Fatalf("expected send accepted")
	}
	if len(transport.posted) != 1 {
		t.Fatalf("expected one posted message, got %d", len(transport.posted))
	}

	transport.accept = false
	if bus.Send(Envelope{Type: TypeRequestContent}) {
		t.Fatalf("expected transport refusal propagated")
	}
}

func TestBusDispatchesByType(t *testing.T) {
	bus := NewBus(&fakeTransport{})
	var got []string
	bus.Handle(TypePlaybackChanged, func(env Envelope) {
		got = append(got, env.State)
	})

	bus.Receive(`{"type":"playback-changed","state":"paused"}`)
	if len(got) != 1 || got[0] != "paused" {
		t.Fatalf("unexpected dispatch result: %v", got)
	}
}

func TestBusDropsMalformedText(t *testing.T) {
	bus := NewBus(&fakeTransport{})
	called := false
	bus.Handle(TypeEditorReady, func(Envelope) { called = true })

	bus.Receive("not json")
	bus.Receive(`{"state":"paused"}`)
	bus.Receive("")
	if called {
		t.Fatalf("expected no dispatch for malformed text")
	}
}

func TestBusIgnoresUnknownTypes(t *testing.T) {
	bus := NewBus(&fakeTransport{})
	bus.Receive(`{"type":"never-registered"}`)
	// No panic, no error: unknown types are dropped.
}

func TestDecodeDistinguishesNullContent(t *testing.T) {
	env, err := Decode(`{"type":"editor-content","content":null}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if env.Content != nil {
		t.Fatalf("expected nil content for a null payload")
	}

	env, err = Decode(`{"type":"editor-content","content":""}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if env.Content == nil || *env.Content != "" {
		t.Fatalf("expected empty string content, got %#v", env.Content)
	}
}

func TestEncodeOmitsEmptyFields(t *testing.T) {
	text, err := Encode(Envelope{Type: TypeHostActivity})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if text != `{"type":"host-activity"}` {
		t.Fatalf("unexpected encoding: %s", text)
	}
}
