package surface

import "testing"

type sendRecorder struct {
	sent   []Envelope
	accept bool
}

func (r *sendRecorder) send(env Envelope) bool {
	r.sent = append(r.sent, env)
	return r.accept
}

func (r *sendRecorder) types() []string {
	out := make([]string, 0, len(r.sent))
	for _, env := range r.sent {
		out = append(out, env.Type)
	}
	return out
}

func TestGateDefersIntentsUntilReady(t *testing.T) {
	rec := &sendRecorder{accept: true}
	gate := NewGate(rec.send)
	gate.BeginLoad()

	gate.LoadFile("package main", "go")
	gate.SetOpacity(0.7)
	gate.LoadMedia("abc", true)
	gate.SetVolume(0.4)
	if len(rec.sent) != 0 {
		t.Fatalf("expected nothing sent before readiness, got %v", rec.types())
	}

	gate.MarkReady()
	want := []string{TypeLoadCode, TypeSetOpacity, TypeLoadVideo, TypeSetVolume}
	got := rec.types()
	if len(got) != len(want) {
		t.Fatalf("expected %d flushed messages, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected flush order: %v", got)
		}
	}

	// Slots are consumed; a second readiness signal must not replay them.
	rec.sent = nil
	gate.MarkReady()
	if len(rec.sent) != 0 {
		t.Fatalf("expected consumed pending cells, got %v", rec.types())
	}
}

func TestGatePendingCellsAreLastWriteWins(t *testing.T) {
	rec := &sendRecorder{accept: true}
	gate := NewGate(rec.send)
	gate.BeginLoad()

	gate.SetOpacity(0.2)
	gate.SetOpacity(0.9)
	gate.MarkReady()

	if len(rec.sent) != 1 {
		t.Fatalf("expected a single flushed opacity, got %v", rec.types())
	}
	if rec.sent[0].Value == nil || *rec.sent[0].Value != 0.9 {
		t.Fatalf("expected latest value to win, got %#v", rec.sent[0])
	}
}

func TestGateAppliesImmediatelyWhenReady(t *testing.T) {
	rec := &sendRecorder{accept: true}
	gate := NewGate(rec.send)
	gate.BeginLoad()
	gate.MarkReady()

	gate.LoadMedia("abc", false)
	if len(rec.sent) != 1 || rec.sent[0].Type != TypeLoadVideo {
		t.Fatalf("expected immediate send, got %v", rec.types())
	}
}

func TestGateReloadKeepsPendingIntents(t *testing.T) {
	rec := &sendRecorder{accept: true}
	gate := NewGate(rec.send)
	gate.BeginLoad()
	gate.MarkReady()
	rec.sent = nil

	// Surface goes away mid-edit; the user's value arrives while loading.
	gate.BeginLoad()
	gate.SetOpacity(0.6)
	gate.BeginLoad()
	gate.MarkReady()

	if len(rec.sent) != 1 || rec.sent[0].Type != TypeSetOpacity {
		t.Fatalf("expected pending opacity to survive the reload, got %v", rec.types())
	}
}

func TestGateInitialLoadStartsEmpty(t *testing.T) {
	rec := &sendRecorder{accept: true}
	gate := NewGate(rec.send)
	gate.BeginLoad()
	gate.MarkReady()
	if len(rec.sent) != 0 {
		t.Fatalf("expected no flush on a fresh start, got %v", rec.types())
	}
}

func TestGateDropsControlMessagesWhileNotReady(t *testing.T) {
	rec := &sendRecorder{accept: true}
	gate := NewGate(rec.send)
	gate.BeginLoad()

	if gate.Control(Envelope{Type: TypeTogglePlayback}) {
		t.Fatalf("expected control message dropped while loading")
	}
	if len(rec.sent) != 0 {
		t.Fatalf("expected nothing sent, got %v", rec.types())
	}

	gate.MarkReady()
	if !gate.Control(Envelope{Type: TypeTogglePlayback}) {
		t.Fatalf("expected control message sent when ready")
	}
}

func TestGateStateTransitions(t *testing.T) {
	gate := NewGate((&sendRecorder{accept: true}).send)
	if gate.State() != NotLoaded {
		t.Fatalf("expected initial state not-loaded, got %v", gate.State())
	}
	gate.BeginLoad()
	if gate.State() != Loading {
		t.Fatalf("expected loading, got %v", gate.State())
	}
	gate.MarkReady()
	if gate.State() != Ready {
		t.Fatalf("expected ready, got %v", gate.State())
	}
	gate.BeginLoad()
	if gate.State() != Loading {
		t.Fatalf("expected reload back to loading, got %v", gate.State())
	}
}
