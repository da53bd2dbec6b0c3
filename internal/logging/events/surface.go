package events

import "github.com/atomfield/reelcode/internal/logging"

type BusTracer struct{}

type ReadinessTracer struct{}

type RequestTracer struct{}

type SurfaceTracer struct{}

var (
	Bus       = BusTracer{}
	Readiness = ReadinessTracer{}
	Request   = RequestTracer{}
	Surface   = SurfaceTracer{}
)

func (BusTracer) Send(msgType string, accepted bool) {
	logging.Trace("bus.send", map[string]interface{}{"type": msgType, "accepted": accepted})
}

func (BusTracer) Drop(msgType, reason string) {
	logging.Trace("bus.drop", map[string]interface{}{"type": msgType, "reason": reason})
}

func (BusTracer) Malformed(raw string, err error) {
	logging.Trace("bus.malformed", map[string]interface{}{"raw": raw, "error": err.Error()})
}

func (BusTracer) Unknown(msgType string) {
	logging.Trace("bus.unknown", map[string]interface{}{"type": msgType})
}

func (BusTracer) Dispatch(msgType string) {
	logging.Trace("bus.dispatch", map[string]interface{}{"type": msgType})
}

func (ReadinessTracer) Transition(from, to string, reload bool) {
	logging.Trace("readiness.transition", map[string]interface{}{"from": from, "to": to, "reload": reload})
}

func (ReadinessTracer) Pend(slot string) {
	logging.Trace("readiness.pend", map[string]interface{}{"slot": slot})
}

func (ReadinessTracer) Flush(slots []string) {
	logging.Trace("readiness.flush", map[string]interface{}{"slots": slots})
}

func (RequestTracer) Start(kind, id string) {
	logging.Trace("request.start", map[string]interface{}{"kind": kind, "id": id})
}

func (RequestTracer) Supersede(kind, id string) {
	logging.Trace("request.supersede", map[string]interface{}{"kind": kind, "id": id})
}

func (RequestTracer) Resolve(kind string, empty bool) {
	logging.Trace("request.resolve", map[string]interface{}{"kind": kind, "empty": empty})
}

func (RequestTracer) Timeout(kind, id string) {
	logging.Trace("request.timeout", map[string]interface{}{"kind": kind, "id": id})
}

func (RequestTracer) LateReply(kind string) {
	logging.Trace("request.late-reply", map[string]interface{}{"kind": kind})
}

func (SurfaceTracer) Connected(remote string) {
	logging.Trace("surface.connected", map[string]interface{}{"remote": remote})
}

func (SurfaceTracer) Disconnected(err string) {
	logging.Trace("surface.disconnected", map[string]interface{}{"error": err})
}

func (SurfaceTracer) Log(message string) {
	logging.Trace("surface.log", map[string]interface{}{"message": message})
}

func (SurfaceTracer) Capability(feature string, enabled bool) {
	logging.Trace("surface.capability", map[string]interface{}{"feature": feature, "enabled": enabled})
}
