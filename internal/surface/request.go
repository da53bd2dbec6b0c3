package surface

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/atomfield/reelcode/internal/logging/events"
	"github.com/google/uuid"
)

// KindContent identifies the "fetch current editor content" request kind.
const KindContent = "content"

// DefaultRequestTimeout bounds how long a request waits for its reply.
const DefaultRequestTimeout = 3 * time.Second

var (
	// ErrTimeout reports that the deadline elapsed before a reply arrived.
	// Distinct from an empty reply, which resolves successfully with nil.
	ErrTimeout = errors.New("surface: request timed out")
	// ErrSuperseded reports that a newer request of the same kind replaced
	// this one before it resolved.
	ErrSuperseded = errors.New("surface: request superseded")
)

type pendingRequest struct {
	id         string
	result     chan *string
	superseded chan struct{}
}

// Correlator turns the fire-and-forget message channel into an awaitable
// request/response exchange. At most one request per kind is in flight; a
// newer request supersedes an older unanswered one rather than queuing.
type Correlator struct {
	timeout time.Duration

	mu       sync.Mutex
	inflight map[string]*pendingRequest
}

// NewCorrelator builds a correlator. A non-positive timeout selects the
// default deadline.
func NewCorrelator(timeout time.Duration) *Correlator {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Correlator{timeout: timeout, inflight: make(map[string]*pendingRequest)}
}

// Request registers an in-flight slot for kind, invokes send, and waits for
// the matching reply, the deadline, or supersession. The resolved payload may
// legitimately be nil, which callers treat as data-unavailable rather than
// failure.
func (c *Correlator) Request(ctx context.Context, kind string, send func() bool) (*string, error) {
	req := &pendingRequest{
		id:         uuid.NewString(),
		result:     make(chan *string, 1),
		superseded: make(chan struct{}),
	}
	c.mu.Lock()
	if prev := c.inflight[kind]; prev != nil {
		close(prev.superseded)
		events.Request.Supersede(kind, prev.id)
	}
	c.inflight[kind] = req
	c.mu.Unlock()

	events.Request.Start(kind, req.id)
	if send != nil {
		// A transport refusal still runs out the clock; the caller sees a
		// timeout either way.
		send()
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case payload := <-req.result:
		events.Request.Resolve(kind, payload == nil)
		return payload, nil
	case <-req.superseded:
		return nil, ErrSuperseded
	case <-timer.C:
		c.abandon(kind, req)
		// A reply may have slipped in while the timer fired.
		select {
		case payload := <-req.result:
			events.Request.Resolve(kind, payload == nil)
			return payload, nil
		default:
		}
		events.Request.Timeout(kind, req.id)
		return nil, ErrTimeout
	case <-ctx.Done():
		c.abandon(kind, req)
		return nil, ctx.Err()
	}
}

// Resolve delivers a reply payload to the in-flight request of the given
// kind, consuming its slot. A reply with no matching request (typically one
// arriving after its deadline) is discarded.
func (c *Correlator) Resolve(kind string, payload *string) bool {
	c.mu.Lock()
	req := c.inflight[kind]
	if req != nil {
		delete(c.inflight, kind)
	}
	c.mu.Unlock()
	if req == nil {
		events.Request.LateReply(kind)
		return false
	}
	req.result <- payload
	return true
}

func (c *Correlator) abandon(kind string, req *pendingRequest) {
	c.mu.Lock()
	if c.inflight[kind] == req {
		delete(c.inflight, kind)
	}
	c.mu.Unlock()
}
