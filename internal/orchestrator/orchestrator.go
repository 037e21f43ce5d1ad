// Package orchestrator decides when edits turn into service requests and
// which responses are allowed to reach the render targets.
//
// The Orchestrator is a synchronous state machine:
//
//	Idle -> PendingDebounce -> InFlight -> (Applied | Failed) -> Idle
//
// It owns no timers. Callers schedule Fire after Delay, either with a
// tea.Tick (TUI) or a Debouncer (headless).
package orchestrator

import (
	"sync"
	"time"

	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/service"
)

// DefaultDelay is the debounce window.
const DefaultDelay = 600 * time.Millisecond

// State is the orchestrator phase.
type State int

const (
	Idle State = iota
	PendingDebounce
	InFlight
	Applied
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingDebounce:
		return "pending"
	case InFlight:
		return "in flight"
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket identifies one debounce window. Only the newest ticket fires.
type Ticket uint64

// Request is one issued service call.
type Request struct {
	Seq      uint64
	Snapshot service.Snapshot
	Manual   bool
	IssuedAt time.Time
}

// Options configures an Orchestrator.
type Options struct {
	// Delay is the debounce window; zero uses DefaultDelay.
	Delay time.Duration
	// Sequencing discards responses older than the last applied one. Without
	// it the last response to arrive wins.
	Sequencing bool
	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

// Orchestrator tracks debounce windows and in-flight requests.
// It is safe for concurrent use.
type Orchestrator struct {
	mu         sync.Mutex
	delay      time.Duration
	sequencing bool
	now        func() time.Time

	ticket   Ticket
	pending  *service.Snapshot
	seq      uint64
	applied  uint64
	inFlight int
	outcome  State
}

// New creates an Orchestrator in the Idle state.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		delay:      opts.Delay,
		sequencing: opts.Sequencing,
		now:        opts.Now,
	}
	if o.delay <= 0 {
		o.delay = DefaultDelay
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Delay returns the debounce window.
func (o *Orchestrator) Delay() time.Duration {
	return o.delay
}

// Sequencing reports whether stale responses are discarded.
func (o *Orchestrator) Sequencing() bool {
	return o.sequencing
}

// Edit records a qualifying input change and restarts the debounce window.
// Every earlier ticket becomes stale.
func (o *Orchestrator) Edit(s service.Snapshot) Ticket {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.ticket++
	o.pending = &s
	return o.ticket
}

// Fire is called when the window of t expires. It returns the request to
// issue, or false when t was superseded by a later edit, run or clear.
func (o *Orchestrator) Fire(t Ticket) (Request, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if t != o.ticket || o.pending == nil {
		log.Debug(log.CatOrch, "stale debounce ticket", "ticket", t, "current", o.ticket)
		return Request{}, false
	}
	s := *o.pending
	o.pending = nil
	return o.issue(s, false), true
}

// Run issues a request immediately. A pending debounce window is cancelled;
// requests already in flight are not.
func (o *Orchestrator) Run(s service.Snapshot) Request {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.ticket++
	o.pending = nil
	return o.issue(s, true)
}

func (o *Orchestrator) issue(s service.Snapshot, manual bool) Request {
	o.seq++
	o.inFlight++
	req := Request{Seq: o.seq, Snapshot: s, Manual: manual, IssuedAt: o.now()}
	log.Debug(log.CatOrch, "issuing request", "seq", req.Seq, "manual", manual, "in_flight", o.inFlight)
	return req
}

// Complete reconciles the response to req. It returns false when the
// response must be dropped because a newer one was already applied.
func (o *Orchestrator) Complete(req Request, res service.Result) (service.Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight > 0 {
		o.inFlight--
	}

	if o.sequencing && req.Seq < o.applied {
		log.Debug(log.CatOrch, "discarding stale response", "seq", req.Seq, "applied", o.applied)
		return res, false
	}

	if req.Seq > o.applied {
		o.applied = req.Seq
	}
	if res.Failed() {
		o.outcome = Failed
	} else {
		o.outcome = Applied
	}
	log.Debug(log.CatOrch, "applying response", "seq", req.Seq, "outcome", o.outcome,
		"elapsed", o.now().Sub(req.IssuedAt).Round(time.Millisecond))
	return res, true
}

// Clear cancels any pending window. With sequencing, responses to requests
// issued before the clear are discarded when they arrive.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.ticket++
	o.pending = nil
	o.outcome = Idle
	if o.sequencing {
		o.applied = o.seq + 1
		o.seq = o.applied
	}
}

// State returns the current phase. Once nothing is pending or in flight the
// orchestrator is Idle.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch {
	case o.pending != nil:
		return PendingDebounce
	case o.inFlight > 0:
		return InFlight
	default:
		return Idle
	}
}

// Outcome returns Applied or Failed for the last applied response, or Idle
// before the first one and after Clear.
func (o *Orchestrator) Outcome() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.outcome
}

// InFlight returns the number of issued requests without a response.
func (o *Orchestrator) InFlight() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}
