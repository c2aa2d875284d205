package highlight

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

type State int

const (
	StateIdle State = iota
	StateSearching
	StateHighlighting
	StateCleared
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateHighlighting:
		return "highlighting"
	case StateCleared:
		return "cleared"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Action tells the owner of a Scroller what to do after a probe.
type Action int

const (
	// ActionNone: the probe was stale or the scroller is not searching.
	ActionNone Action = iota
	// ActionRetry: probe again after Step.Delay.
	ActionRetry
	// ActionHighlight: reveal the row and clear the emphasis after Step.Delay.
	ActionHighlight
	// ActionGiveUp: the retry budget is spent.
	ActionGiveUp
)

type Step struct {
	Action Action
	Delay  time.Duration
}

type Options struct {
	Interval   time.Duration // delay between probes
	MaxRetries int           // probes after the first one
	Duration   time.Duration // how long the emphasis stays on
}

// DefaultOptions retries every 200ms for 5s and flashes for 3s.
func DefaultOptions() Options {
	return Options{
		Interval:   200 * time.Millisecond,
		MaxRetries: 25,
		Duration:   3 * time.Second,
	}
}

// Scroller is the per-table highlight state machine:
//
//	Idle -> Searching -> Highlighting -> Cleared
//	                  \-> Exhausted
//
// Every Activate bumps the generation. Probe and Clear calls carrying an
// older generation are ignored, so a superseded retry loop can never flash
// a stale row.
type Scroller struct {
	opts     Options
	id       string
	gen      uint64
	attempts int
	state    State
	schedule backoff.BackOff
}

func NewScroller(opts Options) Scroller {
	d := DefaultOptions()
	if opts.Interval <= 0 {
		opts.Interval = d.Interval
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Duration <= 0 {
		opts.Duration = d.Duration
	}
	return Scroller{opts: opts}
}

// Activate starts searching for the row with the given element id and
// returns the generation that the caller must pass to Probe and Clear. An
// empty id resets the scroller to Idle.
func (s *Scroller) Activate(elementID string) uint64 {
	s.gen++
	s.id = elementID
	s.attempts = 0
	if elementID == "" {
		s.state = StateIdle
		s.schedule = nil
		return s.gen
	}
	s.state = StateSearching
	s.schedule = backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.Interval), uint64(s.opts.MaxRetries))
	return s.gen
}

// Probe records the outcome of one attempt to locate the row.
func (s *Scroller) Probe(gen uint64, found bool) Step {
	if gen != s.gen || s.state != StateSearching {
		return Step{Action: ActionNone}
	}
	s.attempts++
	if found {
		s.state = StateHighlighting
		return Step{Action: ActionHighlight, Delay: s.opts.Duration}
	}
	next := s.schedule.NextBackOff()
	if next == backoff.Stop {
		s.state = StateExhausted
		return Step{Action: ActionGiveUp}
	}
	return Step{Action: ActionRetry, Delay: next}
}

// Clear ends the emphasis. It reports false for stale generations.
func (s *Scroller) Clear(gen uint64) bool {
	if gen != s.gen || s.state != StateHighlighting {
		return false
	}
	s.state = StateCleared
	return true
}

func (s Scroller) ElementID() string  { return s.id }
func (s Scroller) Generation() uint64 { return s.gen }
func (s Scroller) State() State       { return s.state }
func (s Scroller) Attempts() int      { return s.attempts }
func (s Scroller) Options() Options   { return s.opts }

// Highlighted returns the element id currently emphasized, if any.
func (s Scroller) Highlighted() (string, bool) {
	if s.state != StateHighlighting {
		return "", false
	}
	return s.id, true
}
