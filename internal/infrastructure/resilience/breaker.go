package resilience

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrCircuitOpen     = errors.New("upstream circuit is open")
	ErrTooManyRequests = errors.New("upstream is recovering, too many probes")
)

// State of a breaker
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings configures a Breaker
type Settings struct {
	// Probes is how many calls may run while half-open
	Probes uint32
	// Threshold is how many consecutive failures open the circuit
	Threshold uint32
	// Cooldown is how long the circuit stays open
	Cooldown time.Duration
	// OnStateChange is called on every transition, under the breaker lock
	OnStateChange func(name string, from, to State)
}

// Counts holds the breaker statistics since the last transition
type Counts struct {
	Requests            uint32
	Failures            uint32
	ConsecutiveFailures uint32
	ConsecutiveSuccess  uint32
}

// Breaker stops calling an upstream that keeps failing
type Breaker struct {
	name     string
	settings Settings
	now      func() time.Time

	mu       sync.Mutex
	state    State
	counts   Counts
	openedAt time.Time
	gen      uint64
}

// New creates a breaker
func New(name string, settings Settings) *Breaker {
	if settings.Probes == 0 {
		settings.Probes = 1
	}
	if settings.Threshold == 0 {
		settings.Threshold = 5
	}
	if settings.Cooldown == 0 {
		settings.Cooldown = 30 * time.Second
	}

	return &Breaker{
		name:     name,
		settings: settings,
		now:      time.Now,
	}
}

// Name returns the breaker name
func (b *Breaker) Name() string {
	return b.name
}

// State returns the current state
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current()
}

// Counts returns a copy of the counts
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts
}

// Do runs fn unless the circuit is open. A panic in fn counts as a failure.
func (b *Breaker) Do(fn func() error) error {
	gen, err := b.before()
	if err != nil {
		return err
	}

	defer func() {
		if e := recover(); e != nil {
			b.after(gen, false)
			panic(e)
		}
	}()

	err = fn()
	b.after(gen, err == nil)
	return err
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current() {
	case StateOpen:
		return b.gen, ErrCircuitOpen
	case StateHalfOpen:
		if b.counts.Requests >= b.settings.Probes {
			return b.gen, ErrTooManyRequests
		}
	}

	b.counts.Requests++
	return b.gen, nil
}

func (b *Breaker) after(gen uint64, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.current()
	if gen != b.gen {
		return
	}

	if ok {
		b.counts.ConsecutiveSuccess++
		b.counts.ConsecutiveFailures = 0
		if state == StateHalfOpen && b.counts.ConsecutiveSuccess >= b.settings.Probes {
			b.transition(StateClosed)
		}
		return
	}

	b.counts.Failures++
	b.counts.ConsecutiveFailures++
	b.counts.ConsecutiveSuccess = 0
	if state == StateHalfOpen || b.counts.ConsecutiveFailures >= b.settings.Threshold {
		b.transition(StateOpen)
	}
}

// current moves an expired open circuit to half-open. Caller holds mu.
func (b *Breaker) current() State {
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.settings.Cooldown {
		b.transition(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) transition(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.counts = Counts{}
	b.gen++
	if to == StateOpen {
		b.openedAt = b.now()
	}

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.name, from, to)
	}
}
