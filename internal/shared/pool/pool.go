// Package pool keeps one value per browser session and forgets sessions
// that stay idle.
package pool

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/shared/id"
)

// ErrNoSession is returned when a session has no entry
var ErrNoSession = errors.New("no such session")

// Factory builds the value for a new session
type Factory[V any] func(sid id.SessionID) (V, error)

type entry[V any] struct {
	value    V
	lastUsed time.Time
}

// Pool maps session IDs to values with idle expiry
type Pool[V any] struct {
	factory Factory[V]
	idle    time.Duration
	logger  *logging.Logger
	onSize  func(int)
	now     func() time.Time

	mu      sync.Mutex
	entries map[id.SessionID]*entry[V]
}

// New creates a pool. onSize, if set, is called with the new size on every change.
func New[V any](factory Factory[V], idle time.Duration, logger *logging.Logger, onSize func(int)) *Pool[V] {
	if logger == nil {
		logger = logging.NewNop()
	}
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &Pool[V]{
		factory: factory,
		idle:    idle,
		logger:  logger.Named("pool"),
		onSize:  onSize,
		now:     time.Now,
		entries: make(map[id.SessionID]*entry[V]),
	}
}

// Get returns the session's value, creating it on first use
func (p *Pool[V]) Get(sid id.SessionID) (V, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.entries[sid]; ok {
		e.lastUsed = p.now()
		return e.value, nil
	}

	v, err := p.factory(sid)
	if err != nil {
		var zero V
		return zero, err
	}
	p.entries[sid] = &entry[V]{value: v, lastUsed: p.now()}
	p.logger.Debug("session created", logging.Session(sid))
	p.sizeChanged()
	return v, nil
}

// Lookup returns the session's value without creating one
func (p *Pool[V]) Lookup(sid id.SessionID) (V, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[sid]
	if !ok {
		var zero V
		return zero, ErrNoSession
	}
	e.lastUsed = p.now()
	return e.value, nil
}

// Drop forgets a session
func (p *Pool[V]) Drop(sid id.SessionID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.entries[sid]; ok {
		delete(p.entries, sid)
		p.sizeChanged()
	}
}

// Sweep removes sessions idle for longer than the idle timeout
func (p *Pool[V]) Sweep() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().Add(-p.idle)
	removed := 0
	for sid, e := range p.entries {
		if e.lastUsed.Before(cutoff) {
			delete(p.entries, sid)
			removed++
		}
	}
	if removed > 0 {
		p.logger.Info("expired idle sessions", zap.Int("removed", removed), zap.Int("remaining", len(p.entries)))
		p.sizeChanged()
	}
	return removed
}

// Len returns the number of live sessions
func (p *Pool[V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Run sweeps periodically until ctx is done
func (p *Pool[V]) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Sweep()
		}
	}
}

// sizeChanged reports the pool size. Caller holds mu.
func (p *Pool[V]) sizeChanged() {
	if p.onSize != nil {
		p.onSize(len(p.entries))
	}
}
