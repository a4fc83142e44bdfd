// Package id generates the prefixed ULIDs used across the server.
//
// IDs sort by creation time and carry a type prefix so log lines are
// readable at a glance:
//   - sess_*: browser session (cookie value, upstream pool key)
//   - req_*: one HTTP request
//   - run_*: one auto run
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// SessionID identifies a browser session and its upstream cookie jar
type SessionID string

// RequestID identifies an API request
type RequestID string

// RunID identifies one auto run
type RunID string

const (
	SessionPrefix = "sess"
	RequestPrefix = "req"
	RunPrefix     = "run"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the shared generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewSessionID generates a new session ID
func NewSessionID() SessionID {
	return SessionID(Default().GenerateWithPrefix(SessionPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewRunID generates a new auto run ID
func NewRunID() RunID {
	return RunID(Default().GenerateWithPrefix(RunPrefix))
}

func (id SessionID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }
func (id RunID) String() string     { return string(id) }

// ParseSessionID accepts a client-supplied session ID only if it is a
// well-formed sess_ ULID
func ParseSessionID(s string) (SessionID, bool) {
	if !HasPrefix(s, SessionPrefix) {
		return "", false
	}
	return SessionID(s), true
}

// HasPrefix reports whether s is prefix_ followed by a valid ULID
func HasPrefix(s, prefix string) bool {
	rest, ok := strings.CutPrefix(s, prefix+"_")
	return ok && IsValid(rest)
}

// IsValid checks if a string is a valid ULID
func IsValid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Timestamp extracts the creation time of a prefixed or bare ULID
func Timestamp(s string) (time.Time, error) {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		s = s[i+1:]
	}
	parsed, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return ulid.Time(parsed.Time()), nil
}
