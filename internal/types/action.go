package types

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Outcome is the coarse result of a remote action
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFailure
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// FailureKind separates transport problems from remote-site verdicts
type FailureKind int

const (
	KindNone FailureKind = iota
	// KindTransport means the proxy or network failed; the site never answered
	KindTransport
	// KindDomain means the site answered and said no
	KindDomain
	// KindNotAuthenticated means the action was refused locally before any call
	KindNotAuthenticated
)

// String returns the string representation of the kind
func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindDomain:
		return "domain"
	case KindNotAuthenticated:
		return "not_authenticated"
	default:
		return "unknown"
	}
}

// ActionResult is the value returned by every remote action.
// Outcome is always set and Message is never empty.
type ActionResult struct {
	Outcome Outcome
	Kind    FailureKind
	Message string
}

// Succeeded creates a successful result
func Succeeded(message string) ActionResult {
	return ActionResult{Outcome: OutcomeSuccess, Kind: KindNone, Message: nonEmpty(message, "ok")}
}

// TransportFailure creates a failed result caused by the proxy or network
func TransportFailure(message string) ActionResult {
	return ActionResult{Outcome: OutcomeFailure, Kind: KindTransport, Message: nonEmpty(message, "transport error")}
}

// DomainFailure creates a failed result decided by the remote site
func DomainFailure(message string) ActionResult {
	return ActionResult{Outcome: OutcomeFailure, Kind: KindDomain, Message: nonEmpty(message, "action failed")}
}

// NotAuthenticated creates the result for actions attempted while logged out
func NotAuthenticated() ActionResult {
	return ActionResult{Outcome: OutcomeFailure, Kind: KindNotAuthenticated, Message: "Not logged in"}
}

// OK reports whether the action succeeded
func (r ActionResult) OK() bool { return r.Outcome == OutcomeSuccess }

// IsTransport reports whether the failure came from the transport layer
func (r ActionResult) IsTransport() bool { return r.Outcome == OutcomeFailure && r.Kind == KindTransport }

// IsDomain reports whether the failure was the remote site's verdict
func (r ActionResult) IsDomain() bool { return r.Outcome == OutcomeFailure && r.Kind == KindDomain }

// String renders the result for logs and terminals
func (r ActionResult) String() string {
	if r.OK() {
		return fmt.Sprintf("success: %s", r.Message)
	}
	return fmt.Sprintf("failure (%s): %s", r.Kind, r.Message)
}

// MarshalJSON renders the result in the {success, message} shape of the API
func (r ActionResult) MarshalJSON() ([]byte, error) {
	out := struct {
		Success bool   `json:"success"`
		Kind    string `json:"kind,omitempty"`
		Message string `json:"message"`
	}{
		Success: r.OK(),
		Message: r.Message,
	}
	if !r.OK() {
		out.Kind = r.Kind.String()
	}
	return sonic.Marshal(out)
}

// Credentials are held only for the duration of a login or auto run
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate rejects blank credentials
func (c Credentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}

// MaxFeedAttempts caps feed submissions per Feed call
const MaxFeedAttempts = 10

// FeedingSession is the counter state of one Feed call
type FeedingSession struct {
	AttemptsMade int
	MaxAttempts  int
}

// NewFeedingSession creates a session with the default cap
func NewFeedingSession() *FeedingSession {
	return &FeedingSession{MaxAttempts: MaxFeedAttempts}
}

// Exhausted reports whether the cap has been reached
func (s *FeedingSession) Exhausted() bool {
	return s.AttemptsMade >= s.MaxAttempts
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
