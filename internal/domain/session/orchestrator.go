package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/shared/id"
	"github.com/GriffinCanCode/teveclub/internal/types"
)

// ActionClient is the remote client the orchestrator drives
type ActionClient interface {
	Login(ctx context.Context, username, password string) types.ActionResult
	Feed(ctx context.Context) types.ActionResult
	Learn(ctx context.Context) types.ActionResult
	Guess(ctx context.Context) types.ActionResult
	SetFood(ctx context.Context, id string) types.ActionResult
	SetDrink(ctx context.Context, id string) types.ActionResult
	Logout(ctx context.Context) types.ActionResult
	FetchCurrentFoodDrink(ctx context.Context) (types.FoodDrink, types.ActionResult)
	FetchCurrentTrick(ctx context.Context) (string, types.ActionResult)
}

// State is the orchestrator's view of the remote login
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

// String returns the string representation of the state
func (s State) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// Observer is called after every step of an auto run
type Observer func(step types.StepResult)

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l.Named("session")
		}
	}
}

// WithLoginGuard refuses single actions while logged out
func WithLoginGuard() Option {
	return func(o *Orchestrator) { o.guard = true }
}

// WithObserver streams auto run progress
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// Orchestrator sequences remote actions for one user session.
// Calls are serialised; one orchestrator serves one session.
type Orchestrator struct {
	client   ActionClient
	logger   *logging.Logger
	guard    bool
	observer Observer

	mu        sync.Mutex
	state     State
	username  string
	lastLogin time.Time
}

// New creates an orchestrator over client
func New(client ActionClient, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client: client,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the tracked login state and user
func (o *Orchestrator) State() (State, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.username
}

// RunAutoSequence logs in, feeds, learns, guesses and logs out.
// A failed login aborts the run; any later failure is a warning.
// Logout always runs once logged in and decides the final status.
func (o *Orchestrator) RunAutoSequence(ctx context.Context, creds types.Credentials) types.AutoRunReport {
	return o.StreamAutoSequence(ctx, creds, nil)
}

// StreamAutoSequence runs the auto sequence and also reports each step to
// progress, after the orchestrator's own observer.
func (o *Orchestrator) StreamAutoSequence(ctx context.Context, creds types.Credentials, progress Observer) types.AutoRunReport {
	o.mu.Lock()
	defer o.mu.Unlock()

	log := o.logger.With(zap.Stringer("run", id.NewRunID()), logging.User(creds.Username))
	record := func(report *types.AutoRunReport, step types.Step, result types.ActionResult, soft bool) {
		sr := o.record(log, report, step, result, soft)
		if progress != nil {
			progress(sr)
		}
	}

	start := time.Now()
	report := types.AutoRunReport{Steps: make([]types.StepResult, 0, 5)}

	login := o.login(ctx, creds.Username, creds.Password)
	if !login.OK() {
		record(&report, types.StepLogin, login, false)
		report.Status = types.StatusFailure
		log.Info("auto run aborted", zap.String("reason", login.Message))
		return report
	}
	record(&report, types.StepLogin, login, false)

	record(&report, types.StepFeed, o.client.Feed(ctx), true)
	record(&report, types.StepLearn, o.client.Learn(ctx), true)
	record(&report, types.StepGuess, o.client.Guess(ctx), true)

	logout := o.logout(ctx)
	record(&report, types.StepLogout, logout, true)

	report.Status = types.StatusSuccess
	if !logout.OK() {
		report.Status = types.StatusWarning
	}

	log.Info("auto run finished",
		zap.String("status", string(report.Status)),
		zap.Int("warnings", report.Warnings()),
		zap.Duration("elapsed", time.Since(start)))
	return report
}

func (o *Orchestrator) record(log *logging.Logger, report *types.AutoRunReport, step types.Step, result types.ActionResult, soft bool) types.StepResult {
	sr := types.StepResult{Step: step, Result: result, Warning: soft && !result.OK()}
	report.Steps = append(report.Steps, sr)

	if sr.Warning {
		log.Warn("step failed, continuing",
			zap.String("step", string(step)),
			logging.Result(result))
	}
	if o.observer != nil {
		o.observer(sr)
	}
	return sr
}

// Login forwards to the client and tracks the resulting state
func (o *Orchestrator) Login(ctx context.Context, username, password string) types.ActionResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.login(ctx, username, password)
}

func (o *Orchestrator) login(ctx context.Context, username, password string) types.ActionResult {
	result := o.client.Login(ctx, username, password)
	if result.OK() {
		o.state = LoggedIn
		o.username = username
		o.lastLogin = time.Now()
	}
	return result
}

// Logout forwards to the client; the session is considered closed afterwards
func (o *Orchestrator) Logout(ctx context.Context) types.ActionResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.refuse() {
		return types.NotAuthenticated()
	}
	return o.logout(ctx)
}

func (o *Orchestrator) logout(ctx context.Context) types.ActionResult {
	result := o.client.Logout(ctx)
	if result.OK() {
		if !o.lastLogin.IsZero() {
			o.logger.Debug("session closed",
				logging.User(o.username),
				zap.Duration("duration", time.Since(o.lastLogin)))
		}
		o.state = LoggedOut
		o.username = ""
	}
	return result
}

// Feed forwards to the client
func (o *Orchestrator) Feed(ctx context.Context) types.ActionResult {
	return o.forward(func() types.ActionResult { return o.client.Feed(ctx) })
}

// Learn forwards to the client
func (o *Orchestrator) Learn(ctx context.Context) types.ActionResult {
	return o.forward(func() types.ActionResult { return o.client.Learn(ctx) })
}

// Guess forwards to the client
func (o *Orchestrator) Guess(ctx context.Context) types.ActionResult {
	return o.forward(func() types.ActionResult { return o.client.Guess(ctx) })
}

// SetFood forwards to the client
func (o *Orchestrator) SetFood(ctx context.Context, id string) types.ActionResult {
	return o.forward(func() types.ActionResult { return o.client.SetFood(ctx, id) })
}

// SetDrink forwards to the client
func (o *Orchestrator) SetDrink(ctx context.Context, id string) types.ActionResult {
	return o.forward(func() types.ActionResult { return o.client.SetDrink(ctx, id) })
}

// CurrentFoodDrink forwards to the client
func (o *Orchestrator) CurrentFoodDrink(ctx context.Context) (types.FoodDrink, types.ActionResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.refuse() {
		return types.FoodDrink{FoodIcon: types.DefaultIcon, DrinkIcon: types.DefaultIcon}, types.NotAuthenticated()
	}
	return o.client.FetchCurrentFoodDrink(ctx)
}

// CurrentTrick forwards to the client
func (o *Orchestrator) CurrentTrick(ctx context.Context) (string, types.ActionResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.refuse() {
		return "", types.NotAuthenticated()
	}
	return o.client.FetchCurrentTrick(ctx)
}

func (o *Orchestrator) forward(call func() types.ActionResult) types.ActionResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.refuse() {
		return types.NotAuthenticated()
	}
	return call()
}

// refuse reports whether the guard blocks the call. Caller holds mu.
func (o *Orchestrator) refuse() bool {
	return o.guard && o.state != LoggedIn
}
