package remote

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/teveclub/internal/domain/markers"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/types"
)

// Site paths, relative to the remote base URL
const (
	pathLogin  = "/"
	pathPet    = "/myteve.pet"
	pathTeach  = "/tanit.pet"
	pathGuess  = "/egyszam.pet"
	pathLogout = "/logout.pet"
)

// Transport carries calls to the proxy and to the local status endpoints.
// Implementations never return Go errors: failures surface as TransportOK=false.
type Transport interface {
	Proxy(ctx context.Context, req types.ProxyRequest) types.ProxyResponse
	Status(ctx context.Context, endpoint string) types.StatusResponse
}

// Recorder receives action outcomes for metrics
type Recorder interface {
	RecordAction(action string, result types.ActionResult)
	RecordFeedSubmissions(n int)
}

// Chooser picks one trick id among those the site offers
type Chooser func(options []string) string

// Waiter pauses between feed iterations
type Waiter func(ctx context.Context, d time.Duration) error

// Config configures a Client
type Config struct {
	Transport       Transport
	BaseURL         string
	Markers         markers.Set
	FeedDelay       time.Duration
	MaxFeedAttempts int
	Logger          *logging.Logger
	Recorder        Recorder
	Choose          Chooser
	Wait            Waiter
}

func (c *Config) defaults() error {
	if c.Transport == nil {
		return fmt.Errorf("transport is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://teveclub.hu"
	}
	if c.Markers.LoginSuccess == "" {
		c.Markers = markers.Default()
	}
	if c.MaxFeedAttempts <= 0 || c.MaxFeedAttempts > types.MaxFeedAttempts {
		c.MaxFeedAttempts = types.MaxFeedAttempts
	}
	if c.FeedDelay < 0 {
		c.FeedDelay = 0
	}
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
	if c.Recorder == nil {
		c.Recorder = nopRecorder{}
	}
	if c.Choose == nil {
		c.Choose = randomChoice
	}
	if c.Wait == nil {
		c.Wait = timerWait
	}
	return nil
}

// Client issues the remote actions and interprets the site's answers.
// Every operation resolves to an ActionResult; none returns an error.
type Client struct {
	transport Transport
	baseURL   string
	markers   markers.Set
	delay     time.Duration
	maxFeeds  int
	logger    *logging.Logger
	recorder  Recorder
	choose    Chooser
	wait      Waiter
}

// New creates a Client
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		transport: cfg.Transport,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		markers:   cfg.Markers,
		delay:     cfg.FeedDelay,
		maxFeeds:  cfg.MaxFeedAttempts,
		logger:    cfg.Logger.Named("remote"),
		recorder:  cfg.Recorder,
		choose:    cfg.Choose,
		wait:      cfg.Wait,
	}, nil
}

// Login submits the credentials to the site's root page
func (c *Client) Login(ctx context.Context, username, password string) types.ActionResult {
	resp := c.post(ctx, pathLogin, map[string]string{
		"tevenev": username,
		"pass":    password,
		"x":       "38",
		"y":       "42",
		"login":   "Gyere!",
	})

	var result types.ActionResult
	if !resp.TransportOK {
		result = types.TransportFailure("login failed: " + resp.Message)
	} else {
		switch ClassifyLogin(resp.Body, c.markers) {
		case LoginAccepted:
			result = types.Succeeded("logged in as " + username)
		case LoginRejected:
			result = types.DomainFailure("invalid credentials")
		default:
			result = types.DomainFailure("unexpected response")
		}
	}

	return c.finish("login", result)
}

// Learn reads the teaching page first and only submits when a trick can
// be learned: a choice page gets one of its options, a plain page gets the
// teach form. An exhausted page ends the call without any submission.
func (c *Client) Learn(ctx context.Context) types.ActionResult {
	resp := c.get(ctx, pathTeach)
	if !resp.TransportOK {
		return c.finish("learn", types.TransportFailure("learn failed: "+resp.Message))
	}

	form := map[string]string{
		"farmdoit": "tanit",
		"learn":    "Tanulj teve!",
	}
	switch ClassifyLearn(resp.Body, c.markers) {
	case LearnLearned:
		return c.finish("learn", types.Succeeded("trick learned"))
	case LearnExhausted:
		c.logger.Debug("no tricks left to learn")
		return c.finish("learn", types.DomainFailure("no tricks available"))
	case LearnChoice:
		options := extractTrickOptions(resp.Body)
		if len(options) == 0 {
			return c.finish("learn", types.DomainFailure("no tricks available"))
		}
		choice := c.choose(options)
		c.logger.Debug("choosing trick", zap.String("trick_id", choice), zap.Int("offered", len(options)))
		form = map[string]string{
			"learn":    "Tanulj teve!",
			"tudomany": choice,
		}
	}

	resp = c.post(ctx, pathTeach, form)
	if !resp.TransportOK {
		return c.finish("learn", types.TransportFailure("learn failed: "+resp.Message))
	}
	if ClassifyLearn(resp.Body, c.markers) == LearnLearned {
		return c.finish("learn", types.Succeeded("trick learned"))
	}
	c.logger.Debug("learn response carried no learned marker")
	return c.finish("learn", types.DomainFailure("no tricks available"))
}

// Guess plays the number guessing game with the site's fixed parameters.
// The site gives no verdict, so only the transport decides the outcome.
func (c *Client) Guess(ctx context.Context) types.ActionResult {
	resp := c.post(ctx, pathGuess, map[string]string{
		"honnan": "403",
		"tipp":   "Ez a tippem!",
	})
	if !resp.TransportOK {
		return c.finish("guess", types.TransportFailure("guess failed: "+resp.Message))
	}
	return c.finish("guess", types.Succeeded("guess submitted"))
}

// SetFood selects the food the pet is fed with
func (c *Client) SetFood(ctx context.Context, id string) types.ActionResult {
	return c.setPreference(ctx, "food", "kaja", id)
}

// SetDrink selects the drink the pet is given
func (c *Client) SetDrink(ctx context.Context, id string) types.ActionResult {
	return c.setPreference(ctx, "drink", "pia", id)
}

func (c *Client) setPreference(ctx context.Context, what, field, id string) types.ActionResult {
	action := "set_" + what
	id = strings.TrimSpace(id)
	if id == "" {
		return c.finish(action, types.DomainFailure(what+" id is required"))
	}

	resp := c.post(ctx, pathPet, map[string]string{field: id})
	if !resp.TransportOK {
		return c.finish(action, types.TransportFailure(fmt.Sprintf("%s change failed: %s", what, resp.Message)))
	}
	if ClassifyPreference(resp.Body) == PreferenceEmpty {
		return c.finish(action, types.DomainFailure(what+" change failed: empty response"))
	}
	return c.finish(action, types.Succeeded(fmt.Sprintf("%s set to %s", what, id)))
}

// Logout ends the remote session. The site never reports a failed logout,
// so any completed call counts as success; only transport errors fail.
func (c *Client) Logout(ctx context.Context) types.ActionResult {
	resp := c.transport.Proxy(ctx, types.ProxyRequest{
		TargetURL: c.url(pathLogout),
		Method:    http.MethodGet,
	})
	if !resp.TransportOK {
		return c.finish("logout", types.TransportFailure("logout failed: "+resp.Message))
	}
	return c.finish("logout", types.Succeeded("logged out"))
}

func (c *Client) get(ctx context.Context, path string) types.ProxyResponse {
	return c.transport.Proxy(ctx, types.ProxyRequest{TargetURL: c.url(path), Method: http.MethodGet})
}

func (c *Client) post(ctx context.Context, path string, form map[string]string) types.ProxyResponse {
	return c.transport.Proxy(ctx, types.ProxyRequest{TargetURL: c.url(path), Method: http.MethodPost, Form: form})
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func (c *Client) finish(action string, result types.ActionResult) types.ActionResult {
	c.recorder.RecordAction(action, result)

	switch {
	case result.OK():
		c.logger.Info("action finished", logging.Action(action), logging.Result(result))
	case result.IsTransport():
		c.logger.Warn("action failed", logging.Action(action), logging.Result(result))
	default:
		c.logger.Info("action refused", logging.Action(action), logging.Result(result))
	}
	return result
}

type nopRecorder struct{}

func (nopRecorder) RecordAction(string, types.ActionResult) {}
func (nopRecorder) RecordFeedSubmissions(int)               {}

func randomChoice(options []string) string {
	return options[rand.IntN(len(options))]
}

// timerWait resumes after d on a timer instead of blocking the goroutine in Sleep
func timerWait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
