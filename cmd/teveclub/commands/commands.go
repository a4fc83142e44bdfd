package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/GriffinCanCode/teveclub/internal/domain/markers"
	"github.com/GriffinCanCode/teveclub/internal/domain/remote"
	"github.com/GriffinCanCode/teveclub/internal/domain/session"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/config"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/transport/direct"
	"github.com/GriffinCanCode/teveclub/internal/transport/proxy"
	"github.com/GriffinCanCode/teveclub/internal/types"
	"github.com/GriffinCanCode/teveclub/internal/upstream"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand holds the global flags and instances shared by all commands.
type RootCommand struct {
	// Global flags.
	Debug           bool
	NoColor         bool
	ServerURL       string
	UpstreamURL     string
	ProfilePath     string
	FeedDelay       time.Duration
	MaxFeedAttempts int
	Timeout         time.Duration

	// Global instances.
	Stdout io.Writer
	Stderr io.Writer
	Logger *logging.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}
	defaults := config.Default()

	app.Flag("debug", "Enable debug logging.").BoolVar(&c.Debug)
	app.Flag("no-color", "Disable colored output.").BoolVar(&c.NoColor)
	app.Flag("server", "Bot server to route calls through; the site is called directly when empty.").Envar("SERVER_URL").StringVar(&c.ServerURL)
	app.Flag("upstream", "Remote site base URL.").Envar("TEVECLUB_BASE_URL").Default(defaults.Upstream.BaseURL).StringVar(&c.UpstreamURL)
	app.Flag("profile", "Site profile file (yaml, toml or json).").Envar("PROFILE_PATH").StringVar(&c.ProfilePath)
	app.Flag("feed-delay", "Pause between feed submissions.").Envar("FEED_DELAY").Default(defaults.Client.FeedDelay.String()).DurationVar(&c.FeedDelay)
	app.Flag("max-feed-attempts", "Feed submissions per feed action (1-10).").Envar("MAX_FEED_ATTEMPTS").Default(fmt.Sprint(defaults.Client.MaxFeedAttempts)).IntVar(&c.MaxFeedAttempts)
	app.Flag("timeout", "Per-request timeout.").Default(defaults.Upstream.Timeout.String()).DurationVar(&c.Timeout)

	return c
}

// Orchestrator builds the action stack: transport, action client, orchestrator.
func (c *RootCommand) Orchestrator(ctx context.Context) (*session.Orchestrator, error) {
	if c.MaxFeedAttempts < 1 || c.MaxFeedAttempts > types.MaxFeedAttempts {
		return nil, fmt.Errorf("max feed attempts must be between 1 and %d, got %d", types.MaxFeedAttempts, c.MaxFeedAttempts)
	}

	profile := markers.DefaultProfile()
	if c.ProfilePath != "" {
		p, err := markers.LoadProfile(c.ProfilePath)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	var transport remote.Transport
	if c.ServerURL != "" {
		t, err := proxy.New(ctx, proxy.Options{
			ServerURL: c.ServerURL,
			Timeout:   c.Timeout,
			Logger:    c.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create proxy transport: %w", err)
		}
		transport = t
	} else {
		u, err := upstream.New(upstream.Config{
			BaseURL:   c.UpstreamURL,
			Timeout:   c.Timeout,
			Retries:   config.Default().Upstream.Retries,
			UserAgent: profile.UserAgent(nil),
			Logger:    c.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create upstream client: %w", err)
		}
		transport = direct.New(u)
	}

	client, err := remote.New(remote.Config{
		Transport:       transport,
		BaseURL:         c.UpstreamURL,
		Markers:         profile.Markers,
		FeedDelay:       c.FeedDelay,
		MaxFeedAttempts: c.MaxFeedAttempts,
		Logger:          c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create action client: %w", err)
	}

	return session.New(client, session.WithLogger(c.Logger)), nil
}
