package http

import (
	"fmt"
	"time"

	"github.com/GriffinCanCode/teveclub/internal/domain/markers"
	"github.com/GriffinCanCode/teveclub/internal/domain/remote"
	"github.com/GriffinCanCode/teveclub/internal/domain/session"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/teveclub/internal/shared/id"
	"github.com/GriffinCanCode/teveclub/internal/shared/pool"
	"github.com/GriffinCanCode/teveclub/internal/transport/direct"
	"github.com/GriffinCanCode/teveclub/internal/upstream"
)

// BotConfig holds what every new session's Bot is built from
type BotConfig struct {
	// Upstream is copied per session; UserAgent and Logger are filled in
	Upstream        upstream.Config
	Profile         *markers.Profile
	FeedDelay       time.Duration
	MaxFeedAttempts int
	Metrics         *monitoring.Metrics
	Logger          *logging.Logger
}

// NewBotFactory returns the pool factory that builds a session's Bot:
// upstream client, in-process transport, action client, guarded orchestrator.
func NewBotFactory(cfg BotConfig) pool.Factory[*Bot] {
	if cfg.Profile == nil {
		cfg.Profile = markers.DefaultProfile()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}

	return func(sid id.SessionID) (*Bot, error) {
		logger := cfg.Logger.ForSession(sid)

		ucfg := cfg.Upstream
		ucfg.UserAgent = cfg.Profile.UserAgent(nil)
		ucfg.Logger = logger
		if cfg.Metrics != nil {
			ucfg.Recorder = cfg.Metrics
		}

		u, err := upstream.New(ucfg)
		if err != nil {
			return nil, fmt.Errorf("upstream client: %w", err)
		}

		rcfg := remote.Config{
			Transport:       direct.New(u),
			BaseURL:         u.BaseURL(),
			Markers:         cfg.Profile.Markers,
			FeedDelay:       cfg.FeedDelay,
			MaxFeedAttempts: cfg.MaxFeedAttempts,
			Logger:          logger,
		}
		if cfg.Metrics != nil {
			rcfg.Recorder = cfg.Metrics
		}

		client, err := remote.New(rcfg)
		if err != nil {
			return nil, fmt.Errorf("action client: %w", err)
		}

		return &Bot{
			Upstream: u,
			Session:  session.New(client, session.WithLogger(logger), session.WithLoginGuard()),
		}, nil
	}
}
