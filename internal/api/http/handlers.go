package http

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/teveclub/internal/api/middleware"
	"github.com/GriffinCanCode/teveclub/internal/domain/session"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/teveclub/internal/shared/id"
	"github.com/GriffinCanCode/teveclub/internal/upstream"
)

// Bot is everything the server holds for one browser session: the
// upstream cookie jar and the orchestrator logged in through it.
type Bot struct {
	Upstream *upstream.Client
	Session  *session.Orchestrator
}

// Bots hands out the Bot of a browser session
type Bots interface {
	Get(sid id.SessionID) (*Bot, error)
	Drop(sid id.SessionID)
	Len() int
}

// IndexTemplate is the page that hands the anti-forgery token to browsers
var IndexTemplate = template.Must(template.New("index.html").Parse(`<!DOCTYPE html>
<html lang="hu">
<head><meta charset="utf-8"><title>Teveclub bot</title></head>
<body>
<form id="bot">
<input type="hidden" name="csrfmiddlewaretoken" value="{{.CSRFToken}}">
</form>
</body>
</html>
`))

// Handlers contains all HTTP handlers
type Handlers struct {
	bots    Bots
	breaker *resilience.Breaker
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(bots Bots, breaker *resilience.Breaker, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		bots:    bots,
		breaker: breaker,
		metrics: metrics,
		logger:  logger.Named("api"),
	}
}

// Index serves the bootstrap page carrying the CSRF token
func (h *Handlers) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"CSRFToken": middleware.CSRFToken(c),
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"service":  "teveclub",
		"sessions": h.bots.Len(),
	}
	if h.breaker != nil {
		state := h.breaker.State()
		body["upstream"] = state.String()
		if state == resilience.StateOpen {
			body["status"] = "degraded"
		}
	}
	c.JSON(http.StatusOK, body)
}

// bot resolves the caller's Bot or writes an error response
func (h *Handlers) bot(c *gin.Context) (*Bot, bool) {
	sid, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "no session"})
		return nil, false
	}

	bot, err := h.bots.Get(sid)
	if err != nil {
		h.logger.Error("failed to open bot session", logging.Session(sid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "session unavailable"})
		return nil, false
	}
	return bot, true
}

// upstreamStatus maps a forwarding error to an HTTP status
func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, upstream.ErrHostNotAllowed), errors.Is(err, upstream.ErrMethodNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
