package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/teveclub/internal/api/http"
	"github.com/GriffinCanCode/teveclub/internal/api/middleware"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/teveclub/internal/shared/id"
	"github.com/GriffinCanCode/teveclub/internal/types"
)

// autoTimeout bounds one streamed auto run
const autoTimeout = 5 * time.Minute

// Message is what browsers send
type Message struct {
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Handler manages WebSocket connections
type Handler struct {
	bots     apihttp.Bots
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. Only same-origin upgrades are
// accepted unless origins lists others.
func NewHandler(bots apihttp.Bots, metrics *monitoring.Metrics, logger *logging.Logger, origins ...string) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	h := &Handler{
		bots:    bots,
		metrics: metrics,
		logger:  logger.Named("ws"),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if _, ok := allowed["*"]; ok {
				return true
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			return origin == "http://"+r.Host || origin == "https://"+r.Host
		},
	}
	return h
}

// AutoStream handles WebSocket upgrade and messages
func (h *Handler) AutoStream(c *gin.Context) {
	sid, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "no session"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(middleware.MaxMessageSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	log := h.logger.ForSession(sid)
	reqCtx := c.Request.Context()

	h.send(conn, gin.H{
		"type":    "system",
		"message": "connected",
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case "auto":
			if err := h.handleAuto(reqCtx, conn, sid, msg); err != nil {
				log.Debug("websocket write error", zap.Error(err))
				return
			}
		case "ping":
			h.send(conn, gin.H{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type")
		}
	}
}

func (h *Handler) handleAuto(reqCtx context.Context, conn *websocket.Conn, sid id.SessionID, msg Message) error {
	creds := types.Credentials{Username: msg.Username, Password: msg.Password}
	if err := creds.Validate(); err != nil {
		return h.sendError(conn, "Username and password are required")
	}

	bot, err := h.bots.Get(sid)
	if err != nil {
		h.logger.Error("failed to open bot session", zap.Error(err))
		return h.sendError(conn, "session unavailable")
	}

	ctx, cancel := context.WithTimeout(reqCtx, autoTimeout)
	defer cancel()

	var writeErr error
	report := bot.Session.StreamAutoSequence(ctx, creds, func(step types.StepResult) {
		if writeErr != nil {
			return
		}
		writeErr = h.send(conn, gin.H{
			"type":    "step",
			"step":    step.Step,
			"result":  step.Result,
			"warning": step.Warning,
		})
		// a gone browser stops the run at the next step
		if writeErr != nil {
			cancel()
		}
	})
	if h.metrics != nil {
		h.metrics.RecordAutoRun(report.Status)
	}
	if writeErr != nil {
		return writeErr
	}

	return h.send(conn, gin.H{
		"type":    "report",
		"success": report.Status != types.StatusFailure,
		"status":  report.Status,
		"message": report.Summary(),
		"steps":   report.Steps,
	})
}

func (h *Handler) send(conn *websocket.Conn, data any) error {
	return conn.WriteJSON(data)
}

func (h *Handler) sendError(conn *websocket.Conn, message string) error {
	return h.send(conn, gin.H{
		"type":    "error",
		"message": message,
	})
}
