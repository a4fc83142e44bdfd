package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/teveclub/internal/api/middleware"
	"github.com/GriffinCanCode/teveclub/internal/types"
)

type choiceRequest struct {
	ID string `json:"id" binding:"required"`
}

// resultStatus maps an action result to an HTTP status
func resultStatus(r types.ActionResult) int {
	switch {
	case r.OK():
		return http.StatusOK
	case r.Kind == types.KindNotAuthenticated:
		return http.StatusUnauthorized
	case r.IsTransport():
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// Login logs the session's bot in
func (h *Handlers) Login(c *gin.Context) {
	var creds types.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.Validate() != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	bot, ok := h.bot(c)
	if !ok {
		return
	}

	result := bot.Session.Login(c.Request.Context(), creds.Username, creds.Password)
	status := resultStatus(result)
	if result.IsDomain() {
		status = http.StatusUnauthorized
	}
	c.JSON(status, result)
}

// Feed feeds the pet
func (h *Handlers) Feed(c *gin.Context) {
	if bot, ok := h.bot(c); ok {
		result := bot.Session.Feed(c.Request.Context())
		c.JSON(resultStatus(result), result)
	}
}

// Learn teaches a trick
func (h *Handlers) Learn(c *gin.Context) {
	if bot, ok := h.bot(c); ok {
		result := bot.Session.Learn(c.Request.Context())
		c.JSON(resultStatus(result), result)
	}
}

// Guess plays the number game
func (h *Handlers) Guess(c *gin.Context) {
	if bot, ok := h.bot(c); ok {
		result := bot.Session.Guess(c.Request.Context())
		c.JSON(resultStatus(result), result)
	}
}

// Food changes the pet's food
func (h *Handlers) Food(c *gin.Context) {
	var req choiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "food id is required"})
		return
	}
	if bot, ok := h.bot(c); ok {
		result := bot.Session.SetFood(c.Request.Context(), req.ID)
		c.JSON(resultStatus(result), result)
	}
}

// Drink changes the pet's drink
func (h *Handlers) Drink(c *gin.Context) {
	var req choiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "drink id is required"})
		return
	}
	if bot, ok := h.bot(c); ok {
		result := bot.Session.SetDrink(c.Request.Context(), req.ID)
		c.JSON(resultStatus(result), result)
	}
}

// Logout logs the bot out and forgets the session's remote cookies.
// A session that was never logged in is simply cleared.
func (h *Handlers) Logout(c *gin.Context) {
	bot, ok := h.bot(c)
	if !ok {
		return
	}

	result := bot.Session.Logout(c.Request.Context())
	if result.Kind == types.KindNotAuthenticated {
		result = types.Succeeded("logged out")
	}
	if sid, ok := middleware.SessionID(c); ok {
		h.bots.Drop(sid)
	}
	c.JSON(resultStatus(result), result)
}

// Auto runs the full login, feed, learn, guess, logout sequence
func (h *Handlers) Auto(c *gin.Context) {
	var creds types.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil || creds.Validate() != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Username and password are required"})
		return
	}

	bot, ok := h.bot(c)
	if !ok {
		return
	}

	report := bot.Session.RunAutoSequence(c.Request.Context(), creds)
	if h.metrics != nil {
		h.metrics.RecordAutoRun(report.Status)
	}

	status := http.StatusOK
	if report.Status == types.StatusFailure {
		status = http.StatusUnauthorized
		if login, ok := report.Step(types.StepLogin); ok && login.Result.IsTransport() {
			status = http.StatusBadGateway
		}
	}

	c.JSON(status, gin.H{
		"success": report.Status != types.StatusFailure,
		"status":  report.Status,
		"message": report.Summary(),
		"steps":   report.Steps,
	})
}
