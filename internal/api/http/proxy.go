package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

// Proxy forwards {url, method, data} to the remote site with the session's
// cookies and returns {success, html} or {success:false, message}.
func (h *Handlers) Proxy(c *gin.Context) {
	var req types.ProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	bot, ok := h.bot(c)
	if !ok {
		return
	}

	page, err := bot.Upstream.Forward(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("proxy request failed", zap.String("url", req.TargetURL), zap.Error(err))
		c.JSON(upstreamStatus(err), gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"html":    page.Body,
		"status":  page.Status,
	})
}

// CurrentFoodDrink reports the icons of the pet's current food and drink
func (h *Handlers) CurrentFoodDrink(c *gin.Context) {
	bot, ok := h.bot(c)
	if !ok {
		return
	}

	fd, err := bot.Upstream.FoodDrink(c.Request.Context())
	if err != nil {
		c.JSON(upstreamStatus(err), gin.H{"success": false, "message": err.Error(), "data": fd})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": fd})
}

// CurrentTrick reports the trick being taught, empty when none
func (h *Handlers) CurrentTrick(c *gin.Context) {
	bot, ok := h.bot(c)
	if !ok {
		return
	}

	trick, err := bot.Upstream.CurrentTrick(c.Request.Context())
	if err != nil {
		c.JSON(upstreamStatus(err), gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "trick": trick})
}
