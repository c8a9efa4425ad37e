package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"open-rooms-backend/internal/clock"
)

type refreshRequest struct {
	Date string `json:"date" binding:"required"`
}

// PostCacheRefresh handles POST /api/cache/refresh. Intended to run once per
// day after that day's event data is finalized; safe to repeat.
func (h *Handler) PostCacheRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	date, err := clock.ParseDateStamp(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return
	}

	if err := h.refresher.RefreshDate(c.Request.Context(), date); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"refreshed": date})
}
