package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/engine"
)

// GetSnapshot handles GET /api/snapshot?date=&time=&min_minutes=.
// Date and time default to the current campus-local instant; min_minutes
// defaults to the engine's configured threshold.
func (h *Handler) GetSnapshot(c *gin.Context) {
	loc := h.engine.Location()
	now := time.Now().In(loc)

	date := clock.DateStampOf(now, loc)
	if raw := c.Query("date"); raw != "" {
		parsed, err := clock.ParseDateStamp(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	at := clock.TimeOfDayOf(now)
	if raw := c.Query("time"); raw != "" {
		parsed, err := clock.ParseTimeOfDay(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid time, use HH:MM:SS"})
			return
		}
		at = parsed
	}

	minMinutes := 0
	if raw := c.Query("min_minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid min_minutes"})
			return
		}
		minMinutes = parsed
	}

	snap, err := h.engine.Snapshot(c.Request.Context(), date, at, minMinutes)
	if err != nil {
		if errors.Is(err, engine.ErrSourceUnavailable) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "occupancy data is unavailable"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to compute snapshot"})
		return
	}

	c.JSON(http.StatusOK, snap)
}
