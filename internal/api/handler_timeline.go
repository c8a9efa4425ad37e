package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/engine"
)

// GetDayTimeline handles GET /api/buildings/:building/rooms/:room/timeline.
// The optional `from` parameter truncates the returned timeline to start at
// that instant; `date` defaults to today in campus time.
func (h *Handler) GetDayTimeline(c *gin.Context) {
	building := c.Param("building")
	room := c.Param("room")

	loc := h.engine.Location()
	date := clock.DateStampOf(time.Now().In(loc), loc)
	if raw := c.Query("date"); raw != "" {
		parsed, err := clock.ParseDateStamp(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	blocks, err := h.engine.DayTimeline(c.Request.Context(), building, room, date)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown building or room"})
		case errors.Is(err, engine.ErrSourceUnavailable):
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "occupancy data is unavailable"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to compute timeline"})
		}
		return
	}

	if raw := c.Query("from"); raw != "" {
		from, err := clock.ParseTimeOfDay(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid from, use HH:MM:SS"})
			return
		}
		blocks = engine.TruncateFrom(blocks, from)
	}

	c.JSON(http.StatusOK, gin.H{
		"building": building,
		"room":     room,
		"date":     date,
		"timeline": blocks,
	})
}
