package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"open-rooms-backend/internal/model"
)

type subscribedRoomJSON struct {
	Building string `json:"building"`
	Room     string `json:"room"`
}

type putSubscriptionRequest struct {
	Endpoint        string               `json:"endpoint" binding:"required"`
	P256DH          string               `json:"p256dh" binding:"required"`
	Auth            string               `json:"auth" binding:"required"`
	SubscribedRooms []subscribedRoomJSON `json:"subscribed_rooms"`
}

// PutSubscription handles the creation or replacement of a subscription.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	subscription := model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
	}

	rooms := make([]model.SubscriptionRoom, 0, len(req.SubscribedRooms))
	for _, r := range req.SubscribedRooms {
		rooms = append(rooms, model.SubscriptionRoom{
			Endpoint:     req.Endpoint,
			BuildingName: r.Building,
			RoomNumber:   r.Room,
		})
	}

	if err := h.store.SaveSubscription(c.Request.Context(), &subscription, rooms); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription handles the deletion of a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.store.DeleteSubscription(c.Request.Context(), req.Endpoint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// rawQueryParam extracts a query parameter without URL decoding; push
// endpoints are opaque URLs that must match byte for byte.
func rawQueryParam(rawQuery, key string) (string, bool) {
	for _, kv := range strings.Split(rawQuery, "&") {
		if strings.HasPrefix(kv, key+"=") {
			return kv[len(key)+1:], true
		}
	}
	return "", false
}

// GetSubscription handles the retrieval of a subscription's watched rooms.
func (h *Handler) GetSubscription(c *gin.Context) {
	raw, ok := rawQueryParam(c.Request.URL.RawQuery, "endpoint")
	if !ok || raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	rooms, err := h.store.SubscribedRooms(c.Request.Context(), raw)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	out := make([]subscribedRoomJSON, len(rooms))
	for i, r := range rooms {
		out[i] = subscribedRoomJSON{Building: r.BuildingName, Room: r.RoomNumber}
	}

	c.JSON(http.StatusOK, gin.H{"subscribed_rooms": out})
}
