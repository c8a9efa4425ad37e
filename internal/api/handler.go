package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"open-rooms-backend/internal/engine"
	"open-rooms-backend/internal/refresher"
	"open-rooms-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	engine    *engine.Engine
	refresher *refresher.Service
	webpush   *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, e *engine.Engine, r *refresher.Service, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:     s,
		engine:    e,
		refresher: r,
		webpush:   webpushOptions,
	}
}
