package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/model"
)

// ErrSourceUnavailable marks a failed or timed-out occupancy lookup. It is a
// fetch failure, never to be confused with a true-empty result.
var ErrSourceUnavailable = errors.New("occupancy source unavailable")

// DataSource is the read-only view of the data store the engine computes
// from. The store layer implements it; tests substitute an in-memory stub.
type DataSource interface {
	Buildings(ctx context.Context) ([]model.Building, error)
	Building(ctx context.Context, name string) (*model.Building, error)
	Room(ctx context.Context, building, room string) (*model.Room, error)
	RoomsIn(ctx context.Context, building string) ([]model.Room, error)
	ClassesOn(ctx context.Context, building, room string, day clock.Weekday) ([]model.ClassSchedule, error)
	EventsBetween(ctx context.Context, building, room string, from, to time.Time) ([]model.Event, error)
	CachedActivities(ctx context.Context, building, room string, date clock.DateStamp) (*model.RoomActivityCache, error)
}

// Config carries the engine's tunables.
type Config struct {
	// Location is the campus local timezone; all computation happens in it.
	Location *time.Location
	// MinGapMinutes is the shortest free gap worth reporting as available.
	MinGapMinutes int
	// OpeningSoonMinutes is the horizon for flagging a closed building that
	// opens shortly.
	OpeningSoonMinutes int
	// SourceTimeout bounds each data-source call.
	SourceTimeout time.Duration
}

// Engine computes room availability from the two occupancy sources and
// building hours. All methods are pure functions of their inputs plus the
// store contents; the current instant is always an explicit parameter.
type Engine struct {
	src DataSource
	cfg Config
}

// New creates an engine, applying defaults for unset config fields.
func New(src DataSource, cfg Config) *Engine {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MinGapMinutes <= 0 {
		cfg.MinGapMinutes = 30
	}
	if cfg.OpeningSoonMinutes <= 0 {
		cfg.OpeningSoonMinutes = 60
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = 5 * time.Second
	}
	return &Engine{src: src, cfg: cfg}
}

// Location returns the campus timezone the engine computes in.
func (e *Engine) Location() *time.Location { return e.cfg.Location }

// MinGapMinutes returns the configured gap-significance threshold.
func (e *Engine) MinGapMinutes() int { return e.cfg.MinGapMinutes }

func sourceErr(op, building, room string, err error) error {
	return fmt.Errorf("%w: %s for %s %s: %v", ErrSourceUnavailable, op, building, room, err)
}

// MergedSchedule computes the live merged occupancy for one room and date,
// clipped to the building's hours. Returns nil when the building is closed
// that day.
func (e *Engine) MergedSchedule(ctx context.Context, b *model.Building, room string, date clock.DateStamp) ([]OccupancyInterval, error) {
	open, close, ok := b.HoursOn(date.Weekday())
	if !ok {
		return nil, nil
	}
	return e.mergedLive(ctx, b.Name, room, date, open, close)
}

func (e *Engine) mergedLive(ctx context.Context, building, room string, date clock.DateStamp, open, close clock.TimeOfDay) ([]OccupancyInterval, error) {
	classes, err := e.classIntervals(ctx, building, room, date)
	if err != nil {
		return nil, err
	}
	events, err := e.eventIntervals(ctx, building, room, date)
	if err != nil {
		return nil, err
	}
	return Merge(classes, events, open, close), nil
}
