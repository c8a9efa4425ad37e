package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"open-rooms-backend/internal/clock"
)

// DayTimeline produces the full alternating available/occupied sequence for
// one room on one date, spanning building-open to building-close. A building
// closed that day yields an empty (non-nil) sequence, not an error.
//
// The precomputed activity cache is preferred; a missing entry falls back to
// live computation from both sources.
func (e *Engine) DayTimeline(ctx context.Context, building, room string, date clock.DateStamp) ([]AvailabilityBlock, error) {
	b, err := e.src.Building(ctx, building)
	if err != nil {
		return nil, err
	}
	if _, err := e.src.Room(ctx, building, room); err != nil {
		return nil, err
	}

	open, close, ok := b.HoursOn(date.Weekday())
	if !ok {
		return []AvailabilityBlock{}, nil
	}

	merged, err := e.mergedWithCache(ctx, building, room, date, open, close)
	if err != nil {
		return nil, err
	}
	return Fill(merged, open, close), nil
}

// mergedWithCache reads the precomputed schedule for (room, date) and falls
// back to live merging on a miss. Cached intervals are re-clipped against
// the current hours in case the building's hours changed since the refresh.
func (e *Engine) mergedWithCache(ctx context.Context, building, room string, date clock.DateStamp, open, close clock.TimeOfDay) ([]OccupancyInterval, error) {
	entry, err := e.src.CachedActivities(ctx, building, room, date)
	if err != nil {
		return nil, sourceErr("activity cache", building, room, err)
	}
	if entry == nil {
		return e.mergedLive(ctx, building, room, date, open, close)
	}

	var cached []OccupancyInterval
	if err := json.Unmarshal([]byte(entry.Activities), &cached); err != nil {
		return nil, fmt.Errorf("corrupt cache entry for %s %s on %s: %w", building, room, date, err)
	}
	return clipTo(cached, open, close), nil
}
