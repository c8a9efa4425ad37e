package engine

import (
	"context"

	"open-rooms-backend/internal/clock"
)

// classIntervals returns the busy intervals of recurring classes meeting in
// the room on the date's weekday, restricted to sections whose term date
// range contains the date. Unsorted; the merger orders them.
func (e *Engine) classIntervals(ctx context.Context, building, room string, date clock.DateStamp) ([]OccupancyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.SourceTimeout)
	defer cancel()

	rows, err := e.src.ClassesOn(ctx, building, room, date.Weekday())
	if err != nil {
		return nil, sourceErr("class schedule", building, room, err)
	}

	intervals := make([]OccupancyInterval, 0, len(rows))
	for _, c := range rows {
		if !c.ActiveOn(date) {
			continue
		}
		intervals = append(intervals, OccupancyInterval{
			Start:      c.StartTime,
			End:        c.EndTime,
			Source:     SourceClass,
			Identifier: c.CourseCode,
			Title:      c.CourseTitle,
		})
	}
	return intervals, nil
}

// eventIntervals returns the busy intervals of one-off events whose start,
// localized to campus time, falls on the date. An event running past
// midnight is treated as busy until end of day.
func (e *Engine) eventIntervals(ctx context.Context, building, room string, date clock.DateStamp) ([]OccupancyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.SourceTimeout)
	defer cancel()

	dayStart, dayEnd := date.Bounds(e.cfg.Location)
	rows, err := e.src.EventsBetween(ctx, building, room, dayStart, dayEnd)
	if err != nil {
		return nil, sourceErr("events", building, room, err)
	}

	intervals := make([]OccupancyInterval, 0, len(rows))
	for _, ev := range rows {
		start := ev.StartsAt.In(e.cfg.Location)
		if clock.DateStampOf(start, e.cfg.Location) != date {
			continue
		}
		end := clock.EndOfDay
		if localEnd := ev.EndsAt.In(e.cfg.Location); clock.DateStampOf(localEnd, e.cfg.Location) == date {
			end = clock.TimeOfDayOf(localEnd)
		}
		identifier := ev.Occupant
		if identifier == "" {
			identifier = ev.EventName
		}
		intervals = append(intervals, OccupancyInterval{
			Start:      clock.TimeOfDayOf(start),
			End:        end,
			Source:     SourceEvent,
			Identifier: identifier,
			Title:      ev.EventName,
		})
	}
	return intervals, nil
}
