package engine

import (
	"sort"

	"open-rooms-backend/internal/clock"
)

// Source identifies which occupancy feed an interval came from.
type Source string

const (
	SourceClass Source = "class"
	SourceEvent Source = "event"
)

// OccupancyInterval is one busy span of a room in building-local wall-clock
// time. Identifier is the course code for classes and the occupant (or event
// name when no occupant is recorded) for events.
type OccupancyInterval struct {
	Start      clock.TimeOfDay `json:"start"`
	End        clock.TimeOfDay `json:"end"`
	Source     Source          `json:"type"`
	Identifier string          `json:"identifier"`
	Title      string          `json:"title"`
}

// clipTo restricts ivs to [open, close), dropping intervals that fall
// entirely outside and any degenerate interval (start >= end).
func clipTo(ivs []OccupancyInterval, open, close clock.TimeOfDay) []OccupancyInterval {
	out := make([]OccupancyInterval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Start >= iv.End || iv.End <= open || iv.Start >= close {
			continue
		}
		if iv.Start < open {
			iv.Start = open
		}
		if iv.End > close {
			iv.End = close
		}
		out = append(out, iv)
	}
	return out
}

// Merge combines class and event intervals for one room and date into a
// single time-ordered, non-overlapping schedule clipped to [open, close).
//
// Ties at the same start time sort class before event. When a later interval
// truly overlaps an earlier one, the earlier interval keeps the block and is
// extended over the later one's remainder; the later interval's label is only
// kept when it starts exactly where the previous occupancy ends. Overlapping
// occupancy from two sources is a data-quality condition, and this asymmetric
// policy is a deliberate simplification rather than an attempt to represent
// both.
func Merge(classes, events []OccupancyInterval, open, close clock.TimeOfDay) []OccupancyInterval {
	all := make([]OccupancyInterval, 0, len(classes)+len(events))
	all = append(all, clipTo(classes, open, close)...)
	all = append(all, clipTo(events, open, close)...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].Source == SourceClass && all[j].Source == SourceEvent
	})

	merged := make([]OccupancyInterval, 0, len(all))
	pointer := clock.TimeOfDay(-1)
	for _, iv := range all {
		if iv.Start >= pointer {
			merged = append(merged, iv)
			pointer = iv.End
			continue
		}
		// Overlaps the previous admitted interval's extent.
		if iv.End > pointer {
			merged[len(merged)-1].End = iv.End
			pointer = iv.End
		}
		// Fully covered intervals are dropped.
	}
	return merged
}
