package engine

import "open-rooms-backend/internal/clock"

// Status classifies a room or timeline block.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
	// StatusPassing marks a room that is technically free but for less than
	// the minimum useful duration before its next occupancy.
	StatusPassing Status = "passing"
)

// AvailabilityBlock is one span of a room's day: either occupied, carrying
// the occupying interval in Details, or available with Details nil.
type AvailabilityBlock struct {
	Start   clock.TimeOfDay    `json:"start"`
	End     clock.TimeOfDay    `json:"end"`
	Status  Status             `json:"status"`
	Details *OccupancyInterval `json:"details"`
}

// Fill materializes the complement of a merged schedule: every gap between
// occupied intervals, before the first and after the last becomes an
// available block, producing a contiguous sequence spanning [open, close).
func Fill(merged []OccupancyInterval, open, close clock.TimeOfDay) []AvailabilityBlock {
	blocks := make([]AvailabilityBlock, 0, 2*len(merged)+1)
	cursor := open
	for i := range merged {
		iv := merged[i]
		if iv.Start > cursor {
			blocks = append(blocks, AvailabilityBlock{Start: cursor, End: iv.Start, Status: StatusAvailable})
		}
		blocks = append(blocks, AvailabilityBlock{Start: iv.Start, End: iv.End, Status: StatusOccupied, Details: &merged[i]})
		cursor = iv.End
	}
	if cursor < close {
		blocks = append(blocks, AvailabilityBlock{Start: cursor, End: close, Status: StatusAvailable})
	}
	return blocks
}

// TruncateFrom restricts a timeline to blocks still relevant at the given
// instant, trimming the first surviving block's start to it. Labels are left
// untouched; this is a display concern, not an engine one.
func TruncateFrom(blocks []AvailabilityBlock, from clock.TimeOfDay) []AvailabilityBlock {
	out := make([]AvailabilityBlock, 0, len(blocks))
	for _, b := range blocks {
		if b.End <= from {
			continue
		}
		if b.Start < from {
			b.Start = from
		}
		out = append(out, b)
	}
	return out
}

// Opening is the result of the meaningful-gap walk: the next instant at
// which a free gap of at least the minimum duration begins. Minutes is nil
// when no such gap exists before close (At is then the close time), and Next
// is the interval that ends the gap, absent when the gap runs to close.
type Opening struct {
	At      clock.TimeOfDay
	Minutes *int
	Next    *OccupancyInterval
}

// NextOpening walks forward through a merged schedule from the given instant
// and finds the first free gap of at least minMinutes. An instant inside an
// occupied interval starts the walk at that interval's end; sub-threshold
// gaps are stepped over rather than reported.
func NextOpening(merged []OccupancyInterval, at, open, close clock.TimeOfDay, minMinutes int) Opening {
	candidate := at
	if candidate < open {
		candidate = open
	}

	i := 0
	for i < len(merged) && merged[i].End <= candidate {
		i++
	}
	if i < len(merged) && merged[i].Start <= candidate {
		candidate = merged[i].End
		i++
	}

	for ; i < len(merged); i++ {
		if candidate.MinutesUntil(merged[i].Start) >= minMinutes {
			gap := candidate.MinutesUntil(merged[i].Start)
			next := merged[i]
			return Opening{At: candidate, Minutes: &gap, Next: &next}
		}
		candidate = merged[i].End
	}

	if candidate < close && candidate.MinutesUntil(close) >= minMinutes {
		gap := candidate.MinutesUntil(close)
		return Opening{At: candidate, Minutes: &gap}
	}

	// No meaningful gap remains today.
	return Opening{At: close}
}
