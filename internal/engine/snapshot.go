package engine

import (
	"context"
	"log"
	"sync"

	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/model"
)

// RoomStatus is the point-in-time status of one room.
type RoomStatus struct {
	Status          Status             `json:"status"`
	CurrentOccupant *OccupancyInterval `json:"current_occupant,omitempty"`
	NextOccupant    *OccupancyInterval `json:"next_occupant,omitempty"`
	AvailableAt     *clock.TimeOfDay   `json:"available_at,omitempty"`
	AvailableFor    *int               `json:"available_for,omitempty"`
	AvailableUntil  *clock.TimeOfDay   `json:"available_until,omitempty"`
}

// HoursToday is a building's open/close pair for the snapshot's weekday.
type HoursToday struct {
	Open  clock.TimeOfDay `json:"open"`
	Close clock.TimeOfDay `json:"close"`
}

// RoomCounts summarizes a building's rooms at the snapshot instant.
type RoomCounts struct {
	Available int `json:"available"`
	Total     int `json:"total"`
}

// BuildingStatus is the snapshot of one building: open/closed, hours,
// coordinates, and per-room detail when open. Degraded marks a building for
// which one or more rooms could not be computed because a source failed.
type BuildingStatus struct {
	IsOpen      bool                   `json:"isOpen"`
	OpeningSoon bool                   `json:"openingSoon"`
	Degraded    bool                   `json:"degraded,omitempty"`
	Hours       *HoursToday            `json:"hours"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	RoomCounts  RoomCounts             `json:"roomCounts"`
	Rooms       map[string]*RoomStatus `json:"rooms"`
}

// Snapshot is the whole-campus room status at one instant.
type Snapshot struct {
	Date      clock.DateStamp            `json:"date"`
	Time      clock.TimeOfDay            `json:"time"`
	Buildings map[string]*BuildingStatus `json:"buildings"`
}

// Snapshot computes the status of every room on campus at the given instant.
// minMinutes <= 0 selects the configured default. Buildings are computed in
// parallel; a source failure inside one building degrades that building
// without aborting the rest.
func (e *Engine) Snapshot(ctx context.Context, date clock.DateStamp, at clock.TimeOfDay, minMinutes int) (*Snapshot, error) {
	if minMinutes <= 0 {
		minMinutes = e.cfg.MinGapMinutes
	}

	buildings, err := e.src.Buildings(ctx)
	if err != nil {
		return nil, sourceErr("buildings", "campus", "", err)
	}

	snap := &Snapshot{
		Date:      date,
		Time:      at,
		Buildings: make(map[string]*BuildingStatus, len(buildings)),
	}

	statuses := make([]*BuildingStatus, len(buildings))
	var wg sync.WaitGroup
	for i := range buildings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i] = e.buildingStatus(ctx, &buildings[i], date, at, minMinutes)
		}(i)
	}
	wg.Wait()

	for i := range buildings {
		snap.Buildings[buildings[i].Name] = statuses[i]
	}
	return snap, nil
}

func (e *Engine) buildingStatus(ctx context.Context, b *model.Building, date clock.DateStamp, at clock.TimeOfDay, minMinutes int) *BuildingStatus {
	st := &BuildingStatus{
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		Rooms:     map[string]*RoomStatus{},
	}

	open, close, ok := b.HoursOn(date.Weekday())
	if ok {
		st.Hours = &HoursToday{Open: open, Close: close}
	}
	if !ok || at < open || at >= close {
		st.OpeningSoon = ok && at < open && at.MinutesUntil(open) <= e.cfg.OpeningSoonMinutes
		return st
	}
	st.IsOpen = true

	rooms, err := e.src.RoomsIn(ctx, b.Name)
	if err != nil {
		log.Printf("snapshot: listing rooms for %s: %v", b.Name, err)
		st.Degraded = true
		return st
	}

	for _, room := range rooms {
		merged, err := e.mergedWithCache(ctx, b.Name, room.RoomNumber, date, open, close)
		if err != nil {
			log.Printf("snapshot: %s %s: %v", b.Name, room.RoomNumber, err)
			st.Degraded = true
			continue
		}
		rs := roomStatusAt(merged, at, open, close, minMinutes)
		st.Rooms[room.RoomNumber] = rs
		st.RoomCounts.Total++
		if rs.Status == StatusAvailable {
			st.RoomCounts.Available++
		}
	}
	return st
}

// roomStatusAt classifies one room at one instant against its merged
// schedule. The containment test decides occupied vs free; a free room whose
// remaining gap is below the threshold is a passing period, with the
// meaningful-gap walk supplying when real availability begins.
func roomStatusAt(merged []OccupancyInterval, at, open, close clock.TimeOfDay, minMinutes int) *RoomStatus {
	var current, next *OccupancyInterval
	for i := range merged {
		if merged[i].Start <= at && at < merged[i].End {
			current = &merged[i]
		}
		if merged[i].Start > at {
			next = &merged[i]
			break
		}
	}

	if current != nil {
		op := NextOpening(merged, at, open, close, minMinutes)
		return &RoomStatus{
			Status:          StatusOccupied,
			CurrentOccupant: current,
			NextOccupant:    op.Next,
			AvailableAt:     &op.At,
			AvailableFor:    op.Minutes,
		}
	}

	until := close
	if next != nil {
		until = next.Start
	}
	mins := at.MinutesUntil(until)

	if mins < minMinutes {
		op := NextOpening(merged, at, open, close, minMinutes)
		return &RoomStatus{
			Status:         StatusPassing,
			NextOccupant:   next,
			AvailableAt:    &op.At,
			AvailableFor:   op.Minutes,
			AvailableUntil: &until,
		}
	}

	return &RoomStatus{
		Status:         StatusAvailable,
		NextOccupant:   next,
		AvailableFor:   &mins,
		AvailableUntil: &until,
	}
}
