package engine

import (
	"context"
	"errors"
	"time"

	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/model"
)

// stubSource is an in-memory DataSource for engine tests.
type stubSource struct {
	buildings []model.Building
	rooms     []model.Room
	classes   []model.ClassSchedule
	events    []model.Event
	cache     map[string]*model.RoomActivityCache

	classErr    error
	eventErr    error
	buildingErr error
}

func cacheKey(building, room string, date clock.DateStamp) string {
	return building + "/" + room + "/" + string(date)
}

func (s *stubSource) Buildings(ctx context.Context) ([]model.Building, error) {
	if s.buildingErr != nil {
		return nil, s.buildingErr
	}
	return s.buildings, nil
}

func (s *stubSource) Building(ctx context.Context, name string) (*model.Building, error) {
	for i := range s.buildings {
		if s.buildings[i].Name == name {
			return &s.buildings[i], nil
		}
	}
	return nil, errNotFound
}

func (s *stubSource) Room(ctx context.Context, building, room string) (*model.Room, error) {
	for i := range s.rooms {
		if s.rooms[i].BuildingName == building && s.rooms[i].RoomNumber == room {
			return &s.rooms[i], nil
		}
	}
	return nil, errNotFound
}

func (s *stubSource) RoomsIn(ctx context.Context, building string) ([]model.Room, error) {
	var out []model.Room
	for _, r := range s.rooms {
		if r.BuildingName == building {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubSource) ClassesOn(ctx context.Context, building, room string, day clock.Weekday) ([]model.ClassSchedule, error) {
	if s.classErr != nil {
		return nil, s.classErr
	}
	var out []model.ClassSchedule
	for _, c := range s.classes {
		if c.BuildingName == building && c.RoomNumber == room && c.DayOfWeek == day {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubSource) EventsBetween(ctx context.Context, building, room string, from, to time.Time) ([]model.Event, error) {
	if s.eventErr != nil {
		return nil, s.eventErr
	}
	var out []model.Event
	for _, e := range s.events {
		if e.BuildingName == building && e.RoomNumber == room &&
			!e.StartsAt.Before(from) && e.StartsAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubSource) CachedActivities(ctx context.Context, building, room string, date clock.DateStamp) (*model.RoomActivityCache, error) {
	if s.cache == nil {
		return nil, nil
	}
	return s.cache[cacheKey(building, room, date)], nil
}

var errNotFound = errors.New("record not found")

// newTestBuilding builds a building open 08:00-22:00 every weekday.
func newTestBuilding(name string) model.Building {
	b := model.Building{Name: name, Latitude: 28.6, Longitude: -81.2}
	for _, day := range []clock.Weekday{
		clock.Monday, clock.Tuesday, clock.Wednesday, clock.Thursday, clock.Friday,
	} {
		b.SetHoursOn(day, clock.NewTimeOfDay(8, 0, 0), clock.NewTimeOfDay(22, 0, 0))
	}
	return b
}

func newTestClass(building, room string, day clock.Weekday, start, end clock.TimeOfDay, course string) model.ClassSchedule {
	return model.ClassSchedule{
		BuildingName: building,
		RoomNumber:   room,
		DayOfWeek:    day,
		StartTime:    start,
		EndTime:      end,
		CourseCode:   course,
		CourseTitle:  course + " title",
		StartDate:    "2026-01-12",
		EndDate:      "2026-05-05",
	}
}
