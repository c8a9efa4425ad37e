package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"open-rooms-backend/config"
	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/engine"
	"open-rooms-backend/internal/model"
)

// sweepSource is a fixed in-memory DataSource: one building, one room, one
// Wednesday-morning class.
type sweepSource struct {
	building model.Building
	room     model.Room
	classes  []model.ClassSchedule
}

func newSweepSource(t *testing.T) *sweepSource {
	t.Helper()
	start := clock.NewTimeOfDay(9, 0, 0)
	end := clock.NewTimeOfDay(10, 0, 0)
	open := clock.NewTimeOfDay(8, 0, 0)
	cls := clock.NewTimeOfDay(22, 0, 0)

	b := model.Building{Name: "ENG1", Latitude: 41.15, Longitude: -81.34}
	for _, day := range []clock.Weekday{clock.Monday, clock.Tuesday, clock.Wednesday, clock.Thursday, clock.Friday} {
		b.SetHoursOn(day, open, cls)
	}
	return &sweepSource{
		building: b,
		room:     model.Room{BuildingName: "ENG1", RoomNumber: "101"},
		classes: []model.ClassSchedule{{
			BuildingName: "ENG1", RoomNumber: "101", DayOfWeek: clock.Wednesday,
			StartTime: start, EndTime: end,
			CourseCode: "CS 101", CourseTitle: "Intro to Programming",
			StartDate: "2026-01-12", EndDate: "2026-05-05",
		}},
	}
}

func (s *sweepSource) Buildings(ctx context.Context) ([]model.Building, error) {
	return []model.Building{s.building}, nil
}

func (s *sweepSource) Building(ctx context.Context, name string) (*model.Building, error) {
	if name != s.building.Name {
		return nil, gorm.ErrRecordNotFound
	}
	return &s.building, nil
}

func (s *sweepSource) Room(ctx context.Context, building, room string) (*model.Room, error) {
	if building != s.room.BuildingName || room != s.room.RoomNumber {
		return nil, gorm.ErrRecordNotFound
	}
	return &s.room, nil
}

func (s *sweepSource) RoomsIn(ctx context.Context, building string) ([]model.Room, error) {
	return []model.Room{s.room}, nil
}

func (s *sweepSource) ClassesOn(ctx context.Context, building, room string, day clock.Weekday) ([]model.ClassSchedule, error) {
	var out []model.ClassSchedule
	for _, c := range s.classes {
		if c.DayOfWeek == day {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *sweepSource) EventsBetween(ctx context.Context, building, room string, from, to time.Time) ([]model.Event, error) {
	return nil, nil
}

func (s *sweepSource) CachedActivities(ctx context.Context, building, room string, date clock.DateStamp) (*model.RoomActivityCache, error) {
	return nil, nil
}

func drain(wp *WorkerPool) []RoomKey {
	var keys []RoomKey
	for {
		select {
		case key := <-wp.jobs:
			keys = append(keys, key)
		default:
			return keys
		}
	}
}

func TestSweeperDispatchesOnTransitionToAvailable(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	e := engine.New(newSweepSource(t), engine.Config{Location: loc})
	pool := NewWorkerPool(4, nil, nil)
	sweeper := NewSweeper(&config.Config{}, e, pool)

	// 2026-01-14 is a Wednesday; the class runs 09:00-10:00.
	occupied := time.Date(2026, 1, 14, 9, 30, 0, 0, loc)
	free := time.Date(2026, 1, 14, 10, 5, 0, 0, loc)

	// First sweep only seeds the baseline, even for available rooms.
	sweeper.SweepOnce(context.Background(), occupied)
	assert.Empty(t, drain(pool))

	sweeper.SweepOnce(context.Background(), free)
	assert.Equal(t, []RoomKey{{Building: "ENG1", Room: "101"}}, drain(pool))

	// Staying available is not a transition.
	sweeper.SweepOnce(context.Background(), free.Add(time.Minute))
	assert.Empty(t, drain(pool))
}

func TestSweeperFirstSweepSeedsWithoutDispatch(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	e := engine.New(newSweepSource(t), engine.Config{Location: loc})
	pool := NewWorkerPool(4, nil, nil)
	sweeper := NewSweeper(&config.Config{}, e, pool)

	// The room is already free at 11:00; no subscriber missed a transition.
	free := time.Date(2026, 1, 14, 11, 0, 0, 0, loc)
	sweeper.SweepOnce(context.Background(), free)
	assert.Empty(t, drain(pool))
}
