package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"open-rooms-backend/config"
	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/db"
	"open-rooms-backend/internal/engine"
	"open-rooms-backend/internal/model"
	"open-rooms-backend/internal/refresher"
	"open-rooms-backend/internal/store"
)

// newTestDeps wires a per-test in-memory SQLite store with the engine and
// refresher on top of it.
func newTestDeps(t *testing.T) (store.Store, *engine.Engine, *refresher.Service) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	e := engine.New(s, engine.Config{Location: time.UTC})

	cfg := &config.Config{}
	cfg.WorkerPool.Size = 2
	r := refresher.NewService(cfg, s, e)

	return s, e, r
}

// seedCampus loads one building (open Mon-Fri 08:00-22:00) with two rooms
// and a Wednesday 09:00-10:00 class in room 101.
func seedCampus(t *testing.T, s store.Store) {
	t.Helper()
	b := model.Building{Name: "ENG1", Latitude: 41.15, Longitude: -81.34}
	for _, day := range []clock.Weekday{clock.Monday, clock.Tuesday, clock.Wednesday, clock.Thursday, clock.Friday} {
		b.SetHoursOn(day, clock.NewTimeOfDay(8, 0, 0), clock.NewTimeOfDay(22, 0, 0))
	}
	require.NoError(t, s.DB().Create(&b).Error)
	require.NoError(t, s.DB().Create(&[]model.Room{
		{BuildingName: "ENG1", RoomNumber: "101"},
		{BuildingName: "ENG1", RoomNumber: "102"},
	}).Error)
	require.NoError(t, s.DB().Create(&model.ClassSchedule{
		BuildingName: "ENG1", RoomNumber: "101", DayOfWeek: clock.Wednesday,
		StartTime: clock.NewTimeOfDay(9, 0, 0), EndTime: clock.NewTimeOfDay(10, 0, 0),
		CourseCode: "CS 101", CourseTitle: "Intro to Programming",
		StartDate: "2026-01-12", EndDate: "2026-05-05",
	}).Error)
}
