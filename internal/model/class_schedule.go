package model

import (
	"time"

	"open-rooms-backend/internal/clock"
)

// ClassSchedule is one recurring class meeting: a course occupying a room on
// one weekday between start and end time, active for the term's date range
// (inclusive on both ends). A multi-day section is loaded as one row per day.
type ClassSchedule struct {
	ID           int64           `gorm:"autoIncrement;primaryKey"`
	BuildingName string          `gorm:"size:16;not null;index:idx_class_room_day,priority:1"`
	RoomNumber   string          `gorm:"size:16;not null;index:idx_class_room_day,priority:2"`
	DayOfWeek    clock.Weekday   `gorm:"size:1;not null;index:idx_class_room_day,priority:3"`
	StartTime    clock.TimeOfDay `gorm:"type:time;not null"`
	EndTime      clock.TimeOfDay `gorm:"type:time;not null"`
	CourseCode   string          `gorm:"size:32;not null"`
	CourseTitle  string          `gorm:"size:256;not null"`
	StartDate    clock.DateStamp `gorm:"type:date;not null"`
	EndDate      clock.DateStamp `gorm:"type:date;not null"`
	CreatedAt    time.Time
}

// ActiveOn reports whether the class meets on the given date.
func (c *ClassSchedule) ActiveOn(date clock.DateStamp) bool {
	return c.DayOfWeek == date.Weekday() && c.StartDate <= date && date <= c.EndDate
}
