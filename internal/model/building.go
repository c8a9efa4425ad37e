package model

import (
	"time"

	"open-rooms-backend/internal/clock"
)

// Building holds a campus building with its coordinates and per-weekday
// operating hours, matching the loader's schema: a nil open or close, or
// open >= close, means the building is closed that day.
type Building struct {
	Name      string  `gorm:"primaryKey;size:16" json:"name"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	MondayOpen     *clock.TimeOfDay `gorm:"type:time" json:"-"`
	MondayClose    *clock.TimeOfDay `gorm:"type:time" json:"-"`
	TuesdayOpen    *clock.TimeOfDay `gorm:"type:time" json:"-"`
	TuesdayClose   *clock.TimeOfDay `gorm:"type:time" json:"-"`
	WednesdayOpen  *clock.TimeOfDay `gorm:"type:time" json:"-"`
	WednesdayClose *clock.TimeOfDay `gorm:"type:time" json:"-"`
	ThursdayOpen   *clock.TimeOfDay `gorm:"type:time" json:"-"`
	ThursdayClose  *clock.TimeOfDay `gorm:"type:time" json:"-"`
	FridayOpen     *clock.TimeOfDay `gorm:"type:time" json:"-"`
	FridayClose    *clock.TimeOfDay `gorm:"type:time" json:"-"`
	SaturdayOpen   *clock.TimeOfDay `gorm:"type:time" json:"-"`
	SaturdayClose  *clock.TimeOfDay `gorm:"type:time" json:"-"`
	SundayOpen     *clock.TimeOfDay `gorm:"type:time" json:"-"`
	SundayClose    *clock.TimeOfDay `gorm:"type:time" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Associations
	Rooms []Room `gorm:"foreignKey:BuildingName;references:Name" json:"-"`
}

// HoursOn returns the open/close pair for the given weekday. ok is false
// when the building is closed that day.
func (b *Building) HoursOn(day clock.Weekday) (open, close clock.TimeOfDay, ok bool) {
	var o, c *clock.TimeOfDay
	switch day {
	case clock.Monday:
		o, c = b.MondayOpen, b.MondayClose
	case clock.Tuesday:
		o, c = b.TuesdayOpen, b.TuesdayClose
	case clock.Wednesday:
		o, c = b.WednesdayOpen, b.WednesdayClose
	case clock.Thursday:
		o, c = b.ThursdayOpen, b.ThursdayClose
	case clock.Friday:
		o, c = b.FridayOpen, b.FridayClose
	case clock.Saturday:
		o, c = b.SaturdayOpen, b.SaturdayClose
	case clock.Sunday:
		o, c = b.SundayOpen, b.SundayClose
	}
	if o == nil || c == nil || *o >= *c {
		return 0, 0, false
	}
	return *o, *c, true
}

// SetHoursOn assigns the open/close pair for the given weekday.
func (b *Building) SetHoursOn(day clock.Weekday, open, close clock.TimeOfDay) {
	o, c := open, close
	switch day {
	case clock.Monday:
		b.MondayOpen, b.MondayClose = &o, &c
	case clock.Tuesday:
		b.TuesdayOpen, b.TuesdayClose = &o, &c
	case clock.Wednesday:
		b.WednesdayOpen, b.WednesdayClose = &o, &c
	case clock.Thursday:
		b.ThursdayOpen, b.ThursdayClose = &o, &c
	case clock.Friday:
		b.FridayOpen, b.FridayClose = &o, &c
	case clock.Saturday:
		b.SaturdayOpen, b.SaturdayClose = &o, &c
	case clock.Sunday:
		b.SundayOpen, b.SundayClose = &o, &c
	}
}
