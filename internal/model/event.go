package model

import "time"

// Event is a one-off room booking with absolute start/end instants. The
// stored instants carry their own UTC offset; the engine localizes them to
// campus time when matching a calendar date.
type Event struct {
	ID           int64     `gorm:"autoIncrement;primaryKey"`
	BuildingName string    `gorm:"size:16;not null;index:idx_event_room,priority:1"`
	RoomNumber   string    `gorm:"size:16;not null;index:idx_event_room,priority:2"`
	StartsAt     time.Time `gorm:"not null;index"`
	EndsAt       time.Time `gorm:"not null"`
	EventName    string    `gorm:"size:256;not null"`
	Occupant     string    `gorm:"size:256"`
	CreatedAt    time.Time
}
