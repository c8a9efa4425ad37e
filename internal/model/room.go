package model

import "time"

// Room is identified by (building, room number). Rooms are set once by the
// data load and are read-only to the availability engine.
type Room struct {
	BuildingName string    `gorm:"primaryKey;size:16" json:"building"`
	RoomNumber   string    `gorm:"primaryKey;size:16" json:"room"`
	CreatedAt    time.Time `json:"-"`

	// Associations
	Building Building `gorm:"foreignKey:BuildingName;references:Name" json:"-"`
}
