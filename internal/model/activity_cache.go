package model

import (
	"time"

	"open-rooms-backend/internal/clock"
)

// RoomActivityCache is the precomputed merged occupancy for one room and
// date: the raw merged-but-unfilled interval list, serialized as JSON.
// Entries are immutable once written; a refresh replaces the whole date.
type RoomActivityCache struct {
	BuildingName string          `gorm:"primaryKey;size:16"`
	RoomNumber   string          `gorm:"primaryKey;size:16"`
	Date         clock.DateStamp `gorm:"primaryKey;type:date"`
	Activities   string          `gorm:"type:text;not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}
