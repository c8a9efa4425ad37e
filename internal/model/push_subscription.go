package model

import "time"

// PushSubscription holds a browser push subscription watching one or more
// rooms for availability.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// SubscriptionRoom maps a subscription to a watched room. Rooms have a
// composite key, so the join table is an explicit model rather than a
// many2many tag.
type SubscriptionRoom struct {
	Endpoint     string `gorm:"primaryKey"`
	BuildingName string `gorm:"primaryKey;size:16"`
	RoomNumber   string `gorm:"primaryKey;size:16"`
}
