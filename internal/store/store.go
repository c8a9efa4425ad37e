package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/model"
)

// Store defines all database operations used by the engine, the refresher
// and the API layer.
type Store interface {
	DB() *gorm.DB

	Buildings(ctx context.Context) ([]model.Building, error)
	Building(ctx context.Context, name string) (*model.Building, error)
	Room(ctx context.Context, building, room string) (*model.Room, error)
	RoomsIn(ctx context.Context, building string) ([]model.Room, error)
	AllRooms(ctx context.Context) ([]model.Room, error)

	ClassesOn(ctx context.Context, building, room string, day clock.Weekday) ([]model.ClassSchedule, error)
	EventsBetween(ctx context.Context, building, room string, from, to time.Time) ([]model.Event, error)

	CachedActivities(ctx context.Context, building, room string, date clock.DateStamp) (*model.RoomActivityCache, error)
	ReplaceCacheForDate(ctx context.Context, date clock.DateStamp, entries []model.RoomActivityCache) error

	SaveSubscription(ctx context.Context, sub *model.PushSubscription, rooms []model.SubscriptionRoom) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscribedRooms(ctx context.Context, endpoint string) ([]model.SubscriptionRoom, error)
	SubscriptionsForRoom(ctx context.Context, building, room string) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB { return s.db }

func (s *gormStore) Buildings(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	if err := s.db.WithContext(ctx).Order("name").Find(&buildings).Error; err != nil {
		return nil, fmt.Errorf("listing buildings: %w", err)
	}
	return buildings, nil
}

func (s *gormStore) Building(ctx context.Context, name string) (*model.Building, error) {
	var b model.Building
	if err := s.db.WithContext(ctx).First(&b, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *gormStore) Room(ctx context.Context, building, room string) (*model.Room, error) {
	var r model.Room
	err := s.db.WithContext(ctx).
		First(&r, "building_name = ? AND room_number = ?", building, room).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *gormStore) RoomsIn(ctx context.Context, building string) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Where("building_name = ?", building).
		Order("room_number").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("listing rooms in %s: %w", building, err)
	}
	return rooms, nil
}

func (s *gormStore) AllRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("building_name, room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) ClassesOn(ctx context.Context, building, room string, day clock.Weekday) ([]model.ClassSchedule, error) {
	var classes []model.ClassSchedule
	err := s.db.WithContext(ctx).
		Where("building_name = ? AND room_number = ? AND day_of_week = ?", building, room, day).
		Find(&classes).Error
	if err != nil {
		return nil, fmt.Errorf("fetching classes for %s %s: %w", building, room, err)
	}
	return classes, nil
}

func (s *gormStore) EventsBetween(ctx context.Context, building, room string, from, to time.Time) ([]model.Event, error) {
	var events []model.Event
	err := s.db.WithContext(ctx).
		Where("building_name = ? AND room_number = ? AND starts_at >= ? AND starts_at < ?",
			building, room, from, to).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("fetching events for %s %s: %w", building, room, err)
	}
	return events, nil
}

// CachedActivities returns the precomputed entry for (room, date), or nil on
// a cache miss. A miss is the designed trigger for live fallback, not an
// error.
func (s *gormStore) CachedActivities(ctx context.Context, building, room string, date clock.DateStamp) (*model.RoomActivityCache, error) {
	var entry model.RoomActivityCache
	err := s.db.WithContext(ctx).
		First(&entry, "building_name = ? AND room_number = ? AND date = ?", building, room, date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache lookup for %s %s on %s: %w", building, room, date, err)
	}
	return &entry, nil
}

// ReplaceCacheForDate swaps out every cache entry for the date in a single
// transaction. A failed refresh rolls back wholesale, leaving any prior
// entries for the date intact.
func (s *gormStore) ReplaceCacheForDate(ctx context.Context, date clock.DateStamp, entries []model.RoomActivityCache) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).Delete(&model.RoomActivityCache{}).Error; err != nil {
			return fmt.Errorf("clearing cache for %s: %w", date, err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(entries, 500).Error; err != nil {
			return fmt.Errorf("writing cache for %s: %w", date, err)
		}
		return nil
	})
}

// SaveSubscription upserts a subscription and replaces its watched rooms.
func (s *gormStore) SaveSubscription(ctx context.Context, sub *model.PushSubscription, rooms []model.SubscriptionRoom) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(sub).Error; err != nil {
			return err
		}
		if err := tx.Where("endpoint = ?", sub.Endpoint).Delete(&model.SubscriptionRoom{}).Error; err != nil {
			return err
		}
		if len(rooms) == 0 {
			return nil
		}
		return tx.Create(&rooms).Error
	})
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("endpoint = ?", endpoint).Delete(&model.SubscriptionRoom{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PushSubscription{Endpoint: endpoint}).Error
	})
}

func (s *gormStore) SubscribedRooms(ctx context.Context, endpoint string) ([]model.SubscriptionRoom, error) {
	var sub model.PushSubscription
	if err := s.db.WithContext(ctx).First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		return nil, err
	}
	var rooms []model.SubscriptionRoom
	if err := s.db.WithContext(ctx).Where("endpoint = ?", endpoint).Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *gormStore) SubscriptionsForRoom(ctx context.Context, building, room string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Joins("JOIN subscription_rooms sr ON sr.endpoint = push_subscriptions.endpoint").
		Where("sr.building_name = ? AND sr.room_number = ?", building, room).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}
