package refresher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"open-rooms-backend/config"
	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/engine"
	"open-rooms-backend/internal/model"
	"open-rooms-backend/internal/store"
)

// Service precomputes each room's merged occupancy once per day and writes
// it to the activity cache. Query paths fall back to live computation for
// dates the cache does not cover, so a failed refresh degrades performance,
// not correctness.
type Service struct {
	cfg    *config.Config
	store  store.Store
	engine *engine.Engine

	mu       sync.Mutex
	inflight map[clock.DateStamp]*sync.Mutex
}

// NewService creates the refresh service.
func NewService(cfg *config.Config, s store.Store, e *engine.Engine) *Service {
	return &Service{
		cfg:      cfg,
		store:    s,
		engine:   e,
		inflight: make(map[clock.DateStamp]*sync.Mutex),
	}
}

// Run refreshes today's cache immediately, then once per day at the
// configured local hour.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Refresh.Enabled {
		log.Println("Cache refresher is disabled. Not starting.")
		return
	}
	log.Println("Starting cache refresher...")

	s.refreshToday(ctx)

	timer := time.NewTimer(s.untilNextRun())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cache refresher shutting down.")
			return
		case <-timer.C:
			s.refreshToday(ctx)
			timer.Reset(s.untilNextRun())
		}
	}
}

func (s *Service) refreshToday(ctx context.Context) {
	loc := s.engine.Location()
	date := clock.DateStampOf(time.Now().In(loc), loc)
	if err := s.RefreshDate(ctx, date); err != nil {
		log.Printf("Cache refresh for %s failed: %v", date, err)
	}
}

func (s *Service) untilNextRun() time.Duration {
	loc := s.engine.Location()
	now := time.Now().In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.Refresh.HourLocal, 0, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// dateLock serializes refreshes per date: at most one concurrent refresh may
// run for any given date.
func (s *Service) dateLock(date clock.DateStamp) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.inflight[date]
	if !ok {
		l = &sync.Mutex{}
		s.inflight[date] = l
	}
	return l
}

// RefreshDate recomputes every room's merged activity list for the date and
// replaces the date's cache entries in one transaction. Any room failure
// aborts the refresh before anything is written, so an existing entry can
// never be partially overwritten. Idempotent: unchanged source data yields
// identical entries.
func (s *Service) RefreshDate(ctx context.Context, date clock.DateStamp) error {
	l := s.dateLock(date)
	l.Lock()
	defer l.Unlock()

	buildings, err := s.store.Buildings(ctx)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", date, err)
	}
	byName := make(map[string]*model.Building, len(buildings))
	for i := range buildings {
		byName[buildings[i].Name] = &buildings[i]
	}

	rooms, err := s.store.AllRooms(ctx)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", date, err)
	}

	jobs := make(chan model.Room)
	results := make([]model.RoomActivityCache, 0, len(rooms))
	var resMu sync.Mutex
	var firstErr error

	workers := s.cfg.WorkerPool.Size
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for room := range jobs {
				entry, err := s.computeEntry(ctx, byName[room.BuildingName], room, date)
				resMu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				if entry != nil {
					results = append(results, *entry)
				}
				resMu.Unlock()
			}
		}()
	}

	for _, room := range rooms {
		jobs <- room
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return fmt.Errorf("refresh %s aborted, cache left untouched: %w", date, firstErr)
	}

	if err := s.store.ReplaceCacheForDate(ctx, date, results); err != nil {
		return fmt.Errorf("refresh %s: %w", date, err)
	}
	log.Printf("Cache refreshed for %s: %d rooms", date, len(results))
	return nil
}

// computeEntry builds one room's cache entry. Rooms in a building closed
// that day get an entry with an empty activity list, so the cache still
// covers them and the read path does not fall back to live queries.
func (s *Service) computeEntry(ctx context.Context, b *model.Building, room model.Room, date clock.DateStamp) (*model.RoomActivityCache, error) {
	if b == nil {
		return nil, fmt.Errorf("room %s/%s references unknown building", room.BuildingName, room.RoomNumber)
	}

	merged, err := s.engine.MergedSchedule(ctx, b, room.RoomNumber, date)
	if err != nil {
		return nil, err
	}
	if merged == nil {
		merged = []engine.OccupancyInterval{}
	}

	activities, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encoding activities for %s %s: %w", room.BuildingName, room.RoomNumber, err)
	}

	return &model.RoomActivityCache{
		BuildingName: room.BuildingName,
		RoomNumber:   room.RoomNumber,
		Date:         date,
		Activities:   string(activities),
	}, nil
}
