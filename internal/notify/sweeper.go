package notify

import (
	"context"
	"log"
	"time"

	"open-rooms-backend/config"
	"open-rooms-backend/internal/clock"
	"open-rooms-backend/internal/engine"
)

// Sweeper periodically snapshots the campus and dispatches a notification
// for every room that transitioned from not-available to available since the
// previous sweep.
type Sweeper struct {
	cfg    *config.Config
	engine *engine.Engine
	pool   *WorkerPool

	// previous availability per room, from the last sweep
	prev map[RoomKey]bool
}

// NewSweeper creates the availability sweep service.
func NewSweeper(cfg *config.Config, e *engine.Engine, pool *WorkerPool) *Sweeper {
	return &Sweeper{cfg: cfg, engine: e, pool: pool, prev: make(map[RoomKey]bool)}
}

// Run starts the worker pool and sweeps on the configured interval.
func (s *Sweeper) Run(ctx context.Context) {
	if !s.cfg.Notifier.Enabled {
		log.Println("Availability notifier is disabled. Not starting.")
		return
	}
	log.Println("Starting availability notifier...")

	s.pool.Start(ctx)

	ticker := time.NewTicker(s.cfg.Notifier.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Availability notifier shutting down.")
			return
		case <-ticker.C:
			s.SweepOnce(ctx, time.Now())
		}
	}
}

// SweepOnce computes current availability and dispatches for fresh
// transitions to available. The first sweep only seeds the baseline.
func (s *Sweeper) SweepOnce(ctx context.Context, now time.Time) {
	loc := s.engine.Location()
	date := clock.DateStampOf(now, loc)
	at := clock.TimeOfDayOf(now.In(loc))

	snap, err := s.engine.Snapshot(ctx, date, at, 0)
	if err != nil {
		log.Printf("Notifier sweep failed: %v", err)
		return
	}

	seeding := len(s.prev) == 0
	current := make(map[RoomKey]bool)
	for building, bs := range snap.Buildings {
		for room, rs := range bs.Rooms {
			key := RoomKey{Building: building, Room: room}
			available := rs.Status == engine.StatusAvailable
			current[key] = available
			if available && !seeding && !s.prev[key] {
				s.pool.Dispatch(key)
			}
		}
	}
	s.prev = current
}
