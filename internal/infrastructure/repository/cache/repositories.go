package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/finalpoint-client/internal/domain/driver"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	basecache "github.com/riskibarqy/finalpoint-client/internal/platform/cache"
)

// DriverRepository caches the driver grid, which only changes between
// seasons.
type DriverRepository struct {
	next  driver.Repository
	cache *basecache.Store[[]driver.Driver]
}

var _ driver.Repository = (*DriverRepository)(nil)

func NewDriverRepository(next driver.Repository, ttl time.Duration) *DriverRepository {
	return &DriverRepository{next: next, cache: basecache.NewStore[[]driver.Driver](ttl)}
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	items, err := r.cache.GetOrLoad(ctx, "driver:list", func(ctx context.Context) ([]driver.Driver, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]driver.Driver(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]driver.Driver(nil), items...), nil
}

// RaceRepository caches the season calendar and per-week lookups. The
// current race is never cached because it moves as the season runs.
type RaceRepository struct {
	next    race.Repository
	seasons *basecache.Store[[]race.Race]
	weeks   *basecache.Store[cachedRaceByWeek]
}

var _ race.Repository = (*RaceRepository)(nil)

type cachedRaceByWeek struct {
	value  race.Race
	exists bool
}

func NewRaceRepository(next race.Repository, ttl time.Duration) *RaceRepository {
	return &RaceRepository{
		next:    next,
		seasons: basecache.NewStore[[]race.Race](ttl),
		weeks:   basecache.NewStore[cachedRaceByWeek](ttl),
	}
}

func (r *RaceRepository) GetCurrent(ctx context.Context) (race.Race, bool, error) {
	return r.next.GetCurrent(ctx)
}

func (r *RaceRepository) ListBySeason(ctx context.Context, seasonYear int) ([]race.Race, error) {
	key := "race:season:" + strconv.Itoa(seasonYear)
	items, err := r.seasons.GetOrLoad(ctx, key, func(ctx context.Context) ([]race.Race, error) {
		items, err := r.next.ListBySeason(ctx, seasonYear)
		if err != nil {
			return nil, err
		}
		return append([]race.Race(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]race.Race(nil), items...), nil
}

func (r *RaceRepository) GetByWeek(ctx context.Context, weekNumber, seasonYear int) (race.Race, bool, error) {
	key := "race:week:" + strconv.Itoa(seasonYear) + ":" + strconv.Itoa(weekNumber)
	cached, err := r.weeks.GetOrLoad(ctx, key, func(ctx context.Context) (cachedRaceByWeek, error) {
		item, exists, err := r.next.GetByWeek(ctx, weekNumber, seasonYear)
		if err != nil {
			return cachedRaceByWeek{}, err
		}
		return cachedRaceByWeek{value: item, exists: exists}, nil
	})
	if err != nil {
		return race.Race{}, false, err
	}
	return cached.value, cached.exists, nil
}

// PopulateSeason rebuilds the calendar server side, so every cached season
// and week is dropped once it succeeds.
func (r *RaceRepository) PopulateSeason(ctx context.Context) error {
	if err := r.next.PopulateSeason(ctx); err != nil {
		return err
	}
	r.seasons.DeletePrefix(ctx, "race:")
	r.weeks.DeletePrefix(ctx, "race:")
	return nil
}
