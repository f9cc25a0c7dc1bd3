package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/finalpoint-client/internal/domain/driver"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	drivermock "github.com/riskibarqy/finalpoint-client/internal/mocks/domain/driver"
	racemock "github.com/riskibarqy/finalpoint-client/internal/mocks/domain/race"
	"github.com/stretchr/testify/mock"
)

func TestDriverRepository_CachesList(t *testing.T) {
	t.Parallel()

	next := drivermock.NewRepository(t)
	next.On("List", mock.Anything).Return([]driver.Driver{{ID: 23, Name: "Alexander Albon"}}, nil).Once()

	repo := NewDriverRepository(next, time.Minute)
	ctx := context.Background()
	first, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("first list: %v", err)
	}
	first[0].Name = "mutated"

	second, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if second[0].Name != "Alexander Albon" {
		t.Fatalf("cached slice must not be shared with callers, got %q", second[0].Name)
	}
}

func TestDriverRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := drivermock.NewRepository(t)
	boom := errors.New("boom")
	next.On("List", mock.Anything).Return(nil, boom).Once()
	next.On("List", mock.Anything).Return([]driver.Driver{{ID: 10}}, nil).Once()

	repo := NewDriverRepository(next, time.Minute)
	if _, err := repo.List(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	items, err := repo.List(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("expected retry to load, got %v %v", items, err)
	}
}

func TestRaceRepository_CachesSeasonAndInvalidatesOnPopulate(t *testing.T) {
	t.Parallel()

	next := racemock.NewRepository(t)
	next.On("ListBySeason", mock.Anything, 2025).Return([]race.Race{{ID: 1, WeekNumber: 1}}, nil).Twice()
	next.On("GetByWeek", mock.Anything, 4, 2025).Return(race.Race{}, false, nil).Once()
	next.On("GetCurrent", mock.Anything).Return(race.Race{ID: 2, WeekNumber: 2}, true, nil).Twice()
	next.On("PopulateSeason", mock.Anything).Return(nil).Once()

	repo := NewRaceRepository(next, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := repo.ListBySeason(ctx, 2025); err != nil {
			t.Fatalf("list season: %v", err)
		}
		if _, found, err := repo.GetByWeek(ctx, 4, 2025); err != nil || found {
			t.Fatalf("missing week must be cached as absent: found=%v err=%v", found, err)
		}
		if _, _, err := repo.GetCurrent(ctx); err != nil {
			t.Fatalf("current: %v", err)
		}
	}
	next.AssertNumberOfCalls(t, "ListBySeason", 1)
	next.AssertNumberOfCalls(t, "GetCurrent", 2)

	if err := repo.PopulateSeason(ctx); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if _, err := repo.ListBySeason(ctx, 2025); err != nil {
		t.Fatalf("list after populate: %v", err)
	}
	next.AssertNumberOfCalls(t, "ListBySeason", 2)
}
