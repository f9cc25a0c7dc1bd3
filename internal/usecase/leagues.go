package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
)

const (
	defaultOverviewWorkers = 4

	msgLeagueNameRequired = "Please enter a league name"
	msgJoinCodeRequired   = "Please enter a join code"
	msgLeagueCreated      = "League created successfully!"
	msgLeagueCreateFailed = "Failed to create league. Please try again."
)

type LeaguesOptions struct {
	OverviewWorkers int
	Notifier        Notifier
	Logger          *logging.Logger
}

// LeagueOverview is one row of the leagues list with its stats card.
// StatsLoaded is false when the stats request failed.
type LeagueOverview struct {
	League      league.League
	Stats       league.Stats
	StatsLoaded bool
}

type LeaguesService struct {
	leagueRepo league.Repository
	notifier   Notifier
	logger     *logging.Logger
	workers    int
}

func NewLeaguesService(leagueRepo league.Repository, opts LeaguesOptions) *LeaguesService {
	if opts.OverviewWorkers <= 0 {
		opts.OverviewWorkers = defaultOverviewWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &LeaguesService{
		leagueRepo: leagueRepo,
		notifier:   notifierOrNop(opts.Notifier),
		logger:     opts.Logger,
		workers:    opts.OverviewWorkers,
	}
}

func (s *LeaguesService) List(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaguesService.List")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

func (s *LeaguesService) Create(ctx context.Context, name string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaguesService.Create")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		err := &ValidationError{Field: "name", Message: msgLeagueNameRequired}
		s.notifier.Notify(NoticeError, err.Message)
		return league.League{}, err
	}

	created, err := s.leagueRepo.Create(ctx, name)
	if err != nil {
		s.logger.WarnContext(ctx, "create league failed", "error", err)
		s.notifier.Notify(NoticeError, UserMessage(err, msgLeagueCreateFailed))
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.notifier.Notify(NoticeSuccess, msgLeagueCreated)
	return created, nil
}

func (s *LeaguesService) JoinByCode(ctx context.Context, code string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaguesService.JoinByCode")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		err := &ValidationError{Field: "joinCode", Message: msgJoinCodeRequired}
		s.notifier.Notify(NoticeError, err.Message)
		return league.League{}, err
	}

	joined, err := s.leagueRepo.JoinByCode(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "join league by code failed", "error", err)
		s.notifier.Notify(NoticeError, UserMessage(err, msgJoinFailed))
		return league.League{}, fmt.Errorf("join league by code: %w", err)
	}

	s.notifier.Notify(NoticeSuccess, msgJoinSuccess)
	return joined, nil
}

// PreviewByCode looks a league up by join code without joining it.
func (s *LeaguesService) PreviewByCode(ctx context.Context, code string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaguesService.PreviewByCode")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return league.League{}, &ValidationError{Field: "joinCode", Message: msgJoinCodeRequired}
	}

	item, found, err := s.leagueRepo.GetByCode(ctx, code)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by code: %w", err)
	}
	if !found {
		return league.League{}, fmt.Errorf("%w: join code %s", ErrNotFound, code)
	}
	return item, nil
}

// Overview lists leagues and loads each league's stats on a bounded worker
// pool. A failed stats request leaves that row with zero stats.
func (s *LeaguesService) Overview(ctx context.Context) ([]LeagueOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaguesService.Overview")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	rows := make([]LeagueOverview, len(items))
	for i, item := range items {
		rows[i].League = item
	}
	if len(items) == 0 {
		return rows, nil
	}

	workerCount := s.workers
	if workerCount > len(items) {
		workerCount = len(items)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range rows {
		i := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			leagueID := rows[i].League.ID
			stats, statsErr := s.leagueRepo.GetStats(ctx, leagueID)
			if statsErr != nil {
				s.logger.WarnContext(ctx, "load league stats for overview failed", "league_id", leagueID, "error", statsErr)
				return
			}
			rows[i].Stats = stats
			rows[i].StatsLoaded = true
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	return rows, nil
}
