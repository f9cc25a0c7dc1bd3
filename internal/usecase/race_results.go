package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	defaultSeasonYear = 2025

	msgResultsFailed = "Failed to load race results"
)

type RaceResultsOptions struct {
	SeasonYear int
	Notifier   Notifier
	Logger     *logging.Logger
}

// RaceResultsSnapshot is what the results page renders. Results is nil while
// the selected week has not been scored.
type RaceResultsSnapshot struct {
	LeagueID     int64
	LeagueName   string
	SeasonYear   int
	SelectedWeek int
	Races        []race.Race
	Results      *race.Results
	CanPrevious  bool
	CanNext      bool
	Progress     int
}

// RaceResultsNavigator walks the weeks of a season for one league and holds
// the results of the selected week.
type RaceResultsNavigator struct {
	leagueRepo  league.Repository
	raceRepo    race.Repository
	resultsRepo race.ResultsRepository
	notifier    Notifier
	logger      *logging.Logger
	seasonYear  int

	mu           sync.Mutex
	leagueID     int64
	leagueName   string
	selectedWeek int
	races        []race.Race
	racesSeason  int
	results      *race.Results
}

func NewRaceResultsNavigator(
	leagueRepo league.Repository,
	raceRepo race.Repository,
	resultsRepo race.ResultsRepository,
	opts RaceResultsOptions,
) *RaceResultsNavigator {
	if opts.SeasonYear <= 0 {
		opts.SeasonYear = defaultSeasonYear
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	return &RaceResultsNavigator{
		leagueRepo:  leagueRepo,
		raceRepo:    raceRepo,
		resultsRepo: resultsRepo,
		notifier:    notifierOrNop(opts.Notifier),
		logger:      opts.Logger,
		seasonYear:  opts.SeasonYear,
	}
}

// Open points the navigator at (league, week) and loads everything the page
// needs.
func (n *RaceResultsNavigator) Open(ctx context.Context, leagueID int64, week int) error {
	if leagueID <= 0 {
		return fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}
	if week < 1 {
		return fmt.Errorf("%w: week must be at least 1", ErrInvalidInput)
	}

	n.mu.Lock()
	if n.leagueID != leagueID {
		n.leagueID = leagueID
		n.leagueName = ""
		n.results = nil
	}
	n.selectedWeek = week
	n.mu.Unlock()

	return n.Load(ctx)
}

// Load fetches the league header, the season's races and the selected
// week's results concurrently. Only a results failure is returned; the
// other two are logged.
func (n *RaceResultsNavigator) Load(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceResultsNavigator.Load")
	defer span.End()

	var resultsErr error
	var wg conc.WaitGroup
	wg.Go(func() { n.loadLeagueHeader(ctx) })
	wg.Go(func() {
		if err := n.LoadRaces(ctx, n.seasonYear); err != nil {
			n.logger.WarnContext(ctx, "load races failed", "season_year", n.seasonYear, "error", err)
		}
	})
	wg.Go(func() { resultsErr = n.LoadResults(ctx) })
	wg.Wait()

	return resultsErr
}

// LoadRaces fetches the race calendar once per season. The list is kept
// sorted by week and is not refetched for the same season.
func (n *RaceResultsNavigator) LoadRaces(ctx context.Context, seasonYear int) error {
	n.mu.Lock()
	if n.races != nil && n.racesSeason == seasonYear {
		n.mu.Unlock()
		return nil
	}
	n.mu.Unlock()

	items, err := n.raceRepo.ListBySeason(ctx, seasonYear)
	if err != nil {
		return fmt.Errorf("list races for season %d: %w", seasonYear, err)
	}

	sorted := race.SortByWeek(items)
	n.mu.Lock()
	n.races = sorted
	n.racesSeason = seasonYear
	n.mu.Unlock()
	return nil
}

// LoadResults fetches results for the selected week. A response for a week
// that is no longer selected is dropped. On failure the user is notified
// and the previous results stay in place. A rejected envelope keeps them
// silently.
func (n *RaceResultsNavigator) LoadResults(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RaceResultsNavigator.LoadResults")
	defer span.End()

	n.mu.Lock()
	leagueID, week := n.leagueID, n.selectedWeek
	n.mu.Unlock()
	if leagueID <= 0 || week < 1 {
		return ErrNotLoaded
	}

	results, found, err := n.resultsRepo.GetResults(ctx, leagueID, week)
	if errors.Is(err, ErrRejected) {
		n.logger.DebugContext(ctx, "race results rejected, keeping current view", "league_id", leagueID, "week", week, "error", err)
		return nil
	}
	if err != nil {
		n.logger.WarnContext(ctx, "load race results failed", "league_id", leagueID, "week", week, "error", err)
		n.notifier.Notify(NoticeError, UserMessage(err, msgResultsFailed))
		return fmt.Errorf("load results for week %d: %w", week, err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.leagueID != leagueID || n.selectedWeek != week {
		return nil
	}
	if !found || !results.IsScored() {
		n.results = nil
		return nil
	}
	n.results = &results
	return nil
}

// GoToPreviousWeek moves one race back. It reports false at the first race
// or when the selected week is not in the calendar.
func (n *RaceResultsNavigator) GoToPreviousWeek(ctx context.Context) (bool, error) {
	return n.step(ctx, -1)
}

// GoToNextWeek moves one race forward. It never wraps.
func (n *RaceResultsNavigator) GoToNextWeek(ctx context.Context) (bool, error) {
	return n.step(ctx, 1)
}

func (n *RaceResultsNavigator) step(ctx context.Context, delta int) (bool, error) {
	n.mu.Lock()
	idx := race.IndexOfWeek(n.races, n.selectedWeek)
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(n.races) {
		n.mu.Unlock()
		return false, nil
	}
	n.selectedWeek = n.races[target].WeekNumber
	n.mu.Unlock()

	return true, n.LoadResults(ctx)
}

// SelectWeek jumps to week directly, e.g. from a week picker.
func (n *RaceResultsNavigator) SelectWeek(ctx context.Context, week int) error {
	if week < 1 {
		return fmt.Errorf("%w: week must be at least 1", ErrInvalidInput)
	}

	n.mu.Lock()
	n.selectedWeek = week
	n.mu.Unlock()

	return n.LoadResults(ctx)
}

func (n *RaceResultsNavigator) CanGoPrevious() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return race.IndexOfWeek(n.races, n.selectedWeek) > 0
}

func (n *RaceResultsNavigator) CanGoNext() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	idx := race.IndexOfWeek(n.races, n.selectedWeek)
	return idx >= 0 && idx < len(n.races)-1
}

// Progress is the selected week's position in the season as a whole
// percentage, rounded half up.
func (n *RaceResultsNavigator) Progress() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return progressOf(n.races, n.selectedWeek)
}

func (n *RaceResultsNavigator) Snapshot() RaceResultsSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()

	idx := race.IndexOfWeek(n.races, n.selectedWeek)
	snap := RaceResultsSnapshot{
		LeagueID:     n.leagueID,
		LeagueName:   n.leagueName,
		SeasonYear:   n.seasonYear,
		SelectedWeek: n.selectedWeek,
		Races:        append([]race.Race(nil), n.races...),
		CanPrevious:  idx > 0,
		CanNext:      idx >= 0 && idx < len(n.races)-1,
		Progress:     progressOf(n.races, n.selectedWeek),
	}
	if n.results != nil {
		copied := *n.results
		copied.Results = append([]race.ResultEntry(nil), n.results.Results...)
		snap.Results = &copied
	}
	return snap
}

func (n *RaceResultsNavigator) loadLeagueHeader(ctx context.Context) {
	if n.leagueRepo == nil {
		return
	}

	n.mu.Lock()
	leagueID := n.leagueID
	n.mu.Unlock()

	item, found, err := n.leagueRepo.GetByID(ctx, leagueID)
	if err != nil || !found {
		if err == nil {
			err = ErrNotFound
		}
		if !errors.Is(err, ErrNotFound) {
			n.logger.WarnContext(ctx, "load league header failed", "league_id", leagueID, "error", err)
		}
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.leagueID == leagueID {
		n.leagueName = item.Name
	}
}

func progressOf(races []race.Race, week int) int {
	idx := race.IndexOfWeek(races, week)
	if idx < 0 || len(races) == 0 {
		return 0
	}
	return int(math.Floor(float64(idx+1)/float64(len(races))*100 + 0.5))
}
