package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/finalpoint-client/internal/domain/driver"
	"github.com/riskibarqy/finalpoint-client/internal/domain/pick"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	msgPickSubmitted = "Pick submitted successfully!"
	msgPickFailed    = "Failed to submit pick. Please try again."

	msgLeaguePicksFailed = "Failed to load league picks"
)

type PicksOptions struct {
	Notifier Notifier
	Logger   *logging.Logger
}

type PicksSnapshot struct {
	LeagueID    int64
	Week        int
	Drivers     []driver.Driver
	Picks       []pick.Pick
	CurrentPick *pick.Pick
	CanSubmit   bool
	// LeaguePicks is nil until LoadLeaguePicks succeeds for this week.
	LeaguePicks []pick.LeaguePick
}

// PicksController drives the pick screen for one league and week.
type PicksController struct {
	driverRepo driver.Repository
	pickRepo   pick.Repository
	raceRepo   race.Repository
	notifier   Notifier
	logger     *logging.Logger

	mu       sync.Mutex
	leagueID int64
	week     int
	drivers  []driver.Driver
	picks    []pick.Pick

	leaguePicks []pick.LeaguePick
}

func NewPicksController(
	driverRepo driver.Repository,
	pickRepo pick.Repository,
	raceRepo race.Repository,
	opts PicksOptions,
) *PicksController {
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &PicksController{
		driverRepo: driverRepo,
		pickRepo:   pickRepo,
		raceRepo:   raceRepo,
		notifier:   notifierOrNop(opts.Notifier),
		logger:     opts.Logger,
	}
}

// Load fetches drivers and the user's picks for leagueID. A week of 0
// resolves to the current race week, or week 1 when no race is current.
func (c *PicksController) Load(ctx context.Context, leagueID int64, week int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksController.Load")
	defer span.End()

	if leagueID <= 0 {
		return fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}
	if week < 0 {
		return fmt.Errorf("%w: week must not be negative", ErrInvalidInput)
	}
	if week == 0 {
		week = c.resolveActiveWeek(ctx)
	}

	var (
		drivers   []driver.Driver
		picks     []pick.Pick
		driverErr error
		pickErr   error
	)
	var wg conc.WaitGroup
	wg.Go(func() { drivers, driverErr = c.driverRepo.List(ctx) })
	wg.Go(func() { picks, pickErr = c.pickRepo.ListByUser(ctx, leagueID) })
	wg.Wait()

	if driverErr != nil {
		return fmt.Errorf("list drivers: %w", driverErr)
	}
	if pickErr != nil {
		return fmt.Errorf("list picks: %w", pickErr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.leagueID = leagueID
	c.week = week
	c.drivers = drivers
	c.picks = picks
	c.leaguePicks = nil
	return nil
}

// LoadLeaguePicks fetches every member's pick for the active week.
func (c *PicksController) LoadLeaguePicks(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksController.LoadLeaguePicks")
	defer span.End()

	c.mu.Lock()
	leagueID, week := c.leagueID, c.week
	c.mu.Unlock()
	if leagueID <= 0 {
		return ErrNotLoaded
	}

	items, err := c.pickRepo.ListByLeagueWeek(ctx, leagueID, week)
	if err != nil {
		c.logger.WarnContext(ctx, "list league picks failed", "league_id", leagueID, "week", week, "error", err)
		c.notifier.Notify(NoticeError, UserMessage(err, msgLeaguePicksFailed))
		return fmt.Errorf("list league picks: %w", err)
	}
	if items == nil {
		items = []pick.LeaguePick{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.leagueID == leagueID && c.week == week {
		c.leaguePicks = items
	}
	return nil
}

// CurrentPick returns the pick for the active (league, week), if one exists.
func (c *PicksController) CurrentPick() (pick.Pick, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pick.FindForWeek(c.picks, c.leagueID, c.week)
}

// CanSubmit is false once the active week's pick is locked.
func (c *PicksController) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.leagueID <= 0 {
		return false
	}
	current, ok := pick.FindForWeek(c.picks, c.leagueID, c.week)
	return !ok || !current.IsLocked
}

// SubmitPick picks driverID for the active week. On success the local pick
// is updated before any refresh.
func (c *PicksController) SubmitPick(ctx context.Context, driverID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PicksController.SubmitPick")
	defer span.End()

	c.mu.Lock()
	leagueID, week := c.leagueID, c.week
	if leagueID <= 0 {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if current, ok := pick.FindForWeek(c.picks, leagueID, week); ok && current.IsLocked {
		c.mu.Unlock()
		return ErrPickLocked
	}
	chosen, ok := driver.FindByID(c.drivers, driverID)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: unknown driver %d", ErrInvalidInput, driverID)
	}

	input := pick.MakeInput{LeagueID: leagueID, WeekNumber: week, DriverID: driverID}
	if err := input.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := c.pickRepo.Make(ctx, input)
	if err != nil {
		c.logger.WarnContext(ctx, "submit pick failed", "league_id", leagueID, "week", week, "driver_id", driverID, "error", err)
		c.notifier.Notify(NoticeError, msgPickFailed)
		return fmt.Errorf("make pick: %w", err)
	}

	c.mu.Lock()
	c.applyPickLocked(leagueID, week, chosen, saved)
	c.mu.Unlock()

	c.notifier.Notify(NoticeSuccess, msgPickSubmitted)
	return nil
}

func (c *PicksController) Snapshot() PicksSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := PicksSnapshot{
		LeagueID: c.leagueID,
		Week:     c.week,
		Drivers:  append([]driver.Driver(nil), c.drivers...),
		Picks:    append([]pick.Pick(nil), c.picks...),
	}
	current, ok := pick.FindForWeek(c.picks, c.leagueID, c.week)
	if ok {
		snap.CurrentPick = &current
	}
	snap.CanSubmit = c.leagueID > 0 && (!ok || !current.IsLocked)
	if c.leaguePicks != nil {
		snap.LeaguePicks = append([]pick.LeaguePick{}, c.leaguePicks...)
	}
	return snap
}

// applyPickLocked replaces or appends the (league, week) pick with the
// submitted driver. Server fields win when the response carries them.
func (c *PicksController) applyPickLocked(leagueID int64, week int, chosen driver.Driver, saved pick.Pick) {
	updated := pick.Pick{
		ID:         saved.ID,
		LeagueID:   leagueID,
		WeekNumber: week,
		DriverID:   chosen.ID,
		DriverName: chosen.Name,
		IsLocked:   saved.IsLocked,
		Points:     saved.Points,
	}

	for i := range c.picks {
		if c.picks[i].LeagueID == leagueID && c.picks[i].WeekNumber == week {
			if updated.ID == 0 {
				updated.ID = c.picks[i].ID
			}
			c.picks[i] = updated
			return
		}
	}
	c.picks = append(c.picks, updated)
}

func (c *PicksController) resolveActiveWeek(ctx context.Context) int {
	if c.raceRepo == nil {
		return 1
	}
	current, found, err := c.raceRepo.GetCurrent(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "resolve current race failed", "error", err)
		return 1
	}
	if !found || current.WeekNumber < 1 {
		return 1
	}
	return current.WeekNumber
}
