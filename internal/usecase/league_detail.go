package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/finalpoint-client/internal/domain/activity"
	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/riskibarqy/finalpoint-client/internal/platform/resource"
	"github.com/sourcegraph/conc"
)

type LoadState string

const (
	LoadIdle          LoadState = "idle"
	LoadLoadingLeague LoadState = "loading_league"
	LoadLoaded        LoadState = "loaded"
	LoadNotFound      LoadState = "not_found"
)

type Panel string

const (
	PanelNone      Panel = "none"
	PanelMembers   Panel = "members"
	PanelStandings Panel = "standings"
)

type JoinState string

const (
	JoinNotMember JoinState = "not_member"
	JoinJoining   JoinState = "joining"
	JoinMember    JoinState = "member"
)

// CachePolicy decides when a panel toggle refetches its data.
type CachePolicy string

const (
	// FetchEveryToggle refetches each time a panel is turned on.
	FetchEveryToggle CachePolicy = "per-toggle"
	// CacheOnFirstLoad fetches only until one load succeeds or after Invalidate.
	CacheOnFirstLoad CachePolicy = "first-load"
)

const (
	defaultActivityLimit = 10

	msgJoinSuccess     = "Successfully joined the league!"
	msgJoinFailed      = "Failed to join league. Please try again."
	msgMembersFailed   = "Failed to load league members"
	msgStandingsFailed = "Failed to load league standings"
)

type LeagueDetailOptions struct {
	ActivityLimit int
	CachePolicy   CachePolicy
	Notifier      Notifier
	Logger        *logging.Logger
}

// LeagueDetailSnapshot is a copy of the controller state for rendering.
type LeagueDetailSnapshot struct {
	LeagueID       int64
	LoadState      LoadState
	Err            error
	League         league.League
	Panel          Panel
	JoinState      JoinState
	Stats          league.Stats
	Activity       []activity.Event
	CurrentRace    *race.Race
	Members        []league.Member
	MembersState   resource.State
	Standings      []league.RankedStanding
	StandingsState resource.State
}

// LeagueDetailController owns the view state of one league page. Load state,
// panel and join state move independently; every data slice has exactly one
// loader writing it.
type LeagueDetailController struct {
	leagueRepo   league.Repository
	activityRepo activity.Repository
	raceRepo     race.Repository
	notifier     Notifier
	logger       *logging.Logger

	activityLimit int
	policy        CachePolicy

	mu          sync.Mutex
	leagueID    int64
	loadState   LoadState
	loadErr     error
	league      league.League
	panel       Panel
	joinState   JoinState
	stats       league.Stats
	activity    []activity.Event
	currentRace *race.Race
	members     *resource.Resource[[]league.Member]
	standings   *resource.Resource[[]league.Standing]
}

func NewLeagueDetailController(
	leagueRepo league.Repository,
	activityRepo activity.Repository,
	raceRepo race.Repository,
	opts LeagueDetailOptions,
) *LeagueDetailController {
	if opts.ActivityLimit <= 0 {
		opts.ActivityLimit = defaultActivityLimit
	}
	if opts.CachePolicy == "" {
		opts.CachePolicy = FetchEveryToggle
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	return &LeagueDetailController{
		leagueRepo:    leagueRepo,
		activityRepo:  activityRepo,
		raceRepo:      raceRepo,
		notifier:      notifierOrNop(opts.Notifier),
		logger:        opts.Logger,
		activityLimit: opts.ActivityLimit,
		policy:        opts.CachePolicy,
		loadState:     LoadIdle,
		panel:         PanelNone,
		joinState:     JoinNotMember,
		members:       resource.New[[]league.Member](),
		standings:     resource.New[[]league.Standing](),
	}
}

// LoadLeague fetches league metadata, then stats, recent activity and the
// current race concurrently. Failures of those three only degrade their own
// slice. Any failure of the league fetch itself ends in NotFound.
func (c *LeagueDetailController) LoadLeague(ctx context.Context, leagueID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueDetailController.LoadLeague")
	defer span.End()

	if leagueID <= 0 {
		return fmt.Errorf("%w: league id must be positive", ErrInvalidInput)
	}

	c.mu.Lock()
	if c.leagueID != leagueID {
		c.resetLocked(leagueID)
	}
	c.loadState = LoadLoadingLeague
	c.loadErr = nil
	c.mu.Unlock()

	item, found, err := c.leagueRepo.GetByID(ctx, leagueID)
	if err == nil && !found {
		err = fmt.Errorf("%w: league %d", ErrNotFound, leagueID)
	}

	c.mu.Lock()
	if c.leagueID != leagueID {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.loadState = LoadNotFound
		c.loadErr = err
		c.mu.Unlock()
		return fmt.Errorf("load league: %w", err)
	}
	c.league = item
	c.loadState = LoadLoaded
	switch {
	case c.joinState == JoinJoining:
		// the pending join decides the outcome
	case item.IsMember:
		c.joinState = JoinMember
	default:
		c.joinState = JoinNotMember
	}
	c.mu.Unlock()

	var wg conc.WaitGroup
	wg.Go(func() { c.refreshStats(ctx, leagueID) })
	wg.Go(func() { c.refreshActivity(ctx, leagueID) })
	wg.Go(func() { c.refreshCurrentRace(ctx, leagueID) })
	wg.Wait()

	return nil
}

// ToggleMembers shows or hides the members panel. Showing it hides standings
// and fetches members once for this transition.
func (c *LeagueDetailController) ToggleMembers(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueDetailController.ToggleMembers")
	defer span.End()

	res, leagueID, fetch, err := togglePanel(c, PanelMembers, func() *resource.Resource[[]league.Member] { return c.members })
	if err != nil || !fetch {
		return err
	}

	if _, err := res.Load(ctx, func(ctx context.Context) ([]league.Member, error) {
		return c.leagueRepo.ListMembers(ctx, leagueID)
	}); err != nil {
		c.logger.WarnContext(ctx, "load league members failed", "league_id", leagueID, "error", err)
		c.notifier.Notify(NoticeError, msgMembersFailed)
		return fmt.Errorf("load members: %w", err)
	}
	return nil
}

// ToggleStandings mirrors ToggleMembers for the standings panel.
func (c *LeagueDetailController) ToggleStandings(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueDetailController.ToggleStandings")
	defer span.End()

	res, leagueID, fetch, err := togglePanel(c, PanelStandings, func() *resource.Resource[[]league.Standing] { return c.standings })
	if err != nil || !fetch {
		return err
	}

	if _, err := res.Load(ctx, func(ctx context.Context) ([]league.Standing, error) {
		return c.leagueRepo.ListStandings(ctx, leagueID)
	}); err != nil {
		c.logger.WarnContext(ctx, "load league standings failed", "league_id", leagueID, "error", err)
		c.notifier.Notify(NoticeError, msgStandingsFailed)
		return fmt.Errorf("load standings: %w", err)
	}
	return nil
}

// togglePanel flips target under the lock and reports whether the caller must
// fetch. The resource is captured here so a late response lands in the
// resource of the league it was requested for.
func togglePanel[T any](c *LeagueDetailController, target Panel, pick func() *resource.Resource[T]) (*resource.Resource[T], int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loadState != LoadLoaded {
		return nil, 0, false, ErrNotLoaded
	}

	if c.panel == target {
		c.panel = PanelNone
		return nil, 0, false, nil
	}
	c.panel = target

	res := pick()
	fetch := c.policy == FetchEveryToggle || res.NeedsLoad()
	return res, c.leagueID, fetch, nil
}

// JoinLeague joins the loaded league. Only a successful join moves
// NotMember to Member; stats and activity are then reloaded once each.
func (c *LeagueDetailController) JoinLeague(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueDetailController.JoinLeague")
	defer span.End()

	c.mu.Lock()
	if c.loadState != LoadLoaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	switch c.joinState {
	case JoinJoining:
		c.mu.Unlock()
		return ErrJoinInProgress
	case JoinMember:
		c.mu.Unlock()
		return ErrAlreadyMember
	}
	c.joinState = JoinJoining
	leagueID := c.leagueID
	c.mu.Unlock()

	if err := c.leagueRepo.Join(ctx, leagueID); err != nil {
		c.mu.Lock()
		if c.leagueID == leagueID {
			c.joinState = JoinNotMember
		}
		c.mu.Unlock()

		c.logger.WarnContext(ctx, "join league failed", "league_id", leagueID, "error", err)
		c.notifier.Notify(NoticeError, UserMessage(err, msgJoinFailed))
		return fmt.Errorf("join league: %w", err)
	}

	c.mu.Lock()
	if c.leagueID == leagueID {
		c.joinState = JoinMember
		c.league.IsMember = true
		if c.league.UserRole == "" {
			c.league.UserRole = league.RoleMember
		}
	}
	c.mu.Unlock()

	c.notifier.Notify(NoticeSuccess, msgJoinSuccess)

	var wg conc.WaitGroup
	wg.Go(func() { c.refreshStats(ctx, leagueID) })
	wg.Go(func() { c.refreshActivity(ctx, leagueID) })
	wg.Wait()

	return nil
}

// InvalidatePanels marks members and standings as needing a fetch on the next
// toggle-on, whatever the cache policy.
func (c *LeagueDetailController) InvalidatePanels() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.members.Invalidate()
	c.standings.Invalidate()
}

func (c *LeagueDetailController) Snapshot() LeagueDetailSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := LeagueDetailSnapshot{
		LeagueID:       c.leagueID,
		LoadState:      c.loadState,
		Err:            c.loadErr,
		League:         c.league,
		Panel:          c.panel,
		JoinState:      c.joinState,
		Stats:          c.stats,
		Activity:       activity.SortRecentFirst(c.activity),
		MembersState:   c.members.State(),
		StandingsState: c.standings.State(),
	}
	if c.currentRace != nil {
		current := *c.currentRace
		snap.CurrentRace = &current
	}
	if members, ok := c.members.Value(); ok {
		snap.Members = append([]league.Member(nil), members...)
	}
	if standings, ok := c.standings.Value(); ok {
		snap.Standings = league.RankStandings(standings)
	}
	return snap
}

// ShareLink builds the invite URL for the loaded league.
func (c *LeagueDetailController) ShareLink(baseURL string) (string, bool) {
	c.mu.Lock()
	item := c.league
	loaded := c.loadState == LoadLoaded
	c.mu.Unlock()

	if !loaded || !item.HasJoinCode() {
		return "", false
	}
	return strings.TrimRight(baseURL, "/") + "/joinleague/" + strings.TrimSpace(item.JoinCode), true
}

func (c *LeagueDetailController) resetLocked(leagueID int64) {
	c.leagueID = leagueID
	c.league = league.League{}
	c.panel = PanelNone
	c.joinState = JoinNotMember
	c.stats = league.Stats{}
	c.activity = nil
	c.currentRace = nil
	c.members = resource.New[[]league.Member]()
	c.standings = resource.New[[]league.Standing]()
}

func (c *LeagueDetailController) refreshStats(ctx context.Context, leagueID int64) {
	stats, err := c.leagueRepo.GetStats(ctx, leagueID)
	if err != nil {
		c.logger.WarnContext(ctx, "load league stats failed", "league_id", leagueID, "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.leagueID == leagueID {
		c.stats = stats
	}
}

func (c *LeagueDetailController) refreshActivity(ctx context.Context, leagueID int64) {
	events, err := c.activityRepo.ListRecent(ctx, leagueID, c.activityLimit)
	if err != nil {
		c.logger.WarnContext(ctx, "load league activity failed", "league_id", leagueID, "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.leagueID == leagueID {
		c.activity = events
	}
}

func (c *LeagueDetailController) refreshCurrentRace(ctx context.Context, leagueID int64) {
	if c.raceRepo == nil {
		return
	}
	current, found, err := c.raceRepo.GetCurrent(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "load current race failed", "error", err)
		return
	}
	if !found {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.leagueID == leagueID {
		c.currentRace = &current
	}
}
