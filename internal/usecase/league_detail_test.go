package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/finalpoint-client/internal/domain/activity"
	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	activitymock "github.com/riskibarqy/finalpoint-client/internal/mocks/domain/activity"
	leaguemock "github.com/riskibarqy/finalpoint-client/internal/mocks/domain/league"
	racemock "github.com/riskibarqy/finalpoint-client/internal/mocks/domain/race"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/riskibarqy/finalpoint-client/internal/platform/resource"
	"github.com/stretchr/testify/mock"
)

type serverMessageError struct {
	msg string
}

func (e serverMessageError) Error() string       { return "server: " + e.msg }
func (e serverMessageError) UserMessage() string { return e.msg }

type leagueDetailFixture struct {
	leagueRepo   *leaguemock.Repository
	activityRepo *activitymock.Repository
	raceRepo     *racemock.Repository
	notifier     *RecordingNotifier
	controller   *LeagueDetailController
}

func newLeagueDetailFixture(t *testing.T, policy CachePolicy) leagueDetailFixture {
	t.Helper()

	f := leagueDetailFixture{
		leagueRepo:   leaguemock.NewRepository(t),
		activityRepo: activitymock.NewRepository(t),
		raceRepo:     racemock.NewRepository(t),
		notifier:     &RecordingNotifier{},
	}
	f.controller = NewLeagueDetailController(f.leagueRepo, f.activityRepo, f.raceRepo, LeagueDetailOptions{
		CachePolicy: policy,
		Notifier:    f.notifier,
		Logger:      logging.NewNop(),
	})
	return f
}

// expectLoaded wires a successful league load with its three background calls.
func (f leagueDetailFixture) expectLoaded(item league.League) {
	f.leagueRepo.On("GetByID", mock.Anything, item.ID).Return(item, true, nil).Once()
	f.leagueRepo.On("GetStats", mock.Anything, item.ID).Return(league.Stats{TotalPicks: 4, CorrectPicks: 1}, nil).Once()
	f.activityRepo.On("ListRecent", mock.Anything, item.ID, 10).Return([]activity.Event{{ID: 1, Type: activity.TypeUserJoined, UserName: "ana"}}, nil).Once()
	f.raceRepo.On("GetCurrent", mock.Anything).Return(race.Race{ID: 9, WeekNumber: 5, RaceName: "Miami"}, true, nil).Once()
}

func TestLeagueDetail_LoadLeague_LoadsBackgroundSlices(t *testing.T) {
	t.Parallel()

	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.expectLoaded(league.League{ID: 7, Name: "Paddock Club", IsMember: true})

	if err := f.controller.LoadLeague(context.Background(), 7); err != nil {
		t.Fatalf("load league: %v", err)
	}

	snap := f.controller.Snapshot()
	if snap.LoadState != LoadLoaded {
		t.Fatalf("unexpected load state: %s", snap.LoadState)
	}
	if snap.JoinState != JoinMember {
		t.Fatalf("member league must start in member join state, got %s", snap.JoinState)
	}
	if snap.Stats.TotalPicks != 4 || len(snap.Activity) != 1 {
		t.Fatalf("background slices not applied: %+v", snap)
	}
	if snap.CurrentRace == nil || snap.CurrentRace.WeekNumber != 5 {
		t.Fatalf("expected current race week 5, got %+v", snap.CurrentRace)
	}
	if snap.Panel != PanelNone {
		t.Fatalf("expected no panel, got %s", snap.Panel)
	}
}

func TestLeagueDetail_LoadLeague_BackgroundFailuresAreIndependent(t *testing.T) {
	t.Parallel()

	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.leagueRepo.On("GetByID", mock.Anything, int64(3)).Return(league.League{ID: 3}, true, nil).Once()
	f.leagueRepo.On("GetStats", mock.Anything, int64(3)).Return(league.Stats{}, ErrTimeout).Once()
	f.activityRepo.On("ListRecent", mock.Anything, int64(3), 10).Return([]activity.Event{{ID: 11}, {ID: 12}}, nil).Once()
	f.raceRepo.On("GetCurrent", mock.Anything).Return(race.Race{}, false, ErrNetwork).Once()

	if err := f.controller.LoadLeague(context.Background(), 3); err != nil {
		t.Fatalf("background failures must not fail the load: %v", err)
	}

	snap := f.controller.Snapshot()
	if len(snap.Activity) != 2 {
		t.Fatalf("activity must display despite stats failure, got %d", len(snap.Activity))
	}
	if snap.Stats != (league.Stats{}) || snap.CurrentRace != nil {
		t.Fatalf("failed slices must degrade to defaults: %+v", snap)
	}
	if len(f.notifier.Notices()) != 0 {
		t.Fatalf("background failures must not notify, got %+v", f.notifier.Notices())
	}
}

func TestLeagueDetail_LoadLeague_NotFound(t *testing.T) {
	t.Parallel()

	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.leagueRepo.On("GetByID", mock.Anything, int64(404)).Return(league.League{}, false, nil).Once()

	err := f.controller.LoadLeague(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := f.controller.Snapshot().LoadState; got != LoadNotFound {
		t.Fatalf("expected not found state, got %s", got)
	}
	if err := f.controller.ToggleMembers(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("toggle without loaded league must fail with ErrNotLoaded, got %v", err)
	}
}

func TestLeagueDetail_TogglePanels_MutuallyExclusiveAndRetainData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.expectLoaded(league.League{ID: 7})
	f.leagueRepo.On("ListStandings", mock.Anything, int64(7)).Return([]league.Standing{
		{ID: 1, Name: "ana", TotalPoints: 10},
		{ID: 2, Name: "ben", TotalPoints: 25},
		{ID: 3, Name: "cal", TotalPoints: 18},
	}, nil).Once()
	f.leagueRepo.On("ListMembers", mock.Anything, int64(7)).Return([]league.Member{
		{ID: 1, Name: "ana", Role: league.RoleOwner, JoinedAt: time.Now()},
	}, nil).Once()

	if err := f.controller.LoadLeague(ctx, 7); err != nil {
		t.Fatalf("load league: %v", err)
	}

	if err := f.controller.ToggleStandings(ctx); err != nil {
		t.Fatalf("toggle standings: %v", err)
	}
	snap := f.controller.Snapshot()
	if snap.Panel != PanelStandings {
		t.Fatalf("expected standings panel, got %s", snap.Panel)
	}
	if snap.MembersState != resource.StateNotLoaded || snap.Members != nil {
		t.Fatalf("members must be untouched, state=%s", snap.MembersState)
	}
	wantPoints := []int{25, 18, 10}
	for i, row := range snap.Standings {
		if row.TotalPoints != wantPoints[i] || row.Rank != i+1 {
			t.Fatalf("row %d: got points=%d rank=%d", i, row.TotalPoints, row.Rank)
		}
	}

	if err := f.controller.ToggleMembers(ctx); err != nil {
		t.Fatalf("toggle members: %v", err)
	}
	snap = f.controller.Snapshot()
	if snap.Panel != PanelMembers {
		t.Fatalf("expected members panel, got %s", snap.Panel)
	}
	if len(snap.Standings) != 3 {
		t.Fatalf("hidden standings must be retained, got %d rows", len(snap.Standings))
	}
	if len(snap.Members) != 1 {
		t.Fatalf("expected one member, got %d", len(snap.Members))
	}
}

func TestLeagueDetail_ToggleFetchesOncePerToggleOn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.expectLoaded(league.League{ID: 7})
	f.leagueRepo.On("ListMembers", mock.Anything, int64(7)).Return([]league.Member{{ID: 1}}, nil).Twice()

	if err := f.controller.LoadLeague(ctx, 7); err != nil {
		t.Fatalf("load league: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := f.controller.ToggleMembers(ctx); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}

	f.leagueRepo.AssertNumberOfCalls(t, "ListMembers", 2)
	if got := f.controller.Snapshot().Panel; got != PanelMembers {
		t.Fatalf("expected members panel after on/off/on, got %s", got)
	}
}

func TestLeagueDetail_CacheOnFirstLoadPolicy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueDetailFixture(t, CacheOnFirstLoad)
	f.expectLoaded(league.League{ID: 7})
	f.leagueRepo.On("ListStandings", mock.Anything, int64(7)).Return([]league.Standing{{ID: 1}}, nil).Twice()

	if err := f.controller.LoadLeague(ctx, 7); err != nil {
		t.Fatalf("load league: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := f.controller.ToggleStandings(ctx); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	f.leagueRepo.AssertNumberOfCalls(t, "ListStandings", 1)

	f.controller.InvalidatePanels()
	if err := f.controller.ToggleStandings(ctx); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if err := f.controller.ToggleStandings(ctx); err != nil {
		t.Fatalf("toggle on after invalidate: %v", err)
	}
	f.leagueRepo.AssertNumberOfCalls(t, "ListStandings", 2)
}

func TestLeagueDetail_TogglePanelFailureNotifiesAndKeepsPanel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.expectLoaded(league.League{ID: 7})
	f.leagueRepo.On("ListMembers", mock.Anything, int64(7)).Return(nil, ErrNetwork).Once()

	if err := f.controller.LoadLeague(ctx, 7); err != nil {
		t.Fatalf("load league: %v", err)
	}
	err := f.controller.ToggleMembers(ctx)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}

	notices := f.notifier.Notices()
	if len(notices) != 1 || notices[0].Message != "Failed to load league members" {
		t.Fatalf("unexpected notices: %+v", notices)
	}
	if got := f.controller.Snapshot().MembersState; got != resource.StateFailed {
		t.Fatalf("expected failed members state, got %s", got)
	}
}

func TestLeagueDetail_JoinLeague_ReloadsStatsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.expectLoaded(league.League{ID: 7, IsMember: false})
	f.leagueRepo.On("Join", mock.Anything, int64(7)).Return(nil).Once()
	f.leagueRepo.On("GetStats", mock.Anything, int64(7)).Return(league.Stats{TotalPicks: 5}, nil).Once()
	f.activityRepo.On("ListRecent", mock.Anything, int64(7), 10).Return([]activity.Event{{ID: 1}, {ID: 2}}, nil).Once()

	if err := f.controller.LoadLeague(ctx, 7); err != nil {
		t.Fatalf("load league: %v", err)
	}
	if got := f.controller.Snapshot().JoinState; got != JoinNotMember {
		t.Fatalf("expected not member, got %s", got)
	}

	if err := f.controller.JoinLeague(ctx); err != nil {
		t.Fatalf("join league: %v", err)
	}

	snap := f.controller.Snapshot()
	if snap.JoinState != JoinMember || !snap.League.IsMember {
		t.Fatalf("join must set member state and flag, got %s isMember=%v", snap.JoinState, snap.League.IsMember)
	}
	if snap.Stats.TotalPicks != 5 || len(snap.Activity) != 2 {
		t.Fatalf("stats and activity must be reloaded: %+v", snap)
	}
	f.leagueRepo.AssertNumberOfCalls(t, "GetStats", 2)
	f.activityRepo.AssertNumberOfCalls(t, "ListRecent", 2)

	notices := f.notifier.Notices()
	if len(notices) != 1 || notices[0].Message != "Successfully joined the league!" {
		t.Fatalf("unexpected notices: %+v", notices)
	}

	if err := f.controller.JoinLeague(ctx); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestLeagueDetail_JoinLeague_RejectedWhileJoining(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.expectLoaded(league.League{ID: 7})

	entered := make(chan struct{})
	release := make(chan struct{})
	f.leagueRepo.On("Join", mock.Anything, int64(7)).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil).
		Once()
	f.leagueRepo.On("GetStats", mock.Anything, int64(7)).Return(league.Stats{}, nil).Once()
	f.activityRepo.On("ListRecent", mock.Anything, int64(7), 10).Return(nil, nil).Once()

	if err := f.controller.LoadLeague(ctx, 7); err != nil {
		t.Fatalf("load league: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- f.controller.JoinLeague(ctx) }()
	<-entered

	if got := f.controller.Snapshot().JoinState; got != JoinJoining {
		t.Fatalf("expected joining state, got %s", got)
	}
	if err := f.controller.JoinLeague(ctx); !errors.Is(err, ErrJoinInProgress) {
		t.Fatalf("expected ErrJoinInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first join: %v", err)
	}
	f.leagueRepo.AssertNumberOfCalls(t, "Join", 1)
}

func TestLeagueDetail_ReloadDuringJoinKeepsGuard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeagueDetailFixture(t, FetchEveryToggle)
	f.expectLoaded(league.League{ID: 7})
	f.expectLoaded(league.League{ID: 7})

	entered := make(chan struct{})
	release := make(chan struct{})
	f.leagueRepo.On("Join", mock.Anything, int64(7)).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil).
		Once()
	f.leagueRepo.On("GetStats", mock.Anything, int64(7)).Return(league.Stats{}, nil).Once()
	f.activityRepo.On("ListRecent", mock.Anything, int64(7), 10).Return(nil, nil).Once()

	if err := f.controller.LoadLeague(ctx, 7); err != nil {
		t.Fatalf("load league: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- f.controller.JoinLeague(ctx) }()
	<-entered

	if err := f.controller.LoadLeague(ctx, 7); err != nil {
		t.Fatalf("reload league: %v", err)
	}
	if got := f.controller.Snapshot().JoinState; got != JoinJoining {
		t.Fatalf("reload must not reset a pending join, got %s", got)
	}
	if err := f.controller.JoinLeague(ctx); !errors.Is(err, ErrJoinInProgress) {
		t.Fatalf("expected ErrJoinInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first join: %v", err)
	}
	if got := f.controller.Snapshot().JoinState; got != JoinMember {
		t.Fatalf("expected member after join, got %s", got)
	}
	f.leagueRepo.AssertNumberOfCalls(t, "Join", 1)
}

func TestLeagueDetail_JoinLeague_FailureReportsServerMessage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{name: "server message", err: serverMessageError{msg: "League is full"}, wantMsg: "League is full"},
		{name: "fallback", err: ErrNetwork, wantMsg: "Failed to join league. Please try again."},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			f := newLeagueDetailFixture(t, FetchEveryToggle)
			f.expectLoaded(league.League{ID: 7})
			f.leagueRepo.On("Join", mock.Anything, int64(7)).Return(tc.err).Once()

			if err := f.controller.LoadLeague(ctx, 7); err != nil {
				t.Fatalf("load league: %v", err)
			}
			if err := f.controller.JoinLeague(ctx); !errors.Is(err, tc.err) {
				t.Fatalf("expected join error, got %v", err)
			}

			snap := f.controller.Snapshot()
			if snap.JoinState != JoinNotMember || snap.League.IsMember {
				t.Fatalf("failed join must return to not member, got %s", snap.JoinState)
			}
			notices := f.notifier.Notices()
			if len(notices) != 1 || notices[0].Level != NoticeError || notices[0].Message != tc.wantMsg {
				t.Fatalf("unexpected notices: %+v", notices)
			}
		})
	}
}

func TestLeagueDetail_ShareLink(t *testing.T) {
	t.Parallel()

	f := newLeagueDetailFixture(t, FetchEveryToggle)
	if _, ok := f.controller.ShareLink("https://finalpoint.app"); ok {
		t.Fatalf("share link must be unavailable before load")
	}

	f.expectLoaded(league.League{ID: 7, JoinCode: "ABC123", IsMember: true})
	if err := f.controller.LoadLeague(context.Background(), 7); err != nil {
		t.Fatalf("load league: %v", err)
	}

	got, ok := f.controller.ShareLink("https://finalpoint.app/")
	if !ok || got != "https://finalpoint.app/joinleague/ABC123" {
		t.Fatalf("unexpected share link: %q ok=%v", got, ok)
	}
}
