package finalpoint

import (
	"context"

	"github.com/riskibarqy/finalpoint-client/internal/domain/activity"
	"github.com/riskibarqy/finalpoint-client/internal/domain/driver"
	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
	"github.com/riskibarqy/finalpoint-client/internal/domain/notification"
	"github.com/riskibarqy/finalpoint-client/internal/domain/pick"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
)

// The adapters below expose Client through the domain repository ports.

type LeagueRepository struct{ client *Client }
type RaceRepository struct{ client *Client }
type ResultsRepository struct{ client *Client }
type PickRepository struct{ client *Client }
type DriverRepository struct{ client *Client }
type ActivityRepository struct{ client *Client }
type UserRepository struct{ client *Client }
type NotificationRepository struct{ client *Client }

var (
	_ league.Repository       = (*LeagueRepository)(nil)
	_ race.Repository         = (*RaceRepository)(nil)
	_ race.ResultsRepository  = (*ResultsRepository)(nil)
	_ pick.Repository         = (*PickRepository)(nil)
	_ driver.Repository       = (*DriverRepository)(nil)
	_ activity.Repository     = (*ActivityRepository)(nil)
	_ user.Repository         = (*UserRepository)(nil)
	_ notification.Repository = (*NotificationRepository)(nil)
)

func (c *Client) Leagues() *LeagueRepository { return &LeagueRepository{client: c} }
func (c *Client) Races() *RaceRepository { return &RaceRepository{client: c} }
func (c *Client) Results() *ResultsRepository { return &ResultsRepository{client: c} }
func (c *Client) Picks() *PickRepository { return &PickRepository{client: c} }
func (c *Client) Drivers() *DriverRepository { return &DriverRepository{client: c} }
func (c *Client) Activity() *ActivityRepository { return &ActivityRepository{client: c} }
func (c *Client) Users() *UserRepository { return &UserRepository{client: c} }
func (c *Client) Notifications() *NotificationRepository {
	return &NotificationRepository{client: c}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	return r.client.ListLeagues(ctx)
}

func (r *LeagueRepository) Create(ctx context.Context, name string) (league.League, error) {
	return r.client.CreateLeague(ctx, name)
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID int64) (league.League, bool, error) {
	return r.client.GetLeague(ctx, leagueID)
}

func (r *LeagueRepository) Join(ctx context.Context, leagueID int64) error {
	return r.client.JoinLeague(ctx, leagueID)
}

func (r *LeagueRepository) JoinByCode(ctx context.Context, joinCode string) (league.League, error) {
	return r.client.JoinByCode(ctx, joinCode)
}

func (r *LeagueRepository) GetByCode(ctx context.Context, joinCode string) (league.League, bool, error) {
	return r.client.GetLeagueByCode(ctx, joinCode)
}

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID int64) ([]league.Member, error) {
	return r.client.ListMembers(ctx, leagueID)
}

func (r *LeagueRepository) ListStandings(ctx context.Context, leagueID int64) ([]league.Standing, error) {
	return r.client.ListStandings(ctx, leagueID)
}

func (r *LeagueRepository) GetStats(ctx context.Context, leagueID int64) (league.Stats, error) {
	return r.client.GetStats(ctx, leagueID)
}

func (r *RaceRepository) GetCurrent(ctx context.Context) (race.Race, bool, error) {
	return r.client.GetCurrentRace(ctx)
}

func (r *RaceRepository) ListBySeason(ctx context.Context, seasonYear int) ([]race.Race, error) {
	return r.client.ListRaces(ctx, seasonYear)
}

func (r *RaceRepository) GetByWeek(ctx context.Context, weekNumber, seasonYear int) (race.Race, bool, error) {
	return r.client.GetRaceByWeek(ctx, weekNumber, seasonYear)
}

func (r *RaceRepository) PopulateSeason(ctx context.Context) error {
	return r.client.PopulateSeason(ctx)
}

func (r *ResultsRepository) GetResults(ctx context.Context, leagueID int64, weekNumber int) (race.Results, bool, error) {
	return r.client.GetRaceResults(ctx, leagueID, weekNumber)
}

func (r *PickRepository) Make(ctx context.Context, input pick.MakeInput) (pick.Pick, error) {
	return r.client.MakePick(ctx, input)
}

func (r *PickRepository) ListByUser(ctx context.Context, leagueID int64) ([]pick.Pick, error) {
	return r.client.ListUserPicks(ctx, leagueID)
}

func (r *PickRepository) ListByLeagueWeek(ctx context.Context, leagueID int64, weekNumber int) ([]pick.LeaguePick, error) {
	return r.client.ListLeaguePicks(ctx, leagueID, weekNumber)
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	return r.client.ListDrivers(ctx)
}

func (r *ActivityRepository) ListByLeague(ctx context.Context, leagueID int64, limit int) ([]activity.Event, error) {
	return r.client.ListLeagueActivity(ctx, leagueID, limit)
}

func (r *ActivityRepository) ListRecent(ctx context.Context, leagueID int64, limit int) ([]activity.Event, error) {
	return r.client.ListRecentActivity(ctx, leagueID, limit)
}

func (r *UserRepository) Signup(ctx context.Context, input user.SignupInput) (user.Session, error) {
	return r.client.Signup(ctx, input)
}

func (r *UserRepository) Login(ctx context.Context, credentials user.Credentials) (user.Session, error) {
	return r.client.Login(ctx, credentials)
}

func (r *UserRepository) GetStats(ctx context.Context) (user.Stats, error) {
	return r.client.GetUserStats(ctx)
}

func (r *UserRepository) GetGlobalStats(ctx context.Context) (user.Stats, error) {
	return r.client.GetGlobalStats(ctx)
}

func (r *NotificationRepository) GetPreferences(ctx context.Context) (notification.Preferences, bool, error) {
	return r.client.GetNotificationPreferences(ctx)
}

func (r *NotificationRepository) UpdatePreferences(ctx context.Context, prefs notification.Preferences) error {
	return r.client.UpdateNotificationPreferences(ctx, prefs)
}

func (r *NotificationRepository) SendTest(ctx context.Context, channel notification.Channel) error {
	return r.client.SendTestNotification(ctx, channel)
}
