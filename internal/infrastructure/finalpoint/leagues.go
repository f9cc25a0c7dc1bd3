package finalpoint

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
)

type createLeagueRequest struct {
	Name string `json:"name"`
}

type joinByCodeRequest struct {
	JoinCode string `json:"joinCode"`
}

func leaguePath(leagueID int64, suffix string) string {
	return "/leagues/" + strconv.FormatInt(leagueID, 10) + suffix
}

func (c *Client) ListLeagues(ctx context.Context) ([]league.League, error) {
	var items []league.League
	if _, err := c.do(ctx, http.MethodGet, "/leagues/get", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateLeague(ctx context.Context, name string) (league.League, error) {
	var created league.League
	if _, err := c.do(ctx, http.MethodPost, "/leagues/create", nil, createLeagueRequest{Name: name}, &created); err != nil {
		return league.League{}, err
	}
	return created, nil
}

// GetLeague reports false when the league does not exist.
func (c *Client) GetLeague(ctx context.Context, leagueID int64) (league.League, bool, error) {
	var item league.League
	found, err := c.getOptional(ctx, "/leagues/get/"+strconv.FormatInt(leagueID, 10), nil, &item)
	if err != nil || !found {
		return league.League{}, false, err
	}
	return item, true, nil
}

func (c *Client) JoinLeague(ctx context.Context, leagueID int64) error {
	_, err := c.do(ctx, http.MethodPost, leaguePath(leagueID, "/join"), nil, nil, nil)
	return err
}

func (c *Client) JoinByCode(ctx context.Context, joinCode string) (league.League, error) {
	var joined league.League
	if _, err := c.do(ctx, http.MethodPost, "/leagues/join-by-code", nil, joinByCodeRequest{JoinCode: joinCode}, &joined); err != nil {
		return league.League{}, err
	}
	return joined, nil
}

func (c *Client) GetLeagueByCode(ctx context.Context, joinCode string) (league.League, bool, error) {
	var item league.League
	found, err := c.getOptional(ctx, "/leagues/code/"+url.PathEscape(joinCode), nil, &item)
	if err != nil || !found {
		return league.League{}, false, err
	}
	return item, true, nil
}

func (c *Client) ListMembers(ctx context.Context, leagueID int64) ([]league.Member, error) {
	var items []league.Member
	if _, err := c.do(ctx, http.MethodGet, leaguePath(leagueID, "/members"), nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListStandings(ctx context.Context, leagueID int64) ([]league.Standing, error) {
	var items []league.Standing
	if _, err := c.do(ctx, http.MethodGet, leaguePath(leagueID, "/standings"), nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetStats(ctx context.Context, leagueID int64) (league.Stats, error) {
	var stats league.Stats
	if _, err := c.do(ctx, http.MethodGet, leaguePath(leagueID, "/stats"), nil, nil, &stats); err != nil {
		return league.Stats{}, err
	}
	return stats, nil
}
