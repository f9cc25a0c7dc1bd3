package finalpoint

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/finalpoint-client/internal/domain/pick"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
)

func (c *Client) MakePick(ctx context.Context, input pick.MakeInput) (pick.Pick, error) {
	var saved pick.Pick
	if _, err := c.do(ctx, http.MethodPost, "/picks/make", nil, input, &saved); err != nil {
		return pick.Pick{}, err
	}
	return saved, nil
}

func (c *Client) ListUserPicks(ctx context.Context, leagueID int64) ([]pick.Pick, error) {
	var items []pick.Pick
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/picks/user/%d", leagueID), nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListLeaguePicks(ctx context.Context, leagueID int64, weekNumber int) ([]pick.LeaguePick, error) {
	var items []pick.LeaguePick
	path := fmt.Sprintf("/picks/league/%d/week/%d", leagueID, weekNumber)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetRaceResults reports false when the week has no results entry, either
// as a 404 or as null data.
func (c *Client) GetRaceResults(ctx context.Context, leagueID int64, weekNumber int) (race.Results, bool, error) {
	var results race.Results
	path := fmt.Sprintf("/picks/results/%d/week/%d", leagueID, weekNumber)
	found, err := c.getOptional(ctx, path, nil, &results)
	if err != nil || !found {
		return race.Results{}, false, err
	}
	return results, true, nil
}
