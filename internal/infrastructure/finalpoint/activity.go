package finalpoint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/riskibarqy/finalpoint-client/internal/domain/activity"
)

const (
	defaultLeagueActivityLimit = 20
	defaultRecentActivityLimit = 10
)

func limitQuery(limit, fallback int) url.Values {
	if limit <= 0 {
		limit = fallback
	}
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}

func (c *Client) ListLeagueActivity(ctx context.Context, leagueID int64, limit int) ([]activity.Event, error) {
	var items []activity.Event
	path := fmt.Sprintf("/activity/league/%d", leagueID)
	if _, err := c.do(ctx, http.MethodGet, path, limitQuery(limit, defaultLeagueActivityLimit), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListRecentActivity(ctx context.Context, leagueID int64, limit int) ([]activity.Event, error) {
	var items []activity.Event
	path := fmt.Sprintf("/activity/league/%d/recent", leagueID)
	if _, err := c.do(ctx, http.MethodGet, path, limitQuery(limit, defaultRecentActivityLimit), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
