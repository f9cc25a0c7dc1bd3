package finalpoint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/riskibarqy/finalpoint-client/internal/domain/driver"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
)

func seasonQuery(seasonYear int) url.Values {
	return url.Values{"seasonYear": []string{strconv.Itoa(seasonYear)}}
}

func (c *Client) ListDrivers(ctx context.Context) ([]driver.Driver, error) {
	var items []driver.Driver
	if _, err := c.do(ctx, http.MethodGet, "/drivers/get", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetCurrentRace(ctx context.Context) (race.Race, bool, error) {
	var item race.Race
	found, err := c.getOptional(ctx, "/f1races/current", nil, &item)
	if err != nil || !found {
		return race.Race{}, false, err
	}
	return item, true, nil
}

func (c *Client) ListRaces(ctx context.Context, seasonYear int) ([]race.Race, error) {
	var items []race.Race
	if _, err := c.do(ctx, http.MethodGet, "/f1races/all", seasonQuery(seasonYear), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetRaceByWeek(ctx context.Context, weekNumber, seasonYear int) (race.Race, bool, error) {
	var item race.Race
	found, err := c.getOptional(ctx, fmt.Sprintf("/f1races/week/%d", weekNumber), seasonQuery(seasonYear), &item)
	if err != nil || !found {
		return race.Race{}, false, err
	}
	return item, true, nil
}

func (c *Client) PopulateSeason(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/f1races/populate-season", nil, nil, nil)
	return err
}
