package race

import (
	"fmt"
	"sort"
	"time"
)

// Race is one race weekend. WeekNumber is 1-based and unique per season.
type Race struct {
	ID         int64     `json:"id"`
	WeekNumber int       `json:"weekNumber"`
	RaceName   string    `json:"raceName"`
	Status     string    `json:"status"`
	RaceDate   time.Time `json:"raceDate"`
}

// ResultEntry is one member's scored pick for a week.
type ResultEntry struct {
	ID                  int64  `json:"id"`
	UserID              int64  `json:"userId"`
	UserName            string `json:"userName"`
	DriverID            int64  `json:"driverId"`
	DriverName          string `json:"driverName"`
	DriverTeam          string `json:"driverTeam"`
	ActualP10DriverID   int64  `json:"actualP10DriverId"`
	ActualP10DriverName string `json:"actualP10DriverName"`
	ActualP10DriverTeam string `json:"actualP10DriverTeam"`
	PositionDifference  *int   `json:"positionDifference"`
	IsCorrect           bool   `json:"isCorrect"`
	Points              int    `json:"points"`
}

// Results holds every entry for one (league, week).
type Results struct {
	LeagueID            int64         `json:"leagueId"`
	WeekNumber          int           `json:"weekNumber"`
	ActualP10DriverID   *int64        `json:"actualP10DriverId"`
	ActualP10DriverName *string       `json:"actualP10DriverName"`
	ActualP10DriverTeam *string       `json:"actualP10DriverTeam"`
	TotalPicks          int           `json:"totalPicks"`
	CorrectPicks        int           `json:"correctPicks"`
	Results             []ResultEntry `json:"results"`
}

// IsScored is false while the race has no result yet: no entries and no
// actual P10 driver.
func (r Results) IsScored() bool {
	if len(r.Results) > 0 {
		return true
	}
	return r.ActualP10DriverName != nil && *r.ActualP10DriverName != ""
}

// SortByWeek orders races ascending by week number.
func SortByWeek(items []Race) []Race {
	out := make([]Race, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WeekNumber < out[j].WeekNumber
	})
	return out
}

// IndexOfWeek returns the position of week in races, or -1.
func IndexOfWeek(races []Race, week int) int {
	for i, item := range races {
		if item.WeekNumber == week {
			return i
		}
	}
	return -1
}

type Tier int

const (
	TierNoPick Tier = iota
	TierExact
	TierClose
	TierNear
	TierFar
)

func (t Tier) String() string {
	switch t {
	case TierNoPick:
		return "no_pick"
	case TierExact:
		return "exact"
	case TierClose:
		return "close"
	case TierNear:
		return "near"
	case TierFar:
		return "far"
	default:
		return "unknown"
	}
}

type Outcome struct {
	Tier Tier
	Text string
}

// DescribePositionDifference buckets a pick's distance from the actual P10
// finisher. nil means no pick was made.
func DescribePositionDifference(diff *int) Outcome {
	if diff == nil {
		return Outcome{Tier: TierNoPick, Text: "No pick made"}
	}

	n := *diff
	if n < 0 {
		n = -n
	}
	switch {
	case n == 0:
		return Outcome{Tier: TierExact, Text: "Correct!"}
	case n == 1:
		return Outcome{Tier: TierClose, Text: "1 position off"}
	case n <= 5:
		return Outcome{Tier: TierNear, Text: fmt.Sprintf("%d positions off", n)}
	default:
		return Outcome{Tier: TierFar, Text: fmt.Sprintf("%d positions off", n)}
	}
}
