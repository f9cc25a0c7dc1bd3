package pick

import "fmt"

// Pick is a user's P10 prediction for one league and week.
type Pick struct {
	ID         int64  `json:"id"`
	LeagueID   int64  `json:"leagueId"`
	WeekNumber int    `json:"weekNumber"`
	DriverID   int64  `json:"driverId"`
	DriverName string `json:"driverName"`
	IsLocked   bool   `json:"isLocked"`
	Points     int    `json:"points"`
}

// MakeInput is the body of a pick submission.
type MakeInput struct {
	LeagueID   int64 `json:"leagueId"`
	WeekNumber int   `json:"weekNumber"`
	DriverID   int64 `json:"driverId"`
}

func (in MakeInput) Validate() error {
	if in.LeagueID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if in.WeekNumber < 1 {
		return fmt.Errorf("week number must be at least 1")
	}
	if in.DriverID <= 0 {
		return fmt.Errorf("driver id is required")
	}
	return nil
}

// LeaguePick is a member's pick as listed for a league week.
type LeaguePick struct {
	Pick
	UserID   int64  `json:"userId"`
	UserName string `json:"userName"`
	Team     string `json:"driverTeam,omitempty"`
}

// FindForWeek returns the pick for (league, week), if any.
func FindForWeek(items []Pick, leagueID int64, week int) (Pick, bool) {
	for _, item := range items {
		if item.LeagueID == leagueID && item.WeekNumber == week {
			return item, true
		}
	}
	return Pick{}, false
}
