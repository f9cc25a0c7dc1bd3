package activity

import (
	"fmt"
	"sort"
	"time"
)

type Type string

const (
	TypePickCreated Type = "pick_created"
	TypePickChanged Type = "pick_changed"
	TypeUserJoined  Type = "user_joined"
)

// Event is one entry of a league activity feed.
type Event struct {
	ID                 int64     `json:"id"`
	Type               Type      `json:"activityType"`
	UserName           string    `json:"userName"`
	WeekNumber         *int      `json:"weekNumber,omitempty"`
	DriverName         string    `json:"driverName,omitempty"`
	DriverTeam         string    `json:"driverTeam,omitempty"`
	PreviousDriverName string    `json:"previousDriverName,omitempty"`
	PreviousDriverTeam string    `json:"previousDriverTeam,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Headline is the primary line of a feed entry.
func (e Event) Headline() string {
	if e.Type == TypeUserJoined {
		return fmt.Sprintf("%s joined the league", e.UserName)
	}

	verb := "made a pick"
	if e.Type == TypePickChanged {
		verb = "changed their pick"
	}
	if e.WeekNumber == nil {
		return fmt.Sprintf("%s %s", e.UserName, verb)
	}
	return fmt.Sprintf("%s %s for Week %d", e.UserName, verb, *e.WeekNumber)
}

// Detail is the secondary line. Joins have none.
func (e Event) Detail() string {
	switch e.Type {
	case TypeUserJoined:
		return ""
	case TypePickChanged:
		return fmt.Sprintf("Changed from %s (%s) to %s (%s)", e.PreviousDriverName, e.PreviousDriverTeam, e.DriverName, e.DriverTeam)
	default:
		return fmt.Sprintf("Picked %s (%s)", e.DriverName, e.DriverTeam)
	}
}

// SortRecentFirst orders events by CreatedAt, newest first.
func SortRecentFirst(items []Event) []Event {
	out := make([]Event, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
