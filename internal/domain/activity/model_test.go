package activity

import (
	"testing"
	"time"
)

func TestEventText(t *testing.T) {
	t.Parallel()

	week := 4
	cases := []struct {
		event        Event
		wantHeadline string
		wantDetail   string
	}{
		{
			event:        Event{Type: TypeUserJoined, UserName: "ana"},
			wantHeadline: "ana joined the league",
		},
		{
			event:        Event{Type: TypePickCreated, UserName: "ben", WeekNumber: &week, DriverName: "Albon", DriverTeam: "Williams"},
			wantHeadline: "ben made a pick for Week 4",
			wantDetail:   "Picked Albon (Williams)",
		},
		{
			event: Event{
				Type: TypePickChanged, UserName: "cal", WeekNumber: &week,
				DriverName: "Gasly", DriverTeam: "Alpine",
				PreviousDriverName: "Albon", PreviousDriverTeam: "Williams",
			},
			wantHeadline: "cal changed their pick for Week 4",
			wantDetail:   "Changed from Albon (Williams) to Gasly (Alpine)",
		},
	}

	for _, tc := range cases {
		if got := tc.event.Headline(); got != tc.wantHeadline {
			t.Fatalf("headline: got %q want %q", got, tc.wantHeadline)
		}
		if got := tc.event.Detail(); got != tc.wantDetail {
			t.Fatalf("detail: got %q want %q", got, tc.wantDetail)
		}
	}
}

func TestSortRecentFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	got := SortRecentFirst([]Event{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 3, CreatedAt: base.Add(time.Hour)},
	})
	if got[0].ID != 2 || got[1].ID != 3 || got[2].ID != 1 {
		t.Fatalf("unexpected order: %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
	}
}
