package league

import (
	"math"
	"sort"
	"strings"
	"time"
)

type Role string

const (
	RoleOwner  Role = "Owner"
	RoleMember Role = "Member"
)

// League is a private P10 prediction league for one season.
type League struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	OwnerID     int64  `json:"ownerId"`
	SeasonYear  int    `json:"seasonYear"`
	JoinCode    string `json:"joinCode,omitempty"`
	MemberCount *int   `json:"memberCount,omitempty"`
	IsMember    bool   `json:"isMember"`
	UserRole    Role   `json:"userRole,omitempty"`
}

// HasJoinCode reports whether a shareable join code is known to the caller.
// Servers only expose it to the owner and joined members.
func (l League) HasJoinCode() bool {
	return strings.TrimSpace(l.JoinCode) != ""
}

type Member struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type Standing struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	TotalPoints  int     `json:"totalPoints"`
	TotalPicks   int     `json:"totalPicks"`
	CorrectPicks int     `json:"correctPicks"`
	Accuracy     float64 `json:"accuracy"`
}

// RankedStanding is a standing with its display rank. Rank is position in the
// points ordering, never a stored value.
type RankedStanding struct {
	Standing
	Rank int
}

// Stats is the aggregate shown on the league overview card.
type Stats struct {
	TotalPicks      int     `json:"totalPicks"`
	CorrectPicks    int     `json:"correctPicks"`
	OverallAccuracy float64 `json:"overallAccuracy"`
	AveragePoints   float64 `json:"averagePoints"`
}

// RankStandings orders standings by total points, highest first. Ties keep
// the server order.
func RankStandings(items []Standing) []RankedStanding {
	sorted := make([]Standing, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})

	out := make([]RankedStanding, 0, len(sorted))
	for i, item := range sorted {
		out = append(out, RankedStanding{Standing: item, Rank: i + 1})
	}
	return out
}

// ComputeAccuracy returns correct/total as a whole percentage.
func ComputeAccuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(correct)/float64(total)*100 + 0.5))
}
