package pick

import "context"

type Repository interface {
	Make(ctx context.Context, input MakeInput) (Pick, error)
	ListByUser(ctx context.Context, leagueID int64) ([]Pick, error)
	ListByLeagueWeek(ctx context.Context, leagueID int64, weekNumber int) ([]LeaguePick, error)
}
