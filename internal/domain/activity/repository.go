package activity

import "context"

type Repository interface {
	ListByLeague(ctx context.Context, leagueID int64, limit int) ([]Event, error)
	ListRecent(ctx context.Context, leagueID int64, limit int) ([]Event, error)
}
