package league

import "context"

// Repository describes the league operations the API exposes to use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	Create(ctx context.Context, name string) (League, error)
	GetByID(ctx context.Context, leagueID int64) (League, bool, error)
	Join(ctx context.Context, leagueID int64) error
	JoinByCode(ctx context.Context, joinCode string) (League, error)
	GetByCode(ctx context.Context, joinCode string) (League, bool, error)
	ListMembers(ctx context.Context, leagueID int64) ([]Member, error)
	ListStandings(ctx context.Context, leagueID int64) ([]Standing, error)
	GetStats(ctx context.Context, leagueID int64) (Stats, error)
}
