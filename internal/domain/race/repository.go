package race

import "context"

type Repository interface {
	GetCurrent(ctx context.Context) (Race, bool, error)
	ListBySeason(ctx context.Context, seasonYear int) ([]Race, error)
	GetByWeek(ctx context.Context, weekNumber, seasonYear int) (Race, bool, error)
	PopulateSeason(ctx context.Context) error
}

// ResultsRepository reads scored results. A false flag means the week has no
// results yet.
type ResultsRepository interface {
	GetResults(ctx context.Context, leagueID int64, weekNumber int) (Results, bool, error)
}
