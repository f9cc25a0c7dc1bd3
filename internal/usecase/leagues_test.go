package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
	leaguemock "github.com/riskibarqy/finalpoint-client/internal/mocks/domain/league"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestLeaguesService_CreateRejectsBlankName(t *testing.T) {
	t.Parallel()

	repo := leaguemock.NewRepository(t)
	notifier := &RecordingNotifier{}
	service := NewLeaguesService(repo, LeaguesOptions{Notifier: notifier, Logger: logging.NewNop()})

	_, err := service.Create(context.Background(), "   ")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := UserMessage(err, ""); got != "Please enter a league name" {
		t.Fatalf("unexpected message: %q", got)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	if len(notifier.Notices()) != 1 {
		t.Fatalf("validation failure must notify")
	}
}

func TestLeaguesService_CreateTrimsName(t *testing.T) {
	t.Parallel()

	repo := leaguemock.NewRepository(t)
	notifier := &RecordingNotifier{}
	service := NewLeaguesService(repo, LeaguesOptions{Notifier: notifier, Logger: logging.NewNop()})

	repo.On("Create", mock.Anything, "Backmarkers").Return(league.League{ID: 5, Name: "Backmarkers"}, nil).Once()

	created, err := service.Create(context.Background(), "  Backmarkers ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 5 {
		t.Fatalf("unexpected league: %+v", created)
	}
	notices := notifier.Notices()
	if len(notices) != 1 || notices[0].Message != "League created successfully!" {
		t.Fatalf("unexpected notices: %+v", notices)
	}
}

func TestLeaguesService_PreviewByCodeNotFound(t *testing.T) {
	t.Parallel()

	repo := leaguemock.NewRepository(t)
	service := NewLeaguesService(repo, LeaguesOptions{Logger: logging.NewNop()})
	repo.On("GetByCode", mock.Anything, "NOPE").Return(league.League{}, false, nil).Once()

	if _, err := service.PreviewByCode(context.Background(), "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaguesService_JoinByCodeReportsServerMessage(t *testing.T) {
	t.Parallel()

	repo := leaguemock.NewRepository(t)
	notifier := &RecordingNotifier{}
	service := NewLeaguesService(repo, LeaguesOptions{Notifier: notifier, Logger: logging.NewNop()})
	repo.On("JoinByCode", mock.Anything, "ABC123").Return(league.League{}, serverMessageError{msg: "Invalid join code"}).Once()

	if _, err := service.JoinByCode(context.Background(), "ABC123"); err == nil {
		t.Fatalf("expected join error")
	}
	notices := notifier.Notices()
	if len(notices) != 1 || notices[0].Message != "Invalid join code" {
		t.Fatalf("unexpected notices: %+v", notices)
	}
}

func TestLeaguesService_OverviewToleratesStatsFailures(t *testing.T) {
	t.Parallel()

	repo := leaguemock.NewRepository(t)
	service := NewLeaguesService(repo, LeaguesOptions{OverviewWorkers: 2, Logger: logging.NewNop()})

	repo.On("List", mock.Anything).Return([]league.League{{ID: 1}, {ID: 2}, {ID: 3}}, nil).Once()
	repo.On("GetStats", mock.Anything, int64(1)).Return(league.Stats{TotalPicks: 3}, nil).Once()
	repo.On("GetStats", mock.Anything, int64(2)).Return(league.Stats{}, ErrTimeout).Once()
	repo.On("GetStats", mock.Anything, int64(3)).Return(league.Stats{TotalPicks: 9}, nil).Once()

	rows, err := service.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	if rows[0].League.ID != 1 || !rows[0].StatsLoaded || rows[0].Stats.TotalPicks != 3 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].StatsLoaded || rows[1].Stats != (league.Stats{}) {
		t.Fatalf("failed stats must leave zero value: %+v", rows[1])
	}
	if rows[2].Stats.TotalPicks != 9 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
}
