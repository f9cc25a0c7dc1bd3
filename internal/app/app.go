package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/riskibarqy/finalpoint-client/internal/config"
	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
	"github.com/riskibarqy/finalpoint-client/internal/infrastructure/finalpoint"
	cacherepo "github.com/riskibarqy/finalpoint-client/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/finalpoint-client/internal/infrastructure/session"
	"github.com/riskibarqy/finalpoint-client/internal/interfaces/cli"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/riskibarqy/finalpoint-client/internal/platform/resilience"
	"github.com/riskibarqy/finalpoint-client/internal/usecase"
)

type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// Session overrides the file store at cfg.SessionFile.
	Session    user.SessionStore
	HTTPClient *http.Client
}

// App is the wired client: one CLI over the FinalPoint API.
type App struct {
	cli    *cli.CLI
	logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	sessions := opts.Session
	if sessions == nil {
		store, err := session.OpenFileStore(cfg.SessionFile)
		if err != nil {
			return nil, fmt.Errorf("open session: %w", err)
		}
		sessions = store
	}

	notifier := cli.NewNotifier(opts.Stderr, cfg.ColorEnabled)
	guard := cli.NewSessionGuard(notifier)

	client, err := finalpoint.NewClient(finalpoint.ClientConfig{
		HTTPClient:     opts.HTTPClient,
		BaseURL:        cfg.APIBaseURL,
		Timeout:        cfg.HTTPTimeout,
		Session:        sessions,
		OnUnauthorized: guard.OnUnauthorized,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.CircuitEnabled,
			FailureThreshold: cfg.CircuitFailureCount,
			OpenTimeout:      cfg.CircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
		},
		UserAgent: cfg.ServiceName + "/" + cfg.ServiceVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}

	leagueRepo := client.Leagues()
	driverRepo := cacherepo.NewDriverRepository(client.Drivers(), cfg.CacheTTL)
	raceRepo := cacherepo.NewRaceRepository(client.Races(), cfg.CacheTTL)

	authSvc := usecase.NewAuthService(client.Users(), sessions, usecase.AuthOptions{
		Notifier: notifier,
		Logger:   logger,
	})
	leaguesSvc := usecase.NewLeaguesService(leagueRepo, usecase.LeaguesOptions{
		OverviewWorkers: cfg.OverviewWorkers,
		Notifier:        notifier,
		Logger:          logger,
	})
	detail := usecase.NewLeagueDetailController(leagueRepo, client.Activity(), raceRepo, usecase.LeagueDetailOptions{
		ActivityLimit: cfg.ActivityLimit,
		CachePolicy:   usecase.CachePolicy(cfg.PanelCache),
		Notifier:      notifier,
		Logger:        logger,
	})
	navigator := usecase.NewRaceResultsNavigator(leagueRepo, raceRepo, client.Results(), usecase.RaceResultsOptions{
		SeasonYear: cfg.SeasonYear,
		Notifier:   notifier,
		Logger:     logger,
	})
	notifications := usecase.NewNotificationsService(client.Notifications(), usecase.NotificationsOptions{
		Notifier: notifier,
		Logger:   logger,
	})
	picks := usecase.NewPicksController(driverRepo, client.Picks(), raceRepo, usecase.PicksOptions{
		Notifier: notifier,
		Logger:   logger,
	})

	return &App{
		cli: cli.New(cli.Deps{
			Auth:          authSvc,
			Leagues:       leaguesSvc,
			LeagueDetail:  detail,
			Results:       navigator,
			Picks:         picks,
			Notifications: notifications,
			Drivers:       driverRepo,
			Races:         raceRepo,
			Activity:      client.Activity(),
			Guard:         guard,
			Presenter:     cli.NewPresenter(opts.Stdout, cfg.ColorEnabled),
			Notifier:      notifier,
			Stderr:        opts.Stderr,
			PublicBaseURL: cfg.PublicBaseURL,
			SeasonYear:    cfg.SeasonYear,
			Logger:        logger,
		}),
		logger: logger,
	}, nil
}

// Run executes one command line and returns the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	return a.cli.Run(ctx, args)
}
