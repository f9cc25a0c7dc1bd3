package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/finalpoint-client/internal/domain/activity"
	"github.com/riskibarqy/finalpoint-client/internal/domain/driver"
	"github.com/riskibarqy/finalpoint-client/internal/domain/notification"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
	"github.com/riskibarqy/finalpoint-client/internal/platform/logging"
	"github.com/riskibarqy/finalpoint-client/internal/usecase"
	"github.com/sourcegraph/conc"
)

const (
	exitOK             = 0
	exitError          = 1
	exitSessionExpired = 2
	exitUsage          = 64
)

// Deps is everything the commands drive. The composition root builds it.
type Deps struct {
	Auth          *usecase.AuthService
	Leagues       *usecase.LeaguesService
	LeagueDetail  *usecase.LeagueDetailController
	Results       *usecase.RaceResultsNavigator
	Picks         *usecase.PicksController
	Notifications *usecase.NotificationsService
	Drivers       driver.Repository
	Races         race.Repository
	Activity      activity.Repository
	Guard         *SessionGuard
	Presenter     *Presenter
	Notifier      usecase.Notifier
	Stderr        io.Writer
	PublicBaseURL string
	SeasonYear    int
	Logger        *logging.Logger
}

type command struct {
	name    string
	usage   string
	needsID bool
	run     func(ctx context.Context, args []string) error
}

// CLI dispatches one subcommand per process run.
type CLI struct {
	deps     Deps
	commands map[string]command
	order    []string
}

var errUsage = errors.New("usage")

func New(deps Deps) *CLI {
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}
	c := &CLI{deps: deps, commands: make(map[string]command)}
	c.register(command{name: "login", usage: "login --email <email> --password <password>", run: c.login})
	c.register(command{name: "signup", usage: "signup --name <name> --email <email> --password <pw> --confirm <pw>", run: c.signup})
	c.register(command{name: "logout", usage: "logout", run: c.logout})
	c.register(command{name: "whoami", usage: "whoami", needsID: true, run: c.whoami})
	c.register(command{name: "leagues", usage: "leagues", needsID: true, run: c.leagues})
	c.register(command{name: "create-league", usage: "create-league <name>", needsID: true, run: c.createLeague})
	c.register(command{name: "join-code", usage: "join-code <code> [--preview]", needsID: true, run: c.joinCode})
	c.register(command{name: "league", usage: "league <id> [--members|--standings] [--join]", needsID: true, run: c.league})
	c.register(command{name: "results", usage: "results <leagueID> [week] [--prev|--next]", needsID: true, run: c.results})
	c.register(command{name: "picks", usage: "picks <leagueID> [--week n] [--driver id] [--all]", needsID: true, run: c.picks})
	c.register(command{name: "activity", usage: "activity <leagueID> [--limit n]", needsID: true, run: c.activity})
	c.register(command{name: "drivers", usage: "drivers", needsID: true, run: c.drivers})
	c.register(command{name: "races", usage: "races [--season year] [--week n] [--populate]", needsID: true, run: c.races})
	c.register(command{name: "notifications", usage: "notifications [--set key=bool]... [--test email|push]", needsID: true, run: c.notifications})
	return c
}

func (c *CLI) register(cmd command) {
	c.commands[cmd.name] = cmd
	c.order = append(c.order, cmd.name)
}

// Run executes args[0] and returns the process exit code.
func (c *CLI) Run(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		c.printUsage()
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}

	cmd, ok := c.commands[args[0]]
	if !ok {
		fmt.Fprintf(c.deps.Stderr, "unknown command %q\n", args[0])
		c.printUsage()
		return exitUsage
	}
	if cmd.needsID {
		if _, ok := c.deps.Auth.CurrentUser(); !ok {
			fmt.Fprintln(c.deps.Stderr, "Please log in first: finalpoint login --email <email> --password <password>")
			return exitSessionExpired
		}
	}

	err := cmd.run(ctx, args[1:])
	switch {
	case c.deps.Guard != nil && c.deps.Guard.Expired():
		return exitSessionExpired
	case errors.Is(err, errUsage):
		fmt.Fprintf(c.deps.Stderr, "usage: finalpoint %s\n", cmd.usage)
		return exitUsage
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case err != nil:
		c.deps.Logger.DebugContext(ctx, "command failed", "command", cmd.name, "error", err)
		return exitError
	}
	return exitOK
}

func (c *CLI) printUsage() {
	fmt.Fprintln(c.deps.Stderr, "usage: finalpoint <command> [flags]")
	names := append([]string(nil), c.order...)
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.deps.Stderr, "  %s\n", c.commands[name].usage)
	}
}

func (c *CLI) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.deps.Stderr)
	return fs
}

// parseArgs lets flags follow positional arguments, e.g. "league 4 --members".
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, raw)
	}
	return id, nil
}

func (c *CLI) login(ctx context.Context, args []string) error {
	fs := c.flagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	session, err := c.deps.Auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	return c.deps.Presenter.Message("Logged in as %s", session.User.Name)
}

func (c *CLI) signup(ctx context.Context, args []string) error {
	fs := c.flagSet("signup")
	var input user.SignupInput
	fs.StringVar(&input.Name, "name", "", "display name")
	fs.StringVar(&input.Email, "email", "", "account email")
	fs.StringVar(&input.Password, "password", "", "password, at least 6 characters")
	fs.StringVar(&input.Confirm, "confirm", "", "password again")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	session, err := c.deps.Auth.Signup(ctx, input)
	if err != nil {
		return err
	}
	return c.deps.Presenter.Message("Welcome, %s", session.User.Name)
}

func (c *CLI) logout(context.Context, []string) error {
	if err := c.deps.Auth.Logout(); err != nil {
		return err
	}
	return c.deps.Presenter.Message("Logged out")
}

func (c *CLI) whoami(ctx context.Context, _ []string) error {
	current, _ := c.deps.Auth.CurrentUser()

	var (
		stats, global       user.Stats
		statsErr, globalErr error
	)
	var wg conc.WaitGroup
	wg.Go(func() { stats, statsErr = c.deps.Auth.Stats(ctx) })
	wg.Go(func() { global, globalErr = c.deps.Auth.GlobalStats(ctx) })
	wg.Wait()

	loaded := statsErr == nil && globalErr == nil
	if !loaded {
		c.deps.Logger.WarnContext(ctx, "load user stats failed", "error", errors.Join(statsErr, globalErr))
	}
	return c.deps.Presenter.CurrentUser(current, stats, global, loaded)
}

func (c *CLI) leagues(ctx context.Context, _ []string) error {
	rows, err := c.deps.Leagues.Overview(ctx)
	if err != nil {
		c.deps.Notifier.Notify(usecase.NoticeError, usecase.UserMessage(err, "Failed to load leagues"))
		return err
	}
	return c.deps.Presenter.Leagues(rows)
}

func (c *CLI) createLeague(ctx context.Context, args []string) error {
	fs := c.flagSet("create-league")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	created, err := c.deps.Leagues.Create(ctx, strings.Join(positional, " "))
	if err != nil {
		return err
	}
	return c.deps.Presenter.Message("League #%d %q created. Join code: %s", created.ID, created.Name, created.JoinCode)
}

func (c *CLI) joinCode(ctx context.Context, args []string) error {
	fs := c.flagSet("join-code")
	preview := fs.Bool("preview", false, "show the league without joining")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return errUsage
	}

	if *preview {
		item, err := c.deps.Leagues.PreviewByCode(ctx, positional[0])
		if err != nil {
			c.deps.Notifier.Notify(usecase.NoticeError, usecase.UserMessage(err, "League not found"))
			return err
		}
		return c.deps.Presenter.LeaguePreview(item)
	}

	joined, err := c.deps.Leagues.JoinByCode(ctx, positional[0])
	if err != nil {
		return err
	}
	if joined.ID > 0 {
		return c.deps.Presenter.Message("Open it with: finalpoint league %d", joined.ID)
	}
	return nil
}

func (c *CLI) league(ctx context.Context, args []string) error {
	fs := c.flagSet("league")
	members := fs.Bool("members", false, "show the member list")
	standings := fs.Bool("standings", false, "show the standings")
	join := fs.Bool("join", false, "join the league")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 || (*members && *standings) {
		return errUsage
	}
	leagueID, err := parseID(positional[0])
	if err != nil {
		return err
	}

	detail := c.deps.LeagueDetail
	if err := detail.LoadLeague(ctx, leagueID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			_ = c.deps.Presenter.LeagueDetail(detail.Snapshot(), "")
		} else {
			c.deps.Notifier.Notify(usecase.NoticeError, usecase.UserMessage(err, "Failed to load league"))
		}
		return err
	}

	var actionErr error
	if *join {
		actionErr = detail.JoinLeague(ctx)
	}
	switch {
	case *members:
		if err := detail.ToggleMembers(ctx); err != nil && actionErr == nil {
			actionErr = err
		}
	case *standings:
		if err := detail.ToggleStandings(ctx); err != nil && actionErr == nil {
			actionErr = err
		}
	}

	link := ""
	if c.deps.PublicBaseURL != "" {
		link, _ = detail.ShareLink(c.deps.PublicBaseURL)
	}
	if err := c.deps.Presenter.LeagueDetail(detail.Snapshot(), link); err != nil {
		return err
	}
	return actionErr
}

func (c *CLI) results(ctx context.Context, args []string) error {
	fs := c.flagSet("results")
	prev := fs.Bool("prev", false, "show the previous week")
	next := fs.Bool("next", false, "show the next week")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) < 1 || len(positional) > 2 || (*prev && *next) {
		return errUsage
	}
	leagueID, err := parseID(positional[0])
	if err != nil {
		return err
	}
	week := 1
	if len(positional) == 2 {
		week, err = strconv.Atoi(positional[1])
		if err != nil || week < 1 {
			return fmt.Errorf("%w: invalid week %q", errUsage, positional[1])
		}
	}

	nav := c.deps.Results
	loadErr := nav.Open(ctx, leagueID, week)
	switch {
	case *prev:
		if _, err := nav.GoToPreviousWeek(ctx); err != nil {
			loadErr = err
		}
	case *next:
		if _, err := nav.GoToNextWeek(ctx); err != nil {
			loadErr = err
		}
	}

	if err := c.deps.Presenter.RaceResults(nav.Snapshot()); err != nil {
		return err
	}
	return loadErr
}

func (c *CLI) picks(ctx context.Context, args []string) error {
	fs := c.flagSet("picks")
	week := fs.Int("week", 0, "week number, defaults to the current race")
	driverID := fs.Int64("driver", 0, "driver id to pick")
	all := fs.Bool("all", false, "list every member's pick for the week")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 || *week < 0 {
		return errUsage
	}
	leagueID, err := parseID(positional[0])
	if err != nil {
		return err
	}

	ctrl := c.deps.Picks
	if err := ctrl.Load(ctx, leagueID, *week); err != nil {
		c.deps.Notifier.Notify(usecase.NoticeError, usecase.UserMessage(err, "Failed to load picks"))
		return err
	}

	var submitErr error
	if *driverID > 0 {
		submitErr = ctrl.SubmitPick(ctx, *driverID)
		if errors.Is(submitErr, usecase.ErrInvalidInput) {
			fmt.Fprintf(c.deps.Stderr, "unknown driver %d; run finalpoint drivers for the list\n", *driverID)
		}
	}
	if *all {
		if err := ctrl.LoadLeaguePicks(ctx); err != nil && submitErr == nil {
			submitErr = err
		}
	}

	if err := c.deps.Presenter.Picks(ctrl.Snapshot()); err != nil {
		return err
	}
	return submitErr
}

func (c *CLI) drivers(ctx context.Context, _ []string) error {
	items, err := c.deps.Drivers.List(ctx)
	if err != nil {
		c.deps.Notifier.Notify(usecase.NoticeError, usecase.UserMessage(err, "Failed to load drivers"))
		return err
	}
	return c.deps.Presenter.Drivers(items)
}

func (c *CLI) races(ctx context.Context, args []string) error {
	fs := c.flagSet("races")
	season := fs.Int("season", c.deps.SeasonYear, "season year")
	week := fs.Int("week", 0, "show a single race week")
	populate := fs.Bool("populate", false, "rebuild the season calendar on the server first")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}
	if *week < 0 {
		return fmt.Errorf("%w: invalid week %d", errUsage, *week)
	}

	if *populate {
		if err := c.deps.Races.PopulateSeason(ctx); err != nil {
			c.deps.Notifier.Notify(usecase.NoticeError, usecase.UserMessage(err, "Failed to populate season"))
			return err
		}
		c.deps.Notifier.Notify(usecase.NoticeSuccess, "Season calendar populated")
	}

	var (
		items      []race.Race
		current    race.Race
		found      bool
		listErr    error
		currentErr error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		if *week == 0 {
			items, listErr = c.deps.Races.ListBySeason(ctx, *season)
			return
		}
		item, exists, err := c.deps.Races.GetByWeek(ctx, *week, *season)
		if exists {
			items = []race.Race{item}
		}
		listErr = err
	})
	wg.Go(func() { current, found, currentErr = c.deps.Races.GetCurrent(ctx) })
	wg.Wait()

	if listErr != nil {
		c.deps.Notifier.Notify(usecase.NoticeError, usecase.UserMessage(listErr, "Failed to load races"))
		return listErr
	}
	if currentErr != nil {
		c.deps.Logger.WarnContext(ctx, "load current race failed", "error", currentErr)
	}
	if *week > 0 && len(items) == 0 {
		return c.deps.Presenter.Message("No race scheduled for week %d of %d", *week, *season)
	}
	currentWeek := 0
	if found {
		currentWeek = current.WeekNumber
	}
	return c.deps.Presenter.Races(race.SortByWeek(items), currentWeek)
}

func (c *CLI) activity(ctx context.Context, args []string) error {
	fs := c.flagSet("activity")
	limit := fs.Int("limit", 0, "number of entries, server default when 0")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 || *limit < 0 {
		return errUsage
	}
	leagueID, err := parseID(positional[0])
	if err != nil {
		return err
	}

	events, err := c.deps.Activity.ListByLeague(ctx, leagueID, *limit)
	if err != nil {
		c.deps.Notifier.Notify(usecase.NoticeError, usecase.UserMessage(err, "Failed to load league activity"))
		return err
	}
	return c.deps.Presenter.Activity(activity.SortRecentFirst(events))
}

func (c *CLI) notifications(ctx context.Context, args []string) error {
	fs := c.flagSet("notifications")
	var assignments []string
	fs.Func("set", "change one preference, e.g. pushReminders=false; repeatable", func(v string) error {
		assignments = append(assignments, v)
		return nil
	})
	testChannel := fs.String("test", "", "send a test notification: email or push")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return errUsage
	}

	svc := c.deps.Notifications
	prefs, err := svc.Load(ctx)
	if err != nil {
		return err
	}

	if len(assignments) > 0 {
		for _, assignment := range assignments {
			if err := prefs.Set(assignment); err != nil {
				fmt.Fprintln(c.deps.Stderr, err)
				return errUsage
			}
		}
		if err := svc.Save(ctx, prefs); err != nil {
			return err
		}
	}

	var testErr error
	if *testChannel != "" {
		testErr = svc.Test(ctx, notification.Channel(strings.ToLower(strings.TrimSpace(*testChannel))))
	}

	if err := c.deps.Presenter.NotificationPreferences(prefs); err != nil {
		return err
	}
	return testErr
}
