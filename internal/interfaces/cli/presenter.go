package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/riskibarqy/finalpoint-client/internal/domain/activity"
	"github.com/riskibarqy/finalpoint-client/internal/domain/driver"
	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
	"github.com/riskibarqy/finalpoint-client/internal/domain/notification"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
	"github.com/riskibarqy/finalpoint-client/internal/platform/resource"
	"github.com/riskibarqy/finalpoint-client/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const dateLayout = "Jan 2, 2006"

// Presenter renders view snapshots as plain text. Each render is built in a
// pooled buffer and written with a single Write.
type Presenter struct {
	out io.Writer

	heading *color.Color
	faint   *color.Color
	tiers   map[race.Tier]*color.Color
}

func NewPresenter(out io.Writer, colorEnabled bool) *Presenter {
	p := &Presenter{
		out:     out,
		heading: color.New(color.Bold),
		faint:   color.New(color.Faint),
		tiers: map[race.Tier]*color.Color{
			race.TierNoPick: color.New(color.FgWhite),
			race.TierExact:  color.New(color.FgGreen, color.Bold),
			race.TierClose:  color.New(color.FgYellow),
			race.TierNear:   color.New(color.FgMagenta),
			race.TierFar:    color.New(color.FgRed),
		},
	}
	for _, c := range p.colors() {
		if colorEnabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Presenter) colors() []*color.Color {
	out := []*color.Color{p.heading, p.faint}
	for _, c := range p.tiers {
		out = append(out, c)
	}
	return out
}

func (p *Presenter) render(fn func(w io.Writer)) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fn(buf)
	_, err := p.out.Write(buf.B)
	return err
}

func (p *Presenter) Message(format string, args ...any) error {
	return p.render(func(w io.Writer) {
		fmt.Fprintf(w, format+"\n", args...)
	})
}

func (p *Presenter) CurrentUser(u user.User, stats, global user.Stats, statsLoaded bool) error {
	return p.render(func(w io.Writer) {
		fmt.Fprintf(w, "%s <%s>\n", p.heading.Sprint(u.Name), u.Email)
		if !statsLoaded {
			return
		}
		fmt.Fprintf(w, "  Your picks:   %d total, %d correct, %d points (%.0f%% accuracy)\n",
			stats.TotalPicks, stats.CorrectPicks, stats.TotalPoints, stats.Accuracy)
		fmt.Fprintf(w, "  Global picks: %d total, %d correct (%.0f%% accuracy)\n",
			global.TotalPicks, global.CorrectPicks, global.Accuracy)
	})
}

func (p *Presenter) Leagues(rows []usecase.LeagueOverview) error {
	return p.render(func(w io.Writer) {
		if len(rows) == 0 {
			fmt.Fprintln(w, "You have not joined any leagues yet.")
			return
		}
		fmt.Fprintln(w, p.heading.Sprint("My Leagues"))
		for _, row := range rows {
			fmt.Fprintf(w, "  #%d %s", row.League.ID, row.League.Name)
			if row.League.UserRole == league.RoleOwner {
				fmt.Fprint(w, p.faint.Sprint(" (owner)"))
			}
			if row.League.MemberCount != nil {
				fmt.Fprintf(w, "  %d members", *row.League.MemberCount)
			}
			fmt.Fprintln(w)
			if row.StatsLoaded {
				fmt.Fprintf(w, "     %d picks, %d correct, %.0f%% accuracy, %.1f avg points\n",
					row.Stats.TotalPicks, row.Stats.CorrectPicks, row.Stats.OverallAccuracy, row.Stats.AveragePoints)
			}
		}
	})
}

func (p *Presenter) LeaguePreview(item league.League) error {
	return p.render(func(w io.Writer) {
		fmt.Fprintf(w, "%s (#%d, season %d)\n", p.heading.Sprint(item.Name), item.ID, item.SeasonYear)
		if item.MemberCount != nil {
			fmt.Fprintf(w, "  %d members\n", *item.MemberCount)
		}
		if item.IsMember {
			fmt.Fprintln(w, "  You are already a member.")
		}
	})
}

func (p *Presenter) LeagueDetail(snap usecase.LeagueDetailSnapshot, shareLink string) error {
	return p.render(func(w io.Writer) {
		switch snap.LoadState {
		case usecase.LoadNotFound:
			fmt.Fprintln(w, "League not found")
			return
		case usecase.LoadLoaded:
		default:
			fmt.Fprintln(w, "Loading league...")
			return
		}

		item := snap.League
		fmt.Fprintf(w, "%s  season %d\n", p.heading.Sprint(item.Name), item.SeasonYear)
		switch snap.JoinState {
		case usecase.JoinMember:
			role := item.UserRole
			if role == "" {
				role = league.RoleMember
			}
			fmt.Fprintf(w, "  Role: %s\n", role)
		case usecase.JoinJoining:
			fmt.Fprintln(w, "  Joining...")
		default:
			fmt.Fprintln(w, "  You are not a member. Join with --join.")
		}
		if item.HasJoinCode() {
			fmt.Fprintf(w, "  Join code: %s\n", item.JoinCode)
		}
		if shareLink != "" {
			fmt.Fprintf(w, "  Share: %s\n", shareLink)
		}
		if snap.CurrentRace != nil {
			fmt.Fprintf(w, "  Current race: week %d, %s (%s)\n",
				snap.CurrentRace.WeekNumber, snap.CurrentRace.RaceName, snap.CurrentRace.RaceDate.Format(dateLayout))
		}

		s := snap.Stats
		fmt.Fprintf(w, "\n%s\n  %d picks, %d correct, %.0f%% accuracy, %.1f avg points\n",
			p.heading.Sprint("Stats"), s.TotalPicks, s.CorrectPicks, s.OverallAccuracy, s.AveragePoints)

		switch snap.Panel {
		case usecase.PanelMembers:
			p.writeMembers(w, snap)
		case usecase.PanelStandings:
			p.writeStandings(w, snap)
		}

		if len(snap.Activity) > 0 {
			fmt.Fprintf(w, "\n%s\n", p.heading.Sprint("Recent Activity"))
			p.writeEvents(w, snap.Activity)
		}
	})
}

func (p *Presenter) writeEvents(w io.Writer, events []activity.Event) {
	for _, event := range events {
		fmt.Fprintf(w, "  %s  %s\n", p.faint.Sprint(event.CreatedAt.Format(dateLayout)), event.Headline())
		if detail := event.Detail(); detail != "" {
			fmt.Fprintf(w, "      %s\n", detail)
		}
	}
}

func (p *Presenter) Activity(events []activity.Event) error {
	return p.render(func(w io.Writer) {
		fmt.Fprintln(w, p.heading.Sprint("League Activity"))
		if len(events) == 0 {
			fmt.Fprintln(w, "  No activity yet.")
			return
		}
		p.writeEvents(w, events)
	})
}

func (p *Presenter) writeMembers(w io.Writer, snap usecase.LeagueDetailSnapshot) {
	fmt.Fprintf(w, "\n%s\n", p.heading.Sprint("Members"))
	if snap.MembersState == resource.StateFailed {
		fmt.Fprintln(w, "  Could not load members.")
		return
	}
	for _, m := range snap.Members {
		fmt.Fprintf(w, "  %-24s %-7s joined %s\n", m.Name, m.Role, m.JoinedAt.Format(dateLayout))
	}
}

func (p *Presenter) writeStandings(w io.Writer, snap usecase.LeagueDetailSnapshot) {
	fmt.Fprintf(w, "\n%s\n", p.heading.Sprint("Standings"))
	if snap.StandingsState == resource.StateFailed {
		fmt.Fprintln(w, "  Could not load standings.")
		return
	}
	for _, s := range snap.Standings {
		fmt.Fprintf(w, "  %2d. %-24s %4d pts  %d/%d correct  %d%%\n",
			s.Rank, s.Name, s.TotalPoints, s.CorrectPicks, s.TotalPicks, league.ComputeAccuracy(s.CorrectPicks, s.TotalPicks))
	}
}

func (p *Presenter) RaceResults(snap usecase.RaceResultsSnapshot) error {
	return p.render(func(w io.Writer) {
		title := "Race Results"
		if snap.LeagueName != "" {
			title = snap.LeagueName + " - " + title
		}
		fmt.Fprintln(w, p.heading.Sprint(title))

		raceName := ""
		if idx := race.IndexOfWeek(snap.Races, snap.SelectedWeek); idx >= 0 {
			raceName = snap.Races[idx].RaceName
		}
		fmt.Fprintf(w, "  Week %d", snap.SelectedWeek)
		if raceName != "" {
			fmt.Fprintf(w, ": %s", raceName)
		}
		if len(snap.Races) > 0 {
			fmt.Fprintf(w, "  [%s] %d%%", progressBar(snap.Progress, 20), snap.Progress)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", p.faint.Sprint(navHint(snap)))

		if snap.Results == nil {
			fmt.Fprintf(w, "\nNo Race Results Available\n  Results for week %d haven't been posted yet.\n", snap.SelectedWeek)
			return
		}

		res := snap.Results
		if res.ActualP10DriverName != nil {
			team := ""
			if res.ActualP10DriverTeam != nil {
				team = " (" + *res.ActualP10DriverTeam + ")"
			}
			fmt.Fprintf(w, "\n  P10 finisher: %s%s\n", p.heading.Sprint(*res.ActualP10DriverName), team)
		}
		fmt.Fprintf(w, "  %d picks, %d correct (%d%%)\n\n",
			res.TotalPicks, res.CorrectPicks, league.ComputeAccuracy(res.CorrectPicks, res.TotalPicks))

		for _, entry := range res.Results {
			outcome := race.DescribePositionDifference(entry.PositionDifference)
			pickText := "-"
			if entry.DriverName != "" {
				pickText = entry.DriverName
			}
			fmt.Fprintf(w, "  %-20s %-24s %-18s %3d pts\n",
				entry.UserName, pickText, p.tierColor(outcome.Tier).Sprint(outcome.Text), entry.Points)
		}
	})
}

func (p *Presenter) tierColor(t race.Tier) *color.Color {
	if c, ok := p.tiers[t]; ok {
		return c
	}
	return p.faint
}

func navHint(snap usecase.RaceResultsSnapshot) string {
	parts := make([]string, 0, 2)
	if snap.CanPrevious {
		parts = append(parts, "--prev")
	}
	if snap.CanNext {
		parts = append(parts, "--next")
	}
	if len(parts) == 0 {
		return "no other weeks"
	}
	return "navigate with " + strings.Join(parts, " / ")
}

func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

func (p *Presenter) Picks(snap usecase.PicksSnapshot) error {
	return p.render(func(w io.Writer) {
		fmt.Fprintf(w, "%s  league #%d, week %d\n", p.heading.Sprint("Your Pick"), snap.LeagueID, snap.Week)
		if snap.CurrentPick != nil {
			state := "open"
			if snap.CurrentPick.IsLocked {
				state = "locked"
			}
			fmt.Fprintf(w, "  %s (%s)\n", snap.CurrentPick.DriverName, state)
		} else {
			fmt.Fprintln(w, "  No pick yet.")
		}
		if !snap.CanSubmit {
			fmt.Fprintln(w, "  Picks are locked for this week.")
		}

		if len(snap.Picks) > 0 {
			fmt.Fprintf(w, "\n%s\n", p.heading.Sprint("History"))
			for _, item := range snap.Picks {
				fmt.Fprintf(w, "  week %2d  %-24s %3d pts\n", item.WeekNumber, item.DriverName, item.Points)
			}
		}

		if snap.LeaguePicks != nil {
			fmt.Fprintf(w, "\n%s\n", p.heading.Sprint(fmt.Sprintf("League Picks, week %d", snap.Week)))
			if len(snap.LeaguePicks) == 0 {
				fmt.Fprintln(w, "  No picks yet.")
			}
			for _, item := range snap.LeaguePicks {
				fmt.Fprintf(w, "  %-20s %-24s %s\n", item.UserName, item.DriverName, p.faint.Sprint(item.Team))
			}
		}
	})
}

func (p *Presenter) Drivers(items []driver.Driver) error {
	return p.render(func(w io.Writer) {
		for _, d := range items {
			fmt.Fprintf(w, "  %3d  #%-2d %-24s %s\n", d.ID, d.DriverNumber, d.Name, p.faint.Sprint(d.Team))
		}
	})
}

func (p *Presenter) Races(items []race.Race, currentWeek int) error {
	return p.render(func(w io.Writer) {
		for _, r := range items {
			marker := " "
			if r.WeekNumber == currentWeek {
				marker = "*"
			}
			fmt.Fprintf(w, " %s week %2d  %-28s %s  %s\n",
				marker, r.WeekNumber, r.RaceName, r.RaceDate.Format(dateLayout), p.faint.Sprint(r.Status))
		}
	})
}

func (p *Presenter) NotificationPreferences(prefs notification.Preferences) error {
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return p.faint.Sprint("off")
	}
	return p.render(func(w io.Writer) {
		fmt.Fprintln(w, p.heading.Sprint("Email Notifications"))
		fmt.Fprintf(w, "  emailReminders     %s\n", onOff(prefs.EmailReminders))
		fmt.Fprintf(w, "  emailScoreUpdates  %s\n", onOff(prefs.EmailScoreUpdates))
		fmt.Fprintln(w, p.heading.Sprint("Push Notifications"))
		fmt.Fprintf(w, "  pushReminders      %s\n", onOff(prefs.PushReminders))
		fmt.Fprintf(w, "  pushScoreUpdates   %s\n", onOff(prefs.PushScoreUpdates))
	})
}
