package testutils

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/riskibarqy/finalpoint-client/internal/domain/activity"
	"github.com/riskibarqy/finalpoint-client/internal/domain/driver"
	"github.com/riskibarqy/finalpoint-client/internal/domain/league"
	"github.com/riskibarqy/finalpoint-client/internal/domain/notification"
	"github.com/riskibarqy/finalpoint-client/internal/domain/pick"
	"github.com/riskibarqy/finalpoint-client/internal/domain/race"
	"github.com/riskibarqy/finalpoint-client/internal/domain/user"
)

const (
	FakeToken    = "token-ana"
	FakeEmail    = "ana@example.com"
	FakePassword = "secret1"
	FakeUserID   = int64(1)
)

// RecordedRequest is what the fake saw for one call, after routing.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// FakeFinalPointServer is an in-memory FinalPoint API behind httptest. It
// seeds two leagues, one season of three races and a small driver grid.
// League 1 is owned by the fake user; league 2 is joinable by code.
type FakeFinalPointServer struct {
	s *httptest.Server

	mu        sync.Mutex
	leagues   map[int64]league.League
	members   map[int64][]league.Member
	picks     []pick.Pick
	requests  []RecordedRequest
	overrides map[string]http.HandlerFunc
	prefs     *notification.Preferences
	nextID    int64
}

func NewFakeFinalPointServer() *FakeFinalPointServer {
	f := &FakeFinalPointServer{
		leagues:   make(map[int64]league.League),
		members:   make(map[int64][]league.Member),
		overrides: make(map[string]http.HandlerFunc),
		nextID:    100,
	}
	f.seed()

	r := chi.NewRouter()
	r.Use(f.record)
	r.Route("/api", func(r chi.Router) {
		r.Post("/users/signup", f.signupHandler)
		r.Post("/users/login", f.loginHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireBearer)

			r.Get("/users/stats", f.userStatsHandler)
			r.Get("/users/global-stats", f.userStatsHandler)

			r.Route("/leagues", func(r chi.Router) {
				r.Get("/get", f.listLeaguesHandler)
				r.Post("/create", f.createLeagueHandler)
				r.Get("/get/{leagueID}", f.getLeagueHandler)
				r.Post("/join-by-code", f.joinByCodeHandler)
				r.Get("/code/{code}", f.leagueByCodeHandler)
				r.Post("/{leagueID}/join", f.joinLeagueHandler)
				r.Get("/{leagueID}/members", f.membersHandler)
				r.Get("/{leagueID}/standings", f.standingsHandler)
				r.Get("/{leagueID}/stats", f.leagueStatsHandler)
			})

			r.Route("/picks", func(r chi.Router) {
				r.Post("/make", f.makePickHandler)
				r.Get("/user/{leagueID}", f.userPicksHandler)
				r.Get("/league/{leagueID}/week/{week}", f.leaguePicksHandler)
				r.Get("/results/{leagueID}/week/{week}", f.resultsHandler)
			})

			r.Get("/drivers/get", driversHandler)

			r.Route("/f1races", func(r chi.Router) {
				r.Get("/current", currentRaceHandler)
				r.Get("/all", racesHandler)
				r.Get("/week/{week}", raceByWeekHandler)
				r.Post("/populate-season", func(w http.ResponseWriter, r *http.Request) {
					writeSuccess(w, http.StatusOK, nil)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/preferences", f.getPreferencesHandler)
				r.Put("/preferences", f.putPreferencesHandler)
				r.Post("/test", testNotificationHandler)
			})

			r.Get("/activity/league/{leagueID}", activityHandler)
			r.Get("/activity/league/{leagueID}/recent", activityHandler)
		})
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeFinalPointServer) Close() {
	f.s.Close()
}

// URL is the API root, including the /api prefix.
func (f *FakeFinalPointServer) URL() string {
	return f.s.URL + "/api"
}

// Override replaces the handler for one route, e.g. to inject failures.
// path is relative to the API root.
func (f *FakeFinalPointServer) Override(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overrides[method+" /api"+path] = h
}

func (f *FakeFinalPointServer) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// Hits counts calls to method and path (relative to the API root).
func (f *FakeFinalPointServer) Hits(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, req := range f.requests {
		if req.Method == method && req.Path == "/api"+path {
			n++
		}
	}
	return n
}

func (f *FakeFinalPointServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		override := f.overrides[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if override != nil {
			override(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) != FakeToken {
			WriteFailure(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// WriteSuccess writes the API envelope with data. Exported for overrides.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	writeSuccess(w, status, data)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// WriteFailure writes a {success:false} envelope with message.
func WriteFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func decodeBody(r *http.Request, target any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return false
	}
	return sonic.Unmarshal(body, target) == nil
}

func (f *FakeFinalPointServer) seed() {
	two, one := 2, 1
	f.leagues[1] = league.League{
		ID: 1, Name: "Paddock Club", OwnerID: FakeUserID, SeasonYear: 2025,
		JoinCode: "PADDOCK1", MemberCount: &two, IsMember: true, UserRole: league.RoleOwner,
	}
	f.leagues[2] = league.League{
		ID: 2, Name: "Backmarkers", OwnerID: 7, SeasonYear: 2025,
		JoinCode: "BACK2", MemberCount: &one,
	}
	joined := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f.members[1] = []league.Member{
		{ID: FakeUserID, Name: "Ana", Role: league.RoleOwner, JoinedAt: joined},
		{ID: 2, Name: "Ben", Role: league.RoleMember, JoinedAt: joined.Add(24 * time.Hour)},
	}
	f.members[2] = []league.Member{
		{ID: 7, Name: "Cleo", Role: league.RoleOwner, JoinedAt: joined},
	}
	f.picks = []pick.Pick{
		{ID: 11, LeagueID: 1, WeekNumber: 1, DriverID: 23, DriverName: "Alexander Albon", IsLocked: true, Points: 10},
		{ID: 12, LeagueID: 1, WeekNumber: 2, DriverID: 10, DriverName: "Pierre Gasly"},
	}
}

var (
	fakeDrivers = []driver.Driver{
		{ID: 23, Name: "Alexander Albon", Team: "Williams", DriverNumber: 23, Country: "Thailand"},
		{ID: 10, Name: "Pierre Gasly", Team: "Alpine", DriverNumber: 10, Country: "France"},
		{ID: 27, Name: "Nico Hulkenberg", Team: "Sauber", DriverNumber: 27, Country: "Germany"},
	}
	fakeRaces = []race.Race{
		{ID: 3, WeekNumber: 3, RaceName: "Japanese Grand Prix", Status: "upcoming", RaceDate: time.Date(2025, 4, 6, 5, 0, 0, 0, time.UTC)},
		{ID: 1, WeekNumber: 1, RaceName: "Australian Grand Prix", Status: "completed", RaceDate: time.Date(2025, 3, 16, 4, 0, 0, 0, time.UTC)},
		{ID: 2, WeekNumber: 2, RaceName: "Chinese Grand Prix", Status: "upcoming", RaceDate: time.Date(2025, 3, 23, 7, 0, 0, 0, time.UTC)},
	}
)

func (f *FakeFinalPointServer) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !decodeBody(r, &req) || req.Email == "" {
		WriteFailure(w, http.StatusBadRequest, "Email, password and name are required")
		return
	}
	if strings.EqualFold(req.Email, FakeEmail) {
		WriteFailure(w, http.StatusConflict, "User already exists")
		return
	}
	writeSuccess(w, http.StatusCreated, user.Session{
		Token: FakeToken,
		User:  user.User{ID: f.newID(), Email: req.Email, Name: req.Name},
	})
}

func (f *FakeFinalPointServer) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(r, &req) || req.Email != FakeEmail || req.Password != FakePassword {
		WriteFailure(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeSuccess(w, http.StatusOK, user.Session{
		Token: FakeToken,
		User:  user.User{ID: FakeUserID, Email: FakeEmail, Name: "Ana"},
	})
}

func (f *FakeFinalPointServer) userStatsHandler(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, user.Stats{TotalPicks: 2, CorrectPicks: 1, TotalPoints: 10, Accuracy: 50, AveragePoints: 5})
}

func (f *FakeFinalPointServer) listLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]league.League, 0, len(f.leagues))
	for id := int64(1); id <= f.nextID; id++ {
		if item, ok := f.leagues[id]; ok && item.IsMember {
			out = append(out, item)
		}
	}
	writeSuccess(w, http.StatusOK, out)
}

func (f *FakeFinalPointServer) createLeagueHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(r, &req) || strings.TrimSpace(req.Name) == "" {
		WriteFailure(w, http.StatusBadRequest, "League name is required")
		return
	}
	id := f.newID()
	one := 1
	created := league.League{
		ID: id, Name: req.Name, OwnerID: FakeUserID, SeasonYear: 2025,
		JoinCode: "CODE" + strconv.FormatInt(id, 10), MemberCount: &one,
		IsMember: true, UserRole: league.RoleOwner,
	}
	f.mu.Lock()
	f.leagues[id] = created
	f.members[id] = []league.Member{{ID: FakeUserID, Name: "Ana", Role: league.RoleOwner, JoinedAt: time.Now().UTC()}}
	f.mu.Unlock()
	writeSuccess(w, http.StatusCreated, created)
}

func (f *FakeFinalPointServer) getLeagueHandler(w http.ResponseWriter, r *http.Request) {
	item, ok := f.leagueFromPath(r)
	if !ok {
		WriteFailure(w, http.StatusNotFound, "League not found")
		return
	}
	if !item.IsMember {
		item.JoinCode = ""
	}
	writeSuccess(w, http.StatusOK, item)
}

func (f *FakeFinalPointServer) joinLeagueHandler(w http.ResponseWriter, r *http.Request) {
	item, ok := f.leagueFromPath(r)
	if !ok {
		WriteFailure(w, http.StatusNotFound, "League not found")
		return
	}
	if item.IsMember {
		WriteFailure(w, http.StatusBadRequest, "You are already a member of this league")
		return
	}
	f.join(item)
	writeSuccess(w, http.StatusOK, nil)
}

func (f *FakeFinalPointServer) joinByCodeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JoinCode string `json:"joinCode"`
	}
	if !decodeBody(r, &req) {
		WriteFailure(w, http.StatusBadRequest, "Join code is required")
		return
	}
	item, ok := f.leagueByCode(req.JoinCode)
	if !ok {
		WriteFailure(w, http.StatusNotFound, "Invalid join code")
		return
	}
	if item.IsMember {
		WriteFailure(w, http.StatusBadRequest, "You are already a member of this league")
		return
	}
	writeSuccess(w, http.StatusOK, f.join(item))
}

func (f *FakeFinalPointServer) leagueByCodeHandler(w http.ResponseWriter, r *http.Request) {
	item, ok := f.leagueByCode(chi.URLParam(r, "code"))
	if !ok {
		WriteFailure(w, http.StatusNotFound, "League not found")
		return
	}
	writeSuccess(w, http.StatusOK, item)
}

func (f *FakeFinalPointServer) membersHandler(w http.ResponseWriter, r *http.Request) {
	item, ok := f.leagueFromPath(r)
	if !ok {
		WriteFailure(w, http.StatusNotFound, "League not found")
		return
	}
	f.mu.Lock()
	out := append([]league.Member(nil), f.members[item.ID]...)
	f.mu.Unlock()
	writeSuccess(w, http.StatusOK, out)
}

func (f *FakeFinalPointServer) standingsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := f.leagueFromPath(r); !ok {
		WriteFailure(w, http.StatusNotFound, "League not found")
		return
	}
	writeSuccess(w, http.StatusOK, []league.Standing{
		{ID: 2, Name: "Ben", TotalPoints: 4, TotalPicks: 2, CorrectPicks: 0, Accuracy: 0},
		{ID: FakeUserID, Name: "Ana", TotalPoints: 10, TotalPicks: 2, CorrectPicks: 1, Accuracy: 50},
	})
}

func (f *FakeFinalPointServer) leagueStatsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := f.leagueFromPath(r); !ok {
		WriteFailure(w, http.StatusNotFound, "League not found")
		return
	}
	writeSuccess(w, http.StatusOK, league.Stats{TotalPicks: 4, CorrectPicks: 1, OverallAccuracy: 25, AveragePoints: 7})
}

func (f *FakeFinalPointServer) makePickHandler(w http.ResponseWriter, r *http.Request) {
	var input pick.MakeInput
	if !decodeBody(r, &input) || input.Validate() != nil {
		WriteFailure(w, http.StatusBadRequest, "League, week and driver are required")
		return
	}
	chosen, ok := driver.FindByID(fakeDrivers, input.DriverID)
	if !ok {
		WriteFailure(w, http.StatusBadRequest, "Unknown driver")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.picks {
		existing := &f.picks[i]
		if existing.LeagueID != input.LeagueID || existing.WeekNumber != input.WeekNumber {
			continue
		}
		if existing.IsLocked {
			WriteFailure(w, http.StatusBadRequest, "Picks are locked for this week")
			return
		}
		existing.DriverID = chosen.ID
		existing.DriverName = chosen.Name
		writeSuccess(w, http.StatusOK, *existing)
		return
	}
	f.nextID++
	created := pick.Pick{ID: f.nextID, LeagueID: input.LeagueID, WeekNumber: input.WeekNumber, DriverID: chosen.ID, DriverName: chosen.Name}
	f.picks = append(f.picks, created)
	writeSuccess(w, http.StatusCreated, created)
}

func (f *FakeFinalPointServer) userPicksHandler(w http.ResponseWriter, r *http.Request) {
	leagueID, _ := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 64)
	f.mu.Lock()
	out := make([]pick.Pick, 0, len(f.picks))
	for _, item := range f.picks {
		if item.LeagueID == leagueID {
			out = append(out, item)
		}
	}
	f.mu.Unlock()
	writeSuccess(w, http.StatusOK, out)
}

func (f *FakeFinalPointServer) leaguePicksHandler(w http.ResponseWriter, r *http.Request) {
	leagueID, _ := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 64)
	week, _ := strconv.Atoi(chi.URLParam(r, "week"))
	f.mu.Lock()
	out := make([]pick.LeaguePick, 0)
	for _, item := range f.picks {
		if item.LeagueID == leagueID && item.WeekNumber == week {
			out = append(out, pick.LeaguePick{Pick: item, UserID: FakeUserID, UserName: "Ana"})
		}
	}
	f.mu.Unlock()
	writeSuccess(w, http.StatusOK, out)
}

// resultsHandler serves scored results for league 1 week 1 only. Other weeks
// return null data, which is how the API reports an unscored week.
func (f *FakeFinalPointServer) resultsHandler(w http.ResponseWriter, r *http.Request) {
	leagueID, _ := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 64)
	week, _ := strconv.Atoi(chi.URLParam(r, "week"))
	if leagueID != 1 || week != 1 {
		writeSuccess(w, http.StatusOK, nil)
		return
	}
	actualID := int64(23)
	actualName, actualTeam := "Alexander Albon", "Williams"
	exact, off := 0, 3
	writeSuccess(w, http.StatusOK, race.Results{
		LeagueID:            1,
		WeekNumber:          1,
		ActualP10DriverID:   &actualID,
		ActualP10DriverName: &actualName,
		ActualP10DriverTeam: &actualTeam,
		TotalPicks:          2,
		CorrectPicks:        1,
		Results: []race.ResultEntry{
			{ID: 1, UserID: FakeUserID, UserName: "Ana", DriverID: 23, DriverName: "Alexander Albon", DriverTeam: "Williams", PositionDifference: &exact, IsCorrect: true, Points: 10},
			{ID: 2, UserID: 2, UserName: "Ben", DriverID: 10, DriverName: "Pierre Gasly", DriverTeam: "Alpine", PositionDifference: &off, Points: 4},
		},
	})
}

func driversHandler(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, fakeDrivers)
}

func currentRaceHandler(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, fakeRaces[2])
}

func racesHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("seasonYear") != "2025" {
		writeSuccess(w, http.StatusOK, []race.Race{})
		return
	}
	writeSuccess(w, http.StatusOK, fakeRaces)
}

func raceByWeekHandler(w http.ResponseWriter, r *http.Request) {
	week, _ := strconv.Atoi(chi.URLParam(r, "week"))
	for _, item := range fakeRaces {
		if item.WeekNumber == week {
			writeSuccess(w, http.StatusOK, item)
			return
		}
	}
	WriteFailure(w, http.StatusNotFound, "Race not found")
}

func activityHandler(w http.ResponseWriter, r *http.Request) {
	week := 2
	items := []activity.Event{
		{ID: 1, Type: activity.TypeUserJoined, UserName: "Ben", CreatedAt: time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)},
		{ID: 2, Type: activity.TypePickCreated, UserName: "Ana", WeekNumber: &week, DriverName: "Pierre Gasly", DriverTeam: "Alpine", CreatedAt: time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)},
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	writeSuccess(w, http.StatusOK, items)
}

// Preferences returns what the last PUT stored, if anything.
func (f *FakeFinalPointServer) Preferences() (notification.Preferences, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs == nil {
		return notification.Preferences{}, false
	}
	return *f.prefs, true
}

// getPreferencesHandler answers null data until preferences are stored.
func (f *FakeFinalPointServer) getPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs == nil {
		writeSuccess(w, http.StatusOK, nil)
		return
	}
	writeSuccess(w, http.StatusOK, *f.prefs)
}

func (f *FakeFinalPointServer) putPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	var prefs notification.Preferences
	if !decodeBody(r, &prefs) {
		WriteFailure(w, http.StatusBadRequest, "Invalid preferences")
		return
	}
	f.mu.Lock()
	f.prefs = &prefs
	f.mu.Unlock()
	writeSuccess(w, http.StatusOK, prefs)
}

func testNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var input notification.TestRequest
	if !decodeBody(r, &input) || (input.Type != notification.ChannelEmail && input.Type != notification.ChannelPush) {
		WriteFailure(w, http.StatusBadRequest, "Invalid notification type")
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

func (f *FakeFinalPointServer) leagueFromPath(r *http.Request) (league.League, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 64)
	if err != nil {
		return league.League{}, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.leagues[id]
	return item, ok
}

func (f *FakeFinalPointServer) leagueByCode(code string) (league.League, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.leagues {
		if strings.EqualFold(item.JoinCode, strings.TrimSpace(code)) {
			return item, true
		}
	}
	return league.League{}, false
}

func (f *FakeFinalPointServer) join(item league.League) league.League {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.IsMember = true
	item.UserRole = league.RoleMember
	count := len(f.members[item.ID]) + 1
	item.MemberCount = &count
	f.leagues[item.ID] = item
	f.members[item.ID] = append(f.members[item.ID], league.Member{ID: FakeUserID, Name: "Ana", Role: league.RoleMember, JoinedAt: time.Now().UTC()})
	return item
}

func (f *FakeFinalPointServer) newID() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}
