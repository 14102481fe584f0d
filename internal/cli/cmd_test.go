package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/era/internal/api"
	"github.com/alexanderramin/era/internal/breath"
	"github.com/alexanderramin/era/internal/config"
	"github.com/alexanderramin/era/internal/db"
	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/repository"
	"github.com/alexanderramin/era/internal/service"
	"github.com/alexanderramin/era/internal/testutil"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliNow is a Wednesday.
var cliNow = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

type appOption func(*config.Config)

func withFreeQuota(n int) appOption {
	return func(c *config.Config) { c.FreeSessionQuota = n }
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T, opts ...appOption) (*App, repository.SessionRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := testutil.NewFixedClock(cliNow)

	cfg := config.DefaultConfig()
	cfg.DBPath = ":memory:"
	cfg.Timing.InhaleSec, cfg.Timing.HoldSec, cfg.Timing.ExhaleSec, cfg.Timing.GapSec = 0, 0, 0, 0
	cfg.Timing.FrameMs = 0
	for _, opt := range opts {
		opt(&cfg)
	}

	sessions := repository.NewSQLiteSessionRepo(database)
	goals := service.NewGoalStore(repository.NewSQLiteSettingsRepo(database))

	return &App{
		Analytics: service.NewAnalyticsService(sessions, goals, clock, time.UTC),
		Sessions: service.NewSessionService(sessions, service.StaticEntitlements{Pro: cfg.Pro}, service.SessionSettings{
			Timing:    cfg.BreathTiming(),
			FreeQuota: cfg.FreeSessionQuota,
			Clock:     clock,
		}),
		Reminders: service.NewReminderService(
			repository.NewSQLiteReminderRepo(database),
			testutil.NewTestUoW(database),
			db.SQLite,
		),
		Config:   cfg,
		Location: time.UTC,
		Now:      clock.Now,
	}, sessions
}

// executeCmd runs a cobra command and captures its output without styling.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return ansi.Strip(buf.String()), err
}

func seed(t *testing.T, repo repository.SessionRepo, records ...*domain.SessionRecord) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, repo.Create(context.Background(), r))
	}
}

// --- breathe ---

func TestBreathe_PlainRunsAllPhasesAndRecords(t *testing.T) {
	app, sessions := testApp(t)

	out, err := executeCmd(t, app, "breathe", "--plain")
	require.NoError(t, err)

	assert.Contains(t, out, "Breathe in")
	assert.Contains(t, out, "Hold")
	assert.Contains(t, out, "Breathe out")
	assert.Contains(t, out, "Session complete")
	assert.Contains(t, out, "1 / 3 today")

	n, err := sessions.CountCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBreathe_NonInteractiveUsesPlainOutput(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return false }

	out, err := executeCmd(t, app, "breathe")
	require.NoError(t, err)
	assert.Contains(t, out, "Breathe out")
}

func TestBreathe_RejectsInvalidTimingFlags(t *testing.T) {
	app, sessions := testApp(t)

	_, err := executeCmd(t, app, "breathe", "--plain", "--inhale=-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timing")

	n, err := sessions.CountCompleted(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBreathe_FreeQuotaReached(t *testing.T) {
	app, sessions := testApp(t, withFreeQuota(1))
	seed(t, sessions, testutil.NewTestSession(cliNow.Add(-time.Hour)))

	_, err := executeCmd(t, app, "breathe", "--plain")
	assert.ErrorIs(t, err, service.ErrSessionLimitReached)

	n, err := sessions.CountCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunPlainSession_CancelledContext(t *testing.T) {
	app, sessions := testApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := runPlainSession(ctx, app, &buf, breath.ZeroTiming())
	assert.ErrorIs(t, err, context.Canceled)

	n, err := sessions.CountCompleted(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

// --- stats ---

func TestStats_RendersSummary(t *testing.T) {
	app, sessions := testApp(t)
	seed(t, sessions,
		testutil.NewTestSession(cliNow.Add(-2*time.Hour), testutil.WithLength(2*time.Minute)),
		testutil.NewTestSession(cliNow.Add(-26*time.Hour), testutil.WithLength(time.Minute)),
	)

	out, err := executeCmd(t, app, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "BREATHING")
	assert.Contains(t, out, "1 / 3")
}

func TestStats_JSON(t *testing.T) {
	app, sessions := testApp(t)
	seed(t, sessions, testutil.NewTestSession(cliNow.Add(-2*time.Hour), testutil.WithLength(3*time.Minute)))

	out, err := executeCmd(t, app, "stats", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.EqualValues(t, 1, got["today"])
	assert.EqualValues(t, 3, got["total_minutes"])
	assert.EqualValues(t, 1, got["current_streak"])
	assert.EqualValues(t, 1, got["longest_streak"])
}

// --- goal ---

func TestGoal_SetAndShow(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "goal", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily goal set to 5.")

	out, err = executeCmd(t, app, "goal")
	require.NoError(t, err)
	assert.Contains(t, out, "0 / 5")
}

func TestGoal_ClampsToMinimum(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "goal", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Daily goal set to 1.")
	assert.Equal(t, 1, app.Analytics.DailyGoal(context.Background()))
}

func TestGoal_RejectsNonNumeric(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "goal", "lots")
	assert.Error(t, err)
	assert.Equal(t, domain.DefaultDailyGoal, app.Analytics.DailyGoal(context.Background()))
}

func TestValidateGoal(t *testing.T) {
	assert.NoError(t, validateGoal("4"))
	assert.NoError(t, validateGoal(" 2 "))
	assert.Error(t, validateGoal(""))
	assert.Error(t, validateGoal("0"))
	assert.Error(t, validateGoal("x"))
}

// --- session ---

func TestSessionList(t *testing.T) {
	app, sessions := testApp(t)

	out, err := executeCmd(t, app, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions yet")

	s := testutil.NewTestSession(cliNow.Add(-time.Hour))
	seed(t, sessions, s)

	out, err = executeCmd(t, app, "session", "list", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, s.ID[:8])
}

func TestSessionList_RejectsBadLimit(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "session", "list", "--limit", "0")
	assert.Error(t, err)
}

func TestSessionShow_ByIDAndPrefix(t *testing.T) {
	app, sessions := testApp(t)
	s := testutil.NewTestSession(cliNow.Add(-time.Hour), testutil.WithLength(75*time.Second))
	seed(t, sessions, s)

	out, err := executeCmd(t, app, "session", "show", s.ID)
	require.NoError(t, err)
	assert.Contains(t, out, s.ID)
	assert.Contains(t, out, "1m 15s")

	out, err = executeCmd(t, app, "session", "show", s.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, s.ID)
}

func TestSessionShow_NotFound(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "session", "show", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// --- reminders ---

func TestReminders_SetListClear(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "reminders", "set", "20:30", "08:00", "20:30")
	require.NoError(t, err)
	assert.Contains(t, out, "08:00")
	assert.Contains(t, out, "20:30")
	assert.Contains(t, out, "next, in 8h 30m")

	got, err := app.Reminders.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Reminder{{Hour: 8}, {Hour: 20, Minute: 30}}, got)

	out, err = executeCmd(t, app, "reminders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "08:00")

	out, err = executeCmd(t, app, "reminders", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Reminders cleared.")

	out, err = executeCmd(t, app, "reminders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No reminders set")
}

func TestReminders_SetRejectsInvalidTime(t *testing.T) {
	app, _ := testApp(t)
	require.NoError(t, func() error {
		_, err := executeCmd(t, app, "reminders", "set", "07:15")
		return err
	}())

	_, err := executeCmd(t, app, "reminders", "set", "25:00")
	assert.ErrorIs(t, err, domain.ErrInvalidReminder)

	got, err := app.Reminders.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Reminder{{Hour: 7, Minute: 15}}, got, "existing slots untouched")
}

// --- serve ---

func TestServe_RejectsInvalidAddr(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "serve", "--addr", "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestAPIServices_WireAnalytics(t *testing.T) {
	app, sessions := testApp(t)
	seed(t, sessions, testutil.NewTestSession(cliNow.Add(-time.Hour)))

	router := api.NewRouter(newAPIServices(app), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 1, got["today"])
}
