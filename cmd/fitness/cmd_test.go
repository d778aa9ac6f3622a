// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against a temporary data directory.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/prefs"
	"github.com/harperreed/fitness/internal/storage"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "date and time with space", input: "2025-01-31 08:30"},
		{name: "date and time with T", input: "2025-01-31T08:30"},
		{name: "date only", input: "2025-01-31"},
		{name: "RFC3339", input: "2025-01-31T08:30:00Z"},
		{name: "RFC3339 with offset", input: "2025-01-31T08:30:00+05:00"},
		{name: "invalid format", input: "31-01-2025", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseTime(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseTime(%q) unexpected error: %v", tt.input, err)
				return
			}
			if result.IsZero() {
				t.Errorf("parseTime(%q) returned zero time", tt.input)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "monday", want: 1},
		{input: "Mon", want: 1},
		{input: "sun", want: 0},
		{input: "6", want: 6},
		{input: " Saturday ", want: 6},
		{input: "funday", wantErr: true},
		{input: "7", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseWeekday(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseWeekday(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseWeekday(%q) = %d, %v; want %d", tt.input, got, err, tt.want)
		}
	}
}

func TestWeekdayLabel(t *testing.T) {
	if got := weekdayLabel(models.Unscheduled); got != "any day" {
		t.Errorf("weekdayLabel(Unscheduled) = %q", got)
	}
	if got := weekdayLabel(3); got != "Wednesday" {
		t.Errorf("weekdayLabel(3) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world this is long", 10, "hello w..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("abc", 6); got != "abc   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not truncate, got %q", got)
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "fitness" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "fitness")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	for _, name := range []string{"db", "data-dir", "prefs"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent --%s flag", name)
		}
	}
}

func TestCommandTree(t *testing.T) {
	tests := []struct {
		parent string
		subs   []string
	}{
		{"user", []string{"add", "list", "show", "delete"}},
		{"exercise", []string{"add", "list", "search", "delete"}},
		{"plan", []string{"create", "list", "show", "add-day", "add-exercise", "delete"}},
		{"session", []string{"start", "log", "finish", "list", "show"}},
		{"measure", []string{"add", "list"}},
		{"photo", []string{"add", "list"}},
		{"achievements", []string{"list", "check", "templates"}},
	}

	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			parent, _, err := rootCmd.Find([]string{tt.parent})
			if err != nil || parent.Name() != tt.parent {
				t.Fatalf("command %q not registered", tt.parent)
			}
			names := make(map[string]bool)
			for _, c := range parent.Commands() {
				names[c.Name()] = true
			}
			for _, sub := range tt.subs {
				if !names[sub] {
					t.Errorf("Expected subcommand %s %s", tt.parent, sub)
				}
			}
		})
	}

	for _, name := range []string{"login", "logout", "whoami", "export", "reset", "status", "mcp"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestFlagDefaults(t *testing.T) {
	tests := []struct {
		flag string
		get  func() string
		want string
	}{
		{"sets", func() string { return planAddExerciseCmd.Flags().Lookup("sets").DefValue }, "3"},
		{"reps", func() string { return planAddExerciseCmd.Flags().Lookup("reps").DefValue }, "10"},
		{"limit", func() string { return sessionListCmd.Flags().Lookup("limit").DefValue }, "20"},
	}
	for _, tt := range tests {
		if got := tt.get(); got != tt.want {
			t.Errorf("--%s default = %s, want %s", tt.flag, got, tt.want)
		}
	}

	for _, part := range bodyParts {
		if measureAddCmd.Flags().Lookup(part) == nil {
			t.Errorf("Expected --%s flag on measure add", part)
		}
	}
}

func TestAliases(t *testing.T) {
	tests := map[string]string{
		"u":   "user",
		"ex":  "exercise",
		"p":   "plan",
		"s":   "session",
		"m":   "measure",
		"ach": "achievements",
	}
	for alias, want := range tests {
		c, _, err := rootCmd.Find([]string{alias})
		if err != nil || c.Name() != want {
			t.Errorf("alias %q resolved to %v, want %s", alias, c, want)
		}
	}
}

// testCLI runs commands against a private data directory.
type testCLI struct {
	t       *testing.T
	dataDir string
}

// setupTestCLI points configuration and data at temp directories and resets
// the package-level flag state left over from earlier commands.
func setupTestCLI(t *testing.T) *testCLI {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "share"))
	resetFlags()

	return &testCLI{t: t, dataDir: filepath.Join(tmpDir, "data")}
}

func resetFlags() {
	dbPath, dataDir, prefsBackend = "", "", ""
	userEmail, userHeight, userBirth, userGender, userGoal = "", 0, "", "", ""
	exerciseMuscle, exerciseEquipment, exerciseDescription = "", nil, ""
	planDescription, planWeekday, planSets, planReps, planRest = "", "", 3, 10, 0
	sessionDay, sessionNotes, sessionLimit = "", "", 20
	measureDate, measureNotes, measureFrom, measureTo = "", "", "", ""
	photoDate, photoNotes = "", ""
	exportOutput = ""
	loginPassword = ""
	resetYes = false
}

// run executes one command line with the test data directory.
func (c *testCLI) run(args ...string) error {
	c.t.Helper()
	rootCmd.SetArgs(append([]string{"--data-dir", c.dataDir}, args...))
	return Execute()
}

func (c *testCLI) mustRun(args ...string) {
	c.t.Helper()
	if err := c.run(args...); err != nil {
		c.t.Fatalf("fitness %s: %v", strings.Join(args, " "), err)
	}
}

// withDB opens the test database between commands.
func (c *testCLI) withDB(fn func(ctx context.Context, db *storage.DB)) {
	c.t.Helper()
	d, err := storage.Open(filepath.Join(c.dataDir, "fitness.db"))
	if err != nil {
		c.t.Fatalf("Failed to open database: %v", err)
	}
	defer d.Close()
	fn(context.Background(), d)
}

func (c *testCLI) onlyUser() *models.User {
	c.t.Helper()
	var u *models.User
	c.withDB(func(ctx context.Context, db *storage.DB) {
		users, err := db.Users().List(ctx)
		if err != nil || len(users) != 1 {
			c.t.Fatalf("Expected 1 user, got %d (%v)", len(users), err)
		}
		u = users[0]
	})
	return u
}

func TestUserAddCmd(t *testing.T) {
	cli := setupTestCLI(t)

	cli.mustRun("user", "add", "Ada", "--email", "ada@example.com", "--height", "168", "--birth", "1990-12-10", "--goal", "first muscle-up")

	u := cli.onlyUser()
	if u.Name != "Ada" || u.Email != "ada@example.com" {
		t.Errorf("Unexpected user %+v", u)
	}
	if u.HeightCm == nil || *u.HeightCm != 168 {
		t.Error("Height not set")
	}
	if u.BirthDate == nil || u.BirthDate.Year() != 1990 {
		t.Error("Birth date not set")
	}

	cli.mustRun("user", "list")
	cli.mustRun("user", "show", "ada@example.com")
	cli.mustRun("user", "show", models.ShortID(u.ID))
}

func TestUserAddCmdInvalid(t *testing.T) {
	cli := setupTestCLI(t)

	if err := cli.run("user", "add", "Ada", "--birth", "tomorrow-ish"); err == nil {
		t.Error("Expected error for invalid birth date")
	}
	if err := cli.run("user", "add", "  "); err == nil {
		t.Error("Expected error for blank name")
	}
	if err := cli.run("user", "show", "nobody@example.com"); err == nil {
		t.Error("Expected error for unknown user")
	}
}

func TestUserDeleteCmd(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("user", "add", "Ada", "--email", "ada@example.com")
	cli.mustRun("measure", "add", "ada@example.com", "70")

	cli.mustRun("user", "delete", "ada@example.com")

	cli.withDB(func(ctx context.Context, db *storage.DB) {
		users, _ := db.Users().List(ctx)
		measurements, _ := db.BodyMeasurements().List(ctx)
		if len(users) != 0 || len(measurements) != 0 {
			t.Errorf("Expected cascade delete, got %d users %d measurements", len(users), len(measurements))
		}
	})
}

func TestExerciseCmds(t *testing.T) {
	cli := setupTestCLI(t)

	cli.mustRun("exercise", "list")
	cli.mustRun("exercise", "search", "squat")
	cli.mustRun("exercise", "add", "Goblet Squat", "--muscle", "Legs", "--equipment", "kettlebell", "--desc", "Hold the bell at the chest")

	if err := cli.run("exercise", "add", "goblet squat", "--muscle", "legs"); err == nil {
		t.Error("Expected duplicate exercise error")
	}

	cli.withDB(func(ctx context.Context, db *storage.DB) {
		e, err := db.Exercises().GetByName(ctx, "Goblet Squat")
		if err != nil || e == nil {
			t.Fatalf("exercise not stored: %v", err)
		}
		if e.MuscleGroup != "legs" || len(e.Equipment) != 1 {
			t.Errorf("Unexpected exercise %+v", e)
		}
	})

	cli.mustRun("exercise", "delete", "Goblet Squat")
	if err := cli.run("exercise", "delete", "Goblet Squat"); err == nil {
		t.Error("Expected error deleting missing exercise")
	}
}

func TestWorkoutFlow(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("user", "add", "Ada", "--email", "ada@example.com")
	cli.mustRun("plan", "create", "ada@example.com", "Strength", "--desc", "5x5")

	var plan *models.WorkoutPlan
	cli.withDB(func(ctx context.Context, db *storage.DB) {
		plans, _ := db.WorkoutPlans().List(ctx)
		if len(plans) != 1 || !plans[0].Active {
			t.Fatalf("Expected 1 active plan, got %v", plans)
		}
		plan = plans[0]
	})

	cli.mustRun("plan", "add-day", plan.ID.String(), "Leg day", "--weekday", "mon")
	if err := cli.run("plan", "add-day", plan.ID.String(), "Bad day", "--weekday", "funday"); err == nil {
		t.Error("Expected error for unknown weekday")
	}

	var day *models.WorkoutDay
	cli.withDB(func(ctx context.Context, db *storage.DB) {
		days, _ := db.WorkoutDays().ListByPlan(ctx, plan.ID)
		if len(days) != 1 || days[0].DayOfWeek != int(time.Monday) {
			t.Fatalf("Expected Monday day, got %v", days)
		}
		day = days[0]
	})

	cli.mustRun("plan", "add-exercise", day.ID.String(), "Squat", "--sets", "5", "--reps", "5", "--rest", "180")
	cli.mustRun("plan", "show", models.ShortID(plan.ID))
	cli.mustRun("plan", "list", "ada@example.com")

	cli.mustRun("session", "start", "ada@example.com", "--day", day.ID.String())

	var session *models.WorkoutSession
	cli.withDB(func(ctx context.Context, db *storage.DB) {
		sessions, _ := db.WorkoutSessions().List(ctx)
		if len(sessions) != 1 {
			t.Fatalf("Expected 1 session, got %d", len(sessions))
		}
		session = sessions[0]
		if session.WorkoutDayID == nil || *session.WorkoutDayID != day.ID {
			t.Error("Session not linked to plan day")
		}
	})

	cli.mustRun("session", "log", session.ID.String(), "Squat", "5", "5", "100")
	cli.mustRun("session", "log", session.ID.String(), "Push-up", "3", "15")
	if err := cli.run("session", "log", session.ID.String(), "Squat", "five", "5"); err == nil {
		t.Error("Expected error for non-numeric sets")
	}
	cli.mustRun("session", "show", session.ID.String())
	cli.mustRun("session", "finish", session.ID.String(), "--notes", "felt strong")

	if err := cli.run("session", "log", session.ID.String(), "Squat", "1", "1"); err == nil {
		t.Error("Expected error logging to a finished session")
	}

	cli.withDB(func(ctx context.Context, db *storage.DB) {
		s, _ := db.WorkoutSessions().Get(ctx, session.ID)
		if !s.Completed() || s.Notes != "felt strong" {
			t.Errorf("Session not finished correctly: %+v", s)
		}
		logs, _ := db.ExerciseLogs().ListBySession(ctx, session.ID)
		if len(logs) != 2 {
			t.Errorf("Expected 2 logs, got %d", len(logs))
		}
		points, _ := db.Achievements().TotalPoints(ctx, s.UserID)
		if points != 5 {
			t.Errorf("Expected first workout points, got %d", points)
		}
	})

	cli.mustRun("session", "list", "ada@example.com")
	cli.mustRun("achievements", "list", "ada@example.com")
	cli.mustRun("achievements", "check", "ada@example.com")
	cli.mustRun("achievements", "templates")
	cli.mustRun("plan", "delete", plan.ID.String())

	cli.withDB(func(ctx context.Context, db *storage.DB) {
		s, _ := db.WorkoutSessions().Get(ctx, session.ID)
		if s == nil || s.WorkoutPlanID != nil {
			t.Error("Session should survive plan deletion with its plan link cleared")
		}
	})
}

func TestMeasureCmds(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("user", "add", "Ada", "--email", "ada@example.com")

	cli.mustRun("measure", "add", "ada@example.com", "72.4", "--waist", "81", "--body_fat", "19.5", "--date", "2025-01-10")
	cli.mustRun("measure", "add", "ada@example.com", "71.9", "--date", "2025-02-10")

	if err := cli.run("measure", "add", "ada@example.com", "heavy"); err == nil {
		t.Error("Expected error for non-numeric weight")
	}
	if err := cli.run("measure", "add", "ada@example.com", "0"); err == nil {
		t.Error("Expected error for zero weight")
	}

	cli.withDB(func(ctx context.Context, db *storage.DB) {
		u, _ := db.Users().GetByEmail(ctx, "ada@example.com")
		m, err := db.BodyMeasurements().GetByUserAndDate(ctx, u.ID, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
		if err != nil || m == nil {
			t.Fatalf("measurement not found: %v", err)
		}
		if m.Waist == nil || *m.Waist != 81 || m.BodyFat == nil || *m.BodyFat != 19.5 {
			t.Errorf("Body parts not stored: %+v", m)
		}
	})

	cli.mustRun("measure", "list", "ada@example.com")
	cli.mustRun("measure", "list", "ada@example.com", "--from", "2025-02-01")
	if err := cli.run("measure", "list", "ada@example.com", "--to", "soon"); err == nil {
		t.Error("Expected error for invalid --to")
	}
}

func TestPhotoCmds(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("user", "add", "Ada", "--email", "ada@example.com")

	photo := filepath.Join(t.TempDir(), "front.jpg")
	if err := os.WriteFile(photo, []byte("jpeg"), 0600); err != nil {
		t.Fatal(err)
	}
	cli.mustRun("photo", "add", "ada@example.com", photo, "--notes", "week 1")
	cli.mustRun("photo", "list", "ada@example.com")

	cli.withDB(func(ctx context.Context, db *storage.DB) {
		u, _ := db.Users().GetByEmail(ctx, "ada@example.com")
		n, _ := db.ProgressPhotos().CountByUser(ctx, u.ID)
		if n != 1 {
			t.Errorf("Expected 1 photo, got %d", n)
		}
		list, _ := db.Achievements().ListByUserAndType(ctx, u.ID, models.PhotosUploaded)
		unlocked := 0
		for _, a := range list {
			if a.Unlocked {
				unlocked++
			}
		}
		if unlocked != 1 {
			t.Errorf("Expected first photo achievement, got %d unlocked", unlocked)
		}
	})
}

func TestExportCmd(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("user", "add", "Ada", "--email", "ada@example.com")
	cli.mustRun("measure", "add", "ada@example.com", "70")

	out := filepath.Join(t.TempDir(), "ada.json")
	cli.mustRun("export", "ada@example.com", "json", "-o", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if !strings.Contains(string(data), `"tool": "fitness"`) || !strings.Contains(string(data), "ada@example.com") {
		t.Errorf("Unexpected export: %s", data)
	}

	yamlOut := filepath.Join(t.TempDir(), "ada.yaml")
	cli.mustRun("export", "ada@example.com", "yaml", "-o", yamlOut)
	if data, err := os.ReadFile(yamlOut); err != nil || !strings.Contains(string(data), "tool: fitness") {
		t.Errorf("Unexpected YAML export: %s (%v)", data, err)
	}
	exportOutput = ""

	if err := cli.run("export", "ada@example.com", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestAuthCmds(t *testing.T) {
	cli := setupTestCLI(t)

	cli.mustRun("whoami")
	if err := cli.run("login", "--password", "wrong"); err == nil {
		t.Error("Expected error for wrong password")
	}

	cli.mustRun("login", "demo@fitness.local", "--password", "fitness")
	cli.mustRun("whoami")
	cli.mustRun("status")

	readLoggedIn := func() bool {
		b, err := prefs.OpenBadger(filepath.Join(cli.dataDir, "prefs"))
		if err != nil {
			t.Fatalf("open prefs: %v", err)
		}
		p := prefs.New(b)
		defer p.Close()
		v, err := p.GetBool(prefs.KeyIsLoggedIn, false)
		if err != nil {
			t.Fatalf("read prefs: %v", err)
		}
		return v
	}
	if !readLoggedIn() {
		t.Error("Expected logged-in flag after login")
	}

	cli.mustRun("logout")
	if readLoggedIn() {
		t.Error("Expected logged-in flag cleared after logout")
	}
}

func TestStatusAndResetCmds(t *testing.T) {
	cli := setupTestCLI(t)
	cli.mustRun("user", "add", "Ada")
	cli.mustRun("status")

	if err := cli.run("reset"); err == nil {
		t.Error("Expected reset to require --yes")
	}
	cli.mustRun("reset", "--yes")

	cli.withDB(func(ctx context.Context, db *storage.DB) {
		users, _ := db.Users().List(ctx)
		if len(users) != 0 {
			t.Errorf("Expected no users after reset, got %d", len(users))
		}
		exercises, _ := db.Exercises().List(ctx)
		if len(exercises) == 0 {
			t.Error("Expected exercise library reseeded after reset")
		}
	})
}

func TestDBFlagOverride(t *testing.T) {
	cli := setupTestCLI(t)
	custom := filepath.Join(t.TempDir(), "elsewhere.db")

	cli.mustRun("--db", custom, "user", "add", "Ada")
	dbPath = ""

	if _, err := os.Stat(custom); err != nil {
		t.Fatalf("Expected database at %s: %v", custom, err)
	}
	cli.withDB(func(ctx context.Context, db *storage.DB) {
		users, _ := db.Users().List(ctx)
		if len(users) != 0 {
			t.Error("Default database should be untouched")
		}
	})
}

func TestConfigFileBackend(t *testing.T) {
	cli := setupTestCLI(t)
	cfgPath := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "fitness", "config.json")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte(`{"prefs_backend": "nope"}`), 0600); err != nil {
		t.Fatal(err)
	}

	err := cli.run("status")
	if err == nil || !strings.Contains(err.Error(), "unknown prefs backend") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}

	cli.mustRun("--prefs", "memory", "status")
}
