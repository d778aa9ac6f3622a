// ABOUTME: Tests for Tracker against a real SQLite store.
// ABOUTME: Verifies lazy materialization, persistence of unlocks and exactly-once points.
package achievements

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
)

func setupTracker(t *testing.T) (*Tracker, *storage.DB, *models.User) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "fitness.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	u := models.NewUser("Ada", "ada@example.com")
	if _, err := db.Users().Add(context.Background(), u); err != nil {
		t.Fatalf("add user: %v", err)
	}

	tr := NewTracker(db.Achievements(), db.WorkoutSessions(), db.ProgressPhotos(), DefaultTemplates())
	return tr, db, u
}

func completeSession(t *testing.T, db *storage.DB, userID uuid.UUID, start time.Time) {
	t.Helper()
	s := models.NewWorkoutSession(userID).WithStartTime(start)
	s.Finish(start.Add(45 * time.Minute))
	if _, err := db.WorkoutSessions().Add(context.Background(), s); err != nil {
		t.Fatalf("add session: %v", err)
	}
}

func TestEnsureMaterializesLazily(t *testing.T) {
	tr, db, u := setupTracker(t)
	ctx := context.Background()

	rows, _ := db.Achievements().ListByUser(ctx, u.ID)
	if len(rows) != 0 {
		t.Fatalf("expected no rows before Ensure, got %d", len(rows))
	}

	for i := 0; i < 2; i++ {
		if err := tr.Ensure(ctx, u.ID); err != nil {
			t.Fatalf("Ensure failed: %v", err)
		}
	}
	rows, _ = db.Achievements().ListByUser(ctx, u.ID)
	if len(rows) != len(tr.Templates()) {
		t.Errorf("expected %d rows, got %d", len(tr.Templates()), len(rows))
	}
}

func TestCheckUnlocksCostanzaOnFifthWorkout(t *testing.T) {
	tr, db, u := setupTracker(t)
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)

	// Four workouts a week apart: no streak, only the first-workout badge.
	for i := 0; i < 4; i++ {
		completeSession(t, db, u.ID, start.AddDate(0, 0, 7*i))
	}
	res, err := tr.Check(ctx, u.ID, models.WorkoutsCompleted)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0].TemplateKey != "first_workout" {
		t.Fatalf("expected first_workout only, got %+v", res.Unlocked)
	}

	completeSession(t, db, u.ID, start.AddDate(0, 0, 35))
	res, err = tr.Check(ctx, u.ID, models.WorkoutsCompleted)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0].Name != "Costanza Principiante" {
		t.Fatalf("expected Costanza Principiante, got %+v", res.Unlocked)
	}
	if res.Points != 25 {
		t.Errorf("points = %d, want 25", res.Points)
	}

	res, err = tr.Check(ctx, u.ID, models.WorkoutsCompleted)
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(res.Unlocked) != 0 || res.Points != 0 {
		t.Errorf("re-check awarded again: %+v", res)
	}

	total, _ := db.Achievements().TotalPoints(ctx, u.ID)
	if total != 30 {
		t.Errorf("TotalPoints = %d, want 30", total)
	}
}

func TestCheckKeepsUnlockTimestamp(t *testing.T) {
	tr, db, u := setupTracker(t)
	ctx := context.Background()

	first := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return first }
	if _, err := db.ProgressPhotos().Add(ctx, models.NewProgressPhoto(u.ID, "/p/1.jpg")); err != nil {
		t.Fatalf("add photo: %v", err)
	}
	if _, err := tr.Check(ctx, u.ID, models.PhotosUploaded); err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	tr.now = func() time.Time { return first.AddDate(0, 1, 0) }
	if _, err := db.ProgressPhotos().Add(ctx, models.NewProgressPhoto(u.ID, "/p/2.jpg")); err != nil {
		t.Fatalf("add photo: %v", err)
	}
	if _, err := tr.Check(ctx, u.ID, models.PhotosUploaded); err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	rows, _ := db.Achievements().ListByUserAndType(ctx, u.ID, models.PhotosUploaded)
	for _, a := range rows {
		if a.TemplateKey != "first_photo" {
			continue
		}
		if !a.Unlocked || a.UnlockedAt == nil || !a.UnlockedAt.Equal(first) {
			t.Errorf("first_photo unlocked at %v, want %v", a.UnlockedAt, first)
		}
	}
}

func TestCheckStreak(t *testing.T) {
	tr, db, u := setupTracker(t)
	ctx := context.Background()
	start := time.Date(2024, 7, 1, 18, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		completeSession(t, db, u.ID, start.AddDate(0, 0, i))
	}
	streak, err := tr.Metric(ctx, u.ID, models.ConsecutiveDays)
	if err != nil {
		t.Fatalf("Metric failed: %v", err)
	}
	if streak != 3 {
		t.Fatalf("streak = %d, want 3", streak)
	}

	res, err := tr.CheckAll(ctx, u.ID)
	if err != nil {
		t.Fatalf("CheckAll failed: %v", err)
	}
	keys := map[string]bool{}
	for _, a := range res.Unlocked {
		keys[a.TemplateKey] = true
	}
	if !keys["streak_3"] || !keys["first_workout"] {
		t.Errorf("expected streak_3 and first_workout, got %v", keys)
	}
	if keys["streak_7"] {
		t.Error("streak_7 must stay locked")
	}
}

func TestMetricUnknownType(t *testing.T) {
	tr, _, u := setupTracker(t)
	if _, err := tr.Metric(context.Background(), u.ID, models.AchievementType("steps")); err == nil {
		t.Error("expected error for unknown type")
	}
}
