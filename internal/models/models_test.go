// ABOUTME: Tests for fitness models.
// ABOUTME: Validates constructors, builders, validation, and the Entity interface.
package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEntitiesImplementEntity(t *testing.T) {
	entities := []Entity{
		&User{}, &WorkoutPlan{}, &WorkoutDay{}, &Exercise{}, &WorkoutExercise{},
		&WorkoutSession{}, &ExerciseLog{}, &ProgressPhoto{}, &BodyMeasurement{}, &Achievement{},
	}
	for _, e := range entities {
		id := uuid.New()
		e.SetID(id)
		if e.GetID() != id {
			t.Errorf("%T: GetID() = %v, want %v", e, e.GetID(), id)
		}
	}
}

func TestNewUser(t *testing.T) {
	u := NewUser("Giulia", "giulia@example.com").WithHeight(170)

	if u.ID == uuid.Nil {
		t.Error("expected UUID to be set")
	}
	if u.HeightCm == nil || *u.HeightCm != 170 {
		t.Error("expected HeightCm to be 170")
	}
	if err := u.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    *User
		wantErr bool
	}{
		{"valid", NewUser("Marco", ""), false},
		{"empty name", NewUser("", "x@example.com"), true},
		{"blank name", NewUser("   ", ""), true},
		{"negative height", NewUser("Marco", "").WithHeight(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestExerciseMatches(t *testing.T) {
	e := NewExercise("Back Squat", "Legs", "barbell").WithDescription("Barbell on upper back")

	if e.MuscleGroup != "legs" {
		t.Errorf("MuscleGroup = %s, want legs", e.MuscleGroup)
	}

	for _, term := range []string{"squ", "SQU", "upper", "LEG"} {
		if !e.Matches(term) {
			t.Errorf("Matches(%q) = false, want true", term)
		}
	}
	if e.Matches("bench") {
		t.Error("Matches(bench) = true, want false")
	}
}

func TestWorkoutSessionLifecycle(t *testing.T) {
	s := NewWorkoutSession(uuid.New())
	if s.Completed() {
		t.Fatal("new session should not be completed")
	}
	if s.Duration() != 0 {
		t.Error("expected zero duration while in progress")
	}

	s.Finish(s.StartTime.Add(45 * time.Minute))
	if !s.Completed() {
		t.Fatal("expected session to be completed")
	}
	if s.Duration() != 45*time.Minute {
		t.Errorf("Duration() = %v, want 45m", s.Duration())
	}
}

func TestExerciseLogVolume(t *testing.T) {
	l := NewExerciseLog(uuid.New(), uuid.New(), 3, 10, 60)
	if got := l.Volume(); got != 1800 {
		t.Errorf("Volume() = %v, want 1800", got)
	}
	l.Reps = -1
	if err := l.Validate(); err == nil {
		t.Error("expected negative reps to fail validation")
	}
}

func TestBodyMeasurementSet(t *testing.T) {
	m := NewBodyMeasurement(uuid.New(), 80)
	if err := m.Set("waist", 84); err != nil {
		t.Fatalf("Set(waist) failed: %v", err)
	}
	if m.Waist == nil || *m.Waist != 84 {
		t.Error("expected Waist to be 84")
	}
	if err := m.Set("neck", 40); !errors.Is(err, ErrInvalid) {
		t.Errorf("Set(neck) = %v, want ErrInvalid", err)
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	in := time.Date(2025, 3, 10, 0, 30, 0, 0, loc)
	got := DateOf(in)
	want := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}
}

func TestAchievementUnlockIsOneWay(t *testing.T) {
	a := &Achievement{Type: WorkoutsCompleted, TargetValue: 5}
	first := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	if !a.Unlock(first) {
		t.Fatal("expected first Unlock to succeed")
	}
	if a.Unlock(first.Add(time.Hour)) {
		t.Error("expected second Unlock to be a no-op")
	}
	if !a.UnlockedAt.Equal(first) {
		t.Errorf("UnlockedAt changed to %v", a.UnlockedAt)
	}
}

func TestIsValidAchievementType(t *testing.T) {
	if !IsValidAchievementType("photos_uploaded") {
		t.Error("expected photos_uploaded to be valid")
	}
	if IsValidAchievementType("steps") {
		t.Error("expected steps to be invalid")
	}
}
