// ABOUTME: MCP tool implementations for the fitness tracker.
// ABOUTME: Exposes users, exercise search, workout sessions, progress tracking and achievements.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "register_user",
		Description: "Create a user profile; achievements are prepared for them",
	}, s.handleRegisterUser)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_exercises",
		Description: "Search the exercise library by name, description or muscle group",
	}, s.handleSearchExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_session",
		Description: "Start a workout session for a user, optionally following a plan day",
	}, s.handleStartSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_exercise",
		Description: "Log sets, reps and weight for an exercise in an open session",
	}, s.handleLogExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_session",
		Description: "Finish a workout session and check workout and streak achievements",
	}, s.handleFinishSession)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_measurement",
		Description: "Record body weight and optional body measurements",
	}, s.handleAddMeasurement)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_photo",
		Description: "Record a progress photo by file path and check photo achievements",
	}, s.handleAddPhoto)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_achievements",
		Description: "List a user's achievements and total points",
	}, s.handleListAchievements)
}

// Tool input/output types

type registerUserInput struct {
	Name        string  `json:"name" jsonschema:"Display name"`
	Email       string  `json:"email,omitempty" jsonschema:"Email address"`
	HeightCm    float64 `json:"height_cm,omitempty" jsonschema:"Height in centimetres"`
	FitnessGoal string  `json:"fitness_goal,omitempty" jsonschema:"Free-form fitness goal"`
}

type userOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type searchExercisesInput struct {
	Query       string `json:"query,omitempty" jsonschema:"Search term, empty lists everything"`
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Filter by muscle group (chest, back, legs, shoulders, arms, core, cardio)"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type startSessionInput struct {
	User  string `json:"user" jsonschema:"User ID, ID prefix or email"`
	Day   string `json:"day,omitempty" jsonschema:"Plan day ID or prefix to follow"`
	Notes string `json:"notes,omitempty" jsonschema:"Session notes"`
}

type sessionOutput struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type logExerciseInput struct {
	Session  string  `json:"session" jsonschema:"Session ID or prefix"`
	Exercise string  `json:"exercise" jsonschema:"Exercise ID, ID prefix or exact name"`
	Sets     int     `json:"sets" jsonschema:"Number of sets"`
	Reps     int     `json:"reps" jsonschema:"Reps per set"`
	WeightKg float64 `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms"`
	Notes    string  `json:"notes,omitempty" jsonschema:"Notes"`
}

type logOutput struct {
	ID       string  `json:"id"`
	VolumeKg float64 `json:"volume_kg"`
	Message  string  `json:"message"`
}

type finishSessionInput struct {
	Session string `json:"session" jsonschema:"Session ID or prefix"`
	Notes   string `json:"notes,omitempty" jsonschema:"Replaces the session notes when set"`
}

type unlockOutput struct {
	ID       string   `json:"id"`
	Unlocked []string `json:"unlocked,omitempty"`
	Points   int      `json:"points"`
	Message  string   `json:"message"`
}

type addMeasurementInput struct {
	User     string   `json:"user" jsonschema:"User ID, ID prefix or email"`
	WeightKg float64  `json:"weight_kg" jsonschema:"Body weight in kilograms"`
	BodyFat  *float64 `json:"body_fat,omitempty" jsonschema:"Body fat percentage"`
	Chest    *float64 `json:"chest,omitempty" jsonschema:"Chest in cm"`
	Waist    *float64 `json:"waist,omitempty" jsonschema:"Waist in cm"`
	Hips     *float64 `json:"hips,omitempty" jsonschema:"Hips in cm"`
	Arms     *float64 `json:"arms,omitempty" jsonschema:"Arms in cm"`
	Thighs   *float64 `json:"thighs,omitempty" jsonschema:"Thighs in cm"`
	Date     string   `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD or ISO 8601), defaults to today"`
	Notes    string   `json:"notes,omitempty" jsonschema:"Notes"`
}

type simpleOutput struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

type addPhotoInput struct {
	User  string `json:"user" jsonschema:"User ID, ID prefix or email"`
	Path  string `json:"path" jsonschema:"Path of the image file"`
	Date  string `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD or ISO 8601), defaults to today"`
	Notes string `json:"notes,omitempty" jsonschema:"Notes"`
}

type listAchievementsInput struct {
	User         string `json:"user" jsonschema:"User ID, ID prefix or email"`
	UnlockedOnly bool   `json:"unlocked_only,omitempty" jsonschema:"Only return unlocked achievements"`
}

// Tool handlers

func (s *Server) handleRegisterUser(ctx context.Context, req *mcp.CallToolRequest, input registerUserInput) (*mcp.CallToolResult, userOutput, error) {
	u := models.NewUser(input.Name, input.Email)
	if input.HeightCm > 0 {
		u.WithHeight(input.HeightCm)
	}
	if input.FitnessGoal != "" {
		u.WithGoal(input.FitnessGoal)
	}

	if _, err := s.svc.RegisterUser(ctx, u); err != nil {
		return nil, userOutput{}, fmt.Errorf("failed to register user: %w", err)
	}

	return nil, userOutput{
		ID:      models.ShortID(u.ID),
		Name:    u.Name,
		Message: fmt.Sprintf("Registered %s (ID: %s)", u.Name, models.ShortID(u.ID)),
	}, nil
}

func (s *Server) handleSearchExercises(ctx context.Context, req *mcp.CallToolRequest, input searchExercisesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var (
		list []*models.Exercise
		err  error
	)
	if input.MuscleGroup != "" {
		list, err = s.svc.ExercisesByMuscleGroup(ctx, input.MuscleGroup)
	} else {
		list, err = s.svc.SearchExercises(ctx, input.Query)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search exercises: %w", err)
	}

	if input.MuscleGroup != "" && input.Query != "" {
		filtered := list[:0]
		for _, e := range list {
			if e.Matches(input.Query) {
				filtered = append(filtered, e)
			}
		}
		list = filtered
	}

	if len(list) == 0 {
		return nil, map[string]interface{}{"message": "No exercises found."}, nil
	}
	if len(list) > input.Limit {
		list = list[:input.Limit]
	}

	return nil, list, nil
}

func (s *Server) handleStartSession(ctx context.Context, req *mcp.CallToolRequest, input startSessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	u, err := s.svc.ResolveUser(ctx, input.User)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("user not found: %w", err)
	}

	var dayID *uuid.UUID
	if input.Day != "" {
		day, err := s.svc.ResolveDay(ctx, input.Day)
		if err != nil {
			return nil, sessionOutput{}, fmt.Errorf("plan day not found: %w", err)
		}
		dayID = &day.ID
	}

	session, err := s.svc.StartSession(ctx, u.ID, dayID, input.Notes)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to start session: %w", err)
	}

	return nil, sessionOutput{
		ID:      models.ShortID(session.ID),
		Message: fmt.Sprintf("Started session for %s (ID: %s)", u.Name, models.ShortID(session.ID)),
	}, nil
}

func (s *Server) handleLogExercise(ctx context.Context, req *mcp.CallToolRequest, input logExerciseInput) (*mcp.CallToolResult, logOutput, error) {
	session, err := s.svc.ResolveSession(ctx, input.Session)
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("session not found: %w", err)
	}
	ex, err := s.svc.ResolveExercise(ctx, input.Exercise)
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("exercise not found: %w", err)
	}

	l, err := s.svc.LogExercise(ctx, session.ID, ex.ID, input.Sets, input.Reps, input.WeightKg, input.Notes)
	if err != nil {
		return nil, logOutput{}, fmt.Errorf("failed to log exercise: %w", err)
	}

	return nil, logOutput{
		ID:       models.ShortID(l.ID),
		VolumeKg: l.Volume(),
		Message:  fmt.Sprintf("Logged %s: %dx%d @ %.1f kg", ex.Name, l.Sets, l.Reps, l.WeightKg),
	}, nil
}

func (s *Server) handleFinishSession(ctx context.Context, req *mcp.CallToolRequest, input finishSessionInput) (*mcp.CallToolResult, unlockOutput, error) {
	session, err := s.svc.ResolveSession(ctx, input.Session)
	if err != nil {
		return nil, unlockOutput{}, fmt.Errorf("session not found: %w", err)
	}

	summary, err := s.svc.FinishSession(ctx, session.ID, input.Notes)
	if err != nil {
		return nil, unlockOutput{}, fmt.Errorf("failed to finish session: %w", err)
	}

	out := unlockOutput{
		ID:       models.ShortID(session.ID),
		Unlocked: unlockedNames(summary.Unlocked),
		Points:   summary.Points,
	}
	out.Message = fmt.Sprintf("Finished session: %d exercises, %.1f kg volume, %s",
		len(summary.Logs), summary.VolumeKg, summary.Session.Duration().Round(time.Minute))
	if len(out.Unlocked) > 0 {
		out.Message += fmt.Sprintf(". Unlocked: %s (+%d points)", strings.Join(out.Unlocked, ", "), out.Points)
	}
	return nil, out, nil
}

func (s *Server) handleAddMeasurement(ctx context.Context, req *mcp.CallToolRequest, input addMeasurementInput) (*mcp.CallToolResult, simpleOutput, error) {
	u, err := s.svc.ResolveUser(ctx, input.User)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("user not found: %w", err)
	}

	m := models.NewBodyMeasurement(u.ID, input.WeightKg)
	if input.Date != "" {
		t, err := parseDate(input.Date)
		if err != nil {
			return nil, simpleOutput{}, err
		}
		m.WithDate(t)
	}
	m.BodyFat = input.BodyFat
	m.Chest = input.Chest
	m.Waist = input.Waist
	m.Hips = input.Hips
	m.Arms = input.Arms
	m.Thighs = input.Thighs
	m.Notes = input.Notes

	if _, err := s.svc.AddMeasurement(ctx, m); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to add measurement: %w", err)
	}

	return nil, simpleOutput{
		ID:      models.ShortID(m.ID),
		Message: fmt.Sprintf("Recorded %.1f kg on %s", m.WeightKg, m.Date.Format("2006-01-02")),
	}, nil
}

func (s *Server) handleAddPhoto(ctx context.Context, req *mcp.CallToolRequest, input addPhotoInput) (*mcp.CallToolResult, unlockOutput, error) {
	u, err := s.svc.ResolveUser(ctx, input.User)
	if err != nil {
		return nil, unlockOutput{}, fmt.Errorf("user not found: %w", err)
	}

	p := models.NewProgressPhoto(u.ID, input.Path)
	if input.Date != "" {
		t, err := parseDate(input.Date)
		if err != nil {
			return nil, unlockOutput{}, err
		}
		p.WithDate(t)
	}
	p.Notes = input.Notes

	_, res, err := s.svc.AddProgressPhoto(ctx, p)
	if err != nil {
		return nil, unlockOutput{}, fmt.Errorf("failed to add photo: %w", err)
	}

	out := unlockOutput{
		ID:       models.ShortID(p.ID),
		Unlocked: unlockedNames(res.Unlocked),
		Points:   res.Points,
		Message:  fmt.Sprintf("Added photo %s (ID: %s)", p.Path, models.ShortID(p.ID)),
	}
	if len(out.Unlocked) > 0 {
		out.Message += fmt.Sprintf(". Unlocked: %s (+%d points)", strings.Join(out.Unlocked, ", "), out.Points)
	}
	return nil, out, nil
}

func (s *Server) handleListAchievements(ctx context.Context, req *mcp.CallToolRequest, input listAchievementsInput) (*mcp.CallToolResult, any, error) {
	u, err := s.svc.ResolveUser(ctx, input.User)
	if err != nil {
		return nil, nil, fmt.Errorf("user not found: %w", err)
	}

	list, err := s.svc.Achievements(ctx, u.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	if input.UnlockedOnly {
		unlocked := list[:0]
		for _, a := range list {
			if a.Unlocked {
				unlocked = append(unlocked, a)
			}
		}
		list = unlocked
	}

	total, err := s.svc.TotalPoints(ctx, u.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to total points: %w", err)
	}

	return nil, map[string]interface{}{
		"user":         u.Name,
		"total_points": total,
		"achievements": list,
	}, nil
}

func unlockedNames(list []*models.Achievement) []string {
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	return names
}

// parseDate accepts a calendar date or a full timestamp.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
}
