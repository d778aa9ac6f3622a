// ABOUTME: MCP resource implementations for the fitness tracker.
// ABOUTME: Provides fitness://exercises, fitness://achievement-templates and fitness://summary.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitness://exercises",
		Name:        "Exercise Library",
		Description: "Every exercise in the library, grouped by muscle group",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitness://achievement-templates",
		Name:        "Achievement Templates",
		Description: "Achievements every user can earn, with targets and points",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitness://summary",
		Name:        "Fitness Summary",
		Description: "Per-user latest measurement, recent sessions and achievement points",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	groups, err := s.svc.MuscleGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list muscle groups: %w", err)
	}

	byGroup := make(map[string][]*models.Exercise, len(groups))
	total := 0
	for _, g := range groups {
		list, err := s.svc.ExercisesByMuscleGroup(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s exercises: %w", g, err)
		}
		byGroup[g] = list
		total += len(list)
	}

	return jsonResource("fitness://exercises", map[string]interface{}{
		"count":         total,
		"muscle_groups": groups,
		"exercises":     byGroup,
	})
}

func (s *Server) handleTemplatesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	templates := s.svc.Templates()
	points := 0
	for _, t := range templates {
		points += t.Points
	}

	return jsonResource("fitness://achievement-templates", map[string]interface{}{
		"count":        len(templates),
		"total_points": points,
		"templates":    templates,
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	users, err := s.svc.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		latest, err := s.svc.LatestMeasurement(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest measurement: %w", err)
		}
		sessions, err := s.svc.Sessions(ctx, u.ID, 5)
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		points, err := s.svc.TotalPoints(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to total points: %w", err)
		}

		entry := map[string]interface{}{
			"id":              models.ShortID(u.ID),
			"name":            u.Name,
			"recent_sessions": sessions,
			"points":          points,
		}
		if latest != nil {
			entry["latest_measurement"] = latest
		}
		summaries = append(summaries, entry)
	}

	return jsonResource("fitness://summary", map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"users":        summaries,
	})
}
