// ABOUTME: Static achievement templates loaded from an embedded YAML catalog.
// ABOUTME: Templates are configuration; per-user rows are created from them on demand.
package achievements

import (
	_ "embed"
	"fmt"

	"github.com/harperreed/fitness/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// Template defines an achievement every user can earn.
type Template struct {
	Key         string                 `yaml:"key" json:"key"`
	Type        models.AchievementType `yaml:"type" json:"type"`
	Name        string                 `yaml:"name" json:"name"`
	Description string                 `yaml:"description" json:"description"`
	Target      int                    `yaml:"target" json:"target"`
	Points      int                    `yaml:"points" json:"points"`
}

// ParseTemplates decodes and validates a YAML template list.
func ParseTemplates(data []byte) ([]Template, error) {
	var templates []Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse achievement templates: %w", err)
	}

	seen := make(map[string]bool, len(templates))
	for _, t := range templates {
		switch {
		case t.Key == "":
			return nil, fmt.Errorf("achievement template %q: missing key", t.Name)
		case seen[t.Key]:
			return nil, fmt.Errorf("achievement template %q: duplicate key", t.Key)
		case !models.IsValidAchievementType(string(t.Type)):
			return nil, fmt.Errorf("achievement template %q: unknown type %q", t.Key, t.Type)
		case t.Target <= 0:
			return nil, fmt.Errorf("achievement template %q: target must be positive", t.Key)
		}
		seen[t.Key] = true
	}
	return templates, nil
}

// DefaultTemplates returns the built-in catalog.
func DefaultTemplates() []Template {
	templates, err := ParseTemplates(templatesYAML)
	if err != nil {
		panic(err)
	}
	return templates
}

// Prototype returns an unowned, locked achievement row for t.
func (t Template) Prototype() *models.Achievement {
	return &models.Achievement{
		TemplateKey:   t.Key,
		Type:          t.Type,
		Name:          t.Name,
		Description:   t.Description,
		TargetValue:   t.Target,
		PointsAwarded: t.Points,
	}
}

func prototypes(templates []Template) []*models.Achievement {
	out := make([]*models.Achievement, len(templates))
	for i, t := range templates {
		out[i] = t.Prototype()
	}
	return out
}
