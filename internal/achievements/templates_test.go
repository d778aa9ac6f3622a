// ABOUTME: Tests for the achievement template catalog.
// ABOUTME: Checks the embedded YAML and parser validation.
package achievements

import (
	"testing"

	"github.com/harperreed/fitness/internal/models"
)

func TestDefaultTemplates(t *testing.T) {
	templates := DefaultTemplates()
	if len(templates) == 0 {
		t.Fatal("expected a non-empty catalog")
	}

	byType := map[models.AchievementType]int{}
	for _, tmpl := range templates {
		byType[tmpl.Type]++
	}
	for _, typ := range models.AllAchievementTypes {
		if byType[typ] == 0 {
			t.Errorf("no templates for %s", typ)
		}
	}
}

func TestParseTemplatesRejectsBadInput(t *testing.T) {
	tests := map[string]string{
		"missing key":    "- {type: photos_uploaded, name: x, target: 1}",
		"duplicate key":  "- {key: a, type: photos_uploaded, target: 1}\n- {key: a, type: photos_uploaded, target: 2}",
		"unknown type":   "- {key: a, type: steps, target: 1}",
		"zero target":    "- {key: a, type: photos_uploaded, target: 0}",
		"not a sequence": "key: a",
	}
	for name, input := range tests {
		if _, err := ParseTemplates([]byte(input)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPrototype(t *testing.T) {
	tmpl := Template{Key: "k", Type: models.ConsecutiveDays, Name: "N", Target: 3, Points: 15}
	p := tmpl.Prototype()
	if p.TemplateKey != "k" || p.TargetValue != 3 || p.PointsAwarded != 15 || p.Unlocked {
		t.Errorf("unexpected prototype %+v", p)
	}
}
