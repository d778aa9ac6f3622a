// ABOUTME: Tracker materializes per-user achievements and applies unlocks.
// ABOUTME: Computes each metric from storage, runs Evaluate, and saves changed rows.
package achievements

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitness/internal/models"
	"github.com/sirupsen/logrus"
)

// AchievementStore persists per-user achievement rows.
type AchievementStore interface {
	EnsureForUser(ctx context.Context, userID uuid.UUID, protos []*models.Achievement) (int, error)
	ListByUserAndType(ctx context.Context, userID uuid.UUID, typ models.AchievementType) ([]*models.Achievement, error)
	Update(ctx context.Context, a *models.Achievement) error
}

// SessionStats supplies workout metrics.
type SessionStats interface {
	CountCompletedByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ActiveDaysByUser(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}

// PhotoStats supplies photo metrics.
type PhotoStats interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// Result lists the achievements newly unlocked by one check.
type Result struct {
	Unlocked []*models.Achievement
	Points   int
}

// Tracker evaluates achievements for users.
type Tracker struct {
	store     AchievementStore
	sessions  SessionStats
	photos    PhotoStats
	templates []Template
	now       func() time.Time
	log       *logrus.Entry
}

// NewTracker creates a Tracker over the given stores and template catalog.
func NewTracker(store AchievementStore, sessions SessionStats, photos PhotoStats, templates []Template) *Tracker {
	return &Tracker{
		store:     store,
		sessions:  sessions,
		photos:    photos,
		templates: templates,
		now:       time.Now,
		log:       logrus.WithField("component", "achievements"),
	}
}

// Templates returns the catalog the tracker materializes.
func (t *Tracker) Templates() []Template {
	return t.templates
}

// Ensure creates any achievement rows the user is missing.
func (t *Tracker) Ensure(ctx context.Context, userID uuid.UUID) error {
	n, err := t.store.EnsureForUser(ctx, userID, prototypes(t.templates))
	if err != nil {
		return fmt.Errorf("ensure achievements: %w", err)
	}
	if n > 0 {
		t.log.WithField("user", models.ShortID(userID)).Debugf("materialized %d achievements", n)
	}
	return nil
}

// Metric computes the user's current value for typ.
func (t *Tracker) Metric(ctx context.Context, userID uuid.UUID, typ models.AchievementType) (int, error) {
	switch typ {
	case models.WorkoutsCompleted:
		return t.sessions.CountCompletedByUser(ctx, userID)
	case models.PhotosUploaded:
		return t.photos.CountByUser(ctx, userID)
	case models.ConsecutiveDays:
		days, err := t.sessions.ActiveDaysByUser(ctx, userID)
		if err != nil {
			return 0, err
		}
		return Streak(days), nil
	default:
		return 0, fmt.Errorf("unknown achievement type %q", typ)
	}
}

// Check recomputes the metrics for types and persists every achievement
// that crosses its target. Calling it again with unchanged data is a no-op.
func (t *Tracker) Check(ctx context.Context, userID uuid.UUID, types ...models.AchievementType) (*Result, error) {
	if err := t.Ensure(ctx, userID); err != nil {
		return nil, err
	}

	at := t.now().UTC()
	res := &Result{}
	for _, typ := range types {
		value, err := t.Metric(ctx, userID, typ)
		if err != nil {
			return nil, fmt.Errorf("compute %s: %w", typ, err)
		}

		list, err := t.store.ListByUserAndType(ctx, userID, typ)
		if err != nil {
			return nil, fmt.Errorf("list %s achievements: %w", typ, err)
		}

		for _, a := range Evaluate(list, typ, value, at) {
			if err := t.store.Update(ctx, a); err != nil {
				return nil, fmt.Errorf("save achievement %s: %w", a.TemplateKey, err)
			}
			t.log.WithFields(logrus.Fields{
				"user":   models.ShortID(userID),
				"key":    a.TemplateKey,
				"points": a.PointsAwarded,
			}).Info("achievement unlocked")
			res.Unlocked = append(res.Unlocked, a)
		}
	}
	res.Points = Points(res.Unlocked)
	return res, nil
}

// CheckAll runs Check for every achievement type.
func (t *Tracker) CheckAll(ctx context.Context, userID uuid.UUID) (*Result, error) {
	return t.Check(ctx, userID, models.AllAchievementTypes...)
}
