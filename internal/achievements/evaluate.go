// ABOUTME: Pure unlock rule and streak computation.
// ABOUTME: No I/O; the caller supplies metrics and persists the result.
package achievements

import (
	"sort"
	"time"

	"github.com/harperreed/fitness/internal/models"
)

// Evaluate unlocks, at time at, every locked achievement in list of type typ
// whose target is at most value. It returns the achievements it unlocked.
// Already-unlocked entries are never modified.
func Evaluate(list []*models.Achievement, typ models.AchievementType, value int, at time.Time) []*models.Achievement {
	var unlocked []*models.Achievement
	for _, a := range list {
		if a == nil || a.Type != typ || a.Unlocked {
			continue
		}
		if value >= a.TargetValue && a.Unlock(at) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// Points sums the points awarded by list.
func Points(list []*models.Achievement) int {
	total := 0
	for _, a := range list {
		total += a.PointsAwarded
	}
	return total
}

// Streak returns the length of the run of consecutive UTC days ending at the
// most recent day in days. Order and duplicates do not matter.
func Streak(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	uniq := make(map[time.Time]bool, len(days))
	var sorted []time.Time
	for _, d := range days {
		d = models.DateOf(d)
		if !uniq[d] {
			uniq[d] = true
			sorted = append(sorted, d)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	streak := 1
	for i := 1; i < len(sorted); i++ {
		if !sorted[i].Equal(sorted[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}
