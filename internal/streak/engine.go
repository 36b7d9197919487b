// Package streak recomputes the derived progress fields of a savings
// streak from its full entry history. Recompute is a pure function of
// (frequency, stored longest streak, entries, now) and carries no state,
// so the streak service can call it inside a transaction and tests can
// exercise it without a database.
package streak

import (
	"sort"
	"time"

	"stash/internal/models"
)

// Expected maximum gap in whole days between consecutive saves, per cadence.
const (
	gapDaily   = 1
	gapWeekly  = 7
	gapMonthly = 30
)

// Progress holds the derived fields of a savings streak. Amounts are in
// cents; summing int64 keeps totals exact across repeated recomputation.
type Progress struct {
	TotalSaved    int64
	CurrentStreak int
	LongestStreak int
	LastSaveDate  *time.Time
}

// ExpectedGapDays returns the maximum allowed whole-day gap for a cadence.
// Unknown frequencies fall back to daily, the strictest window.
func ExpectedGapDays(frequency models.StreakFrequency) int {
	switch frequency {
	case models.StreakFrequencyWeekly:
		return gapWeekly
	case models.StreakFrequencyMonthly:
		return gapMonthly
	default:
		return gapDaily
	}
}

// Recompute derives TotalSaved, CurrentStreak, LongestStreak, and
// LastSaveDate from the complete entry history of a streak.
//
// Entries are walked most-recent-first from a cursor starting at now.
// An entry extends the current streak when the whole-day gap between the
// cursor and its save date is within the cadence window; the cursor then
// moves to (save date - window) and the walk continues. The first entry
// outside the window breaks the streak and ends the walk.
//
// LongestStreak only ratchets: it is max(CurrentStreak, storedLongest),
// never a rescan of history, so it is monotonically non-decreasing
// across any sequence of entry additions.
func Recompute(frequency models.StreakFrequency, storedLongest int, entries []models.StreakEntry, now time.Time) Progress {
	progress := Progress{LongestStreak: storedLongest}

	for _, entry := range entries {
		progress.TotalSaved += entry.Amount
	}

	if len(entries) == 0 {
		return progress
	}

	sorted := make([]models.StreakEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SaveDate.After(sorted[j].SaveDate)
	})

	last := sorted[0].SaveDate
	progress.LastSaveDate = &last

	gap := ExpectedGapDays(frequency)
	cursor := dateOnly(now)
	for _, entry := range sorted {
		saved := dateOnly(entry.SaveDate)
		if wholeDays(saved, cursor) > gap {
			break
		}
		progress.CurrentStreak++
		cursor = saved.AddDate(0, 0, -gap)
	}

	if progress.CurrentStreak > progress.LongestStreak {
		progress.LongestStreak = progress.CurrentStreak
	}

	return progress
}

// dateOnly truncates a timestamp to its UTC calendar day.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// wholeDays returns the number of whole days from earlier to later.
// Both arguments must already be day-truncated.
func wholeDays(earlier, later time.Time) int {
	return int(later.Sub(earlier) / (24 * time.Hour))
}
