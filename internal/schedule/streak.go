package schedule

import (
	"sort"
	"time"
)

// Streak summarizes consecutive study days. LastDate is a date key and
// empty when no qualifying sessions exist.
type Streak struct {
	Current  int    `json:"current_streak"`
	Longest  int    `json:"longest_streak"`
	LastDate string `json:"last_study_date"`
}

// ComputeStreak derives current and longest streaks from session start
// times, measured against the given reference date. The current streak
// anchors on the reference day, or the day before it when the most
// recent study day was yesterday; any larger gap breaks the current
// streak entirely. The longest streak scans the whole history and is
// independent of the reference date.
//
// This is the single streak implementation; subject-level and
// account-level streaks both go through here.
func ComputeStreak(startTimes []time.Time, reference time.Time) Streak {
	daySet := make(map[string]bool)
	for _, t := range startTimes {
		if t.IsZero() {
			continue
		}
		daySet[DateKey(t)] = true
	}
	if len(daySet) == 0 {
		return Streak{}
	}

	keys := make([]string, 0, len(daySet))
	for k := range daySet {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	result := Streak{LastDate: keys[0]}

	// Current streak: walk backwards one day at a time from the anchor
	// until a day is missing.
	refDay := startOfDay(reference)
	var anchor time.Time
	switch keys[0] {
	case DateKey(refDay):
		anchor = refDay
	case DateKey(refDay.AddDate(0, 0, -1)):
		anchor = refDay.AddDate(0, 0, -1)
	}
	if !anchor.IsZero() {
		for day := anchor; daySet[DateKey(day)]; day = day.AddDate(0, 0, -1) {
			result.Current++
		}
	}

	// Longest streak: pairwise walk over the descending unique days,
	// closing a run whenever two neighbours are more than one day apart.
	longest, run := 1, 1
	for i := 1; i < len(keys); i++ {
		if DaysBetween(keys[i], keys[i-1]) == 1 {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	result.Longest = longest

	return result
}
