package assistant

import (
	"sort"
	"time"
)

const day = 24 * time.Hour

const (
	// minLeadDays keeps suggested windows at least a week out, so the
	// engine never proposes imminent or already-committed dates.
	minLeadDays = 7
	// minGapDays filters out gaps too short to be a trip.
	minGapDays = 3
)

// DateRange is an occupied date range taken from a joined event.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Title string    `json:"title,omitempty"`
}

// FreePeriod is a contiguous window with no committed events.
type FreePeriod struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	DurationDays int       `json:"duration_days"`
}

// Conflict is a pair of joined events with overlapping date ranges.
type Conflict struct {
	Event1       string    `json:"event1"`
	Event2       string    `json:"event2"`
	OverlapStart time.Time `json:"overlap_start"`
	OverlapEnd   time.Time `json:"overlap_end"`
}

// FindFreePeriods scans the occupied ranges for open travel windows: one
// before the first event if it starts more than minLeadDays out, and one per
// gap between adjacent events wider than minGapDays. Periods shorter than
// minGapDays are discarded. Single pass after an O(n log n) sort.
func FindFreePeriods(occupied []DateRange, now time.Time) []FreePeriod {
	if len(occupied) == 0 {
		return nil
	}

	sorted := make([]DateRange, len(occupied))
	copy(sorted, occupied)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var periods []FreePeriod

	lead := now.Add(minLeadDays * day)
	if sorted[0].Start.After(lead) {
		periods = append(periods, FreePeriod{
			Start:        lead,
			End:          sorted[0].Start.Add(-day),
			DurationDays: wholeDays(sorted[0].Start.Sub(lead)),
		})
	}

	for i := 0; i < len(sorted)-1; i++ {
		currentEnd := sorted[i].End
		nextStart := sorted[i+1].Start
		if nextStart.After(currentEnd.Add(minGapDays * day)) {
			periods = append(periods, FreePeriod{
				Start:        currentEnd.Add(day),
				End:          nextStart.Add(-day),
				DurationDays: wholeDays(nextStart.Sub(currentEnd) - day),
			})
		}
	}

	kept := periods[:0]
	for _, p := range periods {
		if p.DurationDays >= minGapDays {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// findConflicts flags every unordered pair of ranges that overlap. The test
// is inclusive on both ends: back-to-back trips sharing a day conflict.
func findConflicts(events []DateRange) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			if a.Start.After(b.End) || b.Start.After(a.End) {
				continue
			}
			conflicts = append(conflicts, Conflict{
				Event1:       a.Title,
				Event2:       b.Title,
				OverlapStart: laterOf(a.Start, b.Start),
				OverlapEnd:   earlierOf(a.End, b.End),
			})
		}
	}
	return conflicts
}

func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
