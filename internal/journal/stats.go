package journal

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/at-ishikawa/memocard/internal/review"
)

// MonthlyStats aggregates the sessions finished in one calendar month.
type MonthlyStats struct {
	Month    string        `yaml:"month"`
	Sessions int           `yaml:"sessions"`
	Reviewed int           `yaml:"reviewed"`
	Correct  int           `yaml:"correct"`
	Accuracy int           `yaml:"accuracy"`
	Duration time.Duration `yaml:"duration"`
}

// Aggregate groups sessions by the UTC month they finished in, oldest month first.
func Aggregate(sessions []SessionRecord) []MonthlyStats {
	byMonth := make(map[string]*MonthlyStats)
	for _, session := range sessions {
		month := session.FinishedAt.UTC().Format("2006-01")
		stats, ok := byMonth[month]
		if !ok {
			stats = &MonthlyStats{Month: month}
			byMonth[month] = stats
		}
		stats.Sessions++
		stats.Reviewed += session.Reviewed
		stats.Correct += session.Correct
		stats.Duration += time.Duration(session.DurationSeconds) * time.Second
	}

	result := make([]MonthlyStats, 0, len(byMonth))
	for _, stats := range byMonth {
		stats.Accuracy = review.Accuracy(stats.Correct, stats.Reviewed)
		result = append(result, *stats)
	}
	slices.SortFunc(result, func(a, b MonthlyStats) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return result
}

// Period returns the [from, to) range for a year, or one month of it when month is not 0.
func Period(year, month int) (time.Time, time.Time, error) {
	if year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid year %d", year)
	}
	if month < 0 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %d", month)
	}
	if month == 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0), nil
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}
