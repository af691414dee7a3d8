package review

import (
	"math"
	"time"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

const (
	MinRating = 1
	MaxRating = 5
	// CorrectThreshold is the lowest rating that counts as a correct answer.
	CorrectThreshold = 3
)

// Outcome is one rated card of a session.
type Outcome struct {
	Card    memorycard.MemoryCard
	Rating  int
	Correct bool
}

type Summary struct {
	UserID     string
	DeckID     string
	CourseID   string
	Reviewed   int
	Correct    int
	Accuracy   int
	TotalDue   int
	Duration   time.Duration
	Outcomes   []Outcome
	FinishedAt time.Time
}

func (summary Summary) FormattedDuration() string {
	return FormatDuration(summary.Duration)
}

// Accuracy returns the rounded percentage of correct reviews, or 0 before any review.
func Accuracy(correct, reviewed int) int {
	if reviewed == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(reviewed) * 100))
}

// IsCorrect maps a 1..5 difficulty rating onto correct or incorrect.
func IsCorrect(rating int) bool {
	return rating >= CorrectThreshold
}
