package review

import (
	"context"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/review/mock_interfaces.go -package=mock_review

// DueCardProvider returns the cards due for review.
type DueCardProvider interface {
	DueCards(ctx context.Context, query memorycard.DueCardsQuery) (memorycard.DueCards, error)
}

// ReviewSink accepts a difficulty rating for a card.
type ReviewSink interface {
	SubmitReview(ctx context.Context, review memorycard.CardReview) error
}

// Notifier shows messages to the learner.
type Notifier interface {
	Notify(notification Notification)
}

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level
	Message string
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}
