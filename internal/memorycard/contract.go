package memorycard

import "errors"

// ErrNotFound is matched by backend errors meaning the deck or its cards do not exist.
var ErrNotFound = errors.New("not found")

// DueCardsQuery selects the cards due for review.
type DueCardsQuery struct {
	UserID   string
	DeckID   string
	CourseID string
	Limit    int
}

// DueCards is the due-card set returned by the backend.
type DueCards struct {
	Cards    []MemoryCard
	TotalDue int
}

// CardReview is one difficulty rating submitted for a card.
type CardReview struct {
	UserID           string `json:"userId"`
	DeckID           string `json:"deckId"`
	CardID           string `json:"cardId"`
	DifficultyRating int    `json:"difficultyRating"`
	IsCorrect        bool   `json:"isCorrect"`
}

// NewDeck is the payload to create an empty deck.
type NewDeck struct {
	UserID      string `json:"userId"`
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// GenerateCardsRequest asks the backend to generate a deck of cards for a course.
type GenerateCardsRequest struct {
	UserID          string   `json:"userId"`
	CourseID        string   `json:"courseId"`
	ChapterIDs      []string `json:"chapterIds"`
	DeckTitle       string   `json:"deckTitle"`
	DeckDescription string   `json:"deckDescription"`
}

// GenerateCardsResult is the deck created by a generation request.
type GenerateCardsResult struct {
	Deck           MemoryCardDeck `json:"deck"`
	CardsGenerated int            `json:"cardsGenerated"`
}
