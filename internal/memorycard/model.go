// Package memorycard provides the memory card and deck models together with the
// client-side normalization, filtering and sorting applied to backend payloads.
package memorycard

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	DefaultDifficultyLevel = 3
	DefaultProvenance      = "default"
	DefaultReviewInterval  = 24 * time.Hour
)

// MemoryCard is a single flashcard. Timestamps are milliseconds since the Unix epoch.
type MemoryCard struct {
	CardID          string `json:"cardId" yaml:"card_id"`
	DeckID          string `json:"deckId" yaml:"deck_id"`
	Question        string `json:"question" yaml:"question" validate:"required"`
	Answer          string `json:"answer" yaml:"answer" validate:"required"`
	SectionID       string `json:"sectionId,omitempty" yaml:"section_id,omitempty"`
	ChapterID       string `json:"chapterId,omitempty" yaml:"chapter_id,omitempty"`
	DifficultyLevel int    `json:"difficultyLevel,omitempty" yaml:"difficulty_level,omitempty" validate:"omitempty,min=1,max=5"`
	LastReviewed    int64  `json:"lastReviewed,omitempty" yaml:"last_reviewed,omitempty"`
	NextReviewDue   int64  `json:"nextReviewDue,omitempty" yaml:"next_review_due,omitempty"`
	RepetitionCount int    `json:"repetitionCount" yaml:"repetition_count"`
	CorrectCount    int    `json:"correctCount" yaml:"correct_count"`
	IncorrectCount  int    `json:"incorrectCount" yaml:"incorrect_count"`
}

// SuccessRate returns correctCount / repetitionCount, or 0 for a card that was never reviewed.
func (card MemoryCard) SuccessRate() float64 {
	if card.RepetitionCount == 0 {
		return 0
	}
	return float64(card.CorrectCount) / float64(card.RepetitionCount)
}

// LastReviewedAt returns lastReviewed as a time, falling back to fallback when absent.
func (card MemoryCard) LastReviewedAt(fallback time.Time) time.Time {
	if card.LastReviewed == 0 {
		return fallback
	}
	return time.UnixMilli(card.LastReviewed)
}

// Difficulty returns difficultyLevel, falling back to DefaultDifficultyLevel when absent.
func (card MemoryCard) Difficulty() int {
	if card.DifficultyLevel == 0 {
		return DefaultDifficultyLevel
	}
	return card.DifficultyLevel
}

// MemoryCardDeck is a named collection of cards owned by one course.
type MemoryCardDeck struct {
	DeckID         string       `json:"deckId" yaml:"deck_id"`
	CourseID       string       `json:"courseId" yaml:"course_id"`
	Title          string       `json:"title" yaml:"title"`
	Description    string       `json:"description,omitempty" yaml:"description,omitempty"`
	Cards          []MemoryCard `json:"cards" yaml:"cards"`
	TotalReviews   int          `json:"totalReviews" yaml:"total_reviews"`
	CorrectReviews int          `json:"correctReviews" yaml:"correct_reviews"`
}

// deckFields holds every deck field except cards, whose shape is not stable upstream.
type deckFields struct {
	DeckID         string `json:"deckId"`
	CourseID       string `json:"courseId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	TotalReviews   int    `json:"totalReviews"`
	CorrectReviews int    `json:"correctReviews"`
}

// UnmarshalJSON decodes deck metadata and normalizes the cards field with ExtractCards.
// Metadata is read from a nested "data" object when the top level does not carry a deck id.
func (deck *MemoryCardDeck) UnmarshalJSON(data []byte) error {
	var envelope struct {
		deckFields
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("json.Unmarshal(deck) > %w", err)
	}

	fields := envelope.deckFields
	if fields.DeckID == "" && isObject(envelope.Data) {
		var nested deckFields
		if err := json.Unmarshal(envelope.Data, &nested); err == nil {
			fields = nested
		}
	}

	*deck = MemoryCardDeck{
		DeckID:         fields.DeckID,
		CourseID:       fields.CourseID,
		Title:          fields.Title,
		Description:    fields.Description,
		Cards:          ExtractCards(data),
		TotalReviews:   fields.TotalReviews,
		CorrectReviews: fields.CorrectReviews,
	}
	return nil
}

// Accuracy returns the deck-level accuracy as a percentage rounded to an integer.
func (deck MemoryCardDeck) Accuracy() int {
	if deck.TotalReviews == 0 {
		return 0
	}
	return int(math.Round(float64(deck.CorrectReviews) / float64(deck.TotalReviews) * 100))
}

// FindCard returns the card with the given id.
func (deck MemoryCardDeck) FindCard(cardID string) (MemoryCard, bool) {
	for _, card := range deck.Cards {
		if card.CardID == cardID {
			return card, true
		}
	}
	return MemoryCard{}, false
}
