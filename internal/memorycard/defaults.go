package memorycard

import (
	"strings"
	"time"
)

// ValidateCardData fills the fields a new card may omit.
// Empty provenance links become "default", a missing difficulty becomes 3, and missing
// review timestamps become now and now + 24h. Counters are left as given.
func ValidateCardData(card MemoryCard, now time.Time) MemoryCard {
	if strings.TrimSpace(card.SectionID) == "" {
		card.SectionID = DefaultProvenance
	}
	if strings.TrimSpace(card.ChapterID) == "" {
		card.ChapterID = DefaultProvenance
	}
	if card.DifficultyLevel == 0 {
		card.DifficultyLevel = DefaultDifficultyLevel
	}
	if card.LastReviewed == 0 {
		card.LastReviewed = now.UnixMilli()
	}
	if card.NextReviewDue == 0 {
		card.NextReviewDue = now.Add(DefaultReviewInterval).UnixMilli()
	}
	if card.RepetitionCount < 0 {
		card.RepetitionCount = 0
	}
	if card.CorrectCount < 0 {
		card.CorrectCount = 0
	}
	if card.IncorrectCount < 0 {
		card.IncorrectCount = 0
	}
	return card
}

// CardUpdate carries the fields of a partial card update. Nil fields are left untouched
// on the server.
type CardUpdate struct {
	Question        *string `json:"question,omitempty"`
	Answer          *string `json:"answer,omitempty"`
	SectionID       *string `json:"sectionId,omitempty"`
	ChapterID       *string `json:"chapterId,omitempty"`
	DifficultyLevel *int    `json:"difficultyLevel,omitempty"`
	LastReviewed    *int64  `json:"lastReviewed,omitempty"`
	NextReviewDue   *int64  `json:"nextReviewDue,omitempty"`
}

// IsEmpty reports whether no field is set.
func (update CardUpdate) IsEmpty() bool {
	return update.Question == nil &&
		update.Answer == nil &&
		update.SectionID == nil &&
		update.ChapterID == nil &&
		update.DifficultyLevel == nil &&
		update.LastReviewed == nil &&
		update.NextReviewDue == nil
}

// WithTimestampDefaults sets lastReviewed and nextReviewDue when the caller omitted them.
func (update CardUpdate) WithTimestampDefaults(now time.Time) CardUpdate {
	if update.LastReviewed == nil {
		lastReviewed := now.UnixMilli()
		update.LastReviewed = &lastReviewed
	}
	if update.NextReviewDue == nil {
		nextReviewDue := now.Add(DefaultReviewInterval).UnixMilli()
		update.NextReviewDue = &nextReviewDue
	}
	return update
}

// Apply merges the update into card and returns the result.
func (update CardUpdate) Apply(card MemoryCard) MemoryCard {
	if update.Question != nil {
		card.Question = *update.Question
	}
	if update.Answer != nil {
		card.Answer = *update.Answer
	}
	if update.SectionID != nil {
		card.SectionID = *update.SectionID
	}
	if update.ChapterID != nil {
		card.ChapterID = *update.ChapterID
	}
	if update.DifficultyLevel != nil {
		card.DifficultyLevel = *update.DifficultyLevel
	}
	if update.LastReviewed != nil {
		card.LastReviewed = *update.LastReviewed
	}
	if update.NextReviewDue != nil {
		card.NextReviewDue = *update.NextReviewDue
	}
	return card
}
