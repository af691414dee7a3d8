package memorycard

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

type SortMode string

const (
	SortByCreated     SortMode = "created"
	SortByDifficulty  SortMode = "difficulty"
	SortByPerformance SortMode = "performance"
)

// SortModes lists the supported modes in the order they are presented to users.
var SortModes = []SortMode{SortByCreated, SortByDifficulty, SortByPerformance}

// ParseSortMode validates a user supplied sort mode.
func ParseSortMode(s string) (SortMode, error) {
	for _, mode := range SortModes {
		if string(mode) == s {
			return mode, nil
		}
	}
	return "", fmt.Errorf("invalid sort mode %q, valid values are %q, %q or %q", s, SortByCreated, SortByDifficulty, SortByPerformance)
}

// FilterCards keeps the cards whose question or answer contains term, ignoring case.
// The term is matched as given, spaces included. An empty term keeps every card.
func FilterCards(cards []MemoryCard, term string) []MemoryCard {
	needle := strings.ToLower(term)
	result := make([]MemoryCard, 0, len(cards))
	for _, card := range cards {
		if needle == "" ||
			strings.Contains(strings.ToLower(card.Question), needle) ||
			strings.Contains(strings.ToLower(card.Answer), needle) {
			result = append(result, card)
		}
	}
	return result
}

// SortCards returns a sorted copy of cards. The sort is stable in every mode.
//
//   - created: most recently reviewed first; a missing lastReviewed counts as now
//   - difficulty: hardest first; a missing difficultyLevel counts as 3
//   - performance: lowest success rate first; never reviewed cards come before any reviewed card
func SortCards(cards []MemoryCard, mode SortMode, now time.Time) []MemoryCard {
	sorted := slices.Clone(cards)
	if sorted == nil {
		sorted = []MemoryCard{}
	}

	switch mode {
	case SortByCreated:
		slices.SortStableFunc(sorted, func(a, b MemoryCard) int {
			return b.LastReviewedAt(now).Compare(a.LastReviewedAt(now))
		})
	case SortByDifficulty:
		slices.SortStableFunc(sorted, func(a, b MemoryCard) int {
			return cmp.Compare(b.Difficulty(), a.Difficulty())
		})
	case SortByPerformance:
		slices.SortStableFunc(sorted, comparePerformance)
	}
	return sorted
}

func comparePerformance(a, b MemoryCard) int {
	switch {
	case a.RepetitionCount == 0 && b.RepetitionCount == 0:
		return 0
	case a.RepetitionCount == 0:
		return -1
	case b.RepetitionCount == 0:
		return 1
	}
	return cmp.Compare(a.SuccessRate(), b.SuccessRate())
}
