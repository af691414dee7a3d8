// Package testutil provides shared test helpers for creating config files and deck fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

// SetupTestConfig creates a minimal config file pointing at baseURL and the output directory
// for testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	outputs := filepath.Join(tmpDir, "outputs")
	require.NoError(t, os.MkdirAll(outputs, 0755))

	configContent := fmt.Sprintf(`api:
  base_url: %s
  timeout_seconds: 5
  max_retry_attempts: 0
user:
  id: test-user
review:
  limit: 20
  retry_delay_milliseconds: 10
generation:
  timeout_seconds: 5
outputs:
  export_directory: %s
`,
		baseURL,
		outputs,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithDatabase creates a config file that also enables the review journal.
func SetupTestConfigWithDatabase(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir, baseURL)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("database:\n  host: 127.0.0.1\n  port: 3306\n  database: memocard_test\n  username: memocard\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CardOption configures optional fields of a card fixture.
type CardOption func(*memorycard.MemoryCard)

// WithPerformance sets the review counters of a card fixture.
func WithPerformance(repetitions, correct int) CardOption {
	return func(card *memorycard.MemoryCard) {
		card.RepetitionCount = repetitions
		card.CorrectCount = correct
		card.IncorrectCount = repetitions - correct
	}
}

func WithDifficulty(level int) CardOption {
	return func(card *memorycard.MemoryCard) {
		card.DifficultyLevel = level
	}
}

// NewCard creates a card fixture whose question and answer are derived from its id.
func NewCard(deckID, cardID string, opts ...CardOption) memorycard.MemoryCard {
	card := memorycard.MemoryCard{
		CardID:   cardID,
		DeckID:   deckID,
		Question: "Q " + cardID,
		Answer:   "A " + cardID,
	}
	for _, opt := range opts {
		opt(&card)
	}
	return card
}

// NewDeck creates a deck fixture holding one card per id.
func NewDeck(deckID string, cardIDs ...string) memorycard.MemoryCardDeck {
	deck := memorycard.MemoryCardDeck{
		DeckID:   deckID,
		CourseID: "course-1",
		Title:    "Deck " + deckID,
		Cards:    make([]memorycard.MemoryCard, 0, len(cardIDs)),
	}
	for _, cardID := range cardIDs {
		deck.Cards = append(deck.Cards, NewCard(deckID, cardID))
	}
	return deck
}
