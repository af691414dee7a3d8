package deck

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

const dueCountConcurrency = 4

// Search filters cards by term and orders them by mode.
func Search(cards []memorycard.MemoryCard, term string, mode memorycard.SortMode, now time.Time) []memorycard.MemoryCard {
	return memorycard.SortCards(memorycard.FilterCards(cards, term), mode, now)
}

// SearchCurrent runs Search over the open deck. It returns nothing when no deck is open.
func (m *Manager) SearchCurrent(term string, mode memorycard.SortMode) []memorycard.MemoryCard {
	current, ok := m.Current()
	if !ok {
		return []memorycard.MemoryCard{}
	}
	return Search(current.Cards, term, mode, m.now())
}

// DueCounts returns the number of due cards per deck id. Decks that no longer exist
// count as zero.
func (m *Manager) DueCounts(ctx context.Context, decks []memorycard.MemoryCardDeck) (map[string]int, error) {
	if err := m.requireUser(); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	counts := make(map[string]int, len(decks))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(dueCountConcurrency)
	for _, deck := range decks {
		eg.Go(func() error {
			due, err := m.backend.DueCards(ctx, memorycard.DueCardsQuery{
				UserID: m.userID,
				DeckID: deck.DeckID,
				Limit:  m.dueLimit,
			})
			if errors.Is(err, memorycard.ErrNotFound) {
				slog.Default().Debug("deck not found while counting due cards",
					slog.String("deckId", deck.DeckID),
				)
				err = nil
			}
			if err != nil {
				return err
			}

			mu.Lock()
			counts[deck.DeckID] = due.TotalDue
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, m.fail(backendError("count due cards", err))
	}
	return counts, nil
}
