package deck

import (
	"context"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/deck/mock_interfaces.go -package=mock_deck

// Backend is the subset of the memory card API the façade orchestrates.
type Backend interface {
	ListDecks(ctx context.Context, userID string) ([]memorycard.MemoryCardDeck, error)
	GetDeck(ctx context.Context, userID, deckID string) (memorycard.MemoryCardDeck, error)
	CreateDeck(ctx context.Context, deck memorycard.NewDeck) (memorycard.MemoryCardDeck, error)
	DeleteDeck(ctx context.Context, userID, deckID string) error
	AddCard(ctx context.Context, userID string, card memorycard.MemoryCard) (memorycard.MemoryCard, error)
	UpdateCard(ctx context.Context, userID, deckID, cardID string, update memorycard.CardUpdate) (memorycard.MemoryCard, error)
	DeleteCard(ctx context.Context, userID, deckID, cardID string) error
	GenerateCards(ctx context.Context, request memorycard.GenerateCardsRequest) (memorycard.GenerateCardsResult, error)
	DueCards(ctx context.Context, query memorycard.DueCardsQuery) (memorycard.DueCards, error)
}

// Navigator moves the user between the deck list and a deck view.
type Navigator interface {
	ToDeckList(decks []memorycard.MemoryCardDeck)
	ToDeck(deck memorycard.MemoryCardDeck)
}
