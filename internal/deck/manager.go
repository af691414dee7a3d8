// Package deck orchestrates deck and card management on top of the memory card backend.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/memocard/internal/memorycard"
	"github.com/at-ishikawa/memocard/internal/review"
)

// ResultSimple tags a deck created empty, as opposed to a generated one.
const ResultSimple = "simple"

type CreateResult struct {
	Deck memorycard.MemoryCardDeck
	Kind string
}

type GenerateOptions struct {
	CourseID        string
	ChapterIDs      []string
	DeckTitle       string
	DeckDescription string
}

type Manager struct {
	backend   Backend
	userID    string
	notifier  review.Notifier
	navigator Navigator
	validate  *validator.Validate
	now       func() time.Time
	dueLimit  int

	mu      sync.Mutex
	decks   []memorycard.MemoryCardDeck
	current *memorycard.MemoryCardDeck
	err     *review.Error
}

type Option func(*Manager)

func WithNow(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithDueLimit sets how many due cards DueCounts asks for per deck. Backends that omit
// totalDue are counted from the returned cards, so the count never exceeds this limit.
func WithDueLimit(limit int) Option {
	return func(m *Manager) {
		if limit > 0 {
			m.dueLimit = limit
		}
	}
}

func NewManager(backend Backend, userID string, notifier review.Notifier, navigator Navigator, options ...Option) *Manager {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if navigator == nil {
		navigator = nopNavigator{}
	}
	m := &Manager{
		backend:   backend,
		userID:    userID,
		notifier:  notifier,
		navigator: navigator,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       time.Now,
		dueLimit:  review.DefaultLimit,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Manager) Decks() []memorycard.MemoryCardDeck {
	m.mu.Lock()
	defer m.mu.Unlock()
	decks := make([]memorycard.MemoryCardDeck, len(m.decks))
	copy(decks, m.decks)
	return decks
}

// Current returns the open deck, if any.
func (m *Manager) Current() (memorycard.MemoryCardDeck, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return memorycard.MemoryCardDeck{}, false
	}
	return *m.current, true
}

// Err returns the last reported failure.
func (m *Manager) Err() *review.Error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Manager) fail(err *review.Error, attrs ...any) error {
	attrs = append(attrs, slog.String("userId", m.userID), slog.Any("error", err.Err))
	if err.Kind == review.KindValidation {
		slog.Default().Warn(err.Message, attrs...)
	} else {
		slog.Default().Error(err.Message, attrs...)
	}

	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
	m.notifier.Notify(review.Notification{Level: review.LevelError, Message: err.Message})
	return err
}

func (m *Manager) succeed(message string) {
	m.mu.Lock()
	m.err = nil
	m.mu.Unlock()
	m.notifier.Notify(review.Notification{Level: review.LevelSuccess, Message: message})
}

func (m *Manager) requireUser() error {
	if m.userID == "" {
		return m.fail(validationError(review.ErrUserRequired))
	}
	return nil
}

// LoadDecks fetches the user's decks.
func (m *Manager) LoadDecks(ctx context.Context) ([]memorycard.MemoryCardDeck, error) {
	if err := m.requireUser(); err != nil {
		return nil, err
	}
	decks, err := m.backend.ListDecks(ctx, m.userID)
	if err != nil {
		return nil, m.fail(backendError("load decks", err))
	}

	m.mu.Lock()
	m.decks = decks
	m.mu.Unlock()
	return decks, nil
}

// OpenDeck loads a deck and navigates to it.
func (m *Manager) OpenDeck(ctx context.Context, deckID string) (memorycard.MemoryCardDeck, error) {
	if err := m.requireUser(); err != nil {
		return memorycard.MemoryCardDeck{}, err
	}
	if deckID == "" {
		return memorycard.MemoryCardDeck{}, m.fail(validationError(ErrDeckRequired))
	}
	deck, err := m.reloadDeck(ctx, deckID)
	if err != nil {
		return memorycard.MemoryCardDeck{}, err
	}
	m.navigator.ToDeck(deck)
	return deck, nil
}

func (m *Manager) reloadDeck(ctx context.Context, deckID string) (memorycard.MemoryCardDeck, error) {
	deck, err := m.backend.GetDeck(ctx, m.userID, deckID)
	if err != nil {
		return memorycard.MemoryCardDeck{}, m.fail(backendError("load the deck", err), slog.String("deckId", deckID))
	}

	m.mu.Lock()
	m.current = &deck
	m.mu.Unlock()
	return deck, nil
}

// reloadCurrent refetches the open deck when it is deckID. Failures are reported
// through the notifier only since the mutation itself succeeded.
func (m *Manager) reloadCurrent(ctx context.Context, deckID string) {
	current, ok := m.Current()
	if !ok || current.DeckID != deckID {
		return
	}
	_, _ = m.reloadDeck(ctx, deckID)
}

func (m *Manager) CreateDeck(ctx context.Context, courseID, title, description string) (CreateResult, error) {
	if err := m.requireUser(); err != nil {
		return CreateResult{}, err
	}
	if strings.TrimSpace(courseID) == "" {
		return CreateResult{}, m.fail(validationError(ErrCourseRequired))
	}
	if strings.TrimSpace(title) == "" {
		return CreateResult{}, m.fail(validationError(ErrTitleRequired))
	}

	created, err := m.backend.CreateDeck(ctx, memorycard.NewDeck{
		UserID:      m.userID,
		CourseID:    courseID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return CreateResult{}, m.fail(backendError("create the deck", err), slog.String("courseId", courseID))
	}

	_, _ = m.LoadDecks(ctx)
	m.succeed(fmt.Sprintf("Deck %q created", created.Title))
	return CreateResult{Deck: created, Kind: ResultSimple}, nil
}

// DeleteDeck removes a deck with all of its cards and returns to the deck list.
func (m *Manager) DeleteDeck(ctx context.Context, deckID string) error {
	if err := m.requireUser(); err != nil {
		return err
	}
	if deckID == "" {
		return m.fail(validationError(ErrDeckRequired))
	}

	if err := m.backend.DeleteDeck(ctx, m.userID, deckID); err != nil {
		return m.fail(backendError("delete the deck", err), slog.String("deckId", deckID))
	}

	m.mu.Lock()
	if m.current != nil && m.current.DeckID == deckID {
		m.current = nil
	}
	m.mu.Unlock()

	_, _ = m.LoadDecks(ctx)
	m.succeed("Deck deleted")
	m.navigator.ToDeckList(m.Decks())
	return nil
}

// AddCard validates and defaults a new card, then refetches the deck so the server's
// ordering is what callers see.
func (m *Manager) AddCard(ctx context.Context, deckID string, card memorycard.MemoryCard) (memorycard.MemoryCard, error) {
	if err := m.requireUser(); err != nil {
		return memorycard.MemoryCard{}, err
	}
	if deckID == "" {
		deckID = card.DeckID
	}
	if deckID == "" {
		return memorycard.MemoryCard{}, m.fail(validationError(ErrDeckRequired))
	}

	card.Question = strings.TrimSpace(card.Question)
	card.Answer = strings.TrimSpace(card.Answer)
	if err := m.validateCard(card); err != nil {
		return memorycard.MemoryCard{}, m.fail(validationError(err), slog.String("deckId", deckID))
	}

	card = memorycard.ValidateCardData(card, m.now())
	card.DeckID = deckID
	created, err := m.backend.AddCard(ctx, m.userID, card)
	if err != nil {
		return memorycard.MemoryCard{}, m.fail(backendError("add the card", err), slog.String("deckId", deckID))
	}

	if _, err := m.reloadDeck(ctx, deckID); err == nil {
		m.succeed("Card added")
	}
	return created, nil
}

func (m *Manager) validateCard(card memorycard.MemoryCard) error {
	err := m.validate.Struct(card)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("validate.Struct() > %w", err)
	}

	switch fieldErrors[0].StructField() {
	case "Question":
		return ErrQuestionRequired
	case "Answer":
		return ErrAnswerRequired
	}
	return fmt.Errorf("%w: %s failed on %s", ErrInvalidCard, fieldErrors[0].Field(), fieldErrors[0].Tag())
}

// UpdateCard sends only the supplied fields plus review timestamp defaults.
func (m *Manager) UpdateCard(ctx context.Context, deckID, cardID string, update memorycard.CardUpdate) (memorycard.MemoryCard, error) {
	if err := m.requireUser(); err != nil {
		return memorycard.MemoryCard{}, err
	}
	if invalid := validateUpdate(deckID, cardID, update); invalid != nil {
		return memorycard.MemoryCard{}, m.fail(validationError(invalid), slog.String("deckId", deckID), slog.String("cardId", cardID))
	}

	updated, err := m.backend.UpdateCard(ctx, m.userID, deckID, cardID, update.WithTimestampDefaults(m.now()))
	if err != nil {
		return memorycard.MemoryCard{}, m.fail(backendError("update the card", err), slog.String("deckId", deckID), slog.String("cardId", cardID))
	}

	m.reloadCurrent(ctx, deckID)
	m.succeed("Card updated")
	return updated, nil
}

func validateUpdate(deckID, cardID string, update memorycard.CardUpdate) error {
	switch {
	case deckID == "":
		return ErrDeckRequired
	case cardID == "":
		return ErrCardRequired
	case update.IsEmpty():
		return ErrNoChanges
	case update.Question != nil && strings.TrimSpace(*update.Question) == "":
		return ErrQuestionRequired
	case update.Answer != nil && strings.TrimSpace(*update.Answer) == "":
		return ErrAnswerRequired
	case update.DifficultyLevel != nil && (*update.DifficultyLevel < review.MinRating || *update.DifficultyLevel > review.MaxRating):
		return fmt.Errorf("%w: difficulty level must be between 1 and 5", ErrInvalidCard)
	}
	return nil
}

func (m *Manager) DeleteCard(ctx context.Context, deckID, cardID string) error {
	if err := m.requireUser(); err != nil {
		return err
	}
	if deckID == "" {
		return m.fail(validationError(ErrDeckRequired))
	}
	if cardID == "" {
		return m.fail(validationError(ErrCardRequired))
	}

	if err := m.backend.DeleteCard(ctx, m.userID, deckID, cardID); err != nil {
		return m.fail(backendError("delete the card", err), slog.String("deckId", deckID), slog.String("cardId", cardID))
	}

	m.reloadCurrent(ctx, deckID)
	m.succeed("Card deleted")
	return nil
}

// GenerateCards asks the backend to build a deck from course chapters.
func (m *Manager) GenerateCards(ctx context.Context, options GenerateOptions) (memorycard.GenerateCardsResult, error) {
	if err := m.requireUser(); err != nil {
		return memorycard.GenerateCardsResult{}, err
	}
	courseID := strings.TrimSpace(options.CourseID)
	if courseID == "" {
		return memorycard.GenerateCardsResult{}, m.fail(validationError(ErrCourseRequired))
	}
	chapterIDs := make([]string, 0, len(options.ChapterIDs))
	for _, chapterID := range options.ChapterIDs {
		if chapterID = strings.TrimSpace(chapterID); chapterID != "" {
			chapterIDs = append(chapterIDs, chapterID)
		}
	}
	if len(chapterIDs) == 0 {
		return memorycard.GenerateCardsResult{}, m.fail(validationError(ErrChaptersRequired), slog.String("courseId", courseID))
	}

	title := strings.TrimSpace(options.DeckTitle)
	if title == "" {
		title = fmt.Sprintf("%s flashcards", courseID)
	}
	description := strings.TrimSpace(options.DeckDescription)
	if description == "" {
		description = fmt.Sprintf("Generated from %d chapter(s) of %s", len(chapterIDs), courseID)
	}

	result, err := m.backend.GenerateCards(ctx, memorycard.GenerateCardsRequest{
		UserID:          m.userID,
		CourseID:        courseID,
		ChapterIDs:      chapterIDs,
		DeckTitle:       title,
		DeckDescription: description,
	})
	if err != nil {
		return memorycard.GenerateCardsResult{}, m.fail(generationError(err), slog.String("courseId", courseID))
	}

	_, _ = m.LoadDecks(ctx)
	if current, ok := m.Current(); ok {
		m.reloadCurrent(ctx, current.DeckID)
	}
	m.succeed(fmt.Sprintf("Generated %d cards", result.CardsGenerated))
	return result, nil
}

type nopNotifier struct{}

func (nopNotifier) Notify(review.Notification) {}

type nopNavigator struct{}

func (nopNavigator) ToDeckList([]memorycard.MemoryCardDeck) {}
func (nopNavigator) ToDeck(memorycard.MemoryCardDeck)       {}
