// Package review runs a spaced-repetition review session over the cards a backend reports as due.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

const (
	DefaultLimit        = 20
	DefaultRetryDelay   = 2500 * time.Millisecond
	DefaultTickInterval = time.Second
)

type State string

const (
	StateNotReady      State = "not_ready"
	StateAwaitingFetch State = "awaiting_fetch"
	StatePresenting    State = "presenting"
	StateFlipped       State = "flipped"
	StateSubmitting    State = "submitting"
	StateComplete      State = "complete"
	StateEmpty         State = "empty"
	StateError         State = "error"
	StateFinished      State = "finished"
)

type Options struct {
	UserID   string
	DeckID   string
	CourseID string
	Limit    int
	// RetryDelay is how long to wait before the single re-fetch of an empty deck.
	RetryDelay   time.Duration
	TickInterval time.Duration
	// OnTick receives the running session time while cards are presented. It runs on
	// the timer goroutine and must not call back into the engine.
	OnTick func(elapsed time.Duration)

	Now       func() time.Time
	AfterFunc func(d time.Duration, f func()) (stop func() bool)
}

func (options Options) withDefaults() Options {
	if options.Limit <= 0 {
		options.Limit = DefaultLimit
	}
	if options.RetryDelay <= 0 {
		options.RetryDelay = DefaultRetryDelay
	}
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.AfterFunc == nil {
		options.AfterFunc = func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		}
	}
	return options
}

func (options Options) query() memorycard.DueCardsQuery {
	return memorycard.DueCardsQuery{
		UserID:   options.UserID,
		DeckID:   options.DeckID,
		CourseID: options.CourseID,
		Limit:    options.Limit,
	}
}

// Snapshot is a consistent copy of the engine's observable state.
type Snapshot struct {
	State        State
	Card         *memorycard.MemoryCard
	Index        int
	Total        int
	TotalDue     int
	Reviewed     int
	Correct      int
	Accuracy     int
	Duration     time.Duration
	RetryPending bool
	Err          *Error
}

func (snapshot Snapshot) FormattedDuration() string {
	return FormatDuration(snapshot.Duration)
}

// Engine is the review state machine. All methods are safe for concurrent use;
// network calls run without holding the lock and their results are dropped when
// the session moved on in the meantime.
type Engine struct {
	provider DueCardProvider
	sink     ReviewSink
	notifier Notifier
	options  Options

	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	state        State
	cards        []memorycard.MemoryCard
	index        int
	totalDue     int
	outcomes     []Outcome
	correct      int
	err          *Error
	timer        *sessionTimer
	retryStop    func() bool
	retryPending bool
	generation   uint64
	settled      chan struct{}
	isSettled    bool
	closed       bool
	pending      []Notification
}

func NewEngine(provider DueCardProvider, sink ReviewSink, options Options, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	settled := make(chan struct{})
	close(settled)
	return &Engine{
		provider:  provider,
		sink:      sink,
		notifier:  notifier,
		options:   options.withDefaults(),
		ctx:       ctx,
		cancel:    cancel,
		state:     StateAwaitingFetch,
		settled:   settled,
		isSettled: true,
	}
}

// Start loads the due cards. When a deck is given and nothing comes back, one delayed
// re-fetch is scheduled unless the backend said the deck does not exist; use Wait to
// block until it settles.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrFinished
	}
	if e.options.UserID == "" {
		e.state = StateNotReady
		e.err = validationError(ErrUserRequired)
		e.queue(LevelWarning, e.err.Message)
		err := e.err
		e.unlockAndNotify()
		return err
	}
	generation := e.beginFetchLocked()
	e.mu.Unlock()

	return e.fetch(ctx, generation, false)
}

// Wait blocks until the current fetch, including a scheduled retry, has settled.
func (e *Engine) Wait(ctx context.Context) error {
	e.mu.Lock()
	settled := e.settled
	e.mu.Unlock()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) beginFetchLocked() uint64 {
	e.generation++
	e.stopRetryLocked()
	e.settleLocked()
	e.settled = make(chan struct{})
	e.isSettled = false
	e.state = StateAwaitingFetch
	e.err = nil
	return e.generation
}

func (e *Engine) fetch(ctx context.Context, generation uint64, retried bool) error {
	result, fetchErr := e.provider.DueCards(ctx, e.options.query())

	e.mu.Lock()
	if generation != e.generation || e.closed {
		e.mu.Unlock()
		return nil
	}

	if fetchErr == nil && len(result.Cards) > 0 {
		e.startSessionLocked(result)
		e.settleLocked()
		e.unlockAndNotify()
		return nil
	}

	var classified *Error
	if fetchErr != nil {
		classified = classifyFetchError(fetchErr)
		slog.Default().Error("failed to fetch due cards",
			slog.String("userId", e.options.UserID),
			slog.String("deckId", e.options.DeckID),
			slog.String("kind", string(classified.Kind)),
			slog.Any("error", fetchErr),
		)
	}

	if !retried && e.options.DeckID != "" && (classified == nil || classified.Kind != KindNotFound) {
		e.scheduleRetryLocked(generation)
		e.mu.Unlock()
		return nil
	}

	e.settleLocked()
	if classified != nil {
		e.state = StateError
		e.err = classified
		e.queue(LevelError, classified.Message)
		e.unlockAndNotify()
		return classified
	}

	e.state = StateEmpty
	e.totalDue = result.TotalDue
	e.queue(LevelInfo, "No cards are due for review")
	e.unlockAndNotify()
	return nil
}

func (e *Engine) scheduleRetryLocked(generation uint64) {
	slog.Default().Info("no due cards yet, scheduling a retry",
		slog.String("deckId", e.options.DeckID),
		slog.Duration("delay", e.options.RetryDelay),
	)
	e.retryPending = true
	e.retryStop = e.options.AfterFunc(e.options.RetryDelay, func() {
		e.mu.Lock()
		if generation != e.generation || e.closed {
			e.mu.Unlock()
			return
		}
		e.retryPending = false
		e.retryStop = nil
		e.mu.Unlock()

		_ = e.fetch(e.ctx, generation, true)
	})
}

func (e *Engine) stopRetryLocked() {
	if e.retryStop != nil {
		e.retryStop()
		e.retryStop = nil
	}
	e.retryPending = false
}

func (e *Engine) settleLocked() {
	if !e.isSettled {
		close(e.settled)
		e.isSettled = true
	}
}

func (e *Engine) startSessionLocked(result memorycard.DueCards) {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.cards = result.Cards
	e.totalDue = result.TotalDue
	e.index = 0
	e.outcomes = nil
	e.correct = 0
	e.err = nil
	e.state = StatePresenting
	e.timer = startSessionTimer(e.options.Now, e.options.TickInterval, e.options.OnTick)
	slog.Default().Debug("review session started",
		slog.String("userId", e.options.UserID),
		slog.Int("cards", len(e.cards)),
		slog.Int("totalDue", e.totalDue),
	)
}

// Flip reveals the answer of the current card.
func (e *Engine) Flip() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StatePresenting:
		e.state = StateFlipped
		e.err = nil
		return nil
	case StateFlipped:
		return nil
	case StateSubmitting:
		return validationError(ErrBusy)
	default:
		return validationError(ErrNoCurrentCard)
	}
}

// Rate submits a 1..5 difficulty rating for the flipped card and advances on success.
// On failure the session stays on the same card so the learner can rate again.
func (e *Engine) Rate(ctx context.Context, rating int) error {
	e.mu.Lock()
	review, card, invalid := e.validateRatingLocked(rating)
	if invalid != nil {
		e.err = invalid
		e.queue(LevelWarning, invalid.Message)
		e.unlockAndNotify()
		return invalid
	}
	e.state = StateSubmitting
	e.err = nil
	generation := e.generation
	e.mu.Unlock()

	submitErr := e.sink.SubmitReview(ctx, review)

	e.mu.Lock()
	if generation != e.generation || e.closed {
		e.mu.Unlock()
		return ErrFinished
	}
	if submitErr != nil {
		slog.Default().Error("failed to submit review",
			slog.String("cardId", review.CardID),
			slog.String("deckId", review.DeckID),
			slog.Int("rating", rating),
			slog.Any("error", submitErr),
		)
		e.state = StateFlipped
		e.err = submissionError(submitErr)
		e.queue(LevelError, e.err.Message)
		err := e.err
		e.unlockAndNotify()
		return err
	}

	e.outcomes = append(e.outcomes, Outcome{Card: card, Rating: rating, Correct: review.IsCorrect})
	if review.IsCorrect {
		e.correct++
	}
	e.index++
	if e.index < len(e.cards) {
		e.state = StatePresenting
		e.mu.Unlock()
		return nil
	}

	e.state = StateComplete
	e.timer.Stop()
	e.queue(LevelSuccess, fmt.Sprintf("Review complete: %d of %d correct (%d%%)",
		e.correct, len(e.outcomes), Accuracy(e.correct, len(e.outcomes))))
	e.unlockAndNotify()
	return nil
}

func (e *Engine) validateRatingLocked(rating int) (memorycard.CardReview, memorycard.MemoryCard, *Error) {
	switch e.state {
	case StateFlipped:
	case StatePresenting:
		return memorycard.CardReview{}, memorycard.MemoryCard{}, validationError(ErrNotFlipped)
	case StateSubmitting:
		return memorycard.CardReview{}, memorycard.MemoryCard{}, validationError(ErrBusy)
	default:
		return memorycard.CardReview{}, memorycard.MemoryCard{}, validationError(ErrNoCurrentCard)
	}
	if rating < MinRating || rating > MaxRating {
		return memorycard.CardReview{}, memorycard.MemoryCard{}, validationError(ErrInvalidRating)
	}

	card := e.cards[e.index]
	deckID := card.DeckID
	if deckID == "" {
		deckID = e.options.DeckID
	}
	if e.options.UserID == "" || deckID == "" || card.CardID == "" {
		return memorycard.CardReview{}, memorycard.MemoryCard{}, validationError(ErrMissingData)
	}

	return memorycard.CardReview{
		UserID:           e.options.UserID,
		DeckID:           deckID,
		CardID:           card.CardID,
		DifficultyRating: rating,
		IsCorrect:        IsCorrect(rating),
	}, card, nil
}

// Continue fetches the next batch of due cards after a completed session.
// It returns false when nothing else is due, which also finishes the session, as does
// a deck that no longer exists.
func (e *Engine) Continue(ctx context.Context) (bool, error) {
	e.mu.Lock()
	if e.state != StateComplete {
		e.mu.Unlock()
		return false, validationError(ErrNotComplete)
	}
	generation := e.generation
	e.state = StateAwaitingFetch
	e.mu.Unlock()

	result, fetchErr := e.provider.DueCards(ctx, e.options.query())

	e.mu.Lock()
	if generation != e.generation || e.closed {
		e.mu.Unlock()
		return false, ErrFinished
	}
	if fetchErr != nil {
		slog.Default().Error("failed to fetch more due cards",
			slog.String("userId", e.options.UserID),
			slog.Any("error", fetchErr),
		)
		e.err = classifyFetchError(fetchErr)
		if e.err.Kind == KindNotFound {
			e.finishLocked()
		} else {
			e.state = StateComplete
		}
		e.queue(LevelError, e.err.Message)
		err := e.err
		e.unlockAndNotify()
		return false, err
	}
	if len(result.Cards) == 0 {
		e.finishLocked()
		e.queue(LevelInfo, "No more cards due")
		e.unlockAndNotify()
		return false, nil
	}

	e.startSessionLocked(result)
	e.unlockAndNotify()
	return true, nil
}

// Finish ends the session and returns its summary. Pending retries are cancelled.
func (e *Engine) Finish() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.finishLocked()
	return e.summaryLocked()
}

func (e *Engine) finishLocked() {
	e.generation++
	e.stopRetryLocked()
	e.settleLocked()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.state = StateFinished
}

// Close releases the session timer and any scheduled retry. In-flight requests are
// abandoned and their results ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.generation++
	e.stopRetryLocked()
	e.settleLocked()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.cancel()
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := Snapshot{
		State:        e.state,
		Index:        e.index,
		Total:        len(e.cards),
		TotalDue:     e.totalDue,
		Reviewed:     len(e.outcomes),
		Correct:      e.correct,
		Accuracy:     Accuracy(e.correct, len(e.outcomes)),
		Duration:     e.timer.Elapsed(),
		RetryPending: e.retryPending,
		Err:          e.err,
	}
	if e.index < len(e.cards) && (e.state == StatePresenting || e.state == StateFlipped || e.state == StateSubmitting) {
		card := e.cards[e.index]
		snapshot.Card = &card
	}
	return snapshot
}

func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summaryLocked()
}

func (e *Engine) summaryLocked() Summary {
	outcomes := make([]Outcome, len(e.outcomes))
	copy(outcomes, e.outcomes)
	return Summary{
		UserID:     e.options.UserID,
		DeckID:     e.options.DeckID,
		CourseID:   e.options.CourseID,
		Reviewed:   len(e.outcomes),
		Correct:    e.correct,
		Accuracy:   Accuracy(e.correct, len(e.outcomes)),
		TotalDue:   e.totalDue,
		Duration:   e.timer.Elapsed(),
		Outcomes:   outcomes,
		FinishedAt: e.options.Now(),
	}
}

func (e *Engine) queue(level Level, message string) {
	e.pending = append(e.pending, Notification{Level: level, Message: message})
}

// unlockAndNotify releases the lock and then delivers queued notifications so a
// notifier may call back into the engine.
func (e *Engine) unlockAndNotify() {
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, notification := range pending {
		e.notifier.Notify(notification)
	}
}
