package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

type ErrorKind string

const (
	// KindNotFound means the deck or its cards do not exist. It ends the session attempt.
	KindNotFound ErrorKind = "not_found"
	// KindTransient covers network and server failures the learner may retry.
	KindTransient ErrorKind = "transient"
	// KindValidation is a local failure; no request was sent.
	KindValidation ErrorKind = "validation"
	// KindSubmission means a rating was rejected; the session stays on the card.
	KindSubmission ErrorKind = "submission"
)

var (
	ErrUserRequired    = errors.New("a user id is required to review cards")
	ErrMissingData     = errors.New("missing required data to submit the review")
	ErrNoCurrentCard   = errors.New("there is no card to review")
	ErrNotFlipped      = errors.New("flip the card before rating it")
	ErrAlreadyFlipped  = errors.New("the card is already flipped")
	ErrInvalidRating   = errors.New("the rating must be between 1 and 5")
	ErrBusy            = errors.New("a review is being submitted")
	ErrNotComplete     = errors.New("the session is not complete yet")
	ErrDeckUnavailable = errors.New("the deck does not exist or has no cards")
	ErrNoMoreCards     = errors.New("no more cards due")
	ErrFinished        = errors.New("the review session has finished")
)

// Error is the reportable error state of the engine.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil || e.Err.Error() == e.Message {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the learner can retry the failed action.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransient || e.Kind == KindSubmission
}

func validationError(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

// classifyFetchError maps a due-card fetch failure into the error taxonomy.
func classifyFetchError(err error) *Error {
	if errors.Is(err, memorycard.ErrNotFound) {
		return &Error{Kind: KindNotFound, Message: ErrDeckUnavailable.Error(), Err: errors.Join(ErrDeckUnavailable, err)}
	}
	return &Error{Kind: KindTransient, Message: "failed to load due cards: " + userMessage(err), Err: err}
}

func submissionError(err error) *Error {
	return &Error{Kind: KindSubmission, Message: "failed to submit the review: " + userMessage(err), Err: err}
}

// userMessage prefers the backend's own message over the wrapped error text.
func userMessage(err error) string {
	var messenger interface{ UserMessage() string }
	if errors.As(err, &messenger) && messenger.UserMessage() != "" {
		return messenger.UserMessage()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "the request timed out"
	}
	return err.Error()
}

// Classify reports the taxonomy kind of an error from the engine, the deck façade or
// their collaborators.
func Classify(err error) ErrorKind {
	var reviewErr *Error
	if errors.As(err, &reviewErr) {
		return reviewErr.Kind
	}
	if errors.Is(err, memorycard.ErrNotFound) {
		return KindNotFound
	}
	return KindTransient
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var reviewErr *Error
	if errors.As(err, &reviewErr) {
		return reviewErr.Message
	}
	return userMessage(err)
}
