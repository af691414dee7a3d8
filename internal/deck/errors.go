package deck

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/at-ishikawa/memocard/internal/review"
)

var (
	ErrQuestionRequired = errors.New("question is required")
	ErrAnswerRequired   = errors.New("answer is required")
	ErrCourseRequired   = errors.New("course id is required")
	ErrChaptersRequired = errors.New("select at least one chapter")
	ErrTitleRequired    = errors.New("deck title is required")
	ErrDeckRequired     = errors.New("deck id is required")
	ErrCardRequired     = errors.New("card id is required")
	ErrNoChanges        = errors.New("no fields to update")
	ErrInvalidCard      = errors.New("invalid card")
)

const (
	generationTimeoutMessage = "Card generation timed out. Try again with fewer chapters."
	generationNetworkMessage = "Network error while generating cards. Check your connection and try again."
	generationFailedMessage  = "Failed to generate cards"
)

func validationError(err error) *review.Error {
	return &review.Error{Kind: review.KindValidation, Message: err.Error(), Err: err}
}

func backendError(action string, err error) *review.Error {
	return &review.Error{
		Kind:    review.Classify(err),
		Message: "Failed to " + action + ": " + review.UserMessage(err),
		Err:     err,
	}
}

// generationError tells timeouts and network failures apart from other generation
// failures. Errors without a typed cause are matched on their text.
func generationError(err error) *review.Error {
	kind := review.Classify(err)
	if errors.Is(err, context.DeadlineExceeded) {
		return &review.Error{Kind: review.KindTransient, Message: generationTimeoutMessage, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return &review.Error{Kind: review.KindTransient, Message: generationTimeoutMessage, Err: err}
		}
		return &review.Error{Kind: review.KindTransient, Message: generationNetworkMessage, Err: err}
	}

	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "timeout"), strings.Contains(text, "timed out"), strings.Contains(text, "deadline"):
		return &review.Error{Kind: kind, Message: generationTimeoutMessage, Err: err}
	case strings.Contains(text, "network"), strings.Contains(text, "connection"), strings.Contains(text, "dial"):
		return &review.Error{Kind: kind, Message: generationNetworkMessage, Err: err}
	}
	return &review.Error{Kind: kind, Message: generationFailedMessage + ": " + review.UserMessage(err), Err: err}
}
