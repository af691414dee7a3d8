package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/memocard/internal/review"
)

var errEnd = errors.New("end")

//go:generate mockgen -source=interactive_review_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli

type Session interface {
	Session(ctx context.Context) error
}

// ReviewEngine is the part of review.Engine the terminal loop drives.
type ReviewEngine interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context) error
	Snapshot() review.Snapshot
	Flip() error
	Rate(ctx context.Context, rating int) error
	Continue(ctx context.Context) (bool, error)
	Finish() review.Summary
	Summary() review.Summary
}

// SummaryRecorder stores a completed session, for example in the review journal.
type SummaryRecorder func(ctx context.Context, summary review.Summary) error

// InteractiveReviewCLI runs a review session in the terminal, one prompt per Session call.
type InteractiveReviewCLI struct {
	engine       ReviewEngine
	record       SummaryRecorder
	// completed is set once the current session's summary was shown and recorded.
	completed    bool
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
}

func NewInteractiveReviewCLI(engine ReviewEngine, record SummaryRecorder) *InteractiveReviewCLI {
	return newInteractiveReviewCLI(engine, record, os.Stdin, os.Stdout)
}

func newInteractiveReviewCLI(engine ReviewEngine, record SummaryRecorder, stdin io.Reader, stdout io.Writer) *InteractiveReviewCLI {
	return &InteractiveReviewCLI{
		engine:       engine,
		record:       record,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}
}

// Run calls session.Session until it reports the end, fails, or the process is interrupted.
func (cli *InteractiveReviewCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for ctx.Err() == nil {
			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (cli *InteractiveReviewCLI) Session(ctx context.Context) error {
	snapshot := cli.engine.Snapshot()
	switch snapshot.State {
	case review.StateAwaitingFetch:
		return cli.engine.Wait(ctx)
	case review.StatePresenting:
		cli.completed = false
		return cli.present(ctx, snapshot)
	case review.StateFlipped:
		return cli.rate(ctx, snapshot)
	case review.StateComplete:
		return cli.complete(ctx)
	case review.StateEmpty:
		_, _ = fmt.Fprintln(cli.stdoutWriter, "No cards are due for review. Come back later!")
		return errEnd
	case review.StateError:
		return cli.recover(ctx, snapshot)
	case review.StateNotReady:
		if snapshot.Err != nil {
			return snapshot.Err
		}
		return review.ErrUserRequired
	default:
		return errEnd
	}
}

// ShowElapsed puts the running session time in the terminal title so it updates without
// disturbing the prompt. Nothing is written when colors are off, which also covers
// output that is not a terminal.
func (cli *InteractiveReviewCLI) ShowElapsed(elapsed time.Duration) {
	if color.NoColor {
		return
	}
	_, _ = fmt.Fprintf(cli.stdoutWriter, "\033]0;memocard %s\007", review.FormatDuration(elapsed))
}

func (cli *InteractiveReviewCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errEnd
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isQuit(input string) bool {
	return strings.EqualFold(input, "q") || strings.EqualFold(input, "quit")
}

func (cli *InteractiveReviewCLI) present(ctx context.Context, snapshot review.Snapshot) error {
	_, _ = fmt.Fprintf(cli.stdoutWriter, "\n[%d/%d] %s\n", snapshot.Index+1, snapshot.Total, snapshot.FormattedDuration())
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "Q: %s\n", snapshot.Card.Question)
	_, _ = fmt.Fprint(cli.stdoutWriter, "Press Enter to flip (q to quit): ")

	input, err := cli.readLine()
	if err != nil {
		return err
	}
	if isQuit(input) {
		return cli.finish(ctx)
	}
	return cli.engine.Flip()
}

func (cli *InteractiveReviewCLI) rate(ctx context.Context, snapshot review.Snapshot) error {
	_, _ = cli.italic.Fprintf(cli.stdoutWriter, "A: %s\n", snapshot.Card.Answer)
	_, _ = fmt.Fprint(cli.stdoutWriter, "How difficult was it? 1=hard 3=medium 5=easy (q to quit): ")

	input, err := cli.readLine()
	if err != nil {
		return err
	}
	if isQuit(input) {
		return cli.finish(ctx)
	}

	rating, err := strconv.Atoi(input)
	if err != nil || rating < review.MinRating || rating > review.MaxRating {
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Enter a number from %d to %d\n", review.MinRating, review.MaxRating)
		return nil
	}

	if err := cli.engine.Rate(ctx, rating); err != nil {
		var reviewErr *review.Error
		if errors.As(err, &reviewErr) && reviewErr.Retryable() {
			// the engine kept the card; ask for the rating again
			return nil
		}
		return err
	}
	if review.IsCorrect(rating) {
		_, _ = cli.green.Fprintln(cli.stdoutWriter, "Got it")
	} else {
		_, _ = cli.red.Fprintln(cli.stdoutWriter, "Keep practicing")
	}
	return nil
}

func (cli *InteractiveReviewCLI) complete(ctx context.Context) error {
	if !cli.completed {
		summary := cli.engine.Summary()
		cli.printSummary(summary)
		if cli.record != nil {
			if err := cli.record(ctx, summary); err != nil {
				return fmt.Errorf("record() > %w", err)
			}
		}
		cli.completed = true
	}

	_, _ = fmt.Fprint(cli.stdoutWriter, "Review more cards? [y/N]: ")
	input, err := cli.readLine()
	if err != nil {
		return err
	}
	if !strings.EqualFold(input, "y") && !strings.EqualFold(input, "yes") {
		return cli.finish(ctx)
	}

	more, err := cli.engine.Continue(ctx)
	if err != nil {
		var reviewErr *review.Error
		if errors.As(err, &reviewErr) {
			return nil
		}
		return err
	}
	if !more {
		return errEnd
	}
	return nil
}

func (cli *InteractiveReviewCLI) recover(ctx context.Context, snapshot review.Snapshot) error {
	if snapshot.Err == nil || !snapshot.Err.Retryable() {
		return errEnd
	}
	_, _ = fmt.Fprint(cli.stdoutWriter, "Retry? [y/N]: ")
	input, err := cli.readLine()
	if err != nil {
		return err
	}
	if !strings.EqualFold(input, "y") {
		return errEnd
	}
	if err := cli.engine.Start(ctx); err != nil {
		var reviewErr *review.Error
		if errors.As(err, &reviewErr) {
			return nil
		}
		return err
	}
	return nil
}

// finish ends the session. A session quit part way is still shown and recorded.
func (cli *InteractiveReviewCLI) finish(ctx context.Context) error {
	summary := cli.engine.Finish()
	if summary.Reviewed == 0 || cli.completed {
		return errEnd
	}
	cli.printSummary(summary)
	if cli.record != nil {
		if err := cli.record(ctx, summary); err != nil {
			return fmt.Errorf("record() > %w", err)
		}
	}
	return errEnd
}

func (cli *InteractiveReviewCLI) printSummary(summary review.Summary) {
	_, _ = cli.bold.Fprintln(cli.stdoutWriter, "\nSession summary")
	_, _ = fmt.Fprintf(cli.stdoutWriter, "  Reviewed: %d\n", summary.Reviewed)
	_, _ = fmt.Fprintf(cli.stdoutWriter, "  Correct:  %d\n", summary.Correct)
	_, _ = fmt.Fprintf(cli.stdoutWriter, "  Accuracy: %d%%\n", summary.Accuracy)
	_, _ = fmt.Fprintf(cli.stdoutWriter, "  Time:     %s\n", summary.FormattedDuration())
}
