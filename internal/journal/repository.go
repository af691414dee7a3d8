// Package journal keeps a local record of finished review sessions.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/memocard/internal/review"
)

// SessionRecord is one finished review session.
type SessionRecord struct {
	ID              int64     `db:"id" yaml:"id"`
	UserID          string    `db:"user_id" yaml:"user_id"`
	DeckID          string    `db:"deck_id" yaml:"deck_id"`
	CourseID        string    `db:"course_id" yaml:"course_id"`
	Reviewed        int       `db:"reviewed" yaml:"reviewed"`
	Correct         int       `db:"correct" yaml:"correct"`
	Accuracy        int       `db:"accuracy" yaml:"accuracy"`
	TotalDue        int       `db:"total_due" yaml:"total_due"`
	DurationSeconds int       `db:"duration_seconds" yaml:"duration_seconds"`
	FinishedAt      time.Time `db:"finished_at" yaml:"finished_at"`
	CreatedAt       time.Time `db:"created_at" yaml:"created_at"`
}

// CardOutcome is the rating given to one card within a session.
type CardOutcome struct {
	ID        int64  `db:"id" yaml:"id"`
	SessionID int64  `db:"session_id" yaml:"session_id"`
	Position  int    `db:"position" yaml:"position"`
	CardID    string `db:"card_id" yaml:"card_id"`
	DeckID    string `db:"deck_id" yaml:"deck_id"`
	Rating    int    `db:"rating" yaml:"rating"`
	Correct   bool   `db:"correct" yaml:"correct"`
}

type Repository interface {
	Create(ctx context.Context, session *SessionRecord, outcomes []CardOutcome) error
	FindByUser(ctx context.Context, userID string, from, to time.Time) ([]SessionRecord, error)
	FindOutcomes(ctx context.Context, sessionID int64) ([]CardOutcome, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FromSummary converts a session summary into the rows stored for it.
func FromSummary(summary review.Summary) (SessionRecord, []CardOutcome) {
	session := SessionRecord{
		UserID:          summary.UserID,
		DeckID:          summary.DeckID,
		CourseID:        summary.CourseID,
		Reviewed:        summary.Reviewed,
		Correct:         summary.Correct,
		Accuracy:        summary.Accuracy,
		TotalDue:        summary.TotalDue,
		DurationSeconds: int(summary.Duration / time.Second),
		FinishedAt:      summary.FinishedAt.UTC().Truncate(time.Second),
	}

	outcomes := make([]CardOutcome, 0, len(summary.Outcomes))
	for i, outcome := range summary.Outcomes {
		deckID := outcome.Card.DeckID
		if deckID == "" {
			deckID = summary.DeckID
		}
		outcomes = append(outcomes, CardOutcome{
			Position: i + 1,
			CardID:   outcome.Card.CardID,
			DeckID:   deckID,
			Rating:   outcome.Rating,
			Correct:  outcome.Correct,
		})
	}
	return session, outcomes
}

// Record stores a finished session summary.
func (r *DBRepository) Record(ctx context.Context, summary review.Summary) error {
	session, outcomes := FromSummary(summary)
	return r.Create(ctx, &session, outcomes)
}

// Create inserts a session and its card outcomes in one transaction.
func (r *DBRepository) Create(ctx context.Context, session *SessionRecord, outcomes []CardOutcome) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO review_sessions (user_id, deck_id, course_id, reviewed, correct, accuracy, total_due, duration_seconds, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.UserID, session.DeckID, session.CourseID, session.Reviewed, session.Correct,
		session.Accuracy, session.TotalDue, session.DurationSeconds, session.FinishedAt)
	if err != nil {
		return fmt.Errorf("tx.ExecContext(insert review_session) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}

	for i := range outcomes {
		outcomes[i].SessionID = id
	}
	if len(outcomes) > 0 {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO review_session_cards (session_id, position, card_id, deck_id, rating, correct)
			VALUES (:session_id, :position, :card_id, :deck_id, :rating, :correct)`,
			outcomes); err != nil {
			return fmt.Errorf("tx.NamedExecContext(insert review_session_cards) > %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	session.ID = id
	return nil
}

// FindByUser returns the sessions a user finished in [from, to), oldest first.
func (r *DBRepository) FindByUser(ctx context.Context, userID string, from, to time.Time) ([]SessionRecord, error) {
	var sessions []SessionRecord
	if err := r.db.SelectContext(ctx, &sessions,
		"SELECT * FROM review_sessions WHERE user_id = ? AND finished_at >= ? AND finished_at < ? ORDER BY finished_at",
		userID, from, to); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_sessions by user) > %w", err)
	}
	return sessions, nil
}

func (r *DBRepository) FindOutcomes(ctx context.Context, sessionID int64) ([]CardOutcome, error) {
	var outcomes []CardOutcome
	if err := r.db.SelectContext(ctx, &outcomes,
		"SELECT * FROM review_session_cards WHERE session_id = ? ORDER BY position",
		sessionID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_session_cards) > %w", err)
	}
	return outcomes, nil
}
