package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memocard/internal/cli"
	"github.com/at-ishikawa/memocard/internal/config"
	"github.com/at-ishikawa/memocard/internal/database"
	"github.com/at-ishikawa/memocard/internal/journal"
	"github.com/at-ishikawa/memocard/internal/review"
)

func newReviewCommand() *cobra.Command {
	var (
		deckID   string
		courseID string
		limit    int
	)

	command := &cobra.Command{
		Use:   "review",
		Short: "Review the cards that are due, one at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.User.ID == "" {
				return errUserRequired
			}
			if limit <= 0 {
				limit = cfg.Review.Limit
			}

			client := newClient(cfg)
			defer func() {
				_ = client.Close()
			}()

			record, closeJournal := openJournal(ctx, cfg)
			defer closeJournal()

			var reviewCLI *cli.InteractiveReviewCLI
			engine := review.NewEngine(client, client, review.Options{
				UserID:     cfg.User.ID,
				DeckID:     deckID,
				CourseID:   courseID,
				Limit:      limit,
				RetryDelay: cfg.Review.RetryDelay(),
				OnTick: func(elapsed time.Duration) {
					reviewCLI.ShowElapsed(elapsed)
				},
			}, cli.NewColorNotifier(cmd.OutOrStdout()))
			defer engine.Close()
			reviewCLI = cli.NewInteractiveReviewCLI(engine, record)

			if err := engine.Start(ctx); err != nil {
				// Load failures are shown by the session loop, which offers a retry.
				var reviewErr *review.Error
				if !errors.As(err, &reviewErr) {
					return fmt.Errorf("engine.Start() > %w", err)
				}
			}

			return reviewCLI.Run(ctx, reviewCLI)
		},
	}

	command.Flags().StringVar(&deckID, "deck", "", "Review only the cards of this deck")
	command.Flags().StringVar(&courseID, "course", "", "Review only the cards of this course")
	command.Flags().IntVar(&limit, "limit", 0, "Maximum number of cards per session (default review.limit)")
	return command
}

// openJournal returns a recorder storing finished sessions, or nil when no journal
// database is configured or reachable.
func openJournal(ctx context.Context, cfg *config.Config) (cli.SummaryRecorder, func()) {
	if !cfg.Database.Enabled() {
		return nil, func() {}
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		slog.Default().Warn("review journal is unavailable, sessions will not be recorded",
			slog.Any("error", err),
		)
		return nil, func() {}
	}
	repository := journal.NewDBRepository(db)
	return repository.Record, closeDB(db)
}

func closeDB(db *sqlx.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Default().Warn("failed to close the database", slog.Any("error", err))
		}
	}
}
