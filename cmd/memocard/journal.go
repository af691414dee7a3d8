package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memocard/internal/database"
	"github.com/at-ishikawa/memocard/internal/journal"
	"github.com/at-ishikawa/memocard/internal/review"
	"github.com/at-ishikawa/memocard/schemas"
)

func newJournalCommand() *cobra.Command {
	journalCommand := &cobra.Command{
		Use:   "journal",
		Short: "Manage the local record of finished review sessions",
	}

	journalCommand.AddCommand(
		newJournalMigrateCommand(),
		newJournalStatsCommand(),
	)
	return journalCommand
}

func newJournalMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the journal tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Connect() > %w", err)
			}
			defer closeDB(db)()

			applied, err := journal.Migrate(ctx, db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("journal.Migrate() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", len(applied))
			return nil
		},
	}
}

func newJournalStatsCommand() *cobra.Command {
	var (
		year  int
		month int
	)

	command := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly review statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := journal.Period(year, month)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.User.ID == "" {
				return errUserRequired
			}

			db, err := database.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Connect() > %w", err)
			}
			defer closeDB(db)()

			sessions, err := journal.NewDBRepository(db).FindByUser(ctx, cfg.User.ID, from, to)
			if err != nil {
				return fmt.Errorf("FindByUser() > %w", err)
			}
			printStats(cmd, journal.Aggregate(sessions))
			return nil
		},
	}

	command.Flags().IntVar(&year, "year", time.Now().Year(), "Year to report")
	command.Flags().IntVar(&month, "month", 0, "Month to report, 1-12 (default the whole year)")
	return command
}

func printStats(cmd *cobra.Command, stats []journal.MonthlyStats) {
	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		_, _ = fmt.Fprintln(out, "No review sessions recorded.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "MONTH\tSESSIONS\tREVIEWED\tCORRECT\tACCURACY\tTIME")
	for _, s := range stats {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d%%\t%s\n",
			s.Month, s.Sessions, s.Reviewed, s.Correct, s.Accuracy, review.FormatDuration(s.Duration))
	}
	_ = w.Flush()
}
