package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"go_vocab_quiz/internal/model"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished quiz sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			a, err := newApp(root, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			recs, err := a.svc.History(a.context(cmd.Context()), limit)
			if err != nil {
				return describe(err)
			}
			return printHistory(cmd.OutOrStdout(), recs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "number of sessions to show")
	return cmd
}

func printHistory(out io.Writer, recs []*model.QuizSessionRecord) error {
	if len(recs) == 0 {
		fmt.Fprintln(out, "No quiz sessions yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FINISHED\tMODE\tSCORE\tMISSED\tUPDATED")
	for _, rec := range recs {
		missed := make([]string, 0, len(rec.Misses))
		for _, m := range rec.Misses {
			missed = append(missed, m.Word)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%v\t%d/%d\n",
			rec.FinishedAt.Local().Format(time.DateTime),
			rec.Mode,
			rec.Score, rec.QuestionCount,
			missed,
			rec.FlushSucceeded, rec.FlushSucceeded+rec.FlushFailed,
		)
	}
	return tw.Flush()
}
