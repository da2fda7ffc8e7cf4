package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"go_vocab_quiz/internal/model"
)

func newReloadCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Fetch the vocabulary database and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.svc.LoadTable(a.context(cmd.Context())); err != nil {
				return describe(err)
			}
			summary, err := a.svc.Summary()
			if err != nil {
				return describe(err)
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func printSummary(out io.Writer, s *model.TableSummary) {
	fmt.Fprintf(out, "Loaded %d words at %s\n", s.Size, s.LoadedAt.Format(time.DateTime))
	fmt.Fprintf(out, "Columns: %s\n", strings.Join(s.Columns, ", "))
}
