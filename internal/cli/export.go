package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go_vocab_quiz/internal/export"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the vocabulary table to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			table, err := a.svc.LoadTable(a.context(cmd.Context()))
			if err != nil {
				return describe(err)
			}
			if err := export.SaveXLSX(output, table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d words to %s\n", table.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "words.xlsx", "destination file")
	return cmd
}
