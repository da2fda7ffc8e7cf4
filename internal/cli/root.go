// Package cli holds the vocabquiz commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go_vocab_quiz/internal/config"
)

type rootOptions struct {
	configDir string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Korean to English vocabulary quiz backed by Notion and Gemini",
		Long: `vocabquiz samples words from a Notion vocabulary database, weighted by how
often each word was missed, asks questions about them and writes the misses
back to the database.`,
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configDir, "config", "c", "configs", "directory holding config.yaml")

	rootCmd.AddCommand(
		newQuizCmd(opts),
		newServeCmd(opts),
		newReloadCmd(opts),
		newHistoryCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
