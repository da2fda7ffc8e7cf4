package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/service"
	"go_vocab_quiz/internal/webutil"
)

const quitCommand = "quit"

type quizOptions struct {
	words       int
	recentWords int
	recentDays  int
	mode        string
}

func newQuizCmd(root *rootOptions) *cobra.Command {
	opts := &quizOptions{}

	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Run an interactive quiz in the terminal",
		Long: `Samples words from the vocabulary database and asks one question at a time.
Type 'quit' to stop early; misses are written back either way.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			req := &model.StartSessionRequest{
				Words:       opts.words,
				RecentWords: opts.recentWords,
				RecentDays:  opts.recentDays,
				Mode:        model.QuizMode(opts.mode),
			}
			if !cmd.Flags().Changed("words") {
				req.Words = a.cfg.Quiz.Words
			}
			if !cmd.Flags().Changed("recent-words") {
				req.RecentWords = a.cfg.Quiz.RecentWords
			}
			if !cmd.Flags().Changed("recent-days") {
				req.RecentDays = a.cfg.Quiz.RecentDays
			}

			ctx, stop := signal.NotifyContext(a.context(cmd.Context()), os.Interrupt)
			defer stop()
			return runQuiz(ctx, a.svc, req, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&opts.words, "words", "n", 0, "number of words to sample (1-20)")
	cmd.Flags().IntVar(&opts.recentWords, "recent-words", 0, "extra words drawn from recently added entries")
	cmd.Flags().IntVar(&opts.recentDays, "recent-days", 0, "how many days count as recent")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "question source: generated or meaning")
	return cmd
}

// runQuiz drives one session over in/out. Reaching EOF on in counts as quit.
func runQuiz(ctx context.Context, svc service.QuizService, req *model.StartSessionRequest, in io.Reader, out io.Writer) error {
	if err := webutil.Validate(req); err != nil {
		return describe(err)
	}

	fmt.Fprintln(out, "Loading words and preparing questions...")
	view, err := svc.StartSession(ctx, req)
	if err != nil {
		return describe(err)
	}

	fmt.Fprintln(out, "\n=== English Study Quiz ===")
	fmt.Fprintf(out, "Words: %s\n", strings.Join(view.Words, ", "))
	fmt.Fprintf(out, "Type your answer and press Enter. Type '%s' to exit.\n", quitCommand)

	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := readLines(readCtx, in)

	question := view.Question
	for i := 1; question != nil; i++ {
		fmt.Fprintf(out, "\nQuestion %d/%d:\n%s\n", i, view.Total, question.Question)
		fmt.Fprint(out, "Your answer: ")

		answer, ok := "", false
		select {
		case answer, ok = <-lines:
		case <-ctx.Done():
		}
		answer = strings.TrimSpace(answer)
		if !ok || strings.EqualFold(answer, quitCommand) {
			fmt.Fprintln(out, "\nQuiz terminated early.")
			break
		}

		res, err := svc.SubmitAnswer(ctx, view.SessionID, answer)
		if err != nil {
			return describe(err)
		}
		if res.Correct {
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ Incorrect. The correct answer is: %s\n", res.CorrectAnswer)
		}
		fmt.Fprintf(out, "Score: %d/%d\n", res.Score, res.Answered)
		question = res.Next
	}

	// finish even if the user interrupted so misses still reach the store
	summary, err := svc.FinishSession(context.WithoutCancel(ctx), view.SessionID)
	if err != nil {
		return describe(err)
	}

	fmt.Fprintf(out, "\nQuiz completed! Your score: %d/%d\n", summary.Score, summary.Total)
	fmt.Fprintf(out, "Percentage: %.1f%%\n", summary.Percent)
	if len(summary.Missed) > 0 {
		fmt.Fprintf(out, "Missed: %s\n", strings.Join(summary.Missed, ", "))
	}
	if n := summary.Flush.Succeeded + summary.Flush.Failed; n > 0 {
		fmt.Fprintf(out, "Updated %d of %d words in Notion.\n", summary.Flush.Succeeded, n)
	}
	return nil
}

// readLines delivers the lines of in until EOF or ctx is done, then closes
// the channel. A final line without a newline is still delivered.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" || err == nil {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// describe turns service errors into messages fit for a terminal.
func describe(err error) error {
	var appErr *model.AppError
	switch {
	case errors.As(err, &appErr):
		return errors.New(appErr.Message)
	case errors.Is(err, model.ErrEmptyDatabase):
		return errors.New("database is empty")
	case errors.Is(err, model.ErrNoQuestions):
		return errors.New("the language model returned no usable questions, try again")
	case errors.Is(err, model.ErrBusy):
		return errors.New("another operation is still running")
	default:
		return err
	}
}
