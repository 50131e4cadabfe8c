package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gumshoe-dev/gumshoe/internal/errmsg"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>...",
	Short: "Ask a single question",
	Long: `Ask a single question and print the answer.

The question goes through the same pipeline as interactive chat: if a
web search would help, gumshoe searches, reads the best results, and
answers from what it found.

Examples:
  gumshoe ask what is the latest Go release
  gumshoe ask "who won the match last night?"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		question := strings.Join(args, " ")

		sess, err := newSession(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitWithCode(ExitNoProvider)
		}

		err = sess.manager.HandleTurn(ctx, question, func(chunk string) {
			fmt.Print(chunk)
		})
		fmt.Println()

		if err != nil {
			fmt.Fprintln(os.Stderr, errmsg.Format(err, &errmsg.ErrorContext{Provider: sess.provider}))
			exitWithCode(ExitGeneral)
		}
	},
}
