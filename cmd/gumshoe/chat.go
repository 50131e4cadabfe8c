package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gumshoe-dev/gumshoe/internal/errmsg"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation with the assistant.

Each message is checked to see whether a web search would improve the
answer; when it would, gumshoe searches, reads the best results, and
answers from what it found. Press Ctrl-C or Ctrl-D to leave.

Examples:
  gumshoe chat
  gumshoe chat --verbose`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runChat(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitWithCode(ExitNoProvider)
		}
	},
}

func runChat() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := newSession(ctx)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println("gumshoe - web-search augmented assistant. Ctrl-C to quit.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if interactive {
			fmt.Print("\n> ")
		}

		if !scanner.Scan() {
			// EOF or Ctrl-D ends the session cleanly.
			if interactive {
				fmt.Println()
			}
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		err := sess.manager.HandleTurn(ctx, input, func(chunk string) {
			fmt.Print(chunk)
		})
		fmt.Println()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// One failed turn does not end the session.
			fmt.Fprintln(os.Stderr, errmsg.Format(err, &errmsg.ErrorContext{Provider: sess.provider}))
		}
	}
}
