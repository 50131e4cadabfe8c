package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gumshoe-dev/gumshoe/internal/buildinfo"
	"github.com/gumshoe-dev/gumshoe/internal/log"
)

var (
	flagVerbose  bool
	flagDebug    bool
	flagQuiet    bool
	flagProvider string
	flagModel    string
)

var rootCmd = &cobra.Command{
	Use:   "gumshoe",
	Short: "A web-search augmented AI assistant for your terminal",
	Long: `gumshoe is a conversational AI assistant that decides on its own when
a question needs fresh information, searches the web, reads the results,
and folds what it found into its answer.

It works with a local Ollama server out of the box and can use Claude or
Gemini when API keys are present.`,
	Version: buildinfo.Version(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetDefault(buildLogger())
	},
	// Bare `gumshoe` starts a conversation.
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		chatCmd.Run(cmd, args)
	},
}

// buildLogger maps the verbosity flags onto the default logger.
// Warnings and errors always show unless --quiet; --verbose adds
// pipeline progress, --debug adds everything.
func buildLogger() log.Logger {
	if flagQuiet {
		return log.NewNoop()
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	if flagDebug {
		level = slog.LevelDebug
	}

	return log.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show retrieval pipeline progress")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Show all diagnostic output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all diagnostic output")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "Override the configured LLM provider (ollama/claude/gemini)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Override the configured Ollama model")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitWithCode(ExitGeneral)
	}
}
