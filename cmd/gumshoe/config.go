package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gumshoe-dev/gumshoe/internal/secrets"
	"github.com/gumshoe-dev/gumshoe/internal/userconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gumshoe configuration",
	Long: `Manage gumshoe configuration settings.

Configuration is stored in ~/.gumshoe/config.toml.

Available settings:
  provider     LLM backend to prefer (ollama/claude/gemini)
  model        Model name for the Ollama backend
  ollama_url   Base URL of the Ollama server

Examples:
  gumshoe config get provider
  gumshoe config set provider claude`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get the current value of a configuration setting.

Available keys:
  provider     LLM backend to prefer (ollama/claude/gemini)
  model        Model name for the Ollama backend
  ollama_url   Base URL of the Ollama server`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]

		cfg, err := userconfig.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitWithCode(ExitGeneral)
		}

		value, ok := cfg.Get(key)
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
			fmt.Fprintf(os.Stderr, "\nAvailable keys:\n")
			printAvailableKeys()
			exitWithCode(ExitUsage)
		}

		fmt.Println(value)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Available keys:
  provider     LLM backend to prefer (ollama/claude/gemini)
  model        Model name for the Ollama backend
  ollama_url   Base URL of the Ollama server

Examples:
  gumshoe config set provider gemini
  gumshoe config set model llama3.2
  gumshoe config set ollama_url http://localhost:11434`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		key := args[0]
		value := args[1]

		cfg, err := userconfig.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitWithCode(ExitGeneral)
		}

		if err := cfg.Set(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "\nAvailable keys:\n")
			printAvailableKeys()
			exitWithCode(ExitUsage)
		}

		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
			exitWithCode(ExitGeneral)
		}

		fmt.Printf("%s = %s\n", key, value)
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := userconfig.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			exitWithCode(ExitGeneral)
		}

		keys := userconfig.AvailableKeys()
		var sortedKeys []string
		for k := range keys {
			sortedKeys = append(sortedKeys, k)
		}
		sort.Strings(sortedKeys)

		for _, k := range sortedKeys {
			value, _ := cfg.Get(k)
			fmt.Printf("%-12s = %s\n", k, value)
		}
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List API key settings and whether they are set",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, key := range secrets.KnownKeys() {
			status := "not set"
			if secrets.IsSet(key.Name) {
				status = "set"
			}
			fmt.Printf("%-20s %-8s %s (%s)\n", key.Name, status, key.Desc, strings.Join(key.EnvVars, ", "))
		}
	},
}

func printAvailableKeys() {
	keys := userconfig.AvailableKeys()
	// Sort keys for consistent output
	var sortedKeys []string
	for k := range keys {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)

	for _, k := range sortedKeys {
		fmt.Fprintf(os.Stderr, "  %s - %s\n", k, keys[k])
	}
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)
}
