package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "botogram",
	Short: "botogram is a component-based Telegram bot runtime",
	Long: `botogram runs Telegram bots assembled from components: independently
authored bundles of command and message hooks. The runtime polls the
Telegram Bot API for updates, filters out the backlog accumulated while
the bot was offline, and dispatches live updates through the ordered
hook chain of every attached component.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	Execute()
}
