package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jlaasonen/precinct/cmd/cli/board"
	"github.com/jlaasonen/precinct/cmd/cli/roster"
)

func init() {
	_ = godotenv.Load()
	rootCmd.AddGroup(roster.Group)
	rootCmd.AddCommand(roster.Seed)
	rootCmd.AddGroup(board.Group)
	rootCmd.AddCommand(board.MostWanted)
}

var rootCmd = &cobra.Command{
	Use:  "precinct-cli",
	Long: `Command line utilities for the precinct case management service`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
