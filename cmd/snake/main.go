// snake is a grid snake game for the terminal.
//
// Usage:
//
//	snake play             - Play interactively
//	snake demo             - Watch the autopilot play a headless session
//	snake scores           - Show high scores and recent games
//	snake levels           - List difficulty levels and the board
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible food placement
//	--db <path>          - Set database path (default: ~/.snake/scores.db)
//	--config <path>      - Use a custom snake.yaml
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic grid game in your terminal",
	Long: `Snake is the classic grid game: steer the snake to the food, grow
by one segment per meal and avoid the walls and your own body.

Available commands:
  play     - Play interactively
  demo     - Watch the autopilot play
  scores   - View high scores
  levels   - List difficulty levels

Examples:
  snake play
  snake play --name Ann --level intermediate
  snake demo --seed 42
  snake scores --recent`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
}
