package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresPlayer string
	flagScoresRecent bool
	flagScoresTUI    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores, a player's best games or the most recent games.

Examples:
  snake scores
  snake scores --player Ann
  snake scores --recent --limit 20
  snake scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Only show games of this player")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent games instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in an interactive table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded games and the high score")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearSessions(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All scores cleared.")
		return
	}

	if flagScoresTUI {
		size := core.DefaultConfig()
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			size.ScreenW, size.ScreenH = w, h
		}
		if err := tui.RunScoreboard(store, size.ScreenW, size.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var (
		entries []storage.SessionEntry
		title   string
	)
	switch {
	case flagScoresPlayer != "":
		title = "Best Games - " + flagScoresPlayer
		entries, err = store.PlayerSessions(flagScoresPlayer, flagScoresLimit)
	case flagScoresRecent:
		title = "Recent Games"
		entries, err = store.RecentSessions(flagScoresLimit)
	default:
		title = "High Scores"
		entries, err = store.TopScores(flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-12s  %-6s  %-6s  %-9s  %s\n", "Rank", "Player", "Level", "Score", "Length", "Result", "Date")
	fmt.Printf("  %-4s  %-20s  %-12s  %-6s  %-6s  %-9s  %s\n", "----", "------", "-----", "-----", "------", "------", "----")

	for i, e := range entries {
		fmt.Printf("  %-4d  %-20s  %-12s  %-6d  %-6d  %-9s  %s\n",
			i+1, e.Player, e.Level, e.Score, e.Length,
			tui.OutcomeLabel(e.Outcome, e.Reason),
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.LoadHighScore(); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	if flagScoresPlayer != "" {
		if best, err := store.PlayerBest(flagScoresPlayer); err == nil {
			fmt.Printf("Best for %s: %d\n", flagScoresPlayer, best)
		}
	}
}
