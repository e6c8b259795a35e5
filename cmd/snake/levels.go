package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagLevelsYAML bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List difficulty levels and the board",
	Long: `Shows the levels and board of the effective configuration.
With --yaml the whole configuration is printed, ready to be saved as
~/.snake/configs/snake.yaml and edited.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagLevelsYAML, "yaml", false, "Print the effective configuration as YAML")
}

func runLevels(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagLevelsYAML {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		return
	}

	grid, err := cfg.Grid()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Board: %s\n", grid.Info())
	fmt.Println(grid.Describe())
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range cfg.Levels {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "ID", "Name", "Step")
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "--", "----", "----")

	for _, l := range cfg.Levels {
		fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, l.ID, l.Name, l.TickInterval())
	}

	fmt.Println()
	fmt.Println("Run 'snake play --level <id>' to play a level.")
}
