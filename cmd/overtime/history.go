package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/overtime-games/overtime/internal/platform/tui"
	"github.com/overtime-games/overtime/internal/storage"
)

var flagPlain bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded workdays",
	Long: `Show the most recent workday runs.

With a terminal attached this opens an interactive table; --plain prints
a static listing instead.

Examples:
  overtime history
  overtime history --plain`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a static listing instead of the interactive table")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		printHistory(store)
		return
	}

	_, height := 80, 24
	if _, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		height = h
	}

	if err := tui.RunHistory(store, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error showing history: %v\n", err)
		os.Exit(1)
	}
}

func printHistory(store *storage.Store) {
	entries, err := store.RecentRuns(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No workdays recorded yet.")
		fmt.Println()
		fmt.Println("Run 'overtime play' to survive the first one.")
		return
	}

	fmt.Printf("  %-16s  %-9s  %-14s  %-5s  %-7s  %s\n", "Date", "Duration", "Ended", "VP", "Stamps", "Events")
	fmt.Printf("  %-16s  %-9s  %-14s  %-5s  %-7s  %s\n", "----", "--------", "-----", "--", "------", "------")

	for _, e := range entries {
		d := time.Duration(e.DurationMS) * time.Millisecond
		fmt.Printf("  %-16s  %2dm%02ds     %-14s  %-5d  %-7d  %d\n",
			e.CreatedAt.Format("2006-01-02 15:04"),
			int(d.Minutes()), int(d.Seconds())%60,
			e.EndReason, e.VP, e.Clicks, len(e.Events))
	}

	best, err := store.BestVP()
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d VP\n", best)
	}
	if total, err := store.TotalVP(); err == nil {
		fmt.Printf("Lifetime: %d VP\n", total)
	}
}
