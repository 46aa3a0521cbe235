// overtime is a terminal incremental game about surviving one workday in
// an infinite bureaucracy.
//
// Usage:
//
//	overtime play              - Play an interactive workday
//	overtime simulate          - Run a headless deterministic workday
//	overtime history           - Browse recorded runs
//	overtime catalog           - List automations, power-ups and measures
//	overtime upgrades          - View and buy permanent upgrades
//	overtime serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Simulation tick rate (default: 30)
//	--run-id <id>     - Fixed run ID; the same ID replays the same day
//	--db <path>       - Database path (default: ~/.overtime/overtime.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFPS    int
	flagRunID  string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "overtime",
	Short: "Overtime - survive the infinite bureaucracy in your terminal",
	Long: `Overtime is a terminal incremental game. Stamp forms, buy automations,
keep your energy and concentration above zero, and make it to the end of
the workday before the paperwork buries you.

Runs are fully deterministic: the run ID seeds everything, so the same
ID replays the same day.

Examples:
  overtime play
  overtime play --run-id monday-morning
  overtime simulate --ticks 9000 --click-every 10
  overtime history
  overtime serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Simulation tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagRunID, "run-id", "", "Fixed run ID (empty = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.overtime/overtime.db", "Path to run database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(upgradesCmd)
	rootCmd.AddCommand(serveCmd)
}
