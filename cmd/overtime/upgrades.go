package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/overtime-games/overtime/internal/meta"
	"github.com/overtime-games/overtime/internal/storage"
)

var upgradesCmd = &cobra.Command{
	Use:   "upgrades [buy <id>]",
	Short: "View and buy permanent upgrades",
	Long: `List permanent upgrades and the current VP balance, or spend VP on one.

Upgrades apply to every future workday.

Examples:
  overtime upgrades
  overtime upgrades buy click_bonus_1`,
	Args: cobra.MaximumNArgs(2),
	Run:  runUpgrades,
}

func runUpgrades(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	state, err := store.LoadMeta()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading progression: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 2 && args[0] == "buy" {
		if err := state.Buy(args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := store.SaveMeta(state); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving progression: %v\n", err)
			os.Exit(1)
		}
		def, _ := meta.FindUpgrade(args[1])
		fmt.Printf("Bought %s. %d VP remaining.\n", def.Name, state.AvailableVP)
		return
	}
	if len(args) != 0 {
		fmt.Fprintln(os.Stderr, "Usage: overtime upgrades [buy <id>]")
		os.Exit(1)
	}

	owned := make(map[string]bool, len(state.Upgrades))
	for _, id := range state.Upgrades {
		owned[id] = true
	}

	fmt.Printf("Balance: %d VP available (%d lifetime)\n", state.AvailableVP, state.TotalVP)
	fmt.Println()
	fmt.Printf("  %-24s %-28s %-6s %s\n", "ID", "Name", "Cost", "")
	for _, u := range meta.Upgrades {
		mark := ""
		if owned[u.ID] {
			mark = "owned"
		}
		fmt.Printf("  %-24s %-28s %-6d %s\n", u.ID, u.Name, u.CostVP, mark)
		fmt.Printf("  %-24s %s\n", "", u.Description)
	}
}
