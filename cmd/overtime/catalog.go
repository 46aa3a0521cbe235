package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/overtime-games/overtime/internal/catalog"
)

var flagCatCatalogPath string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List automations, power-ups and measures",
	Run:   runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&flagCatCatalogPath, "catalog", "", "Path to custom content catalog YAML")
}

func runCatalog(cmd *cobra.Command, args []string) {
	cat, err := catalog.Load(flagCatCatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Automations")
	for i, a := range cat.Automations {
		fmt.Printf("  %d. %-18s %6.0f AP  +%.1f AP/s per level\n", i+1, a.Name, a.BaseCost, a.BaseOutput)
		fmt.Printf("     %s\n", a.Description)
	}

	fmt.Println()
	fmt.Println("Power-Ups")
	for _, p := range cat.PowerUps {
		fmt.Printf("  %-18s %3.0fs active, %3.0fs cooldown\n", p.Name, p.DurationSec, p.CooldownSec)
		fmt.Printf("     %s\n", p.Description)
	}

	fmt.Println()
	fmt.Println("Measures")
	for _, m := range cat.Measures {
		fmt.Printf("  %-18s %3.0f OP", m.Name, m.CostOP)
		if m.DurationSec > 0 {
			fmt.Printf(", %3.0fs active", m.DurationSec)
		}
		fmt.Printf(", %3.0fs cooldown\n", m.CooldownSec)
		fmt.Printf("     %s\n", m.Description)
	}
}
