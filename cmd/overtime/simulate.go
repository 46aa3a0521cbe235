package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/overtime-games/overtime/internal/catalog"
	"github.com/overtime-games/overtime/internal/config"
	"github.com/overtime-games/overtime/internal/events"
	"github.com/overtime-games/overtime/internal/meta"
	"github.com/overtime-games/overtime/internal/sim"
)

var (
	flagTicks      int
	flagDeltaMS    float64
	flagClickEvery int
	flagSimConfig  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless deterministic workday",
	Long: `Run a workday without a terminal UI: a fixed number of ticks with a
scripted stamp cadence, then print the final run record.

The same run ID with the same flags always produces the same record,
which makes this useful for balancing and for verifying replays.

Examples:
  overtime simulate --run-id tuning-1 --ticks 9000
  overtime simulate --ticks 36000 --click-every 5`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 9000, "Number of simulation ticks")
	simulateCmd.Flags().Float64Var(&flagDeltaMS, "delta-ms", 33.333, "Milliseconds per tick")
	simulateCmd.Flags().IntVar(&flagClickEvery, "click-every", 10, "Stamp once every N ticks (0 = never)")
	simulateCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom balancing YAML")
}

func runSimulate(cmd *cobra.Command, args []string) {
	balancing, err := config.Load(flagSimConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balancing config: %v\n", err)
		os.Exit(1)
	}
	cat := catalog.MustDefault()

	runID := flagRunID
	if runID == "" {
		runID = "simulate"
	}

	s := sim.New(runID, balancing, cat, meta.DefaultMultipliers(), nil)
	sched := events.NewScheduler(cat.Events, s)

	for i := 0; i < flagTicks && s.State().Status == sim.StatusRunning; i++ {
		if flagClickEvery > 0 && i%flagClickEvery == 0 {
			s.Click()
		}
		// Greedy script: buy the cheapest automation whenever affordable
		for _, def := range cat.Automations {
			if s.BuyAutomation(def) {
				break
			}
		}
		s.Update(flagDeltaMS)
		sched.Poll()
	}

	if s.State().Status == sim.StatusRunning {
		s.EndRun()
	}

	stats := s.ExtractStats()
	fmt.Printf("Run:           %s\n", stats.RunID)
	fmt.Printf("Duration:      %.1fs\n", stats.DurationMS/1000)
	fmt.Printf("End reason:    %s\n", stats.EndReason)
	fmt.Printf("VP:            %d\n", stats.VP)
	fmt.Printf("Total AP:      %.1f\n", stats.TotalAP)
	fmt.Printf("Stamps:        %d (%.1f/min avg)\n", stats.Clicks, stats.AvgKPM)
	fmt.Printf("Peak OP:       %.1f\n", stats.PeakOP)
	fmt.Printf("Peak workload: %.2f\n", stats.PeakWorkload)
	fmt.Printf("Min energy:    %.2f\n", stats.MinEnergy)
	if len(stats.Events) > 0 {
		fmt.Printf("Events:        %v\n", stats.Events)
	}
}
