package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/overtime-games/overtime/internal/catalog"
	"github.com/overtime-games/overtime/internal/config"
	"github.com/overtime-games/overtime/internal/meta"
	"github.com/overtime-games/overtime/internal/platform/tui"
	"github.com/overtime-games/overtime/internal/storage"
)

var (
	flagConfig      string
	flagCatalogPath string
	flagNoMeta      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play an interactive workday",
	Long: `Start an interactive workday run.

Controls:
  Space      - Stamp a form
  1-6        - Buy automation tier
  Tab        - Switch panel focus
  Up/Down    - Move within focused panel
  Enter      - Buy/activate focused item
  O          - Exchange 10 AP for order points
  P          - Pause
  E          - End the workday early
  R          - Start a new workday (after run end)
  Q/Ctrl+C   - Quit

Examples:
  overtime play
  overtime play --run-id monday-morning
  overtime play --config ./my-balancing.yaml --no-meta`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom balancing YAML")
	playCmd.Flags().StringVar(&flagCatalogPath, "catalog", "", "Path to custom content catalog YAML")
	playCmd.Flags().BoolVar(&flagNoMeta, "no-meta", false, "Ignore permanent upgrades for this run")
}

func runPlay(cmd *cobra.Command, args []string) {
	balancing, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading balancing config: %v\n", err)
		os.Exit(1)
	}
	cat, err := catalog.Load(flagCatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		// Continue without storage; the run still plays
		store = nil
	}

	metaState := meta.NewState()
	if store != nil {
		if loaded, metaErr := store.LoadMeta(); metaErr == nil {
			metaState = loaded
		}
	}

	runCfg := tui.RunConfig{
		RunID:     flagRunID,
		TickRate:  flagFPS,
		Balancing: balancing,
		Catalog:   cat,
		Meta:      metaState,
		UseMeta:   !flagNoMeta,
		Width:     width,
		Height:    height,
	}

	runErr := tui.Run(store, runCfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running workday: %v\n", runErr)
		os.Exit(1)
	}
}
