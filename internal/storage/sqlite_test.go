package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/overtime-games/overtime/internal/meta"
	"github.com/overtime-games/overtime/internal/sim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	stats := sim.RunStats{
		RunID:        "run-1",
		DurationMS:   120_000,
		EndReason:    sim.ReasonTime,
		VP:           25,
		TotalAP:      500,
		PeakOP:       42.5,
		Clicks:       100,
		AvgKPM:       50,
		PeakWorkload: 0.8,
		MinEnergy:    0.2,
		Events:       []string{"audit", "printer_jam"},
	}

	id, err := store.SaveRun(stats)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == 0 {
		t.Error("SaveRun() returned zero ID")
	}

	if _, err := store.SaveRun(sim.RunStats{RunID: "run-2", EndReason: sim.ReasonEnergy, VP: 3}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	entries, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(entries))
	}

	// Newest first
	if entries[0].RunID != "run-2" {
		t.Errorf("Expected run-2 first, got %s", entries[0].RunID)
	}

	e := entries[1]
	if e.VP != 25 || e.Clicks != 100 || e.EndReason != string(sim.ReasonTime) {
		t.Errorf("Round-trip mismatch: %+v", e)
	}
	if e.DurationMS != 120_000 || e.PeakOP != 42.5 || e.MinEnergy != 0.2 {
		t.Errorf("Round-trip mismatch: %+v", e)
	}
	if len(e.Events) != 2 || e.Events[0] != "audit" || e.Events[1] != "printer_jam" {
		t.Errorf("Events round-trip mismatch: %v", e.Events)
	}
}

func TestRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(sim.RunStats{RunID: "run", EndReason: sim.ReasonUser, VP: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	entries, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(entries))
	}
}

func TestEmptyEventsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(sim.RunStats{RunID: "quiet", EndReason: sim.ReasonUser}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	entries, err := store.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(entries[0].Events) != 0 {
		t.Errorf("Expected no events, got %v", entries[0].Events)
	}
}

func TestBestVPAndRunCount(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestVP()
	if err != nil {
		t.Fatalf("BestVP() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestVP on empty store = %d, want 0", best)
	}

	for _, vp := range []int{10, 40, 25} {
		if _, err := store.SaveRun(sim.RunStats{RunID: "run", EndReason: sim.ReasonTime, VP: vp}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err = store.BestVP()
	if err != nil {
		t.Fatalf("BestVP() failed: %v", err)
	}
	if best != 40 {
		t.Errorf("BestVP = %d, want 40", best)
	}

	n, err := store.RunCount()
	if err != nil {
		t.Fatalf("RunCount() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("RunCount = %d, want 3", n)
	}

	total, err := store.TotalVP()
	if err != nil {
		t.Fatalf("TotalVP() failed: %v", err)
	}
	if total != 75 {
		t.Errorf("TotalVP = %d, want 75", total)
	}
}

func TestTotalVPEmptyStore(t *testing.T) {
	store := openTestStore(t)

	total, err := store.TotalVP()
	if err != nil {
		t.Fatalf("TotalVP() failed: %v", err)
	}
	if total != 0 {
		t.Errorf("TotalVP on empty store = %d, want 0", total)
	}
}

func TestLoadMetaDefaultsWhenEmpty(t *testing.T) {
	store := openTestStore(t)

	st, err := store.LoadMeta()
	if err != nil {
		t.Fatalf("LoadMeta() failed: %v", err)
	}
	if st.Rank != 1 || st.RankTitle != "Intern" {
		t.Errorf("Fresh meta state = %+v", st)
	}
	if st.TotalVP != 0 || len(st.Upgrades) != 0 {
		t.Errorf("Fresh meta state not empty: %+v", st)
	}
}

func TestSaveAndLoadMeta(t *testing.T) {
	store := openTestStore(t)

	st := meta.State{
		Rank:        3,
		RankTitle:   "Sachbearbeiter",
		TotalVP:     210,
		AvailableVP: 55,
		Upgrades:    []string{"click_bonus_1", "energy_max_1"},
	}
	if err := store.SaveMeta(st); err != nil {
		t.Fatalf("SaveMeta() failed: %v", err)
	}

	loaded, err := store.LoadMeta()
	if err != nil {
		t.Fatalf("LoadMeta() failed: %v", err)
	}
	if loaded.Rank != 3 || loaded.RankTitle != "Sachbearbeiter" {
		t.Errorf("Meta round-trip mismatch: %+v", loaded)
	}
	if loaded.TotalVP != 210 || loaded.AvailableVP != 55 {
		t.Errorf("VP balances mismatch: %+v", loaded)
	}
	if len(loaded.Upgrades) != 2 || loaded.Upgrades[0] != "click_bonus_1" {
		t.Errorf("Upgrades mismatch: %v", loaded.Upgrades)
	}

	// Saving again overwrites the single row
	st.AvailableVP = 5
	if err := store.SaveMeta(st); err != nil {
		t.Fatalf("SaveMeta() failed: %v", err)
	}
	loaded, err = store.LoadMeta()
	if err != nil {
		t.Fatalf("LoadMeta() failed: %v", err)
	}
	if loaded.AvailableVP != 5 {
		t.Errorf("AvailableVP after overwrite = %d, want 5", loaded.AvailableVP)
	}
}
