package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogParses(t *testing.T) {
	c := MustDefault()

	if len(c.Automations) != 6 {
		t.Errorf("Automations = %d, want 6", len(c.Automations))
	}
	if len(c.PowerUps) != 4 {
		t.Errorf("PowerUps = %d, want 4", len(c.PowerUps))
	}
	if len(c.Measures) != 5 {
		t.Errorf("Measures = %d, want 5", len(c.Measures))
	}
	if len(c.Events) != 5 {
		t.Errorf("Events = %d, want 5", len(c.Events))
	}
}

func TestDefaultCatalogDefinitionsComplete(t *testing.T) {
	c := MustDefault()

	for _, a := range c.Automations {
		if a.ID == "" || a.Name == "" || a.BaseCost <= 0 || a.Growth <= 1 || a.BaseOutput <= 0 {
			t.Errorf("Incomplete automation: %+v", a)
		}
	}
	for _, p := range c.PowerUps {
		if p.ID == "" || p.DurationSec <= 0 || p.CooldownSec <= 0 || len(p.Effects) == 0 {
			t.Errorf("Incomplete power-up: %+v", p)
		}
	}
	for _, m := range c.Measures {
		if m.ID == "" || m.CostOP <= 0 || m.CooldownSec <= 0 || len(m.Effects) == 0 {
			t.Errorf("Incomplete measure: %+v", m)
		}
	}
	for _, e := range c.Events {
		if e.ID == "" || e.ProbabilityPerMin <= 0 || len(e.Effects) == 0 {
			t.Errorf("Incomplete event: %+v", e)
		}
	}
}

func TestEffectTargetsAndKindsAreKnown(t *testing.T) {
	c := MustDefault()

	targets := map[Target]bool{
		TargetEnergy: true, TargetConcentration: true, TargetMotivation: true,
		TargetWorkload: true, TargetConfusion: true, TargetClarity: true,
		TargetWorkloadRate: true,
	}
	kinds := map[Kind]bool{
		KindInstant: true, KindAddition: true, KindMultiplier: true, KindClamp: true,
	}

	check := func(owner string, effects []Effect) {
		for _, eff := range effects {
			if !targets[eff.Target] {
				t.Errorf("%s: unknown target %q", owner, eff.Target)
			}
			if !kinds[eff.Kind] {
				t.Errorf("%s: unknown kind %q", owner, eff.Kind)
			}
			if eff.Kind == KindMultiplier && eff.Target != TargetWorkloadRate {
				t.Errorf("%s: multiplier on non-rate target %q", owner, eff.Target)
			}
			if eff.Kind == KindClamp && eff.Target != TargetClarity {
				t.Errorf("%s: clamp on non-clarity target %q", owner, eff.Target)
			}
		}
	}

	for _, p := range c.PowerUps {
		check(p.ID, p.Effects)
	}
	for _, m := range c.Measures {
		check(m.ID, m.Effects)
	}
	for _, e := range c.Events {
		check(e.ID, e.Effects)
	}
}

func TestEndCommentsCoverEveryReason(t *testing.T) {
	c := MustDefault()
	for _, reason := range []string{"energy", "concentration", "motivation", "time", "overload", "collapse", "user"} {
		if len(c.EndComments[reason]) == 0 {
			t.Errorf("No end comments for reason %q", reason)
		}
	}
}

func TestLookups(t *testing.T) {
	c := MustDefault()

	if def, ok := c.Automation("auto_tray"); !ok || def.BaseCost != 10 {
		t.Errorf("Automation(auto_tray) = %+v, %v", def, ok)
	}
	if def, ok := c.PowerUp("coffee"); !ok || def.DurationSec != 30 {
		t.Errorf("PowerUp(coffee) = %+v, %v", def, ok)
	}
	if def, ok := c.Measure("delegation"); !ok || def.CostOP != 30 {
		t.Errorf("Measure(delegation) = %+v, %v", def, ok)
	}
	if def, ok := c.Event("printer_jam"); !ok || def.ProbabilityPerMin != 0.05 {
		t.Errorf("Event(printer_jam) = %+v, %v", def, ok)
	}

	if _, ok := c.Automation("bogus"); ok {
		t.Error("Automation lookup found a bogus ID")
	}
	if _, ok := c.PowerUp("bogus"); ok {
		t.Error("PowerUp lookup found a bogus ID")
	}
	if _, ok := c.Measure("bogus"); ok {
		t.Error("Measure lookup found a bogus ID")
	}
	if _, ok := c.Event("bogus"); ok {
		t.Error("Event lookup found a bogus ID")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	custom := []byte(`
automations:
  - id: test_auto
    name: Test Automation
    base_output: 2.0
    base_cost: 5
    growth: 1.1
    chaos_factor: 0.01
end_comments:
  user:
    - Done for the day.
`)
	if err := os.WriteFile(path, custom, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if len(c.Automations) != 1 || c.Automations[0].ID != "test_auto" {
		t.Errorf("Custom catalog automations = %+v", c.Automations)
	}
	if len(c.EndComments["user"]) != 1 {
		t.Errorf("Custom end comments = %+v", c.EndComments)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load with a missing custom path did not fail")
	}
}
