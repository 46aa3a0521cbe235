package meta

import "fmt"

// UpgradeDef describes a purchasable permanent upgrade.
// Levels of the same family share an ID prefix; each level is its own ID.
type UpgradeDef struct {
	ID          string
	Name        string
	Description string
	CostVP      int
}

// Upgrades is the built-in upgrade catalog.
var Upgrades = []UpgradeDef{
	{ID: "click_bonus_1", Name: "Ergonomic Stamp", Description: "+10% AP per stamp", CostVP: 10},
	{ID: "click_bonus_2", Name: "Self-Inking Stamp", Description: "+10% AP per stamp", CostVP: 25},
	{ID: "energy_max_1", Name: "Standing Desk", Description: "+10% max energy", CostVP: 15},
	{ID: "energy_max_2", Name: "Office Plant", Description: "+10% max energy", CostVP: 35},
	{ID: "concentration_regen_1", Name: "Noise-Cancelling Headphones", Description: "-25% concentration drift", CostVP: 20},
	{ID: "auto_discount_1", Name: "Bulk Procurement", Description: "-10% automation costs", CostVP: 20},
	{ID: "auto_discount_2", Name: "Framework Agreement", Description: "-10% automation costs", CostVP: 45},
	{ID: "start_bonus_1", Name: "Head Start", Description: "Begin each day with 5 AP", CostVP: 12},
	{ID: "output_bonus_1", Name: "Process Handbook", Description: "+15% passive output", CostVP: 25},
	{ID: "output_bonus_2", Name: "Lean Office", Description: "+15% passive output", CostVP: 55},
	{ID: "motivation_stable_1", Name: "Plaque of Merit", Description: "-30% motivation decay", CostVP: 30},
	{ID: "chaos_resist_1", Name: "Filing Discipline I", Description: "Extra workload damping", CostVP: 25},
	{ID: "chaos_resist_2", Name: "Filing Discipline II", Description: "Extra workload damping", CostVP: 50},
	{ID: "chaos_resist_3", Name: "Filing Discipline III", Description: "Extra workload damping", CostVP: 90},
}

// FindUpgrade looks up an upgrade definition by ID.
func FindUpgrade(id string) (UpgradeDef, bool) {
	for _, u := range Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return UpgradeDef{}, false
}

// Buy deducts the upgrade cost from the available VP balance and records
// the upgrade. It fails without mutation if the upgrade is unknown,
// already owned, or the balance is insufficient.
func (s *State) Buy(id string) error {
	def, ok := FindUpgrade(id)
	if !ok {
		return fmt.Errorf("meta: unknown upgrade %q", id)
	}
	if hasUpgrade(s.Upgrades, id) {
		return fmt.Errorf("meta: upgrade %q already owned", id)
	}
	if s.AvailableVP < def.CostVP {
		return fmt.Errorf("meta: need %d VP for %q, have %d", def.CostVP, id, s.AvailableVP)
	}

	s.AvailableVP -= def.CostVP
	s.Upgrades = append(s.Upgrades, id)
	return nil
}
