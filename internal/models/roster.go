package models

import (
	"maps"
	"math"
	"sort"
)

// WarMachine is one war machine of a player's roster.
// A zero Level means the war machine is not owned.
type WarMachine struct {
	Name                 WarMachineName
	Level                int
	SacredCardLevel      int
	DamageBlueprintLevel int
	HealthBlueprintLevel int
	ArmorBlueprintLevel  int
	Rarity               Rarity
}

// Owned reports whether the war machine has been unlocked
func (w *WarMachine) Owned() bool {
	return w.Level > 0
}

// BlueprintLevel returns the blueprint level for a stat category
func (w *WarMachine) BlueprintLevel(category StatCategory) int {
	switch category {
	case StatDamage:
		return w.DamageBlueprintLevel
	case StatHealth:
		return w.HealthBlueprintLevel
	case StatArmor:
		return w.ArmorBlueprintLevel
	}
	return 0
}

// SetBlueprintLevel sets the blueprint level for a stat category
func (w *WarMachine) SetBlueprintLevel(category StatCategory, level int) {
	switch category {
	case StatDamage:
		w.DamageBlueprintLevel = level
	case StatHealth:
		w.HealthBlueprintLevel = level
	case StatArmor:
		w.ArmorBlueprintLevel = level
	}
}

// Definition returns the catalog entry of the war machine
func (w *WarMachine) Definition() *WarMachineDefinition {
	return GetWarMachineDefinition(w.Name)
}

// CrewHero is a support character that boosts the war machine it is assigned to.
// Attributes are percentages; zero means the attribute is not set.
type CrewHero struct {
	Name   string
	Damage float64
	Health float64
	Armor  float64
}

// Attribute returns the percentage bonus for a stat category
func (h *CrewHero) Attribute(category StatCategory) float64 {
	switch category {
	case StatDamage:
		return h.Damage
	case StatHealth:
		return h.Health
	case StatArmor:
		return h.Armor
	}
	return 0
}

// HasAttributes reports whether any attribute is set
func (h *CrewHero) HasAttributes() bool {
	return h.Damage != 0 || h.Health != 0 || h.Armor != 0
}

// ArtifactType maps an artifact percentage tier to the number owned
type ArtifactType map[int]int

// ArtifactTypes holds owned artifacts per stat category
type ArtifactTypes map[StatCategory]ArtifactType

// Factor returns the compounding multiplier of all artifacts of a category.
// Tiers are applied in ascending order so the float result is reproducible.
func (a ArtifactTypes) Factor(category StatCategory) float64 {
	artifacts := a[category]
	if len(artifacts) == 0 {
		return 1
	}

	tiers := make([]int, 0, len(artifacts))
	for tier := range artifacts {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)

	factor := 1.0
	for _, tier := range tiers {
		if count := artifacts[tier]; count > 0 {
			factor *= math.Pow(1+float64(tier)/100, float64(count))
		}
	}
	return factor
}

// Roster is a snapshot of everything the player owns
type Roster struct {
	WarMachines []WarMachine
	CrewHeroes  []CrewHero
	Artifacts   ArtifactTypes
}

// NewDefaultRoster returns a roster with every catalog war machine unowned
// at common rarity and no crew
func NewDefaultRoster() *Roster {
	roster := &Roster{
		Artifacts: ArtifactTypes{},
	}
	for _, name := range defaultRosterOrder() {
		roster.WarMachines = append(roster.WarMachines, WarMachine{Name: name, Rarity: Common})
	}
	return roster
}

func defaultRosterOrder() []WarMachineName {
	return []WarMachineName{
		Cloudfist, Earthshatterer, Sentinel, Judgement, Talos, Hunter, Fortress,
		Goliath, Thunderclap, Firecracker, Aegis, Curator, Harvester,
	}
}

// Clone returns a deep copy of the roster
func (r *Roster) Clone() *Roster {
	if r == nil {
		return nil
	}
	clone := &Roster{
		WarMachines: append([]WarMachine(nil), r.WarMachines...),
		CrewHeroes:  append([]CrewHero(nil), r.CrewHeroes...),
		Artifacts:   make(ArtifactTypes, len(r.Artifacts)),
	}
	for category, artifacts := range r.Artifacts {
		clone.Artifacts[category] = maps.Clone(artifacts)
	}
	return clone
}

// WarMachine returns a pointer into the roster for the named war machine, nil if absent
func (r *Roster) WarMachine(name WarMachineName) *WarMachine {
	for i := range r.WarMachines {
		if r.WarMachines[i].Name == name {
			return &r.WarMachines[i]
		}
	}
	return nil
}

// CrewHero returns a pointer into the roster for the named hero, nil if absent
func (r *Roster) CrewHero(name string) *CrewHero {
	for i := range r.CrewHeroes {
		if r.CrewHeroes[i].Name == name {
			return &r.CrewHeroes[i]
		}
	}
	return nil
}

// OwnedWarMachines returns copies of the owned war machines in roster order
func (r *Roster) OwnedWarMachines() []WarMachine {
	var owned []WarMachine
	for _, wm := range r.WarMachines {
		if wm.Owned() {
			owned = append(owned, wm)
		}
	}
	return owned
}

// ActiveCrewHeroes returns copies of the heroes with at least one attribute set
func (r *Roster) ActiveCrewHeroes() []CrewHero {
	var active []CrewHero
	for _, hero := range r.CrewHeroes {
		if hero.HasAttributes() {
			active = append(active, hero)
		}
	}
	return active
}

// TotalRarityOrdinal returns the sum of rarity ordinals over every war machine of the roster
func (r *Roster) TotalRarityOrdinal() int {
	total := 0
	for _, wm := range r.WarMachines {
		total += wm.Rarity.Ordinal()
	}
	return total
}

// SortByCatalog orders war machines by their catalog position
func (r *Roster) SortByCatalog() {
	sort.SliceStable(r.WarMachines, func(i, j int) bool {
		return catalogPosition(r.WarMachines[i].Name) < catalogPosition(r.WarMachines[j].Name)
	})
}
