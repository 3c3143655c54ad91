package converter

import (
	"fmt"
	"sort"

	"github.com/napolitain/solver-wm/internal/models"
)

// ExportToRoster builds a roster from its export shape. Entries are merged
// over the default roster, so missing war machines stay unowned.
func ExportToRoster(export RosterExport) (*models.Roster, error) {
	roster := models.NewDefaultRoster()

	for _, key := range sortedKeys(export.WarMachines) {
		entry := export.WarMachines[key]
		if entry.Name == "" {
			entry.Name = key
		}

		name, err := ExportToModelWarMachineName(entry.Name)
		if err != nil {
			return nil, err
		}
		rarity, err := ExportToModelRarity(entry.Rarity)
		if err != nil {
			return nil, fmt.Errorf("war machine %s: %w", name, err)
		}

		wm := roster.WarMachine(name)
		wm.Level = entry.Level
		wm.SacredCardLevel = entry.SacredCardLevel
		wm.DamageBlueprintLevel = entry.DamageBlueprintLevel
		wm.HealthBlueprintLevel = entry.HealthBlueprintLevel
		wm.ArmorBlueprintLevel = entry.ArmorBlueprintLevel
		wm.Rarity = rarity
	}

	heroes := export.CrewHeroes
	if len(heroes) == 0 {
		heroes = export.Heroes
	}
	for _, key := range sortedKeys(heroes) {
		entry := heroes[key]
		if entry.Name == "" {
			entry.Name = key
		}
		roster.CrewHeroes = append(roster.CrewHeroes, models.CrewHero{
			Name:   entry.Name,
			Damage: entry.AttributeDamage,
			Health: entry.AttributeHealth,
			Armor:  entry.AttributeArmor,
		})
	}

	for _, key := range sortedKeys(export.ArtifactTypes) {
		entry := export.ArtifactTypes[key]
		if entry.Name == "" {
			entry.Name = key
		}

		category, err := ExportToModelStatCategory(entry.Name)
		if err != nil {
			return nil, err
		}
		artifacts, err := ExportToModelArtifactType(entry.Percents)
		if err != nil {
			return nil, fmt.Errorf("artifact type %s: %w", category, err)
		}
		if len(artifacts) > 0 {
			roster.Artifacts[category] = artifacts
		}
	}

	return roster, nil
}

// RosterToExport converts a roster to its export shape. Zero values are omitted.
func RosterToExport(roster *models.Roster) RosterExport {
	export := RosterExport{
		WarMachines: make(map[string]WarMachineExport, len(roster.WarMachines)),
	}

	for _, wm := range roster.WarMachines {
		export.WarMachines[string(wm.Name)] = WarMachineExport{
			Name:                 string(wm.Name),
			Level:                wm.Level,
			SacredCardLevel:      wm.SacredCardLevel,
			DamageBlueprintLevel: wm.DamageBlueprintLevel,
			HealthBlueprintLevel: wm.HealthBlueprintLevel,
			ArmorBlueprintLevel:  wm.ArmorBlueprintLevel,
			Rarity:               string(wm.Rarity),
		}
	}

	if len(roster.CrewHeroes) > 0 {
		export.CrewHeroes = make(map[string]CrewHeroExport, len(roster.CrewHeroes))
		for _, hero := range roster.CrewHeroes {
			export.CrewHeroes[hero.Name] = CrewHeroExport{
				Name:            hero.Name,
				AttributeDamage: hero.Damage,
				AttributeHealth: hero.Health,
				AttributeArmor:  hero.Armor,
			}
		}
	}

	for _, category := range models.AllStatCategories() {
		artifacts := roster.Artifacts[category]
		if len(artifacts) == 0 {
			continue
		}
		if export.ArtifactTypes == nil {
			export.ArtifactTypes = make(map[string]ArtifactTypeExport)
		}
		export.ArtifactTypes[string(category)] = ArtifactTypeExport{
			Name:     string(category),
			Percents: ModelToExportArtifactType(artifacts),
		}
	}

	return export
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
