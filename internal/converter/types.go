// Package converter provides conversions between the roster export shape and model types
package converter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/napolitain/solver-wm/internal/models"
)

// Conversion errors
var (
	ErrUnknownWarMachine = errors.New("unknown war machine")
	ErrInvalidRarity     = errors.New("invalid rarity")
	ErrUnknownArtifact   = errors.New("unknown artifact type")
	ErrInvalidTier       = errors.New("invalid artifact tier")
)

// WarMachineExport is a war machine as written in roster files
type WarMachineExport struct {
	Name                 string `json:"name" yaml:"name"`
	Level                int    `json:"level,omitempty" yaml:"level,omitempty"`
	SacredCardLevel      int    `json:"sacredCardLevel,omitempty" yaml:"sacredCardLevel,omitempty"`
	DamageBlueprintLevel int    `json:"damageBlueprintLevel,omitempty" yaml:"damageBlueprintLevel,omitempty"`
	HealthBlueprintLevel int    `json:"healthBlueprintLevel,omitempty" yaml:"healthBlueprintLevel,omitempty"`
	ArmorBlueprintLevel  int    `json:"armorBlueprintLevel,omitempty" yaml:"armorBlueprintLevel,omitempty"`
	Rarity               string `json:"rarity,omitempty" yaml:"rarity,omitempty"`
}

// CrewHeroExport is a crew hero as written in roster files
type CrewHeroExport struct {
	Name            string  `json:"name" yaml:"name"`
	AttributeDamage float64 `json:"attributeDamage,omitempty" yaml:"attributeDamage,omitempty"`
	AttributeHealth float64 `json:"attributeHealth,omitempty" yaml:"attributeHealth,omitempty"`
	AttributeArmor  float64 `json:"attributeArmor,omitempty" yaml:"attributeArmor,omitempty"`
}

// ArtifactTypeExport lists owned artifacts of one stat, keyed by percentage tier
type ArtifactTypeExport struct {
	Name     string         `json:"name" yaml:"name"`
	Percents map[string]int `json:"percents" yaml:"percents"`
}

// RosterExport is the file shape of a roster. Heroes is accepted as an alias of CrewHeroes.
type RosterExport struct {
	WarMachines   map[string]WarMachineExport   `json:"warMachines,omitempty" yaml:"warMachines,omitempty"`
	CrewHeroes    map[string]CrewHeroExport     `json:"crewHeroes,omitempty" yaml:"crewHeroes,omitempty"`
	Heroes        map[string]CrewHeroExport     `json:"heroes,omitempty" yaml:"heroes,omitempty"`
	ArtifactTypes map[string]ArtifactTypeExport `json:"artifactTypes,omitempty" yaml:"artifactTypes,omitempty"`
}

// ExportToModelRarity converts an exported rarity, empty meaning common
func ExportToModelRarity(rarity string) (models.Rarity, error) {
	if rarity == "" {
		return models.Common, nil
	}
	r := models.Rarity(rarity)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRarity, rarity)
	}
	return r, nil
}

// ExportToModelWarMachineName validates a war machine name against the catalog
func ExportToModelWarMachineName(name string) (models.WarMachineName, error) {
	wmName := models.WarMachineName(name)
	if models.GetWarMachineDefinition(wmName) == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownWarMachine, name)
	}
	return wmName, nil
}

// ExportToModelStatCategory converts an artifact type name
func ExportToModelStatCategory(name string) (models.StatCategory, error) {
	for _, category := range models.AllStatCategories() {
		if string(category) == name {
			return category, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownArtifact, name)
}

// ExportToModelArtifactType converts percentage tiers, dropping zero counts
func ExportToModelArtifactType(percents map[string]int) (models.ArtifactType, error) {
	artifacts := make(models.ArtifactType, len(percents))
	for key, count := range percents {
		tier, err := strconv.Atoi(key)
		if err != nil || tier <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTier, key)
		}
		if count != 0 {
			artifacts[tier] = count
		}
	}
	return artifacts, nil
}

// ModelToExportArtifactType converts owned artifacts back to string tiers
func ModelToExportArtifactType(artifacts models.ArtifactType) map[string]int {
	tiers := make([]int, 0, len(artifacts))
	for tier, count := range artifacts {
		if count != 0 {
			tiers = append(tiers, tier)
		}
	}
	sort.Ints(tiers)

	percents := make(map[string]int, len(tiers))
	for _, tier := range tiers {
		percents[strconv.Itoa(tier)] = artifacts[tier]
	}
	return percents
}
