package stats

import (
	"math"

	"github.com/napolitain/solver-wm/internal/models"
)

// Every bonus step compounds by 5%
const bonusBase = 1.05

// Engineer experience curve
const (
	engineerXPPerLevel      = 100
	engineerFirstLevelUpXP  = 600
	engineerLevelUpIncrease = 50
)

// Stats are the resolved combat stats of a war machine or an enemy
type Stats struct {
	Damage float64
	Health float64
	Armor  float64
	Power  float64
}

// Power computes the power estimate of a set of combat stats
func Power(damage, health, armor float64) float64 {
	return math.Floor(math.Pow(damage*10, 0.7) + math.Pow(health, 0.7) + math.Pow(armor*10, 0.7))
}

// EngineerLevelFromXP converts engineer experience into a level
func EngineerLevelFromXP(xp int) int {
	level := 1
	required := engineerFirstLevelUpXP
	for xp >= required {
		xp -= required
		level++
		required += engineerLevelUpIncrease
	}
	return level
}

// EngineerLevel derives the engineer level from the levels invested in owned war machines
func EngineerLevel(roster *models.Roster) int {
	xp := 0
	for _, wm := range roster.WarMachines {
		if wm.Owned() {
			xp += (wm.Level - 1) * engineerXPPerLevel
		}
	}
	return EngineerLevelFromXP(xp)
}

// CrewSlots returns how many crew heroes fit on one war machine
func CrewSlots(engineerLevel int) int {
	switch {
	case engineerLevel >= 60:
		return 6
	case engineerLevel >= 30:
		return 5
	default:
		return 4
	}
}

// bonus returns the compounded bonus of n steps as a fraction (0.05 for one step)
func bonus(steps int) float64 {
	return math.Pow(bonusBase, float64(steps)) - 1
}

// Resolver resolves war machine stats against one roster snapshot
type Resolver struct {
	engineerLevel int
	raritySum     int
	artifactBonus map[models.StatCategory]float64
}

// NewResolver captures the roster-wide bonuses of a roster
func NewResolver(roster *models.Roster) *Resolver {
	return newResolver(roster, EngineerLevel(roster))
}

func newResolver(roster *models.Roster, engineerLevel int) *Resolver {
	r := &Resolver{
		engineerLevel: engineerLevel,
		raritySum:     roster.TotalRarityOrdinal(),
		artifactBonus: make(map[models.StatCategory]float64, 3),
	}
	for _, category := range models.AllStatCategories() {
		r.artifactBonus[category] = roster.Artifacts.Factor(category) - 1
	}
	return r
}

// EngineerLevel returns the engineer level the resolver was built with
func (r *Resolver) EngineerLevel() int {
	return r.engineerLevel
}

// Resolve computes the stats of a war machine with the given crew.
// Factors are multiplied in a fixed order so results are bit-for-bit stable.
func (r *Resolver) Resolve(unit models.WarMachine, crew []models.CrewHero) Stats {
	def := models.GetWarMachineDefinition(unit.Name)
	if def == nil {
		return Stats{}
	}

	level := unit.Level
	if level < 1 {
		level = 1
	}

	levelBonus := bonus(level - 1)
	engineerBonus := bonus(r.engineerLevel - 1)
	rarityBonus := bonus(unit.Rarity.Ordinal() + r.raritySum)
	sacredCard := math.Pow(bonusBase, float64(unit.SacredCardLevel))

	var s Stats
	for _, category := range models.AllStatCategories() {
		base := def.BaseStat(category) *
			(levelBonus + 1) *
			(engineerBonus + 1) *
			(rarityBonus + 1) *
			(bonus(unit.BlueprintLevel(category)) + 1) *
			sacredCard *
			(r.artifactBonus[category] + 1)

		crewBonus := 0.0
		for i := range crew {
			crewBonus += crew[i].Attribute(category) / 100
		}

		value := math.Floor(base * (crewBonus + 1))
		switch category {
		case models.StatDamage:
			s.Damage = value
		case models.StatHealth:
			s.Health = value
		case models.StatArmor:
			s.Armor = value
		}
	}

	s.Power = Power(s.Damage, s.Health, s.Armor)
	return s
}

// Resolve computes the stats of one war machine with its crew against a roster
// and an explicit engineer level
func Resolve(unit models.WarMachine, crew []models.CrewHero, roster *models.Roster, engineerLevel int) Stats {
	return newResolver(roster, engineerLevel).Resolve(unit, crew)
}
