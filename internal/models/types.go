package models

// Rarity represents the rarity tier of a war machine
type Rarity string

const (
	Common    Rarity = "common"
	Uncommon  Rarity = "uncommon"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
	Mythic    Rarity = "mythic"
	Titan     Rarity = "titan"
	Angel     Rarity = "angel"
)

// AllRarities returns all rarities from lowest to highest
func AllRarities() []Rarity {
	return []Rarity{Common, Uncommon, Rare, Epic, Legendary, Mythic, Titan, Angel}
}

// Ordinal returns the position of the rarity (common = 0, angel = 7).
// Unknown rarities count as common.
func (r Rarity) Ordinal() int {
	switch r {
	case Common:
		return 0
	case Uncommon:
		return 1
	case Rare:
		return 2
	case Epic:
		return 3
	case Legendary:
		return 4
	case Mythic:
		return 5
	case Titan:
		return 6
	case Angel:
		return 7
	}
	return 0
}

// RarityFromOrdinal returns the rarity at the given position
func RarityFromOrdinal(ordinal int) (Rarity, bool) {
	all := AllRarities()
	if ordinal < 0 || ordinal >= len(all) {
		return "", false
	}
	return all[ordinal], true
}

// Next returns the rarity one tier above, false for angel
func (r Rarity) Next() (Rarity, bool) {
	return RarityFromOrdinal(r.Ordinal() + 1)
}

// RequiredLevel returns the war machine level at which this rarity becomes available
func (r Rarity) RequiredLevel() int {
	switch r {
	case Common:
		return 1
	case Uncommon:
		return 10
	case Rare:
		return 50
	case Epic:
		return 100
	case Legendary:
		return 150
	case Mythic:
		return 200
	case Titan:
		return 250
	case Angel:
		return 300
	}
	return 1
}

// AbilityActivationChance returns the percentage chance (0-100) that a war
// machine of this rarity triggers its ability on an attack
func (r Rarity) AbilityActivationChance() int {
	return 25 + 3*r.Ordinal()
}

// IsValid reports whether r is one of the known rarities
func (r Rarity) IsValid() bool {
	for _, known := range AllRarities() {
		if r == known {
			return true
		}
	}
	return false
}

// Specialization describes the combat role of a war machine
type Specialization string

const (
	SpecializationDamage Specialization = "damage"
	SpecializationTank   Specialization = "tank"
	SpecializationHealer Specialization = "healer"
)

// StatCategory is one of the three combat stats boosted by blueprints, crew and artifacts
type StatCategory string

const (
	StatDamage StatCategory = "damage"
	StatHealth StatCategory = "health"
	StatArmor  StatCategory = "armor"
)

// AllStatCategories returns all stat categories in deterministic order
func AllStatCategories() []StatCategory {
	return []StatCategory{StatDamage, StatHealth, StatArmor}
}

// Difficulty represents a campaign difficulty
type Difficulty string

const (
	Easy      Difficulty = "easy"
	Normal    Difficulty = "normal"
	Hard      Difficulty = "hard"
	Insane    Difficulty = "insane"
	Nightmare Difficulty = "nightmare"
)

// AllDifficulties returns all difficulties in campaign order
func AllDifficulties() []Difficulty {
	return []Difficulty{Easy, Normal, Hard, Insane, Nightmare}
}

// MaxCampaignMissions is the number of missions per difficulty
const MaxCampaignMissions = 90

// Mission identifies one campaign mission
type Mission struct {
	Difficulty Difficulty
	Level      int
}

// ArtifactTiers returns the percentage tiers an artifact can roll, ascending
func ArtifactTiers() []int {
	return []int{30, 35, 40, 45, 50, 55, 60, 65}
}
