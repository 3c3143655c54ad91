package campaign

import (
	"math"

	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/battle"
	"github.com/napolitain/solver-wm/internal/solver/stats"
)

// EnemySquadSize is the number of enemies of every mission
const EnemySquadSize = 5

// Base stats of one enemy before scaling
const (
	enemyBaseDamage = 260
	enemyBaseHealth = 1560
	enemyBaseArmor  = 30
)

// DifficultyMultiplier returns the enemy stat multiplier of a difficulty
func DifficultyMultiplier(difficulty models.Difficulty) float64 {
	switch difficulty {
	case models.Easy:
		return 1
	case models.Normal:
		return 360
	case models.Hard:
		return 2478600
	case models.Insane:
		return 5.8e12
	case models.Nightmare:
		return 2.92e18
	}
	return 1
}

// EnemySquad is the generated opposition of a mission
type EnemySquad struct {
	Units      battle.Squad
	TotalPower float64
}

// GenerateEnemySquad builds the enemy squad of a mission.
// Combat stats grow by 3x and the power estimate by 2x every ten levels,
// on top of 1.2x per level.
func GenerateEnemySquad(mission models.Mission) EnemySquad {
	base := DifficultyMultiplier(mission.Difficulty) * math.Pow(1.2, float64(mission.Level-1))
	step := float64((mission.Level - 1) / 10)
	powerMultiplier := math.Pow(2, step)
	statMultiplier := math.Pow(3, step)

	damage := enemyBaseDamage * base
	health := enemyBaseHealth * base
	armor := enemyBaseArmor * base

	squad := EnemySquad{Units: make(battle.Squad, 0, EnemySquadSize)}
	for i := 0; i < EnemySquadSize; i++ {
		squad.Units = append(squad.Units, battle.Unit{
			Name:      battle.EnemyName,
			Damage:    damage * statMultiplier,
			Health:    health * statMultiplier,
			MaxHealth: health * statMultiplier,
			Armor:     armor * statMultiplier,
		})
		squad.TotalPower += stats.Power(damage*powerMultiplier, health*powerMultiplier, armor*powerMultiplier)
	}

	return squad
}

// RequiredPower returns the campaign power needed to attempt a mission
func RequiredPower(mission models.Mission, squad EnemySquad) float64 {
	if mission.Difficulty == models.Easy && mission.Level >= 11 && mission.Level <= 30 {
		return squad.TotalPower * 0.5
	}
	if mission.Difficulty != models.Easy || mission.Level > 30 {
		return squad.TotalPower * 0.8
	}
	return squad.TotalPower * 0.3
}
