package battle

import (
	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/stats"
)

// EnemyName is the name carried by every enemy unit
const EnemyName models.WarMachineName = "enemy"

// Unit is a combatant of one battle. Health is mutated while the battle runs.
type Unit struct {
	Name                    models.WarMachineName
	Damage                  float64
	Health                  float64
	MaxHealth               float64
	Armor                   float64
	AbilityActivationChance int
}

// NewUnit builds a full-health combatant from resolved stats
func NewUnit(name models.WarMachineName, s stats.Stats, rarity models.Rarity) Unit {
	return Unit{
		Name:                    name,
		Damage:                  s.Damage,
		Health:                  s.Health,
		MaxHealth:               s.Health,
		Armor:                   s.Armor,
		AbilityActivationChance: rarity.AbilityActivationChance(),
	}
}

// Alive reports whether the unit can still act
func (u *Unit) Alive() bool {
	return u.Health > 0
}

func (u *Unit) heal(amount float64) {
	u.Health = min(u.MaxHealth, u.Health+amount)
}

// Squad is an ordered list of combatants
type Squad []Unit

// Clone returns an independent copy of the squad
func (s Squad) Clone() Squad {
	return append(Squad(nil), s...)
}

// DamageDealt returns the damage an attack deals through armor
func DamageDealt(attack, armor float64) float64 {
	return max(attack-armor, 0)
}
