package battle

import (
	"math/rand/v2"

	"github.com/napolitain/solver-wm/internal/models"
)

// MaxRounds is the number of rounds after which the player loses
const MaxRounds = 20

// Status is the outcome of a battle
type Status string

const (
	Win  Status = "win"
	Lose Status = "lose"
)

// Result is the outcome of one battle
type Result struct {
	Status Status
	// RoundsPlayed counts the rounds started, including one cut short by a win or loss
	RoundsPlayed int
}

// Chance overrides for the deterministic passes
const (
	NeverActivate  = 0
	AlwaysActivate = 100
)

// Options control ability activation and randomness
type Options struct {
	// Rand drives ability rolls and random targets; nil uses a randomly seeded source
	Rand *rand.Rand
	// ChanceOverride replaces every unit's ability activation chance when set
	ChanceOverride *int
}

// WithChance returns options that force every ability chance to chance
func WithChance(rng *rand.Rand, chance int) Options {
	return Options{Rand: rng, ChanceOverride: &chance}
}

// Simulate runs one battle. Both squads are mutated; callers pass clones.
func Simulate(player, enemy Squad, opts Options) Result {
	if len(player) == 0 {
		return Result{Status: Lose}
	}
	if len(enemy) == 0 {
		return Result{Status: Win}
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	b := &battle{
		player:         player,
		enemy:          enemy,
		rng:            rng,
		chanceOverride: opts.ChanceOverride,
	}
	return b.run()
}

type battle struct {
	player         Squad
	enemy          Squad
	rng            *rand.Rand
	chanceOverride *int
}

func (b *battle) run() Result {
	enemyTarget := 0
	playerTarget := 0

	for round := 1; round <= MaxRounds; round++ {
		for i := range b.player {
			attacker := &b.player[i]
			if !attacker.Alive() {
				continue
			}

			target := &b.enemy[enemyTarget]
			damage := DamageDealt(attacker.Damage, target.Armor)
			extra := b.applyAbility(attacker, target)
			target.Health -= damage + extra

			if !target.Alive() {
				enemyTarget++
			}
			if enemyTarget > len(b.enemy)-1 {
				return Result{Status: Win, RoundsPlayed: round}
			}
		}

		for i := range b.enemy {
			attacker := &b.enemy[i]
			if !attacker.Alive() {
				continue
			}

			target := &b.player[playerTarget]
			target.Health -= DamageDealt(attacker.Damage, target.Armor)

			if !target.Alive() {
				playerTarget++
			}
			if playerTarget > len(b.player)-1 {
				return Result{Status: Lose, RoundsPlayed: round}
			}
		}
	}

	return Result{Status: Lose, RoundsPlayed: MaxRounds}
}

// rollAbility draws a uniform integer in [1, 100] and compares it to the chance
func (b *battle) rollAbility(attacker *Unit) bool {
	roll := b.rng.IntN(100) + 1
	chance := attacker.AbilityActivationChance
	if b.chanceOverride != nil {
		chance = *b.chanceOverride
	}
	return roll <= chance
}

// applyAbility triggers the attacker's ability and returns the extra damage
// dealt to the current target. Side effects on other units are applied directly.
func (b *battle) applyAbility(attacker, target *Unit) float64 {
	if !b.rollAbility(attacker) {
		return 0
	}

	switch attacker.Name {
	case models.Cloudfist, models.Talos:
		return DamageDealt(attacker.Damage*2, target.Armor)
	case models.Aegis:
		return DamageDealt(attacker.Damage*1.6, target.Armor)
	case models.Firecracker:
		return DamageDealt(attacker.Damage*1.5, target.Armor)
	case models.Goliath:
		attacker.heal(attacker.MaxHealth * 0.1)
	case models.Earthshatterer:
		b.hitAll(attacker.Damage * 0.8)
	case models.Judgement:
		b.hitAll(attacker.Damage * 0.6)
	case models.Fortress:
		for _, enemy := range randomTargets(b.rng, b.enemy, 2) {
			enemy.Health -= DamageDealt(attacker.Damage*0.6, enemy.Armor)
		}
	case models.Sentinel:
		for i := range b.player {
			if b.player[i].Alive() {
				b.player[i].heal(attacker.Damage * 1.5)
			}
		}
	case models.Hunter:
		for _, ally := range randomTargets(b.rng, b.player, 2) {
			ally.heal(attacker.Damage * 1.5)
		}
	case models.Thunderclap:
		for _, enemy := range randomTargets(b.rng, b.enemy, 3) {
			enemy.Health -= DamageDealt(attacker.Damage*1.2, enemy.Armor)
		}
	case models.Harvester:
		// enemies die in order, so the last one is hit even if the front line is alive
		last := &b.enemy[len(b.enemy)-1]
		last.Health -= DamageDealt(attacker.Damage*1.3, last.Armor)
	case models.Curator:
		if ally := leastMissingHealth(b.player); ally != nil {
			ally.heal(attacker.Damage * 1.5)
		}
	}

	return 0
}

func (b *battle) hitAll(attack float64) {
	for i := range b.enemy {
		b.enemy[i].Health -= DamageDealt(attack, b.enemy[i].Armor)
	}
}

// leastMissingHealth returns the alive unit with the smallest missing health ratio,
// the first one on ties
func leastMissingHealth(squad Squad) *Unit {
	var best *Unit
	bestRatio := 0.0
	for i := range squad {
		unit := &squad[i]
		if !unit.Alive() {
			continue
		}
		ratio := (unit.MaxHealth - unit.Health) / unit.MaxHealth
		if best == nil || ratio < bestRatio {
			best, bestRatio = unit, ratio
		}
	}
	return best
}

// randomTargets picks count distinct alive units with a partial Fisher-Yates shuffle.
// Every alive unit is returned when count covers them all.
func randomTargets(rng *rand.Rand, squad Squad, count int) []*Unit {
	alive := make([]*Unit, 0, len(squad))
	for i := range squad {
		if squad[i].Alive() {
			alive = append(alive, &squad[i])
		}
	}
	if count >= len(alive) {
		return alive
	}

	for i := 0; i < count; i++ {
		j := i + rng.IntN(len(alive)-i)
		alive[i], alive[j] = alive[j], alive[i]
	}
	return alive[:count]
}
