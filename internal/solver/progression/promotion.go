package progression

import (
	"github.com/napolitain/solver-wm/internal/models"
)

// promote moves a war machine to its next rarity, raising its level to the
// rarity threshold when needed. It returns false for angel war machines.
func promote(wm *models.WarMachine) bool {
	next, ok := wm.Rarity.Next()
	if !ok {
		return false
	}
	if required := next.RequiredLevel(); wm.Level < required {
		wm.Level = required
	}
	wm.Rarity = next
	return true
}

// canPromote reports whether the level already qualifies for the next rarity
func canPromote(wm *models.WarMachine) bool {
	next, ok := wm.Rarity.Next()
	return ok && wm.Level >= next.RequiredLevel()
}

// shouldPromoteEarly reports whether a war machine is worth promoting before
// the search starts. Besides qualifying war machines, it promotes those lagging
// behind the strongest unit once that unit is halfway through its next rarity gap.
func shouldPromoteEarly(wm, highest *models.WarMachine) bool {
	if wm.Level == 0 || wm.Level >= highest.Level {
		return false
	}
	if _, ok := wm.Rarity.Next(); !ok {
		return false
	}
	if canPromote(wm) {
		return true
	}

	highestNext, ok := highest.Rarity.Next()
	if !ok {
		return false
	}

	if wm.Rarity == models.Common {
		return halfwayThrough(highest.Level, highest.Rarity, highestNext)
	}

	highestNextNext, ok := highestNext.Next()
	if !ok {
		return false
	}
	return halfwayThrough(highest.Level, highestNext, highestNextNext)
}

// halfwayThrough reports whether level reached the middle of the gap between two rarity thresholds
func halfwayThrough(level int, from, to models.Rarity) bool {
	gap := float64(to.RequiredLevel() - from.RequiredLevel())
	return float64(level) >= float64(from.RequiredLevel())+gap/2
}

// upgrade applies one upgrade step: level +1 and, on a multiple of five,
// the specialization blueprints are raised to the next blueprint cap
func upgrade(wm *models.WarMachine) {
	wm.Level++
	if wm.Level%5 != 0 {
		return
	}

	def := wm.Definition()
	if def == nil {
		return
	}

	blueprint := wm.Level/5*5 + 5
	for _, category := range specializationBlueprints(def.Specialization) {
		if wm.BlueprintLevel(category) < blueprint {
			wm.SetBlueprintLevel(category, blueprint)
		}
	}
}

// specializationBlueprints returns the blueprint tracks upgraded for a specialization
func specializationBlueprints(specialization models.Specialization) []models.StatCategory {
	switch specialization {
	case models.SpecializationDamage:
		return []models.StatCategory{models.StatDamage}
	case models.SpecializationTank:
		return []models.StatCategory{models.StatDamage, models.StatHealth}
	}
	return nil
}
