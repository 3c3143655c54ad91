package models

import "math"

// Resources is the amount of upgrade components needed to level a war machine
type Resources struct {
	Screws           int
	Cogs             int
	Metal            int
	ExpeditionTokens int
}

// Add returns the component-wise sum of two resource amounts
func (r Resources) Add(other Resources) Resources {
	return Resources{
		Screws:           r.Screws + other.Screws,
		Cogs:             r.Cogs + other.Cogs,
		Metal:            r.Metal + other.Metal,
		ExpeditionTokens: r.ExpeditionTokens + other.ExpeditionTokens,
	}
}

// Components returns screws + cogs + metal
func (r Resources) Components() int {
	return r.Screws + r.Cogs + r.Metal
}

// Resource cost of 100 XP worth of level-ups
const (
	ScrewsPerUpgrade           = 20
	CogsPerUpgrade             = 12
	MetalPerUpgrade            = 1
	ExpeditionTokensPerUpgrade = 500
)

// BlueprintCost returns the number of blueprints needed to go from the
// current blueprint level to the target one
func BlueprintCost(current, target int) int {
	total := 0
	for level := current; level < target; level++ {
		total += 100 + level*5
	}
	return total
}

// LevelUpXP returns the experience needed to level from current to target.
// Level 2 costs 100 XP and each further level costs 10 more.
func LevelUpXP(current, target int) int {
	if target <= current {
		return 0
	}

	total := 0
	required := 100
	for level := 1; level < target; level++ {
		if level >= current {
			total += required
		}
		required += 10
	}
	return total
}

// LevelUpResources returns the resources needed to level a war machine from
// current to target, each rounded to a whole number of upgrade steps
func LevelUpResources(current, target int) Resources {
	xp := LevelUpXP(current, target)
	if xp == 0 {
		return Resources{}
	}

	cost := func(perUpgrade int) int {
		return roundToStep(float64(xp)/100*float64(perUpgrade), perUpgrade)
	}

	return Resources{
		Screws:           cost(ScrewsPerUpgrade),
		Cogs:             cost(CogsPerUpgrade),
		Metal:            cost(MetalPerUpgrade),
		ExpeditionTokens: cost(ExpeditionTokensPerUpgrade),
	}
}

func roundToStep(value float64, step int) int {
	// Math.round semantics: halves go up
	return int(math.Floor(value/float64(step)+0.5)) * step
}

// WarMachineCost is the cost of upgrading one war machine between two snapshots
type WarMachineCost struct {
	Name       WarMachineName
	FromLevel  int
	ToLevel    int
	Resources  Resources
	Blueprints int
}

// PlanCost is the total cost of moving a roster from one state to another
type PlanCost struct {
	WarMachines []WarMachineCost
	Resources   Resources
	Blueprints  int
}

// ComputePlanCost returns the per war machine and total cost of every
// level and blueprint increase between before and after
func ComputePlanCost(before, after *Roster) PlanCost {
	var plan PlanCost

	for _, upgraded := range after.WarMachines {
		current := before.WarMachine(upgraded.Name)
		if current == nil {
			current = &WarMachine{Name: upgraded.Name}
		}

		fromLevel := max(current.Level, 1)
		toLevel := max(upgraded.Level, 1)

		cost := WarMachineCost{
			Name:      upgraded.Name,
			FromLevel: current.Level,
			ToLevel:   upgraded.Level,
			Resources: LevelUpResources(fromLevel, toLevel),
		}
		for _, category := range AllStatCategories() {
			cost.Blueprints += BlueprintCost(current.BlueprintLevel(category), upgraded.BlueprintLevel(category))
		}

		if cost.Resources == (Resources{}) && cost.Blueprints == 0 {
			continue
		}

		plan.WarMachines = append(plan.WarMachines, cost)
		plan.Resources = plan.Resources.Add(cost.Resources)
		plan.Blueprints += cost.Blueprints
	}

	return plan
}
