package crew

import (
	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/stats"
)

// MaxFormationSize is the number of war machines taken into battle
const MaxFormationSize = 5

// AssignedWarMachine is a war machine of the formation with its crew and resolved stats
type AssignedWarMachine struct {
	Name   models.WarMachineName
	Rarity models.Rarity
	Crew   []string
	stats.Stats
}

// Formation is the optimal squad of a roster
type Formation struct {
	CampaignPower float64
	WarMachines   []AssignedWarMachine
}

// Names returns the war machine names in formation order
func (f *Formation) Names() []models.WarMachineName {
	names := make([]models.WarMachineName, 0, len(f.WarMachines))
	for _, wm := range f.WarMachines {
		names = append(names, wm.Name)
	}
	return names
}

// Clone returns a deep copy of the formation
func (f *Formation) Clone() *Formation {
	clone := &Formation{
		CampaignPower: f.CampaignPower,
		WarMachines:   make([]AssignedWarMachine, len(f.WarMachines)),
	}
	for i, wm := range f.WarMachines {
		wm.Crew = append([]string(nil), wm.Crew...)
		clone.WarMachines[i] = wm
	}
	return clone
}

// AverageLevel returns the mean roster level of the formation members
func (f *Formation) AverageLevel(roster *models.Roster) float64 {
	if len(f.WarMachines) == 0 {
		return 0
	}
	total := 0
	for _, wm := range f.WarMachines {
		if unit := roster.WarMachine(wm.Name); unit != nil {
			total += unit.Level
		}
	}
	return float64(total) / float64(len(f.WarMachines))
}
