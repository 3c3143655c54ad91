package crew

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/assignment"
	"github.com/napolitain/solver-wm/internal/solver/stats"
)

// Solver finds the crew assignment that maximizes campaign power
type Solver struct {
	logger *zap.Logger
}

// Option configures a Solver
type Option func(*Solver)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSolver creates a crew solver
func NewSolver(opts ...Option) *Solver {
	s := &Solver{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeBestCrew returns the optimal formation of a roster with a default solver
func ComputeBestCrew(roster *models.Roster) (*Formation, error) {
	return NewSolver().Solve(roster)
}

// Solve computes the optimal formation.
// A roster without owned war machines yields an empty formation.
func (s *Solver) Solve(roster *models.Roster) (*Formation, error) {
	units := roster.OwnedWarMachines()
	if len(units) == 0 {
		return &Formation{WarMachines: []AssignedWarMachine{}}, nil
	}

	heroes := roster.ActiveCrewHeroes()
	resolver := stats.NewResolver(roster)
	slots := stats.CrewSlots(resolver.EngineerLevel())

	candidates := s.dropWeakest(resolver, units)

	crews, err := s.assign(resolver, candidates, heroes, slots)
	if err != nil {
		return nil, err
	}

	formation := &Formation{WarMachines: make([]AssignedWarMachine, 0, len(units))}
	for _, unit := range units {
		crew := crews[unit.Name]
		formation.WarMachines = append(formation.WarMachines, AssignedWarMachine{
			Name:   unit.Name,
			Rarity: unit.Rarity,
			Crew:   crewNames(crew),
			Stats:  resolver.Resolve(unit, crew),
		})
	}

	sort.SliceStable(formation.WarMachines, func(i, j int) bool {
		return formation.WarMachines[i].Power > formation.WarMachines[j].Power
	})
	if len(formation.WarMachines) > MaxFormationSize {
		formation.WarMachines = formation.WarMachines[:MaxFormationSize]
	}

	// damage dealers first, tanks last
	sort.SliceStable(formation.WarMachines, func(i, j int) bool {
		return frontlineScore(formation.WarMachines[i].Stats) < frontlineScore(formation.WarMachines[j].Stats)
	})

	for _, wm := range formation.WarMachines {
		formation.CampaignPower += wm.Power
	}

	s.logger.Debug("computed best crew",
		zap.Int("engineer_level", resolver.EngineerLevel()),
		zap.Int("crew_slots", slots),
		zap.Int("heroes", len(heroes)),
		zap.Float64("campaign_power", formation.CampaignPower),
	)

	return formation, nil
}

func frontlineScore(s stats.Stats) float64 {
	return s.Health + s.Armor*10 - s.Damage*70
}

// dropWeakest removes the war machine with the lowest solo power until
// at most MaxFormationSize remain. Ties drop the last one in roster order.
func (s *Solver) dropWeakest(resolver *stats.Resolver, units []models.WarMachine) []models.WarMachine {
	candidates := append([]models.WarMachine(nil), units...)

	for len(candidates) > MaxFormationSize {
		weakest := 0
		weakestPower := resolver.Resolve(candidates[0], nil).Power
		for i := 1; i < len(candidates); i++ {
			if power := resolver.Resolve(candidates[i], nil).Power; power <= weakestPower {
				weakest, weakestPower = i, power
			}
		}

		s.logger.Debug("dropping weakest war machine",
			zap.String("war_machine", string(candidates[weakest].Name)),
			zap.Float64("power", weakestPower),
		)
		candidates = append(candidates[:weakest], candidates[weakest+1:]...)
	}

	return candidates
}

// assign solves the hero to crew slot matching.
// Rows are heroes, every war machine owns a block of slots identical columns.
func (s *Solver) assign(resolver *stats.Resolver, units []models.WarMachine, heroes []models.CrewHero, slots int) (map[models.WarMachineName][]models.CrewHero, error) {
	crews := make(map[models.WarMachineName][]models.CrewHero)
	if len(heroes) == 0 {
		return crews, nil
	}

	matrix := BuildScoreMatrix(resolver, units, heroes, slots)
	pairs, err := assignment.Solve(matrix)
	if err != nil {
		return nil, fmt.Errorf("failed to assign crew: %w", err)
	}

	realColumns := len(units) * slots
	for _, pair := range pairs {
		if pair.Row >= len(heroes) || pair.Column >= realColumns {
			continue
		}
		position := pair.Column / slots
		if position >= MaxFormationSize {
			continue
		}
		unit := units[position].Name
		crews[unit] = append(crews[unit], heroes[pair.Row])
	}

	return crews, nil
}

// BuildScoreMatrix builds the square minimum-cost matrix of the crew assignment.
// Real cells hold maxScore - score, padding rows and columns hold zero.
func BuildScoreMatrix(resolver *stats.Resolver, units []models.WarMachine, heroes []models.CrewHero, slots int) [][]float64 {
	realColumns := len(units) * slots
	size := max(realColumns, len(heroes))

	scores := make([][]float64, len(heroes))
	maxScore := 0.0
	for i := range heroes {
		scores[i] = make([]float64, len(units))
		for j, unit := range units {
			score := resolver.Resolve(unit, heroes[i:i+1]).Power
			scores[i][j] = score
			maxScore = max(maxScore, score)
		}
	}

	matrix := make([][]float64, size)
	for row := range matrix {
		matrix[row] = make([]float64, size)
		if row >= len(heroes) {
			continue
		}
		for col := 0; col < realColumns; col++ {
			if score := scores[row][col/slots]; score != 0 {
				matrix[row][col] = maxScore - score
			}
		}
	}

	return matrix
}

func crewNames(crew []models.CrewHero) []string {
	names := make([]string, 0, len(crew))
	for _, hero := range crew {
		names = append(names, hero.Name)
	}
	return names
}
