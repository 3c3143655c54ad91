// Package progression searches for a roster upgrade plan that reaches a star target.
//
// The search is greedy: war machines of the main team are upgraded one step
// at a time, round-robin, and the campaign is re-simulated after every step.
package progression

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/campaign"
	"github.com/napolitain/solver-wm/internal/solver/crew"
)

// Defaults used when Options leave a field unset
const (
	DefaultTargetSimulations = 250
	DefaultMaxIterations     = 10000
	// mainTeamLevelGap is how far below the team average a war machine may be to stay in the main team
	mainTeamLevelGap = 2
)

// ErrTargetUnreachable is returned when the iteration bound is hit or no war machine can be upgraded
var ErrTargetUnreachable = errors.New("star target unreachable")

// Target is the goal of a search
type Target struct {
	// Stars is the number of star missions to reach
	Stars int
	// MinChance is the success chance (0-100) a star mission needs to count
	MinChance float64
}

// Status is the outcome of a search
type Status string

const (
	StatusReached Status = "reached"
	StatusAborted Status = "aborted"
)

// Result is the upgraded roster found by a search
type Result struct {
	Roster     *models.Roster
	Formation  *crew.Formation
	Status     Status
	Iterations int
	Stars      int
}

// Progress is reported after every simulated iteration
type Progress struct {
	Iteration int
	Stars     int
	Upgraded  models.WarMachineName
}

// Options configure a search
type Options struct {
	// TargetSimulations is the Monte-Carlo sample size of each iteration
	TargetSimulations int
	// MaxIterations bounds the number of upgrade steps
	MaxIterations int
	Workers       int
	// Seed makes every iteration reproducible, 0 picks a random seed per search
	Seed       uint64
	OnProgress func(Progress)
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.TargetSimulations <= 0 {
		o.TargetSimulations = DefaultTargetSimulations
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Searcher runs progression searches
type Searcher struct {
	opts   Options
	solver *crew.Solver
}

// NewSearcher creates a searcher
func NewSearcher(opts Options) *Searcher {
	opts = opts.withDefaults()
	return &Searcher{
		opts:   opts,
		solver: crew.NewSolver(crew.WithLogger(opts.Logger)),
	}
}

// Search upgrades a copy of the roster until the target is met.
// The input roster is never modified. A cancelled search returns the roster
// reached so far with StatusAborted and no error.
func Search(ctx context.Context, roster *models.Roster, target Target, opts Options) (Result, error) {
	return NewSearcher(opts).Search(ctx, roster, target)
}

// Search upgrades a copy of the roster until the target is met
func (s *Searcher) Search(ctx context.Context, roster *models.Roster, target Target) (Result, error) {
	logger := s.opts.Logger
	data := roster.Clone()

	formation, err := s.solver.Solve(data)
	if err != nil {
		return Result{Roster: data}, fmt.Errorf("failed to compute formation: %w", err)
	}

	team := s.prepareTeam(data, formation)
	logger.Info("progression search started",
		zap.Int("target_stars", target.Stars),
		zap.Float64("min_chance", target.MinChance),
		zap.Int("team_size", len(team)),
	)

	campaignOpts := campaign.Options{
		TotalSimulations: s.opts.TargetSimulations,
		Workers:          s.opts.Workers,
		Seed:             s.opts.Seed,
		Logger:           logger,
	}

	result := Result{Roster: data, Formation: formation}
	next := 0

	for iteration := 0; ; iteration++ {
		if ctx.Err() != nil {
			result.Status = StatusAborted
			return result, nil
		}

		formation, err := s.solver.Solve(data)
		if err != nil {
			return result, fmt.Errorf("failed to compute formation: %w", err)
		}
		result.Formation = formation
		result.Iterations = iteration

		results, err := campaign.Simulate(ctx, formation, formation.CampaignPower, campaignOpts)
		if errors.Is(err, campaign.ErrAborted) {
			result.Status = StatusAborted
			return result, nil
		}
		if err != nil {
			return result, fmt.Errorf("failed to simulate campaign: %w", err)
		}

		result.Stars = campaign.StarsAtChance(results, target.MinChance)
		if result.Stars >= target.Stars {
			result.Status = StatusReached
			logger.Info("progression target reached",
				zap.Int("iterations", iteration),
				zap.Int("stars", result.Stars),
			)
			return result, nil
		}

		if iteration >= s.opts.MaxIterations || len(team) == 0 {
			return result, fmt.Errorf("%w: %d stars after %d iterations", ErrTargetUnreachable, result.Stars, iteration)
		}

		if next >= len(team) {
			next = 0
		}
		wm := data.WarMachine(team[next])
		next++

		if canPromote(wm) {
			promote(wm)
		} else {
			upgrade(wm)
		}

		logger.Debug("war machine upgraded",
			zap.Int("iteration", iteration),
			zap.String("war_machine", string(wm.Name)),
			zap.Int("level", wm.Level),
			zap.String("rarity", string(wm.Rarity)),
			zap.Int("stars", result.Stars),
		)
		if s.opts.OnProgress != nil {
			s.opts.OnProgress(Progress{Iteration: iteration, Stars: result.Stars, Upgraded: wm.Name})
		}
	}
}

// prepareTeam applies the initial rarity promotions and returns the main
// team in upgrade order, strongest first
func (s *Searcher) prepareTeam(roster *models.Roster, formation *crew.Formation) []models.WarMachineName {
	members := append([]crew.AssignedWarMachine(nil), formation.WarMachines...)
	sort.SliceStable(members, func(i, j int) bool {
		return strength(members[i]) > strength(members[j])
	})

	inTeam := make(map[models.WarMachineName]bool, len(members))
	for _, member := range members {
		inTeam[member.Name] = true
	}

	highest := highestTeamMember(roster, inTeam)

	average := formation.AverageLevel(roster)
	isMain := make(map[models.WarMachineName]bool)
	for _, wm := range roster.OwnedWarMachines() {
		isMain[wm.Name] = average-float64(wm.Level) <= mainTeamLevelGap
	}

	if highest != nil {
		reference := *highest
		var promotions []models.WarMachineName

		for _, group := range []bool{true, false} {
			for i := range roster.WarMachines {
				wm := &roster.WarMachines[i]
				if inTeam[wm.Name] == group && wm.Owned() && shouldPromoteEarly(wm, &reference) {
					promotions = append(promotions, wm.Name)
				}
			}
		}

		for _, name := range promotions {
			wm := roster.WarMachine(name)
			promote(wm)
			s.opts.Logger.Debug("early rarity promotion",
				zap.String("war_machine", string(name)),
				zap.String("rarity", string(wm.Rarity)),
				zap.Int("level", wm.Level),
			)
		}
	}

	team := make([]models.WarMachineName, 0, len(members))
	for _, member := range members {
		if isMain[member.Name] {
			team = append(team, member.Name)
		}
	}
	return team
}

// highestTeamMember returns the owned team member with the highest level.
// Ties go to the last one in roster order.
func highestTeamMember(roster *models.Roster, inTeam map[models.WarMachineName]bool) *models.WarMachine {
	var highest *models.WarMachine
	for i := range roster.WarMachines {
		wm := &roster.WarMachines[i]
		if inTeam[wm.Name] && wm.Owned() && (highest == nil || wm.Level >= highest.Level) {
			highest = wm
		}
	}
	return highest
}

func strength(wm crew.AssignedWarMachine) float64 {
	return wm.Health + wm.Armor*10 + wm.Damage*10
}
