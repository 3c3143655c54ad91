// Package planner exposes the campaign planning entry points: optimal
// formation, campaign simulation and progression search. Each entry point
// has a blocking form and a task form that runs in the background.
package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/napolitain/solver-wm/internal/config"
	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/campaign"
	"github.com/napolitain/solver-wm/internal/solver/crew"
	"github.com/napolitain/solver-wm/internal/solver/progression"
	"github.com/napolitain/solver-wm/internal/task"
)

// SimulationOptions override the configured campaign simulation settings
type SimulationOptions struct {
	// TotalSimulations overrides the configured sample size when positive
	TotalSimulations int
	OnProgress       func(campaign.Results)
}

// Planner runs the planning entry points with shared configuration
type Planner struct {
	cfg    config.Config
	logger *zap.Logger
	solver *crew.Solver
}

// New creates a planner. A nil config uses the defaults and a nil logger discards output.
func New(cfg *config.Config, logger *zap.Logger) *Planner {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{
		cfg:    *cfg,
		logger: logger,
		solver: crew.NewSolver(crew.WithLogger(logger.Named("crew"))),
	}
}

// ComputeOptimalFormation returns the strongest formation of the roster.
// The roster is not modified.
func (p *Planner) ComputeOptimalFormation(ctx context.Context, roster *models.Roster) (*crew.Formation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", campaign.ErrAborted, context.Cause(ctx))
	}
	formation, err := p.solver.Solve(roster.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to compute formation: %w", err)
	}
	return formation, nil
}

// SimulateCampaign evaluates every mission for a formation
func (p *Planner) SimulateCampaign(ctx context.Context, formation *crew.Formation, campaignPower float64, opts SimulationOptions) (campaign.Results, error) {
	return campaign.Simulate(ctx, formation.Clone(), campaignPower, p.campaignOptions(opts))
}

// SimulateMission re-samples one mission with its own sample size
func (p *Planner) SimulateMission(ctx context.Context, formation *crew.Formation, campaignPower float64, mission models.Mission, totalSimulations int, onProgress func(campaign.MissionResult)) (campaign.MissionResult, error) {
	if totalSimulations <= 0 {
		totalSimulations = p.cfg.TotalSimulations
	}
	return campaign.SimulateMission(ctx, formation.Clone(), campaignPower, mission, campaign.MissionOptions{
		TotalSimulations: totalSimulations,
		ProgressInterval: p.cfg.ProgressInterval,
		Seed:             p.cfg.Seed,
		OnProgress:       onProgress,
		Logger:           p.logger.Named("campaign"),
	})
}

// SearchProgressionPlan returns an upgraded copy of the roster that reaches the target
func (p *Planner) SearchProgressionPlan(ctx context.Context, roster *models.Roster, target progression.Target, onProgress func(progression.Progress)) (progression.Result, error) {
	return progression.Search(ctx, roster, target, progression.Options{
		TargetSimulations: p.cfg.TargetSimulations,
		MaxIterations:     p.cfg.MaxSearchIterations,
		Workers:           p.cfg.Workers,
		Seed:              p.cfg.Seed,
		OnProgress:        onProgress,
		Logger:            p.logger.Named("progression"),
	})
}

// StartOptimalFormation runs ComputeOptimalFormation as a task
func (p *Planner) StartOptimalFormation(ctx context.Context, roster *models.Roster) *task.Task[*crew.Formation] {
	roster = roster.Clone()
	return task.Start(ctx, "formation", p.logger, func(ctx context.Context, _ func(*crew.Formation)) (*crew.Formation, error) {
		return p.ComputeOptimalFormation(ctx, roster)
	})
}

// StartCampaignSimulation runs SimulateCampaign as a task reporting result snapshots
func (p *Planner) StartCampaignSimulation(ctx context.Context, formation *crew.Formation, campaignPower float64, totalSimulations int) *task.Task[campaign.Results] {
	formation = formation.Clone()
	return task.Start(ctx, "campaign", p.logger, func(ctx context.Context, report func(campaign.Results)) (campaign.Results, error) {
		return p.SimulateCampaign(ctx, formation, campaignPower, SimulationOptions{
			TotalSimulations: totalSimulations,
			OnProgress:       report,
		})
	})
}

// StartProgressionSearch runs SearchProgressionPlan as a task. Progress
// messages carry the iteration and star count without a roster.
func (p *Planner) StartProgressionSearch(ctx context.Context, roster *models.Roster, target progression.Target) *task.Task[progression.Result] {
	roster = roster.Clone()
	return task.Start(ctx, "progression", p.logger, func(ctx context.Context, report func(progression.Result)) (progression.Result, error) {
		return p.SearchProgressionPlan(ctx, roster, target, func(progress progression.Progress) {
			report(progression.Result{Iterations: progress.Iteration, Stars: progress.Stars})
		})
	})
}

func (p *Planner) campaignOptions(opts SimulationOptions) campaign.Options {
	total := p.cfg.TotalSimulations
	if opts.TotalSimulations > 0 {
		total = opts.TotalSimulations
	}
	return campaign.Options{
		TotalSimulations: total,
		ProgressInterval: p.cfg.ProgressInterval,
		Workers:          p.cfg.Workers,
		Seed:             p.cfg.Seed,
		OnProgress:       opts.OnProgress,
		Logger:           p.logger.Named("campaign"),
	}
}
