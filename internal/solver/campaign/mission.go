package campaign

import (
	"context"

	"go.uber.org/zap"

	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/crew"
)

// MissionOptions configure the detailed simulation of a single mission
type MissionOptions struct {
	// TotalSimulations is the number of sampled battles
	TotalSimulations int
	// ProgressInterval is the number of battles between progress reports, at most 200
	ProgressInterval int
	// Seed makes sampling reproducible, 0 picks a random seed
	Seed uint64
	// OnProgress receives the mission result after every report
	OnProgress func(MissionResult)
	Logger     *zap.Logger
}

// SimulateMission evaluates one mission on its own. Missions decided by the
// power gate or the worst and best case battles are returned without sampling.
func SimulateMission(ctx context.Context, formation *crew.Formation, campaignPower float64, mission models.Mission, opts MissionOptions) (MissionResult, error) {
	campaignOpts := Options{
		TotalSimulations: opts.TotalSimulations,
		ProgressInterval: opts.ProgressInterval,
		Workers:          1,
		Seed:             opts.Seed,
		Logger:           opts.Logger,
	}.withDefaults()

	if err := ctx.Err(); err != nil {
		return MissionResult{Level: mission.Level}, aborted(ctx)
	}

	player := PlayerSquad(formation)
	record, job, _ := evaluateMission(player, campaignPower, mission, campaignOpts)
	if job == nil {
		return formatMission(record), nil
	}

	updates := make(chan progressUpdate, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- runSampling(ctx, player, *job, campaignOpts, updates)
		close(updates)
	}()

	for update := range updates {
		record.Wins = update.wins
		record.Trials = update.trials
		record.CurrentBattleCount = update.trials
		if opts.OnProgress != nil {
			opts.OnProgress(formatMission(record))
		}
	}

	if err := <-errc; err != nil {
		return formatMission(record), aborted(ctx)
	}
	return formatMission(record), nil
}
