package campaign

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/battle"
	"github.com/napolitain/solver-wm/internal/solver/crew"
)

// Defaults used when Options leave a field unset
const (
	DefaultTotalSimulations = 10000
	DefaultProgressInterval = 200
)

// ErrAborted is returned when the context is cancelled during a simulation.
// The context cause is wrapped alongside it.
var ErrAborted = errors.New("campaign simulation aborted")

// Options configure a campaign simulation
type Options struct {
	// TotalSimulations is the number of sampled battles per undecided mission
	TotalSimulations int
	// ProgressInterval is the number of battles between progress reports, at most 200
	ProgressInterval int
	// Workers bounds the missions sampled concurrently, 0 means GOMAXPROCS
	Workers int
	// Seed makes sampling reproducible, 0 picks a random seed
	Seed uint64
	// OnProgress receives a snapshot after every change. Calls are serialized.
	OnProgress func(Results)
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.TotalSimulations <= 0 {
		o.TotalSimulations = DefaultTotalSimulations
	}
	if o.ProgressInterval <= 0 || o.ProgressInterval > DefaultProgressInterval {
		o.ProgressInterval = DefaultProgressInterval
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64() | 1
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// PlayerSquad turns a formation into a battle squad, sturdiest first
func PlayerSquad(formation *crew.Formation) battle.Squad {
	squad := make(battle.Squad, 0, len(formation.WarMachines))
	for _, wm := range formation.WarMachines {
		squad = append(squad, battle.NewUnit(wm.Name, wm.Stats, wm.Rarity))
	}
	sort.SliceStable(squad, func(i, j int) bool {
		return sturdiness(squad[i]) > sturdiness(squad[j])
	})
	return squad
}

func sturdiness(u battle.Unit) float64 {
	return u.Health + u.Armor*10 - u.Damage*10
}

// missionRand returns the random source of one mission, independent of scheduling order
func missionRand(seed uint64, mission models.Mission, stream uint64) *rand.Rand {
	key := uint64(difficultyIndex(mission.Difficulty))<<32 | uint64(mission.Level)<<8 | stream
	return rand.New(rand.NewPCG(seed, key))
}

func difficultyIndex(difficulty models.Difficulty) int {
	for i, d := range models.AllDifficulties() {
		if d == difficulty {
			return i
		}
	}
	return -1
}

const (
	streamBestCase = iota + 1
	streamSampling
)

// samplingJob is one undecided mission waiting for Monte-Carlo sampling
type samplingJob struct {
	mission models.Mission
	enemy   battle.Squad
	total   int
}

// progressUpdate is sent by sampling workers to the aggregator
type progressUpdate struct {
	mission models.Mission
	wins    int
	trials  int
}

// Simulate evaluates every mission of every difficulty for a formation.
// Deterministic passes run first, then undecided missions are sampled concurrently.
// On cancellation the partial results are returned together with ErrAborted.
func Simulate(ctx context.Context, formation *crew.Formation, campaignPower float64, opts Options) (Results, error) {
	opts = opts.withDefaults()
	player := PlayerSquad(formation)

	state := make(State, len(models.AllDifficulties()))
	var jobs []samplingJob

	for _, difficulty := range models.AllDifficulties() {
		data := &DifficultyState{IsComputing: true}
		state[difficulty] = data

		for level := 1; level <= models.MaxCampaignMissions; level++ {
			if err := ctx.Err(); err != nil {
				return FormatResults(state), aborted(ctx)
			}

			mission := models.Mission{Difficulty: difficulty, Level: level}
			record, job, stop := evaluateMission(player, campaignPower, mission, opts)
			data.Missions = append(data.Missions, record)
			if job != nil {
				jobs = append(jobs, *job)
			}
			if stop {
				break
			}
		}

		opts.Logger.Debug("deterministic pass complete",
			zap.String("difficulty", string(difficulty)),
			zap.Int("missions", len(data.Missions)),
		)
		notify(opts, state)
	}

	jobs = interleaveByDifficulty(jobs)

	pending := make(map[models.Difficulty]int)
	for _, job := range jobs {
		pending[job.mission.Difficulty]++
	}
	for difficulty, data := range state {
		if pending[difficulty] == 0 {
			data.IsComputing = false
		}
	}
	notify(opts, state)

	opts.Logger.Info("sampling undecided missions",
		zap.Int("missions", len(jobs)),
		zap.Int("battles_per_mission", opts.TotalSimulations),
		zap.Int("workers", opts.Workers),
	)

	if err := sample(ctx, player, jobs, state, pending, opts); err != nil {
		return FormatResults(state), err
	}

	return FormatResults(state), nil
}

// evaluateMission runs the power gate and the worst and best case battles.
// It returns the mission record, a sampling job when the mission needs
// abilities, and whether the difficulty stops here.
func evaluateMission(player battle.Squad, campaignPower float64, mission models.Mission, opts Options) (*MissionState, *samplingJob, bool) {
	enemy := GenerateEnemySquad(mission)
	required := RequiredPower(mission, enemy)

	if required > campaignPower {
		return &MissionState{
			Level:              mission.Level,
			Status:             StatusUnmetPowerRequirement,
			RequiredPower:      required,
			TotalBattleCount:   1,
			CurrentBattleCount: 1,
		}, nil, true
	}

	worst := battle.Simulate(player.Clone(), enemy.Units.Clone(),
		battle.WithChance(missionRand(opts.Seed, mission, 0), battle.NeverActivate))

	record := &MissionState{
		Level:              mission.Level,
		Status:             MissionStatus(worst.Status),
		RoundsPlayed:       worst.RoundsPlayed,
		RequiredPower:      required,
		TotalBattleCount:   1,
		CurrentBattleCount: 1,
	}
	if worst.Status == battle.Win {
		return record, nil, false
	}

	best := battle.Simulate(player.Clone(), enemy.Units.Clone(),
		battle.WithChance(missionRand(opts.Seed, mission, streamBestCase), battle.AlwaysActivate))
	if best.Status == battle.Lose {
		return record, nil, true
	}

	record.NeedsAbilities = true
	record.TotalBattleCount = opts.TotalSimulations
	record.CurrentBattleCount = 0

	return record, &samplingJob{mission: mission, enemy: enemy.Units, total: opts.TotalSimulations}, false
}

// interleaveByDifficulty orders jobs round-robin across difficulties so that
// every difficulty gets a worker early under the pool bound
func interleaveByDifficulty(jobs []samplingJob) []samplingJob {
	queues := make(map[models.Difficulty][]samplingJob)
	for _, job := range jobs {
		queues[job.mission.Difficulty] = append(queues[job.mission.Difficulty], job)
	}

	ordered := make([]samplingJob, 0, len(jobs))
	for len(ordered) < len(jobs) {
		for _, difficulty := range models.AllDifficulties() {
			if queue := queues[difficulty]; len(queue) > 0 {
				ordered = append(ordered, queue[0])
				queues[difficulty] = queue[1:]
			}
		}
	}
	return ordered
}

// sample runs every job on a bounded worker pool. A single aggregator goroutine
// owns the state and reports progress.
func sample(ctx context.Context, player battle.Squad, jobs []samplingJob, state State, pending map[models.Difficulty]int, opts Options) error {
	if len(jobs) == 0 {
		return nil
	}

	updates := make(chan progressUpdate, opts.Workers*2)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range updates {
			data := state[update.mission.Difficulty]
			record := data.Missions[update.mission.Level-1]
			record.Wins = update.wins
			record.Trials = update.trials
			record.CurrentBattleCount = update.trials

			if record.CurrentBattleCount >= record.TotalBattleCount {
				pending[update.mission.Difficulty]--
				if pending[update.mission.Difficulty] == 0 {
					data.IsComputing = false
				}
			}
			notify(opts, state)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for _, job := range jobs {
		g.Go(func() error {
			return runSampling(gctx, player, job, opts, updates)
		})
	}

	err := g.Wait()
	close(updates)
	<-done

	if err != nil {
		if ctx.Err() != nil {
			return aborted(ctx)
		}
		return err
	}
	return nil
}

// runSampling plays the battles of one mission with the units' real ability chances
func runSampling(ctx context.Context, player battle.Squad, job samplingJob, opts Options, updates chan<- progressUpdate) error {
	rng := missionRand(opts.Seed, job.mission, streamSampling)
	wins := 0

	for trial := 1; trial <= job.total; trial++ {
		if err := ctx.Err(); err != nil {
			return context.Cause(ctx)
		}

		result := battle.Simulate(player.Clone(), job.enemy.Clone(), battle.Options{Rand: rng})
		if result.Status == battle.Win {
			wins++
		}

		if trial%opts.ProgressInterval == 0 || trial == job.total {
			updates <- progressUpdate{mission: job.mission, wins: wins, trials: trial}
		}
	}

	opts.Logger.Debug("mission sampled",
		zap.String("difficulty", string(job.mission.Difficulty)),
		zap.Int("level", job.mission.Level),
		zap.Int("wins", wins),
		zap.Int("battles", job.total),
	)
	return nil
}

func notify(opts Options, state State) {
	if opts.OnProgress != nil {
		opts.OnProgress(FormatResults(state))
	}
}

func aborted(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrAborted, context.Cause(ctx))
}
