package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/napolitain/solver-wm/internal/config"
	"github.com/napolitain/solver-wm/internal/loader"
	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/planner"
	"github.com/napolitain/solver-wm/internal/solver/campaign"
	"github.com/napolitain/solver-wm/internal/solver/progression"
)

// options holds the parsed command line flags
type options struct {
	rosterFile  string
	configFile  string
	quiet       bool
	verbose     bool
	simulations int
	seed        uint64
	stars       int
	minChance   float64
	emblems     int
	outFile     string
	fromLevel   int
	toLevel     int
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "warmachines",
		Short: "War Machines Campaign Planner",
		Long: `Computes the strongest war machine formation of a roster, simulates
every campaign mission against it and searches for the upgrades needed
to reach a star target.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.rosterFile, "roster", "r", "", "Path to roster file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to solver config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Minimal output")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")

	formationCmd := &cobra.Command{
		Use:   "formation",
		Short: "Show the optimal formation and crew assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormation(cmd, opts)
		},
	}

	campaignCmd := &cobra.Command{
		Use:   "campaign",
		Short: "Simulate every campaign mission with the optimal formation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaign(cmd, opts)
		},
	}
	campaignCmd.Flags().IntVarP(&opts.simulations, "simulations", "n", 0, "Battles per ability dependent mission (default from config)")
	campaignCmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed, 0 for a random run")

	targetCmd := &cobra.Command{
		Use:   "target",
		Short: "Search the upgrades needed to reach a star target",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTarget(cmd, opts)
		},
	}
	targetCmd.Flags().IntVarP(&opts.stars, "stars", "s", 0, "Number of stars to reach")
	targetCmd.Flags().Float64VarP(&opts.minChance, "min-chance", "m", 0, "Minimum success chance (0-100) of a counted star")
	targetCmd.Flags().IntVar(&opts.emblems, "emblems", 0, "Campaign emblems owned, used by the time estimate")
	targetCmd.Flags().StringVarP(&opts.outFile, "out", "o", "", "Write the upgraded roster to this file")
	targetCmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed, 0 for a random run")
	_ = targetCmd.MarkFlagRequired("stars")

	costsCmd := &cobra.Command{
		Use:   "costs",
		Short: "Show blueprint and level up costs between two levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCosts(cmd, opts)
		},
	}
	costsCmd.Flags().IntVar(&opts.fromLevel, "from", 1, "Current level")
	costsCmd.Flags().IntVar(&opts.toLevel, "to", 10, "Target level")

	rootCmd.AddCommand(formationCmd, campaignCmd, targetCmd, costsCmd)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the planner
func setup(opts *options) (*planner.Planner, *config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.simulations > 0 {
		cfg.TotalSimulations = opts.simulations
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return planner.New(cfg, logger), cfg, logger, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

func loadRoster(opts *options) (*models.Roster, error) {
	if opts.rosterFile == "" {
		return nil, errors.New("a roster file is required (--roster)")
	}
	return loader.LoadRoster(opts.rosterFile)
}

// interruptContext is cancelled on Ctrl-C
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runFormation(cmd *cobra.Command, opts *options) error {
	p, _, logger, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	roster, err := loadRoster(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.quiet {
		printBanner(out, "Formation Optimizer")
	}

	ctx, stop := interruptContext()
	defer stop()

	formation, err := p.ComputeOptimalFormation(ctx, roster)
	if err != nil {
		return err
	}
	if len(formation.WarMachines) == 0 {
		color.Yellow("No war machine owned: set a level in the roster file")
		return nil
	}

	printFormation(out, formation)
	return nil
}

func runCampaign(cmd *cobra.Command, opts *options) error {
	p, cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	roster, err := loadRoster(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.quiet {
		printBanner(out, "Campaign Simulator")
	}

	ctx, stop := interruptContext()
	defer stop()

	formation, err := p.ComputeOptimalFormation(ctx, roster)
	if err != nil {
		return err
	}
	if !opts.quiet {
		printFormation(out, formation)
	}

	start := time.Now()
	simulation := p.StartCampaignSimulation(ctx, formation, formation.CampaignPower, cfg.TotalSimulations)

	results, err := simulation.Wait(func(update campaign.Results) {
		if !opts.quiet {
			printProgressLine(cmd.ErrOrStderr(), update)
		}
	})
	if !opts.quiet {
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if err != nil {
		if errors.Is(err, campaign.ErrAborted) && results != nil {
			color.Yellow("Simulation interrupted, partial results:")
			printCampaign(out, results)
		}
		return err
	}

	printCampaign(out, results)
	color.New(color.FgGreen, color.Bold).Fprintf(out, "\n✓ %d stars (simulated in %s)\n",
		campaign.TotalStars(results), time.Since(start).Round(time.Millisecond))
	return nil
}

func runTarget(cmd *cobra.Command, opts *options) error {
	if opts.minChance < 0 || opts.minChance > 100 {
		return fmt.Errorf("--min-chance must be between 0 and 100, got %v", opts.minChance)
	}

	p, _, logger, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	roster, err := loadRoster(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.quiet {
		printBanner(out, "Star Target Planner")
		color.New(color.FgYellow).Fprintf(out, "🎯 Target: %d stars at %.0f%% success chance\n\n", opts.stars, opts.minChance)
	}

	ctx, stop := interruptContext()
	defer stop()

	target := progression.Target{Stars: opts.stars, MinChance: opts.minChance}
	search := p.StartProgressionSearch(ctx, roster, target)

	result, err := search.Wait(func(update progression.Result) {
		if !opts.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "\r   iteration %d: %d stars", update.Iterations+1, update.Stars)
		}
	})
	if !opts.quiet {
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if err != nil && !errors.Is(err, progression.ErrTargetUnreachable) {
		return err
	}

	switch {
	case err != nil:
		color.Red("Target not reached after %d iterations (%d stars), showing the best plan found", result.Iterations, result.Stars)
	case result.Status == progression.StatusAborted:
		color.Yellow("Search interrupted after %d iterations, showing the plan so far", result.Iterations)
	default:
		color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ Target reached with %d stars after %d iterations\n\n", result.Stars, result.Iterations)
	}

	plan := models.ComputePlanCost(roster, result.Roster)
	printPlan(out, plan)

	days := models.EstimateDaysForUpgrade(result.Stars, opts.emblems, plan.Resources, models.Resources{}, time.Now())
	printEstimate(out, days)

	if opts.outFile != "" {
		if err := loader.SaveRoster(opts.outFile, result.Roster); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintf(out, "📄 Upgraded roster written to %s\n", opts.outFile)
	}
	return nil
}

func runCosts(cmd *cobra.Command, opts *options) error {
	if opts.fromLevel < 1 || opts.toLevel < opts.fromLevel {
		return fmt.Errorf("invalid level range %d to %d", opts.fromLevel, opts.toLevel)
	}

	printCosts(cmd.OutOrStdout(), opts.fromLevel, opts.toLevel)
	return nil
}

func printBanner(out io.Writer, subtitle string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Fprintln(out, "\n╭───────────────────────────╮")
	titleColor.Fprintln(out, "│  War Machines             │")
	titleColor.Fprintf(out, "│  %-25s│\n", subtitle)
	titleColor.Fprintln(out, "╰───────────────────────────╯")
	fmt.Fprintln(out)
}
