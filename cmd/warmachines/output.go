package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/campaign"
	"github.com/napolitain/solver-wm/internal/solver/crew"
)

func printFormation(out io.Writer, formation *crew.Formation) {
	fmt.Fprintln(out, "⚔️  Formation (front to back):")

	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"#", "War Machine", "Rarity", "Damage", "Health", "Armor", "Power", "Crew"}),
	)
	for i, wm := range formation.WarMachines {
		crewNames := "-"
		if len(wm.Crew) > 0 {
			crewNames = strings.Join(wm.Crew, ", ")
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			string(wm.Name),
			string(wm.Rarity),
			formatNumber(wm.Damage),
			formatNumber(wm.Health),
			formatNumber(wm.Armor),
			formatNumber(wm.Power),
			crewNames,
		}
		_ = table.Append(row)
	}
	_ = table.Render()

	fmt.Fprintf(out, "\n📊 Campaign power: %s\n\n", formatNumber(formation.CampaignPower))
}

func printProgressLine(out io.Writer, results campaign.Results) {
	done, total := 0, 0
	for _, data := range results {
		for _, mission := range data.Missions {
			if mission.NeedsAbilities {
				done += mission.CurrentBattleCount
				total += mission.TotalBattleCount
			}
		}
	}
	if total == 0 {
		fmt.Fprintf(out, "\r🔄 Deterministic pass: %d stars", campaign.TotalStars(results))
		return
	}
	fmt.Fprintf(out, "\r🔄 Sampling ability dependent missions: %d / %d battles (%.0f%%)   ",
		done, total, float64(done)/float64(total)*100)
}

func printCampaign(out io.Writer, results campaign.Results) {
	fmt.Fprintln(out, "\n📋 Campaign Summary:")

	summary := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"Difficulty", "Missions", "Wins", "Ability Dependent", "Stars", "Blocked At"}),
	)
	for _, difficulty := range models.AllDifficulties() {
		data, ok := results[difficulty]
		if !ok {
			continue
		}

		wins, dependent, blocked := 0, 0, "-"
		for _, mission := range data.Missions {
			switch {
			case mission.Status == campaign.StatusWin:
				wins++
			case mission.NeedsAbilities:
				dependent++
			case mission.Status == campaign.StatusUnmetPowerRequirement:
				blocked = fmt.Sprintf("%d (power %s)", mission.Level, formatNumber(mission.RequiredPower))
			default:
				blocked = fmt.Sprintf("%d (lost)", mission.Level)
			}
		}

		_ = summary.Append([]string{
			string(difficulty),
			fmt.Sprintf("%d", len(data.Missions)),
			fmt.Sprintf("%d", wins),
			fmt.Sprintf("%d", dependent),
			fmt.Sprintf("%d", wins+dependent),
			blocked,
		})
	}
	_ = summary.Render()

	var rows [][]string
	for _, difficulty := range models.AllDifficulties() {
		for _, mission := range results[difficulty].Missions {
			if !mission.NeedsAbilities {
				continue
			}
			rows = append(rows, []string{
				string(difficulty),
				fmt.Sprintf("%d", mission.Level),
				colorChance(mission.SuccessChance),
				fmt.Sprintf("%d / %d", mission.CurrentBattleCount, mission.TotalBattleCount),
			})
		}
	}
	if len(rows) == 0 {
		return
	}

	fmt.Fprintln(out, "\n🎲 Ability Dependent Missions:")
	details := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"Difficulty", "Mission", "Success", "Battles"}),
	)
	for _, row := range rows {
		_ = details.Append(row)
	}
	_ = details.Render()
}

func printPlan(out io.Writer, plan models.PlanCost) {
	if len(plan.WarMachines) == 0 {
		fmt.Fprintln(out, "No upgrade needed.")
		return
	}

	fmt.Fprintln(out, "🔧 Upgrade Plan:")
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"War Machine", "Level", "Screws", "Cogs", "Metal", "Exp. Tokens", "Blueprints"}),
	)
	for _, cost := range plan.WarMachines {
		_ = table.Append([]string{
			string(cost.Name),
			fmt.Sprintf("%d → %d", cost.FromLevel, cost.ToLevel),
			fmt.Sprintf("%d", cost.Resources.Screws),
			fmt.Sprintf("%d", cost.Resources.Cogs),
			fmt.Sprintf("%d", cost.Resources.Metal),
			fmt.Sprintf("%d", cost.Resources.ExpeditionTokens),
			fmt.Sprintf("%d", cost.Blueprints),
		})
	}
	_ = table.Append([]string{
		"TOTAL",
		"",
		fmt.Sprintf("%d", plan.Resources.Screws),
		fmt.Sprintf("%d", plan.Resources.Cogs),
		fmt.Sprintf("%d", plan.Resources.Metal),
		fmt.Sprintf("%d", plan.Resources.ExpeditionTokens),
		fmt.Sprintf("%d", plan.Blueprints),
	})
	_ = table.Render()
}

func printEstimate(out io.Writer, days int) {
	switch {
	case days < 0:
		color.New(color.FgRed).Fprintln(out, "\n⏱️  Not reachable with the current campaign income")
	case days == 0:
		color.New(color.FgGreen).Fprintln(out, "\n⏱️  Affordable today")
	default:
		color.New(color.FgYellow).Fprintf(out, "\n⏱️  Estimated %d days of chest income\n", days)
	}
}

func printCosts(out io.Writer, from, to int) {
	fmt.Fprintf(out, "💰 Costs from level %d to %d:\n", from, to)

	resources := models.LevelUpResources(from, to)
	table := tablewriter.NewTable(out,
		tablewriter.WithHeader([]string{"Cost", "Amount"}),
	)
	rows := [][]string{
		{"Experience", fmt.Sprintf("%d", models.LevelUpXP(from, to))},
		{"Screws", fmt.Sprintf("%d", resources.Screws)},
		{"Cogs", fmt.Sprintf("%d", resources.Cogs)},
		{"Metal", fmt.Sprintf("%d", resources.Metal)},
		{"Expedition tokens", fmt.Sprintf("%d", resources.ExpeditionTokens)},
		{"Blueprints (per stat)", fmt.Sprintf("%d", models.BlueprintCost(from, to))},
	}
	for _, row := range rows {
		_ = table.Append(row)
	}
	_ = table.Render()
}

func colorChance(chance float64) string {
	text := fmt.Sprintf("%.1f%%", chance)
	switch {
	case chance >= 90:
		return color.GreenString(text)
	case chance >= 50:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}

// formatNumber prints large values with a metric suffix
func formatNumber(value float64) string {
	suffixes := []string{"", "K", "M", "B", "T", "Qa", "Qi"}
	i := 0
	for value >= 1000 && i < len(suffixes)-1 {
		value /= 1000
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.2f%s", value, suffixes[i])
}
