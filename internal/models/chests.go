package models

import (
	"math"
	"time"
)

// Chest is a jewel chest that contains upgrade components
type Chest string

const (
	WoodenChest   Chest = "wooden"
	IronChest     Chest = "iron"
	GoldenChest   Chest = "golden"
	DiamondChest  Chest = "diamond"
	OpalChest     Chest = "opal"
	EmeraldChest  Chest = "emerald"
	PlatinumChest Chest = "platinum"
)

// AllChests returns all chests from lowest to highest
func AllChests() []Chest {
	return []Chest{WoodenChest, IronChest, GoldenChest, DiamondChest, OpalChest, EmeraldChest, PlatinumChest}
}

// Components returns how many upgrade components a chest contains
func (c Chest) Components() int {
	switch c {
	case WoodenChest:
		return 11
	case IronChest:
		return 22
	case GoldenChest:
		return 33
	case DiamondChest:
		return 44
	case OpalChest:
		return 55
	case EmeraldChest:
		return 132
	case PlatinumChest:
		return 264
	}
	return 0
}

// ChestRewards counts chests by type
type ChestRewards map[Chest]int

func (r ChestRewards) add(other ChestRewards) {
	for chest, count := range other {
		r[chest] += count
	}
}

// Components returns the total components of all chests
func (r ChestRewards) Components() int {
	total := 0
	for chest, count := range r {
		total += count * chest.Components()
	}
	return total
}

type liberationMission struct {
	requiredStars int
	rewards       ChestRewards
}

var liberationMissions = []liberationMission{
	{5, ChestRewards{WoodenChest: 1, IronChest: 1}},
	{10, ChestRewards{WoodenChest: 2, IronChest: 1}},
	{20, ChestRewards{WoodenChest: 2, IronChest: 2}},
	{40, ChestRewards{IronChest: 2, GoldenChest: 1}},
	{60, ChestRewards{IronChest: 2, GoldenChest: 1}},
	{80, ChestRewards{IronChest: 2, GoldenChest: 1}},
	{110, ChestRewards{GoldenChest: 1, DiamondChest: 1}},
	{155, ChestRewards{GoldenChest: 1, OpalChest: 1}},
	{190, ChestRewards{GoldenChest: 1, EmeraldChest: 1}},
	{319, ChestRewards{OpalChest: 1, PlatinumChest: 1}},
}

const (
	merchantTradeEmblemCost = 5000
	emblemClaimsPerDay      = 4
	// share of components that go into the five favorite war machines
	favoriteComponentShare = 0.8
	favoriteWarMachines    = 5
)

// CampaignLevel returns the campaign level unlocked by a star count
func CampaignLevel(stars int) int {
	return stars/5 + 1
}

// CampaignEmblemLoot returns the emblems earned per claim for a star count
func CampaignEmblemLoot(stars int) int {
	if stars < 1 {
		return 0
	}
	return 400 + 8*(CampaignLevel(stars)-1)
}

// LiberationMissionChests returns the daily chests from liberation missions
func LiberationMissionChests(stars int) ChestRewards {
	chests := ChestRewards{}
	for _, mission := range liberationMissions {
		if mission.requiredStars > stars {
			continue
		}
		chests.add(mission.rewards)
	}
	return chests
}

// WeeklyQuestChests returns the chests of the liberator and miner weekly quests
func WeeklyQuestChests(stars int) ChestRewards {
	chests := ChestRewards{}
	switch {
	case stars < 1:
	case stars <= 99:
		chests[GoldenChest] += 1
		chests[IronChest] += 2
	case stars <= 144:
		chests[DiamondChest] += 1
		chests[GoldenChest] += 2
	case stars <= 189:
		chests[OpalChest] += 1
		chests[DiamondChest] += 2
	case stars <= 318:
		chests[EmeraldChest] += 1
		chests[OpalChest] += 2
	default:
		chests[PlatinumChest] += 1
		chests[EmeraldChest] += 2
	}
	return chests
}

func merchantChests() ChestRewards {
	return ChestRewards{GoldenChest: 5}
}

// EstimateDaysForUpgrade simulates the daily chest income of a player until
// enough components are collected for the required resources.
// start is the day the simulation starts from; weekly quests pay out on Sundays.
// It returns -1 when the income can never cover the requirement.
func EstimateDaysForUpgrade(stars, emblems int, required, owned Resources, start time.Time) int {
	missing := required.Components() - owned.Components()
	perWoodenChest := float64(WoodenChest.Components()) * favoriteComponentShare / favoriteWarMachines
	woodenChestsNeeded := int(math.Ceil(float64(missing) / perWoodenChest))
	componentsNeeded := woodenChestsNeeded * WoodenChest.Components()

	chests := ChestRewards{}
	day := 0

	for chests.Components() < componentsNeeded {
		day++
		current := start.AddDate(0, 0, day)

		emblems += CampaignEmblemLoot(stars) * emblemClaimsPerDay

		chests.add(LiberationMissionChests(stars))
		if current.Weekday() == time.Sunday {
			chests.add(WeeklyQuestChests(stars))
		}
		for ; emblems >= merchantTradeEmblemCost; emblems -= merchantTradeEmblemCost {
			chests.add(merchantChests())
		}

		// without stars only the emblems already owned produce chests
		if stars < 1 && chests.Components() < componentsNeeded {
			return -1
		}
	}

	if day <= 0 &&
		required.Screws > 0 && required.Cogs > 0 && required.Metal > 0 &&
		(owned.Screws >= required.Screws || owned.Cogs >= required.Cogs || owned.Metal >= required.Metal) {
		return 1
	}

	return day
}
