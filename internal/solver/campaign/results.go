package campaign

import (
	"sort"

	"github.com/napolitain/solver-wm/internal/models"
)

// MissionStatus is the outcome of the deterministic evaluation of a mission
type MissionStatus string

const (
	StatusWin                   MissionStatus = "win"
	StatusLose                  MissionStatus = "lose"
	StatusUnmetPowerRequirement MissionStatus = "unmet-power-requirement"
)

// MissionState is the working record of one mission while the campaign runs
type MissionState struct {
	Level         int
	Status        MissionStatus
	RoundsPlayed  int
	RequiredPower float64
	// NeedsAbilities marks missions won only when abilities trigger
	NeedsAbilities     bool
	Wins               int
	Trials             int
	TotalBattleCount   int
	CurrentBattleCount int
}

// DifficultyState holds the missions of one difficulty in level order
type DifficultyState struct {
	IsComputing bool
	Missions    []*MissionState
}

// State is the working record of a whole campaign evaluation
type State map[models.Difficulty]*DifficultyState

// MissionResult is the reported outcome of one mission
type MissionResult struct {
	Level              int
	Status             MissionStatus
	SuccessChance      float64
	NeedsAbilities     bool
	RequiredPower      float64
	TotalBattleCount   int
	CurrentBattleCount int
}

// Done reports whether no more battles will be run for the mission
func (m MissionResult) Done() bool {
	return m.CurrentBattleCount >= m.TotalBattleCount
}

// DifficultyResult is the reported outcome of one difficulty
type DifficultyResult struct {
	IsComputing bool
	Missions    []MissionResult
}

// Results maps every evaluated difficulty to its missions
type Results map[models.Difficulty]DifficultyResult

// FormatResults converts the working state into reported results.
// It does not modify the state and always returns fresh slices.
func FormatResults(state State) Results {
	results := make(Results, len(state))

	for difficulty, data := range state {
		formatted := DifficultyResult{
			IsComputing: data.IsComputing,
			Missions:    make([]MissionResult, 0, len(data.Missions)),
		}

		for _, mission := range data.Missions {
			formatted.Missions = append(formatted.Missions, formatMission(mission))
		}

		results[difficulty] = formatted
	}

	return results
}

func formatMission(mission *MissionState) MissionResult {
	return MissionResult{
		Level:              mission.Level,
		Status:             mission.Status,
		SuccessChance:      successChance(mission),
		NeedsAbilities:     mission.NeedsAbilities,
		RequiredPower:      mission.RequiredPower,
		TotalBattleCount:   mission.TotalBattleCount,
		CurrentBattleCount: mission.CurrentBattleCount,
	}
}

func successChance(mission *MissionState) float64 {
	if mission.Trials > 0 {
		return float64(mission.Wins) / float64(mission.Trials) * 100
	}
	if mission.Status == StatusWin {
		return 100
	}
	return 0
}

// IsComputing reports whether any difficulty is still sampling
func (r Results) IsComputing() bool {
	for _, data := range r {
		if data.IsComputing {
			return true
		}
	}
	return false
}

// IsStar reports whether a mission counts towards the star total
func (m MissionResult) IsStar() bool {
	return m.Status == StatusWin || m.NeedsAbilities
}

// TotalStars counts the missions that are deterministic wins or ability dependent
func TotalStars(results Results) int {
	stars := 0
	for _, data := range results {
		for _, mission := range data.Missions {
			if mission.IsStar() {
				stars++
			}
		}
	}
	return stars
}

// StarsAtChance counts the star missions whose success chance is at least minChance
func StarsAtChance(results Results, minChance float64) int {
	stars := 0
	for _, data := range results {
		for _, mission := range data.Missions {
			if mission.IsStar() && mission.SuccessChance >= minChance {
				stars++
			}
		}
	}
	return stars
}

// StarChances returns the success chances of every star mission, highest first
func StarChances(results Results) []float64 {
	var chances []float64
	for _, difficulty := range models.AllDifficulties() {
		for _, mission := range results[difficulty].Missions {
			if mission.IsStar() {
				chances = append(chances, mission.SuccessChance)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(chances)))
	return chances
}
