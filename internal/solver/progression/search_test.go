package progression

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/napolitain/solver-wm/internal/models"
	"github.com/napolitain/solver-wm/internal/solver/crew"
)

// newTestRoster returns a default roster with the given war machines owned at common rarity
func newTestRoster(t testing.TB, levels map[models.WarMachineName]int) *models.Roster {
	t.Helper()
	roster := models.NewDefaultRoster()
	for name, level := range levels {
		wm := roster.WarMachine(name)
		if wm == nil {
			t.Fatalf("unknown war machine %s", name)
		}
		wm.Level = level
	}
	return roster
}

func TestUpgrade(t *testing.T) {
	tests := []struct {
		name       string
		unit       models.WarMachineName
		level      int
		wantLevel  int
		wantDamage int
		wantHealth int
	}{
		{"Damage unit below multiple of five", models.Talos, 6, 7, 0, 0},
		{"Damage unit reaching multiple of five", models.Talos, 4, 5, 10, 0},
		{"Tank reaching multiple of five", models.Goliath, 9, 10, 15, 15},
		{"Healer has no blueprint track", models.Sentinel, 14, 15, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wm := &models.WarMachine{Name: tt.unit, Level: tt.level, Rarity: models.Common}
			upgrade(wm)
			if wm.Level != tt.wantLevel || wm.DamageBlueprintLevel != tt.wantDamage || wm.HealthBlueprintLevel != tt.wantHealth {
				t.Errorf("got %+v", *wm)
			}
			if wm.ArmorBlueprintLevel != 0 {
				t.Errorf("armor blueprint changed: %+v", *wm)
			}
		})
	}
}

func TestUpgradeNeverLowersBlueprints(t *testing.T) {
	wm := &models.WarMachine{Name: models.Talos, Level: 9, DamageBlueprintLevel: 40, Rarity: models.Common}
	upgrade(wm)
	if wm.DamageBlueprintLevel != 40 {
		t.Errorf("blueprint lowered to %d", wm.DamageBlueprintLevel)
	}
}

func TestPromote(t *testing.T) {
	wm := &models.WarMachine{Name: models.Talos, Level: 5, Rarity: models.Common}
	if !promote(wm) || wm.Rarity != models.Uncommon || wm.Level != 10 {
		t.Errorf("unexpected promotion %+v", *wm)
	}

	wm = &models.WarMachine{Name: models.Talos, Level: 70, Rarity: models.Uncommon}
	if !promote(wm) || wm.Rarity != models.Rare || wm.Level != 70 {
		t.Errorf("promotion changed a qualifying level: %+v", *wm)
	}

	wm = &models.WarMachine{Name: models.Talos, Level: 320, Rarity: models.Angel}
	if promote(wm) || wm.Rarity != models.Angel {
		t.Errorf("angel promoted: %+v", *wm)
	}
}

func TestShouldPromoteEarly(t *testing.T) {
	tests := []struct {
		name    string
		unit    models.WarMachine
		highest models.WarMachine
		want    bool
	}{
		{
			"Not below the strongest unit",
			models.WarMachine{Level: 40, Rarity: models.Common},
			models.WarMachine{Level: 40, Rarity: models.Uncommon},
			false,
		},
		{
			"Level qualifies",
			models.WarMachine{Level: 12, Rarity: models.Common},
			models.WarMachine{Level: 20, Rarity: models.Common},
			true,
		},
		{
			"Common halfway through strongest gap",
			models.WarMachine{Level: 5, Rarity: models.Common},
			models.WarMachine{Level: 30, Rarity: models.Uncommon},
			true,
		},
		{
			"Common before halfway",
			models.WarMachine{Level: 5, Rarity: models.Common},
			models.WarMachine{Level: 29, Rarity: models.Uncommon},
			false,
		},
		{
			"Higher rarity before halfway of next gap",
			models.WarMachine{Level: 20, Rarity: models.Uncommon},
			models.WarMachine{Level: 80, Rarity: models.Rare},
			false,
		},
		{
			"Higher rarity halfway through next gap",
			models.WarMachine{Level: 20, Rarity: models.Uncommon},
			models.WarMachine{Level: 125, Rarity: models.Rare},
			true,
		},
		{
			"Strongest unit without two tiers left",
			models.WarMachine{Level: 20, Rarity: models.Uncommon},
			models.WarMachine{Level: 290, Rarity: models.Titan},
			false,
		},
		{
			"Angel never promotes",
			models.WarMachine{Level: 300, Rarity: models.Angel},
			models.WarMachine{Level: 400, Rarity: models.Angel},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldPromoteEarly(&tt.unit, &tt.highest); got != tt.want {
				t.Errorf("shouldPromoteEarly() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrepareTeam(t *testing.T) {
	roster := newTestRoster(t, map[models.WarMachineName]int{
		models.Talos:     30,
		models.Cloudfist: 10,
		models.Goliath:   29,
	})
	searcher := NewSearcher(Options{})

	formation, err := crew.ComputeBestCrew(roster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	team := searcher.prepareTeam(roster, formation)
	if want := []models.WarMachineName{models.Goliath, models.Talos}; !reflect.DeepEqual(team, want) {
		t.Errorf("team = %v, want %v", team, want)
	}

	if wm := roster.WarMachine(models.Cloudfist); wm.Rarity != models.Uncommon || wm.Level != 10 {
		t.Errorf("cloudfist not promoted: %+v", *wm)
	}
	if wm := roster.WarMachine(models.Goliath); wm.Rarity != models.Uncommon {
		t.Errorf("goliath not promoted: %+v", *wm)
	}
	if wm := roster.WarMachine(models.Talos); wm.Rarity != models.Common {
		t.Errorf("strongest unit promoted early: %+v", *wm)
	}
}

func TestHighestTeamMember(t *testing.T) {
	roster := newTestRoster(t, map[models.WarMachineName]int{
		models.Cloudfist: 40,
		models.Talos:     30,
		models.Goliath:   30,
		models.Sentinel:  12,
	})
	roster.WarMachine(models.Goliath).Rarity = models.Uncommon
	inTeam := map[models.WarMachineName]bool{
		models.Talos:    true,
		models.Goliath:  true,
		models.Sentinel: true,
	}

	highest := highestTeamMember(roster, inTeam)
	if highest == nil || highest.Name != models.Goliath {
		t.Fatalf("expected the last tied team member goliath, got %+v", highest)
	}

	if got := highestTeamMember(roster, map[models.WarMachineName]bool{}); got != nil {
		t.Errorf("expected nil for an empty team, got %+v", got)
	}
}

func TestSearchAlreadyReached(t *testing.T) {
	roster := newTestRoster(t, map[models.WarMachineName]int{models.Talos: 1})
	before := roster.Clone()

	result, err := Search(context.Background(), roster, Target{Stars: 1}, Options{Seed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusReached || result.Iterations != 0 || result.Stars < 1 {
		t.Errorf("unexpected result %+v", result)
	}
	if !reflect.DeepEqual(roster, before) {
		t.Error("input roster modified")
	}
}

func TestSearchReachesTarget(t *testing.T) {
	roster := newTestRoster(t, map[models.WarMachineName]int{models.Talos: 1})
	opts := Options{Seed: 1, MaxIterations: 150}

	current, err := Search(context.Background(), roster, Target{}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := Target{Stars: current.Stars + 1}
	var reports []Progress
	opts.OnProgress = func(p Progress) { reports = append(reports, p) }

	result, err := Search(context.Background(), roster, target, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != StatusReached || result.Stars < target.Stars {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Iterations == 0 || len(reports) != result.Iterations {
		t.Errorf("expected %d progress reports, got %d", result.Iterations, len(reports))
	}
	if upgraded := result.Roster.WarMachine(models.Talos); upgraded.Level <= 1 {
		t.Errorf("talos not upgraded: %+v", *upgraded)
	}
	if roster.WarMachine(models.Talos).Level != 1 {
		t.Error("input roster modified")
	}
	if result.Formation == nil || len(result.Formation.WarMachines) != 1 {
		t.Errorf("unexpected formation %+v", result.Formation)
	}
}

func TestSearchDeterministicWithSeed(t *testing.T) {
	roster := newTestRoster(t, map[models.WarMachineName]int{models.Talos: 3, models.Goliath: 2})
	opts := Options{Seed: 9, MaxIterations: 5}
	target := Target{Stars: 1000}

	first, _ := Search(context.Background(), roster, target, opts)
	for i := 0; i < 5; i++ {
		result, _ := Search(context.Background(), roster, target, opts)
		if !reflect.DeepEqual(result.Roster, first.Roster) || result.Stars != first.Stars {
			t.Fatalf("run %d differs", i)
		}
	}
}

func TestSearchUnreachable(t *testing.T) {
	roster := newTestRoster(t, map[models.WarMachineName]int{models.Talos: 1})

	result, err := Search(context.Background(), roster, Target{Stars: 1000}, Options{Seed: 1, MaxIterations: 3})
	if !errors.Is(err, ErrTargetUnreachable) {
		t.Fatalf("expected ErrTargetUnreachable, got %v", err)
	}
	if result.Iterations != 3 {
		t.Errorf("expected 3 iterations, got %d", result.Iterations)
	}
	if result.Roster.WarMachine(models.Talos).Level == 1 {
		t.Error("expected upgrades before giving up")
	}
}

func TestSearchEmptyRoster(t *testing.T) {
	roster := models.NewDefaultRoster()

	result, err := Search(context.Background(), roster, Target{}, Options{Seed: 1})
	if err != nil || result.Status != StatusReached {
		t.Errorf("zero target should be reached: %+v, %v", result, err)
	}

	_, err = Search(context.Background(), roster, Target{Stars: 1}, Options{Seed: 1})
	if !errors.Is(err, ErrTargetUnreachable) {
		t.Errorf("expected ErrTargetUnreachable without war machines, got %v", err)
	}
}

func TestSearchCancelled(t *testing.T) {
	roster := newTestRoster(t, map[models.WarMachineName]int{models.Talos: 20})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Search(ctx, roster, Target{Stars: 1000}, Options{Seed: 1})
	if err != nil {
		t.Fatalf("aborted search should not fail: %v", err)
	}
	if result.Status != StatusAborted || result.Roster == nil {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestSearchCancelledWhileRunning(t *testing.T) {
	roster := newTestRoster(t, map[models.WarMachineName]int{models.Talos: 1})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := Search(ctx, roster, Target{Stars: 1000}, Options{
		Seed: 1,
		OnProgress: func(p Progress) {
			if p.Iteration == 2 {
				cancel()
			}
		},
	})
	if err != nil {
		t.Fatalf("aborted search should not fail: %v", err)
	}
	if result.Status != StatusAborted {
		t.Fatalf("expected aborted status, got %s", result.Status)
	}
	if result.Iterations < 2 || result.Roster.WarMachine(models.Talos).Level < 3 {
		t.Errorf("expected the roster reached so far, got %+v", result)
	}
}

func BenchmarkSearch(b *testing.B) {
	roster := newTestRoster(b, map[models.WarMachineName]int{models.Talos: 5, models.Goliath: 5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Search(context.Background(), roster, Target{Stars: 1000}, Options{Seed: 1, MaxIterations: 10})
	}
}
