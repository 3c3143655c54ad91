package stats

import (
	"math"
	"testing"

	"github.com/napolitain/solver-wm/internal/models"
)

func TestResolveBaseStats(t *testing.T) {
	roster := models.NewDefaultRoster()

	for _, def := range models.AllWarMachineDefinitions() {
		unit := models.WarMachine{Name: def.Name, Level: 1, Rarity: models.Common}
		got := Resolve(unit, nil, roster, 1)

		if got.Damage != def.Damage || got.Health != def.Health || got.Armor != def.Armor {
			t.Errorf("%s: expected %v/%v/%v, got %v/%v/%v", def.Name,
				def.Damage, def.Health, def.Armor, got.Damage, got.Health, got.Armor)
		}

		wantPower := math.Floor(math.Pow(def.Damage*10, 0.7) + math.Pow(def.Health, 0.7) + math.Pow(def.Armor*10, 0.7))
		if got.Power != wantPower {
			t.Errorf("%s: expected power %v, got %v", def.Name, wantPower, got.Power)
		}
	}
}

func TestResolveUnsetLevelIsLevelOne(t *testing.T) {
	roster := models.NewDefaultRoster()
	unset := Resolve(models.WarMachine{Name: models.Talos}, nil, roster, 1)
	one := Resolve(models.WarMachine{Name: models.Talos, Level: 1}, nil, roster, 1)

	if unset != one {
		t.Errorf("unset level %+v differs from level 1 %+v", unset, one)
	}
}

func TestResolveFactors(t *testing.T) {
	roster := models.NewDefaultRoster()
	base := models.GetWarMachineDefinition(models.Cloudfist)

	tests := []struct {
		name          string
		unit          models.WarMachine
		engineerLevel int
		crew          []models.CrewHero
		wantDamage    float64
	}{
		{
			name:          "level",
			unit:          models.WarMachine{Name: models.Cloudfist, Level: 2},
			engineerLevel: 1,
			wantDamage:    math.Floor(base.Damage * 1.05),
		},
		{
			name:          "engineer",
			unit:          models.WarMachine{Name: models.Cloudfist, Level: 1},
			engineerLevel: 3,
			wantDamage:    math.Floor(base.Damage * (math.Pow(1.05, 2) - 1 + 1)),
		},
		{
			name:          "damage blueprint",
			unit:          models.WarMachine{Name: models.Cloudfist, Level: 1, DamageBlueprintLevel: 10},
			engineerLevel: 1,
			wantDamage:    math.Floor(base.Damage * (math.Pow(1.05, 10) - 1 + 1)),
		},
		{
			name:          "sacred card",
			unit:          models.WarMachine{Name: models.Cloudfist, Level: 1, SacredCardLevel: 1},
			engineerLevel: 1,
			wantDamage:    math.Floor(base.Damage * 1.05),
		},
		{
			name:          "crew",
			unit:          models.WarMachine{Name: models.Cloudfist, Level: 1},
			engineerLevel: 1,
			crew:          []models.CrewHero{{Name: "talia", Damage: 10}, {Name: "burt", Damage: 15}},
			wantDamage:    math.Floor(base.Damage * 1.25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.unit, tt.crew, roster, tt.engineerLevel)
			if got.Damage != tt.wantDamage {
				t.Errorf("expected damage %v, got %v", tt.wantDamage, got.Damage)
			}
		})
	}
}

func TestBlueprintOnlyAffectsItsCategory(t *testing.T) {
	roster := models.NewDefaultRoster()
	plain := Resolve(models.WarMachine{Name: models.Goliath, Level: 1}, nil, roster, 1)
	health := Resolve(models.WarMachine{Name: models.Goliath, Level: 1, HealthBlueprintLevel: 5}, nil, roster, 1)

	if health.Damage != plain.Damage || health.Armor != plain.Armor {
		t.Errorf("health blueprint changed other stats: %+v vs %+v", health, plain)
	}
	if health.Health <= plain.Health {
		t.Errorf("health blueprint did not raise health: %v <= %v", health.Health, plain.Health)
	}
}

func TestRosterRarityCountsForEveryUnit(t *testing.T) {
	roster := models.NewDefaultRoster()
	before := Resolve(models.WarMachine{Name: models.Aegis, Level: 1}, nil, roster, 1)

	// upgrading another, unowned war machine still raises everyone
	roster.WarMachine(models.Goliath).Rarity = models.Rare
	after := Resolve(models.WarMachine{Name: models.Aegis, Level: 1}, nil, roster, 1)

	want := math.Floor(models.GetWarMachineDefinition(models.Aegis).Damage * (math.Pow(1.05, 2) - 1 + 1))
	if after.Damage != want {
		t.Errorf("expected damage %v, got %v", want, after.Damage)
	}
	if after.Power <= before.Power {
		t.Errorf("power did not increase: %v <= %v", after.Power, before.Power)
	}
}

func TestArtifactsApply(t *testing.T) {
	roster := models.NewDefaultRoster()
	roster.Artifacts[models.StatArmor] = models.ArtifactType{50: 2}

	got := Resolve(models.WarMachine{Name: models.Fortress, Level: 1}, nil, roster, 1)
	want := math.Floor(300 * (math.Pow(1.5, 2) - 1 + 1))
	if got.Armor != want {
		t.Errorf("expected armor %v, got %v", want, got.Armor)
	}
	if got.Damage != 460 {
		t.Errorf("armor artifacts changed damage: %v", got.Damage)
	}
}

func TestUnknownWarMachineResolvesToZero(t *testing.T) {
	got := Resolve(models.WarMachine{Name: "zeppelin", Level: 5}, nil, models.NewDefaultRoster(), 1)
	if got != (Stats{}) {
		t.Errorf("expected zero stats, got %+v", got)
	}
}

func TestEngineerLevelFromXP(t *testing.T) {
	tests := []struct {
		xp, want int
	}{
		{0, 1},
		{599, 1},
		{600, 2},
		{600 + 649, 2},
		{600 + 650, 3},
		{600 + 650 + 700, 4},
	}

	for _, tt := range tests {
		if got := EngineerLevelFromXP(tt.xp); got != tt.want {
			t.Errorf("EngineerLevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestEngineerLevelIgnoresUnowned(t *testing.T) {
	roster := models.NewDefaultRoster()
	roster.WarMachine(models.Cloudfist).Level = 7 // 600 xp
	roster.WarMachine(models.Talos).Level = 1     // 0 xp

	if got := EngineerLevel(roster); got != 2 {
		t.Errorf("expected engineer level 2, got %d", got)
	}
	if got := NewResolver(roster).EngineerLevel(); got != 2 {
		t.Errorf("resolver engineer level = %d, want 2", got)
	}
}

func TestCrewSlots(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{1, 4}, {29, 4}, {30, 5}, {59, 5}, {60, 6}, {200, 6},
	}

	for _, tt := range tests {
		if got := CrewSlots(tt.level); got != tt.want {
			t.Errorf("CrewSlots(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

// FuzzResolveMonotonic checks that raising any single input never lowers power
func FuzzResolveMonotonic(f *testing.F) {
	f.Add(1, 0, 0, 0)
	f.Add(50, 10, 3, 2)
	f.Add(300, 60, 7, 20)

	f.Fuzz(func(t *testing.T, level, blueprint, rarity, sacred int) {
		if level < 1 || level > 400 || blueprint < 0 || blueprint > 200 ||
			rarity < 0 || rarity > 7 || sacred < 0 || sacred > 50 {
			return
		}
		r, _ := models.RarityFromOrdinal(rarity)
		roster := models.NewDefaultRoster()
		unit := models.WarMachine{
			Name: models.Judgement, Level: level, Rarity: r,
			DamageBlueprintLevel: blueprint, HealthBlueprintLevel: blueprint, ArmorBlueprintLevel: blueprint,
			SacredCardLevel: sacred,
		}
		base := Resolve(unit, nil, roster, 1)

		higher := unit
		higher.Level++
		if got := Resolve(higher, nil, roster, 1); got.Power < base.Power {
			t.Errorf("level up lowered power: %v < %v", got.Power, base.Power)
		}

		higher = unit
		higher.DamageBlueprintLevel++
		if got := Resolve(higher, nil, roster, 1); got.Power < base.Power {
			t.Errorf("blueprint lowered power: %v < %v", got.Power, base.Power)
		}

		if got := Resolve(unit, nil, roster, 2); got.Power < base.Power {
			t.Errorf("engineer level lowered power: %v < %v", got.Power, base.Power)
		}
	})
}

func BenchmarkResolve(b *testing.B) {
	roster := models.NewDefaultRoster()
	resolver := NewResolver(roster)
	unit := models.WarMachine{Name: models.Thunderclap, Level: 120, Rarity: models.Epic, DamageBlueprintLevel: 25}
	crew := []models.CrewHero{{Name: "talia", Damage: 12, Health: 5}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resolver.Resolve(unit, crew)
	}
}
