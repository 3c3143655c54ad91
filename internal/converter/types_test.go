package converter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/napolitain/solver-wm/internal/models"
)

func TestExportToModelRarity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Rarity
		wantErr bool
	}{
		{"Empty defaults to common", "", models.Common, false},
		{"Common", "common", models.Common, false},
		{"Rare", "rare", models.Rare, false},
		{"Angel", "angel", models.Angel, false},
		{"Unknown", "divine", "", true},
		{"Wrong case", "Epic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExportToModelRarity(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRarity) {
					t.Errorf("ExportToModelRarity(%q) error = %v, want ErrInvalidRarity", tt.input, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ExportToModelRarity(%q) = %v, %v, want %v", tt.input, got, err, tt.want)
			}
		})
	}
}

func TestExportToModelWarMachineName(t *testing.T) {
	for _, name := range models.AllWarMachineNames() {
		got, err := ExportToModelWarMachineName(string(name))
		if err != nil || got != name {
			t.Errorf("ExportToModelWarMachineName(%q) = %v, %v", name, got, err)
		}
	}

	if _, err := ExportToModelWarMachineName("zeppelin"); !errors.Is(err, ErrUnknownWarMachine) {
		t.Errorf("expected ErrUnknownWarMachine, got %v", err)
	}
}

func TestExportToModelStatCategory(t *testing.T) {
	tests := []struct {
		input string
		want  models.StatCategory
	}{
		{"damage", models.StatDamage},
		{"health", models.StatHealth},
		{"armor", models.StatArmor},
	}

	for _, tt := range tests {
		got, err := ExportToModelStatCategory(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ExportToModelStatCategory(%q) = %v, %v, want %v", tt.input, got, err, tt.want)
		}
	}

	if _, err := ExportToModelStatCategory("speed"); !errors.Is(err, ErrUnknownArtifact) {
		t.Errorf("expected ErrUnknownArtifact, got %v", err)
	}
}

func TestExportToModelArtifactType(t *testing.T) {
	got, err := ExportToModelArtifactType(map[string]int{"10": 2, "30": 0, "50": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (models.ArtifactType{10: 2, 50: 1}); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	for _, bad := range []string{"abc", "-5", "0", "12.5"} {
		if _, err := ExportToModelArtifactType(map[string]int{bad: 1}); !errors.Is(err, ErrInvalidTier) {
			t.Errorf("tier %q: expected ErrInvalidTier, got %v", bad, err)
		}
	}
}

func TestModelToExportArtifactType(t *testing.T) {
	got := ModelToExportArtifactType(models.ArtifactType{10: 2, 30: 0, 50: 1})
	if want := map[string]int{"10": 2, "50": 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
