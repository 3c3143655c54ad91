package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/solver-wm/internal/converter"
	"github.com/napolitain/solver-wm/internal/models"
)

// ErrUnknownWarMachine is returned when a roster file names a war machine missing from the catalog
var ErrUnknownWarMachine = converter.ErrUnknownWarMachine

// Format is the encoding of a roster file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension, JSON by default
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadRoster reads a roster snapshot from a JSON or YAML file
func LoadRoster(path string) (*models.Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}

	roster, err := ParseRoster(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load roster %s: %w", path, err)
	}
	return roster, nil
}

// ParseRoster decodes a roster snapshot in the export shape
func ParseRoster(data []byte, format Format) (*models.Roster, error) {
	var export converter.RosterExport

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &export); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &export); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	}

	return converter.ExportToRoster(export)
}

// MarshalRoster encodes a roster in the export shape
func MarshalRoster(roster *models.Roster, format Format) ([]byte, error) {
	export := converter.RosterToExport(roster)

	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(export)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return data, nil
	default:
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// SaveRoster writes a roster to a JSON or YAML file
func SaveRoster(path string, roster *models.Roster) error {
	data, err := MarshalRoster(roster, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write roster %s: %w", path, err)
	}
	return nil
}
