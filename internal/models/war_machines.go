package models

// WarMachineName identifies a war machine of the catalog
type WarMachineName string

const (
	Cloudfist      WarMachineName = "cloudfist"
	Fortress       WarMachineName = "fortress"
	Aegis          WarMachineName = "aegis"
	Firecracker    WarMachineName = "firecracker"
	Talos          WarMachineName = "talos"
	Harvester      WarMachineName = "harvester"
	Judgement      WarMachineName = "judgement"
	Thunderclap    WarMachineName = "thunderclap"
	Curator        WarMachineName = "curator"
	Hunter         WarMachineName = "hunter"
	Sentinel       WarMachineName = "sentinel"
	Earthshatterer WarMachineName = "earthshatterer"
	Goliath        WarMachineName = "goliath"
)

// WarMachineDefinition contains the static base stats of a war machine
type WarMachineDefinition struct {
	Name           WarMachineName
	Damage         float64
	Health         float64
	Armor          float64
	Specialization Specialization
}

// BaseStat returns the base value of a stat category
func (d *WarMachineDefinition) BaseStat(category StatCategory) float64 {
	switch category {
	case StatDamage:
		return d.Damage
	case StatHealth:
		return d.Health
	case StatArmor:
		return d.Armor
	}
	return 0
}

var warMachineDefinitions = []*WarMachineDefinition{
	{Name: Cloudfist, Damage: 880, Health: 6500, Armor: 125, Specialization: SpecializationDamage},
	{Name: Fortress, Damage: 460, Health: 11000, Armor: 300, Specialization: SpecializationTank},
	{Name: Aegis, Damage: 890, Health: 5100, Armor: 115, Specialization: SpecializationDamage},
	{Name: Firecracker, Damage: 910, Health: 4900, Armor: 110, Specialization: SpecializationDamage},
	{Name: Talos, Damage: 860, Health: 6000, Armor: 130, Specialization: SpecializationDamage},
	{Name: Harvester, Damage: 960, Health: 5500, Armor: 125, Specialization: SpecializationDamage},
	{Name: Judgement, Damage: 1080, Health: 4700, Armor: 90, Specialization: SpecializationDamage},
	{Name: Thunderclap, Damage: 1050, Health: 5200, Armor: 100, Specialization: SpecializationDamage},
	{Name: Curator, Damage: 380, Health: 4100, Armor: 150, Specialization: SpecializationHealer},
	{Name: Hunter, Damage: 400, Health: 4900, Armor: 130, Specialization: SpecializationHealer},
	{Name: Sentinel, Damage: 390, Health: 4400, Armor: 170, Specialization: SpecializationHealer},
	{Name: Earthshatterer, Damage: 510, Health: 10500, Armor: 270, Specialization: SpecializationTank},
	{Name: Goliath, Damage: 430, Health: 12000, Armor: 280, Specialization: SpecializationTank},
}

var warMachineIndex = func() map[WarMachineName]*WarMachineDefinition {
	index := make(map[WarMachineName]*WarMachineDefinition, len(warMachineDefinitions))
	for _, def := range warMachineDefinitions {
		index[def.Name] = def
	}
	return index
}()

// AllWarMachineDefinitions returns the catalog in deterministic order
func AllWarMachineDefinitions() []*WarMachineDefinition {
	result := make([]*WarMachineDefinition, len(warMachineDefinitions))
	copy(result, warMachineDefinitions)
	return result
}

// AllWarMachineNames returns all catalog names in deterministic order
func AllWarMachineNames() []WarMachineName {
	names := make([]WarMachineName, 0, len(warMachineDefinitions))
	for _, def := range warMachineDefinitions {
		names = append(names, def.Name)
	}
	return names
}

// GetWarMachineDefinition returns the definition for a name, nil if unknown
func GetWarMachineDefinition(name WarMachineName) *WarMachineDefinition {
	return warMachineIndex[name]
}

// catalogPosition is used to keep rosters in catalog order
func catalogPosition(name WarMachineName) int {
	for i, def := range warMachineDefinitions {
		if def.Name == name {
			return i
		}
	}
	return len(warMachineDefinitions)
}

// AllHeroNames returns the names of all crew heroes in deterministic order
func AllHeroNames() []string {
	return []string{
		"talia", "burt", "solaine", "boris", "benedictus", "leo", "muriel",
		"blaze", "luana", "valerius", "astrid", "ina", "fini", "asmondai",
		"danysa", "iseris", "belien", "sely", "randal", "molly", "layla",
		"joe", "hongyu", "amun", "panko", "yavo", "cirilo", "vilon", "anzo",
		"zelea", "zoruk", "rickie", "jess", "ledra", "yamanoth", "kramatak",
	}
}
