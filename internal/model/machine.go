package model

import "fmt"

// MachineCategory identifies one of the fixed lab areas. The set is closed:
// constructing a machine with an unknown category is an error, not a silent
// rendering gap.
type MachineCategory string

const (
	CategoryCeramics    MachineCategory = "Ceramics"
	CategoryWood        MachineCategory = "Wood"
	CategoryStone       MachineCategory = "Stone"
	CategoryLeather     MachineCategory = "Leather"
	CategoryMetal       MachineCategory = "Metal"
	CategoryResin       MachineCategory = "Resin"
	CategoryTextile     MachineCategory = "Textile"
	CategoryDigitalFab  MachineCategory = "Digital Fabrication"
)

// LabCategories lists every valid machine category.
var LabCategories = []MachineCategory{
	CategoryCeramics,
	CategoryWood,
	CategoryStone,
	CategoryLeather,
	CategoryMetal,
	CategoryResin,
	CategoryTextile,
	CategoryDigitalFab,
}

// Valid reports whether c is one of the known lab categories.
func (c MachineCategory) Valid() bool {
	for _, known := range LabCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MachineStatus is the lifecycle state of a machine.
type MachineStatus string

const (
	StatusAvailable   MachineStatus = "Available"
	StatusInUse       MachineStatus = "In Use"
	StatusMaintenance MachineStatus = "Maintenance"
)

// SafetyLevel ranks a machine's hazard class: 1 general access,
// 2 supervised, 3 expert only.
type SafetyLevel int

// QueueEntry is a pending request for a busy or down machine. Within a
// machine's queue, entries are unique per student and kept sorted by
// priority descending, then timestamp ascending.
type QueueEntry struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Timestamp   int64  `json:"timestamp"` // Unix milliseconds
	Priority    int    `json:"priority"`  // higher is served sooner
	IsAnonymous bool   `json:"isAnonymous"`
}

// Machine represents a fabrication resource in one of the labs.
type Machine struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Category           MachineCategory `json:"category"`
	Location           string          `json:"location"`
	Status             MachineStatus   `json:"status"`
	Image              string          `json:"image"`
	Specifications     []string        `json:"specifications"`
	SafetyLevel        SafetyLevel     `json:"safetyLevel"`
	TrainingRequired   bool            `json:"trainingRequired"`
	MaxDurationMinutes int             `json:"maxDurationMinutes"`
	Queue              []QueueEntry    `json:"queue"`
	// RequiresIdentity marks high-hazard machines that forbid incognito
	// booking and queueing.
	RequiresIdentity bool `json:"requiresIdentity"`
}

// Validate checks the construction-time invariants of a machine record.
func (m *Machine) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("machine has no id")
	}
	if !m.Category.Valid() {
		return fmt.Errorf("machine %s: unknown category %q", m.ID, m.Category)
	}
	if m.SafetyLevel < 1 || m.SafetyLevel > 3 {
		return fmt.Errorf("machine %s: safety level %d out of range", m.ID, m.SafetyLevel)
	}
	return nil
}
