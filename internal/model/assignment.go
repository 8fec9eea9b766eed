package model

// RiskLevel is a qualitative risk rating shared by assignments and sketch
// estimations.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// AssignmentStatus is a project lifecycle stage. Stages are descriptive,
// not a strict transition chain; any value may be set directly.
type AssignmentStatus string

const (
	StageResearch  AssignmentStatus = "Research"
	StageDesign    AssignmentStatus = "Design"
	StagePrototype AssignmentStatus = "Prototype"
	StageReview    AssignmentStatus = "Review"
	StageComplete  AssignmentStatus = "Complete"
)

// Assignment is a student project record.
type Assignment struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Deadline       string           `json:"deadline"`
	Status         AssignmentStatus `json:"status"`
	Progress       int              `json:"progress"` // 0-100
	RiskAssessment RiskLevel        `json:"riskAssessment"`
}
