package model

// Profile is the single local user's identity and state. IsIncognito governs
// whether the student's real identity is exposed in bookings and queues; it
// is forward-only and never rewrites records created before the toggle.
type Profile struct {
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	StudentID         string            `json:"studentId"`
	Bio               string            `json:"bio"`
	TrainingCompleted []MachineCategory `json:"trainingCompleted"`
	ProfileImage      string            `json:"profileImage"`
	IsIncognito       bool              `json:"isIncognito"`
}

// HasTraining reports whether the profile's completed-training set contains
// the given category.
func (p *Profile) HasTraining(c MachineCategory) bool {
	for _, done := range p.TrainingCompleted {
		if done == c {
			return true
		}
	}
	return false
}
