package engine

import (
	"fmt"

	"studio-lab-backend/internal/model"
	"studio-lab-backend/internal/store"
)

// ProfileUpdate carries partial profile changes; nil fields are untouched.
type ProfileUpdate struct {
	Name              *string
	Email             *string
	StudentID         *string
	Bio               *string
	TrainingCompleted *[]model.MachineCategory
}

// UpdateProfile applies a partial update to the local user.
func (e *Engine) UpdateProfile(update ProfileUpdate) (model.Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if update.Name != nil {
		e.profile.Name = *update.Name
	}
	if update.Email != nil {
		e.profile.Email = *update.Email
	}
	if update.StudentID != nil {
		e.profile.StudentID = *update.StudentID
	}
	if update.Bio != nil {
		e.profile.Bio = *update.Bio
	}
	if update.TrainingCompleted != nil {
		for _, c := range *update.TrainingCompleted {
			if !c.Valid() {
				return e.profile, fmt.Errorf("unknown training category %q", c)
			}
		}
		e.profile.TrainingCompleted = *update.TrainingCompleted
	}

	e.persist(store.KeyProfile, e.profile)
	return e.profile, nil
}

// UpdateProfileImage replaces the profile avatar.
func (e *Engine) UpdateProfileImage(url string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.profile.ProfileImage = url
	e.persist(store.KeyProfile, e.profile)
}

// ToggleIncognito flips identity masking and returns the new state. Masking
// is forward-only: bookings and queue entries created before the toggle are
// not rewritten.
func (e *Engine) ToggleIncognito() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.profile.IsIncognito = !e.profile.IsIncognito
	e.persist(store.KeyProfile, e.profile)

	if e.profile.IsIncognito {
		e.notify("Identity Masking: ACTIVE.")
	} else {
		e.notify("Identity Masking: OFF.")
	}
	return e.profile.IsIncognito
}
