package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"studio-lab-backend/internal/model"
	"studio-lab-backend/internal/store"
)

// AddAssignment validates and records a new project. New projects are
// prepended, matching the dashboard's newest-first ordering.
func (e *Engine) AddAssignment(a model.Assignment) (*model.Assignment, error) {
	if strings.TrimSpace(a.Title) == "" {
		return nil, fmt.Errorf("assignment title is required")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = model.StageResearch
	}
	if a.RiskAssessment == "" {
		a.RiskAssessment = model.RiskLow
	}
	a.Progress = clampProgress(a.Progress)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.assignments = append([]model.Assignment{a}, e.assignments...)
	e.persist(store.KeyAssignments, e.assignments)
	return &a, nil
}

// UpdateAssignment replaces an existing project record. Lifecycle stages
// are not a strict transition chain; any stage may be set directly.
func (e *Engine) UpdateAssignment(a model.Assignment) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("assignment title is required")
	}
	a.Progress = clampProgress(a.Progress)

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.assignments {
		if e.assignments[i].ID == a.ID {
			e.assignments[i] = a
			e.persist(store.KeyAssignments, e.assignments)
			return nil
		}
	}
	return ErrAssignmentNotFound
}

// DeleteAssignment removes a project record.
func (e *Engine) DeleteAssignment(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.assignments {
		if e.assignments[i].ID == id {
			e.assignments = append(e.assignments[:i], e.assignments[i+1:]...)
			e.persist(store.KeyAssignments, e.assignments)
			e.notify("Project deleted.")
			return nil
		}
	}
	return ErrAssignmentNotFound
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
