package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"studio-lab-backend/internal/model"
	"studio-lab-backend/internal/store"
)

// BookMachine gates and executes a machine reservation. Gates run in order:
// existence, identity, training, availability. A rejected request mutates
// nothing.
func (e *Engine) BookMachine(machineID string, start, end time.Time) (*model.ResourceBooking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	machine := e.findMachine(machineID)
	if machine == nil {
		return nil, ErrMachineNotFound
	}

	if machine.RequiresIdentity && e.profile.IsIncognito {
		e.notify(fmt.Sprintf("High-Hazard Warning: %s requires identification.", machine.Name))
		return nil, ErrIdentityRequired
	}

	if machine.TrainingRequired && !e.profile.HasTraining(machine.Category) {
		e.notify(fmt.Sprintf("Access Denied: %s safety certification missing.", machine.Category))
		return nil, ErrTrainingRequired
	}

	if machine.Status != model.StatusAvailable {
		return nil, ErrMachineUnavailable
	}

	booking := model.ResourceBooking{
		ID:           uuid.NewString(),
		ResourceID:   machineID,
		ResourceType: model.ResourceMachine,
		StartTime:    start,
		EndTime:      end,
		StudentID:    e.profile.StudentID,
		IsAnonymous:  e.profile.IsIncognito,
	}

	e.bookings = append(e.bookings, booking)
	machine.Status = model.StatusInUse

	e.persist(store.KeyBookings, e.bookings)
	e.persist(store.KeyMachines, e.machines)

	e.notify(fmt.Sprintf("Reservation confirmed: %s", machine.Name))
	return &booking, nil
}

// BookSlot marks a faculty slot booked. Booking an already-booked slot is
// an idempotent no-op; there is no identity or training gate.
func (e *Engine) BookSlot(slotID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.slots {
		if e.slots[i].ID != slotID {
			continue
		}
		if e.slots[i].IsBooked {
			return nil
		}
		e.slots[i].IsBooked = true
		e.persist(store.KeySlots, e.slots)
		e.notify("Faculty session booked!")
		return nil
	}
	return ErrSlotNotFound
}

// JoinQueue adds the current student to a machine's wait queue. Students
// with at least one high-risk assignment get priority tier 2, everyone else
// tier 1. A second join by the same student is rejected.
func (e *Engine) JoinQueue(machineID string) (*model.QueueEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	machine := e.findMachine(machineID)
	if machine == nil {
		return nil, ErrMachineNotFound
	}

	if machine.RequiresIdentity && e.profile.IsIncognito {
		e.notify(fmt.Sprintf("Verification Required: Disable Incognito for %s queue.", machine.Name))
		return nil, ErrIdentityRequired
	}

	for _, q := range machine.Queue {
		if q.StudentID == e.profile.StudentID {
			return nil, ErrAlreadyQueued
		}
	}

	entry := model.QueueEntry{
		StudentID:   e.profile.StudentID,
		StudentName: e.profile.Name,
		Timestamp:   e.now().UnixMilli(),
		Priority:    e.queuePriority(),
		IsAnonymous: e.profile.IsIncognito,
	}

	machine.Queue = append(machine.Queue, entry)
	sortQueue(machine.Queue)

	e.persist(store.KeyMachines, e.machines)
	e.notify(fmt.Sprintf("Joined Queue for %s.", machine.Name))
	return &entry, nil
}

// LeaveQueue removes every queue entry for the current student from the
// machine's queue. Leaving a queue the student is not in is a no-op.
func (e *Engine) LeaveQueue(machineID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	machine := e.findMachine(machineID)
	if machine == nil {
		return ErrMachineNotFound
	}

	kept := machine.Queue[:0]
	removed := false
	for _, q := range machine.Queue {
		if q.StudentID == e.profile.StudentID {
			removed = true
			continue
		}
		kept = append(kept, q)
	}
	machine.Queue = kept

	if removed {
		e.persist(store.KeyMachines, e.machines)
		e.notify("Queue position withdrawn.")
	}
	return nil
}

// WaitEstimateMinutes returns the advisory wait for a machine: 20 minutes
// if it is in use, plus 20 per queued student. This is a display heuristic,
// not a scheduling guarantee.
func (e *Engine) WaitEstimateMinutes(machineID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	machine := e.findMachine(machineID)
	if machine == nil {
		return 0, ErrMachineNotFound
	}

	wait := 0
	if machine.Status == model.StatusInUse {
		wait = 20
	}
	return wait + len(machine.Queue)*20, nil
}

// ReleaseExpired returns each in-use machine to the available state once
// its latest booking end time has passed, and reports the freed machine
// ids. Machines in use without any recorded booking (seed data) are left
// alone.
func (e *Engine) ReleaseExpired(now time.Time) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var freed []string
	for i := range e.machines {
		m := &e.machines[i]
		if m.Status != model.StatusInUse {
			continue
		}

		var latestEnd time.Time
		found := false
		for _, b := range e.bookings {
			if b.ResourceType != model.ResourceMachine || b.ResourceID != m.ID {
				continue
			}
			if !found || b.EndTime.After(latestEnd) {
				latestEnd = b.EndTime
				found = true
			}
		}

		if found && !latestEnd.After(now) {
			m.Status = model.StatusAvailable
			freed = append(freed, m.ID)
			e.notify(fmt.Sprintf("%s is now available.", m.Name))
		}
	}

	if len(freed) > 0 {
		e.persist(store.KeyMachines, e.machines)
	}
	return freed
}

// UpdateMachineImage replaces a machine's photo.
func (e *Engine) UpdateMachineImage(machineID, image string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	machine := e.findMachine(machineID)
	if machine == nil {
		return ErrMachineNotFound
	}

	machine.Image = image
	e.persist(store.KeyMachines, e.machines)
	e.notify(fmt.Sprintf("Updated photo for %s", machine.Name))
	return nil
}

// queuePriority derives the current student's queue tier from their
// assignments. Callers must hold the mutex.
func (e *Engine) queuePriority() int {
	for _, a := range e.assignments {
		if a.RiskAssessment == model.RiskHigh {
			return 2
		}
	}
	return 1
}

// sortQueue orders a wait queue by priority descending, then timestamp
// ascending. The sort is stable so entries with equal priority and
// timestamp never reorder.
func sortQueue(queue []model.QueueEntry) {
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].Priority != queue[j].Priority {
			return queue[i].Priority > queue[j].Priority
		}
		return queue[i].Timestamp < queue[j].Timestamp
	})
}
