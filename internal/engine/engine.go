// Package engine owns the studio's application state and gates every
// mutation of it. Handlers never touch collections directly; they call the
// operations here so the identity, training and queue invariants stay
// centralized.
package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"studio-lab-backend/internal/catalog"
	"studio-lab-backend/internal/model"
	"studio-lab-backend/internal/store"
)

// Sentinel errors for declined operations. Policy rejections are ordinary
// declined requests, never fatal; callers map them to HTTP statuses.
var (
	ErrMachineNotFound    = errors.New("engine: machine not found")
	ErrSlotNotFound       = errors.New("engine: faculty slot not found")
	ErrAssignmentNotFound = errors.New("engine: assignment not found")
	ErrIdentityRequired   = errors.New("engine: identification required")
	ErrTrainingRequired   = errors.New("engine: safety certification missing")
	ErrMachineUnavailable = errors.New("engine: machine is not available")
	ErrAlreadyQueued      = errors.New("engine: already in queue")
)

// Notifier receives transient user-facing messages describing operation
// outcomes.
type Notifier interface {
	Notify(message string)
}

// Engine holds all studio collections behind a mutex and persists every
// touched collection through the store after each mutation.
type Engine struct {
	mu       sync.Mutex
	store    store.Store
	notifier Notifier
	now      func() time.Time

	machines      []model.Machine
	slots         []model.FacultySlot
	bookings      []model.ResourceBooking
	assignments   []model.Assignment
	materials     []model.Material
	profile       model.Profile
	subscriptions []model.PushSubscription
}

// New creates an engine, loading each collection from the store and falling
// back to the default catalog when a snapshot is absent or unreadable.
func New(s store.Store, notifier Notifier) *Engine {
	e := &Engine{
		store:    s,
		notifier: notifier,
		now:      time.Now,
	}
	e.loadAll()
	return e
}

// loadAll hydrates every collection, one snapshot each.
func (e *Engine) loadAll() {
	if !e.load(store.KeyMachines, &e.machines) {
		e.machines = catalog.Machines()
	}
	if !e.load(store.KeySlots, &e.slots) {
		e.slots = catalog.FacultySlots()
	}
	if !e.load(store.KeyBookings, &e.bookings) {
		e.bookings = []model.ResourceBooking{}
	}
	if !e.load(store.KeyAssignments, &e.assignments) {
		e.assignments = catalog.Assignments()
	}
	if !e.load(store.KeyMaterials, &e.materials) {
		e.materials = catalog.Materials()
	}
	if !e.load(store.KeyProfile, &e.profile) {
		e.profile = catalog.Profile()
	}
	if !e.load(store.KeySubscriptions, &e.subscriptions) {
		e.subscriptions = []model.PushSubscription{}
	}
}

// load returns false when the caller should fall back to default data.
// Corrupt snapshots are logged and otherwise treated like missing ones.
func (e *Engine) load(key string, dest any) bool {
	err := e.store.Load(key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Warning: snapshot %q unreadable, using defaults: %v", key, err)
	}
	return false
}

// persist writes one collection snapshot. Storage is best effort; failures
// are logged, not propagated.
func (e *Engine) persist(key string, value any) {
	if err := e.store.Save(key, value); err != nil {
		log.Printf("Error persisting %q: %v", key, err)
	}
}

func (e *Engine) notify(message string) {
	if e.notifier != nil {
		e.notifier.Notify(message)
	}
}

// SetClock overrides the engine's time source. Intended for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// Machines returns a snapshot of the machine roster. Queues and
// specifications are copied too: handlers marshal snapshots outside the
// mutex, so nothing returned may alias the live collections.
func (e *Engine) Machines() []model.Machine {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Machine, len(e.machines))
	for i, m := range e.machines {
		out[i] = cloneMachine(m)
	}
	return out
}

// Machine returns a single machine by id.
func (e *Engine) Machine(id string) (model.Machine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := e.findMachine(id)
	if m == nil {
		return model.Machine{}, ErrMachineNotFound
	}
	return cloneMachine(*m), nil
}

// cloneMachine copies the machine's nested slices so later in-place queue
// mutations never reach a snapshot a caller already holds.
func cloneMachine(m model.Machine) model.Machine {
	m.Queue = append(make([]model.QueueEntry, 0, len(m.Queue)), m.Queue...)
	m.Specifications = append(make([]string, 0, len(m.Specifications)), m.Specifications...)
	return m
}

// Slots returns a snapshot of the faculty consultation schedule.
func (e *Engine) Slots() []model.FacultySlot {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.FacultySlot, len(e.slots))
	copy(out, e.slots)
	return out
}

// Bookings returns a snapshot of all confirmed reservations.
func (e *Engine) Bookings() []model.ResourceBooking {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.ResourceBooking, len(e.bookings))
	copy(out, e.bookings)
	return out
}

// Assignments returns a snapshot of the project records.
func (e *Engine) Assignments() []model.Assignment {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Assignment, len(e.assignments))
	copy(out, e.assignments)
	return out
}

// Materials returns the marketplace listings.
func (e *Engine) Materials() []model.Material {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Material, len(e.materials))
	copy(out, e.materials)
	return out
}

// Profile returns the current local user.
func (e *Engine) Profile() model.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile
}

// ResetLabData restores machines, slots and materials to the fixed default
// catalog and clears all bookings. Assignments and the profile are left
// alone.
func (e *Engine) ResetLabData() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.machines = catalog.Machines()
	e.slots = catalog.FacultySlots()
	e.materials = catalog.Materials()
	e.bookings = []model.ResourceBooking{}

	e.persist(store.KeyMachines, e.machines)
	e.persist(store.KeySlots, e.slots)
	e.persist(store.KeyMaterials, e.materials)
	e.persist(store.KeyBookings, e.bookings)

	e.notify("Laboratory inventory reset to system defaults.")
}

// findMachine returns a pointer into the machines slice, or nil.
// Callers must hold the mutex.
func (e *Engine) findMachine(id string) *model.Machine {
	for i := range e.machines {
		if e.machines[i].ID == id {
			return &e.machines[i]
		}
	}
	return nil
}
