package engine

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studio-lab-backend/internal/catalog"
	"studio-lab-backend/internal/model"
	"studio-lab-backend/internal/store"
)

// recorder captures notifications emitted by the engine.
type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, message)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func (r *recorder) contains(t *testing.T, want string) {
	t.Helper()
	for _, m := range r.messages() {
		if m == want {
			return
		}
	}
	t.Fatalf("notification %q not emitted; got %v", want, r.messages())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database keeps every pooled connection on the
	// same data while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&store.Snapshot{}))
	return db
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	return store.NewGormStore(newTestDB(t))
}

func newTestEngine(t *testing.T) (*Engine, *recorder, store.Store) {
	t.Helper()
	s := newTestStore(t)
	rec := &recorder{}
	return New(s, rec), rec, s
}

// setTraining replaces the profile's completed-training set.
func setTraining(t *testing.T, e *Engine, categories ...model.MachineCategory) {
	t.Helper()
	_, err := e.UpdateProfile(ProfileUpdate{TrainingCompleted: &categories})
	require.NoError(t, err)
}

func TestBookMachine_IdentityGate(t *testing.T) {
	e, rec, _ := newTestEngine(t)

	// w1 is the SawStop: requiresIdentity and trainingRequired, and the
	// default profile lacks nothing, so incognito alone must block it.
	require.True(t, e.ToggleIncognito())
	setTraining(t, e) // also strip training: the identity gate runs first

	before, err := e.Machine("w1")
	require.NoError(t, err)
	require.Equal(t, model.StatusAvailable, before.Status)

	booking, err := e.BookMachine("w1", time.Now(), time.Now().Add(30*time.Minute))
	assert.ErrorIs(t, err, ErrIdentityRequired)
	assert.Nil(t, booking)

	after, err := e.Machine("w1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, after.Status, "rejection must not mutate machine status")
	assert.Empty(t, e.Bookings(), "rejection must not create bookings")
	rec.contains(t, "High-Hazard Warning: SawStop Cabinet Saw requires identification.")
}

func TestBookMachine_TrainingGate(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	setTraining(t, e, model.CategoryCeramics) // no Wood

	booking, err := e.BookMachine("w1", time.Now(), time.Now().Add(30*time.Minute))
	assert.ErrorIs(t, err, ErrTrainingRequired)
	assert.Nil(t, booking)
	assert.Empty(t, e.Bookings())

	after, _ := e.Machine("w1")
	assert.Equal(t, model.StatusAvailable, after.Status)
	rec.contains(t, "Access Denied: Wood safety certification missing.")
}

func TestBookMachine_Success(t *testing.T) {
	e, rec, s := newTestEngine(t)

	start := time.Now()
	end := start.Add(45 * time.Minute)
	booking, err := e.BookMachine("w1", start, end)
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "w1", booking.ResourceID)
	assert.Equal(t, model.ResourceMachine, booking.ResourceType)
	assert.Equal(t, "ku id 2503u0120", booking.StudentID)
	assert.False(t, booking.IsAnonymous)

	machine, _ := e.Machine("w1")
	assert.Equal(t, model.StatusInUse, machine.Status)
	require.Len(t, e.Bookings(), 1)
	rec.contains(t, "Reservation confirmed: SawStop Cabinet Saw")

	// A second engine hydrated from the same store sees the mutation.
	reloaded := New(s, &recorder{})
	m2, err := reloaded.Machine("w1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInUse, m2.Status)
	assert.Len(t, reloaded.Bookings(), 1)
}

func TestBookMachine_UnknownAndUnavailable(t *testing.T) {
	e, _, _ := newTestEngine(t)

	_, err := e.BookMachine("nope", time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrMachineNotFound)

	// c2 is seeded In Use.
	_, err = e.BookMachine("c2", time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrMachineUnavailable)
	assert.Empty(t, e.Bookings())
}

func TestBookMachine_IncognitoAllowedWhenIdentityNotRequired(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.True(t, e.ToggleIncognito())

	// t1 does not require identity; the booking carries the anonymity flag.
	booking, err := e.BookMachine("t1", time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, booking.IsAnonymous)
}

func TestBookSlot(t *testing.T) {
	e, rec, _ := newTestEngine(t)

	require.NoError(t, e.BookSlot("f1"))
	slots := e.Slots()
	assert.True(t, slots[0].IsBooked)
	rec.contains(t, "Faculty session booked!")

	// Idempotent re-book.
	require.NoError(t, e.BookSlot("f1"))
	assert.True(t, e.Slots()[0].IsBooked)

	assert.ErrorIs(t, e.BookSlot("zz"), ErrSlotNotFound)
}

func TestJoinQueue_IdentityGate(t *testing.T) {
	e, rec, _ := newTestEngine(t)
	require.True(t, e.ToggleIncognito())

	// m2 requires identity and is seeded In Use with one queued student.
	entry, err := e.JoinQueue("m2")
	assert.ErrorIs(t, err, ErrIdentityRequired)
	assert.Nil(t, entry)

	machine, _ := e.Machine("m2")
	assert.Len(t, machine.Queue, 1, "rejection must not grow the queue")
	rec.contains(t, "Verification Required: Disable Incognito for Precision Metal Lathe queue.")
}

func TestJoinQueue_PriorityFromAssignments(t *testing.T) {
	e, _, _ := newTestEngine(t)

	// The seed assignments include one High-risk project.
	entry, err := e.JoinQueue("df1")
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Priority)

	// Without any High-risk assignment the tier drops to 1.
	require.NoError(t, e.LeaveQueue("df1"))
	require.NoError(t, e.DeleteAssignment("3"))
	entry, err = e.JoinQueue("df1")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Priority)
}

func TestJoinQueue_DuplicateRejected(t *testing.T) {
	e, _, _ := newTestEngine(t)

	_, err := e.JoinQueue("c2")
	require.NoError(t, err)
	_, err = e.JoinQueue("c2")
	assert.ErrorIs(t, err, ErrAlreadyQueued)

	machine, _ := e.Machine("c2")
	count := 0
	for _, q := range machine.Queue {
		if q.StudentID == "ku id 2503u0120" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestLeaveThenJoin_SingleEntry(t *testing.T) {
	e, _, _ := newTestEngine(t)

	for i := 0; i < 3; i++ {
		_, err := e.JoinQueue("c2")
		require.NoError(t, err)
		require.NoError(t, e.LeaveQueue("c2"))
	}
	_, err := e.JoinQueue("c2")
	require.NoError(t, err)

	machine, _ := e.Machine("c2")
	count := 0
	for _, q := range machine.Queue {
		if q.StudentID == "ku id 2503u0120" {
			count++
		}
	}
	assert.Equal(t, 1, count, "leave/join cycles must not accumulate entries")
}

func TestLeaveQueue_AbsentIsNoop(t *testing.T) {
	e, _, _ := newTestEngine(t)

	before, _ := e.Machine("c2")
	require.NoError(t, e.LeaveQueue("c2"))
	after, _ := e.Machine("c2")
	assert.Equal(t, len(before.Queue), len(after.Queue))

	assert.ErrorIs(t, e.LeaveQueue("nope"), ErrMachineNotFound)
}

func TestQueueOrdering_HighRiskJoinerOvertakes(t *testing.T) {
	e, _, _ := newTestEngine(t)

	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	now := base
	e.SetClock(func() time.Time { return now })

	// First student: no High-risk assignment, joins at T.
	require.NoError(t, e.DeleteAssignment("3"))
	low := "s-low"
	_, err := e.UpdateProfile(ProfileUpdate{StudentID: &low})
	require.NoError(t, err)
	first, err := e.JoinQueue("df2")
	require.NoError(t, err)
	require.Equal(t, 1, first.Priority)

	// Second student: High-risk assignment, joins at T+10s.
	now = base.Add(10 * time.Second)
	high := "s-high"
	_, err = e.UpdateProfile(ProfileUpdate{StudentID: &high})
	require.NoError(t, err)
	_, err = e.AddAssignment(model.Assignment{Title: "Kiln overhaul", RiskAssessment: model.RiskHigh})
	require.NoError(t, err)
	second, err := e.JoinQueue("df2")
	require.NoError(t, err)
	require.Equal(t, 2, second.Priority)

	machine, _ := e.Machine("df2")
	require.Len(t, machine.Queue, 2)
	assert.Equal(t, "s-high", machine.Queue[0].StudentID, "higher tier precedes earlier timestamp")
	assert.Equal(t, "s-low", machine.Queue[1].StudentID)

	// Sorted invariant across adjacent pairs.
	for i := 0; i+1 < len(machine.Queue); i++ {
		a, b := machine.Queue[i], machine.Queue[i+1]
		ok := a.Priority > b.Priority || (a.Priority == b.Priority && a.Timestamp <= b.Timestamp)
		assert.True(t, ok, "queue out of order at %d", i)
	}
}

func TestQueueOrdering_FIFOWithinTier(t *testing.T) {
	e, _, _ := newTestEngine(t)

	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	now := base
	e.SetClock(func() time.Time { return now })
	require.NoError(t, e.DeleteAssignment("3"))

	for i, id := range []string{"s-a", "s-b", "s-c"} {
		now = base.Add(time.Duration(i) * time.Second)
		sid := id
		_, err := e.UpdateProfile(ProfileUpdate{StudentID: &sid})
		require.NoError(t, err)
		_, err = e.JoinQueue("df2")
		require.NoError(t, err)
	}

	machine, _ := e.Machine("df2")
	require.Len(t, machine.Queue, 3)
	assert.Equal(t, []string{"s-a", "s-b", "s-c"}, []string{
		machine.Queue[0].StudentID,
		machine.Queue[1].StudentID,
		machine.Queue[2].StudentID,
	})
}

func TestMachines_SnapshotSurvivesLaterMutations(t *testing.T) {
	e, _, _ := newTestEngine(t)

	// The seed High-risk assignment puts us at tier 2, ahead of the
	// seeded tier-1 entry on m2.
	entry, err := e.JoinQueue("m2")
	require.NoError(t, err)
	require.Equal(t, 2, entry.Priority)

	snap, err := e.Machine("m2")
	require.NoError(t, err)
	require.Len(t, snap.Queue, 2)
	require.Equal(t, "ku id 2503u0120", snap.Queue[0].StudentID)

	// Snapshots are marshalled outside the engine mutex; an in-place
	// queue mutation must never reach one a caller already holds.
	require.NoError(t, e.LeaveQueue("m2"))

	assert.Len(t, snap.Queue, 2)
	assert.Equal(t, "ku id 2503u0120", snap.Queue[0].StudentID)
	assert.Equal(t, "s404", snap.Queue[1].StudentID)

	roster := e.Machines()
	_, err = e.JoinQueue("m2")
	require.NoError(t, err)
	for _, m := range roster {
		if m.ID == "m2" {
			assert.Len(t, m.Queue, 1, "roster snapshot must not grow with the live queue")
		}
	}
}

func TestWaitEstimate(t *testing.T) {
	e, _, _ := newTestEngine(t)

	// c2 is In Use with one queued student: 20 + 20.
	minutes, err := e.WaitEstimateMinutes("c2")
	require.NoError(t, err)
	assert.Equal(t, 40, minutes)

	// w1 is Available with an empty queue.
	minutes, err = e.WaitEstimateMinutes("w1")
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	// Joining bumps the estimate by 20.
	_, err = e.JoinQueue("w1")
	require.NoError(t, err)
	minutes, err = e.WaitEstimateMinutes("w1")
	require.NoError(t, err)
	assert.Equal(t, 20, minutes)

	_, err = e.WaitEstimateMinutes("nope")
	assert.ErrorIs(t, err, ErrMachineNotFound)
}

func TestReleaseExpired(t *testing.T) {
	e, rec, _ := newTestEngine(t)

	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	_, err := e.BookMachine("w1", start, end)
	require.NoError(t, err)

	// Before the end time nothing is freed.
	assert.Empty(t, e.ReleaseExpired(end.Add(-time.Minute)))
	machine, _ := e.Machine("w1")
	assert.Equal(t, model.StatusInUse, machine.Status)

	// After the end time the machine returns to Available.
	freed := e.ReleaseExpired(end.Add(time.Minute))
	assert.Equal(t, []string{"w1"}, freed)
	machine, _ = e.Machine("w1")
	assert.Equal(t, model.StatusAvailable, machine.Status)
	rec.contains(t, "SawStop Cabinet Saw is now available.")

	// Seeded In Use machines with no recorded booking are left alone.
	c2, _ := e.Machine("c2")
	assert.Equal(t, model.StatusInUse, c2.Status)

	// The booking record itself stays: bookings are immutable history.
	assert.Len(t, e.Bookings(), 1)
}

func TestResetLabData(t *testing.T) {
	e, rec, _ := newTestEngine(t)

	_, err := e.BookMachine("w1", time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = e.JoinQueue("c2")
	require.NoError(t, err)
	require.NoError(t, e.BookSlot("f1"))

	e.ResetLabData()

	defaults := catalog.Machines()
	machines := e.Machines()
	require.Len(t, machines, len(defaults))
	for i, m := range machines {
		assert.Equal(t, defaults[i].ID, m.ID)
		assert.Equal(t, defaults[i].Status, m.Status)
		assert.Len(t, m.Queue, len(defaults[i].Queue))
	}
	assert.Empty(t, e.Bookings())
	for _, s := range e.Slots() {
		assert.False(t, s.IsBooked)
	}
	rec.contains(t, "Laboratory inventory reset to system defaults.")
}

func TestToggleIncognito_ForwardOnly(t *testing.T) {
	e, rec, _ := newTestEngine(t)

	booking, err := e.BookMachine("t1", time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.False(t, booking.IsAnonymous)

	assert.True(t, e.ToggleIncognito())
	rec.contains(t, "Identity Masking: ACTIVE.")

	// Earlier bookings keep their recorded flag.
	assert.False(t, e.Bookings()[0].IsAnonymous)

	assert.False(t, e.ToggleIncognito())
	rec.contains(t, "Identity Masking: OFF.")
}

func TestCorruptSnapshotFallsBackToDefaults(t *testing.T) {
	db := newTestDB(t)

	// Write garbage where the machines snapshot should be.
	require.NoError(t, db.Create(&store.Snapshot{
		Key:  store.KeyMachines,
		Data: []byte("{not json"),
	}).Error)

	e := New(store.NewGormStore(db), &recorder{})
	machines := e.Machines()
	require.Len(t, machines, len(catalog.Machines()))
	assert.Equal(t, "c1", machines[0].ID)
}

func TestAssignmentValidation(t *testing.T) {
	e, _, _ := newTestEngine(t)

	_, err := e.AddAssignment(model.Assignment{Title: "   "})
	assert.Error(t, err)

	created, err := e.AddAssignment(model.Assignment{Title: "Bamboo Joinery Study", Progress: 250})
	require.NoError(t, err)
	assert.Equal(t, 100, created.Progress)
	assert.Equal(t, model.StageResearch, created.Status)

	// New assignments are prepended.
	assert.Equal(t, created.ID, e.Assignments()[0].ID)

	created.Status = model.StageComplete
	created.Progress = -5
	require.NoError(t, e.UpdateAssignment(*created))
	assert.Equal(t, model.StageComplete, e.Assignments()[0].Status)
	assert.Equal(t, 0, e.Assignments()[0].Progress)

	assert.ErrorIs(t, e.UpdateAssignment(model.Assignment{ID: "missing", Title: "x"}), ErrAssignmentNotFound)
	assert.ErrorIs(t, e.DeleteAssignment("missing"), ErrAssignmentNotFound)
}

func TestSubscriptions(t *testing.T) {
	e, _, _ := newTestEngine(t)

	sub := model.PushSubscription{
		Endpoint:   "https://push.example/abc",
		P256DH:     "key",
		Auth:       "auth",
		MachineIDs: []string{"w1", "c2"},
	}
	e.PutSubscription(sub)

	got, err := e.Subscription(sub.Endpoint)
	require.NoError(t, err)
	assert.Equal(t, sub.MachineIDs, got.MachineIDs)

	matched := e.SubscriptionsForMachine("w1")
	require.Len(t, matched, 1)
	assert.Empty(t, e.SubscriptionsForMachine("df1"))

	// Replacement by endpoint, not append.
	sub.MachineIDs = []string{"df1"}
	e.PutSubscription(sub)
	assert.Len(t, e.SubscriptionsForMachine("df1"), 1)
	assert.Empty(t, e.SubscriptionsForMachine("w1"))

	e.DeleteSubscription(sub.Endpoint)
	_, err = e.Subscription(sub.Endpoint)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}
