package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studio-lab-backend/internal/api"
	"studio-lab-backend/internal/engine"
	"studio-lab-backend/internal/model"
	"studio-lab-backend/internal/notification"
	"studio-lab-backend/internal/release"
	"studio-lab-backend/internal/store"
)

// TestReservationLifecycle simulates the entire lifecycle of a machine
// reservation, from booking through automatic release, and verifies the
// persisted state at each step.
func TestReservationLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// --- Test Setup ---

	// 1. Setup an in-memory SQLite database for testing. The named DSN
	// keeps every pooled connection on the same data.
	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to the in-memory database: %v", err)
	}
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	// Run database migrations.
	err = testDB.AutoMigrate(&store.Snapshot{})
	assert.NoError(t, err)

	// 2. Assemble the full service stack: snapshot store, notification
	// sink, reservation engine, push pool and release worker.
	snapshots := store.NewGormStore(testDB)
	sink := notification.NewSink(time.Minute)
	eng := engine.New(snapshots, sink)
	pool := notification.NewWorkerPool(1, eng, &webpush.Options{})
	releaser := release.NewWorker(eng, pool, time.Hour)

	// 3. Subscribe to availability pushes for the machine under test.
	eng.PutSubscription(model.PushSubscription{
		Endpoint:   "https://example.com/push",
		P256DH:     "key",
		Auth:       "secret",
		MachineIDs: []string{"c1"},
	})

	// --- Step 1: Book a machine whose window has already elapsed. ---

	booking, err := eng.BookMachine("c1",
		time.Now().Add(-time.Hour), time.Now().Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "c1", booking.ResourceID)

	machine, err := eng.Machine("c1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInUse, machine.Status)

	// The booking snapshot must already be on disk: a second engine built
	// over the same store sees the reservation.
	reloaded := engine.New(snapshots, nil)
	assert.Len(t, reloaded.Bookings(), 1)
	m, err := reloaded.Machine("c1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInUse, m.Status)

	// --- Step 2: Run a release sweep. ---

	releaser.Sweep()

	machine, err = eng.Machine("c1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, machine.Status)

	// The sweep queued a push job for the freed machine.
	select {
	case freed := <-pool.Jobs():
		assert.Equal(t, "c1", freed)
	case <-time.After(time.Second):
		t.Fatal("no push job was dispatched for the freed machine")
	}

	// A second sweep is a no-op; the machine stays available and no
	// further job is queued.
	releaser.Sweep()
	select {
	case freed := <-pool.Jobs():
		t.Fatalf("unexpected second push job for %s", freed)
	default:
	}

	// --- Step 3: Reset the lab over HTTP and verify the defaults. ---

	handler := api.NewHandler(eng, sink, nil, nil)
	router := api.NewRouter(handler, api.RouterOptions{
		RateLimitPerSec: 10000,
		RateLimitBurst:  10000,
		CacheTTL:        time.Minute,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reset", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var bookings []model.ResourceBooking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Empty(t, bookings)

	// The reset survives a restart too.
	restarted := engine.New(snapshots, nil)
	assert.Empty(t, restarted.Bookings())
	m, err = restarted.Machine("c1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, m.Status)
}
