// Package release returns in-use machines to the available state once
// their latest booking has ended.
package release

import (
	"context"
	"log"
	"time"
)

// Releaser frees machines whose bookings have expired. The reservation
// engine satisfies it.
type Releaser interface {
	ReleaseExpired(now time.Time) []string
}

// Dispatcher receives freed machine ids for push notification.
type Dispatcher interface {
	Dispatch(machineID string)
}

// Worker periodically sweeps for expired bookings.
type Worker struct {
	releaser   Releaser
	dispatcher Dispatcher
	interval   time.Duration
}

// NewWorker creates a release worker.
func NewWorker(releaser Releaser, dispatcher Dispatcher, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Worker{
		releaser:   releaser,
		dispatcher: dispatcher,
		interval:   interval,
	}
}

// Run sweeps immediately, then on every tick until the context is done.
func (w *Worker) Run(ctx context.Context) {
	log.Printf("Release worker started (interval %s)", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep()

	for {
		select {
		case <-ctx.Done():
			log.Println("Release worker shutting down.")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// Sweep runs one release pass. Exported for tests and manual triggering.
func (w *Worker) Sweep() {
	w.sweep()
}

func (w *Worker) sweep() {
	freed := w.releaser.ReleaseExpired(time.Now())
	if len(freed) == 0 {
		return
	}
	log.Printf("Released %d machines", len(freed))
	if w.dispatcher == nil {
		return
	}
	for _, id := range freed {
		w.dispatcher.Dispatch(id)
	}
}
