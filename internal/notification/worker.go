package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"studio-lab-backend/internal/model"
)

// PushSender defines the interface for sending a web push notification.
type PushSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of PushSender using the webpush
// library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// SubscriptionSource provides the subscriptions and machine names the pool
// needs. The reservation engine satisfies it.
type SubscriptionSource interface {
	SubscriptionsForMachine(machineID string) []model.PushSubscription
	Machine(id string) (model.Machine, error)
	DeleteSubscription(endpoint string)
}

// WorkerPool manages a pool of workers for sending availability pushes
// when machines free up.
type WorkerPool struct {
	size    int
	jobs    chan string
	source  SubscriptionSource
	webpush *webpush.Options
	sender  PushSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, source SubscriptionSource, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		source:  source,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// SetSender overrides the push transport. Intended for tests.
func (wp *WorkerPool) SetSender(sender PushSender) {
	wp.sender = sender
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Push worker %d started", id)
	for {
		select {
		case machineID := <-wp.jobs:
			wp.sendForMachine(machineID)
		case <-ctx.Done():
			log.Printf("Push worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a freed machine id to the worker pool.
func (wp *WorkerPool) Dispatch(machineID string) {
	wp.jobs <- machineID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// sendForMachine pushes an availability alert to every subscription
// watching the machine.
func (wp *WorkerPool) sendForMachine(machineID string) {
	subscriptions := wp.source.SubscriptionsForMachine(machineID)
	if len(subscriptions) == 0 {
		return
	}

	machineLabel := machineID
	if machine, err := wp.source.Machine(machineID); err == nil && machine.Name != "" {
		machineLabel = machine.Name
	}

	message := fmt.Sprintf("%s is now available.", machineLabel)
	log.Printf("Sending %d pushes for machine %s", len(subscriptions), machineID)
	for _, sub := range subscriptions {
		wp.sendOne(sub, []byte(message))
	}
}

func (wp *WorkerPool) sendOne(sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending push to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		wp.source.DeleteSubscription(sub.Endpoint)
	}
}
