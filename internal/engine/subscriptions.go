package engine

import (
	"errors"

	"studio-lab-backend/internal/model"
	"studio-lab-backend/internal/store"
)

// ErrSubscriptionNotFound is returned when no subscription matches an
// endpoint.
var ErrSubscriptionNotFound = errors.New("engine: subscription not found")

// PutSubscription creates or replaces a push subscription keyed by its
// endpoint.
func (e *Engine) PutSubscription(sub model.PushSubscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.subscriptions {
		if e.subscriptions[i].Endpoint == sub.Endpoint {
			e.subscriptions[i] = sub
			e.persist(store.KeySubscriptions, e.subscriptions)
			return
		}
	}
	e.subscriptions = append(e.subscriptions, sub)
	e.persist(store.KeySubscriptions, e.subscriptions)
}

// Subscription returns the subscription for an endpoint.
func (e *Engine) Subscription(endpoint string) (model.PushSubscription, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.subscriptions {
		if s.Endpoint == endpoint {
			return s, nil
		}
	}
	return model.PushSubscription{}, ErrSubscriptionNotFound
}

// DeleteSubscription removes a subscription. Deleting an unknown endpoint
// is a no-op.
func (e *Engine) DeleteSubscription(endpoint string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.subscriptions {
		if e.subscriptions[i].Endpoint == endpoint {
			e.subscriptions = append(e.subscriptions[:i], e.subscriptions[i+1:]...)
			e.persist(store.KeySubscriptions, e.subscriptions)
			return
		}
	}
}

// SubscriptionsForMachine returns every subscription watching the given
// machine.
func (e *Engine) SubscriptionsForMachine(machineID string) []model.PushSubscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	var matched []model.PushSubscription
	for _, s := range e.subscriptions {
		for _, id := range s.MachineIDs {
			if id == machineID {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched
}
