package notification

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Notification is one transient user-facing message. Each carries a unique
// handle so expiry removes exactly this instance, never another entry that
// happens to share the same text.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`

	seq int64
}

// Sink collects auto-expiring notifications. Entries expire independently
// after the configured TTL; identical messages are independent entries.
type Sink struct {
	items *cache.Cache
	seq   atomic.Int64
}

// NewSink creates a sink whose entries live for ttl.
func NewSink(ttl time.Duration) *Sink {
	return &Sink{
		items: cache.New(ttl, ttl),
	}
}

// Notify records a message with a fresh handle.
func (s *Sink) Notify(message string) {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
		seq:       s.seq.Add(1),
	}
	s.items.Set(n.ID, n, cache.DefaultExpiration)
}

// List returns the live notifications, most recent first.
func (s *Sink) List() []Notification {
	items := s.items.Items()
	out := make([]Notification, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(Notification))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].seq > out[j].seq
	})
	return out
}

// Dismiss removes a notification by its handle before it expires.
func (s *Sink) Dismiss(id string) {
	s.items.Delete(id)
}
