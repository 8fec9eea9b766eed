// Package store persists each named collection as a full JSON snapshot,
// overwritten on every mutation and read once at startup. There are no
// transactional guarantees across collections.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by Load when no snapshot exists for the key.
var ErrNotFound = errors.New("store: snapshot not found")

// Snapshot keys for the studio collections.
const (
	KeyMachines      = "machines"
	KeySlots         = "slots"
	KeyBookings      = "bookings"
	KeyAssignments   = "assignments"
	KeyProfile       = "profile"
	KeyMaterials     = "materials"
	KeySubscriptions = "subscriptions"
)

// Store defines the snapshot persistence operations.
type Store interface {
	Load(key string, dest any) error
	Save(key string, value any) error
	Delete(key string) error
}

// Snapshot is one persisted collection, keyed by name.
type Snapshot struct {
	Key       string `gorm:"primaryKey;size:64"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// gormStore implements Store on top of GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed snapshot store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Load reads the snapshot for key and unmarshals it into dest. A missing
// snapshot returns ErrNotFound; an unparsable one returns the decode error.
// Callers fall back to default data in either case.
func (s *gormStore) Load(key string, dest any) error {
	var snap Snapshot
	if err := s.db.First(&snap, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load snapshot %q: %w", key, err)
	}
	if err := json.Unmarshal(snap.Data, dest); err != nil {
		return fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return nil
}

// Save marshals value and overwrites the snapshot for key.
func (s *gormStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}

	snap := Snapshot{Key: key, Data: data, UpdatedAt: time.Now().UTC()}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&snap).Error; err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot for key. Deleting a missing key is a no-op.
func (s *gormStore) Delete(key string) error {
	if err := s.db.Delete(&Snapshot{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}
