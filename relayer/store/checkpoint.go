// Package store persists relay checkpoints — the last height a relay
// successfully submitted against for a given client — so an orchestration
// process can resume without re-scanning from scratch after a restart.
package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/icellan/ibc-relayer-core/internal/logging"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Checkpoint records the last height a relay submitted messages for, keyed
// by the client the messages targeted.
type Checkpoint struct {
	ClientID       string `gorm:"primaryKey"`
	RevisionNumber uint64
	RevisionHeight uint64
	UpdatedAt      time.Time
}

// Store wraps a GORM handle scoped to checkpoint persistence.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open opens (creating if absent) a SQLite-backed checkpoint store at
// path, auto-migrating its schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Checkpoint{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{db: db, logger: logging.Child(logger, "store")}, nil
}

// Save upserts the checkpoint for clientID.
func (s *Store) Save(clientID string, revisionNumber, revisionHeight uint64) error {
	cp := Checkpoint{
		ClientID:       clientID,
		RevisionNumber: revisionNumber,
		RevisionHeight: revisionHeight,
		UpdatedAt:      time.Now(),
	}

	if err := s.db.Save(&cp).Error; err != nil {
		return fmt.Errorf("store: save checkpoint for %s: %w", clientID, err)
	}

	s.logger.Debug("saved checkpoint", slog.String("client_id", clientID), logging.Number(logging.HeightKey, revisionHeight))
	return nil
}

// Load returns the checkpoint for clientID, and false if none exists yet.
func (s *Store) Load(clientID string) (Checkpoint, bool, error) {
	var cp Checkpoint
	err := s.db.First(&cp, "client_id = ?", clientID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return Checkpoint{}, false, nil
		}
		return Checkpoint{}, false, fmt.Errorf("store: load checkpoint for %s: %w", clientID, err)
	}
	return cp, true, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return sqlDB.Close()
}
