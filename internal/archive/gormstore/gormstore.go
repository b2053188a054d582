package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arvidhagen/replaykit/internal/archive"
	"github.com/arvidhagen/replaykit/internal/model"
)

// replaySnapshot is the persistence model. The snapshot body is stored
// as a JSON blob; only identity and timing columns are queryable.
type replaySnapshot struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Organization string    `gorm:"index;size:128"`
	EventSlug    string    `gorm:"index;size:256"`
	FetchedAt    time.Time `gorm:"index"`
	Snapshot     []byte
}

func (replaySnapshot) TableName() string { return "replay_snapshots" }

// OpenPostgres opens a Postgres-backed gorm handle.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Store implements archive.Store on a gorm handle.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the replay_snapshots table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&replaySnapshot{})
}

func (s *Store) Save(ctx context.Context, rec archive.Record) error {
	body, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("archive save: marshal: %w", err)
	}
	row := replaySnapshot{
		ID:           rec.ID,
		Organization: rec.Organization,
		EventSlug:    rec.EventSlug,
		FetchedAt:    rec.FetchedAt,
		Snapshot:     body,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("archive save: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (archive.Record, error) {
	var row replaySnapshot
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return archive.Record{}, archive.ErrNotFound
	}
	if err != nil {
		return archive.Record{}, fmt.Errorf("archive get: %w", err)
	}
	var snap model.Snapshot
	if len(row.Snapshot) > 0 {
		if err := json.Unmarshal(row.Snapshot, &snap); err != nil {
			return archive.Record{}, fmt.Errorf("archive get: unmarshal: %w", err)
		}
	}
	return archive.Record{
		ID:           row.ID,
		Organization: row.Organization,
		EventSlug:    row.EventSlug,
		FetchedAt:    row.FetchedAt,
		Snapshot:     snap,
	}, nil
}

func (s *Store) List(ctx context.Context, limit int) ([]archive.Record, error) {
	var rows []replaySnapshot
	q := s.db.WithContext(ctx).
		Select("id", "organization", "event_slug", "fetched_at").
		Order("fetched_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("archive list: %w", err)
	}
	out := make([]archive.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, archive.Record{
			ID:           row.ID,
			Organization: row.Organization,
			EventSlug:    row.EventSlug,
			FetchedAt:    row.FetchedAt,
		})
	}
	return out, nil
}
