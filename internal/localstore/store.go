// Package localstore is the on-device fallback database. Each logical table
// is a single row holding an ordered JSON array of records, mirroring the
// row shape of the remote backend so the two stores stay reconcilable by id.
package localstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	TableCompanies = "db_companies"
	TableUsers     = "db_users"
	TableDecisions = "db_decisions"
)

// Record is one JSON row. Field names follow the remote (snake_case) shape.
type Record = map[string]any

type tableRow struct {
	Name      string         `gorm:"primaryKey;type:text"`
	Payload   datatypes.JSON `gorm:"type:json;not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

func (tableRow) TableName() string { return "local_tables" }

// Store persists named tables of JSON records.
type Store struct {
	db  *gorm.DB
	log *zap.Logger

	// Upsert and Add are read-modify-write over a whole table.
	mu sync.Mutex
}

func New(db *gorm.DB, log *zap.Logger) (*Store, error) {
	if err := db.AutoMigrate(&tableRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Get returns the table's records in stored order. An absent table or a
// corrupt payload yields an empty slice, never an error: the local store is
// the path of last resort and must not fail.
func (s *Store) Get(ctx context.Context, table string) []Record {
	var row tableRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", table).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.log.Warn("local table read failed", zap.String("table", table), zap.Error(err))
		}
		return []Record{}
	}

	var records []Record
	if err := json.Unmarshal(row.Payload, &records); err != nil {
		s.log.Warn("local table payload corrupt", zap.String("table", table), zap.Error(err))
		return []Record{}
	}
	if records == nil {
		return []Record{}
	}
	return records
}

// Save overwrites the table with records, preserving their order.
func (s *Store) Save(ctx context.Context, table string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&tableRow{Name: table, Payload: payload, UpdatedAt: time.Now().UTC()}).Error
}

// Upsert merges record onto the existing record with the same id, or appends
// it. The merge is shallow and additive: fields present in record win, fields
// absent from record keep their prior value.
func (s *Store) Upsert(ctx context.Context, table string, record Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.Get(ctx, table)
	id := recordID(record)

	merged := record
	found := false
	for i, existing := range records {
		if recordID(existing) != id || id == "" {
			continue
		}
		for k, v := range record {
			existing[k] = v
		}
		records[i] = existing
		merged = existing
		found = true
		break
	}
	if !found {
		records = append(records, record)
	}

	if err := s.Save(ctx, table, records); err != nil {
		return nil, err
	}
	return merged, nil
}

// Add prepends record, keeping the table in most-recent-first order.
func (s *Store) Add(ctx context.Context, table string, record Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append([]Record{record}, s.Get(ctx, table)...)
	if err := s.Save(ctx, table, records); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes the record with the given id. Removing an id that is not
// present is a no-op, which keeps deletion idempotent.
func (s *Store) Delete(ctx context.Context, table, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.Get(ctx, table)
	kept := records[:0]
	for _, r := range records {
		if recordID(r) != id {
			kept = append(kept, r)
		}
	}
	return s.Save(ctx, table, kept)
}

func recordID(r Record) string {
	id, _ := r["id"].(string)
	return id
}
