// Package sqlstore keeps a workspace's chart of accounts and journal in a
// SQLite database through gorm.
package sqlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/agrifaas/farmledger/internal/accounts"
	"github.com/agrifaas/farmledger/internal/id"
	"github.com/agrifaas/farmledger/internal/journal"
	"github.com/agrifaas/farmledger/internal/model"
)

// Store is a SQLite-backed ledger store.
type Store struct {
	db *gorm.DB
}

// Open creates or opens the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	if err := db.AutoMigrate(&accountRow{}, &entryRow{}, &lineRow{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LoadAccounts returns the chart of accounts in insertion order.
func (s *Store) LoadAccounts() ([]model.Account, error) {
	var rows []accountRow
	if err := s.db.Order("position, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	out := make([]model.Account, 0, len(rows))
	for _, r := range rows {
		a, err := r.toAccount()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// AddAccount validates a against the existing chart and inserts it.
func (s *Store) AddAccount(a model.Account) (model.Account, error) {
	existing, err := s.LoadAccounts()
	if err != nil {
		return model.Account{}, err
	}
	added, err := accounts.NewService(existing).Add(a)
	if err != nil {
		return model.Account{}, err
	}
	row := fromAccount(added, len(existing))
	if err := s.db.Create(&row).Error; err != nil {
		return model.Account{}, fmt.Errorf("inserting account %s: %w", added.ID, err)
	}
	return added, nil
}

// LoadEntries returns every journal entry ordered by date then ID.
func (s *Store) LoadEntries() ([]model.JournalEntry, error) {
	var rows []entryRow
	err := s.db.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("date, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	out := make([]model.JournalEntry, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// AddEntries validates every entry against the chart and inserts them in one
// transaction. Entries without an ID get the next sequential ID of their
// month. Nothing is stored if any entry is rejected.
func (s *Store) AddEntries(entries []model.JournalEntry) ([]model.JournalEntry, error) {
	accts, err := s.LoadAccounts()
	if err != nil {
		return nil, err
	}
	chart := accounts.NewService(accts)

	var stored []model.JournalEntry
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var verrs []journal.ValidationError
		for _, e := range entries {
			e.Currency = model.NormalizeCurrency(e.Currency)
			if e.ID == "" {
				next, err := nextID(tx, e.Date)
				if err != nil {
					return err
				}
				e.ID = next
			} else if taken, err := exists(tx, e.ID); err != nil {
				return err
			} else if taken {
				return fmt.Errorf("%w: entry %s already exists", journal.ErrValidation, e.ID)
			}

			if v := journal.ValidateEntry(e, chart); len(v) > 0 {
				verrs = append(verrs, v...)
				continue
			}
			row := fromEntry(e)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("inserting entry %s: %w", e.ID, err)
			}
			stored = append(stored, e)
		}
		return journal.Err(verrs)
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func exists(tx *gorm.DB, entryID string) (bool, error) {
	var n int64
	if err := tx.Model(&entryRow{}).Where("id = ?", entryID).Count(&n).Error; err != nil {
		return false, fmt.Errorf("checking entry %s: %w", entryID, err)
	}
	return n > 0, nil
}

func nextID(tx *gorm.DB, date time.Time) (string, error) {
	prefix := strings.TrimSuffix(id.FormatEntryID(date.Year(), int(date.Month()), 0), "000")
	var ids []string
	err := tx.Model(&entryRow{}).Where("id LIKE ?", prefix+"%").Pluck("id", &ids).Error
	if err != nil {
		return "", fmt.Errorf("listing entry IDs: %w", err)
	}
	return id.NextEntryID(date, ids), nil
}
