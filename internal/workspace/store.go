package workspace

import (
	"fmt"

	"github.com/agrifaas/farmledger/internal/accounts"
	"github.com/agrifaas/farmledger/internal/journal"
	"github.com/agrifaas/farmledger/internal/model"
)

// Store persists a workspace's chart of accounts and journal. Both backends
// validate entries with journal.ValidateEntry before storing them.
type Store interface {
	LoadAccounts() ([]model.Account, error)
	AddAccount(a model.Account) (model.Account, error)
	LoadEntries() ([]model.JournalEntry, error)
	AddEntries(entries []model.JournalEntry) ([]model.JournalEntry, error)
	Close() error
}

// fileStore keeps accounts in accounts/chart-of-accounts.csv and entries in
// month-partitioned YYYY/MM/journal.csv files.
type fileStore struct {
	root string
}

func newFileStore(root string) *fileStore {
	return &fileStore{root: root}
}

func (s *fileStore) chart() (*accounts.Service, error) {
	return accounts.Load(s.root)
}

func (s *fileStore) LoadAccounts() ([]model.Account, error) {
	svc, err := s.chart()
	if err != nil {
		return nil, err
	}
	return svc.All(), nil
}

func (s *fileStore) AddAccount(a model.Account) (model.Account, error) {
	svc, err := s.chart()
	if err != nil {
		return model.Account{}, err
	}
	added, err := svc.Add(a)
	if err != nil {
		return model.Account{}, err
	}
	if err := svc.Save(s.root); err != nil {
		return model.Account{}, fmt.Errorf("saving chart of accounts: %w", err)
	}
	return added, nil
}

func (s *fileStore) LoadEntries() ([]model.JournalEntry, error) {
	return journal.NewService(s.root, nil).ReadAll()
}

func (s *fileStore) AddEntries(entries []model.JournalEntry) ([]model.JournalEntry, error) {
	svc, err := s.chart()
	if err != nil {
		return nil, err
	}
	return journal.NewService(s.root, svc).AddEntries(entries)
}

func (s *fileStore) Close() error { return nil }
