package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/agrifaas/farmledger/internal/model"
)

// ChartPath is the chart of accounts location relative to a workspace root.
const ChartPath = "accounts/chart-of-accounts.csv"

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// Load reads chart-of-accounts.csv from a workspace root and returns a Service.
func Load(root string) (*Service, error) {
	f, err := os.Open(filepath.Join(root, ChartPath))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts in chart order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// ByName finds an account by name, ignoring case and surrounding spaces.
func (s *Service) ByName(name string) (model.Account, bool) {
	name = strings.TrimSpace(name)
	for _, a := range s.accounts {
		if strings.EqualFold(strings.TrimSpace(a.Name), name) {
			return a, true
		}
	}
	return model.Account{}, false
}

// Resolve looks an account up by ID first, then by name.
func (s *Service) Resolve(ref string) (model.Account, bool) {
	if a, ok := s.Get(ref); ok {
		return a, true
	}
	return s.ByName(ref)
}

// Add validates and appends an account. An empty ID is replaced by a random
// UUID. Names must be unique ignoring case.
func (s *Service) Add(acct model.Account) (model.Account, error) {
	acct.Name = strings.TrimSpace(acct.Name)
	acct.Currency = model.NormalizeCurrency(acct.Currency)
	if acct.ID == "" {
		acct.ID = uuid.NewString()
	}

	if acct.Name == "" {
		return model.Account{}, fmt.Errorf("account name is required")
	}
	if _, err := model.ParseAccountType(string(acct.Type)); err != nil {
		return model.Account{}, err
	}
	if err := model.ValidateCurrency(acct.Currency); err != nil {
		return model.Account{}, err
	}
	if s.Exists(acct.ID) {
		return model.Account{}, fmt.Errorf("account %s already exists", acct.ID)
	}
	if existing, ok := s.ByName(acct.Name); ok {
		return model.Account{}, fmt.Errorf("account name %q already used by %s", acct.Name, existing.ID)
	}

	s.accounts = append(s.accounts, acct)
	s.byID[acct.ID] = acct
	return acct, nil
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, ChartPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
