// Package workspace opens a farm ledger workspace: its farmledger.yaml
// configuration and the storage backend it selects.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agrifaas/farmledger/internal/accounts"
	"github.com/agrifaas/farmledger/internal/config"
	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/logger"
	"github.com/agrifaas/farmledger/internal/model"
	"github.com/agrifaas/farmledger/internal/projection"
	"github.com/agrifaas/farmledger/internal/sqlstore"
)

// ErrNotFound is returned when no farmledger.yaml exists in the directory or
// any of its parents.
var ErrNotFound = errors.New("no farmledger workspace found (run `farmledger init`)")

// Workspace is an opened workspace.
type Workspace struct {
	Root   string
	Config *config.Config
	Store  Store
	log    zerolog.Logger
}

// Find walks up from dir to the nearest directory holding farmledger.yaml.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, config.FileName)); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotFound
		}
		abs = parent
	}
}

// Open finds the workspace containing dir, loads and validates its config,
// and opens its store.
func Open(ctx context.Context, dir string) (*Workspace, error) {
	root, err := Find(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.FileName, err)
	}

	store, err := openStore(root, cfg.Storage)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx).With().Str("workspace", root).Logger()
	log.Debug().Str("driver", cfg.Storage.Driver).Msg("workspace opened")
	return &Workspace{Root: root, Config: cfg, Store: store, log: log}, nil
}

func openStore(root string, sc config.StorageConfig) (Store, error) {
	switch sc.Driver {
	case config.DriverSQLite:
		path := sc.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		s, err := sqlstore.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil
	default:
		return newFileStore(root), nil
	}
}

// Init creates a new workspace at root with cfg, seeds chart as the chart of
// accounts, and creates the import and logs directories. It fails if root
// already holds a workspace.
func Init(ctx context.Context, root string, cfg *config.Config, chart []model.Account) (*Workspace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfgPath := filepath.Join(root, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return nil, fmt.Errorf("%s already exists", cfgPath)
	}

	for _, dir := range []string{root, filepath.Join(root, "import"), filepath.Join(root, "logs")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return nil, err
	}

	store, err := openStore(root, cfg.Storage)
	if err != nil {
		return nil, err
	}
	if fs, ok := store.(*fileStore); ok {
		if err := accounts.NewService(nil).Save(fs.root); err != nil {
			return nil, err
		}
	}
	for _, a := range chart {
		if _, err := store.AddAccount(a); err != nil {
			store.Close()
			return nil, fmt.Errorf("seeding account %s: %w", a.ID, err)
		}
	}

	log := logger.FromContext(ctx).With().Str("workspace", root).Logger()
	log.Debug().Int("accounts", len(chart)).Msg("workspace initialized")
	return &Workspace{Root: root, Config: cfg, Store: store, log: log}, nil
}

// Close closes the store.
func (w *Workspace) Close() error {
	return w.Store.Close()
}

// Chart loads the chart of accounts into a lookup service.
func (w *Workspace) Chart() (*accounts.Service, error) {
	accts, err := w.Store.LoadAccounts()
	if err != nil {
		return nil, err
	}
	return accounts.NewService(accts), nil
}

// Book loads every account and entry in currency. An empty currency selects
// the workspace's reporting currency. Diagnostics found while loading are
// logged as warnings and returned.
func (w *Workspace) Book(currency string) (ledger.Book, []ledger.Diagnostic, error) {
	if currency == "" {
		currency = w.Config.Workspace.Currency
	}
	accts, err := w.Store.LoadAccounts()
	if err != nil {
		return ledger.Book{}, nil, err
	}
	entries, err := w.Store.LoadEntries()
	if err != nil {
		return ledger.Book{}, nil, err
	}

	diags := ledger.Check(accts, entries)
	for _, d := range diags {
		w.log.Warn().Str("kind", string(d.Kind)).Str("entry", d.EntryID).Msg(d.Message)
	}

	book := ledger.Book{Accounts: accts, Entries: entries}.InCurrency(currency)
	w.log.Debug().
		Str("currency", model.NormalizeCurrency(currency)).
		Int("accounts", len(book.Accounts)).
		Int("entries", len(book.Entries)).
		Msg("book loaded")
	return book, diags, nil
}

// Bindings resolves the configured account roles against the chart.
// Problems are logged and returned.
func (w *Workspace) Bindings() (accounts.Bindings, []string, error) {
	chart, err := w.Chart()
	if err != nil {
		return nil, nil, err
	}
	b, problems := chart.Bind(w.Config.Roles)
	for _, p := range problems {
		w.log.Warn().Msg(p)
	}
	return b, problems, nil
}

// Classifier builds the expense classifier from config.
func (w *Workspace) Classifier() (projection.Classifier, error) {
	c := w.Config.Classification
	return projection.NewClassifier(c.Accounts, c.COGSKeywords)
}
