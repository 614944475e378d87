package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agrifaas/farmledger/internal/accounts"
	"github.com/agrifaas/farmledger/internal/model"
	"github.com/agrifaas/farmledger/internal/projection"
)

// FileName is the config file at the root of every workspace.
const FileName = "farmledger.yaml"

// Storage drivers.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

// Config represents the top-level farmledger.yaml configuration.
type Config struct {
	Workspace      WorkspaceConfig                 `yaml:"workspace"`
	Fiscal         FiscalConfig                    `yaml:"fiscal"`
	Storage        StorageConfig                   `yaml:"storage"`
	Roles          map[string][]string             `yaml:"roles,omitempty"`
	Classification ClassificationConfig            `yaml:"classification,omitempty"`
	Scenarios      map[string]projection.Overrides `yaml:"scenarios,omitempty"`
	Projection     ProjectionConfig                `yaml:"projection"`
	Git            GitConfig                       `yaml:"git"`
}

// WorkspaceConfig identifies the farm.
type WorkspaceConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // reporting currency, ISO 4217
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// StorageConfig selects where accounts and entries live.
type StorageConfig struct {
	Driver string `yaml:"driver"`         // csv or sqlite
	Path   string `yaml:"path,omitempty"` // sqlite database, relative to the workspace
}

// ClassificationConfig splits expense accounts for the projection base year.
type ClassificationConfig struct {
	Accounts     map[string]string `yaml:"accounts,omitempty"` // account ID -> cogs | sga | depreciation | interest | tax
	COGSKeywords []string          `yaml:"cogs_keywords,omitempty"`
}

// ProjectionConfig holds projection defaults.
type ProjectionConfig struct {
	Years    int    `yaml:"years"`
	Scenario string `yaml:"scenario"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a farmledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Workspace.Currency = model.NormalizeCurrency(cfg.Workspace.Currency)
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverCSV
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(name, currency string) *Config {
	roles := make(map[string][]string)
	for role, ids := range accounts.DefaultBindings() {
		roles[string(role)] = ids
	}
	return &Config{
		Workspace: WorkspaceConfig{
			Name:     name,
			Currency: model.NormalizeCurrency(currency),
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Storage: StorageConfig{
			Driver: DriverCSV,
		},
		Roles: roles,
		Classification: ClassificationConfig{
			Accounts: map[string]string{
				"5010": "cogs",
				"5020": "cogs",
				"5030": "cogs",
				"5040": "cogs",
				"5050": "cogs",
				"5600": "depreciation",
				"5700": "interest",
			},
		},
		Projection: ProjectionConfig{
			Years:    5,
			Scenario: string(projection.ScenarioBase),
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "farmledger",
			AuthorEmail: "farmledger@localhost",
		},
	}
}

// Validate checks values that cannot be caught by YAML decoding.
func (c *Config) Validate() error {
	var errs []error
	if err := model.ValidateCurrency(c.Workspace.Currency); err != nil {
		errs = append(errs, fmt.Errorf("workspace.currency: %w", err))
	}
	if _, _, err := c.Fiscal.monthDay(); err != nil {
		errs = append(errs, err)
	}
	switch c.Storage.Driver {
	case DriverCSV:
	case DriverSQLite:
		if c.Storage.Path == "" {
			errs = append(errs, fmt.Errorf("storage.path is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q must be csv or sqlite", c.Storage.Driver))
	}
	for _, role := range sortedKeys(c.Roles) {
		if _, err := accounts.ParseRole(role); err != nil {
			errs = append(errs, fmt.Errorf("roles: %w", err))
		}
	}
	for _, id := range sortedKeys(c.Classification.Accounts) {
		if _, err := projection.ParseClass(c.Classification.Accounts[id]); err != nil {
			errs = append(errs, fmt.Errorf("classification.accounts.%s: %w", id, err))
		}
	}
	for _, name := range sortedKeys(c.Scenarios) {
		if _, err := projection.ParseScenario(name); err != nil {
			errs = append(errs, fmt.Errorf("scenarios: %w", err))
		}
	}
	if c.Projection.Scenario != "" {
		if _, err := projection.ParseScenario(c.Projection.Scenario); err != nil {
			errs = append(errs, fmt.Errorf("projection.scenario: %w", err))
		}
	}
	if c.Projection.Years < 0 {
		errs = append(errs, fmt.Errorf("projection.years must not be negative"))
	}
	return errors.Join(errs...)
}

// Assumptions returns the built-in bundle for s with any configured
// overrides applied.
func (c *Config) Assumptions(s projection.Scenario) projection.Assumptions {
	a := projection.DefaultScenarios()[s]
	for name, o := range c.Scenarios {
		if strings.EqualFold(name, string(s)) {
			a = a.With(o)
		}
	}
	return a
}

// Year returns the fiscal year starting in the given calendar year. With the
// default year start of 01-01 this is the calendar year.
func (f FiscalConfig) Year(year int) (model.Filter, error) {
	month, day, err := f.monthDay()
	if err != nil {
		return model.Filter{}, err
	}
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return model.DateRange(start, start.AddDate(1, 0, -1)), nil
}

func (f FiscalConfig) monthDay() (int, int, error) {
	s := f.YearStart
	if s == "" {
		s = "01-01"
	}
	mm, dd, ok := strings.Cut(s, "-")
	month, errM := strconv.Atoi(mm)
	day, errD := strconv.Atoi(dd)
	if !ok || errM != nil || errD != nil || month < 1 || month > 12 || day < 1 || day > 28 {
		return 0, 0, fmt.Errorf("fiscal.year_start %q must be MM-DD with a day from 1 to 28", f.YearStart)
	}
	return month, day, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
