package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/model"
	"github.com/agrifaas/farmledger/internal/projection"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Kibera Greens", "kes")
	growth := decimal.RequireFromString("7.5")
	cfg.Scenarios = map[string]projection.Overrides{
		"optimistic": {RevenueGrowth: &growth},
	}

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Workspace, got.Workspace)
	assert.Equal(t, cfg.Fiscal.YearStart, got.Fiscal.YearStart)
	assert.Equal(t, cfg.Storage, got.Storage)
	assert.Equal(t, cfg.Roles, got.Roles)
	assert.Equal(t, cfg.Classification.Accounts, got.Classification.Accounts)
	assert.Equal(t, cfg.Projection, got.Projection)
	assert.Equal(t, cfg.Git, got.Git)

	require.Contains(t, got.Scenarios, "optimistic")
	require.NotNil(t, got.Scenarios["optimistic"].RevenueGrowth)
	assert.True(t, got.Scenarios["optimistic"].RevenueGrowth.Equal(growth))
	assert.Nil(t, got.Scenarios["optimistic"].COGSRatio)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Shamba", "ugx")

	assert.Equal(t, "Shamba", cfg.Workspace.Name)
	assert.Equal(t, "UGX", cfg.Workspace.Currency)
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.Equal(t, DriverCSV, cfg.Storage.Driver)
	assert.Equal(t, []string{"1010", "1020"}, cfg.Roles["cash"])
	assert.Equal(t, 5, cfg.Projection.Years)
	assert.True(t, cfg.Git.AutoCommit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadDefaultsDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("workspace:\n  name: x\n  currency: usd\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverCSV, cfg.Storage.Driver)
	assert.Equal(t, "USD", cfg.Workspace.Currency)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Farm", "USD")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Farm")
	assert.Contains(t, contents, "currency: USD")
	assert.Contains(t, contents, "year_start: 01-01")
	assert.Contains(t, contents, "driver: csv")
	assert.Contains(t, contents, "auto_commit: true")
}

func TestValidate(t *testing.T) {
	cfg := Default("Farm", "USD")
	cfg.Workspace.Currency = "XYZ"
	cfg.Fiscal.YearStart = "13-01"
	cfg.Storage.Driver = "postgres"
	cfg.Roles["tractor"] = []string{"1500"}
	cfg.Classification.Accounts["5200"] = "overhead"
	cfg.Scenarios = map[string]projection.Overrides{"drought": {}}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"workspace.currency", "fiscal.year_start", "storage.driver", "tractor", "classification.accounts.5200", "drought"} {
		assert.Contains(t, err.Error(), want)
	}

	cfg = Default("Farm", "USD")
	cfg.Storage.Driver = DriverSQLite
	assert.ErrorContains(t, cfg.Validate(), "storage.path")
	cfg.Storage.Path = "ledger.db"
	assert.NoError(t, cfg.Validate())
}

func TestAssumptionsOverrides(t *testing.T) {
	cfg := Default("Farm", "USD")
	tax := decimal.NewFromInt(15)
	cfg.Scenarios = map[string]projection.Overrides{"Base": {TaxRate: &tax}}

	a := cfg.Assumptions(projection.ScenarioBase)
	assert.True(t, a.TaxRate.Equal(tax))

	b := cfg.Assumptions(projection.ScenarioOptimistic)
	assert.True(t, b.TaxRate.Equal(projection.DefaultScenarios()[projection.ScenarioOptimistic].TaxRate))
}

func TestFiscalYear(t *testing.T) {
	f, err := FiscalConfig{YearStart: "01-01"}.Year(2024)
	require.NoError(t, err)
	assert.Equal(t, model.CalendarYear(2024), f)

	f, err = FiscalConfig{YearStart: "07-01"}.Year(2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", f.Start.Format("2006-01-02"))
	assert.Equal(t, "2025-06-30", f.End.Format("2006-01-02"))

	_, err = FiscalConfig{YearStart: "July"}.Year(2024)
	assert.Error(t, err)
}
