package sqlstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/accounts"
	"github.com/agrifaas/farmledger/internal/journal"
	"github.com/agrifaas/farmledger/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	for _, a := range accounts.DefaultChart("KES") {
		_, err := s.AddAccount(a)
		require.NoError(t, err)
	}
}

func sale(d time.Time, amount string) model.JournalEntry {
	amt := decimal.RequireFromString(amount)
	return model.JournalEntry{
		Date:        d,
		Description: "Maize sale",
		Category:    "Sales",
		Currency:    "KES",
		Lines: []model.JournalEntryLine{
			{AccountID: "1010", Type: model.Debit, Amount: amt, PlotID: "north", SeasonID: "lr-2025"},
			{AccountID: "4010", Type: model.Credit, Amount: amt, PlotID: "north", SeasonID: "lr-2025"},
		},
	}
}

func TestAccountsRoundTrip(t *testing.T) {
	s := openTemp(t)
	seed(t, s)

	got, err := s.LoadAccounts()
	require.NoError(t, err)
	chart := accounts.DefaultChart("KES")
	require.Len(t, got, len(chart))
	assert.Equal(t, "1010", got[0].ID, "insertion order preserved")
	assert.Equal(t, chart[len(chart)-1].ID, got[len(got)-1].ID)

	_, err = s.AddAccount(model.Account{ID: "1010", Name: "Duplicate", Type: model.AccountTypeAsset, Currency: "KES"})
	assert.ErrorContains(t, err, "already exists")
}

func TestAddEntries_AssignsIDs(t *testing.T) {
	s := openTemp(t)
	seed(t, s)

	d := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	stored, err := s.AddEntries([]model.JournalEntry{sale(d, "1000"), sale(d.AddDate(0, 0, 1), "250.50")})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "JE-2025-04-001", stored[0].ID)
	assert.Equal(t, "JE-2025-04-002", stored[1].ID)

	more, err := s.AddEntries([]model.JournalEntry{sale(d, "1")})
	require.NoError(t, err)
	assert.Equal(t, "JE-2025-04-003", more[0].ID)

	entries, err := s.LoadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Ordered by date, then ID.
	ids := []string{entries[0].ID, entries[1].ID, entries[2].ID}
	assert.Equal(t, []string{"JE-2025-04-001", "JE-2025-04-003", "JE-2025-04-002"}, ids)
	assert.Equal(t, d, entries[0].Date)

	late := entries[2]
	require.Len(t, late.Lines, 2)
	assert.Equal(t, model.Debit, late.Lines[0].Type)
	assert.True(t, late.Lines[0].Amount.Equal(decimal.RequireFromString("250.50")))
	assert.Equal(t, "north", late.Lines[1].PlotID)
	assert.Equal(t, d.AddDate(0, 0, 1), late.Date)
}

func TestAddEntries_RejectsAll(t *testing.T) {
	s := openTemp(t)
	seed(t, s)

	d := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	bad := sale(d, "100")
	bad.Lines[1].AccountID = "9999"

	_, err := s.AddEntries([]model.JournalEntry{sale(d, "5"), bad})
	require.Error(t, err)
	assert.True(t, errors.Is(err, journal.ErrValidation))

	entries, err := s.LoadEntries()
	require.NoError(t, err)
	assert.Empty(t, entries, "transaction rolled back")
}

func TestAddEntries_DuplicateID(t *testing.T) {
	s := openTemp(t)
	seed(t, s)

	e := sale(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "10")
	e.ID = "opening"
	_, err := s.AddEntries([]model.JournalEntry{e})
	require.NoError(t, err)

	_, err = s.AddEntries([]model.JournalEntry{e})
	assert.ErrorIs(t, err, journal.ErrValidation)
}
