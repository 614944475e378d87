package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/model"
)

func rules(verrs []ValidationError) []string {
	var out []string
	for _, ve := range verrs {
		out = append(out, ve.Rule)
	}
	return out
}

func TestValidateEntry_Valid(t *testing.T) {
	accts := newMockAccounts("KES", "1010", "5020")
	e := simpleEntry(date(2025, 1, 15), "5020", "1010", "4500.00")
	e.ID = "JE-2025-01-001"

	assert.Empty(t, ValidateEntry(e, accts))
}

func TestValidateEntry_SplitEntry(t *testing.T) {
	accts := newMockAccounts("KES", "1010", "5020", "5030")
	e := model.JournalEntry{
		ID:       "JE-2025-01-002",
		Date:     date(2025, 1, 15),
		Currency: "KES",
		Lines: []model.JournalEntryLine{
			line("5020", model.Debit, "300.00"),
			line("5030", model.Debit, "200.50"),
			line("1010", model.Credit, "500.50"),
		},
	}
	assert.Empty(t, ValidateEntry(e, accts))
}

func TestValidateEntry_Unbalanced(t *testing.T) {
	accts := newMockAccounts("KES", "1010", "5020")
	e := simpleEntry(date(2025, 1, 15), "5020", "1010", "100.00")
	e.Lines[1].Amount = dec("99.00")

	verrs := ValidateEntry(e, accts)
	assert.Equal(t, []string{RuleBalanced}, rules(verrs))
}

func TestValidateEntry_WithinTolerance(t *testing.T) {
	accts := newMockAccounts("KES", "1010", "5020", "5030")
	e := model.JournalEntry{
		ID:       "JE-2025-01-003",
		Date:     date(2025, 1, 15),
		Currency: "KES",
		Lines: []model.JournalEntryLine{
			line("5020", model.Debit, "33.33"),
			line("5030", model.Debit, "33.33"),
			line("1010", model.Credit, "66.67"),
		},
	}
	// Off by exactly one cent: rejected.
	assert.Equal(t, []string{RuleBalanced}, rules(ValidateEntry(e, accts)))

	e.Lines[2].Amount = dec("66.66")
	assert.Empty(t, ValidateEntry(e, accts))
}

func TestValidateEntry_ZeroTotal(t *testing.T) {
	accts := newMockAccounts("KES", "1010", "5020")
	e := simpleEntry(date(2025, 1, 15), "5020", "1010", "0")

	assert.Equal(t, []string{RuleNonZero}, rules(ValidateEntry(e, accts)))
}

func TestValidateEntry_SingleLine(t *testing.T) {
	accts := newMockAccounts("KES", "1010")
	e := simpleEntry(date(2025, 1, 15), "1010", "1010", "10.00")
	e.Lines = e.Lines[:1]

	verrs := ValidateEntry(e, accts)
	assert.Contains(t, rules(verrs), RuleLines)
	assert.Contains(t, rules(verrs), RuleBalanced)
}

func TestValidateEntry_NegativeAndPrecision(t *testing.T) {
	accts := newMockAccounts("KES", "1010", "5020")
	e := simpleEntry(date(2025, 1, 15), "5020", "1010", "1.005")
	verrs := ValidateEntry(e, accts)
	assert.Equal(t, []string{RulePrecision, RulePrecision}, rules(verrs))
	assert.Equal(t, "#1", verrs[0].EntryID)

	e = simpleEntry(date(2025, 1, 15), "5020", "1010", "-5.00")
	assert.Contains(t, rules(ValidateEntry(e, accts)), RuleAmount)
}

func TestValidateEntry_UnknownAccount(t *testing.T) {
	accts := newMockAccounts("KES", "1010")
	e := simpleEntry(date(2025, 1, 15), "9999", "1010", "10.00")
	e.ID = "JE-2025-01-004"

	verrs := ValidateEntry(e, accts)
	require.Len(t, verrs, 1)
	assert.Equal(t, RuleAccount, verrs[0].Rule)
	assert.Equal(t, "JE-2025-01-004#1", verrs[0].EntryID)
	assert.Contains(t, verrs[0].Description, "9999")
}

func TestValidateEntry_CurrencyMismatch(t *testing.T) {
	accts := newMockAccounts("KES", "1010")
	accts["2010"] = model.Account{ID: "2010", Name: "Supplier", Type: model.AccountTypeLiability, Currency: "USD"}
	e := simpleEntry(date(2025, 1, 15), "1010", "2010", "10.00")

	verrs := ValidateEntry(e, accts)
	assert.Equal(t, []string{RuleCurrency}, rules(verrs))

	e.Currency = "ZZZ"
	verrs = ValidateEntry(e, newMockAccounts("ZZZ", "1010", "2010"))
	assert.Equal(t, []string{RuleCurrency}, rules(verrs))
}

func TestValidateEntry_MissingDate(t *testing.T) {
	accts := newMockAccounts("KES", "1010", "5020")
	e := simpleEntry(date(2025, 1, 15), "5020", "1010", "10.00")
	e.Date = time.Time{}

	assert.Equal(t, []string{RuleDate}, rules(ValidateEntry(e, accts)))
}

func TestErr(t *testing.T) {
	assert.NoError(t, Err(nil))

	err := Err([]ValidationError{
		{Rule: RuleBalanced, EntryID: "JE-2025-01-001", Description: "debits (1.00) != credits (2.00)"},
		{Rule: RuleAccount, EntryID: "JE-2025-01-001#2", Description: "unknown account \"x\""},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "balanced [JE-2025-01-001]")
	assert.Contains(t, err.Error(), "; account [JE-2025-01-001#2]")
}
