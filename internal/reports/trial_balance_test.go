package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		typ           model.AccountType
		balance       string
		debit, credit string
	}{
		{model.AccountTypeAsset, "100", "100", "0"},
		{model.AccountTypeAsset, "-40", "0", "40"},
		{model.AccountTypeExpense, "25", "25", "0"},
		{model.AccountTypeLiability, "70", "0", "70"},
		{model.AccountTypeLiability, "-5", "5", "0"},
		{model.AccountTypeIncome, "300", "0", "300"},
		{model.AccountTypeEquity, "0", "0", "0"},
	}
	for _, tt := range tests {
		d, c := Columns(tt.typ, dec(tt.balance))
		assert.True(t, dec(tt.debit).Equal(d), "%s %s debit = %s", tt.typ, tt.balance, d)
		assert.True(t, dec(tt.credit).Equal(c), "%s %s credit = %s", tt.typ, tt.balance, c)
	}
}

func TestTrialBalance(t *testing.T) {
	book := ledger.Book{
		Accounts: []model.Account{
			acct("cash", "Cash", model.AccountTypeAsset, "0"),
			acct("overdraft", "Overdraft", model.AccountTypeAsset, "0"),
			acct("sales", "Sales", model.AccountTypeIncome, "0"),
			acct("seed", "Seed Costs", model.AccountTypeExpense, "0"),
			acct("unused", "Unused", model.AccountTypeLiability, "0"),
		},
		Entries: []model.JournalEntry{
			entry("1", date(2024, 1, 15), line("cash", model.Debit, "1000"), line("sales", model.Credit, "1000")),
			entry("2", date(2024, 2, 10), line("seed", model.Debit, "300"), line("overdraft", model.Credit, "300")),
		},
	}

	tb := BuildTrialBalance(book, model.AllTime())
	require.Len(t, tb.Rows, 4, "zero rows are omitted")

	byID := make(map[string]TrialBalanceRow)
	for _, r := range tb.Rows {
		byID[r.AccountID] = r
	}
	assert.True(t, dec("300").Equal(byID["overdraft"].Credit), "negative asset flips to credit")
	assert.True(t, dec("1300").Equal(tb.TotalDebit))
	assert.True(t, dec("1300").Equal(tb.TotalCredit))
	assert.True(t, tb.IsBalanced)

	records := tb.Table().Records()
	assert.Equal(t, []string{"Account", "Debit", "Credit"}, records[0])
	assert.Equal(t, []string{"Total", "1300.00", "1300.00"}, records[len(records)-1])
}

func TestTrialBalance_SymmetryProperty(t *testing.T) {
	for seed := uint64(100); seed < 125; seed++ {
		book := randomBook(seed, 80)
		for _, f := range propertyFilters() {
			tb := BuildTrialBalance(book, f)
			assert.True(t, tb.IsBalanced, "seed %d filter %+v: debit %s credit %s",
				seed, f, tb.TotalDebit, tb.TotalCredit)
		}
	}
}
