package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/accounts"
	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func pair(d time.Time, debit, credit, amount string) model.JournalEntry {
	return model.JournalEntry{
		ID:       debit + "/" + credit + "@" + d.Format("2006-01-02"),
		Date:     d,
		Currency: "USD",
		Lines: []model.JournalEntryLine{
			{AccountID: debit, Type: model.Debit, Amount: dec(amount)},
			{AccountID: credit, Type: model.Credit, Amount: dec(amount)},
		},
	}
}

func farmBook() ledger.Book {
	chart := accounts.DefaultChart("USD")
	for i := range chart {
		switch chart[i].ID {
		case "1010":
			chart[i].InitialBalance = dec("10000")
		case "1500":
			chart[i].InitialBalance = dec("20000")
		case "3010":
			chart[i].InitialBalance = dec("30000")
		}
	}
	return ledger.Book{
		Accounts: chart,
		Entries: []model.JournalEntry{
			pair(day(2023, 6, 1), "1100", "4010", "4000"),
			pair(day(2024, 3, 1), "1010", "4010", "50000"),
			pair(day(2024, 3, 5), "5010", "1010", "8000"),
			pair(day(2024, 4, 1), "5020", "2010", "6000"),
			pair(day(2024, 6, 1), "5200", "1010", "3000"),
			pair(day(2024, 7, 1), "1010", "2500", "10000"),
			pair(day(2024, 9, 1), "5700", "1010", "1200"),
			pair(day(2024, 12, 31), "5600", "1510", "2000"),
			pair(day(2025, 1, 2), "5010", "1010", "999"),
		},
	}
}

func TestTrailingYear(t *testing.T) {
	f := TrailingYear(day(2024, 12, 31))
	assert.Equal(t, day(2024, 1, 1), f.Start)
	assert.Equal(t, day(2024, 12, 31), f.End)
}

func TestDeriveBaseYear(t *testing.T) {
	cls, err := NewClassifier(nil, nil)
	require.NoError(t, err)

	base, warnings := DeriveBaseYear(farmBook(), day(2024, 12, 31), accounts.DefaultBindings(), cls)
	assert.Empty(t, warnings)
	assert.Equal(t, 2024, base.Year)

	is := base.IncomeStatement
	assertDec(t, "50000", is.Revenue, "prior-year sale excluded")
	assertDec(t, "14000", is.COGS)
	assertDec(t, "36000", is.GrossProfit)
	assertDec(t, "3000", is.SGA)
	assertDec(t, "2000", is.Depreciation)
	assertDec(t, "31000", is.PBIT)
	assertDec(t, "1200", is.InterestExpense)
	assertDec(t, "29800", is.PBT)
	assertDec(t, "29800", is.PAT)

	bs := base.BalanceSheet
	assertDec(t, "57800", bs.Cash)
	assertDec(t, "4000", bs.Receivables)
	assertDec(t, "0", bs.Inventory)
	assertDec(t, "20000", bs.PPE)
	assertDec(t, "2000", bs.AccumulatedDepreciation)
	assertDec(t, "18000", bs.NBV)
	assertDec(t, "6000", bs.Payables)
	assertDec(t, "10000", bs.Debt)
	assertDec(t, "30000", bs.Capital)
	assertDec(t, "33800", bs.IncomeSurplus)
	assertDec(t, "79800", bs.TotalAssets)
	assert.True(t, bs.BalanceCheck.IsZero())
	assert.True(t, base.CashFlow.ClosingCash.Equal(bs.Cash))
}

func TestDeriveBaseYear_ClassificationTable(t *testing.T) {
	cls, err := NewClassifier(map[string]string{"5200": "cogs"}, nil)
	require.NoError(t, err)

	base, _ := DeriveBaseYear(farmBook(), day(2024, 12, 31), accounts.DefaultBindings(), cls)
	assertDec(t, "17000", base.IncomeStatement.COGS)
	assertDec(t, "0", base.IncomeStatement.SGA)
}

func TestDeriveBaseYear_UnboundRoles(t *testing.T) {
	cls, _ := NewClassifier(nil, nil)
	roles := accounts.Bindings{accounts.RoleCash: {"1010"}}

	base, warnings := DeriveBaseYear(farmBook(), day(2024, 12, 31), roles, cls)
	assert.Len(t, warnings, 7)
	assertDec(t, "57800", base.BalanceSheet.Cash)
	assertDec(t, "57800", base.BalanceSheet.IncomeSurplus)
	assert.True(t, base.BalanceSheet.BalanceCheck.IsZero())
}

func TestDeriveBaseYear_ThenProject(t *testing.T) {
	cls, _ := NewClassifier(nil, nil)
	base, _ := DeriveBaseYear(farmBook(), day(2024, 12, 31), accounts.DefaultBindings(), cls)

	years := Project(base, DefaultScenarios()[ScenarioBase], 5)
	require.Len(t, years, 5)
	assert.Equal(t, 2029, years[4].Year)
	for _, y := range years {
		assertNear(t, dec("0"), y.BalanceSheet.BalanceCheck, y.Year)
	}
}
