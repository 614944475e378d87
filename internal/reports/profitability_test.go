package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

func plotBook() ledger.Book {
	onPlot := func(l model.JournalEntryLine, plot string) model.JournalEntryLine {
		l.PlotID = plot
		return l
	}
	book := ledger.Book{
		Accounts: []model.Account{
			acct("cash", "Cash", model.AccountTypeAsset, "0"),
			acct("maize", "Maize Sales", model.AccountTypeIncome, "0"),
			acct("seed", "Seed Costs", model.AccountTypeExpense, "0"),
			acct("fuel", "Fuel", model.AccountTypeExpense, "0"),
		},
	}
	book.Entries = []model.JournalEntry{
		entry("1", date(2024, 3, 1), onPlot(line("seed", model.Debit, "300"), "north"), line("cash", model.Credit, "300")),
		entry("2", date(2024, 3, 2), onPlot(line("fuel", model.Debit, "100"), "south"), line("cash", model.Credit, "100")),
		entry("3", date(2024, 8, 1), line("cash", model.Debit, "1000"), onPlot(line("maize", model.Credit, "1000"), "north")),
	}
	book.Entries[0].Category = "Seeds"
	book.Entries[1].Category = "Fuel"
	book.Entries[2].Category = "Sales"
	return book
}

func TestProfitabilityByPlot(t *testing.T) {
	p := BuildProfitability(plotBook(), model.CalendarYear(2024), ledger.GroupByPlot)
	require.Len(t, p.Groups, 2)
	assert.True(t, dec("700").Equal(p.Groups[0].Net()))
	assert.True(t, dec("-100").Equal(p.Groups[1].Net()))
	assert.True(t, dec("600").Equal(p.NetIncome))

	tbl := p.Table()
	assert.Equal(t, []string{"Plot", "Income", "Expenses", "Net"}, tbl.Columns)
	total, ok := tbl.Total()
	require.True(t, ok)
	assert.True(t, dec("600").Equal(total.Values[2]))
}

func TestExpenseBreakdown(t *testing.T) {
	eb := BuildExpenseBreakdown(plotBook(), model.AllTime(), ledger.GroupByCategory)
	require.Len(t, eb.Shares, 2, "sales carries no expense")
	assert.Equal(t, "Fuel", eb.Shares[0].Label)
	assert.True(t, dec("25").Equal(eb.Shares[0].Percent))
	assert.Equal(t, "Seeds", eb.Shares[1].Label)
	assert.True(t, dec("75").Equal(eb.Shares[1].Percent))
	assert.True(t, dec("400").Equal(eb.Total))

	records := eb.Table().Records()
	assert.Equal(t, []string{"Total", "400.00", "100.00"}, records[len(records)-1])
}

func TestExpenseBreakdown_Empty(t *testing.T) {
	eb := BuildExpenseBreakdown(plotBook(), model.CalendarYear(2020), ledger.GroupByAccount)
	assert.Empty(t, eb.Shares)
	records := eb.Table().Records()
	assert.Equal(t, []string{"Total", "0.00", "0.00"}, records[len(records)-1])
}
