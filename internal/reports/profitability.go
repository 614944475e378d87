package reports

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/ledger"
	"github.com/agrifaas/farmledger/internal/model"
)

// Profitability is income, expenses and net per group, usually per plot.
type Profitability struct {
	Filter        model.Filter
	GroupBy       ledger.GroupBy
	Groups        []ledger.Movement
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
}

// BuildProfitability aggregates P&L movement by plot, season, category or
// account.
func BuildProfitability(book ledger.Book, f model.Filter, by ledger.GroupBy) Profitability {
	p := Profitability{Filter: f, GroupBy: by}
	p.Groups = ledger.ComputeGrouped(book.Accounts, book.Entries, f, by)
	for _, g := range p.Groups {
		p.TotalIncome = p.TotalIncome.Add(g.Income)
		p.TotalExpenses = p.TotalExpenses.Add(g.Expenses)
	}
	p.NetIncome = p.TotalIncome.Sub(p.TotalExpenses)
	return p
}

// Table renders the profitability report.
func (p Profitability) Table() Table {
	t := Table{
		Title:   fmt.Sprintf("Profitability by %s", p.GroupBy),
		Columns: []string{groupHeading(p.GroupBy), "Income", "Expenses", "Net"},
	}
	for _, g := range p.Groups {
		t.Rows = append(t.Rows, DataRow{Label: g.Label, Values: amounts(g.Income, g.Expenses, g.Net())})
	}
	t.Rows = append(t.Rows, TotalRow{Label: "Total", Values: amounts(p.TotalIncome, p.TotalExpenses, p.NetIncome)})
	return t
}

// ExpenseShare is one group's expenses and share of the total.
type ExpenseShare struct {
	Key     string
	Label   string
	Amount  decimal.Decimal
	Percent decimal.Decimal // 0-100, two decimals
}

// ExpenseBreakdown is expense movement split by category or account.
type ExpenseBreakdown struct {
	Filter  model.Filter
	GroupBy ledger.GroupBy
	Shares  []ExpenseShare
	Total   decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// BuildExpenseBreakdown aggregates expense movement by the given dimension.
// Groups carrying only income are dropped.
func BuildExpenseBreakdown(book ledger.Book, f model.Filter, by ledger.GroupBy) ExpenseBreakdown {
	eb := ExpenseBreakdown{Filter: f, GroupBy: by}
	for _, g := range ledger.ComputeGrouped(book.Accounts, book.Entries, f, by) {
		if ledger.Negligible(g.Expenses) {
			continue
		}
		eb.Shares = append(eb.Shares, ExpenseShare{Key: g.Key, Label: g.Label, Amount: g.Expenses})
		eb.Total = eb.Total.Add(g.Expenses)
	}
	if !eb.Total.IsZero() {
		for i := range eb.Shares {
			eb.Shares[i].Percent = eb.Shares[i].Amount.Mul(hundred).Div(eb.Total).Round(2)
		}
	}
	return eb
}

// Table renders the expense breakdown.
func (eb ExpenseBreakdown) Table() Table {
	t := Table{
		Title:   fmt.Sprintf("Expenses by %s", eb.GroupBy),
		Columns: []string{groupHeading(eb.GroupBy), "Amount", "Share %"},
	}
	for _, s := range eb.Shares {
		t.Rows = append(t.Rows, DataRow{Label: s.Label, Values: amounts(s.Amount, s.Percent)})
	}
	share := decimal.Zero
	if !eb.Total.IsZero() {
		share = hundred
	}
	t.Rows = append(t.Rows, TotalRow{Label: "Total", Values: amounts(eb.Total, share)})
	return t
}

func groupHeading(by ledger.GroupBy) string {
	switch by {
	case ledger.GroupByPlot:
		return "Plot"
	case ledger.GroupBySeason:
		return "Season"
	case ledger.GroupByCategory:
		return "Category"
	default:
		return "Account"
	}
}
